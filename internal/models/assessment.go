package models

import (
	"encoding/json"
	"fmt"
)

// Dimension is one of the five constructs the questionnaire measures.
type Dimension int

const (
	SDT Dimension = iota
	Empowerment
	Salutogenesis
	Generativity
	Resilience
)

// Dimensions lists every dimension in chart axis and sheet column order.
var Dimensions = [...]Dimension{SDT, Empowerment, Salutogenesis, Generativity, Resilience}

var dimensionNames = [...]string{"SDT", "Empowerment", "Salutogenesis", "Generativity", "Resilience"}

func (d Dimension) String() string {
	if d < 0 || int(d) >= len(dimensionNames) {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

func (d Dimension) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(dimensionNames) {
		return nil, fmt.Errorf("unknown dimension %d", int(d))
	}
	return []byte(dimensionNames[d]), nil
}

func (d *Dimension) UnmarshalText(text []byte) error {
	for i, name := range dimensionNames {
		if name == string(text) {
			*d = Dimension(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dimension %q", string(text))
}

// QuestionItem is a single Likert item of the questionnaire.
type QuestionItem struct {
	Text      string    `json:"text"`
	Reversed  bool      `json:"reversed"`
	Dimension Dimension `json:"dimension"`
}

// ItemCount is the number of items in the questionnaire.
const ItemCount = 15

// ResponseVector holds one answer per item, index-aligned with the item list.
type ResponseVector [ItemCount]int

// Demographics are the three selector fields. The empty string means unset.
type Demographics struct {
	Gender     string `json:"gender" form:"gender"`
	AgeBracket string `json:"age_bracket" form:"age_bracket"`
	Education  string `json:"education" form:"education"`
}

// Unset is the sentinel value of a demographic field nobody picked.
const Unset = ""

// ScoreResult carries the per-dimension sub-scores and their total.
type ScoreResult struct {
	Scores map[Dimension]int `json:"scores"`
	Total  int               `json:"total"`
}

// Score returns the sub-score for d, zero when absent.
func (r ScoreResult) Score(d Dimension) int {
	return r.Scores[d]
}

// Tier is the qualitative band of a total score.
type Tier int

const (
	TierLatent Tier = iota
	TierEmerging
	TierGenerative
)

func (t Tier) String() string {
	switch t {
	case TierLatent:
		return "Latent"
	case TierEmerging:
		return "Emerging"
	case TierGenerative:
		return "Generative"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Message is the headline shown to the respondent.
func (t Tier) Message() string {
	switch t {
	case TierLatent:
		return "LATENT IMPACT"
	case TierEmerging:
		return "EMERGING IMPACT"
	default:
		return "GENERATIVE IMPACT"
	}
}

// Level maps the tier onto a notification style: warning, info or success.
func (t Tier) Level() string {
	switch t {
	case TierLatent:
		return "warning"
	case TierEmerging:
		return "info"
	default:
		return "success"
	}
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// RowWidth is the fixed number of columns of a persisted row.
const RowWidth = 10

// PersistedRow is the record appended to the spreadsheet. Column order is
// read positionally by downstream consumers and must never change.
type PersistedRow struct {
	Timestamp  string
	Gender     string
	AgeBracket string
	Education  string
	Total      int
	Scores     [len(Dimensions)]int
}

// Values returns the row as cells in column order.
func (r PersistedRow) Values() []interface{} {
	values := make([]interface{}, 0, RowWidth)
	values = append(values, r.Timestamp, r.Gender, r.AgeBracket, r.Education, r.Total)
	for _, score := range r.Scores {
		values = append(values, score)
	}
	return values
}

// AppendResult reports the outcome of a single persistence attempt.
type AppendResult struct {
	Success     bool   `json:"success"`
	ErrorDetail string `json:"error_detail,omitempty"`
}
