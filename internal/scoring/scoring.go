// Package scoring turns a response vector into sub-scores, a total and a tier,
// and builds the row persisted for each submission.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
	"github.com/BerylCAtieno/impact-assessment/internal/questionnaire"
)

// Tier thresholds on the total score.
const (
	LatentMax   = 45
	EmergingMax = 70
)

// TimestampLayout is RFC 3339 in UTC with second precision, so rows sort
// lexicographically by submission time.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Reverse inverts a response on the 1-6 scale (1<->6, 2<->5, 3<->4).
// It is only valid for that range.
func Reverse(v int) int {
	return questionnaire.MinValue + questionnaire.MaxValue - v
}

// ComputeScores sums effective values per dimension. Responses must already
// be within [1,6].
func ComputeScores(items [models.ItemCount]models.QuestionItem, responses models.ResponseVector) models.ScoreResult {
	result := models.ScoreResult{Scores: make(map[models.Dimension]int, len(models.Dimensions))}
	for _, d := range models.Dimensions {
		result.Scores[d] = 0
	}

	for i, item := range items {
		effective := responses[i]
		if item.Reversed {
			effective = Reverse(effective)
		}
		result.Scores[item.Dimension] += effective
		result.Total += effective
	}

	return result
}

// Classify maps a total onto its tier.
func Classify(total int) models.Tier {
	switch {
	case total <= LatentMax:
		return models.TierLatent
	case total <= EmergingMax:
		return models.TierEmerging
	default:
		return models.TierGenerative
	}
}

// ValidationError lists the input fields that were missing or invalid.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or unset fields: %s", strings.Join(e.Fields, ", "))
}

// ValidateDemographics fails when any field is unset or not a known option.
func ValidateDemographics(d models.Demographics) error {
	var fields []string
	if d.Gender == models.Unset || !questionnaire.ValidGender(d.Gender) {
		fields = append(fields, "gender")
	}
	if d.AgeBracket == models.Unset || !questionnaire.ValidAgeBracket(d.AgeBracket) {
		fields = append(fields, "age_bracket")
	}
	if d.Education == models.Unset || !questionnaire.ValidEducation(d.Education) {
		fields = append(fields, "education")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateResponses checks a raw answer list before it becomes a ResponseVector.
func ValidateResponses(raw []int) (models.ResponseVector, error) {
	var responses models.ResponseVector
	if len(raw) != models.ItemCount {
		return responses, &ValidationError{Fields: []string{
			fmt.Sprintf("responses (got %d, want %d)", len(raw), models.ItemCount),
		}}
	}

	var fields []string
	for i, v := range raw {
		if v < questionnaire.MinValue || v > questionnaire.MaxValue {
			fields = append(fields, fmt.Sprintf("responses[%d]", i))
			continue
		}
		responses[i] = v
	}
	if len(fields) > 0 {
		return responses, &ValidationError{Fields: fields}
	}
	return responses, nil
}

// BuildPersistedRow assembles the spreadsheet row. The timestamp must be the
// submission time, not the scoring time.
func BuildPersistedRow(submittedAt time.Time, d models.Demographics, total int, result models.ScoreResult) (models.PersistedRow, error) {
	if err := ValidateDemographics(d); err != nil {
		return models.PersistedRow{}, err
	}

	row := models.PersistedRow{
		Timestamp:  submittedAt.UTC().Format(TimestampLayout),
		Gender:     d.Gender,
		AgeBracket: d.AgeBracket,
		Education:  d.Education,
		Total:      total,
	}
	for i, dim := range models.Dimensions {
		row.Scores[i] = result.Score(dim)
	}
	return row, nil
}
