package web

import (
	"html/template"

	"github.com/BerylCAtieno/impact-assessment/internal/assessment"
	"github.com/BerylCAtieno/impact-assessment/internal/models"
	"github.com/BerylCAtieno/impact-assessment/internal/questionnaire"
)

// SubmissionRequest is bound from both the HTML form and the JSON API.
type SubmissionRequest struct {
	Gender     string `form:"gender" json:"gender"`
	AgeBracket string `form:"age_bracket" json:"age_bracket"`
	Education  string `form:"education" json:"education"`
	Responses  []int  `form:"responses" json:"responses"`
}

func (r SubmissionRequest) Demographics() models.Demographics {
	return models.Demographics{
		Gender:     r.Gender,
		AgeBracket: r.AgeBracket,
		Education:  r.Education,
	}
}

// AssessmentResponse is the JSON body returned by the API.
type AssessmentResponse struct {
	*assessment.Outcome
	ChartSVG string `json:"chart_svg,omitempty"`
}

// ErrorResponse describes a rejected request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// Page data

type itemView struct {
	Number int
	Text   string
	Value  int
}

type formPage struct {
	Items   []itemView
	Options questionnaire.Options
	Values  models.Demographics
	Min     int
	Max     int
	Error   string
}

type scoreView struct {
	Dimension string
	Score     int
}

type resultPage struct {
	Outcome  *assessment.Outcome
	Chart    template.HTML
	Scores   []scoreView
	MaxTotal int
	Saved    string
}

func newFormPage(req SubmissionRequest, errMsg string) formPage {
	items := questionnaire.Items()
	views := make([]itemView, len(items))
	for i, item := range items {
		value := questionnaire.DefaultValue
		if i < len(req.Responses) && req.Responses[i] >= questionnaire.MinValue && req.Responses[i] <= questionnaire.MaxValue {
			value = req.Responses[i]
		}
		views[i] = itemView{Number: i + 1, Text: item.Text, Value: value}
	}

	return formPage{
		Items:   views,
		Options: questionnaire.DemographicOptions(),
		Values:  req.Demographics(),
		Min:     questionnaire.MinValue,
		Max:     questionnaire.MaxValue,
		Error:   errMsg,
	}
}

func newResultPage(outcome *assessment.Outcome) resultPage {
	scores := make([]scoreView, 0, len(models.Dimensions))
	for _, d := range models.Dimensions {
		scores = append(scores, scoreView{Dimension: d.String(), Score: outcome.Result.Score(d)})
	}

	saved := msgSaved
	if !outcome.Persistence.Success {
		saved = msgSaveFailed
	}

	// The chart package escapes all text it emits.
	return resultPage{
		Outcome:  outcome,
		Chart:    template.HTML(outcome.Chart),
		Scores:   scores,
		MaxTotal: models.ItemCount * questionnaire.MaxValue,
		Saved:    saved,
	}
}
