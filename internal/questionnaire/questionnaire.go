package questionnaire

import (
	"fmt"
	"slices"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

// Slider bounds shared by the form and the validation layer.
const (
	MinValue     = 1
	MaxValue     = 6
	DefaultValue = 3
)

// ItemsPerDimension is how many items feed each sub-score.
const ItemsPerDimension = 3

var items = [models.ItemCount]models.QuestionItem{
	{Text: "My values are reflected in my work", Dimension: models.SDT},
	{Text: "I trust my own abilities", Dimension: models.SDT},
	{Text: "I work only because I have to", Reversed: true, Dimension: models.SDT},
	{Text: "I take action on what I can control", Dimension: models.Empowerment},
	{Text: "I influence decisions", Dimension: models.Empowerment},
	{Text: "Growth depends on chance", Reversed: true, Dimension: models.Empowerment},
	{Text: "I understand the big picture", Dimension: models.Salutogenesis},
	{Text: "Challenges make sense", Dimension: models.Salutogenesis},
	{Text: "Requests are confusing or unpredictable", Reversed: true, Dimension: models.Salutogenesis},
	{Text: "I pass knowledge on to others", Dimension: models.Generativity},
	{Text: "My work has an impact on the future", Dimension: models.Generativity},
	{Text: "I focus only on my own tasks", Reversed: true, Dimension: models.Generativity},
	{Text: "I regain my balance quickly", Dimension: models.Resilience},
	{Text: "I see change as an opportunity", Dimension: models.Resilience},
	{Text: "I stiffen up under stress", Reversed: true, Dimension: models.Resilience},
}

// Items returns a copy of the fixed item list.
func Items() [models.ItemCount]models.QuestionItem {
	return items
}

var (
	genders     = []string{"M", "F", "Non-binary", "Other"}
	ageBrackets = []string{"<20", "21-30", "31-40", "41-50", "51-60", "61-70", ">70"}
	educations  = []string{"Middle school", "High school diploma", "Bachelor's degree", "Master's degree", "Postgraduate"}
)

// Options holds the selectable values of each demographic field.
type Options struct {
	Gender     []string `json:"gender"`
	AgeBracket []string `json:"age_bracket"`
	Education  []string `json:"education"`
}

// DemographicOptions returns fresh copies of the option lists.
func DemographicOptions() Options {
	return Options{
		Gender:     append([]string(nil), genders...),
		AgeBracket: append([]string(nil), ageBrackets...),
		Education:  append([]string(nil), educations...),
	}
}

// Validate checks the item list shape the scorer depends on.
func Validate(list [models.ItemCount]models.QuestionItem) error {
	perDimension := make(map[models.Dimension]int, len(models.Dimensions))
	for i, item := range list {
		if item.Dimension < models.SDT || item.Dimension > models.Resilience {
			return fmt.Errorf("item %d: unknown dimension %d", i, int(item.Dimension))
		}
		perDimension[item.Dimension]++
	}
	for _, d := range models.Dimensions {
		if perDimension[d] != ItemsPerDimension {
			return fmt.Errorf("dimension %s has %d items, want %d", d, perDimension[d], ItemsPerDimension)
		}
	}
	return nil
}

// Questionnaire is the payload served to API clients.
type Questionnaire struct {
	Items   []models.QuestionItem `json:"items"`
	Options Options               `json:"options"`
	Min     int                   `json:"min"`
	Max     int                   `json:"max"`
	Default int                   `json:"default"`
}

// Describe bundles everything a client needs to render the form.
func Describe() Questionnaire {
	list := items
	return Questionnaire{
		Items:   list[:],
		Options: DemographicOptions(),
		Min:     MinValue,
		Max:     MaxValue,
		Default: DefaultValue,
	}
}

// ValidGender reports whether value is one of the gender options.
func ValidGender(value string) bool { return slices.Contains(genders, value) }

// ValidAgeBracket reports whether value is one of the age options.
func ValidAgeBracket(value string) bool { return slices.Contains(ageBrackets, value) }

// ValidEducation reports whether value is one of the education options.
func ValidEducation(value string) bool { return slices.Contains(educations, value) }
