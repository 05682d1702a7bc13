package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

func TestItemsShape(t *testing.T) {
	require.NoError(t, Validate(Items()))

	reversed := map[models.Dimension]int{}
	for _, item := range Items() {
		assert.NotEmpty(t, item.Text)
		if item.Reversed {
			reversed[item.Dimension]++
		}
	}
	for _, d := range models.Dimensions {
		assert.Equal(t, 1, reversed[d], "dimension %s", d)
	}
}

func TestValidateRejectsUnbalancedList(t *testing.T) {
	list := Items()
	list[0].Dimension = models.Resilience

	err := Validate(list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SDT")

	list = Items()
	list[4].Dimension = models.Dimension(9)
	require.Error(t, Validate(list))
}

func TestItemsReturnsCopy(t *testing.T) {
	list := Items()
	list[0].Text = "changed"
	assert.NotEqual(t, "changed", Items()[0].Text)

	opts := DemographicOptions()
	opts.Gender[0] = "changed"
	assert.True(t, ValidGender("M"))
}

func TestOptionValidators(t *testing.T) {
	assert.True(t, ValidGender("Non-binary"))
	assert.False(t, ValidGender(""))
	assert.True(t, ValidAgeBracket(">70"))
	assert.False(t, ValidAgeBracket("70+"))
	assert.True(t, ValidEducation("Postgraduate"))
	assert.False(t, ValidEducation("PhD"))
}

func TestDescribe(t *testing.T) {
	q := Describe()
	assert.Len(t, q.Items, models.ItemCount)
	assert.Equal(t, MinValue, q.Min)
	assert.Equal(t, MaxValue, q.Max)
	assert.Equal(t, DefaultValue, q.Default)
	assert.Len(t, q.Options.AgeBracket, 7)
}
