package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

func scores(values ...int) models.ScoreResult {
	result := models.ScoreResult{Scores: map[models.Dimension]int{}}
	for i, v := range values {
		result.Scores[models.Dimensions[i]] = v
		result.Total += v
	}
	return result
}

func TestRadarRendersInlineSVG(t *testing.T) {
	out, err := NewRadar().Render(scores(9, 10, 11, 12, 13))
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "<svg"), "prolog should be stripped")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</svg>"))
	for _, d := range models.Dimensions {
		assert.Contains(t, doc, ">"+d.String()+"<")
	}
}

func TestRadarFirstAxisPointsUp(t *testing.T) {
	// Size 400 gives radius 140; a score of 9 sits halfway up the first axis.
	out, err := NewRadar().Render(scores(9, 0, 0, 0, 0))
	require.NoError(t, err)

	assert.Contains(t, string(out), "200,130")
}

func TestRadarClampsToScale(t *testing.T) {
	over, err := NewRadar().Render(scores(40, 0, 0, 0, 0))
	require.NoError(t, err)
	full, err := NewRadar().Render(scores(ScaleMax, 0, 0, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, string(full), string(over))
}

func TestRadarRejectsInvalidSize(t *testing.T) {
	_, err := (&Radar{}).Render(scores(3, 3, 3, 3, 3))
	require.Error(t, err)
}
