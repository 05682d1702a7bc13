package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreResultJSONUsesDimensionNames(t *testing.T) {
	result := ScoreResult{
		Scores: map[Dimension]int{SDT: 10, Resilience: 12},
		Total:  22,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"SDT":10`)
	assert.Contains(t, string(data), `"Resilience":12`)

	var decoded ScoreResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 12, decoded.Score(Resilience))
	assert.Equal(t, 0, decoded.Score(Empowerment))
}

func TestDimensionUnmarshalRejectsUnknownName(t *testing.T) {
	var d Dimension
	assert.Error(t, d.UnmarshalText([]byte("Happiness")))
}

func TestTier(t *testing.T) {
	data, err := json.Marshal(TierGenerative)
	require.NoError(t, err)
	assert.Equal(t, `"Generative"`, string(data))

	assert.Equal(t, "LATENT IMPACT", TierLatent.Message())
	assert.Equal(t, "warning", TierLatent.Level())
	assert.Equal(t, "success", TierGenerative.Level())
}

func TestPersistedRowValues(t *testing.T) {
	row := PersistedRow{
		Timestamp:  "2025-03-01T10:00:00Z",
		Gender:     "Female",
		AgeBracket: "31-40",
		Education:  "Degree",
		Total:      50,
		Scores:     [5]int{10, 10, 10, 10, 10},
	}

	values := row.Values()
	require.Len(t, values, RowWidth)
	assert.Equal(t, "2025-03-01T10:00:00Z", values[0])
	assert.Equal(t, 50, values[4])
	assert.Equal(t, 10, values[9])
}
