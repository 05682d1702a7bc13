package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveInvalid()
	m.ObserveScored(40, models.TierLatent, true)
	m.ObserveScored(80, models.TierGenerative, false)
	m.ObserveScored(75, models.TierGenerative, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeSaved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeSaveFailed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Tiers.WithLabelValues("Generative")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TotalScore))
}
