package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

// Submission outcomes.
const (
	OutcomeSaved      = "saved"
	OutcomeSaveFailed = "save_failed"
	OutcomeInvalid    = "invalid"
)

// Metrics holds the Prometheus collectors for assessment submissions.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Tiers       *prometheus.CounterVec
	TotalScore  prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isaq_submissions_total",
			Help: "Assessment submissions by outcome",
		}, []string{"outcome"}),
		Tiers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isaq_tier_total",
			Help: "Scored assessments by tier",
		}, []string{"tier"}),
		TotalScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "isaq_total_score",
			Help:    "Distribution of total scores",
			Buckets: []float64{15, 25, 35, 45, 55, 62, 70, 80, 90},
		}),
	}
}

// ObserveInvalid counts a submission rejected at validation.
func (m *Metrics) ObserveInvalid() {
	m.Submissions.WithLabelValues(OutcomeInvalid).Inc()
}

// ObserveScored records the tier and total of a scored submission and
// whether its row reached the spreadsheet.
func (m *Metrics) ObserveScored(total int, tier models.Tier, saved bool) {
	m.TotalScore.Observe(float64(total))
	m.Tiers.WithLabelValues(tier.String()).Inc()
	if saved {
		m.Submissions.WithLabelValues(OutcomeSaved).Inc()
	} else {
		m.Submissions.WithLabelValues(OutcomeSaveFailed).Inc()
	}
}
