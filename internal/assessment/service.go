package assessment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/impact-assessment/internal/metrics"
	"github.com/BerylCAtieno/impact-assessment/internal/models"
	"github.com/BerylCAtieno/impact-assessment/internal/questionnaire"
	"github.com/BerylCAtieno/impact-assessment/internal/scoring"
)

// ChartRenderer draws the sub-scores. The scorer never depends on it.
type ChartRenderer interface {
	Render(result models.ScoreResult) ([]byte, error)
}

// RowAppender persists one row and reports the outcome.
type RowAppender interface {
	AppendRow(ctx context.Context, row models.PersistedRow) models.AppendResult
}

// Reflector produces optional narrative feedback.
type Reflector interface {
	Reflect(ctx context.Context, result models.ScoreResult, tier models.Tier) (string, error)
}

// Submission is a single filled-in questionnaire.
type Submission struct {
	Demographics models.Demographics
	Responses    models.ResponseVector
	// SubmittedAt is when the form arrived; zero means now.
	SubmittedAt time.Time
}

// Outcome is everything shown back to the respondent.
type Outcome struct {
	ID          string              `json:"id"`
	SubmittedAt string              `json:"submitted_at"`
	Result      models.ScoreResult  `json:"result"`
	Tier        models.Tier         `json:"tier"`
	Message     string              `json:"message"`
	Level       string              `json:"level"`
	Chart       []byte              `json:"-"`
	Persistence models.AppendResult `json:"persistence"`
	Reflection  string              `json:"reflection,omitempty"`
}

// Service runs the score, classify, render, persist flow.
type Service struct {
	// mu serializes submissions so each completes before the next starts.
	mu sync.Mutex

	items     [models.ItemCount]models.QuestionItem
	chart     ChartRenderer
	store     RowAppender
	reflector Reflector
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithReflector enables narrative feedback.
func WithReflector(r Reflector) Option {
	return func(s *Service) { s.reflector = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(chart ChartRenderer, store RowAppender, m *metrics.Metrics, opts ...Option) (*Service, error) {
	items := questionnaire.Items()
	if err := questionnaire.Validate(items); err != nil {
		return nil, fmt.Errorf("invalid questionnaire: %w", err)
	}

	s := &Service{
		items:   items,
		chart:   chart,
		store:   store,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit processes one submission. A *scoring.ValidationError means nothing
// was persisted. Persistence failures are reported in the outcome, not as an
// error.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = s.now()
	}

	if err := scoring.ValidateDemographics(sub.Demographics); err != nil {
		s.metrics.ObserveInvalid()
		return nil, err
	}

	result := scoring.ComputeScores(s.items, sub.Responses)
	tier := scoring.Classify(result.Total)

	outcome := &Outcome{
		ID:      uuid.New().String(),
		Result:  result,
		Tier:    tier,
		Message: tier.Message(),
		Level:   tier.Level(),
	}

	chart, err := s.chart.Render(result)
	if err != nil {
		log.Warn().Err(err).Str("submission_id", outcome.ID).Msg("failed to render chart")
	} else {
		outcome.Chart = chart
	}

	row, err := scoring.BuildPersistedRow(submittedAt, sub.Demographics, result.Total, result)
	if err != nil {
		s.metrics.ObserveInvalid()
		return nil, err
	}
	outcome.SubmittedAt = row.Timestamp

	outcome.Persistence = s.store.AppendRow(ctx, row)
	s.metrics.ObserveScored(result.Total, tier, outcome.Persistence.Success)

	if s.reflector != nil {
		text, err := s.reflector.Reflect(ctx, result, tier)
		if err != nil {
			log.Warn().Err(err).Str("submission_id", outcome.ID).Msg("failed to generate reflection")
		} else {
			outcome.Reflection = text
		}
	}

	log.Info().
		Str("submission_id", outcome.ID).
		Int("total", result.Total).
		Str("tier", tier.String()).
		Bool("saved", outcome.Persistence.Success).
		Msg("assessment submitted")

	return outcome, nil
}
