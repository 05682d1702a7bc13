package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BerylCAtieno/impact-assessment/internal/assessment"
	"github.com/BerylCAtieno/impact-assessment/internal/questionnaire"
	"github.com/BerylCAtieno/impact-assessment/internal/scoring"
)

const (
	msgMissingDemographics = "Please fill in the demographic fields."
	msgInvalidResponses    = "Every answer must be between 1 and 6."
	msgSaved               = "Data saved!"
	msgSaveFailed          = "Save error"
)

// Submitter processes one questionnaire submission.
type Submitter interface {
	Submit(ctx context.Context, sub assessment.Submission) (*assessment.Outcome, error)
}

type Handler struct {
	service Submitter
}

func NewHandler(service Submitter) *Handler {
	return &Handler{
		service: service,
	}
}

// RequestLoggingMiddleware tags each request with an ID and logs its status.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request handled")
	}
}

// ShowForm renders an empty questionnaire.
func (h *Handler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", newFormPage(SubmissionRequest{}, ""))
}

// SubmitForm handles the HTML form post.
func (h *Handler) SubmitForm(c *gin.Context) {
	submittedAt := time.Now()

	var req SubmissionRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Warn().Err(err).Msg("failed to bind form")
		c.HTML(http.StatusBadRequest, "form.html", newFormPage(req, msgInvalidResponses))
		return
	}

	sub, errMsg := h.prepare(req, submittedAt)
	if errMsg != "" {
		c.HTML(http.StatusUnprocessableEntity, "form.html", newFormPage(req, errMsg))
		return
	}

	outcome, err := h.service.Submit(c.Request.Context(), sub)
	if err != nil {
		h.renderSubmitError(c, req, err)
		return
	}

	c.HTML(http.StatusOK, "result.html", newResultPage(outcome))
}

// SubmitJSON handles POST /api/assessments.
func (h *Handler) SubmitJSON(c *gin.Context) {
	submittedAt := time.Now()

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("failed to decode request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := scoring.ValidateDemographics(req.Demographics()); err != nil {
		writeValidationError(c, msgMissingDemographics, err)
		return
	}
	responses, err := scoring.ValidateResponses(req.Responses)
	if err != nil {
		writeValidationError(c, msgInvalidResponses, err)
		return
	}

	outcome, err := h.service.Submit(c.Request.Context(), assessment.Submission{
		Demographics: req.Demographics(),
		Responses:    responses,
		SubmittedAt:  submittedAt,
	})
	if err != nil {
		writeValidationError(c, msgMissingDemographics, err)
		return
	}

	c.JSON(http.StatusOK, AssessmentResponse{
		Outcome:  outcome,
		ChartSVG: string(outcome.Chart),
	})
}

// ServeQuestionnaire returns the item list and option lists.
func (h *Handler) ServeQuestionnaire(c *gin.Context) {
	c.JSON(http.StatusOK, questionnaire.Describe())
}

// prepare validates demographics first, then responses, and returns the
// message to show when either is rejected.
func (h *Handler) prepare(req SubmissionRequest, submittedAt time.Time) (assessment.Submission, string) {
	if err := scoring.ValidateDemographics(req.Demographics()); err != nil {
		log.Info().Err(err).Msg("submission rejected")
		return assessment.Submission{}, msgMissingDemographics
	}

	responses, err := scoring.ValidateResponses(req.Responses)
	if err != nil {
		log.Info().Err(err).Msg("submission rejected")
		return assessment.Submission{}, msgInvalidResponses
	}

	return assessment.Submission{
		Demographics: req.Demographics(),
		Responses:    responses,
		SubmittedAt:  submittedAt,
	}, ""
}

func (h *Handler) renderSubmitError(c *gin.Context, req SubmissionRequest, err error) {
	var vErr *scoring.ValidationError
	if errors.As(err, &vErr) {
		c.HTML(http.StatusUnprocessableEntity, "form.html", newFormPage(req, msgMissingDemographics))
		return
	}

	log.Error().Err(err).Msg("submission failed")
	c.HTML(http.StatusInternalServerError, "form.html", newFormPage(req, "Something went wrong, please try again."))
}

func writeValidationError(c *gin.Context, msg string, err error) {
	var vErr *scoring.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg, Fields: vErr.Fields})
		return
	}

	log.Error().Err(err).Msg("submission failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
