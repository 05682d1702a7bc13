package reflection

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/impact-assessment/internal/models"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash-lite"

// GeminiClient writes a short narrative comment on a scored assessment.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(512)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// Reflect returns a few sentences of feedback on the result.
func (g *GeminiClient) Reflect(ctx context.Context, result models.ScoreResult, tier models.Tier) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(result, tier)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var builder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			builder.WriteString(string(text))
		}
	}
	return strings.TrimSpace(builder.String()), nil
}

// BuildPrompt describes the scores to the model.
func BuildPrompt(result models.ScoreResult, tier models.Tier) string {
	var scores strings.Builder
	for _, d := range models.Dimensions {
		fmt.Fprintf(&scores, "- %s: %d/18\n", d, result.Score(d))
	}

	return fmt.Sprintf(`You are a coach reviewing a workplace impact self-assessment.
The respondent scored %d/90 overall, which falls in the "%s" band.
Sub-scores per dimension (3 to 18 each):
%s
Write at most four plain sentences: name the strongest and the weakest dimension and suggest one concrete next step for the weakest.
Do not use markdown, lists or headings.`, result.Total, tier.Message(), scores.String())
}
