package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campus-match/internal/domain/signals"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

const jobPrompt = `You are a recruitment analyst. Extract structured hiring signals from the job posting below.

Return ONLY a JSON object with this exact structure, no markdown and no explanation:
{
  "skills": ["required skill", ...],
  "tools": ["required tool or platform", ...],
  "category": "Tech" | "Non-Tech" | "Core",
  "work_mode": "Remote" | "Onsite" | "Hybrid"
}

Base everything strictly on the text. Do not invent requirements.

JOB POSTING:
`

const resumePrompt = `You are a recruitment analyst. Extract structured candidate signals from the resume below.

Return ONLY a JSON object with this exact structure, no markdown and no explanation:
{
  "skills": ["skill the candidate has", ...],
  "tools": ["tool the candidate has used", ...],
  "category": "Tech" | "Non-Tech" | "Core",
  "work_mode": "Remote" | "Onsite" | "Hybrid" | "Any"
}

Use "Any" for work_mode when the resume states no preference.
Base everything strictly on the text. Do not invent experience.

RESUME:
`

// GeminiExtractor is the primary analysis path, backed by the Gemini API in
// JSON mode. Every failure mode (transport, malformed payload, contract
// violation) surfaces as an error so the adapter can fall back.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

func (g *GeminiExtractor) ExtractSignals(ctx context.Context, text string, kind Kind) (signals.Extract, error) {
	prompt := jobPrompt
	if kind == KindResume {
		prompt = resumePrompt
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt+text))
	if err != nil {
		return signals.Extract{}, fmt.Errorf("gemini generate: %w", err)
	}

	raw, err := textFromResponse(resp)
	if err != nil {
		return signals.Extract{}, err
	}
	raw = cleanJSONBlock(raw)

	if err := validateExtractJSON([]byte(raw)); err != nil {
		return signals.Extract{}, err
	}

	var ext signals.Extract
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return signals.Extract{}, fmt.Errorf("decode analyzer response: %w", err)
	}
	return ext, nil
}

func (g *GeminiExtractor) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty analyzer response")
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("analyzer response contained no text")
	}
	return out, nil
}

// cleanJSONBlock strips markdown code fences some models wrap around JSON.
func cleanJSONBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
