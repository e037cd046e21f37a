package analyzer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

const matchScorePrompt = `You are a recruitment analyst. Rate how well the candidate resume fits the job posting.

Return ONLY a JSON object, no markdown and no explanation:
{"match_score": <integer 0-100>}

Base the rating strictly on the two texts.

RESUME:
%s

JOB POSTING:
%s
`

// MatchScorer is the AI resume-vs-description scorer. It produces only a
// final score; the resolver keeps the maximum across all configured scorers.
type MatchScorer struct {
	extractor *GeminiExtractor
}

func NewMatchScorer(extractor *GeminiExtractor) *MatchScorer {
	return &MatchScorer{extractor: extractor}
}

func (s *MatchScorer) Name() string {
	return "gemini_resume_match"
}

func (s *MatchScorer) FinalScore(ctx context.Context, candidateText, jobText string) (float64, error) {
	if s == nil || s.extractor == nil || s.extractor.client == nil {
		return 0, fmt.Errorf("match scorer not configured")
	}

	model := s.extractor.client.GenerativeModel(s.extractor.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(matchScorePrompt, candidateText, jobText)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("gemini match score: %w", err)
	}

	raw, err := textFromResponse(resp)
	if err != nil {
		return 0, err
	}

	var out struct {
		MatchScore float64 `json:"match_score"`
	}
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &out); err != nil {
		return 0, fmt.Errorf("decode match score: %w", err)
	}

	score := out.MatchScore / 100
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
