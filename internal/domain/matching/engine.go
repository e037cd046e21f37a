package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"campus-match/internal/domain/match"
	"campus-match/internal/domain/signals"
)

var ErrEmbeddingDimMismatch = errors.New("embedding dimension mismatch")

// Weights is the named configuration for the final score blend.
// The components must sum to 1.
type Weights struct {
	Skill    float64
	Tool     float64
	Category float64
	WorkMode float64
	Semantic float64
}

func DefaultWeights() Weights {
	return Weights{
		Skill:    0.5,
		Tool:     0.1,
		Category: 0.1,
		WorkMode: 0.1,
		Semantic: 0.2,
	}
}

func (w Weights) Validate() error {
	sum := w.Skill + w.Tool + w.Category + w.WorkMode + w.Semantic
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Scorer produces a match score for one (candidate, job) signal pair.
// When multiple scorers are configured the resolver keeps the highest
// final score.
type Scorer interface {
	Score(candidate, job signals.Signals) (match.Score, error)
}

// Engine is the deterministic heuristic scorer. No I/O.
type Engine struct {
	weights Weights
}

func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: w}, nil
}

func (e *Engine) Score(candidate, job signals.Signals) (match.Score, error) {
	skillMatch, matched, gap := overlap(candidate.Skills, job.Skills)
	toolMatch, _, _ := overlap(candidate.Tools, job.Tools)

	categoryMatch := 0.0
	if candidate.Category == job.Category {
		categoryMatch = 1.0
	}

	workModeMatch := workModeScore(candidate.WorkMode, job.WorkMode)

	semantic, err := CosineSimilarity(candidate.Embedding, job.Embedding)
	if err != nil {
		return match.Score{}, err
	}

	s := match.Score{
		SkillMatch:         skillMatch,
		ToolMatch:          toolMatch,
		CategoryMatch:      categoryMatch,
		WorkModeMatch:      workModeMatch,
		SemanticSimilarity: semantic,
		MatchedSkills:      matched,
		SkillGap:           gap,
	}
	s.FinalScore = e.weights.Skill*skillMatch +
		e.weights.Tool*toolMatch +
		e.weights.Category*categoryMatch +
		e.weights.WorkMode*workModeMatch +
		e.weights.Semantic*semantic
	return s, nil
}

// overlap counts candidate entries matching any required entry by
// case-insensitive substring containment in either direction ("react"
// matches "reactjs"). The denominator is the required-set size; an empty
// required set yields 0, never a division error.
func overlap(candidateSet, requiredSet []string) (ratio float64, matched, gap []string) {
	matched = make([]string, 0)
	gap = make([]string, 0)

	cand := lowerSet(candidateSet)
	req := lowerSet(requiredSet)

	if len(req) == 0 {
		return 0, matched, gap
	}

	hits := 0
	covered := make(map[string]bool, len(req))
	for _, c := range cand {
		for _, r := range req {
			if strings.Contains(c, r) || strings.Contains(r, c) {
				hits++
				covered[r] = true
				break
			}
		}
	}

	for _, r := range req {
		if covered[r] {
			matched = append(matched, r)
		} else {
			gap = append(gap, r)
		}
	}
	sort.Strings(matched)
	sort.Strings(gap)

	ratio = float64(hits) / float64(len(req))
	if ratio > 1 {
		ratio = 1
	}
	return ratio, matched, gap
}

func workModeScore(candidate, job signals.WorkMode) float64 {
	if candidate == job || candidate == signals.WorkModeAny {
		return 1
	}
	if candidate == signals.WorkModeHybrid &&
		(job == signals.WorkModeRemote || job == signals.WorkModeOnsite) {
		return 0.7
	}
	return 0
}

// CosineSimilarity returns the cosine of two equal-length vectors. Mismatched
// lengths are invalid input; a zero vector on either side yields 0, not NaN.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrEmbeddingDimMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

func lowerSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
