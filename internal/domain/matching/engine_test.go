package matching

import (
	"testing"

	"campus-match/internal/domain/signals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	bad := Weights{Skill: 0.5, Tool: 0.5, Category: 0.5}
	require.Error(t, bad.Validate())
}

func TestNewEngineRejectsBadWeights(t *testing.T) {
	_, err := NewEngine(Weights{Skill: 1.5})
	require.Error(t, err)
}

func TestScoreSkillOverlap(t *testing.T) {
	engine, err := NewEngine(DefaultWeights())
	require.NoError(t, err)

	candidate := signals.Signals{
		Skills:   []string{"Python", "Django"},
		Category: signals.CategoryTech,
		WorkMode: signals.WorkModeAny,
	}
	job := signals.Signals{
		Skills:   []string{"python", "aws"},
		Category: signals.CategoryTech,
		WorkMode: signals.WorkModeOnsite,
	}

	score, err := engine.Score(candidate, job)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, score.SkillMatch, 1e-9)
	assert.Equal(t, []string{"python"}, score.MatchedSkills)
	assert.Equal(t, []string{"aws"}, score.SkillGap)
	assert.Equal(t, 1.0, score.CategoryMatch)
	assert.Equal(t, 1.0, score.WorkModeMatch)
}

func TestScoreSubstringContainment(t *testing.T) {
	engine, err := NewEngine(DefaultWeights())
	require.NoError(t, err)

	candidate := signals.Signals{Skills: []string{"react"}, WorkMode: signals.WorkModeAny}
	job := signals.Signals{Skills: []string{"ReactJS"}, WorkMode: signals.WorkModeAny}

	score, err := engine.Score(candidate, job)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score.SkillMatch)
	assert.Equal(t, []string{"reactjs"}, score.MatchedSkills)
	assert.Empty(t, score.SkillGap)
}

func TestScoreEmptyRequiredSets(t *testing.T) {
	engine, err := NewEngine(DefaultWeights())
	require.NoError(t, err)

	candidate := signals.Signals{
		Skills:   []string{"go", "sql"},
		Tools:    []string{"docker"},
		WorkMode: signals.WorkModeAny,
	}
	job := signals.Signals{WorkMode: signals.WorkModeOnsite}

	score, err := engine.Score(candidate, job)
	require.NoError(t, err)
	assert.Zero(t, score.SkillMatch)
	assert.Zero(t, score.ToolMatch)
	assert.Empty(t, score.MatchedSkills)
	assert.Empty(t, score.SkillGap)
}

func TestScoreIsBounded(t *testing.T) {
	engine, err := NewEngine(DefaultWeights())
	require.NoError(t, err)

	candidate := signals.Signals{
		Skills:    []string{"go", "golang", "go lang"},
		Tools:     []string{"docker", "kubernetes"},
		Category:  signals.CategoryTech,
		WorkMode:  signals.WorkModeAny,
		Embedding: []float64{1, 0},
	}
	job := signals.Signals{
		Skills:    []string{"go"},
		Tools:     []string{"docker"},
		Category:  signals.CategoryTech,
		WorkMode:  signals.WorkModeRemote,
		Embedding: []float64{1, 0},
	}

	score, err := engine.Score(candidate, job)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score.FinalScore, 0.0)
	assert.LessOrEqual(t, score.FinalScore, 1.0)
	assert.LessOrEqual(t, score.SkillMatch, 1.0)
}

func TestScoreWeightedBlend(t *testing.T) {
	engine, err := NewEngine(DefaultWeights())
	require.NoError(t, err)

	candidate := signals.Signals{
		Category:  signals.CategoryTech,
		WorkMode:  signals.WorkModeRemote,
		Embedding: []float64{1, 0},
	}
	job := signals.Signals{
		Category:  signals.CategoryTech,
		WorkMode:  signals.WorkModeRemote,
		Embedding: []float64{0.8, 0.6},
	}

	score, err := engine.Score(candidate, job)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score.SemanticSimilarity, 1e-9)
	assert.InDelta(t, 0.36, score.FinalScore, 1e-9)
}

func TestWorkModeScore(t *testing.T) {
	cases := []struct {
		name      string
		candidate signals.WorkMode
		job       signals.WorkMode
		want      float64
	}{
		{"exact", signals.WorkModeRemote, signals.WorkModeRemote, 1},
		{"any candidate", signals.WorkModeAny, signals.WorkModeOnsite, 1},
		{"hybrid vs remote", signals.WorkModeHybrid, signals.WorkModeRemote, 0.7},
		{"hybrid vs onsite", signals.WorkModeHybrid, signals.WorkModeOnsite, 0.7},
		{"remote vs onsite", signals.WorkModeRemote, signals.WorkModeOnsite, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, workModeScore(tc.candidate, tc.job))
		})
	}
}

func TestCosineSimilarity(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 0}, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.Zero(t, sim)

	sim, err = CosineSimilarity([]float64{0, 0}, []float64{1, 1})
	require.NoError(t, err)
	assert.Zero(t, sim)

	_, err = CosineSimilarity([]float64{1}, []float64{1, 2})
	require.ErrorIs(t, err, ErrEmbeddingDimMismatch)
}

func TestCosineSimilarityClampsNegative(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 0}, []float64{-1, 0})
	require.NoError(t, err)
	assert.Zero(t, sim)
}
