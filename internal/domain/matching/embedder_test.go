package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashingEmbedderDeterministic(t *testing.T) {
	e := NewHashingEmbedder(64)

	a := e.Embed("golang backend engineer with postgres")
	b := e.Embed("golang backend engineer with postgres")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, 64, e.Dim())
}

func TestHashingEmbedderNormalized(t *testing.T) {
	e := NewHashingEmbedder(DefaultEmbeddingDim)

	vec := e.Embed("distributed systems and message queues")
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestHashingEmbedderEmptyText(t *testing.T) {
	e := NewHashingEmbedder(32)

	vec := e.Embed("")
	require.Len(t, vec, 32)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestHashingEmbedderDefaultDim(t *testing.T) {
	e := NewHashingEmbedder(0)
	assert.Equal(t, DefaultEmbeddingDim, e.Dim())
}

func TestHashingEmbedderSimilarTextCloser(t *testing.T) {
	e := NewHashingEmbedder(DefaultEmbeddingDim)

	base := e.Embed("python django rest api developer")
	near := e.Embed("python django developer")
	far := e.Embed("forklift operator warehouse night shift")

	simNear, err := CosineSimilarity(base, near)
	require.NoError(t, err)
	simFar, err := CosineSimilarity(base, far)
	require.NoError(t, err)
	assert.Greater(t, simNear, simFar)
}

func TestTokenizeKeepsTechRunes(t *testing.T) {
	toks := tokenize("C++ and C# plus Node.js, go!")
	assert.Contains(t, toks, "c++")
	assert.Contains(t, toks, "c#")
	assert.Contains(t, toks, "node.js")
	assert.Contains(t, toks, "go")
	assert.NotContains(t, toks, "and,")
}
