package matching

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const DefaultEmbeddingDim = 256

// Embedder turns free text into a fixed-length vector. The default is a
// lexical hashing scheme; swapping in a real embedding model only requires
// a new implementation of this interface.
type Embedder interface {
	Embed(text string) []float64
	Dim() int
}

// HashingEmbedder builds a bag-of-words vector by hashing each token into a
// fixed number of buckets and L2-normalising the counts. Deterministic for a
// given dimension; exact values are an implementation detail, not a contract.
type HashingEmbedder struct {
	dim int
}

func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	return &HashingEmbedder{dim: dim}
}

func (h *HashingEmbedder) Dim() int {
	return h.dim
}

func (h *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, h.dim)

	for _, tok := range tokenize(text) {
		hash := fnv.New32a()
		_, _ = hash.Write([]byte(tok))
		vec[int(hash.Sum32())%h.dim]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// tokenize splits lowercased text on non-word runes, keeping + # . so tech
// terms like "c++", "c#" and "node.js" survive as single tokens.
func tokenize(text string) []string {
	var toks []string
	var word strings.Builder
	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if len(w) >= 2 {
			toks = append(toks, w)
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return toks
}
