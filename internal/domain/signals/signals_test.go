package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeNormalizesSets(t *testing.T) {
	ext := Extract{
		Skills:   []string{" Go ", "go", "SQL", ""},
		Tools:    []string{"Docker", "docker"},
		Category: CategoryCore,
		WorkMode: WorkModeHybrid,
	}

	out := ext.Sanitize()
	assert.Equal(t, []string{"go", "sql"}, out.Skills)
	assert.Equal(t, []string{"docker"}, out.Tools)
	assert.Equal(t, CategoryCore, out.Category)
	assert.Equal(t, WorkModeHybrid, out.WorkMode)
}

func TestSanitizeClampsUnknownEnums(t *testing.T) {
	out := Extract{Category: "Sports", WorkMode: "Moon"}.Sanitize()
	assert.Equal(t, CategoryTech, out.Category)
	assert.Equal(t, WorkModeAny, out.WorkMode)
}

func TestFromExtract(t *testing.T) {
	emb := []float64{0.1, 0.2}
	sig := FromExtract(Extract{Skills: []string{"go"}, WorkMode: WorkModeRemote}, emb)
	assert.Equal(t, []string{"go"}, sig.Skills)
	assert.Equal(t, WorkModeRemote, sig.WorkMode)
	assert.Equal(t, emb, sig.Embedding)
}
