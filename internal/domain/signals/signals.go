package signals

import "strings"

// Category is the broad track a candidate targets or a job belongs to.
type Category string

const (
	CategoryTech    Category = "Tech"
	CategoryNonTech Category = "Non-Tech"
	CategoryCore    Category = "Core"
)

// WorkMode is a work-location preference. WorkModeAny is valid only on the
// candidate side and matches everything.
type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeOnsite WorkMode = "Onsite"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeAny    WorkMode = "Any"
)

// Extract is the analyzer output contract. The AI path and the keyword
// fallback both produce exactly this shape, so callers never know which ran.
type Extract struct {
	Skills   []string `json:"skills"`
	Tools    []string `json:"tools"`
	Category Category `json:"category"`
	WorkMode WorkMode `json:"work_mode"`
}

// Signals is the complete scoring input for one side of a pair: the analyzer
// extract plus an embedding of the raw text.
type Signals struct {
	Skills    []string
	Tools     []string
	Category  Category
	WorkMode  WorkMode
	Embedding []float64
}

// FromExtract builds scoring signals from an analyzer extract and an embedding.
func FromExtract(e Extract, embedding []float64) Signals {
	return Signals{
		Skills:    e.Skills,
		Tools:     e.Tools,
		Category:  e.Category,
		WorkMode:  e.WorkMode,
		Embedding: embedding,
	}
}

// Sanitize trims and lowercases skill/tool entries, drops empties and
// duplicates, and clamps category/work mode to known values.
func (e Extract) Sanitize() Extract {
	out := Extract{
		Skills:   normalizeSet(e.Skills),
		Tools:    normalizeSet(e.Tools),
		Category: e.Category,
		WorkMode: e.WorkMode,
	}

	switch e.Category {
	case CategoryTech, CategoryNonTech, CategoryCore:
	default:
		out.Category = CategoryTech
	}

	switch e.WorkMode {
	case WorkModeRemote, WorkModeOnsite, WorkModeHybrid, WorkModeAny:
	default:
		out.WorkMode = WorkModeAny
	}

	return out
}

func normalizeSet(in []string) []string {
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
