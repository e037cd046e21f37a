package analyzer

import (
	"regexp"
	"strings"

	"campus-match/internal/domain/signals"
)

// skillVocabulary is the fixed lookup used when the AI provider is
// unavailable. Entries are matched by lowercase substring search.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "go", "c++", "c#",
	"ruby", "php", "swift", "kotlin", "rust", "scala", "sql", "html", "css",
	"react", "angular", "vue", "node", "django", "flask", "spring", "rails",
	"machine learning", "deep learning", "data analysis", "data science",
	"nlp", "computer vision", "devops", "microservices", "rest api", "graphql",
	"accounting", "marketing", "sales", "finance", "operations", "recruiting",
	"communication", "project management", "business analysis", "content writing",
	"mechanical design", "autocad", "solidworks", "plc", "embedded systems",
	"circuit design", "thermodynamics", "manufacturing", "quality control",
}

var toolVocabulary = []string{
	"git", "docker", "kubernetes", "jenkins", "terraform", "ansible",
	"aws", "azure", "gcp", "postgresql", "mysql", "mongodb", "redis",
	"kafka", "rabbitmq", "elasticsearch", "grafana", "linux", "jira",
	"excel", "powerpoint", "tableau", "power bi", "salesforce", "sap",
	"figma", "photoshop", "matlab", "ansys", "catia",
}

var (
	remoteRe = regexp.MustCompile(`(?i)\b(remote|work from home|wfh|anywhere)\b`)
	hybridRe = regexp.MustCompile(`(?i)\bhybrid\b`)
	onsiteRe = regexp.MustCompile(`(?i)\b(on-?site|in-?office|in person)\b`)

	techRe = regexp.MustCompile(`(?i)\b(software|developer|engineer|programming|coding|data|cloud|backend|frontend|full[- ]?stack|devops|ml|ai)\b`)
	coreRe = regexp.MustCompile(`(?i)\b(mechanical|civil|electrical|chemical|manufacturing|production|plant|design engineer)\b`)
)

// KeywordFallback is the deterministic local analyzer. It produces the same
// Extract shape as the AI path so callers cannot tell which one ran.
type KeywordFallback struct{}

func NewKeywordFallback() *KeywordFallback {
	return &KeywordFallback{}
}

func (f *KeywordFallback) Extract(text string, kind Kind) signals.Extract {
	lower := strings.ToLower(text)

	ext := signals.Extract{
		Skills:   scanVocabulary(lower, skillVocabulary),
		Tools:    scanVocabulary(lower, toolVocabulary),
		Category: detectCategory(text),
		WorkMode: detectWorkMode(text, kind),
	}
	return ext.Sanitize()
}

func scanVocabulary(lowerText string, vocab []string) []string {
	found := make([]string, 0)
	for _, term := range vocab {
		if strings.Contains(lowerText, term) {
			found = append(found, term)
		}
	}
	return found
}

func detectCategory(text string) signals.Category {
	// Core cues win over Tech: "mechanical design engineer" mentions
	// "engineer" but is a core-engineering role.
	if coreRe.MatchString(text) {
		return signals.CategoryCore
	}
	if techRe.MatchString(text) {
		return signals.CategoryTech
	}
	return signals.CategoryNonTech
}

func detectWorkMode(text string, kind Kind) signals.WorkMode {
	switch {
	case hybridRe.MatchString(text):
		return signals.WorkModeHybrid
	case remoteRe.MatchString(text):
		return signals.WorkModeRemote
	case onsiteRe.MatchString(text):
		return signals.WorkModeOnsite
	}
	if kind == KindJob {
		// Campus postings default to on-site unless stated otherwise.
		return signals.WorkModeOnsite
	}
	return signals.WorkModeAny
}
