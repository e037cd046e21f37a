package match

import (
	"time"

	"github.com/google/uuid"
)

// Score holds the weighted components for one (candidate, job) pair.
// Every component and the final score are in [0,1].
type Score struct {
	SkillMatch         float64
	ToolMatch          float64
	CategoryMatch      float64
	WorkModeMatch      float64
	SemanticSimilarity float64
	FinalScore         float64

	MatchedSkills []string
	SkillGap      []string
}

// Record is the cached unit of work. At most one active record exists per
// (candidate, job) pair; Active=false means it must be recomputed on read.
type Record struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	Score
	ComputedAt time.Time
	Active     bool
}

// NotificationMarker is durable proof that a candidate was alerted about a
// job. Its existence is the at-most-once guarantee across restarts.
type NotificationMarker struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	Channel     string
	Score       float64
	SentAt      time.Time
}
