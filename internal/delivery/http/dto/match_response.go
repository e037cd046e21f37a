package dto

import (
	"time"

	"campus-match/internal/domain/match"
)

type MatchRecordResponse struct {
	CandidateID        string    `json:"candidate_id"`
	JobID              string    `json:"job_id"`
	SkillMatch         float64   `json:"skill_match"`
	ToolMatch          float64   `json:"tool_match"`
	CategoryMatch      float64   `json:"category_match"`
	WorkModeMatch      float64   `json:"work_mode_match"`
	SemanticSimilarity float64   `json:"semantic_similarity"`
	FinalScore         float64   `json:"final_score"`
	MatchedSkills      []string  `json:"matched_skills"`
	SkillGap           []string  `json:"skill_gap"`
	ComputedAt         time.Time `json:"computed_at"`
}

func FromMatchRecord(rec match.Record) MatchRecordResponse {
	matched := rec.MatchedSkills
	if matched == nil {
		matched = []string{}
	}
	gap := rec.SkillGap
	if gap == nil {
		gap = []string{}
	}
	return MatchRecordResponse{
		CandidateID:        rec.CandidateID.String(),
		JobID:              rec.JobID.String(),
		SkillMatch:         rec.SkillMatch,
		ToolMatch:          rec.ToolMatch,
		CategoryMatch:      rec.CategoryMatch,
		WorkModeMatch:      rec.WorkModeMatch,
		SemanticSimilarity: rec.SemanticSimilarity,
		FinalScore:         rec.FinalScore,
		MatchedSkills:      matched,
		SkillGap:           gap,
		ComputedAt:         rec.ComputedAt,
	}
}

type MatchListResponse struct {
	CandidateID string                `json:"candidate_id"`
	Matches     []MatchRecordResponse `json:"matches"`
}
