package dto

type JobPublishedRequest struct {
	JobID string `json:"job_id"`
}

type ProfileUpdatedRequest struct {
	CandidateID string `json:"candidate_id"`
}

type ApplicationSubmittedRequest struct {
	CandidateID string `json:"candidate_id"`
	JobID       string `json:"job_id"`
}

type InvalidateRequest struct {
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       string `json:"job_id,omitempty"`
}

type TriggerResponse struct {
	Started bool `json:"started"`
}
