package models

type SubmitJobRequest struct {
	Description string `json:"job_description" validate:"required"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
}

type SubmitCandidateRequest struct {
	LeetcodeUsername string            `json:"leetcode_username" validate:"required"`
	ResumeText       string            `json:"resume_text" validate:"required"`
	Projects         []Project         `json:"projects" validate:"required,min=1"`
	Education        []Education       `json:"education" validate:"required,min=1"`
	InterviewAnswers map[string]string `json:"interview_answers,omitempty"`
}

type SubmitCandidateResponse struct {
	CandidateID         string  `json:"candidate_id"`
	LeetcodeUsername    string  `json:"leetcode_username"`
	LeetcodeInfo        JSONMap `json:"leetcode_info"`
	EmbeddingsGenerated int     `json:"embeddings_generated"`
	Message             string  `json:"message"`
}

type EvaluateResponse struct {
	RunID  string `json:"run_id"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type RunResultResponse struct {
	ID           string            `json:"id"`
	JobID        string            `json:"job_id"`
	Status       string            `json:"status"`
	Report       *EvaluationReport `json:"report,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

type ResumeUploadResponse struct {
	Filename   string `json:"filename"`
	ResumeText string `json:"resume_text"`
	Pages      int    `json:"pages"`
}
