package models

import (
	"database/sql/driver"
)

// CompositeScore is the aggregated similarity of one candidate against one
// job. Derived fresh on every pipeline run, never cached across jobs.
type CompositeScore struct {
	CandidateID        string                `json:"candidate_id"`
	JobID              string                `json:"job_id"`
	PerFieldSimilarity map[FieldType]float64 `json:"per_field_similarity"`
	Composite          float64               `json:"composite"`
}

const (
	RecommendationHighly       = "Highly Recommended"
	RecommendationRecommended  = "Recommended"
	RecommendationConsider     = "Consider"
	RecommendationNotRecommend = "Not Recommended"
	RecommendationFailed       = "Evaluation Failed"
)

// KnownRecommendations are the values the evaluation service may return.
// Anything else is a schema violation.
func KnownRecommendations() []string {
	return []string{
		RecommendationHighly,
		RecommendationRecommended,
		RecommendationConsider,
		RecommendationNotRecommend,
	}
}

// Verdict is the structured output of one external LLM evaluation.
type Verdict struct {
	FinalScore     int      `json:"final_score"`
	Recommendation string   `json:"recommendation"`
	Strengths      []string `json:"strengths"`
	Concerns       []string `json:"concerns"`
	Reasoning      string   `json:"reasoning"`
}

// RankedCandidate merges a survivor's composite score with its verdict. For
// partial failures LLMEvaluation is nil, Recommendation is "Evaluation
// Failed" and ProceedToOA is false while the similarity score stays intact.
type RankedCandidate struct {
	CandidateID        string                `json:"candidate_id"`
	JobID              string                `json:"job_id"`
	SimilarityScore    float64               `json:"similarity_score"`
	PerFieldSimilarity map[FieldType]float64 `json:"per_field_similarity"`
	LLMEvaluation      *Verdict              `json:"llm_evaluation,omitempty"`
	FinalScore         int                   `json:"final_score"`
	Recommendation     string                `json:"recommendation"`
	Reasoning          string                `json:"reasoning,omitempty"`
	ProceedToOA        bool                  `json:"proceed_to_oa"`
}

// EvaluationReport is the terminal artifact of one pipeline run.
type EvaluationReport struct {
	JobID                   string            `json:"job_id"`
	JobTitle                string            `json:"job_title"`
	Company                 string            `json:"company,omitempty"`
	TotalCandidatesAnalyzed int               `json:"total_candidates_analyzed"`
	InitialMatches          int               `json:"initial_matches"`
	EliminatedCount         int               `json:"eliminated_count"`
	AfterFilter             int               `json:"after_60_percent_filter"`
	FinalRecommendations    []RankedCandidate `json:"final_recommendations"`
	Message                 string            `json:"message"`
}

func (r EvaluationReport) Value() (driver.Value, error) { return jsonbValue(r) }

func (r *EvaluationReport) Scan(src interface{}) error { return jsonbScan(r, src) }
