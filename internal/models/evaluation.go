package models

import (
	"time"

	"github.com/google/uuid"
)

type RunStatus string

const (
	StatusQueued     RunStatus = "queued"
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// EvaluationRun is one queued execution of the matching pipeline for a job.
// Re-running the same job creates a new run and a fresh report.
type EvaluationRun struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID        string            `gorm:"type:text;not null;index" json:"job_id"`
	Status       RunStatus         `gorm:"not null;default:'queued'" json:"status"`
	Report       *EvaluationReport `gorm:"type:jsonb" json:"report,omitempty"`
	ErrorMessage *string           `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (EvaluationRun) TableName() string {
	return "evaluation_runs"
}
