package models

import (
	"time"
)

// JobProfile is a parsed job description with its per-field embeddings.
// Never mutated after creation; re-parsing a description creates a new job.
type JobProfile struct {
	JobID            string     `gorm:"type:text;primary_key" json:"job_id"`
	Title            string     `gorm:"type:text" json:"title"`
	Company          string     `gorm:"type:text" json:"company,omitempty"`
	Location         string     `gorm:"type:text" json:"location,omitempty"`
	Description      string     `gorm:"type:text" json:"description"`
	RequiredSkills   StringList `gorm:"type:jsonb" json:"required_skills"`
	PreferredSkills  StringList `gorm:"type:jsonb" json:"preferred_skills"`
	ExperienceYears  string     `gorm:"type:text" json:"experience_years,omitempty"`
	Education        string     `gorm:"type:text" json:"education,omitempty"`
	Responsibilities StringList `gorm:"type:jsonb" json:"responsibilities"`
	Benefits         StringList `gorm:"type:jsonb" json:"benefits"`
	JobType          string     `gorm:"type:text" json:"job_type,omitempty"`
	SalaryRange      string     `gorm:"type:text" json:"salary_range,omitempty"`
	Vectors          VectorSet  `gorm:"type:jsonb" json:"-"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (JobProfile) TableName() string {
	return "jobs"
}
