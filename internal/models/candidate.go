package models

import (
	"database/sql/driver"
	"time"
)

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	GithubLink   string   `json:"github_link"`
	Technologies []string `json:"technologies,omitempty"`
}

type ProjectList []Project

func (l ProjectList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *ProjectList) Scan(src interface{}) error { return jsonbScan(l, src) }

type Education struct {
	Degree         string   `json:"degree"`
	FieldOfStudy   string   `json:"field_of_study"`
	Institution    string   `json:"institution"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
}

type EducationList []Education

func (l EducationList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *EducationList) Scan(src interface{}) error { return jsonbScan(l, src) }

// CandidateProfile is a submitted candidate with per-field embeddings and
// the coding-platform stats fetched once at submission time. Immutable after
// creation.
type CandidateProfile struct {
	CandidateID      string        `gorm:"type:text;primary_key" json:"candidate_id"`
	LeetcodeUsername string        `gorm:"type:text;index" json:"leetcode_username"`
	ResumeText       string        `gorm:"type:text" json:"resume_text"`
	Projects         ProjectList   `gorm:"type:jsonb" json:"projects"`
	Education        EducationList `gorm:"type:jsonb" json:"education"`
	InterviewAnswers StringMap     `gorm:"type:jsonb" json:"interview_answers,omitempty"`
	ExternalStats    JSONMap       `gorm:"type:jsonb" json:"external_stats,omitempty"`
	Vectors          VectorSet     `gorm:"type:jsonb" json:"-"`
	CreatedAt        time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (CandidateProfile) TableName() string {
	return "candidates"
}

// Skills returns the union of technologies across the candidate's projects.
func (c *CandidateProfile) Skills() []string {
	seen := make(map[string]bool)
	var skills []string
	for _, project := range c.Projects {
		for _, tech := range project.Technologies {
			if !seen[tech] {
				seen[tech] = true
				skills = append(skills, tech)
			}
		}
	}
	return skills
}
