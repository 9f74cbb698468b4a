package services

import (
	"fmt"
	"strings"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// JobFieldTexts builds the per-field source text to embed for a parsed job.
// Fields the description did not yield are omitted, so the job simply has no
// vector for them.
func JobFieldTexts(job *models.JobProfile) map[models.FieldType]string {
	texts := make(map[models.FieldType]string)

	skills := append([]string{}, job.RequiredSkills...)
	skills = append(skills, job.PreferredSkills...)
	if len(skills) > 0 {
		texts[models.FieldSkills] = "Skills: " + strings.Join(skills, ", ")
	}

	if job.ExperienceYears != "" {
		texts[models.FieldExperience] = fmt.Sprintf("Required experience: %s for %s", job.ExperienceYears, job.Title)
	}

	if job.Education != "" {
		texts[models.FieldEducation] = job.Education
	}

	if len(job.Responsibilities) > 0 {
		texts[models.FieldResponsibilities] = strings.Join(job.Responsibilities, ". ")
	}

	if len(job.Benefits) > 0 {
		texts[models.FieldBenefits] = strings.Join(job.Benefits, ". ")
	}

	// The full description stands in for the resume field on the job side.
	if job.Description != "" {
		texts[models.FieldResume] = job.Description
	}

	return texts
}

// CandidateFieldTexts builds the per-field source text to embed for a
// submitted candidate. Multiple projects and education entries concatenate
// into one text per field, one vector per field type.
func CandidateFieldTexts(c *models.CandidateProfile) map[models.FieldType]string {
	texts := make(map[models.FieldType]string)

	if c.ResumeText != "" {
		texts[models.FieldResume] = c.ResumeText
	}

	if len(c.Projects) > 0 {
		var parts []string
		for _, p := range c.Projects {
			parts = append(parts, fmt.Sprintf("%s: %s Technologies: %s",
				p.Name, p.Description, strings.Join(p.Technologies, ", ")))
		}
		texts[models.FieldProjects] = strings.Join(parts, "\n")
	}

	if len(c.Education) > 0 {
		var parts []string
		for _, edu := range c.Education {
			parts = append(parts, fmt.Sprintf("%s in %s from %s", edu.Degree, edu.FieldOfStudy, edu.Institution))
		}
		texts[models.FieldEducation] = strings.Join(parts, ". ")
	}

	if skills := c.Skills(); len(skills) > 0 {
		texts[models.FieldSkills] = "Skills: " + strings.Join(skills, ", ")
	}

	// Experience is described by the resume narrative; reuse it so jobs with
	// an experience requirement still find signal on the candidate side.
	if c.ResumeText != "" {
		texts[models.FieldExperience] = c.ResumeText
	}

	return texts
}
