package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

func TestJobFieldTexts(t *testing.T) {
	job := &models.JobProfile{
		JobID:            "job_1",
		Title:            "Backend Engineer",
		Description:      "Full description here",
		RequiredSkills:   models.StringList{"Go", "PostgreSQL"},
		PreferredSkills:  models.StringList{"Kubernetes"},
		ExperienceYears:  "5+ years",
		Education:        "Bachelor's in CS",
		Responsibilities: models.StringList{"Build APIs", "Review code"},
	}

	texts := JobFieldTexts(job)

	assert.Contains(t, texts[models.FieldSkills], "Go")
	assert.Contains(t, texts[models.FieldSkills], "Kubernetes")
	assert.Contains(t, texts[models.FieldExperience], "5+ years")
	assert.Equal(t, "Bachelor's in CS", texts[models.FieldEducation])
	assert.Contains(t, texts[models.FieldResponsibilities], "Build APIs")
	assert.Equal(t, "Full description here", texts[models.FieldResume])

	// No benefits were extracted, so the field is simply absent.
	_, ok := texts[models.FieldBenefits]
	assert.False(t, ok)
}

func TestJobFieldTextsEmptyJob(t *testing.T) {
	texts := JobFieldTexts(&models.JobProfile{JobID: "job_1"})

	assert.Empty(t, texts)
}

func TestCandidateFieldTexts(t *testing.T) {
	c := &models.CandidateProfile{
		CandidateID: "candidate_a",
		ResumeText:  "Experienced backend engineer",
		Projects: models.ProjectList{
			{Name: "Chat App", Description: "Realtime chat.", Technologies: []string{"Go", "Redis"}},
			{Name: "ETL", Description: "Batch pipeline.", Technologies: []string{"Python", "Go"}},
		},
		Education: models.EducationList{
			{Degree: "BS", FieldOfStudy: "Computer Science", Institution: "MIT"},
		},
	}

	texts := CandidateFieldTexts(c)

	assert.Equal(t, "Experienced backend engineer", texts[models.FieldResume])
	assert.Equal(t, "Experienced backend engineer", texts[models.FieldExperience])
	assert.Contains(t, texts[models.FieldProjects], "Chat App")
	assert.Contains(t, texts[models.FieldProjects], "ETL")
	assert.Contains(t, texts[models.FieldEducation], "BS in Computer Science from MIT")

	// Skills are the deduplicated union of project technologies.
	assert.Contains(t, texts[models.FieldSkills], "Go")
	assert.Contains(t, texts[models.FieldSkills], "Redis")
	assert.Contains(t, texts[models.FieldSkills], "Python")
}

func TestCandidateSkillsDeduplicated(t *testing.T) {
	c := &models.CandidateProfile{
		Projects: models.ProjectList{
			{Technologies: []string{"Go", "Redis"}},
			{Technologies: []string{"Go"}},
		},
	}

	assert.Equal(t, []string{"Go", "Redis"}, c.Skills())
}
