package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildJobExtractionPrompt creates the prompt for structured field
// extraction from a raw job description.
func (pb *PromptBuilder) BuildJobExtractionPrompt(jobDescription string) string {
	return fmt.Sprintf(`Extract the following information from the job description below. Return the data as a valid JSON object.

Required fields:
- title: Job title
- company: Company name (if mentioned)
- location: Job location (if mentioned)
- required_skills: List of required skills
- preferred_skills: List of preferred/nice-to-have skills
- experience_years: Required years of experience (e.g., "3-5 years", "5+", etc.)
- education: Education requirements
- responsibilities: List of main responsibilities
- benefits: List of benefits offered
- job_type: Type of job (Full-time, Part-time, Contract, etc.)
- salary_range: Salary range if mentioned

Job Description:
%s

Return only the JSON object, no additional text.`, jobDescription)
}

// BuildEvaluationPrompt creates the prompt sent to the evaluation service
// for one candidate-job dossier.
func (pb *PromptBuilder) BuildEvaluationPrompt(d Dossier) string {
	return fmt.Sprintf(`You are an expert technical recruiter. Evaluate the following candidate for the job position.

JOB DETAILS:
- Title: %s
- Company: %s
- Required Skills: %s
- Experience: %s
- Description: %s

CANDIDATE PROFILE:
- LeetCode Username: %s
- Resume Summary: %s
- Skills: %s
- Projects: %d projects
%s
- Education: %d degrees

CODING PLATFORM STATS:
%s

SIMILARITY SCORES:
- Composite: %.2f
%s

TASK:
Evaluate this candidate for the job. Provide:
1. A final score (0-100)
2. A recommendation (exactly one of: Highly Recommended / Recommended / Consider / Not Recommended)
3. Brief reasoning (2-3 sentences)
4. Key strengths and concerns

Return ONLY a valid JSON object with these fields:
{
    "final_score": <number 0-100>,
    "recommendation": "<string>",
    "reasoning": "<string>",
    "strengths": ["<strength1>", "<strength2>"],
    "concerns": ["<concern1>", "<concern2>"]
}`,
		d.Job.Title,
		orDefault(d.Job.Company, "N/A"),
		strings.Join(d.Job.RequiredSkills, ", "),
		orDefault(d.Job.ExperienceYears, "N/A"),
		truncate(d.Job.Description, 500),
		d.Candidate.LeetcodeUsername,
		truncate(d.Candidate.ResumeText, 500),
		strings.Join(d.Candidate.Skills(), ", "),
		len(d.Candidate.Projects),
		formatProjects(d.Candidate.Projects),
		len(d.Candidate.Education),
		formatExternalStats(d.Candidate.ExternalStats),
		d.Score.Composite,
		formatFieldScores(d.Score.PerFieldSimilarity),
	)
}

func formatProjects(projects []models.Project) string {
	var lines []string
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("  - %s: %s", p.Name, truncate(p.Description, 150)))
	}
	return strings.Join(lines, "\n")
}

func formatFieldScores(perField map[models.FieldType]float64) string {
	var lines []string
	for _, ft := range models.KnownFieldTypes() {
		if score, ok := perField[ft]; ok {
			lines = append(lines, fmt.Sprintf("- %s: %.2f", ft, score))
		}
	}
	return strings.Join(lines, "\n")
}

func formatExternalStats(stats models.JSONMap) string {
	if len(stats) == 0 {
		return "Not available."
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return "Not available."
	}
	return truncate(string(data), 800)
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
