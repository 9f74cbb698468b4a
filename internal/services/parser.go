package services

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// ParsedJob is the structured extraction of a raw job description.
type ParsedJob struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	RequiredSkills   []string `json:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills"`
	ExperienceYears  string   `json:"experience_years"`
	Education        string   `json:"education"`
	Responsibilities []string `json:"responsibilities"`
	Benefits         []string `json:"benefits"`
	JobType          string   `json:"job_type"`
	SalaryRange      string   `json:"salary_range"`
}

// JobParser extracts structured fields from free job-description text. The
// matching core only requires the extracted fields to be non-empty strings;
// semantic correctness is the extractor's problem.
type JobParser interface {
	Parse(ctx context.Context, description string) *ParsedJob
}

type jobParser struct {
	gemini  GeminiService
	prompts *PromptBuilder
}

func NewJobParser(gemini GeminiService) JobParser {
	return &jobParser{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
	}
}

// Parse implements JobParser. LLM extraction with a rule-based fallback, so
// parsing itself never fails a job submission.
func (p *jobParser) Parse(ctx context.Context, description string) *ParsedJob {
	prompt := p.prompts.BuildJobExtractionPrompt(description)

	response, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.3)
	if err != nil {
		log.Printf("⚠️ LLM parsing failed, falling back to rules: %v\n", err)
		return parseWithRules(description)
	}

	var parsed ParsedJob
	if err := json.Unmarshal([]byte(extractJSON(response)), &parsed); err != nil {
		log.Printf("⚠️ Failed to parse LLM extraction, falling back to rules: %v\n", err)
		return parseWithRules(description)
	}

	if parsed.Title == "" {
		parsed.Title = firstLine(description)
	}

	return &parsed
}

var (
	skillPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Python|Java|JavaScript|TypeScript|C\+\+|C#|Go|Rust|Ruby|PHP|Swift|Kotlin)\b`),
		regexp.MustCompile(`(?i)\b(React|Angular|Vue|Node\.js|Django|Flask|FastAPI|Spring|Express)\b`),
		regexp.MustCompile(`(?i)\b(MongoDB|PostgreSQL|MySQL|Redis|Elasticsearch|DynamoDB)\b`),
		regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Docker|Kubernetes|Jenkins|CI/CD)\b`),
		regexp.MustCompile(`(?i)\b(Git|GitHub|GitLab|Jira|Agile|Scrum)\b`),
	}
	experiencePattern = regexp.MustCompile(`(?i)(\d+[+\-]?\s*(?:to|-)?\s*\d*\s*(?:years?|yrs?))`)
	educationPattern  = regexp.MustCompile(`(?i)(Bachelor'?s?|Master'?s?|PhD|Doctorate|BS|MS|MBA)\s*(?:degree\s*)?(?:in\s*)?[\w\s]*`)
	jobTypePattern    = regexp.MustCompile(`(?i)\b(Full-time|Part-time|Contract|Freelance|Remote|Hybrid)\b`)
	salaryPattern     = regexp.MustCompile(`\$\s*\d+[,\d]*\s*(?:-|to)\s*\$?\s*\d+[,\d]*`)
)

func parseWithRules(description string) *ParsedJob {
	parsed := &ParsedJob{Title: firstLine(description)}

	seen := make(map[string]bool)
	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(description, -1) {
			key := strings.ToLower(match)
			if !seen[key] {
				seen[key] = true
				parsed.RequiredSkills = append(parsed.RequiredSkills, match)
			}
		}
	}

	if m := experiencePattern.FindString(description); m != "" {
		parsed.ExperienceYears = m
	}
	if m := educationPattern.FindString(description); m != "" {
		parsed.Education = strings.TrimSpace(m)
	}
	if m := jobTypePattern.FindString(description); m != "" {
		parsed.JobType = m
	}
	if m := salaryPattern.FindString(description); m != "" {
		parsed.SalaryRange = m
	}

	return parsed
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return truncate(line, 120)
		}
	}
	return "Untitled position"
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around the object itself.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
