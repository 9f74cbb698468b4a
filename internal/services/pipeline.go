package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
	"github.com/Codeversity-bois/JD-parser/internal/repositories"
)

// Pipeline sequences the matching stages for one job run: batched scoring,
// elimination, then LLM evaluation of the survivors. Re-running the same
// job produces a fresh report; nothing from earlier runs is reused.
type Pipeline interface {
	Run(ctx context.Context, jobID string) (*models.EvaluationReport, error)
}

type pipeline struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	matcher       Matcher
	orchestrator  Orchestrator
	keepFraction  float64
}

func NewPipeline(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	matcher Matcher,
	orchestrator Orchestrator,
	keepFraction float64,
) Pipeline {
	return &pipeline{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		matcher:       matcher,
		orchestrator:  orchestrator,
		keepFraction:  keepFraction,
	}
}

// Run implements Pipeline. An unknown job or an empty candidate pool aborts
// with no report; any later per-candidate trouble is absorbed into the
// report instead.
func (p *pipeline) Run(ctx context.Context, jobID string) (*models.EvaluationReport, error) {
	job, err := p.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
		}
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	candidates, err := p.candidateRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyCandidatePool
	}

	log.Printf("🔄 Step 1: Matching job %s against %d candidates\n", jobID, len(candidates))
	scores, err := p.matcher.MatchCandidates(ctx, job, candidates)
	if err != nil {
		return nil, fmt.Errorf("matching stage failed: %w", err)
	}

	log.Printf("🔄 Step 2: Applying elimination filter (keep %.0f%%)\n", p.keepFraction*100)
	survivorScores, eliminated := FilterCandidates(scores, p.keepFraction)

	log.Printf("🔄 Step 3: Evaluating %d survivors with LLM\n", len(survivorScores))
	byID := make(map[string]*models.CandidateProfile, len(candidates))
	for i := range candidates {
		byID[candidates[i].CandidateID] = &candidates[i]
	}

	survivors := make([]Survivor, 0, len(survivorScores))
	for _, score := range survivorScores {
		survivors = append(survivors, Survivor{
			Candidate: byID[score.CandidateID],
			Score:     score,
		})
	}

	recommendations := p.orchestrator.Evaluate(ctx, job, survivors)

	oaCount := 0
	for _, rec := range recommendations {
		if rec.ProceedToOA {
			oaCount++
		}
	}

	report := &models.EvaluationReport{
		JobID:                   job.JobID,
		JobTitle:                job.Title,
		Company:                 job.Company,
		TotalCandidatesAnalyzed: len(candidates),
		InitialMatches:          len(scores),
		EliminatedCount:         eliminated,
		AfterFilter:             len(survivorScores),
		FinalRecommendations:    recommendations,
		Message:                 fmt.Sprintf("Evaluation complete. %d candidates recommended for OA round.", oaCount),
	}

	log.Printf("✅ Job %s evaluation complete: %d survivors, %d for OA\n", jobID, len(survivorScores), oaCount)
	return report, nil
}
