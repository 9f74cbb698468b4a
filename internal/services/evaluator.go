package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// Dossier is the assembled payload sent to the external evaluation service
// for one candidate-job pair: structured profile fields, similarity scores
// and the coding-platform stats the vector stages never saw.
type Dossier struct {
	Job       *models.JobProfile
	Candidate *models.CandidateProfile
	Score     models.CompositeScore
}

// Evaluator is the injected capability calling the external evaluation
// service once. The orchestrator owns retries; implementations make a
// single attempt.
type Evaluator interface {
	EvaluateDossier(ctx context.Context, d Dossier) (*models.Verdict, error)
}

type geminiEvaluator struct {
	gemini  GeminiService
	prompts *PromptBuilder
}

func NewGeminiEvaluator(gemini GeminiService) Evaluator {
	return &geminiEvaluator{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
	}
}

// EvaluateDossier implements Evaluator.
func (e *geminiEvaluator) EvaluateDossier(ctx context.Context, d Dossier) (*models.Verdict, error) {
	prompt := e.prompts.BuildEvaluationPrompt(d)

	response, err := e.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("evaluation call failed: %w", err)
	}

	var verdict models.Verdict
	if err := json.Unmarshal([]byte(extractJSON(response)), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVerdict, err)
	}

	if err := validateVerdict(&verdict); err != nil {
		return nil, err
	}

	return &verdict, nil
}

// validateVerdict enforces the evaluation service's response schema. A
// violation is handled the same way as a transient failure.
func validateVerdict(v *models.Verdict) error {
	if v.FinalScore < 0 || v.FinalScore > 100 {
		return fmt.Errorf("%w: final_score %d out of range", ErrInvalidVerdict, v.FinalScore)
	}

	for _, known := range models.KnownRecommendations() {
		if v.Recommendation == known {
			return nil
		}
	}

	return fmt.Errorf("%w: unknown recommendation %q", ErrInvalidVerdict, v.Recommendation)
}

// Survivor is one candidate that passed the elimination filter, paired with
// its composite score.
type Survivor struct {
	Candidate *models.CandidateProfile
	Score     models.CompositeScore
}

// Orchestrator fans survivors out to the evaluation service under bounded
// concurrency and merges verdicts with similarity scores into the final
// ranking.
type Orchestrator interface {
	Evaluate(ctx context.Context, job *models.JobProfile, survivors []Survivor) []models.RankedCandidate
}

type orchestrator struct {
	evaluator    Evaluator
	concurrency  int
	maxAttempts  int
	initialDelay time.Duration
	acceptSet    map[string]bool
}

func NewOrchestrator(
	evaluator Evaluator,
	concurrency int,
	maxAttempts int,
	initialDelay time.Duration,
	acceptSet []string,
) Orchestrator {
	accepted := make(map[string]bool, len(acceptSet))
	for _, recommendation := range acceptSet {
		accepted[recommendation] = true
	}

	return &orchestrator{
		evaluator:    evaluator,
		concurrency:  concurrency,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
		acceptSet:    accepted,
	}
}

// Evaluate implements Orchestrator. Dispatch order is whatever the worker
// pool produces; results are keyed by candidate and re-sorted before
// emission so completion order never leaks into the ranking. A candidate
// whose call exhausts all retries is recorded as a partial failure, never as
// a run failure.
func (o *orchestrator) Evaluate(ctx context.Context, job *models.JobProfile, survivors []Survivor) []models.RankedCandidate {
	if len(survivors) == 0 {
		return []models.RankedCandidate{}
	}

	log.Printf("🤖 Evaluating %d survivors for job %s with %d workers\n", len(survivors), job.JobID, o.concurrency)

	queue := make(chan Survivor)
	results := make(map[string]models.RankedCandidate, len(survivors))

	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := o.concurrency
	if workers > len(survivors) {
		workers = len(survivors)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for survivor := range queue {
				ranked := o.evaluateOne(ctx, job, survivor)

				mu.Lock()
				results[survivor.Candidate.CandidateID] = ranked
				mu.Unlock()
			}
		}()
	}

	for _, survivor := range survivors {
		queue <- survivor
	}
	close(queue)
	wg.Wait()

	ranked := make([]models.RankedCandidate, 0, len(survivors))
	for _, survivor := range survivors {
		ranked = append(ranked, results[survivor.Candidate.CandidateID])
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		if ranked[i].SimilarityScore != ranked[j].SimilarityScore {
			return ranked[i].SimilarityScore > ranked[j].SimilarityScore
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	return ranked
}

func (o *orchestrator) evaluateOne(ctx context.Context, job *models.JobProfile, survivor Survivor) models.RankedCandidate {
	dossier := Dossier{
		Job:       job,
		Candidate: survivor.Candidate,
		Score:     survivor.Score,
	}

	verdict, err := o.evaluateWithRetry(ctx, dossier)
	if err != nil {
		log.Printf("❌ Evaluation failed for candidate %s: %v\n", survivor.Candidate.CandidateID, err)
		return o.partialFailure(survivor)
	}

	return models.RankedCandidate{
		CandidateID:        survivor.Candidate.CandidateID,
		JobID:              job.JobID,
		SimilarityScore:    survivor.Score.Composite,
		PerFieldSimilarity: survivor.Score.PerFieldSimilarity,
		LLMEvaluation:      verdict,
		FinalScore:         verdict.FinalScore,
		Recommendation:     verdict.Recommendation,
		Reasoning:          verdict.Reasoning,
		ProceedToOA:        o.acceptSet[verdict.Recommendation],
	}
}

func (o *orchestrator) evaluateWithRetry(ctx context.Context, dossier Dossier) (*models.Verdict, error) {
	var lastErr error
	delay := o.initialDelay

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}

		verdict, err := o.evaluator.EvaluateDossier(ctx, dossier)
		if err == nil {
			return verdict, nil
		}

		lastErr = err
		if attempt < o.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("run cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", o.maxAttempts, lastErr)
}

// partialFailure keeps the candidate in the report with its similarity score
// intact but no verdict.
func (o *orchestrator) partialFailure(survivor Survivor) models.RankedCandidate {
	return models.RankedCandidate{
		CandidateID:        survivor.Candidate.CandidateID,
		JobID:              survivor.Score.JobID,
		SimilarityScore:    survivor.Score.Composite,
		PerFieldSimilarity: survivor.Score.PerFieldSimilarity,
		LLMEvaluation:      nil,
		FinalScore:         0,
		Recommendation:     models.RecommendationFailed,
		ProceedToOA:        false,
	}
}
