package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type stubJobRepo struct {
	jobs map[string]*models.JobProfile
}

func (r *stubJobRepo) Create(job *models.JobProfile) error { return nil }

func (r *stubJobRepo) FindByID(jobID string) (*models.JobProfile, error) {
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

func (r *stubJobRepo) List(limit int) ([]models.JobProfile, error) { return nil, nil }

func (r *stubJobRepo) Delete(jobID string) error {
	if _, ok := r.jobs[jobID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.jobs, jobID)
	return nil
}

func (r *stubJobRepo) Count() (int64, error) { return int64(len(r.jobs)), nil }

type stubCandidateRepo struct {
	candidates []models.CandidateProfile
}

func (r *stubCandidateRepo) Create(c *models.CandidateProfile) error { return nil }

func (r *stubCandidateRepo) FindByID(id string) (*models.CandidateProfile, error) {
	for i := range r.candidates {
		if r.candidates[i].CandidateID == id {
			return &r.candidates[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCandidateRepo) ListAll() ([]models.CandidateProfile, error) {
	return r.candidates, nil
}

func (r *stubCandidateRepo) Count() (int64, error) { return int64(len(r.candidates)), nil }

func pipelineFixture(poolSize int) (*stubJobRepo, *stubCandidateRepo, Matcher, Orchestrator) {
	job := &models.JobProfile{
		JobID:   "job_1",
		Title:   "Backend Engineer",
		Company: "Acme",
		Vectors: vectorSetFor("job_1", models.FieldResume),
	}
	jobRepo := &stubJobRepo{jobs: map[string]*models.JobProfile{"job_1": job}}

	candidateRepo := &stubCandidateRepo{}
	similarities := map[string]float64{}
	verdicts := map[string]*models.Verdict{}
	for i := 0; i < poolSize; i++ {
		id := string(rune('a' + i))
		id = "candidate_" + id
		candidateRepo.candidates = append(candidateRepo.candidates, models.CandidateProfile{
			CandidateID: id,
			Vectors:     vectorSetFor(id, models.FieldResume),
		})
		similarities[id] = float64(poolSize-i) / float64(poolSize+1)
		verdicts[id] = &models.Verdict{FinalScore: 50 + i, Recommendation: models.RecommendationRecommended}
	}

	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldResume: similarities,
		},
	}
	matcher := NewMatcher(index, map[models.FieldType]float64{models.FieldResume: 1.0})
	orchestrator := NewOrchestrator(&stubEvaluator{verdicts: verdicts}, 2, 1, time.Millisecond, defaultAcceptSet())

	return jobRepo, candidateRepo, matcher, orchestrator
}

func TestPipelineRunJobNotFound(t *testing.T) {
	jobRepo, candidateRepo, matcher, orchestrator := pipelineFixture(2)
	p := NewPipeline(jobRepo, candidateRepo, matcher, orchestrator, 0.4)

	report, err := p.Run(context.Background(), "job_missing")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestPipelineRunEmptyPool(t *testing.T) {
	jobRepo, _, matcher, orchestrator := pipelineFixture(2)
	p := NewPipeline(jobRepo, &stubCandidateRepo{}, matcher, orchestrator, 0.4)

	report, err := p.Run(context.Background(), "job_1")

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrEmptyCandidatePool)
}

func TestPipelineRunReportCounts(t *testing.T) {
	jobRepo, candidateRepo, matcher, orchestrator := pipelineFixture(5)
	p := NewPipeline(jobRepo, candidateRepo, matcher, orchestrator, 0.4)

	report, err := p.Run(context.Background(), "job_1")

	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "job_1", report.JobID)
	assert.Equal(t, "Backend Engineer", report.JobTitle)
	assert.Equal(t, "Acme", report.Company)
	assert.Equal(t, 5, report.TotalCandidatesAnalyzed)
	assert.Equal(t, 5, report.InitialMatches)
	// ceil(5 * 0.4) = 2 survivors, 3 eliminated
	assert.Equal(t, 2, report.AfterFilter)
	assert.Equal(t, 3, report.EliminatedCount)
	assert.Len(t, report.FinalRecommendations, 2)
	assert.Equal(t, report.TotalCandidatesAnalyzed, report.AfterFilter+report.EliminatedCount)
}

func TestPipelineRunSurvivorsAreTopScored(t *testing.T) {
	jobRepo, candidateRepo, matcher, orchestrator := pipelineFixture(5)
	p := NewPipeline(jobRepo, candidateRepo, matcher, orchestrator, 0.4)

	report, err := p.Run(context.Background(), "job_1")

	require.NoError(t, err)
	require.Len(t, report.FinalRecommendations, 2)

	// Fixture similarities decrease with candidate index, so the first two
	// candidates survive the filter.
	ids := map[string]bool{}
	for _, rec := range report.FinalRecommendations {
		ids[rec.CandidateID] = true
	}
	assert.True(t, ids["candidate_a"])
	assert.True(t, ids["candidate_b"])
}

type stubMatcher struct {
	scores []models.CompositeScore
}

func (m *stubMatcher) MatchCandidates(ctx context.Context, job *models.JobProfile, candidates []models.CandidateProfile) ([]models.CompositeScore, error) {
	return m.scores, nil
}

func TestPipelineRunCountsWholePool(t *testing.T) {
	jobRepo, candidateRepo, _, orchestrator := pipelineFixture(4)

	// A matcher that only scores part of the pool must not shrink the
	// analyzed total; that number reports how many candidates went in.
	matcher := &stubMatcher{
		scores: []models.CompositeScore{
			{CandidateID: "candidate_a", JobID: "job_1", Composite: 0.9},
			{CandidateID: "candidate_b", JobID: "job_1", Composite: 0.8},
		},
	}
	p := NewPipeline(jobRepo, candidateRepo, matcher, orchestrator, 0.5)

	report, err := p.Run(context.Background(), "job_1")

	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalCandidatesAnalyzed)
	assert.Equal(t, 2, report.InitialMatches)
	assert.Equal(t, 1, report.AfterFilter)
	assert.Equal(t, 1, report.EliminatedCount)
}

func TestPipelineRunEveryRecommendationHasSimilarity(t *testing.T) {
	jobRepo, candidateRepo, matcher, orchestrator := pipelineFixture(4)
	p := NewPipeline(jobRepo, candidateRepo, matcher, orchestrator, 1.0)

	report, err := p.Run(context.Background(), "job_1")

	require.NoError(t, err)
	require.Len(t, report.FinalRecommendations, 4)
	for _, rec := range report.FinalRecommendations {
		assert.Greater(t, rec.SimilarityScore, 0.0)
		assert.Equal(t, "job_1", rec.JobID)
		assert.NotNil(t, rec.LLMEvaluation)
	}
}
