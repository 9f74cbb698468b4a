package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type stubFieldIndex struct {
	similarities map[models.FieldType]map[string]float64
	queries      []models.FieldType
	err          error
}

func (s *stubFieldIndex) InitCollection() error { return nil }

func (s *stubFieldIndex) InsertJob(ctx context.Context, jobID string, vectors models.VectorSet) error {
	return nil
}

func (s *stubFieldIndex) InsertCandidate(ctx context.Context, candidateID string, vectors models.VectorSet) error {
	return nil
}

func (s *stubFieldIndex) BatchSimilar(ctx context.Context, queryVector []float32, fieldType models.FieldType, limit int) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.queries = append(s.queries, fieldType)
	return s.similarities[fieldType], nil
}

func (s *stubFieldIndex) DeleteEntity(ctx context.Context, entityID string) error { return nil }

func vectorSetFor(entityID string, fields ...models.FieldType) models.VectorSet {
	set := models.VectorSet{}
	for _, ft := range fields {
		set[ft] = models.FieldVector{
			EntityID:  entityID,
			FieldType: ft,
			Vector:    []float32{0.1, 0.2, 0.3},
		}
	}
	return set
}

func TestMatchCandidatesWeightedMean(t *testing.T) {
	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldResume: {"candidate_a": 0.8},
			models.FieldSkills: {"candidate_a": 0.6},
		},
	}
	weights := map[models.FieldType]float64{
		models.FieldResume: 0.5,
		models.FieldSkills: 0.5,
	}

	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldResume, models.FieldSkills),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume, models.FieldSkills)},
	}

	scores, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.7, scores[0].Composite, 1e-9)
	assert.Equal(t, 0.8, scores[0].PerFieldSimilarity[models.FieldResume])
	assert.Equal(t, 0.6, scores[0].PerFieldSimilarity[models.FieldSkills])
}

func TestMatchCandidatesRenormalizesWeights(t *testing.T) {
	// Candidate only has a resume vector; its weight (0.3) must be
	// renormalized to 1.0 so the composite equals the resume similarity.
	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldResume: {"candidate_a": 0.9},
			models.FieldSkills: {},
		},
	}
	weights := map[models.FieldType]float64{
		models.FieldResume: 0.3,
		models.FieldSkills: 0.7,
	}

	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldResume, models.FieldSkills),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume)},
	}

	scores, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 0.9, scores[0].Composite, 1e-9)
}

func TestMatchCandidatesNoOverlapScoresZero(t *testing.T) {
	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldSkills: {},
		},
	}
	weights := map[models.FieldType]float64{models.FieldSkills: 1.0}

	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldSkills),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume)},
	}

	scores, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 0.0, scores[0].Composite)
	assert.Empty(t, scores[0].PerFieldSimilarity)
}

func TestMatchCandidatesOneQueryPerJobField(t *testing.T) {
	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldResume: {"candidate_a": 0.5, "candidate_b": 0.4},
		},
	}
	weights := map[models.FieldType]float64{
		models.FieldResume: 0.5,
		models.FieldSkills: 0.5,
	}

	// Job only has a resume vector, so skills must not be queried at all.
	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldResume),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume)},
		{CandidateID: "candidate_b", Vectors: vectorSetFor("candidate_b", models.FieldResume)},
	}

	scores, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	require.NoError(t, err)
	assert.Len(t, scores, 2)
	assert.Equal(t, []models.FieldType{models.FieldResume}, index.queries)
}

func TestMatchCandidatesIndexError(t *testing.T) {
	index := &stubFieldIndex{err: errors.New("index unavailable")}
	weights := map[models.FieldType]float64{models.FieldResume: 1.0}

	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldResume),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume)},
	}

	_, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	assert.Error(t, err)
}

func TestMatchCandidatesEveryCandidateScored(t *testing.T) {
	index := &stubFieldIndex{
		similarities: map[models.FieldType]map[string]float64{
			models.FieldResume: {"candidate_a": 0.9},
		},
	}
	weights := map[models.FieldType]float64{models.FieldResume: 1.0}

	job := &models.JobProfile{
		JobID:   "job_1",
		Vectors: vectorSetFor("job_1", models.FieldResume),
	}
	candidates := []models.CandidateProfile{
		{CandidateID: "candidate_a", Vectors: vectorSetFor("candidate_a", models.FieldResume)},
		{CandidateID: "candidate_b", Vectors: vectorSetFor("candidate_b", models.FieldResume)},
	}

	scores, err := NewMatcher(index, weights).MatchCandidates(context.Background(), job, candidates)

	require.NoError(t, err)
	// candidate_b got no similarity hit but still appears with 0.0.
	require.Len(t, scores, 2)
	assert.Equal(t, 0.0, scores[1].Composite)
}
