package services

import (
	"context"
	"fmt"
	"log"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// Matcher scores every candidate in the pool against one job. Lookups are
// batched: one index query per job field, never one query per candidate
// pair.
type Matcher interface {
	MatchCandidates(ctx context.Context, job *models.JobProfile, candidates []models.CandidateProfile) ([]models.CompositeScore, error)
}

type matcher struct {
	index   FieldIndex
	weights map[models.FieldType]float64
}

func NewMatcher(index FieldIndex, weights map[models.FieldType]float64) Matcher {
	return &matcher{
		index:   index,
		weights: weights,
	}
}

// MatchCandidates implements Matcher. The composite is a weighted mean over
// the field types present on both the job and the candidate, with weights
// renormalized over those fields. A candidate with no overlapping fields
// scores 0.0 rather than erroring.
func (m *matcher) MatchCandidates(ctx context.Context, job *models.JobProfile, candidates []models.CandidateProfile) ([]models.CompositeScore, error) {
	poolSize := len(candidates)

	// One batched similarity pass per job field.
	fieldSims := make(map[models.FieldType]map[string]float64)
	for fieldType := range m.weights {
		jobVector, ok := job.Vectors[fieldType]
		if !ok {
			continue
		}

		sims, err := m.index.BatchSimilar(ctx, jobVector.Vector, fieldType, poolSize)
		if err != nil {
			return nil, fmt.Errorf("similarity search failed for field %s: %w", fieldType, err)
		}
		fieldSims[fieldType] = sims
	}

	scores := make([]models.CompositeScore, 0, poolSize)
	for i := range candidates {
		candidate := &candidates[i]

		perField := make(map[models.FieldType]float64)
		var weightedSum, weightSum float64

		for fieldType, sims := range fieldSims {
			if !candidate.Vectors.Has(fieldType) {
				continue
			}
			similarity, ok := sims[candidate.CandidateID]
			if !ok {
				continue
			}

			perField[fieldType] = similarity
			weightedSum += m.weights[fieldType] * similarity
			weightSum += m.weights[fieldType]
		}

		composite := 0.0
		if weightSum > 0 {
			composite = weightedSum / weightSum
		}

		scores = append(scores, models.CompositeScore{
			CandidateID:        candidate.CandidateID,
			JobID:              job.JobID,
			PerFieldSimilarity: perField,
			Composite:          composite,
		})
	}

	log.Printf("🔍 Matched %d candidates against job %s across %d fields\n", len(scores), job.JobID, len(fieldSims))
	return scores, nil
}
