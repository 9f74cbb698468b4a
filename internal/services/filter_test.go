package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

func makeScores(composites ...float64) []models.CompositeScore {
	scores := make([]models.CompositeScore, len(composites))
	for i, c := range composites {
		scores[i] = models.CompositeScore{
			CandidateID: fmt.Sprintf("candidate_%04d", i),
			JobID:       "job_test",
			Composite:   c,
		}
	}
	return scores
}

func TestFilterCandidatesConservation(t *testing.T) {
	scores := makeScores(0.9, 0.1, 0.5, 0.7, 0.3)

	survivors, eliminated := FilterCandidates(scores, 0.4)

	assert.Equal(t, len(scores), len(survivors)+eliminated)
}

func TestFilterCandidatesKeepsTopFraction(t *testing.T) {
	scores := makeScores(0.9, 0.1, 0.5, 0.7, 0.3)

	survivors, eliminated := FilterCandidates(scores, 0.4)

	// ceil(5 * 0.4) = 2
	require.Len(t, survivors, 2)
	assert.Equal(t, 3, eliminated)
	assert.Equal(t, 0.9, survivors[0].Composite)
	assert.Equal(t, 0.7, survivors[1].Composite)
}

func TestFilterCandidatesSurvivorsDominateEliminated(t *testing.T) {
	scores := makeScores(0.12, 0.88, 0.41, 0.67, 0.05, 0.99, 0.33, 0.72)

	survivors, _ := FilterCandidates(scores, 0.5)

	surviving := make(map[string]bool)
	var worstSurvivor float64 = 2.0
	for _, s := range survivors {
		surviving[s.CandidateID] = true
		if s.Composite < worstSurvivor {
			worstSurvivor = s.Composite
		}
	}

	for _, s := range scores {
		if !surviving[s.CandidateID] {
			assert.LessOrEqual(t, s.Composite, worstSurvivor)
		}
	}
}

func TestFilterCandidatesCeilRounding(t *testing.T) {
	// ceil(3 * 0.4) = 2, not floor's 1
	survivors, eliminated := FilterCandidates(makeScores(0.1, 0.2, 0.3), 0.4)

	assert.Len(t, survivors, 2)
	assert.Equal(t, 1, eliminated)
}

func TestFilterCandidatesKeepAll(t *testing.T) {
	scores := makeScores(0.5, 0.6, 0.7)

	survivors, eliminated := FilterCandidates(scores, 1.0)

	assert.Len(t, survivors, 3)
	assert.Equal(t, 0, eliminated)
}

func TestFilterCandidatesSingleCandidate(t *testing.T) {
	survivors, eliminated := FilterCandidates(makeScores(0.42), 0.4)

	// ceil(1 * 0.4) = 1, a pool of one always survives
	require.Len(t, survivors, 1)
	assert.Equal(t, 0, eliminated)
}

func TestFilterCandidatesEmptyInput(t *testing.T) {
	survivors, eliminated := FilterCandidates(nil, 0.4)

	assert.Empty(t, survivors)
	assert.Equal(t, 0, eliminated)
}

func TestFilterCandidatesTieBreakByCandidateID(t *testing.T) {
	scores := []models.CompositeScore{
		{CandidateID: "candidate_c", Composite: 0.5},
		{CandidateID: "candidate_a", Composite: 0.5},
		{CandidateID: "candidate_b", Composite: 0.5},
		{CandidateID: "candidate_d", Composite: 0.4},
	}

	survivors, _ := FilterCandidates(scores, 0.5)

	require.Len(t, survivors, 2)
	assert.Equal(t, "candidate_a", survivors[0].CandidateID)
	assert.Equal(t, "candidate_b", survivors[1].CandidateID)
}

func TestFilterCandidatesDeterministic(t *testing.T) {
	scores := makeScores(0.5, 0.5, 0.5, 0.5, 0.5, 0.9, 0.1)

	first, _ := FilterCandidates(scores, 0.4)
	second, _ := FilterCandidates(scores, 0.4)

	assert.Equal(t, first, second)
}

func TestFilterCandidatesDoesNotMutateInput(t *testing.T) {
	scores := makeScores(0.1, 0.9, 0.5)
	original := make([]models.CompositeScore, len(scores))
	copy(original, scores)

	FilterCandidates(scores, 0.4)

	assert.Equal(t, original, scores)
}

func TestFilterCandidatesLargePool(t *testing.T) {
	composites := make([]float64, 1000)
	for i := range composites {
		composites[i] = float64(i) / 1000.0
	}
	scores := makeScores(composites...)

	survivors, eliminated := FilterCandidates(scores, 0.4)

	assert.Len(t, survivors, 400)
	assert.Equal(t, 600, eliminated)
}
