package services

import (
	"math"
	"sort"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// FilterCandidates ranks composite scores and keeps the top keepFraction of
// them, discarding the rest. Scores pass through untouched; this is purely a
// ranking and truncation step.
//
// Ordering is composite descending with candidate_id ascending as the
// tie-break, so two runs over the same pool always eliminate the same
// candidates. Survivor count is ceil(n * keepFraction).
func FilterCandidates(scores []models.CompositeScore, keepFraction float64) ([]models.CompositeScore, int) {
	if len(scores) == 0 {
		return []models.CompositeScore{}, 0
	}

	ranked := make([]models.CompositeScore, len(scores))
	copy(ranked, scores)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})

	survivorCount := int(math.Ceil(float64(len(ranked)) * keepFraction))
	if survivorCount > len(ranked) {
		survivorCount = len(ranked)
	}

	return ranked[:survivorCount], len(ranked) - survivorCount
}
