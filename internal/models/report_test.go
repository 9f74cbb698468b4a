package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationReportWireFormat(t *testing.T) {
	report := EvaluationReport{
		JobID:                   "job_1",
		TotalCandidatesAnalyzed: 10,
		InitialMatches:          10,
		EliminatedCount:         6,
		AfterFilter:             4,
	}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Consumers key on this exact field name.
	assert.Contains(t, decoded, "after_60_percent_filter")
	assert.Equal(t, float64(4), decoded["after_60_percent_filter"])
	assert.Equal(t, float64(6), decoded["eliminated_count"])
}

func TestRankedCandidateOmitsNilEvaluation(t *testing.T) {
	ranked := RankedCandidate{
		CandidateID:    "candidate_a",
		Recommendation: RecommendationFailed,
	}

	raw, err := json.Marshal(ranked)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	_, present := decoded["llm_evaluation"]
	assert.False(t, present)
}

func TestVectorSetHas(t *testing.T) {
	set := VectorSet{
		FieldResume: FieldVector{EntityID: "candidate_a", FieldType: FieldResume},
	}

	assert.True(t, set.Has(FieldResume))
	assert.False(t, set.Has(FieldSkills))
}
