package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type stubGemini struct {
	embedding []float32
	embedErr  error
	response  string
	textErr   error
	lastText  string
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.lastText = text
	return s.embedding, s.embedErr
}

func (s *stubGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.response, s.textErr
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32) (string, error) {
	return s.response, s.textErr
}

func TestEmbedEmptyText(t *testing.T) {
	e := NewEmbedder(&stubGemini{}, NewTextBounder(), 1000)

	_, err := e.Embed(context.Background(), "candidate_a", models.FieldResume, "   \n\t ")

	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestEmbedReturnsFieldVector(t *testing.T) {
	gemini := &stubGemini{embedding: []float32{0.1, 0.2, 0.3}}
	e := NewEmbedder(gemini, NewTextBounder(), 1000)

	vector, err := e.Embed(context.Background(), "candidate_a", models.FieldSkills, "Go, Python")

	require.NoError(t, err)
	assert.Equal(t, "candidate_a", vector.EntityID)
	assert.Equal(t, models.FieldSkills, vector.FieldType)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector.Vector)
	assert.Equal(t, "Go, Python", vector.SourceText)
}

func TestEmbedBoundsLongText(t *testing.T) {
	gemini := &stubGemini{embedding: []float32{0.1}}
	e := NewEmbedder(gemini, NewTextBounder(), 50)

	long := "One sentence. " + strings.Repeat("Another sentence here. ", 20)
	_, err := e.Embed(context.Background(), "candidate_a", models.FieldResume, long)

	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(gemini.lastText), 50)
}

func TestEmbedPropagatesBackendError(t *testing.T) {
	gemini := &stubGemini{embedErr: errors.New("quota exceeded")}
	e := NewEmbedder(gemini, NewTextBounder(), 1000)

	_, err := e.Embed(context.Background(), "job_1", models.FieldResume, "some text")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyText)
}
