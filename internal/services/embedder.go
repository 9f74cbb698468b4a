package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// Embedder turns a structured field's text into a FieldVector. Stateless;
// identical text always produces the same vector for a given model version.
type Embedder interface {
	Embed(ctx context.Context, entityID string, fieldType models.FieldType, text string) (models.FieldVector, error)
}

type embedder struct {
	gemini   GeminiService
	bounder  TextBounder
	maxChars int
}

func NewEmbedder(gemini GeminiService, bounder TextBounder, maxChars int) Embedder {
	return &embedder{
		gemini:   gemini,
		bounder:  bounder,
		maxChars: maxChars,
	}
}

// Embed implements Embedder.
func (e *embedder) Embed(ctx context.Context, entityID string, fieldType models.FieldType, text string) (models.FieldVector, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.FieldVector{}, fmt.Errorf("field %s of %s: %w", fieldType, entityID, ErrEmptyText)
	}

	// Over-long text is bounded at sentence boundaries rather than rejected.
	text = e.bounder.Bound(text, e.maxChars)

	vector, err := e.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return models.FieldVector{}, fmt.Errorf("failed to embed field %s of %s: %w", fieldType, entityID, err)
	}

	return models.FieldVector{
		EntityID:   entityID,
		FieldType:  fieldType,
		Vector:     vector,
		SourceText: text,
	}, nil
}
