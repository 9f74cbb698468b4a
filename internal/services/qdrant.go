package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// FieldIndex is the similarity index behind the matching pipeline. One
// logical index per field type; vectors of different field types are never
// compared against each other. Inserts are read-safe against concurrent
// queries from in-flight evaluation runs.
type FieldIndex interface {
	InitCollection() error
	InsertJob(ctx context.Context, jobID string, vectors models.VectorSet) error
	InsertCandidate(ctx context.Context, candidateID string, vectors models.VectorSet) error
	BatchSimilar(ctx context.Context, queryVector []float32, fieldType models.FieldType, limit int) (map[string]float64, error)
	DeleteEntity(ctx context.Context, entityID string) error
}

const (
	entityKindJob       = "job"
	entityKindCandidate = "candidate"
)

type qdrantIndex struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantIndex(urlStr, apiKey, collectionName string) (FieldIndex, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndex{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements FieldIndex.
func (q *qdrantIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// InsertJob implements FieldIndex.
func (q *qdrantIndex) InsertJob(ctx context.Context, jobID string, vectors models.VectorSet) error {
	return q.upsertEntity(ctx, jobID, entityKindJob, vectors)
}

// InsertCandidate implements FieldIndex.
func (q *qdrantIndex) InsertCandidate(ctx context.Context, candidateID string, vectors models.VectorSet) error {
	return q.upsertEntity(ctx, candidateID, entityKindCandidate, vectors)
}

// upsertEntity writes all of an entity's field vectors in a single upsert so
// a candidate never becomes queryable with only part of its fields.
func (q *qdrantIndex) upsertEntity(ctx context.Context, entityID, entityKind string, vectors models.VectorSet) error {
	if len(vectors) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(vectors))
	for fieldType, fv := range vectors {
		pointID := uuid.New()

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(pointID.ID())),
			Vectors: qdrant.NewVectors(fv.Vector...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"entity_id":   entityID,
				"entity_kind": entityKind,
				"field_type":  string(fieldType),
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", entityKind, entityID, err)
	}

	return nil
}

// BatchSimilar returns cosine similarity of every indexed candidate's vector
// for one field type against the query vector, clamped to [0,1]. An empty
// index yields an empty map.
func (q *qdrantIndex) BatchSimilar(ctx context.Context, queryVector []float32, fieldType models.FieldType, limit int) (map[string]float64, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("field_type", string(fieldType)),
			qdrant.NewMatch("entity_kind", entityKindCandidate),
		},
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search field %s: %w", fieldType, err)
	}

	similarities := make(map[string]float64, len(searchResult))
	for _, point := range searchResult {
		entityID := ""
		if idVal, ok := point.Payload["entity_id"]; ok {
			if val, ok := idVal.GetKind().(*qdrant.Value_StringValue); ok {
				entityID = val.StringValue
			}
		}
		if entityID == "" {
			continue
		}

		similarities[entityID] = clampSimilarity(float64(point.Score))
	}

	return similarities, nil
}

// DeleteEntity implements FieldIndex.
func (q *qdrantIndex) DeleteEntity(ctx context.Context, entityID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("entity_id", entityID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete entity %s: %w", entityID, err)
	}

	return nil
}

// clampSimilarity maps raw cosine similarity from [-1,1] into [0,1].
func clampSimilarity(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
