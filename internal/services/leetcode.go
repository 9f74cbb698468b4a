package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

// LeetcodeService fetches coding-platform statistics for a candidate at
// submission time. The stats are an opaque enrichment blob: the pipeline
// never interprets them, they only flow into the evaluation dossier.
type LeetcodeService interface {
	GetComprehensiveProfile(ctx context.Context, username string) models.JSONMap
}

type leetcodeService struct {
	baseURL string
	client  *http.Client
}

func NewLeetcodeService(baseURL string, timeout time.Duration) LeetcodeService {
	return &leetcodeService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetComprehensiveProfile implements LeetcodeService. A missing or
// unreachable profile is not an error; the candidate is still accepted and
// the blob records exists=false.
func (l *leetcodeService) GetComprehensiveProfile(ctx context.Context, username string) models.JSONMap {
	profile, err := l.fetch(ctx, username)
	if err != nil {
		log.Printf("⚠️ LeetCode profile unavailable for %s: %v\n", username, err)
		return models.JSONMap{"exists": false, "username": username}
	}

	stats := models.JSONMap{
		"exists":   true,
		"username": username,
		"profile":  profile,
	}

	if solved, err := l.fetch(ctx, username+"/solved"); err == nil {
		stats["solved_stats"] = solved
	} else {
		log.Printf("⚠️ Failed to fetch solved stats for %s: %v\n", username, err)
	}

	if contest, err := l.fetch(ctx, username+"/contest"); err == nil {
		stats["contest_info"] = contest
	} else {
		log.Printf("⚠️ Failed to fetch contest info for %s: %v\n", username, err)
	}

	return stats
}

func (l *leetcodeService) fetch(ctx context.Context, path string) (map[string]interface{}, error) {
	endpoint := fmt.Sprintf("%s/%s", l.baseURL, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "JD-Parser-Candidate-System/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("profile not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data, nil
}
