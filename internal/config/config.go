package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Codeversity-bois/JD-parser/internal/models"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Leetcode LeetcodeConfig
	Storage  StorageConfig
	Matching MatchingConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey string
}

type LeetcodeConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

// MatchingConfig drives the scoring and elimination stages of the pipeline.
type MatchingConfig struct {
	Weights       map[models.FieldType]float64
	KeepFraction  float64
	MaxEmbedChars int
	AcceptSet     []string
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "jd_matcher"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "match_vectors"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Leetcode: LeetcodeConfig{
			BaseURL: getEnv("LEETCODE_API_URL", "https://alfa-leetcode-api.onrender.com"),
			Timeout: getEnvAsDuration("LEETCODE_TIMEOUT", "10s"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Matching: MatchingConfig{
			Weights: map[models.FieldType]float64{
				models.FieldResume:     getEnvAsFloat("WEIGHT_RESUME", 0.30),
				models.FieldProjects:   getEnvAsFloat("WEIGHT_PROJECTS", 0.25),
				models.FieldEducation:  getEnvAsFloat("WEIGHT_EDUCATION", 0.15),
				models.FieldSkills:     getEnvAsFloat("WEIGHT_SKILLS", 0.15),
				models.FieldExperience: getEnvAsFloat("WEIGHT_EXPERIENCE", 0.15),
			},
			KeepFraction:  getEnvAsFloat("MATCH_KEEP_FRACTION", 0.4),
			MaxEmbedChars: getEnvAsInt("MAX_EMBED_CHARS", 40000),
			AcceptSet:     []string{models.RecommendationHighly, models.RecommendationRecommended},
		},
		Worker: WorkerConfig{
			Concurrency:       getEnvAsInt("WORKER_CONCURRENCY", 3),
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
		},
	}
}

// Validate fails fast on configuration the pipeline cannot run with.
func (c *Config) Validate() error {
	var sum float64
	for ft, w := range c.Matching.Weights {
		if w < 0 {
			return fmt.Errorf("invalid config: negative weight %.2f for field %s", w, ft)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("invalid config: field weights must sum to 1.0, got %.4f", sum)
	}

	if c.Matching.KeepFraction <= 0 || c.Matching.KeepFraction > 1 {
		return fmt.Errorf("invalid config: keep fraction must be in (0,1], got %.4f", c.Matching.KeepFraction)
	}

	if c.Matching.MaxEmbedChars <= 0 {
		return fmt.Errorf("invalid config: max embed chars must be positive, got %d", c.Matching.MaxEmbedChars)
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("invalid config: worker concurrency must be positive, got %d", c.Worker.Concurrency)
	}

	if c.Worker.RetryMaxAttempts <= 0 {
		return fmt.Errorf("invalid config: retry max attempts must be positive, got %d", c.Worker.RetryMaxAttempts)
	}

	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
