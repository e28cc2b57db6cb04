// Package config loads runtime configuration from the environment.
//
// A .env file is honored when present (development convenience); production
// deployments set real environment variables. Only credentials are fatal when
// missing; numeric tunables fall back to defaults with a logged warning.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for tunables, matching the documented behavior of the recommender.
const (
	DefaultAIModel             = "gpt-4o-mini"
	DefaultEmbeddingModel      = "text-embedding-3-small"
	DefaultTopK                = 20
	DefaultMinRelevanceScore   = 0.7
	DefaultRecommendationCount = 5
	DefaultCacheDuration       = 6 * time.Hour
)

// Config holds all environment-sourced settings.
type Config struct {
	// Credentials
	OpenAIAPIKey  string
	TelegramToken string  // Required only by the chat transport front-end
	AdminIDs      []int64 // Telegram user IDs allowed to run admin operations

	// Model identifiers
	AIModel        string
	EmbeddingModel string

	// Storage paths
	DBPath        string // SQLite content store file
	IndexPath     string // Vector index directory
	CachePath     string // Ranking cache directory
	MaterialsPath string // Drop folder for uploaded documents

	// Tunables
	TopK                int     // Initial retrieval count
	MinRelevanceScore   float64 // Minimum similarity to recommend in fallback
	RecommendationCount int     // Default number of recommendations per request
	CacheDuration       time.Duration
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have a .env file
	}

	cfg := &Config{
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		TelegramToken:       os.Getenv("TELEGRAM_TOKEN"),
		AdminIDs:            parseAdminIDs(os.Getenv("TELEGRAM_ADMIN_IDS")),
		AIModel:             envOrDefault("AI_MODEL", DefaultAIModel),
		EmbeddingModel:      envOrDefault("EMBEDDING_MODEL", DefaultEmbeddingModel),
		DBPath:              envOrDefault("DB_PATH", "db/sermons.db"),
		IndexPath:           envOrDefault("INDEX_PATH", "db/index"),
		CachePath:           envOrDefault("CACHE_PATH", "cache"),
		MaterialsPath:       envOrDefault("MATERIALS_PATH", "materials"),
		TopK:                envInt("TOP_K_SEARCH", DefaultTopK),
		MinRelevanceScore:   envFloat("MIN_RELEVANCE_SCORE", DefaultMinRelevanceScore),
		RecommendationCount: envInt("DEFAULT_RECOMMENDATIONS", DefaultRecommendationCount),
		CacheDuration:       time.Duration(envInt("CACHE_DURATION_HOURS", int(DefaultCacheDuration/time.Hour))) * time.Hour,
	}

	return cfg, nil
}

// Validate checks that the credentials required for the pipeline are present.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("config: OPENAI_API_KEY is required")
	}
	return nil
}

// ValidateTransport additionally checks the chat-transport credentials.
func (c *Config) ValidateTransport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.TelegramToken == "" {
		return errors.New("config: TELEGRAM_TOKEN is required")
	}
	return nil
}

// IsAdmin reports whether the given user ID is configured as an admin.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("invalid float in environment, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

// parseAdminIDs parses a comma-separated list of numeric user IDs.
// Malformed entries are skipped.
func parseAdminIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			slog.Warn("skipping malformed admin ID", "value", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
