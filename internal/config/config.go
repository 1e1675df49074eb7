package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Generator kinds accepted in HEALTHYMEAL_GENERATOR.
const (
	GeneratorGemini = "gemini"
	GeneratorProxy  = "proxy"
	// GeneratorNone disables generation; every generated plan is the fallback plan.
	GeneratorNone = "none"
)

const (
	defaultDatabasePath      = "data/healthymeal.db"
	defaultGeminiModel       = "gemini-1.5-flash"
	defaultGenerationTimeout = 60 * time.Second
	defaultUserID            = 1
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	UserID       int64

	Generator         string
	GenerationTimeout time.Duration

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// HTTP proxy in front of the model
	ProxyURL    string
	ProxyAPIKey string
}

// Load reads the given .env files, if present, and then builds the Config
// from the environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return NewFromEnv()
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		DatabasePath:      getEnv("HEALTHYMEAL_DB_PATH", defaultDatabasePath),
		UserID:            defaultUserID,
		Generator:         getEnv("HEALTHYMEAL_GENERATOR", GeneratorGemini),
		GenerationTimeout: defaultGenerationTimeout,
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", defaultGeminiModel),
		ProxyURL:          os.Getenv("HEALTHYMEAL_PROXY_URL"),
		ProxyAPIKey:       os.Getenv("HEALTHYMEAL_PROXY_KEY"),
	}

	if v := os.Getenv("HEALTHYMEAL_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("HEALTHYMEAL_USER_ID must be a positive integer, got %q", v)
		}
		cfg.UserID = id
	}

	if v := os.Getenv("HEALTHYMEAL_GENERATION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("HEALTHYMEAL_GENERATION_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.GenerationTimeout = d
	}

	switch cfg.Generator {
	case GeneratorGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case GeneratorProxy:
		if cfg.ProxyURL == "" {
			return nil, fmt.Errorf("HEALTHYMEAL_PROXY_URL environment variable not set")
		}
	case GeneratorNone:
	default:
		return nil, fmt.Errorf("unknown HEALTHYMEAL_GENERATOR %q (want %s, %s or %s)",
			cfg.Generator, GeneratorGemini, GeneratorProxy, GeneratorNone)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
