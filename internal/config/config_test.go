package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Start every case from a clean slate; t.Setenv restores the originals.
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"HEALTHYMEAL_DB_PATH", "HEALTHYMEAL_USER_ID", "HEALTHYMEAL_GENERATOR",
			"HEALTHYMEAL_GENERATION_TIMEOUT", "GEMINI_API_KEY", "GEMINI_MODEL",
			"HEALTHYMEAL_PROXY_URL", "HEALTHYMEAL_PROXY_KEY",
		} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	t.Run("GeminiDefaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gemini_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Generator != GeneratorGemini {
			t.Errorf("Expected generator %q, got %q", GeneratorGemini, cfg.Generator)
		}
		if cfg.GeminiAPIKey != "gemini_key" {
			t.Errorf("Expected GeminiAPIKey to be 'gemini_key', got '%s'", cfg.GeminiAPIKey)
		}
		if cfg.GeminiModel != defaultGeminiModel {
			t.Errorf("Expected model %q, got %q", defaultGeminiModel, cfg.GeminiModel)
		}
		if cfg.DatabasePath != defaultDatabasePath {
			t.Errorf("Expected database path %q, got %q", defaultDatabasePath, cfg.DatabasePath)
		}
		if cfg.GenerationTimeout != 60*time.Second {
			t.Errorf("Expected 60s timeout, got %v", cfg.GenerationTimeout)
		}
		if cfg.UserID != 1 {
			t.Errorf("Expected user 1, got %d", cfg.UserID)
		}
	})

	t.Run("Proxy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HEALTHYMEAL_GENERATOR", "proxy")
		t.Setenv("HEALTHYMEAL_PROXY_URL", "http://proxy.test")
		t.Setenv("HEALTHYMEAL_PROXY_KEY", "secret")
		t.Setenv("HEALTHYMEAL_GENERATION_TIMEOUT", "15s")
		t.Setenv("HEALTHYMEAL_USER_ID", "7")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.ProxyURL != "http://proxy.test" || cfg.ProxyAPIKey != "secret" {
			t.Errorf("Unexpected proxy settings: %+v", cfg)
		}
		if cfg.GenerationTimeout != 15*time.Second {
			t.Errorf("Expected 15s timeout, got %v", cfg.GenerationTimeout)
		}
		if cfg.UserID != 7 {
			t.Errorf("Expected user 7, got %d", cfg.UserID)
		}
	})

	t.Run("NoneNeedsNoKeys", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HEALTHYMEAL_GENERATOR", "none")

		if _, err := NewFromEnv(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	errorCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "MissingGeminiAPIKey",
			env:  map[string]string{},
			want: "GEMINI_API_KEY environment variable not set",
		},
		{
			name: "MissingProxyURL",
			env:  map[string]string{"HEALTHYMEAL_GENERATOR": "proxy"},
			want: "HEALTHYMEAL_PROXY_URL environment variable not set",
		},
		{
			name: "BadUserID",
			env:  map[string]string{"HEALTHYMEAL_GENERATOR": "none", "HEALTHYMEAL_USER_ID": "abc"},
			want: `HEALTHYMEAL_USER_ID must be a positive integer, got "abc"`,
		},
		{
			name: "BadTimeout",
			env:  map[string]string{"HEALTHYMEAL_GENERATOR": "none", "HEALTHYMEAL_GENERATION_TIMEOUT": "-1s"},
			want: `HEALTHYMEAL_GENERATION_TIMEOUT must be a positive duration, got "-1s"`,
		},
		{
			name: "UnknownGenerator",
			env:  map[string]string{"HEALTHYMEAL_GENERATOR": "groq"},
			want: `unknown HEALTHYMEAL_GENERATOR "groq" (want gemini, proxy or none)`,
		},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := NewFromEnv()
			if err == nil {
				t.Fatalf("Expected error %q, got nil", tc.want)
			}
			if err.Error() != tc.want {
				t.Errorf("Expected error '%s', got '%s'", tc.want, err.Error())
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	for _, key := range []string{"HEALTHYMEAL_GENERATOR", "HEALTHYMEAL_DB_PATH", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "HEALTHYMEAL_GENERATOR=none\nHEALTHYMEAL_DB_PATH=/tmp/from-dotenv.db\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	cfg, err := Load(filepath.Join(dir, "missing.env"), envFile)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.DatabasePath != "/tmp/from-dotenv.db" {
		t.Errorf("Expected database path from .env, got %q", cfg.DatabasePath)
	}
}
