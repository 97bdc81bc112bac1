package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Environment   string
	AllowedOrigin string
	// Generative provider selection
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	// Alternative OpenAI-compatible provider
	OpenAIAPIKey string
	OpenAIModel  string
	// Persona/prompt spec file; empty means the embedded default
	PersonaFile string
}

func Load() Config {
	// .env.local takes precedence over .env for local development
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}
	cfg := Config{
		Port:          getEnvDefault("PORT", "3000"),
		Environment:   getEnvDefault("APP_ENV", "production"),
		AllowedOrigin: getEnvDefault("ALLOWED_ORIGIN", "*"),
		Provider:      getEnvDefault("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnvDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		PersonaFile:   os.Getenv("PERSONA_FILE"),
	}
	if cfg.CredentialSet() {
		slog.Info("provider credential loaded", "provider", cfg.Provider)
	} else {
		slog.Warn("provider credential is not set; generation calls will fail until provided", "provider", cfg.Provider)
	}
	return cfg
}

// CredentialSet reports whether the selected provider has its key configured.
func (c Config) CredentialSet() bool {
	switch c.Provider {
	case "openai":
		return strings.TrimSpace(c.OpenAIAPIKey) != ""
	default:
		return strings.TrimSpace(c.GeminiAPIKey) != ""
	}
}

// LogLevel maps the environment name to a slog level. Only verbosity is
// affected, never behavior.
func (c Config) LogLevel() slog.Level {
	if strings.EqualFold(c.Environment, "development") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
