package config

import (
	"log/slog"
	"testing"
)

func TestCredentialSet(t *testing.T) {
	cfg := Config{Provider: "gemini"}
	if cfg.CredentialSet() {
		t.Error("empty gemini key reported as set")
	}
	cfg.GeminiAPIKey = "key"
	if !cfg.CredentialSet() {
		t.Error("gemini key not detected")
	}

	cfg = Config{Provider: "openai", GeminiAPIKey: "irrelevant"}
	if cfg.CredentialSet() {
		t.Error("openai provider should require the openai key")
	}
	cfg.OpenAIAPIKey = "key"
	if !cfg.CredentialSet() {
		t.Error("openai key not detected")
	}
}

func TestLogLevel(t *testing.T) {
	if (Config{Environment: "development"}).LogLevel() != slog.LevelDebug {
		t.Error("development should log at debug")
	}
	if (Config{Environment: "production"}).LogLevel() != slog.LevelInfo {
		t.Error("production should log at info")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	cfg := Load()
	if cfg.Port != "3000" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.Provider != "gemini" || cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("unexpected provider defaults: %+v", cfg)
	}
}
