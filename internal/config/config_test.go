package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
anthropic:
  api_key: sk-ant-test-key-12345
  model: claude-3-5-haiku-20241022
run:
  max_retries: 3
  retry_backoff: 5s
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.APIKey != "sk-ant-test-key-12345" {
		t.Errorf("unexpected api key: %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-3-5-haiku-20241022" {
		t.Errorf("unexpected model: %q", cfg.Anthropic.Model)
	}
	if cfg.Run.MaxRetries != 3 {
		t.Errorf("expected max_retries 3, got %d", cfg.Run.MaxRetries)
	}
	if cfg.Run.RetryBackoff != 5*time.Second {
		t.Errorf("expected retry_backoff 5s, got %v", cfg.Run.RetryBackoff)
	}
}

func TestLoadFromPathDefaults(t *testing.T) {
	path := writeConfig(t, "anthropic:\n  api_key: sk-ant-x\n")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.Model == "" {
		t.Error("expected a default model")
	}
	if cfg.Run.MaxRetries != 1 {
		t.Errorf("expected default max_retries 1, got %d", cfg.Run.MaxRetries)
	}
	if cfg.Bedrock.Enabled {
		t.Error("expected bedrock disabled by default")
	}
}

func TestLoadFromPathExpandsEnv(t *testing.T) {
	t.Setenv("CREWKIT_TEST_KEY", "sk-ant-from-env")
	path := writeConfig(t, "anthropic:\n  api_key: ${CREWKIT_TEST_KEY}\n")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Anthropic.APIKey != "sk-ant-from-env" {
		t.Errorf("expected expanded key, got %q", cfg.Anthropic.APIKey)
	}
}

func TestAPIKeyPrefersEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-env-wins")

	key, err := APIKey(&Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-ant-env-wins" {
		t.Errorf("expected env key, got %q", key)
	}
}

func TestAPIKeyFallsBackToConfig(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	key, err := APIKey(&Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "sk-ant-config" {
		t.Errorf("expected config key, got %q", key)
	}
}

func TestAPIKeyMissing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := APIKey(&Config{}); err != ErrNoAPIKey {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := MaskAPIKey(""); got != "(not set)" {
		t.Errorf("expected (not set), got %q", got)
	}
	if got := MaskAPIKey("short"); got != "****" {
		t.Errorf("expected ****, got %q", got)
	}
	got := MaskAPIKey("sk-ant-REDACTED")
	if got != "sk-ant-...wxyz" {
		t.Errorf("unexpected mask: %q", got)
	}
}
