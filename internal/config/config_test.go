package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.JWTExpiration() != 720*time.Hour {
		t.Errorf("jwt expiration = %v, want 720h", cfg.JWTExpiration())
	}
	if cfg.ChatbotTimeout() != 30*time.Second {
		t.Errorf("chatbot timeout = %v, want 30s", cfg.ChatbotTimeout())
	}
	if cfg.Chatbot.Provider != "rules" {
		t.Errorf("chatbot provider = %q, want rules", cfg.Chatbot.Provider)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  allowed_origins: "http://a.test, http://b.test"
database:
  driver: memory
jwt:
  secret: from-file
`)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_SEED", "false")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("env should override file port, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Database.Seed {
		t.Error("DB_SEED=false should disable seeding")
	}
	if cfg.JWT.Secret != "from-file" {
		t.Errorf("secret = %q", cfg.JWT.Secret)
	}
	origins := cfg.AllowedOrigins()
	if len(origins) != 2 || origins[1] != "http://b.test" {
		t.Errorf("origins = %v", origins)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"missing secret": `
jwt:
  secret: ""
`,
		"bad driver": `
database:
  driver: oracle
jwt:
  secret: s
`,
		"gemini without key": `
jwt:
  secret: s
chatbot:
  provider: gemini
`,
		"bad duration": `
jwt:
  secret: s
  expiration: forever
`,
		"bad chat store": `
jwt:
  secret: s
chat:
  store: redis
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			os.Unsetenv("JWT_SECRET")
			if _, err := LoadConfig(writeConfigFile(t, body)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSetFieldFromEnvRejectsBadInt(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := &Config{}
	if err := loadFromEnv(cfg); err == nil {
		t.Fatal("expected error for non-numeric SMTP_PORT")
	}
}
