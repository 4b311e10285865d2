package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// UploadsRoute is the path the storage directory is served at
const UploadsRoute = "/uploads"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		ReadTimeout    string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout   string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		StoragePath    string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicURL      string `yaml:"public_url" env:"SERVER_PUBLIC_URL"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Mongo struct {
		URI      string `yaml:"uri" env:"MONGO_URI"`
		Database string `yaml:"database" env:"MONGO_DB"`
	} `yaml:"mongo"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Chatbot struct {
		Provider     string `yaml:"provider" env:"CHATBOT_PROVIDER"`
		GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
		Model        string `yaml:"model" env:"CHATBOT_MODEL"`
		Timeout      string `yaml:"timeout" env:"CHATBOT_TIMEOUT"`
	} `yaml:"chatbot"`

	Chat struct {
		Store         string `yaml:"store" env:"CHAT_STORE"`
		Retention     string `yaml:"retention" env:"CHAT_RETENTION"`
		SweepInterval string `yaml:"sweep_interval" env:"CHAT_SWEEP_INTERVAL"`
	} `yaml:"chat"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"password" env:"SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SMTP_FROM"`
		UseTLS   bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = "*"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "45s"
	config.Server.StoragePath = "uploads"
	config.Server.PublicURL = "http://localhost:5000"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "cems"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"
	config.Database.Seed = true

	// Mongo defaults
	config.Mongo.URI = "mongodb://localhost:27017"
	config.Mongo.Database = "cems"

	// JWT defaults
	config.JWT.Expiration = "720h"
	config.JWT.Issuer = "cems.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Chatbot defaults
	config.Chatbot.Provider = "rules"
	config.Chatbot.Model = "gemini-2.5-flash"
	config.Chatbot.Timeout = "30s"

	// Chat defaults
	config.Chat.Store = "database"
	config.Chat.Retention = "720h"
	config.Chat.SweepInterval = "1h"

	// SMTP defaults
	config.SMTP.Port = 587
	config.SMTP.From = "no-reply@cems.app"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "postgres":
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT expiration":        config.JWT.Expiration,
		"server read timeout":   config.Server.ReadTimeout,
		"server write timeout":  config.Server.WriteTimeout,
		"chatbot timeout":       config.Chatbot.Timeout,
		"chat retention":        config.Chat.Retention,
		"chat sweep interval":   config.Chat.SweepInterval,
		"database conn max age": config.Database.ConnMaxLifetime,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	switch config.Chatbot.Provider {
	case "rules":
	case "gemini":
		if config.Chatbot.GeminiAPIKey == "" {
			return fmt.Errorf("gemini api key is required when chatbot provider is gemini")
		}
	default:
		return fmt.Errorf("unsupported chatbot provider %q", config.Chatbot.Provider)
	}

	switch config.Chat.Store {
	case "database":
	case "mongo":
		if config.Mongo.URI == "" || config.Mongo.Database == "" {
			return fmt.Errorf("mongo uri and database are required when chat store is mongo")
		}
	default:
		return fmt.Errorf("unsupported chat store %q", config.Chat.Store)
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// JWTExpiration returns the parsed token lifetime. Config is validated on load.
func (c *Config) JWTExpiration() time.Duration {
	d, _ := time.ParseDuration(c.JWT.Expiration)
	return d
}

// ChatbotTimeout returns the parsed LLM call timeout
func (c *Config) ChatbotTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Chatbot.Timeout)
	return d
}

// ChatRetention returns how long an idle conversation is kept
func (c *Config) ChatRetention() time.Duration {
	d, _ := time.ParseDuration(c.Chat.Retention)
	return d
}

// ChatSweepInterval returns how often idle conversations are evicted
func (c *Config) ChatSweepInterval() time.Duration {
	d, _ := time.ParseDuration(c.Chat.SweepInterval)
	return d
}

// UploadsURL is the public prefix uploaded files are served under
func (c *Config) UploadsURL() string {
	return strings.TrimRight(c.Server.PublicURL, "/") + UploadsRoute
}

// AllowedOrigins splits the comma-separated origin list
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
