package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	JWT       JWTConfig       `envconfig:"JWT"`
	LLM       LLMConfig       `envconfig:"LLM"`
	Formatter FormatterConfig `envconfig:"FORMATTER"`
	Storage   StorageConfig   `envconfig:"STORAGE"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host          string `envconfig:"HOST" default:"localhost"`
	Port          string `envconfig:"PORT" default:"5432"`
	User          string `envconfig:"USER" default:"postgres"`
	Password      string `envconfig:"PASSWORD" default:"postgres"`
	Name          string `envconfig:"NAME" default:"meeting_minutes"`
	SSLMode       string `envconfig:"SSLMODE" default:"disable"`
	MaxConns      int    `envconfig:"MAX_CONNS" default:"25"`
	MinConns      int    `envconfig:"MIN_CONNS" default:"5"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	AutoMigrate   bool   `envconfig:"AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"ENABLED" default:"true"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string        `envconfig:"ACCESS_SECRET" default:"change-me-access-secret"`
	RefreshSecret string        `envconfig:"REFRESH_SECRET" default:"change-me-refresh-secret"`
	AccessExpiry  time.Duration `envconfig:"ACCESS_EXPIRY" default:"15m"`
	RefreshExpiry time.Duration `envconfig:"REFRESH_EXPIRY" default:"168h"`
}

// LLMConfig holds the OpenAI-compatible completion endpoint settings
type LLMConfig struct {
	APIKey          string        `envconfig:"API_KEY"`
	BaseURL         string        `envconfig:"BASE_URL"`
	Model           string        `envconfig:"MODEL" default:"gpt-5"`
	AutoSelectModel bool          `envconfig:"AUTO_SELECT_MODEL" default:"true"`
	Timeout         time.Duration `envconfig:"TIMEOUT" default:"60s"`
	MaxRetries      uint64        `envconfig:"MAX_RETRIES" default:"1"`
	CredentialsFile string        `envconfig:"CREDENTIALS_FILE" default:"~/.genspark_llm.yaml"`
}

// FormatterConfig holds minutes formatter settings
type FormatterConfig struct {
	PreferRemote   bool          `envconfig:"PREFER_REMOTE" default:"true"`
	VocabularyFile string        `envconfig:"VOCABULARY_FILE"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"24h"`
}

// StorageConfig holds transcript archive settings
type StorageConfig struct {
	Enabled         bool   `envconfig:"ENABLED" default:"false"`
	Endpoint        string `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"BUCKET" default:"meeting-minutes"`
	UseSSL          bool   `envconfig:"USE_SSL" default:"false"`
}

// DefaultLLMBaseURL is used when neither env nor credentials file set one
const DefaultLLMBaseURL = "https://www.genspark.ai/api/llm_proxy/v1"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	cfg.LLM.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyFallbacks fills the LLM credentials from OPENAI_* variables and the
// credentials file, in that order
func (l *LLMConfig) applyFallbacks() {
	if l.APIKey == "" {
		l.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if l.BaseURL == "" {
		l.BaseURL = os.Getenv("OPENAI_BASE_URL")
	}

	if l.APIKey == "" || l.BaseURL == "" {
		creds, err := LoadLLMCredentials(l.CredentialsFile)
		if err != nil {
			log.Printf("Warning: LLM credentials file not loaded: %v", err)
		} else if creds != nil {
			if l.APIKey == "" {
				l.APIKey = creds.OpenAI.APIKey
			}
			if l.BaseURL == "" {
				l.BaseURL = creds.OpenAI.BaseURL
			}
		}
	}

	if l.BaseURL == "" {
		l.BaseURL = DefaultLLMBaseURL
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	if c.IsProduction() && c.JWT.AccessSecret == "change-me-access-secret" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be changed in production")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.Storage.Enabled && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET is required when storage is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
