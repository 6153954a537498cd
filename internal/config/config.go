package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Qdrant   QdrantConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
}

type ServerConfig struct {
	Port       string
	Env        string
	SessionTTL time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// QdrantConfig enables the semantic resume index when URL is set.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbedModel     string
	Temperature    float32
	MaxPromptChars int
}

type StorageConfig struct {
	TempPath    string
	MaxFileSize int64
	MaxFiles    int
}

type PipelineConfig struct {
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	MaxResponseBytes  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:       getEnv("PORT", "3000"),
			Env:        getEnv("ENV", "development"),
			SessionTTL: getEnvAsDuration("SESSION_TTL", "12h"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ats"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", ""),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "ats_resumes"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbedModel:     getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
			Temperature:    getEnvAsFloat32("GEMINI_TEMPERATURE", 0.1),
			MaxPromptChars: getEnvAsInt("GEMINI_MAX_PROMPT_CHARS", 60000),
		},
		Storage: StorageConfig{
			TempPath:    getEnv("TEMP_PATH", os.TempDir()),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			MaxFiles:    getEnvAsInt("MAX_FILES_PER_UPLOAD", 20),
		},
		Pipeline: PipelineConfig{
			RetryMaxAttempts:  getEnvAsInt("RETRY_MAX_ATTEMPTS", 2),
			RetryInitialDelay: getEnvAsDuration("RETRY_INITIAL_DELAY", "2s"),
			MaxResponseBytes:  getEnvAsInt("MAX_RESPONSE_BYTES", 1<<20),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Gemini.APIKey == "" && c.IsProduction() {
		errs = append(errs, errors.New("GEMINI_API_KEY is required in production"))
	}
	if c.Storage.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize))
	}
	if c.Storage.MaxFiles <= 0 {
		errs = append(errs, fmt.Errorf("MAX_FILES_PER_UPLOAD must be positive, got %d", c.Storage.MaxFiles))
	}
	if c.Pipeline.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.Pipeline.RetryMaxAttempts))
	}
	if c.Pipeline.MaxResponseBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_RESPONSE_BYTES must be positive, got %d", c.Pipeline.MaxResponseBytes))
	}

	return errors.Join(errs...)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
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
