package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisURL string

	KafkaBrokers []string

	// CORSOrigins lists the browser origins allowed to call the API. Empty allows any origin.
	CORSOrigins []string

	Casdoor CasdoorConfig
	Media   MediaConfig
}

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

// MediaConfig holds the Cloudinary credentials and upload limits
type MediaConfig struct {
	CloudinaryURL  string
	CloudName      string
	APIKey         string
	APISecret      string
	Folder         string
	MaxUploadBytes int64
}

// Configured reports whether enough credentials are present to reach the media host
func (m MediaConfig) Configured() bool {
	return m.CloudinaryURL != "" || (m.CloudName != "" && m.APIKey != "" && m.APISecret != "")
}

// LoadConfig reads .env (when present) and then the process environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		RedisURL:       getEnv("REDIS_URL", ""),
		KafkaBrokers:   splitList(getEnv("KAFKA_BROKERS", "")),
		CORSOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		Casdoor: CasdoorConfig{
			Endpoint:     getEnv("CASDOOR_ENDPOINT", ""),
			ClientID:     getEnv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getEnv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getEnv("CASDOOR_CERT", ""),
			Organization: getEnv("CASDOOR_ORGANIZATION", ""),
			Application:  getEnv("CASDOOR_APPLICATION", ""),
		},
		Media: loadMediaConfig(),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// LoadMediaConfig reads only the media host settings, for tools that do not touch the database
func LoadMediaConfig() (MediaConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return MediaConfig{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := loadMediaConfig()
	if !cfg.Configured() {
		return cfg, fmt.Errorf("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	return cfg, nil
}

func loadMediaConfig() MediaConfig {
	return MediaConfig{
		CloudinaryURL:  getEnv("CLOUDINARY_URL", ""),
		CloudName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:         getEnv("CLOUDINARY_API_KEY", ""),
		APISecret:      getEnv("CLOUDINARY_API_SECRET", ""),
		Folder:         getEnv("MEDIA_FOLDER", "course_files"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_SIZE_MB", 100)) << 20,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
