package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Organization OrganizationConfig
	Storage      StorageConfig
	OAuth2Google OAuth2GoogleConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// OrganizationConfig holds organization-wide settings that are not part of
// the attendance policy (those live in the settings store).
type OrganizationConfig struct {
	Name     string
	Timezone string
	Location *time.Location
}

type StorageConfig struct {
	Type       string // "local" or "s3"
	BasePath   string
	BaseURL    string
	S3Bucket   string
	S3Region   string
	S3Key      string
	S3Secret   string
	S3Endpoint string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win in deployment.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kriya-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	tz := getEnv("ORG_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE %q: %w", tz, err)
	}
	config.Organization = OrganizationConfig{
		Name:     getEnv("ORG_NAME", "Kriya HR"),
		Timezone: tz,
		Location: loc,
	}

	config.Storage = StorageConfig{
		Type:       getEnv("STORAGE_TYPE", "local"),
		BasePath:   getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:    getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		S3Bucket:   getEnv("S3_BUCKET", ""),
		S3Region:   getEnv("S3_REGION", "auto"),
		S3Key:      getEnv("S3_ACCESS_KEY", ""),
		S3Secret:   getEnv("S3_SECRET_KEY", ""),
		S3Endpoint: getEnv("S3_ENDPOINT", ""),
	}

	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Storage.Type == "s3" {
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_TYPE=s3")
		}
		if c.Storage.S3Key == "" || c.Storage.S3Secret == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when STORAGE_TYPE=s3")
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
