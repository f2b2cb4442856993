package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Catalog     CatalogConfig
	Analytics   AnalyticsConfig
	GitHub      GitHubConfig
	Auth        AuthConfig
	Export      ExportConfig
	ObjectStore ObjectStoreConfig
	CORS        CORSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	RemoteURL      string
	FilePath       string
	InitialSource  string
	RequestTimeout int
}

// AnalyticsConfig holds the external analytics API configuration
type AnalyticsConfig struct {
	BaseURL        string
	RequestTimeout int
	ProbeTimeout   int
	MaxBatch       int
}

// GitHubConfig holds GitHub enrichment configuration
type GitHubConfig struct {
	Token     string
	CacheTTL  int
	CacheSize int
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string
}

// ExportConfig holds DataEase export configuration
type ExportConfig struct {
	Dir     string
	OnStart bool
}

// ObjectStoreConfig holds optional object storage configuration for export bundles
type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, so we don't return error if it doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:     getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
			ShutdownTimeout: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30),
		},
		Catalog: CatalogConfig{
			RemoteURL:      getEnv("CATALOG_REMOTE_URL", ""),
			FilePath:       getEnv("CATALOG_FILE_PATH", ""),
			InitialSource:  getEnv("CATALOG_INITIAL_SOURCE", "default"),
			RequestTimeout: getEnvAsInt("CATALOG_REQUEST_TIMEOUT", 30),
		},
		Analytics: AnalyticsConfig{
			BaseURL:        getEnv("ANALYTICS_BASE_URL", "http://localhost:5000"),
			RequestTimeout: getEnvAsInt("ANALYTICS_REQUEST_TIMEOUT", 30),
			ProbeTimeout:   getEnvAsInt("ANALYTICS_PROBE_TIMEOUT", 3),
			MaxBatch:       getEnvAsInt("ANALYTICS_MAX_BATCH", 10),
		},
		GitHub: GitHubConfig{
			Token:     getEnv("GITHUB_TOKEN", ""),
			CacheTTL:  getEnvAsInt("GITHUB_CACHE_TTL", 300),
			CacheSize: getEnvAsInt("GITHUB_CACHE_SIZE", 1024),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Export: ExportConfig{
			Dir:     getEnv("EXPORT_DIR", "data/exports"),
			OnStart: getEnvAsBool("EXPORT_ON_START", false),
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "dataease-exports"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", ",", []string{"*"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Analytics.BaseURL == "" {
		return fmt.Errorf("ANALYTICS_BASE_URL is required")
	}
	switch c.Catalog.InitialSource {
	case "default":
	case "remote":
		if c.Catalog.RemoteURL == "" {
			return fmt.Errorf("CATALOG_REMOTE_URL is required when CATALOG_INITIAL_SOURCE is remote")
		}
	case "file":
		if c.Catalog.FilePath == "" {
			return fmt.Errorf("CATALOG_FILE_PATH is required when CATALOG_INITIAL_SOURCE is file")
		}
	default:
		return fmt.Errorf("CATALOG_INITIAL_SOURCE must be one of default, remote, file")
	}
	if c.ObjectStore.Endpoint != "" {
		if c.ObjectStore.AccessKey == "" || c.ObjectStore.SecretKey == "" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
		}
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getEnvAsSlice gets an environment variable as slice with a fallback value
func getEnvAsSlice(key, separator string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, separator)
	}
	return fallback
}
