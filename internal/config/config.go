package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	AWS       AWSConfig
	Provider  ProviderConfig
	RateLimit RateLimitConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	FrontendURL     string
	Environment     string
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// For SQLite
	Path string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// AWSConfig is handed to the AWS adapters at startup; nothing else reads AWS_* variables.
type AWSConfig struct {
	Region          string
	LockRegion      bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	EndpointURL     string
	MaxRetries      int
	HTTPTimeout     time.Duration
	EC2AMI          string
	EC2InstanceType string
	LambdaRoleARN   string
	LambdaRuntime   string
}

// HasStaticCredentials reports whether explicit keys were configured.
func (a AWSConfig) HasStaticCredentials() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != ""
}

// ProviderConfig bounds the provider calls made while refreshing statuses
type ProviderConfig struct {
	CallTimeout        time.Duration
	RefreshConcurrency int
}

// RateLimitConfig contains the per-client HTTP rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupSchedule   string
	IdleTTL           time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "sqlite"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "cloudmgr"),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Path:            getEnv("DB_PATH", "./cloudmgr.db"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_DEFAULT_REGION", "ap-south-1"),
			LockRegion:      getEnvAsBool("AWS_LOCK_REGION", true),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			SessionToken:    getEnv("AWS_SESSION_TOKEN", ""),
			EndpointURL:     getEnv("AWS_ENDPOINT_URL", ""),
			MaxRetries:      getEnvAsInt("AWS_MAX_RETRIES", 2),
			HTTPTimeout:     getEnvAsDuration("AWS_HTTP_TIMEOUT", 10*time.Second),
			EC2AMI:          getEnv("AWS_EC2_AMI_ID", "ami-0f58b397bc5c1f2e8"),
			EC2InstanceType: getEnv("AWS_EC2_INSTANCE_TYPE", "t3.micro"),
			LambdaRoleARN:   getEnv("AWS_LAMBDA_ROLE_ARN", ""),
			LambdaRuntime:   getEnv("AWS_LAMBDA_RUNTIME", "python3.12"),
		},
		Provider: ProviderConfig{
			CallTimeout:        getEnvAsDuration("PROVIDER_CALL_TIMEOUT", 5*time.Second),
			RefreshConcurrency: getEnvAsInt("PROVIDER_REFRESH_CONCURRENCY", 5),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 100),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 200),
			CleanupSchedule:   getEnv("RATE_LIMIT_CLEANUP_SCHEDULE", "@every 5m"),
			IdleTTL:           getEnvAsDuration("RATE_LIMIT_IDLE_TTL", 10*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if strings.TrimSpace(c.AWS.Region) == "" {
		return fmt.Errorf("AWS_DEFAULT_REGION must not be empty")
	}

	if c.Provider.CallTimeout <= 0 {
		return fmt.Errorf("PROVIDER_CALL_TIMEOUT must be positive")
	}

	if c.Provider.RefreshConcurrency < 1 {
		return fmt.Errorf("PROVIDER_REFRESH_CONCURRENCY must be at least 1")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
