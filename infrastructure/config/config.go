package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage mode selects which persistence backend gets wired at startup
const (
	StorageModeHosted = "hosted"
	StorageModeLocal  = "local"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage selection, decided once at wiring time
	StorageMode string

	// AWS configuration (hosted mode)
	AWSRegion     string
	DynamoDBTable string
	// LegacyTable holds analyses written before the single-table migration
	LegacyTable  string
	IndexName    string // GSI1 - for user-level queries
	EventBusName string

	// Local mode
	SQLitePath string

	// Lambda configuration
	IsLambda           bool
	LambdaFunctionName string

	// Supabase authentication (hosted mode)
	SupabaseURL        string
	SupabaseServiceKey string

	// JWT authentication (local mode)
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Generative AI provider
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string

	// Quotas
	LocalDocumentQuota int

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		StorageMode:   getEnv("STORAGE_MODE", StorageModeLocal),

		// AWS configuration
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", "ideaforge"),
		LegacyTable:   getEnv("LEGACY_TABLE_NAME", ""),
		IndexName:     getEnv("INDEX_NAME", "UserIndex"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "ideaforge-events"),

		// Local mode
		SQLitePath: getEnv("SQLITE_PATH", "ideaforge.db"),

		// Lambda configuration
		IsLambda:           getEnvBool("IS_LAMBDA", false),
		LambdaFunctionName: getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),

		// Supabase authentication
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),

		// JWT authentication
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "ideaforge"),
		JWTAudience: getEnv("JWT_AUDIENCE", "ideaforge-api"),

		// Generative AI provider
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),

		// Quotas
		LocalDocumentQuota: getEnvInt("LOCAL_DOCUMENT_QUOTA", 100),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageMode {
	case StorageModeHosted, StorageModeLocal:
	default:
		return fmt.Errorf("STORAGE_MODE must be %q or %q", StorageModeHosted, StorageModeLocal)
	}

	if c.GeminiAPIKey == "" && c.Environment != "test" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	if c.StorageMode == StorageModeHosted {
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required in hosted mode")
		}
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required in hosted mode")
		}
	}

	if c.StorageMode == StorageModeLocal {
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required in local mode")
		}
		if c.JWTSecret == "" && c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsLocalMode checks if the local storage backend is selected
func (c *Config) IsLocalMode() bool {
	return c.StorageMode == StorageModeLocal
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
