package config

import "time"

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Idea constraints
	MaxTitleLength   int
	MinTitleLength   int
	MaxIdeaLength    int
	MaxTagsPerIdea   int
	MaxIdeasPerQuery int

	// Document constraints
	MaxDocumentBytes   int
	LocalDocumentQuota int

	// Frankenstein constraints
	MinIngredientPool int
	MaxFeaturesPerMix int

	// Time constraints
	AnalysisTimeout   time.Duration
	SessionTimeout    time.Duration
	ConnectionTimeout time.Duration

	// Validation settings
	AllowEmptyBody     bool
	RequireUniqueTitle bool

	// Feature flags
	EnableHackathonScoring bool
	EnableFrankenstein     bool
	EnableDashboard        bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Idea constraints
		MaxTitleLength:   200,
		MinTitleLength:   1,
		MaxIdeaLength:    20000,
		MaxTagsPerIdea:   20,
		MaxIdeasPerQuery: 100,

		// Document constraints
		MaxDocumentBytes:   256 * 1024,
		LocalDocumentQuota: 100,

		// Frankenstein constraints
		MinIngredientPool: 2,
		MaxFeaturesPerMix: 6,

		// Time constraints
		AnalysisTimeout:   60 * time.Second,
		SessionTimeout:    24 * time.Hour,
		ConnectionTimeout: 30 * time.Second,

		// Validation settings
		AllowEmptyBody:     false,
		RequireUniqueTitle: false,

		// Feature flags
		EnableHackathonScoring: true,
		EnableFrankenstein:     true,
		EnableDashboard:        true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More restrictive limits for production
	config.MaxIdeaLength = 10000
	config.LocalDocumentQuota = 50
	config.AllowEmptyBody = false

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxIdeaLength = 100000
	config.LocalDocumentQuota = 1000
	config.AllowEmptyBody = true

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	return nil
}
