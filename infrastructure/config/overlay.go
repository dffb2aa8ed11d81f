package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileOverlay mirrors the YAML configuration file. Every field is optional;
// only the keys present in the file override values already loaded from the
// environment.
type fileOverlay struct {
	ServerAddress *string `yaml:"server_address"`
	Environment   *string `yaml:"environment"`
	StorageMode   *string `yaml:"storage_mode"`

	AWS *struct {
		Region       *string `yaml:"region"`
		Table        *string `yaml:"table"`
		LegacyTable  *string `yaml:"legacy_table"`
		IndexName    *string `yaml:"index_name"`
		EventBusName *string `yaml:"event_bus"`
	} `yaml:"aws"`

	SQLitePath *string `yaml:"sqlite_path"`

	Gemini *struct {
		Model    *string `yaml:"model"`
		Endpoint *string `yaml:"endpoint"`
	} `yaml:"gemini"`

	LocalDocumentQuota *int    `yaml:"local_document_quota"`
	LogLevel           *string `yaml:"log_level"`
	EnableMetrics      *bool   `yaml:"enable_metrics"`
	EnableCORS         *bool   `yaml:"enable_cors"`
}

// LoadWithOverlay loads configuration from the environment, then applies the
// optional YAML overlay file. Secrets (API keys, JWT secret) never come from
// the file.
func LoadWithOverlay(path string) (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultOverlayPath()
	}
	if path == "" {
		return cfg, nil
	}

	if err := applyOverlayFile(cfg, path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration invalid after overlay: %w", err)
	}

	return cfg, nil
}

// DefaultOverlayPath finds the conventional overlay file, if one exists
func DefaultOverlayPath() string {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	for _, name := range []string{"local.yaml", "local.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func applyOverlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read overlay file: %w", err)
	}

	var overlay fileOverlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	setIf(&cfg.ServerAddress, overlay.ServerAddress)
	setIf(&cfg.Environment, overlay.Environment)
	setIf(&cfg.StorageMode, overlay.StorageMode)

	if overlay.AWS != nil {
		setIf(&cfg.AWSRegion, overlay.AWS.Region)
		setIf(&cfg.DynamoDBTable, overlay.AWS.Table)
		setIf(&cfg.LegacyTable, overlay.AWS.LegacyTable)
		setIf(&cfg.IndexName, overlay.AWS.IndexName)
		setIf(&cfg.EventBusName, overlay.AWS.EventBusName)
	}

	setIf(&cfg.SQLitePath, overlay.SQLitePath)

	if overlay.Gemini != nil {
		setIf(&cfg.GeminiModel, overlay.Gemini.Model)
		setIf(&cfg.GeminiEndpoint, overlay.Gemini.Endpoint)
	}

	if overlay.LocalDocumentQuota != nil {
		cfg.LocalDocumentQuota = *overlay.LocalDocumentQuota
	}
	setIf(&cfg.LogLevel, overlay.LogLevel)
	if overlay.EnableMetrics != nil {
		cfg.EnableMetrics = *overlay.EnableMetrics
	}
	if overlay.EnableCORS != nil {
		cfg.EnableCORS = *overlay.EnableCORS
	}

	return nil
}

func setIf(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}
