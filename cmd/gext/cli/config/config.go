package config

import "github.com/spf13/viper"

// Config represents the gext CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Catalog  CatalogConfig `mapstructure:"catalog"`
	Install  InstallConfig `mapstructure:"install"`
	Progress string        `mapstructure:"progress"`
}

// CatalogConfig holds catalog-related settings.
type CatalogConfig struct {
	URL string `mapstructure:"url"`
}

// InstallConfig holds installation-related settings.
type InstallConfig struct {
	// Dir overrides the default per-user extensions directory.
	Dir string `mapstructure:"dir"`
}

// Load returns the effective configuration from Viper (defaults, config
// file, and environment combined).
func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
