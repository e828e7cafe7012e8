package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/winpath/winpath"

	"github.com/spf13/viper"
)

// Config stores all configuration of the engine.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
}

// NormalizerConfig stores the path normalization engine settings. It is
// constructed once and shared read-only for the lifetime of the owning
// process; nothing mutates it at runtime.
type NormalizerConfig struct {
	// CacheEnabled turns the facade's LRU result cache on or off.
	CacheEnabled bool `mapstructure:"cacheEnabled"`

	// CacheCapacity is the maximum number of cached results.
	CacheCapacity int `mapstructure:"cacheCapacity"`

	// ValidateDriveExistence verifies extracted drive letters against the
	// OS. Off by default so the engine behaves identically on hosts
	// without Windows drive semantics.
	ValidateDriveExistence bool `mapstructure:"validateDriveExistence"`

	// UnicodeNormalize applies NFC composition to canonical paths.
	UnicodeNormalize bool `mapstructure:"unicodeNormalize"`

	// BatchWorkers bounds concurrent batch normalization. Zero picks a
	// CPU-derived default.
	BatchWorkers int `mapstructure:"batchWorkers"`
}

var AppConfig Config

// DefaultNormalizerConfig returns the engine defaults without touching
// viper, for embedders that configure programmatically.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		CacheEnabled:           true,
		CacheCapacity:          internal.DefaultCacheCapacity,
		ValidateDriveExistence: false,
		UnicodeNormalize:       false,
		BatchWorkers:           0,
	}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("normalizer.cacheEnabled", true)
	viper.SetDefault("normalizer.cacheCapacity", internal.DefaultCacheCapacity)
	viper.SetDefault("normalizer.validateDriveExistence", false)
	viper.SetDefault("normalizer.unicodeNormalize", false)
	viper.SetDefault("normalizer.batchWorkers", 0)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. normalizer.cacheCapacity becomes NORMALIZER_CACHECAPACITY

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
