package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the timeline builder configuration
type Config struct {
	// Scan settings
	Recursive     bool     `mapstructure:"recursive"`      // scan subdirectories
	Exclude       []string `mapstructure:"exclude"`        // glob patterns to skip
	Extensions    []string `mapstructure:"extensions"`     // extension allowlist, empty = all files
	ProgressEvery int      `mapstructure:"progress_every"` // report progress every N files

	// Display settings
	DisplayLimit int `mapstructure:"display_limit"` // max events shown per view

	// Export settings
	ExportFormat string `mapstructure:"export_format"` // csv, json
	OutputFile   string `mapstructure:"output_file"`   // export file path

	// Store settings
	StorePath string `mapstructure:"store_path"` // sqlite database for saved scans

	// Profile settings
	ProfilesPath string `mapstructure:"profiles_path"` // directory of scan profile YAMLs
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("recursive", true)
	v.SetDefault("progress_every", 50)
	v.SetDefault("display_limit", 50)
	v.SetDefault("export_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("store_path", "timelines.db")
	v.SetDefault("profiles_path", "configs/profiles")
	v.SetDefault("exclude", []string{".git", "node_modules", "vendor", ".svn", ".hg"})

	// Read environment variables
	v.SetEnvPrefix("FTB")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ShouldAnalyze determines if a file takes part in event extraction based
// on its extension. An empty allowlist means every file is analyzed.
func (c *Config) ShouldAnalyze(extension string) bool {
	if len(c.Extensions) == 0 {
		return true
	}

	extension = strings.ToLower(extension)
	for _, ext := range c.Extensions {
		if strings.ToLower(strings.TrimPrefix(ext, ".")) == extension {
			return true
		}
	}
	return false
}

// ApplyProfile merges a scan profile into the configuration. Profile
// extensions replace the allowlist, profile excludes are appended.
func (c *Config) ApplyProfile(p *Profile) {
	if len(p.Extensions) > 0 {
		c.Extensions = p.Extensions
	}
	c.Exclude = append(c.Exclude, p.Exclude...)
}
