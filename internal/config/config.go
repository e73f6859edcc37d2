// Package config loads vcf-anon settings from defaults, the config file,
// VCFANON_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/inodb/vcf-anon/internal/heuristic"
	"github.com/inodb/vcf-anon/internal/logging"
)

// EnvPrefix is the environment variable prefix, e.g. VCFANON_MAF_THRESHOLD.
const EnvPrefix = "VCFANON"

// FileName is the config file name looked up in the home directory.
const FileName = ".vcf-anon.yaml"

// Config holds every setting the tool reads.
type Config struct {
	MAFThreshold float64        `mapstructure:"maf_threshold" yaml:"maf_threshold"`
	STR          STRConfig      `mapstructure:"str" yaml:"str"`
	Workers      int            `mapstructure:"workers" yaml:"workers"`
	Progress     bool           `mapstructure:"progress" yaml:"progress"`
	Report       ReportConfig   `mapstructure:"report" yaml:"report"`
	Logging      logging.Config `mapstructure:"logging" yaml:"logging"`
}

// STRConfig holds the repeat detection settings.
type STRConfig struct {
	MinMotif  int `mapstructure:"min_motif" yaml:"min_motif"`
	MaxMotif  int `mapstructure:"max_motif" yaml:"max_motif"`
	MinRepeat int `mapstructure:"min_repeat" yaml:"min_repeat"`
}

// ReportConfig says where verification reports go.
type ReportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	DB  string `mapstructure:"db" yaml:"db"` // empty disables the history store
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("maf_threshold", heuristic.DefaultMAFThreshold)
	v.SetDefault("str.min_motif", heuristic.DefaultMinMotif)
	v.SetDefault("str.max_motif", heuristic.DefaultMaxMotif)
	v.SetDefault("str.min_repeat", heuristic.DefaultMinRepeat)
	v.SetDefault("workers", 0)
	v.SetDefault("progress", false)
	v.SetDefault("report.dir", "./reports")
	v.SetDefault("report.db", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv enables VCFANON_* overrides on v, with "." in keys mapped to "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

// Params returns the heuristic parameters.
func (c *Config) Params() heuristic.Params {
	return heuristic.Params{
		MAFThreshold: c.MAFThreshold,
		MinMotif:     c.STR.MinMotif,
		MaxMotif:     c.STR.MaxMotif,
		MinRepeat:    c.STR.MinRepeat,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers: %d (must be 0 or more)", c.Workers)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logging.Format)
	}
	if c.Report.Dir == "" {
		return fmt.Errorf("report directory must not be empty")
	}
	return nil
}
