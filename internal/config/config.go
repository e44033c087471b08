// Package config loads process-wide settings for the ggcontainer CLI
// from flags, environment variables, and an optional config file, in
// that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds settings shared across every ggcontainer subcommand.
type Config struct {
	LogLevel          string `mapstructure:"log_level"`
	CompressMetadata  bool   `mapstructure:"compress_metadata"`
	AnnotateChecksums bool   `mapstructure:"annotate_checksums"`
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// LoadOptions configures Load.
type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

// DefaultConfig returns the config a bare invocation runs with.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		CompressMetadata:  false,
		AnnotateChecksums: true,
	}
}

// RegisterFlags adds the persistent flags Load reads back via viper's
// pflag binding.
func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("log-level", defaults.LogLevel, "Log level (panic|fatal|error|warn|info|debug|trace)")
	fs.Bool("compress-metadata", defaults.CompressMetadata, "Zstd-compress Binary metadata values on write")
	fs.Bool("annotate-checksums", defaults.AnnotateChecksums, "Record an xxh64 checksum metadata entry per tensor on write")
}

// Load resolves a Config from (in increasing precedence) its
// defaults, an optional config file, the GGCONTAINER_* environment,
// and bound command-line flags.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", opts.Defaults.LogLevel)
	v.SetDefault("compress_metadata", opts.Defaults.CompressMetadata)
	v.SetDefault("annotate_checksums", opts.Defaults.AnnotateChecksums)

	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	v.RegisterAlias("log_level", "log-level")
	v.RegisterAlias("compress_metadata", "compress-metadata")
	v.RegisterAlias("annotate_checksums", "annotate-checksums")

	v.SetEnvPrefix("GGCONTAINER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("ggcontainer")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
