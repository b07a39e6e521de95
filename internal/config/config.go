// Package config resolves s3redirects settings from defaults, an optional YAML
// file, REDIRECTS_* environment variables and command-line overrides.
//
// The result is an explicit Config value; nothing below the command layer
// reads the environment.
package config

import "github.com/3leaps/s3redirects/pkg/provider/s3"

// DefaultSourceKey is the object key fetched when none is given.
const DefaultSourceKey = "redirect_rules/latest.csv"

// Config is the fully resolved runtime configuration.
type Config struct {
	S3      S3Config      `mapstructure:"s3" yaml:"s3"`
	Source  SourceConfig  `mapstructure:"source" yaml:"source"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// S3Config locates the bucket holding the rules and the credentials to read it.
type S3Config struct {
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
	Region          string `mapstructure:"region" yaml:"region"`
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Profile         string `mapstructure:"profile" yaml:"profile,omitempty"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key,omitempty"`
	ForcePathStyle  bool   `mapstructure:"force_path_style" yaml:"force_path_style"`
}

// SourceConfig selects which object to read.
type SourceConfig struct {
	// Key is the object key (or path relative to Dir).
	Key string `mapstructure:"key" yaml:"key"`

	// Dir switches the source from S3 to a local directory.
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// S3Config returns the provider configuration. An endpoint implies path-style
// addressing, which S3-compatible stores generally require.
func (c *Config) S3Config() s3.Config {
	return s3.Config{
		Bucket:          c.S3.Bucket,
		Region:          c.S3.Region,
		Endpoint:        c.S3.Endpoint,
		Profile:         c.S3.Profile,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		ForcePathStyle:  c.S3.ForcePathStyle || c.S3.Endpoint != "",
	}
}

// Redacted returns a copy with credentials masked, safe to print.
func (c Config) Redacted() Config {
	c.S3.AccessKeyID = maskAccessKey(c.S3.AccessKeyID)
	if c.S3.SecretAccessKey != "" {
		c.S3.SecretAccessKey = "****"
	}
	return c
}

// maskAccessKey keeps the last four characters of a non-empty key.
func maskAccessKey(key string) string {
	switch {
	case key == "":
		return ""
	case len(key) <= 4:
		return "****"
	default:
		return "****" + key[len(key)-4:]
	}
}
