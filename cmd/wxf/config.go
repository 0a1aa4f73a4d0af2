package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/converter"
	"github.com/hengadev/wxf/internal/format"
	"github.com/hengadev/wxf/internal/monitoring"
	"github.com/hengadev/wxf/internal/wxferr"
	s3bucket "github.com/hengadev/wxf/providers/s3"
)

const defaultConfigPath = "wxf.yaml"

// Environment variables that override the configuration file
const (
	EnvOutputs        = "WXF_OUTPUTS"
	EnvOutput         = "WXF_OUTPUT"
	EnvInputFormat    = "WXF_INPUT_FORMAT"
	EnvDefaultContext = "WXF_DEFAULT_CONTEXT"
	EnvConcurrency    = "WXF_CONCURRENCY"
	EnvLogLevel       = "WXF_LOG_LEVEL"
	EnvLogFormat      = "WXF_LOG_FORMAT"
	EnvS3Region       = "WXF_S3_REGION"
	EnvS3Endpoint     = "WXF_S3_ENDPOINT"
)

// Config represents the configuration of the wxf command
type Config struct {
	Version        string    `yaml:"version"`
	Outputs        []string  `yaml:"outputs"`
	InputFormat    string    `yaml:"input_format,omitempty"`
	Output         string    `yaml:"output,omitempty"`
	DefaultContext string    `yaml:"default_context"`
	Concurrency    int       `yaml:"concurrency"`
	Log            LogConfig `yaml:"log"`
	S3             S3Config  `yaml:"s3"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// S3Config holds object storage settings. Credentials come from the
// default AWS chain.
type S3Config struct {
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        "1",
		Outputs:        []string{string(format.Binary)},
		DefaultContext: wxf.GlobalContext,
		Concurrency:    converter.DefaultConcurrency,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wxferr.NewIOError(wxferr.Read, path, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %w", wxf.ErrInvalidConfiguration, path, err)
	}
	return config, nil
}

// LoadConfigOrDefault loads path when it exists. A missing file is not an
// error when the path is the implicit default.
func LoadConfigOrDefault(path string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
	}
	return LoadConfig(path)
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides configuration values with the WXF_* environment
// variables that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvOutputs); v != "" {
		c.Outputs = strings.Split(v, ",")
	}
	c.Output = getEnvOrDefault(EnvOutput, c.Output)
	c.InputFormat = getEnvOrDefault(EnvInputFormat, c.InputFormat)
	c.DefaultContext = getEnvOrDefault(EnvDefaultContext, c.DefaultContext)
	c.Log.Level = getEnvOrDefault(EnvLogLevel, c.Log.Level)
	c.Log.Format = getEnvOrDefault(EnvLogFormat, c.Log.Format)
	c.S3.Region = getEnvOrDefault(EnvS3Region, c.S3.Region)
	c.S3.Endpoint = getEnvOrDefault(EnvS3Endpoint, c.S3.Endpoint)

	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got '%s'", wxf.ErrInvalidConfiguration, EnvConcurrency, v)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate checks every field and reports all problems at once, keyed by
// YAML field name.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	if c.Version == "" {
		c.Version = "1"
	}

	if len(c.Outputs) == 0 {
		errs.Set("outputs", errors.New("at least one output is required"))
	} else if _, err := format.ParseOutputs(strings.Join(c.Outputs, ",")); err != nil {
		errs.Set("outputs", err)
	}

	if c.InputFormat != "" {
		if _, err := format.ParseInput(c.InputFormat); err != nil {
			errs.Set("input_format", err)
		}
	}

	if s3bucket.IsURL(c.Output) {
		if _, err := s3bucket.ParseURL(c.Output); err != nil {
			errs.Set("output", err)
		}
	}

	if err := wxf.ValidateContext(c.DefaultContext); err != nil {
		errs.Set("default_context", err)
	}

	if c.Concurrency < 1 {
		errs.Set("concurrency", fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}

	if _, err := monitoring.ParseLogLevel(c.Log.Level); err != nil {
		errs.Set("log.level", err)
	}
	if _, err := monitoring.ParseLogFormat(c.Log.Format); err != nil {
		errs.Set("log.format", err)
	}

	return errs.AsError()
}

// ParsedOutputs returns the validated output kinds.
func (c *Config) ParsedOutputs() ([]format.Output, error) {
	return format.ParseOutputs(strings.Join(c.Outputs, ","))
}

// UsesS3 reports whether any input or the output location needs a client.
func (c *Config) UsesS3(inputs []string) bool {
	if s3bucket.IsURL(c.Output) {
		return true
	}
	for _, input := range inputs {
		if s3bucket.IsURL(input) {
			return true
		}
	}
	return false
}

// getEnvOrDefault returns the value of an environment variable, or
// defaultValue if it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
