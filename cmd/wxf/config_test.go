package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/wxf"
	"github.com/hengadev/wxf/internal/format"
)

// clearEnv blanks every WXF_* variable so the host environment cannot leak
// into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvOutputs, EnvOutput, EnvInputFormat, EnvDefaultContext, EnvConcurrency,
		EnvLogLevel, EnvLogFormat, EnvS3Region, EnvS3Endpoint,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigValidFile(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "wxf.yaml")

	configContent := `
version: "1"
outputs: [text, compressed]
input_format: yaml
output: s3://bucket/out
default_context: "Project` + "`" + `"
concurrency: 8
log:
  level: debug
  format: json
s3:
  region: eu-west-3
  endpoint: http://localhost:9000
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "compressed"}, config.Outputs)
	assert.Equal(t, "yaml", config.InputFormat)
	assert.Equal(t, "s3://bucket/out", config.Output)
	assert.Equal(t, "Project`", config.DefaultContext)
	assert.Equal(t, 8, config.Concurrency)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "eu-west-3", config.S3.Region)
	assert.Equal(t, "http://localhost:9000", config.S3.Endpoint)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/wxf.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, wxf.ErrNotFound)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
invalid: yaml: content:
  - missing
    proper: indentation
`), 0644))

	_, err := LoadConfig(configFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, wxf.ErrInvalidConfiguration)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(""), 0644))

	config, err := LoadConfig(configFile)
	require.NoError(t, err)

	// Should load with default values
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "wxf.yaml")

	config, err := LoadConfigOrDefault(missing, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	_, err = LoadConfigOrDefault(missing, true)
	assert.ErrorIs(t, err, wxf.ErrNotFound)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "wxf.yaml")

	original := DefaultConfig()
	original.Outputs = []string{"text", "binary"}
	original.Output = "out"
	original.S3.Region = "us-east-1"

	require.NoError(t, SaveConfig(original, configFile))

	loaded, err := LoadConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, []string{"binary"}, config.Outputs)
	assert.Equal(t, "Global`", config.DefaultContext)
	assert.Equal(t, 4, config.Concurrency)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.NoError(t, config.Validate())

	outputs, err := config.ParsedOutputs()
	require.NoError(t, err)
	assert.Equal(t, []format.Output{format.Binary}, outputs)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		keys   []string
	}{
		{
			name:   "no outputs",
			modify: func(c *Config) { c.Outputs = nil },
			keys:   []string{"outputs"},
		},
		{
			name:   "unknown output",
			modify: func(c *Config) { c.Outputs = []string{"binary", "pdf"} },
			keys:   []string{"outputs"},
		},
		{
			name:   "unknown input format",
			modify: func(c *Config) { c.InputFormat = "csv" },
			keys:   []string{"input_format"},
		},
		{
			name:   "s3 output without bucket",
			modify: func(c *Config) { c.Output = "s3://" },
			keys:   []string{"output"},
		},
		{
			name:   "bad context",
			modify: func(c *Config) { c.DefaultContext = "my-context`" },
			keys:   []string{"default_context"},
		},
		{
			name:   "zero concurrency",
			modify: func(c *Config) { c.Concurrency = 0 },
			keys:   []string{"concurrency"},
		},
		{
			name: "everything wrong at once",
			modify: func(c *Config) {
				c.Outputs = nil
				c.DefaultContext = ""
				c.Concurrency = -1
				c.Log.Level = "loud"
				c.Log.Format = "xml"
			},
			keys: []string{"outputs", "default_context", "concurrency", "log.level", "log.format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)

			err := config.Validate()
			require.Error(t, err)

			var errs errsx.Map
			require.True(t, errors.As(err, &errs))
			assert.Len(t, errs, len(tt.keys))
			for _, key := range tt.keys {
				assert.NotNil(t, errs[key], "expected an error for %s", key)
			}
		})
	}
}

func TestConfigValidateLocalOutput(t *testing.T) {
	config := DefaultConfig()
	config.Output = "some/dir"
	assert.NoError(t, config.Validate())
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOutputs, "text,compressed")
	t.Setenv(EnvOutput, "s3://bucket/prefix")
	t.Setenv(EnvInputFormat, "toml")
	t.Setenv(EnvDefaultContext, "Env`")
	t.Setenv(EnvConcurrency, "2")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvS3Region, "ap-south-1")
	t.Setenv(EnvS3Endpoint, "http://minio:9000")

	config := DefaultConfig()
	require.NoError(t, config.ApplyEnv())

	assert.Equal(t, []string{"text", "compressed"}, config.Outputs)
	assert.Equal(t, "s3://bucket/prefix", config.Output)
	assert.Equal(t, "toml", config.InputFormat)
	assert.Equal(t, "Env`", config.DefaultContext)
	assert.Equal(t, 2, config.Concurrency)
	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "ap-south-1", config.S3.Region)
	assert.Equal(t, "http://minio:9000", config.S3.Endpoint)
	assert.NoError(t, config.Validate())
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	clearEnv(t)

	config := DefaultConfig()
	config.Output = "from-file"
	require.NoError(t, config.ApplyEnv())

	assert.Equal(t, "from-file", config.Output)
	assert.Equal(t, DefaultConfig().Outputs, config.Outputs)
}

func TestApplyEnvInvalidConcurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConcurrency, "many")

	err := DefaultConfig().ApplyEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, wxf.ErrInvalidConfiguration)
}

func TestUsesS3(t *testing.T) {
	config := DefaultConfig()
	assert.False(t, config.UsesS3([]string{"a.json", "b.yaml"}))
	assert.True(t, config.UsesS3([]string{"a.json", "s3://bucket/b.yaml"}))

	config.Output = "s3://bucket/out"
	assert.True(t, config.UsesS3([]string{"a.json"}))
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("WXF_TEST_VALUE", "set")
	assert.Equal(t, "set", getEnvOrDefault("WXF_TEST_VALUE", "default"))

	t.Setenv("WXF_TEST_VALUE", "")
	assert.Equal(t, "default", getEnvOrDefault("WXF_TEST_VALUE", "default"))
}
