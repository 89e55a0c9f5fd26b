package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/samplers/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".samplers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	content := `histogram:
  num_buckets: 12
  display_size: 40
  passthrough: never
sampler:
  seed: 99
summary:
  format: yaml
logging:
  level: debug
  json: true
`

	cfg, err := config.LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Histogram.NumBuckets)
	assert.Equal(t, 40, cfg.Histogram.DisplaySize)
	assert.Equal(t, config.PassthroughNever, cfg.Histogram.Passthrough)
	assert.Equal(t, uint64(99), cfg.Sampler.Seed)
	assert.Equal(t, config.FormatYAML, cfg.Summary.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "display_size", content: "histogram:\n  display_size: 0\n", wantErr: config.ErrInvalidDisplaySize},
		{name: "buckets", content: "histogram:\n  num_buckets: -3\n", wantErr: config.ErrInvalidBucketCount},
		{name: "passthrough", content: "histogram:\n  passthrough: sometimes\n", wantErr: config.ErrInvalidPassthrough},
		{name: "format", content: "summary:\n  format: xml\n", wantErr: config.ErrInvalidFormat},
		{name: "log_level", content: "logging:\n  level: loud\n", wantErr: config.ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "histogram: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) { //nolint:paralleltest // uses t.Setenv
	t.Setenv("SAMPLERS_HISTOGRAM_DISPLAY_SIZE", "33")
	t.Setenv("SAMPLERS_SAMPLER_SEED", "7")

	cfg, err := config.LoadConfig(writeConfig(t, "histogram:\n  display_size: 50\n"))
	require.NoError(t, err)

	assert.Equal(t, 33, cfg.Histogram.DisplaySize)
	assert.Equal(t, uint64(7), cfg.Sampler.Seed)
}
