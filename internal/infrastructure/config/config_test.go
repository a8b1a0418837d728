package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "todolite", cfg.App.Name)
	assert.Equal(t, 500, cfg.Task.MaxDescriptionLength)
	assert.Equal(t, 400, cfg.Task.DescriptionWarnLength)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "todolite.json", cfg.Storage.Path)
	assert.Equal(t, "1.0", cfg.Storage.DocumentVersion)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("TASK_MAX_DESCRIPTION_LENGTH", "120")
	t.Setenv("TASK_DESCRIPTION_WARN_LENGTH", "100")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STORAGE_DOCUMENT_VERSION", "2.0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Task.MaxDescriptionLength)
	assert.Equal(t, 100, cfg.Task.DescriptionWarnLength)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "2.0", cfg.Storage.DocumentVersion)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "STORAGE_DRIVER", "postgres"},
		{"non-positive max length", "TASK_MAX_DESCRIPTION_LENGTH", "0"},
		{"warn length at max", "TASK_DESCRIPTION_WARN_LENGTH", "500"},
		{"warn length above max", "TASK_DESCRIPTION_WARN_LENGTH", "600"},
		{"file output without filename", "LOG_OUTPUT", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
