package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/docerr"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_path: ${DOCS_ROOT}/api.yaml
language: ja
window_title: Example API
output_format: docx
output_retries: 5
`), 0o644))

	t.Setenv("DOCS_ROOT", "/srv/docs")
	t.Setenv("SERIALFORM_OUTPUT_RETRIES", "1")
	t.Setenv("SERIALFORM_PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs/api.yaml", cfg.ModelPath)
	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "Example API", cfg.WindowTitle)
	assert.Equal(t, "docx", cfg.OutputFormat)
	assert.Equal(t, 1, cfg.OutputRetries)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 64, cfg.MaxHierarchyDepth)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, docerr.IsCategory(err, docerr.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing model", func(c *Config) { c.ModelPath = "" }, "model_path"},
		{"bad depth", func(c *Config) { c.MaxHierarchyDepth = 0 }, "max_hierarchy_depth"},
		{"bad format", func(c *Config) { c.OutputFormat = "pdf" }, "output_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var de *docerr.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Context["field"])
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERIALFORM_WATCH=true\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { os.Unsetenv("SERIALFORM_WATCH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Watch)
}
