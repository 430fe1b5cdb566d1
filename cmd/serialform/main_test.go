package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/docerr"
)

const setYAML = `
packages:
  - name: com.example.app
    classes:
      - name: com.example.app.Widget
        superclass: com.example.app.Base
      - name: com.example.app.Base
        generated: false
`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "set.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(setYAML), 0o644))
	cfg := config.Defaults()
	cfg.ModelPath = modelPath
	cfg.OutputDir = filepath.Join(dir, "site")
	return cfg
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunRender_HTML(t *testing.T) {
	cfg := testConfig(t)
	path, err := runRender(context.Background(), cfg, "", "", discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "serialized-form.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "com.example.app.Widget")
}

func TestRunRender_DOCXOverride(t *testing.T) {
	cfg := testConfig(t)
	out := t.TempDir()
	path, err := runRender(context.Background(), cfg, out, "docx", discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "serialized-form.docx"), path)
}

func TestRunRender_BadFormat(t *testing.T) {
	cfg := testConfig(t)
	_, err := runRender(context.Background(), cfg, "", "pdf", discard)
	require.Error(t, err)
	assert.Equal(t, 7, docerr.ExitCode(err))
}

func TestRunCheck(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer
	require.NoError(t, runCheck(cfg, &out, discard))
	assert.Contains(t, out.String(), "classes:  2")
	assert.Contains(t, out.String(), "included: 2")
	assert.Contains(t, out.String(), "visible:  1")
}

func TestRunCheck_CyclicModel(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.ModelPath, []byte(`
packages:
  - name: p
    classes:
      - name: p.A
        superclass: p.B
      - name: p.B
        superclass: p.A
`), 0o644))
	err := runCheck(cfg, io.Discard, discard)
	require.Error(t, err)
	assert.Equal(t, 2, docerr.ExitCode(err))
}
