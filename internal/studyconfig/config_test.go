package studyconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultDataDir, cfg.Paths.Data)
	assert.Equal(t, DefaultResultsDir, cfg.Paths.Results)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	require.NotNil(t, cfg.Server.NoBrowser)
	assert.False(t, *cfg.Server.NoBrowser)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadReturnsDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadMergesPartialConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
paths:
  results: exports/
server:
  port: 9000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".truststudy.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "exports/", cfg.Paths.Results)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Unset fields keep their defaults.
	assert.Equal(t, DefaultDataDir, cfg.Paths.Data)
	require.NotNil(t, cfg.Server.NoBrowser)
	assert.False(t, *cfg.Server.NoBrowser)
}

func TestLoadWalksUpToParentDirs(t *testing.T) {
	root := t.TempDir()
	content := `
catalog:
  path: custom-catalog.yaml
server:
  no_browser: true
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".truststudy.yaml"), []byte(content), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	require.NoError(t, err)

	assert.Equal(t, "custom-catalog.yaml", cfg.Catalog.Path)
	require.NotNil(t, cfg.Server.NoBrowser)
	assert.True(t, *cfg.Server.NoBrowser)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".truststudy.yaml"), []byte("paths: ["), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestNearestConfigWins(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".truststudy.yaml"),
		[]byte("server:\n  port: 1111\n"), 0o644))

	child := filepath.Join(root, "study")
	require.NoError(t, os.MkdirAll(child, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(child, ".truststudy.yaml"),
		[]byte("server:\n  port: 2222\n"), 0o644))

	cfg, err := Load(child)
	require.NoError(t, err)
	assert.Equal(t, 2222, cfg.Server.Port)
}
