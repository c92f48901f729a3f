package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalang/velac/internal/config"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "velac.yaml")
	yaml := `
root: src
out: build
color: never
dump_types_to: build/types.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src", cfg.Root)
	assert.Equal(t, "build", cfg.Out)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "build/types.db", cfg.DumpTypesTo)
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "velac.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out: dist\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Root, "omitted keys keep their defaults")
	assert.Equal(t, "dist", cfg.Out)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSourceExtHelpers(t *testing.T) {
	assert.True(t, config.HasSourceExt("main.vela"))
	assert.False(t, config.HasSourceExt("main.go"))
	assert.Equal(t, "main", config.TrimSourceExt("main.vela"))
	assert.Equal(t, "main.go", config.TrimSourceExt("main.go"))
}
