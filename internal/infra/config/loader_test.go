package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_RepoConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, dataDir, `
[board]
columns = [
  { id = "lead", title = "Lead" },
  { id = "client" },
]

[store]
type = "git"
namespace = "team-a"

[pages]
database = "content.db"

[log]
level = "debug"

[server]
addr = ":9000"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, []domain.ColumnConfig{{ID: "lead", Title: "Lead"}, {ID: "client"}}, cfg.Board.Columns)
	assert.Equal(t, domain.StoreTypeGit, cfg.Store.Type)
	assert.Equal(t, "team-a", cfg.Store.Namespace)
	assert.Equal(t, "content.db", cfg.Pages.Database)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_RepoOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, globalDir, `
[log]
level = "warn"

[server]
addr = ":7000"

[board]
columns = [{ id = "global" }]
`)
	writeConfig(t, dataDir, `
[log]
level = "error"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level, "repo wins")
	assert.Equal(t, ":7000", cfg.Server.Addr, "global fills the gaps")
	assert.Equal(t, []domain.ColumnConfig{{ID: "global"}}, cfg.Board.Columns)
	assert.Equal(t, domain.StoreTypeJSON, cfg.Store.Type, "default survives")
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()

	writeConfig(t, dataDir, `
top = 1

[board]
color = "red"
columns = [{ id = "a", emoji = "x" }, { title = "no id" }, "bad"]

[store]
encrypt = true

[extra]
foo = "bar"
`)

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"invalid entry in [board].columns: #2",
		"missing id in [board].columns: #1",
		"unknown key in [board].columns: emoji",
		"unknown key in [board]: color",
		"unknown key in [store]: encrypt",
		"unknown section: extra",
		"unknown section: top",
	}, cfg.Warnings)
	assert.Equal(t, []domain.ColumnConfig{{ID: "a"}}, cfg.Board.Columns)
}

func TestLoader_Load_InvalidStoreType(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
type = "s3"
`)

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	assert.ErrorIs(t, err, domain.ErrInvalidStoreType)
}

func TestLoader_Load_ParseError(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[log\nlevel=")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	assert.Error(t, err)
}

func TestLoader_LoadGlobal(t *testing.T) {
	globalDir := t.TempDir()

	_, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	writeConfig(t, globalDir, "[log]\nlevel = \"debug\"\n")
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Store.Type, "LoadGlobal does not apply defaults")
}

func TestLoader_RendersTemplateItLoads(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, domain.RenderConfigTemplate(nil))

	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}
