package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func TestSaveAndLoadJson(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	in := []record{{Name: "a", Level: 1}, {Name: "b", Level: 2}}
	require.NoError(t, d.SaveJson(in, "records.json"))

	var out []record
	require.NoError(t, d.Load(&out, "records.json"))
	assert.Equal(t, in, out)

	entries, err := os.ReadDir(d.RootFolder)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is renamed away")
}

func TestLoadFallsBackToGzip(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	in := map[string]string{"TEXT_CLASS_WARRIOR": "Warrior"}
	require.NoError(t, d.SaveGzippedJson(in, "locale.json.gz"))
	assert.True(t, d.Exists("locale.json"))

	var out map[string]string
	require.NoError(t, d.Load(&out, "locale.json"))
	assert.Equal(t, in, out)

	out = nil
	require.NoError(t, d.Load(&out, "locale.json.gz"))
	assert.Equal(t, in, out)
}

func TestLoadMissing(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	var out []record
	err := d.Load(&out, "nope.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, d.Exists("nope.json"))
}

func TestLoadBrokenJson(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(d.RootFolder, "bad.json"), []byte(`[{"name":`), 0o644))
	var out []record
	assert.Error(t, d.Load(&out, "bad.json"))
}

func TestRemove(t *testing.T) {
	d := NewDiskStorage(t.TempDir())
	require.NoError(t, d.SaveJson([]record{{Name: "old"}}, "records.json"))
	require.NoError(t, d.SaveGzippedJson([]record{{Name: "new"}}, "records.json.gz"))

	require.NoError(t, d.Remove("records.json"))
	require.NoError(t, d.Remove("records.json"), "already gone")

	var out []record
	require.NoError(t, d.Load(&out, "records.json"))
	assert.Equal(t, []record{{Name: "new"}}, out)
}
