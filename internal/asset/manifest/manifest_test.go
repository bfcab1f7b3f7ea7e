package manifest

import (
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

const sample = `{
  "version": 1,
  "basePath": "assets",
  "entries": {
    "textures\\a.blp": {"p": "textures/a.blp", "s": 5, "h": "3610a686"},
    "sound\\b.wav": {"p": "sound/b.wav", "s": 3}
  }
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	writeFile(t, path, sample)
	writeFile(t, filepath.Join(dir, "assets", "textures", "a.blp"), "hello")

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, filepath.Join(dir, "assets"), m.BasePath())

	e, ok := m.Lookup(`textures\a.blp`)
	require.True(t, ok)
	assert.Equal(t, uint64(5), e.Size)
	assert.Equal(t, crc32.ChecksumIEEE([]byte("hello")), e.CRC32)

	data, err := m.ReadFile(`textures\a.blp`)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.True(t, e.Verify(data))
	assert.False(t, e.Verify([]byte("hellp")))

	_, err = m.ReadFile(`textures\missing.blp`)
	assert.ErrorIs(t, err, ErrNotInManifest)

	// listed but not extracted
	_, err = m.ReadFile(`sound\b.wav`)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_AbsoluteBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	writeFile(t, path, `{"version":1,"basePath":"/opt/hd","entries":{}}`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/hd", m.BasePath())
	assert.Equal(t, 0, m.Len())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"version", `{"version":2,"entries":{}}`, ErrUnsupportedVersion},
		{"no entries", `{"version":1}`, ErrNoEntries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			writeFile(t, path, tt.body)
			_, err := Load(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.json")
		writeFile(t, path, "")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	writeFile(t, path, sample)

	m, err := LoadCached(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	require.FileExists(t, path+IndexSuffix)

	// index wins while it is not older than the JSON
	writeFile(t, path, `{"version":1,"entries":{}}`)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	m, err = LoadCached(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, filepath.Join(dir, "assets"), m.BasePath())

	// newer JSON invalidates the index
	newer := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, newer, newer))
	m, err = LoadCached(path)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, `textures\a.blp`, Normalize("TEXTURES/A.BLP"))
	assert.Equal(t, `x\y\z`, Normalize(`X\y/Z`))
}
