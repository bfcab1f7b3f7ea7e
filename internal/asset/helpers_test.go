package asset

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/wowee/internal/asset/mpq"
)

func writeArchive(t *testing.T, path string, files map[string]string) {
	t.Helper()
	w := mpq.NewWriter()
	for name, body := range files {
		w.Add(name, []byte(body), mpq.WriteCompress)
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, w.WriteFile(path))
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

// writeManifest writes dir/manifest.json indexing files (keyed by
// forward-slash virtual path) extracted under dir/assets.
func writeManifest(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	type entry struct {
		P string `json:"p"`
		S int    `json:"s"`
	}
	entries := make(map[string]entry, len(files))
	for vpath, body := range files {
		rel := path.Join("files", vpath)
		writeFile(t, filepath.Join(dir, "assets", filepath.FromSlash(rel)), body)
		entries[Normalize(vpath)] = entry{P: rel, S: len(body)}
	}
	raw, err := json.Marshal(map[string]any{
		"version":  1,
		"basePath": "assets",
		"entries":  entries,
	})
	require.NoError(t, err)

	p := filepath.Join(dir, "manifest.json")
	writeFile(t, p, string(raw))
	return p
}
