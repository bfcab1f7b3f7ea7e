package asset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePack(t *testing.T, root, id, packJSON string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, id)
	writeManifest(t, dir, files)
	writeFile(t, filepath.Join(dir, packFileName), packJSON)
}

func TestHDPackManager_Discover(t *testing.T) {
	root := t.TempDir()
	writePack(t, root, "chars", `{"id":"chars","name":"HD Characters","group":"models","expansions":["wotlk"],"totalSizeMB":512}`, nil)
	writePack(t, root, "terrain", `{"id":"terrain","name":"HD Terrain"}`, nil)
	writePack(t, root, "broken", `{"name":"no id"}`, nil)
	writeFile(t, filepath.Join(root, "nomanifest", packFileName), `{"id":"nomanifest"}`)

	m := NewHDPackManager(root)
	n, err := m.Discover()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	packs := m.Packs()
	require.Len(t, packs, 2)
	assert.Equal(t, "chars", packs[0].ID)
	assert.Equal(t, uint32(512), packs[0].TotalSizeMB)
	assert.Equal(t, filepath.Join(root, "chars", packManifestName), packs[0].ManifestPath)

	assert.Len(t, m.PacksForExpansion("wotlk"), 2)
	tbc := m.PacksForExpansion("tbc")
	require.Len(t, tbc, 1)
	assert.Equal(t, "terrain", tbc[0].ID)
}

func TestHDPackManager_DiscoverMissingRoot(t *testing.T) {
	m := NewHDPackManager(filepath.Join(t.TempDir(), "absent"))
	n, err := m.Discover()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHDPackManager_Apply(t *testing.T) {
	root := t.TempDir()
	writePack(t, root, "a", `{"id":"a","expansions":["classic"]}`, map[string]string{"x.blp": "from-a"})
	writePack(t, root, "b", `{"id":"b"}`, map[string]string{"x.blp": "from-b"})
	writePack(t, root, "c", `{"id":"c"}`, map[string]string{"x.blp": "from-c"})

	m := NewHDPackManager(root)
	_, err := m.Discover()
	require.NoError(t, err)

	r := NewResolver(nil, 1<<20)
	assert.Zero(t, m.Apply(r, "wotlk"))
	assert.Empty(t, r.Overlays())

	m.SetEnabled("a", true)
	m.SetEnabled("b", true)
	m.SetEnabled("c", true)
	assert.True(t, m.Enabled("b"))

	// a не подходит для wotlk и не сдвигает приоритет
	assert.Equal(t, 2, m.Apply(r, "wotlk"))
	assert.Equal(t, []string{"hd_c", "hd_b"}, r.Overlays())
	assert.Equal(t, "from-c", string(r.ReadFile("x.blp")))

	m.SetEnabled("c", false)
	assert.Equal(t, 1, m.Apply(r, "wotlk"))
	assert.Equal(t, []string{"hd_b"}, r.Overlays())
	assert.Equal(t, "from-b", string(r.ReadFile("x.blp")))

	assert.Equal(t, 2, m.Apply(r, "classic"))
	assert.Equal(t, []string{"hd_b", "hd_a"}, r.Overlays())
}

func TestHDPackManager_Settings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.cfg")
	writeFile(t, path, "volume=80\nhd_pack_old=1\nfullscreen=0\n")

	m := NewHDPackManager(dir)
	require.NoError(t, m.LoadSettings(path))
	assert.True(t, m.Enabled("old"))

	m.SetEnabled("old", false)
	m.SetEnabled("chars", true)
	require.NoError(t, m.SaveSettings(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "volume=80\nfullscreen=0\nhd_pack_chars=1\nhd_pack_old=0\n", string(raw))

	other := NewHDPackManager(dir)
	require.NoError(t, other.LoadSettings(path))
	assert.True(t, other.Enabled("chars"))
	assert.False(t, other.Enabled("old"))

	require.NoError(t, other.LoadSettings(filepath.Join(dir, "missing.cfg")))
}

func TestHDPackManager_Watch(t *testing.T) {
	root := t.TempDir()
	m := NewHDPackManager(root)
	_, err := m.Discover()
	require.NoError(t, err)
	m.SetEnabled("late", true)

	r := NewResolver(nil, 1<<20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, r, "wotlk") }()

	// даём watcher'у подписаться
	time.Sleep(100 * time.Millisecond)
	writePack(t, root, "late", `{"id":"late"}`, map[string]string{"y.blp": "late"})

	require.Eventually(t, func() bool {
		return string(r.ReadFile("y.blp")) == "late"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
