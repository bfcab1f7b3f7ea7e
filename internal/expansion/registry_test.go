package expansion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, root, dir, body string) {
	t.Helper()
	p := filepath.Join(root, "expansions", dir)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, "expansion.json"), []byte(body), 0o644))
}

func TestRegistry_Initialize(t *testing.T) {
	root := t.TempDir()
	writeProfile(t, root, "wotlk", `{"id":"wotlk","name":"Wrath","shortName":"WotLK","version":{"major":3,"minor":3,"patch":5},"build":12340,"maxLevel":80,"races":[1,2],"classes":[1,6]}`)
	writeProfile(t, root, "classic", `{"id":"classic","name":"Vanilla","version":{"major":1,"minor":12,"patch":1},"build":5875}`)
	writeProfile(t, root, "tbc", `{"id":"tbc","name":"Burning Crusade","version":{"major":2,"minor":4,"patch":3},"build":8606,"maxLevel":70}`)

	r := NewRegistry()
	n, err := r.Initialize(root)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	profiles := r.Profiles()
	require.Len(t, profiles, 3)
	assert.Equal(t, "classic", profiles[0].ID)
	assert.Equal(t, "tbc", profiles[1].ID)
	assert.Equal(t, "wotlk", profiles[2].ID)

	active, err := r.Active()
	require.NoError(t, err)
	assert.Equal(t, "wotlk", active.ID)
	assert.Equal(t, "3.3.5a", active.VersionString())
	assert.Equal(t, uint32(80), active.MaxLevel)
	assert.True(t, active.AllowsRace(2))
	assert.False(t, active.AllowsRace(10))

	classic, err := r.Profile("classic")
	require.NoError(t, err)
	assert.Equal(t, uint32(60), classic.MaxLevel, "maxLevel defaults to 60")
	assert.Equal(t, "1.12.1", classic.VersionString())
	assert.True(t, filepath.IsAbs(classic.DataPath))
	assert.Equal(t, filepath.Join(classic.DataPath, "manifest.json"), classic.AssetManifest)
	assert.Equal(t, filepath.Join(classic.DataPath, "opcodes.json"), classic.OpcodesPath())
}

func TestRegistry_DefaultsToHighestBuildWithoutWotlk(t *testing.T) {
	root := t.TempDir()
	writeProfile(t, root, "classic", `{"id":"classic","build":5875}`)
	writeProfile(t, root, "tbc", `{"id":"tbc","build":8606}`)

	r := NewRegistry()
	_, err := r.Initialize(root)
	require.NoError(t, err)
	assert.Equal(t, "tbc", r.ActiveID())
}

func TestRegistry_SkipsInvalidProfiles(t *testing.T) {
	root := t.TempDir()
	writeProfile(t, root, "noid", `{"name":"broken","build":1}`)
	writeProfile(t, root, "nobuild", `{"id":"nobuild"}`)
	writeProfile(t, root, "garbage", `{not json`)
	writeProfile(t, root, "turtle", `{"id":"turtle","build":7234}`)

	r := NewRegistry()
	n, err := r.Initialize(root)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "turtle", r.ActiveID())
}

func TestRegistry_SetActive(t *testing.T) {
	root := t.TempDir()
	writeProfile(t, root, "classic", `{"id":"classic","build":5875}`)
	writeProfile(t, root, "wotlk", `{"id":"wotlk","build":12340}`)

	r := NewRegistry()
	_, err := r.Initialize(root)
	require.NoError(t, err)

	require.NoError(t, r.SetActive("classic"))
	assert.Equal(t, "classic", r.ActiveID())

	err = r.SetActive("cata")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "classic", r.ActiveID(), "failed SetActive keeps previous selection")

	_, err = r.Profile("cata")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_NoExpansionsDir(t *testing.T) {
	r := NewRegistry()
	n, err := r.Initialize(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = r.Active()
	assert.ErrorIs(t, err, ErrNoProfiles)
}
