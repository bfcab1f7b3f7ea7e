package updatefield

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	tbl := Defaults()

	assert.Equal(t, uint16(24), tbl.Index(UnitHealth))
	assert.Equal(t, uint16(54), tbl.Index(UnitLevel))
	assert.Equal(t, uint16(1170), tbl.Index(PlayerCoinage))
	assert.True(t, tbl.Has(ContainerSlot1))

	// UNIT_FIELD_AURAS нет в раскладке 3.3.5a
	assert.False(t, tbl.Has(UnitAuras))
	assert.Equal(t, Unknown, tbl.Index(UnitAuras))
	_, err := tbl.Lookup(UnitAuras)
	assert.ErrorIs(t, err, ErrUnknownField)

	f, ok := tbl.Field(24)
	require.True(t, ok)
	assert.Equal(t, UnitHealth, f)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update_fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"UNIT_FIELD_HEALTH": 22,
		"UNIT_FIELD_AURAS": 48,
		"UNIT_FIELD_SOMETHING_NEW": 99
	}`), 0o644))

	tbl := Defaults()
	n, err := tbl.LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, uint16(22), tbl.Index(UnitHealth))
	assert.Equal(t, uint16(48), tbl.Index(UnitAuras))
	assert.False(t, tbl.Has(UnitLevel), "load replaces the table")
	assert.Equal(t, 2, tbl.Len())
}

func TestLoadJSON_EmptyKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "update_fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"FOO": 1}`), 0o644))

	tbl := Defaults()
	_, err := tbl.LoadJSON(path)
	require.ErrorIs(t, err, ErrEmptyTable)
	assert.Equal(t, uint16(24), tbl.Index(UnitHealth))
}

func TestActive(t *testing.T) {
	prev := Active()
	t.Cleanup(func() { SetActive(prev) })

	SetActive(nil)
	assert.Equal(t, Unknown, Index(UnitHealth))

	SetActive(Defaults())
	assert.Equal(t, uint16(24), Index(UnitHealth))
}

func TestFieldNames(t *testing.T) {
	for f := Invalid + 1; f < numFields; f++ {
		back, ok := Parse(f.String())
		require.True(t, ok, "field %d", f)
		assert.Equal(t, f, back)
	}
}
