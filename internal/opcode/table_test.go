package opcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestTable_PingRoundTrip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "opcodes.json", `{ "CMSG_PING": "0x1DC" }`)

	tbl := NewTable()
	n, err := tbl.LoadJSON(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, uint16(0x1DC), tbl.ToWire(CMsgPing))

	op, ok := tbl.FromWire(0x1DC)
	require.True(t, ok)
	assert.Equal(t, CMsgPing, op)

	assert.Equal(t, Unmapped, tbl.ToWire(SMsgPong))
	_, ok = tbl.FromWire(0x1DD)
	assert.False(t, ok)
}

func TestTable_HexAndDecimalValues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "opcodes.json", `{
		"CMSG_PING": "0x1DC",
		"SMSG_PONG": 477,
		"SMSG_CHAR_ENUM": "0x03B",
		"SMSG_NOT_A_THING": "0x999",
		"CMSG_CHAR_ENUM": true
	}`)

	tbl := NewTable()
	n, err := tbl.LoadJSON(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "unknown names and non-numeric values are skipped")
	assert.Equal(t, uint16(477), tbl.ToWire(SMsgPong))
	assert.Equal(t, uint16(0x3B), tbl.ToWire(SMsgCharEnum))
	assert.False(t, tbl.Has(CMsgCharEnum))
}

func TestTable_InverseInvariant(t *testing.T) {
	path := writeFile(t, t.TempDir(), "opcodes.json", `{
		"CMSG_PING": "0x1DC",
		"SMSG_PONG": "0x1DD",
		"CMSG_CHAR_ENUM": "0x037",
		"SMSG_CHAR_ENUM": "0x03B",
		"CMSG_AUTH_SESSION": "0x1ED",
		"SMSG_AUTH_CHALLENGE": "0x1EC",
		"SMSG_PONG": "0x1EE",
		"SMSG_MOTD": "0x037"
	}`)

	tbl := NewTable()
	_, err := tbl.LoadJSON(path, nil)
	require.NoError(t, err)

	assert.Equal(t, len(tbl.toWire), len(tbl.fromWire))
	for op, wire := range tbl.toWire {
		back, ok := tbl.FromWire(wire)
		require.True(t, ok)
		assert.Equal(t, op, back, "fromWire(toWire(%s))", op)
	}

	// последнее значение побеждает
	assert.Equal(t, uint16(0x1EE), tbl.ToWire(SMsgPong))
	assert.False(t, tbl.Has(CMsgCharEnum), "wire 0x037 was re-claimed by SMSG_MOTD")
	assert.Equal(t, uint16(0x037), tbl.ToWire(SMsgMotd))
}

func TestTable_LoadReplacesContent(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.json", `{"CMSG_PING": "0x1DC"}`)
	second := writeFile(t, dir, "b.json", `{"SMSG_PONG": "0x1DD"}`)

	tbl := NewTable()
	_, err := tbl.LoadJSON(first, nil)
	require.NoError(t, err)
	_, err = tbl.LoadJSON(second, nil)
	require.NoError(t, err)

	assert.False(t, tbl.Has(CMsgPing))
	assert.True(t, tbl.Has(SMsgPong))
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_EmptyLoadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"CMSG_PING": "0x1DC"}`)
	empty := writeFile(t, dir, "empty.json", `{"SMSG_WHATEVER": "0x1"}`)

	tbl := NewTable()
	_, err := tbl.LoadJSON(good, nil)
	require.NoError(t, err)

	_, err = tbl.LoadJSON(empty, nil)
	require.ErrorIs(t, err, ErrEmptyTable)
	assert.True(t, tbl.Has(CMsgPing))
}

func TestTable_MissingFile(t *testing.T) {
	_, err := NewTable().LoadJSON(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestTable_Aliases(t *testing.T) {
	dir := t.TempDir()
	aliasPath := writeFile(t, dir, "aliases.json", `{"aliases": {
		"SMSG_PING_REPLY": "SMSG_PONG_OLD",
		"SMSG_PONG_OLD": "SMSG_PONG",
		"CMSG_LOOP_A": "CMSG_LOOP_B",
		"CMSG_LOOP_B": "CMSG_LOOP_A"
	}}`)
	aliases, err := LoadAliases(aliasPath)
	require.NoError(t, err)

	assert.Equal(t, "SMSG_PONG", aliases.Canonical("SMSG_PING_REPLY"))
	assert.Equal(t, "CMSG_PING", aliases.Canonical("CMSG_PING"))
	assert.Contains(t, []string{"CMSG_LOOP_A", "CMSG_LOOP_B"}, aliases.Canonical("CMSG_LOOP_A"))

	path := writeFile(t, dir, "opcodes.json", `{"SMSG_PING_REPLY": "0x1DD"}`)
	tbl := NewTable()
	_, err = tbl.LoadJSON(path, aliases)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1DD), tbl.ToWire(SMsgPong))
}

func TestLoadAliases_MissingFile(t *testing.T) {
	a, err := LoadAliases(filepath.Join(t.TempDir(), "aliases.json"))
	require.NoError(t, err)
	assert.Empty(t, a)
}

func TestActiveTable(t *testing.T) {
	prev := Active()
	t.Cleanup(func() { SetActive(prev) })

	SetActive(nil)
	assert.Equal(t, Unmapped, Wire(CMsgPing))
	_, err := Lookup(0x1DC)
	assert.ErrorIs(t, err, ErrNoActiveTable)

	tbl := NewTable()
	tbl.Set(CMsgPing, 0x1DC)
	SetActive(tbl)

	assert.Equal(t, uint16(0x1DC), Wire(CMsgPing))
	op, err := Lookup(0x1DC)
	require.NoError(t, err)
	assert.Equal(t, CMsgPing, op)

	_, err = Lookup(0x0001)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestOpNames(t *testing.T) {
	assert.Equal(t, "CMSG_PING", CMsgPing.String())
	assert.Equal(t, "SMSG_AURA_UPDATE_ALL", SMsgAuraUpdateAll.String())
	assert.Equal(t, "UNKNOWN(0)", Invalid.String())

	for _, op := range All() {
		back, ok := Parse(op.String())
		require.True(t, ok, "name of %d must parse", op)
		assert.Equal(t, op, back)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wotlk/opcodes.json", `{"CMSG_PING": "0x1DC", "SMSG_PONG": "0x1DD"}`)
	writeFile(t, dir, "tbc/opcodes.json", `{"CMSG_PING": "0x1DC", "SMSG_PONG": "0x1DC", "SMSG_BOGUS": "0x1"}`)

	reports, err := Validate(dir, nil)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	tbc, wotlk := reports[0], reports[1]
	assert.Equal(t, "tbc", tbc.Expansion)
	assert.False(t, tbc.OK())
	assert.Equal(t, []string{"SMSG_BOGUS"}, tbc.Unknown)
	assert.Equal(t, []string{"CMSG_PING", "SMSG_PONG"}, tbc.Duplicates[0x1DC])

	assert.Equal(t, "wotlk", wotlk.Expansion)
	assert.True(t, wotlk.OK())
	assert.Equal(t, 2, wotlk.Mapped)
}
