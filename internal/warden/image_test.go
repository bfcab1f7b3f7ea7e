package warden

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBase = 0x00400000
	testSize = 0x4000
)

func testImage() []byte {
	return buildPE(testBase, testSize, []testSection{
		{name: ".text", va: 0x1000, vsize: 0x100, rawSize: 0x100, fill: 0xCC},
		{name: ".data", va: 0x2000, vsize: 0x80, rawSize: 0x100, fill: 0xDD},
	})
}

func TestParseImage(t *testing.T) {
	m, err := ParseImage(testImage())
	require.NoError(t, err)

	assert.Equal(t, uint32(testBase), m.ImageBase())
	assert.Equal(t, uint32(testSize), m.SizeOfImage())

	hdr, ok := m.ReadMemory(testBase, 2)
	require.True(t, ok)
	assert.Equal(t, []byte("MZ"), hdr)

	text, ok := m.ReadMemory(testBase+0x1000, 0x100)
	require.True(t, ok)
	assert.Equal(t, bytes.Repeat([]byte{0xCC}, 0x100), text)

	// .data обрезается по VirtualSize (0x80 из 0x100)
	data, ok := m.ReadMemory(testBase+0x2000, 0x100)
	require.True(t, ok)
	assert.Equal(t, bytes.Repeat([]byte{0xDD}, 0x80), data[:0x80])
	assert.Equal(t, make([]byte, 0x80), data[0x80:])
}

func TestParseImage_ClampsToFileAndImage(t *testing.T) {
	raw := buildPE(testBase, 0x1080, []testSection{
		{name: ".big", va: 0x1000, vsize: 0x400, rawSize: 0x200, fill: 0xAB},
	})
	// section claims more raw bytes than the file holds
	raw = raw[:len(raw)-0x100]

	m, err := ParseImage(raw)
	require.NoError(t, err)

	b, ok := m.ReadMemory(testBase+0x1000, 0x80)
	require.True(t, ok)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 0x80), b)

	_, ok = m.ReadMemory(testBase+0x1000, 0x81)
	assert.False(t, ok, "read past SizeOfImage must fail")
}

func TestParseImage_Invalid(t *testing.T) {
	good := testImage()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"too small", func(b []byte) []byte { return b[:10] }},
		{"no MZ", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"bad lfanew", func(b []byte) []byte { binary.LittleEndian.PutUint32(b[dosLfanewOffset:], 0xFFFFFF); return b }},
		{"no PE", func(b []byte) []byte { b[0x40] = 'Q'; return b }},
		{"PE32+", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[0x58:], 0x20B); return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImage(tt.mutate(bytes.Clone(good)))
			assert.ErrorIs(t, err, ErrInvalidImage)
		})
	}
}

func TestReadMemory_Kuser(t *testing.T) {
	m, err := ParseImage(testImage())
	require.NoError(t, err)

	major, ok := m.ReadMemory(KuserBase+kuserNtMajorOffset, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(major))

	minor, ok := m.ReadMemory(KuserBase+kuserNtMinorOffset, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(minor))

	_, ok = m.ReadMemory(KuserBase+KuserSize-2, 4)
	assert.False(t, ok, "read past KUSER page must fail")
}

func TestReadMemory_Boundaries(t *testing.T) {
	m, err := ParseImage(testImage())
	require.NoError(t, err)

	tests := []struct {
		name string
		va   uint32
		n    int
		ok   bool
	}{
		{"zero length anywhere", 0x10, 0, true},
		{"below image", testBase - 1, 2, false},
		{"last image byte", testBase + testSize - 1, 1, true},
		{"straddles image end", testBase + testSize - 1, 2, false},
		{"unmapped gap", 0x10000000, 4, false},
		{"straddles kuser start", KuserBase - 2, 4, false},
		{"first kuser byte", KuserBase, 1, true},
		{"negative length", testBase, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := m.ReadMemory(tt.va, tt.n)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Len(t, b, tt.n)
			}
		})
	}
}

func TestReadMemory_ImageKuserNotContiguous(t *testing.T) {
	// образ, который заканчивается ровно перед KUSER
	base := uint32(KuserBase - 0x2000)
	m, err := ParseImage(buildPE(base, 0x2000, nil))
	require.NoError(t, err)

	_, ok := m.ReadMemory(KuserBase-1, 1)
	assert.True(t, ok)
	_, ok = m.ReadMemory(KuserBase, 1)
	assert.True(t, ok)
	_, ok = m.ReadMemory(KuserBase-2, 4)
	assert.False(t, ok, "regions are not logically contiguous")
}

func TestReadMemory_ReturnsCopy(t *testing.T) {
	m, err := ParseImage(testImage())
	require.NoError(t, err)

	b, ok := m.ReadMemory(testBase+0x1000, 1)
	require.True(t, ok)
	b[0] = 0x00

	again, _ := m.ReadMemory(testBase+0x1000, 1)
	assert.Equal(t, byte(0xCC), again[0])
}

func TestLoadImage_Patches(t *testing.T) {
	dir := t.TempDir()
	exe := writeExe(t, dir, "WoW.exe", testImage())

	tablePath := filepath.Join(dir, "warden_patches.yaml")
	require.NoError(t, os.WriteFile(tablePath, []byte(`
images:
  - name: test-build
    build: 5875
    image_base: 0x400000
    size_of_image: 0x4000
    patches:
      - va: 0x403000
        bytes: "78563412"
        note: graphics device pointer
  - name: other
    build: 12340
    image_base: 0x400000
    size_of_image: 0x9000
    patches:
      - va: 0x403000
        bytes: "FFFFFFFF"
`), 0o644))

	sets, err := LoadPatchTable(tablePath)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, uint32(0x4000), ExpectedSizeOfImage(sets, 5875))
	assert.Zero(t, ExpectedSizeOfImage(sets, 1))

	m, err := LoadImage(exe, sets)
	require.NoError(t, err)
	assert.Equal(t, "test-build", m.PatchSet())

	b, ok := m.ReadMemory(0x403000, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(0x12345678), binary.LittleEndian.Uint32(b))
}

func TestLoadImage_UnpatchedByDefault(t *testing.T) {
	dir := t.TempDir()
	exe := writeExe(t, dir, "WoW.exe", testImage())

	sets, err := LoadPatchTable(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, sets)

	m, err := LoadImage(exe, sets)
	require.NoError(t, err)
	assert.Empty(t, m.PatchSet())

	b, _ := m.ReadMemory(0x403000, 4)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestLoadImage_RefusesNonZeroTarget(t *testing.T) {
	dir := t.TempDir()
	exe := writeExe(t, dir, "WoW.exe", testImage())

	sets := []PatchSet{{
		Name:        "bad",
		ImageBase:   testBase,
		SizeOfImage: testSize,
		Patches:     []Patch{{VA: testBase + 0x1000, Bytes: "01"}},
	}}
	_, err := LoadImage(exe, sets)
	assert.Error(t, err)
}

func TestLoadPatchTable_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "t.yaml")

	require.NoError(t, os.WriteFile(p, []byte("images:\n  - name: x\n    size_of_image: 1\n"), 0o644))
	_, err := LoadPatchTable(p)
	assert.Error(t, err, "image_base is required")

	require.NoError(t, os.WriteFile(p, []byte("images:\n  - name: x\n    image_base: 1\n    size_of_image: 1\n    patches:\n      - va: 1\n        bytes: zz\n"), 0o644))
	_, err = LoadPatchTable(p)
	assert.Error(t, err)
}

func TestFindReferenceExecutable(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")

	writeExe(t, a, "WoW.exe", buildPE(testBase, 0x3000, nil))
	want := writeExe(t, b, "TurtleWoW.exe", buildPE(testBase, 0x5000, nil))

	got, err := FindReferenceExecutable([]string{a, b}, 0x5000)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = FindReferenceExecutable([]string{a, b}, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, "WoW.exe"), got, "without expectation the first candidate wins")

	got, err = FindReferenceExecutable([]string{a, b}, 0x7777)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a, "WoW.exe"), got)

	_, err = FindReferenceExecutable([]string{filepath.Join(root, "none")}, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCandidateDirs_EnvFirst(t *testing.T) {
	t.Setenv(EnvIntegrityDir, "/opt/ref")
	dirs := CandidateDirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, "/opt/ref", dirs[0])
	assert.Equal(t, filepath.Join("Data", "misc"), dirs[1])
}

func TestModuleCache(t *testing.T) {
	c, err := NewModuleCache(t.TempDir())
	require.NoError(t, err)

	blob := []byte("module bytes split in chunks")
	sum := md5.Sum(blob)

	assert.Equal(t, 6, c.AddChunk(sum, blob[:6]))
	assert.Equal(t, len(blob), c.AddChunk(sum, blob[6:]))

	got, err := c.Complete(sum)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	cached, ok := c.Load(sum)
	require.True(t, ok)
	assert.Equal(t, blob, cached)

	var other [md5.Size]byte
	c.AddChunk(other, []byte("x"))
	_, err = c.Complete(other)
	assert.ErrorIs(t, err, ErrChecksum)
}
