package mpq

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i * 31 % 251)
	}
	return b
}

func buildArchive(t *testing.T, w *Writer) *Archive {
	t.Helper()
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	a, err := NewArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return a
}

func TestHashString(t *testing.T) {
	// известные значения из формата
	assert.Equal(t, uint32(0xC3AF3770), hashTableKey)
	assert.Equal(t, uint32(0xEC83B3A3), blockTableKey)

	assert.Equal(t, hashString(`Textures\A.blp`, hashNameA), hashString("textures/a.BLP", hashNameA))
}

func TestEncryptDecrypt(t *testing.T) {
	plain := pattern(67)
	data := bytes.Clone(plain)
	encryptBytes(data, 0x12345678)
	assert.NotEqual(t, plain[:64], data[:64])
	assert.Equal(t, plain[64:], data[64:], "tail shorter than a dword stays clear")

	decryptBytes(data, 0x12345678)
	assert.Equal(t, plain, data)
}

func TestArchive_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		flags WriteFlag
	}{
		{"stored", 1000, 0},
		{"stored multi sector", 5000, 0},
		{"compressed", 10000, WriteCompress},
		{"compressed encrypted", 9000, WriteCompress | WriteEncrypt},
		{"stored encrypted", 1300, WriteEncrypt},
		{"single unit", 3000, WriteCompress | WriteSingleUnit},
		{"single unit encrypted", 3000, WriteCompress | WriteSingleUnit | WriteEncrypt},
		{"empty", 0, WriteCompress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.SectorShift = 0
			data := pattern(tt.size)
			w.Add(`World\Maps\test.adt`, data, tt.flags)
			a := buildArchive(t, w)

			require.True(t, a.Has(`WORLD\MAPS\TEST.ADT`))
			size, err := a.FileSize("world/maps/test.adt")
			require.NoError(t, err)
			assert.Equal(t, uint32(tt.size), size)

			got, err := a.ReadFile(`world\maps\test.adt`)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestArchive_NotFound(t *testing.T) {
	w := NewWriter()
	w.Add("a.txt", []byte("a"), 0)
	a := buildArchive(t, w)

	assert.False(t, a.Has("b.txt"))
	_, err := a.ReadFile("b.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = a.FileSize("b.txt")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestArchive_Files(t *testing.T) {
	w := NewWriter()
	w.Add("DBFilesClient/Spell.dbc", []byte("x"), WriteCompress)
	w.Add(`Sound\a.wav`, []byte("y"), 0)
	w.Add(`sound\A.wav`, []byte("z"), 0)
	a := buildArchive(t, w)

	names, err := a.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{`DBFilesClient\Spell.dbc`, `sound\A.wav`}, names)

	got, err := a.ReadFile(`Sound\A.wav`)
	require.NoError(t, err)
	assert.Equal(t, []byte("z"), got)
}

func TestArchive_UserDataHeader(t *testing.T) {
	w := NewWriter()
	w.Add("x.bin", pattern(700), WriteCompress)
	var inner bytes.Buffer
	_, err := w.WriteTo(&inner)
	require.NoError(t, err)

	// archive shifted to 512 behind an MPQ\x1B user data block
	raw := make([]byte, 512+inner.Len())
	copy(raw, userDataMagic)
	binary.LittleEndian.PutUint32(raw[8:], 512)
	copy(raw[512:], inner.Bytes())

	a, err := NewArchive(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	got, err := a.ReadFile("x.bin")
	require.NoError(t, err)
	assert.Equal(t, pattern(700), got)
}

func TestArchive_Invalid(t *testing.T) {
	raw := make([]byte, 1024)
	_, err := NewArchive(bytes.NewReader(raw), int64(len(raw)))
	assert.ErrorIs(t, err, ErrInvalidArchive)
}

func TestDecompress_UnsupportedMask(t *testing.T) {
	_, err := decompress([]byte{0x08, 1, 2, 3}, 10, flagCompress)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)

	_, err = decompress([]byte{0x02, 1, 2, 3}, 10, flagImplode)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patch.MPQ")
	w := NewWriter()
	w.Add("Interface/Glue/x.blp", []byte("blp"), WriteCompress)
	require.NoError(t, w.WriteFile(path))

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, path, a.Path())
	got, err := a.ReadFile(`interface\glue\x.blp`)
	require.NoError(t, err)
	assert.Equal(t, []byte("blp"), got)
}
