package warden

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

type testSection struct {
	name    string
	va      uint32
	vsize   uint32
	rawSize uint32
	fill    byte
}

const testHeaderSize = 0x200

// buildPE assembles a minimal PE32 file. Section raw data follows the
// headers back to back, each filled with its fill byte.
func buildPE(imageBase, sizeOfImage uint32, sections []testSection) []byte {
	const (
		peOff   = 0x40
		optSize = 224
	)
	data := make([]byte, testHeaderSize)
	data[0], data[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(data[dosLfanewOffset:], peOff)
	copy(data[peOff:], "PE\x00\x00")

	coff := peOff + 4
	binary.LittleEndian.PutUint16(data[coff:], 0x14C)
	binary.LittleEndian.PutUint16(data[coff+2:], uint16(len(sections)))
	binary.LittleEndian.PutUint16(data[coff+16:], optSize)

	opt := coff + coffHeaderSize
	binary.LittleEndian.PutUint16(data[opt:], pe32Magic)
	binary.LittleEndian.PutUint32(data[opt+optImageBaseOffset:], imageBase)
	binary.LittleEndian.PutUint32(data[opt+optSizeOfImgOffset:], sizeOfImage)
	binary.LittleEndian.PutUint32(data[opt+optSizeOfHdrsOffset:], testHeaderSize)

	table := opt + optSize
	rawOff := uint32(testHeaderSize)
	for i, s := range sections {
		sh := data[table+i*sectionHeaderSize:]
		copy(sh[:8], s.name)
		binary.LittleEndian.PutUint32(sh[8:], s.vsize)
		binary.LittleEndian.PutUint32(sh[12:], s.va)
		binary.LittleEndian.PutUint32(sh[16:], s.rawSize)
		binary.LittleEndian.PutUint32(sh[20:], rawOff)
		rawOff += s.rawSize
	}
	for _, s := range sections {
		for range s.rawSize {
			data = append(data, s.fill)
		}
	}
	return data
}

func writeExe(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
