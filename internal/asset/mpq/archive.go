// Package mpq reads MPQ archives (format versions 1 and 2), the bundle
// format the game client ships its assets in.
package mpq

import (
	"bytes"
	"compress/bzip2"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const (
	headerMagic   = "MPQ\x1A"
	userDataMagic = "MPQ\x1B"

	headerSizeV1 = 32
	headerSizeV2 = 44

	// header is searched at 512-byte boundaries
	headerAlign = 512

	hashEntrySize  = 16
	blockEntrySize = 16

	hashEmpty   = 0xFFFFFFFF
	hashDeleted = 0xFFFFFFFE

	listFileName = "(listfile)"
)

// Block flags.
const (
	flagImplode      = 0x00000100
	flagCompress     = 0x00000200
	flagEncrypted    = 0x00010000
	flagFixKey       = 0x00020000
	flagPatchFile    = 0x00100000
	flagSingleUnit   = 0x01000000
	flagDeleteMarker = 0x02000000
	flagSectorCRC    = 0x04000000
	flagExists       = 0x80000000
)

// Sector compression masks.
const (
	compressZlib  = 0x02
	compressBzip2 = 0x10
)

type hashEntry struct {
	nameA      uint32
	nameB      uint32
	locale     uint16
	platform   uint16
	blockIndex uint32
}

type blockEntry struct {
	filePos        uint32
	compressedSize uint32
	fileSize       uint32
	flags          uint32
}

// Archive is an open MPQ file. Reads use ReadAt and do not move a shared
// offset, but callers resolving across several archives serialise access
// themselves.
type Archive struct {
	path string
	r    io.ReaderAt
	c    io.Closer

	base       int64
	sectorSize uint32
	hashes     []hashEntry
	blocks     []blockEntry
	hiBlocks   []uint16
}

// Open opens the archive at path.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive %s: %w", path, err)
	}
	a, err := NewArchive(f, st.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("archive %s: %w", path, err)
	}
	a.path = path
	a.c = f
	return a, nil
}

// NewArchive reads the header and tables from r.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	a := &Archive{r: r}
	if err := a.readHeader(size); err != nil {
		return nil, err
	}
	return a, nil
}

// Path returns the file the archive was opened from.
func (a *Archive) Path() string {
	return a.path
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	if a.c == nil {
		return nil
	}
	return a.c.Close()
}

func (a *Archive) readHeader(size int64) error {
	var magic [4]byte
	for off := int64(0); off+headerSizeV1 <= size; off += headerAlign {
		if _, err := a.r.ReadAt(magic[:], off); err != nil {
			return fmt.Errorf("reading header at %d: %w", off, err)
		}
		switch string(magic[:]) {
		case userDataMagic:
			var ud [12]byte
			if _, err := a.r.ReadAt(ud[:], off); err != nil {
				return fmt.Errorf("reading user data: %w", err)
			}
			hdrOff := off + int64(binary.LittleEndian.Uint32(ud[8:]))
			return a.parseHeader(hdrOff, size)
		case headerMagic:
			return a.parseHeader(off, size)
		}
	}
	return fmt.Errorf("no header: %w", ErrInvalidArchive)
}

func (a *Archive) parseHeader(off, size int64) error {
	var hdr [headerSizeV2]byte
	n, err := a.r.ReadAt(hdr[:], off)
	if n < headerSizeV1 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("reading header: %w", err)
	}
	if string(hdr[:4]) != headerMagic {
		return fmt.Errorf("bad header magic: %w", ErrInvalidArchive)
	}

	headerSize := binary.LittleEndian.Uint32(hdr[4:])
	version := binary.LittleEndian.Uint16(hdr[12:])
	sectorShift := binary.LittleEndian.Uint16(hdr[14:])
	hashPos := int64(binary.LittleEndian.Uint32(hdr[16:]))
	blockPos := int64(binary.LittleEndian.Uint32(hdr[20:]))
	hashCount := binary.LittleEndian.Uint32(hdr[24:])
	blockCount := binary.LittleEndian.Uint32(hdr[28:])

	if sectorShift > 20 {
		return fmt.Errorf("sector shift %d: %w", sectorShift, ErrInvalidArchive)
	}
	if hashCount == 0 || hashCount&(hashCount-1) != 0 {
		return fmt.Errorf("hash table size %d: %w", hashCount, ErrInvalidArchive)
	}

	var hiBlockPos int64
	if version >= 1 && headerSize >= headerSizeV2 && n >= headerSizeV2 {
		hiBlockPos = int64(binary.LittleEndian.Uint64(hdr[32:]))
		hashPos |= int64(binary.LittleEndian.Uint16(hdr[40:])) << 32
		blockPos |= int64(binary.LittleEndian.Uint16(hdr[42:])) << 32
	}

	a.base = off
	a.sectorSize = 512 << sectorShift

	if int64(hashCount)*hashEntrySize > size || int64(blockCount)*blockEntrySize > size {
		return fmt.Errorf("tables larger than file: %w", ErrInvalidArchive)
	}

	raw, err := a.readTable(off+hashPos, int(hashCount)*hashEntrySize, hashTableKey)
	if err != nil {
		return fmt.Errorf("reading hash table: %w", err)
	}
	a.hashes = make([]hashEntry, hashCount)
	for i := range a.hashes {
		b := raw[i*hashEntrySize:]
		a.hashes[i] = hashEntry{
			nameA:      binary.LittleEndian.Uint32(b[0:]),
			nameB:      binary.LittleEndian.Uint32(b[4:]),
			locale:     binary.LittleEndian.Uint16(b[8:]),
			platform:   binary.LittleEndian.Uint16(b[10:]),
			blockIndex: binary.LittleEndian.Uint32(b[12:]),
		}
	}

	raw, err = a.readTable(off+blockPos, int(blockCount)*blockEntrySize, blockTableKey)
	if err != nil {
		return fmt.Errorf("reading block table: %w", err)
	}
	a.blocks = make([]blockEntry, blockCount)
	for i := range a.blocks {
		b := raw[i*blockEntrySize:]
		a.blocks[i] = blockEntry{
			filePos:        binary.LittleEndian.Uint32(b[0:]),
			compressedSize: binary.LittleEndian.Uint32(b[4:]),
			fileSize:       binary.LittleEndian.Uint32(b[8:]),
			flags:          binary.LittleEndian.Uint32(b[12:]),
		}
	}

	if hiBlockPos != 0 {
		hi := make([]byte, int(blockCount)*2)
		if _, err := a.r.ReadAt(hi, off+hiBlockPos); err != nil {
			return fmt.Errorf("reading hi-block table: %w", err)
		}
		a.hiBlocks = make([]uint16, blockCount)
		for i := range a.hiBlocks {
			a.hiBlocks[i] = binary.LittleEndian.Uint16(hi[i*2:])
		}
	}
	return nil
}

func (a *Archive) readTable(off int64, n int, key uint32) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := a.r.ReadAt(buf, off); err != nil {
		return nil, err
	}
	decryptBytes(buf, key)
	return buf, nil
}

// find returns the block index for name, preferring the neutral locale.
func (a *Archive) find(name string) (int, bool) {
	mask := uint32(len(a.hashes) - 1)
	start := hashString(name, hashTableOffset) & mask
	nameA := hashString(name, hashNameA)
	nameB := hashString(name, hashNameB)

	found := -1
	for i := uint32(0); i < uint32(len(a.hashes)); i++ {
		h := a.hashes[(start+i)&mask]
		if h.blockIndex == hashEmpty {
			break
		}
		if h.blockIndex == hashDeleted || h.nameA != nameA || h.nameB != nameB {
			continue
		}
		if int(h.blockIndex) >= len(a.blocks) {
			continue
		}
		if h.locale == 0 {
			found = int(h.blockIndex)
			break
		}
		if found < 0 {
			found = int(h.blockIndex)
		}
	}
	if found < 0 {
		return 0, false
	}
	b := a.blocks[found]
	if b.flags&flagExists == 0 || b.flags&flagDeleteMarker != 0 {
		return 0, false
	}
	return found, true
}

// Has reports whether the archive contains name.
func (a *Archive) Has(name string) bool {
	_, ok := a.find(name)
	return ok
}

// FileSize returns the uncompressed size of name.
func (a *Archive) FileSize(name string) (uint32, error) {
	idx, ok := a.find(name)
	if !ok {
		return 0, ErrFileNotFound
	}
	return a.blocks[idx].fileSize, nil
}

// ReadFile returns the uncompressed contents of name.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	idx, ok := a.find(name)
	if !ok {
		return nil, ErrFileNotFound
	}
	data, err := a.readBlock(name, idx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Files returns the names listed in the archive's (listfile), if any.
func (a *Archive) Files() ([]string, error) {
	raw, err := a.ReadFile(listFileName)
	if err != nil {
		return nil, err
	}
	fields := strings.FieldsFunc(string(raw), func(r rune) bool {
		return r == '\r' || r == '\n' || r == ';'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names, nil
}

func (a *Archive) blockOffset(idx int) int64 {
	off := int64(a.blocks[idx].filePos)
	if a.hiBlocks != nil {
		off |= int64(a.hiBlocks[idx]) << 32
	}
	return a.base + off
}

func (a *Archive) readBlock(name string, idx int) ([]byte, error) {
	b := a.blocks[idx]
	if b.flags&flagPatchFile != 0 {
		return nil, fmt.Errorf("patch file: %w", ErrUnsupportedCompression)
	}
	if b.fileSize == 0 {
		return []byte{}, nil
	}

	raw := make([]byte, b.compressedSize)
	if _, err := a.r.ReadAt(raw, a.blockOffset(idx)); err != nil {
		return nil, fmt.Errorf("reading block: %w", err)
	}

	var key uint32
	encrypted := b.flags&flagEncrypted != 0
	if encrypted {
		key = fileKey(name, b)
	}

	if b.flags&flagSingleUnit != 0 {
		if encrypted {
			decryptBytes(raw, key)
		}
		if b.flags&(flagCompress|flagImplode) != 0 && b.compressedSize < b.fileSize {
			return decompress(raw, int(b.fileSize), b.flags)
		}
		if len(raw) < int(b.fileSize) {
			return nil, fmt.Errorf("short single unit: %w", ErrInvalidArchive)
		}
		return raw[:b.fileSize], nil
	}

	sectors := int((b.fileSize + a.sectorSize - 1) / a.sectorSize)
	out := make([]byte, 0, b.fileSize)

	if b.flags&(flagCompress|flagImplode) == 0 {
		if len(raw) < int(b.fileSize) {
			return nil, fmt.Errorf("short block: %w", ErrInvalidArchive)
		}
		for i := range sectors {
			start := i * int(a.sectorSize)
			end := min(start+int(a.sectorSize), int(b.fileSize))
			sector := raw[start:end]
			if encrypted {
				decryptBytes(sector, key+uint32(i))
			}
			out = append(out, sector...)
		}
		return out, nil
	}

	tableLen := sectors + 1
	if b.flags&flagSectorCRC != 0 {
		tableLen++
	}
	if len(raw) < tableLen*4 {
		return nil, fmt.Errorf("short sector table: %w", ErrInvalidArchive)
	}
	table := raw[:tableLen*4]
	if encrypted {
		decryptBytes(table, key-1)
	}
	offsets := make([]uint32, tableLen)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(table[i*4:])
	}

	for i := range sectors {
		start, end := offsets[i], offsets[i+1]
		if start > end || int(end) > len(raw) {
			return nil, fmt.Errorf("sector %d bounds %d..%d: %w", i, start, end, ErrInvalidArchive)
		}
		sector := raw[start:end]
		if encrypted {
			decryptBytes(sector, key+uint32(i))
		}
		want := min(int(a.sectorSize), int(b.fileSize)-i*int(a.sectorSize))
		if len(sector) < want {
			plain, err := decompress(sector, want, b.flags)
			if err != nil {
				return nil, fmt.Errorf("sector %d: %w", i, err)
			}
			out = append(out, plain...)
			continue
		}
		out = append(out, sector[:want]...)
	}
	return out, nil
}

// decompress unpacks one sector (or a single-unit file) of size bytes.
func decompress(data []byte, size int, flags uint32) ([]byte, error) {
	if flags&flagImplode != 0 {
		return nil, fmt.Errorf("implode: %w", ErrUnsupportedCompression)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty sector: %w", ErrInvalidArchive)
	}

	var r io.Reader
	switch mask := data[0]; mask {
	case compressZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data[1:]))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case compressBzip2:
		r = bzip2.NewReader(bytes.NewReader(data[1:]))
	default:
		return nil, fmt.Errorf("mask 0x%02X: %w", mask, ErrUnsupportedCompression)
	}

	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("inflating: %w", err)
	}
	return out, nil
}
