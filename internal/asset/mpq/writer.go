package mpq

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// WriteFlag selects how a file is stored by Writer.
type WriteFlag uint8

const (
	// WriteCompress zlib-compresses each sector (or the whole file with WriteSingleUnit).
	WriteCompress WriteFlag = 1 << iota
	// WriteEncrypt encrypts the file with its name-derived key.
	WriteEncrypt
	// WriteSingleUnit stores the file as one unit instead of sectors.
	WriteSingleUnit
)

type pendingFile struct {
	name  string
	data  []byte
	flags WriteFlag
}

// Writer builds a version 1 archive in memory. It is used by assetcat to
// pack loose directories and by tests to build fixtures.
type Writer struct {
	// SectorShift sets the sector size to 512<<SectorShift. Default 3 (4 KiB).
	SectorShift uint16

	files []pendingFile
}

// NewWriter creates an empty archive writer.
func NewWriter() *Writer {
	return &Writer{SectorShift: 3}
}

// Add queues a file. Names use backslash separators; a later Add with the
// same name replaces the earlier one.
func (w *Writer) Add(name string, data []byte, flags WriteFlag) {
	name = strings.ReplaceAll(name, "/", "\\")
	w.files = slices.DeleteFunc(w.files, func(f pendingFile) bool {
		return strings.EqualFold(f.name, name)
	})
	w.files = append(w.files, pendingFile{name: name, data: data, flags: flags})
}

// WriteTo writes the archive, including a (listfile).
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	files := slices.Clone(w.files)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	files = append(files, pendingFile{
		name:  listFileName,
		data:  []byte(strings.Join(names, "\r\n")),
		flags: WriteCompress,
	})

	hashCount := uint32(16)
	for hashCount < uint32(len(files))*2 {
		hashCount <<= 1
	}
	sectorSize := uint32(512) << w.SectorShift

	var body bytes.Buffer
	body.Write(make([]byte, headerSizeV1))

	blocks := make([]blockEntry, len(files))
	for i, f := range files {
		pos := uint32(body.Len())
		stored, flags, err := packFile(f, pos, sectorSize)
		if err != nil {
			return 0, fmt.Errorf("packing %s: %w", f.name, err)
		}
		body.Write(stored)
		blocks[i] = blockEntry{
			filePos:        pos,
			compressedSize: uint32(len(stored)),
			fileSize:       uint32(len(f.data)),
			flags:          flags,
		}
	}

	hashes := make([]hashEntry, hashCount)
	for i := range hashes {
		hashes[i] = hashEntry{nameA: hashEmpty, nameB: hashEmpty, locale: 0xFFFF, platform: 0xFFFF, blockIndex: hashEmpty}
	}
	mask := hashCount - 1
	for i, f := range files {
		slot := hashString(f.name, hashTableOffset) & mask
		for hashes[slot].blockIndex != hashEmpty {
			slot = (slot + 1) & mask
		}
		hashes[slot] = hashEntry{
			nameA:      hashString(f.name, hashNameA),
			nameB:      hashString(f.name, hashNameB),
			blockIndex: uint32(i),
		}
	}

	hashPos := uint32(body.Len())
	table := make([]byte, int(hashCount)*hashEntrySize)
	for i, h := range hashes {
		b := table[i*hashEntrySize:]
		binary.LittleEndian.PutUint32(b[0:], h.nameA)
		binary.LittleEndian.PutUint32(b[4:], h.nameB)
		binary.LittleEndian.PutUint16(b[8:], h.locale)
		binary.LittleEndian.PutUint16(b[10:], h.platform)
		binary.LittleEndian.PutUint32(b[12:], h.blockIndex)
	}
	encryptBytes(table, hashTableKey)
	body.Write(table)

	blockPos := uint32(body.Len())
	table = make([]byte, len(blocks)*blockEntrySize)
	for i, bl := range blocks {
		b := table[i*blockEntrySize:]
		binary.LittleEndian.PutUint32(b[0:], bl.filePos)
		binary.LittleEndian.PutUint32(b[4:], bl.compressedSize)
		binary.LittleEndian.PutUint32(b[8:], bl.fileSize)
		binary.LittleEndian.PutUint32(b[12:], bl.flags)
	}
	encryptBytes(table, blockTableKey)
	body.Write(table)

	raw := body.Bytes()
	copy(raw[0:], headerMagic)
	binary.LittleEndian.PutUint32(raw[4:], headerSizeV1)
	binary.LittleEndian.PutUint32(raw[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint16(raw[12:], 0)
	binary.LittleEndian.PutUint16(raw[14:], w.SectorShift)
	binary.LittleEndian.PutUint32(raw[16:], hashPos)
	binary.LittleEndian.PutUint32(raw[20:], blockPos)
	binary.LittleEndian.PutUint32(raw[24:], hashCount)
	binary.LittleEndian.PutUint32(raw[28:], uint32(len(blocks)))

	n, err := out.Write(raw)
	return int64(n), err
}

// WriteFile writes the archive to path.
func (w *Writer) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", path, err)
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing archive %s: %w", path, err)
	}
	return f.Close()
}

func packFile(f pendingFile, pos, sectorSize uint32) ([]byte, uint32, error) {
	flags := uint32(flagExists)
	compress := f.flags&WriteCompress != 0
	encrypt := f.flags&WriteEncrypt != 0
	if compress {
		flags |= flagCompress
	}
	if encrypt {
		flags |= flagEncrypted
	}

	var key uint32
	if encrypt {
		key = fileKey(f.name, blockEntry{filePos: pos, fileSize: uint32(len(f.data)), flags: flags})
	}

	if f.flags&WriteSingleUnit != 0 {
		flags |= flagSingleUnit
		out := slices.Clone(f.data)
		if compress {
			z, err := compressSector(f.data)
			if err != nil {
				return nil, 0, err
			}
			out = z
		}
		if encrypt {
			encryptBytes(out, key)
		}
		return out, flags, nil
	}

	sectors := (len(f.data) + int(sectorSize) - 1) / int(sectorSize)
	if !compress {
		out := slices.Clone(f.data)
		if encrypt {
			for i := range sectors {
				start := i * int(sectorSize)
				end := min(start+int(sectorSize), len(out))
				encryptBytes(out[start:end], key+uint32(i))
			}
		}
		return out, flags, nil
	}

	packed := make([][]byte, sectors)
	offsets := make([]byte, (sectors+1)*4)
	at := uint32(len(offsets))
	for i := range sectors {
		start := i * int(sectorSize)
		end := min(start+int(sectorSize), len(f.data))
		s, err := compressSector(f.data[start:end])
		if err != nil {
			return nil, 0, err
		}
		if encrypt {
			encryptBytes(s, key+uint32(i))
		}
		packed[i] = s
		binary.LittleEndian.PutUint32(offsets[i*4:], at)
		at += uint32(len(s))
	}
	binary.LittleEndian.PutUint32(offsets[sectors*4:], at)
	if encrypt {
		encryptBytes(offsets, key-1)
	}

	out := make([]byte, 0, at)
	out = append(out, offsets...)
	for _, s := range packed {
		out = append(out, s...)
	}
	return out, flags, nil
}

// compressSector returns mask+zlib data, or a copy of plain when
// compression does not shrink it.
func compressSector(plain []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(compressZlib)
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(plain); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	if buf.Len() >= len(plain) {
		return slices.Clone(plain), nil
	}
	return buf.Bytes(), nil
}
