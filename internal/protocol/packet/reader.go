package packet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Reader provides methods for reading packet payloads.
// Uses Little-Endian byte order for all multi-byte values.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new packet reader.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
		pos:  0,
	}
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("ReadUint8: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadUint16 reads a uint16 (2 bytes, LE).
func (r *Reader) ReadUint16() (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("ReadUint16: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return val, nil
}

// ReadUint32 reads a uint32 (4 bytes, LE).
func (r *Reader) ReadUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, fmt.Errorf("ReadUint32: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return val, nil
}

// ReadInt32 reads an int32 (4 bytes, LE).
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadUint64 reads a uint64 (8 bytes, LE).
func (r *Reader) ReadUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, fmt.Errorf("ReadUint64: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	val := binary.LittleEndian.Uint64(r.data[r.pos:])
	r.pos += 8
	return val, nil
}

// ReadFloat reads an IEEE 754 float32 (4 bytes, LE).
func (r *Reader) ReadFloat() (float32, error) {
	bits, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadCString reads a NUL-terminated string.
// Строки на проводе в UTF-8, терминатор не включается в результат.
func (r *Reader) ReadCString() (string, error) {
	if r.pos > len(r.data) {
		return "", fmt.Errorf("ReadCString: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	end := bytes.IndexByte(r.data[r.pos:], 0)
	if end < 0 {
		return "", fmt.Errorf("ReadCString: unterminated string: %w (pos=%d, len=%d)", ErrTruncated, r.pos, len(r.data))
	}
	s := string(r.data[r.pos : r.pos+end])
	r.pos += end + 1
	return s, nil
}

// ReadBytes reads n bytes (ZERO-COPY: returns subslice of internal data).
// Caller MUST NOT modify returned bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("ReadBytes: negative count %d", n)
	}
	if r.pos+n > len(r.data) {
		return nil, fmt.Errorf("ReadBytes: %w (pos=%d, need=%d, len=%d)", ErrTruncated, r.pos, n, len(r.data))
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) error {
	if _, err := r.ReadBytes(n); err != nil {
		return fmt.Errorf("Skip: %w", err)
	}
	return nil
}

// ReadPackedGuid reads a mask-prefixed 64-bit id.
func (r *Reader) ReadPackedGuid() (uint64, error) {
	mask, err := r.ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("ReadPackedGuid: %w", err)
	}
	var guid uint64
	for i := range 8 {
		if mask&(1<<i) == 0 {
			continue
		}
		b, err := r.ReadUint8()
		if err != nil {
			return 0, fmt.Errorf("ReadPackedGuid: byte %d: %w", i, err)
		}
		guid |= uint64(b) << (i * 8)
	}
	return guid, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Position returns the current read position.
func (r *Reader) Position() int {
	return r.pos
}
