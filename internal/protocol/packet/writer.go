package packet

import (
	"bytes"
	"math"
	"sync"
)

// Writer provides methods for writing packet payloads.
// Uses Little-Endian byte order for all multi-byte values.
type Writer struct {
	buf *bytes.Buffer
}

// writerPool reduces allocations by reusing Writers.
var writerPool = sync.Pool{
	New: func() any {
		return &Writer{
			buf: bytes.NewBuffer(make([]byte, 0, 256)),
		}
	},
}

// Get returns a Writer from the pool (already Reset).
func Get() *Writer {
	w := writerPool.Get().(*Writer)
	w.Reset()
	return w
}

// Put returns a Writer to the pool for reuse.
// IMPORTANT: Do not use the Writer (or slices from Bytes) after calling Put.
func (w *Writer) Put() {
	writerPool.Put(w)
}

// NewWriter creates a new packet writer with the given initial capacity.
func NewWriter(capacity int) *Writer {
	return &Writer{
		buf: bytes.NewBuffer(make([]byte, 0, capacity)),
	}
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(b uint8) {
	w.buf.WriteByte(b)
}

// WriteUint16 writes a uint16 (2 bytes, LE).
func (w *Writer) WriteUint16(val uint16) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
}

// WriteUint32 writes a uint32 (4 bytes, LE).
func (w *Writer) WriteUint32(val uint32) {
	w.buf.WriteByte(byte(val))
	w.buf.WriteByte(byte(val >> 8))
	w.buf.WriteByte(byte(val >> 16))
	w.buf.WriteByte(byte(val >> 24))
}

// WriteInt32 writes an int32 (4 bytes, LE).
func (w *Writer) WriteInt32(val int32) {
	w.WriteUint32(uint32(val))
}

// WriteUint64 writes a uint64 (8 bytes, LE).
func (w *Writer) WriteUint64(val uint64) {
	w.WriteUint32(uint32(val))
	w.WriteUint32(uint32(val >> 32))
}

// WriteFloat writes an IEEE 754 float32 (4 bytes, LE).
func (w *Writer) WriteFloat(val float32) {
	w.WriteUint32(math.Float32bits(val))
}

// WriteCString writes s followed by a NUL terminator.
func (w *Writer) WriteCString(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte(0)
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf.Write(b)
}

// WritePackedGuid writes guid as a presence mask followed by its non-zero bytes.
func (w *Writer) WritePackedGuid(guid uint64) {
	var (
		mask  uint8
		tmp   [8]byte
		count int
	)
	for i := range 8 {
		b := byte(guid >> (i * 8))
		if b != 0 {
			mask |= 1 << i
			tmp[count] = b
			count++
		}
	}
	w.buf.WriteByte(mask)
	w.buf.Write(tmp[:count])
}

// Bytes returns the written bytes.
// The slice is valid until the next write, Reset or Put.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of written bytes.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Reset clears the buffer, keeping its capacity.
func (w *Writer) Reset() {
	w.buf.Reset()
}
