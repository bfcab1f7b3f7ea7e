package parsers

import (
	"fmt"

	"github.com/udisondev/wowee/internal/protocol/packet"
)

// decoder wraps packet.Reader and keeps the first error.
// Once an error is recorded every further read is a no-op returning zero,
// so long fixed layouts can be read without checking each field.
type decoder struct {
	r   *packet.Reader
	err error
}

func newDecoder(r *packet.Reader) *decoder {
	return &decoder{r: r}
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// failf records an ErrMalformed wrapped with context.
func (d *decoder) failf(format string, args ...any) {
	d.fail(fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrMalformed))
}

func (d *decoder) u8() uint8 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint8()
	d.fail(err)
	return v
}

func (d *decoder) u16() uint16 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint16()
	d.fail(err)
	return v
}

func (d *decoder) u32() uint32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint32()
	d.fail(err)
	return v
}

func (d *decoder) i32() int32 {
	return int32(d.u32())
}

func (d *decoder) u64() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadUint64()
	d.fail(err)
	return v
}

func (d *decoder) f32() float32 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadFloat()
	d.fail(err)
	return v
}

func (d *decoder) vec3() Vec3 {
	return Vec3{X: d.f32(), Y: d.f32(), Z: d.f32()}
}

func (d *decoder) cstring() string {
	if d.err != nil {
		return ""
	}
	v, err := d.r.ReadCString()
	d.fail(err)
	return v
}

// fixedString reads n raw bytes as a string.
func (d *decoder) fixedString(n int) string {
	if d.err != nil || n == 0 {
		return ""
	}
	b, err := d.r.ReadBytes(n)
	if err != nil {
		d.fail(err)
		return ""
	}
	return string(b)
}

func (d *decoder) packedGuid() uint64 {
	if d.err != nil {
		return 0
	}
	v, err := d.r.ReadPackedGuid()
	d.fail(err)
	return v
}

func (d *decoder) skip(n int) {
	if d.err != nil {
		return
	}
	d.fail(d.r.Skip(n))
}

func (d *decoder) remaining() int {
	return d.r.Remaining()
}

// done returns the first error, wrapped with what was being parsed.
func (d *decoder) done(what string) error {
	if d.err != nil {
		return fmt.Errorf("parsing %s: %w", what, d.err)
	}
	return nil
}
