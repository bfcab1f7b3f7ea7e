package parsers

import (
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// DestroyObject is a decoded SMSG_DESTROY_OBJECT.
type DestroyObject struct {
	Guid    uint64
	IsDeath bool
}

// ParseDestroyObject decodes SMSG_DESTROY_OBJECT. The death byte is optional.
func (p *Parsers) ParseDestroyObject(r *packet.Reader) (*DestroyObject, error) {
	d := newDecoder(r)
	o := &DestroyObject{Guid: d.u64()}
	if d.err == nil && d.remaining() > 0 {
		o.IsDeath = d.u8() != 0
	}
	if err := d.done("destroy object"); err != nil {
		return nil, err
	}
	return o, nil
}

// BuildPing builds CMSG_PING.
func BuildPing(sequence, latencyMs uint32) protocol.Packet {
	w := packet.NewWriter(8)
	w.WriteUint32(sequence)
	w.WriteUint32(latencyMs)
	return protocol.Packet{Opcode: opcode.CMsgPing, Payload: w.Bytes()}
}

// ParsePong decodes SMSG_PONG and returns the echoed sequence.
func ParsePong(r *packet.Reader) (uint32, error) {
	d := newDecoder(r)
	seq := d.u32()
	if err := d.done("pong"); err != nil {
		return 0, err
	}
	return seq, nil
}
