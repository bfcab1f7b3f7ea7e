package parsers

import (
	"fmt"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// Movement flags (3.3.5a numbering).
const (
	MoveFlagForward         uint32 = 0x00000001
	MoveFlagBackward        uint32 = 0x00000002
	MoveFlagStrafeLeft      uint32 = 0x00000004
	MoveFlagStrafeRight     uint32 = 0x00000008
	MoveFlagTurnLeft        uint32 = 0x00000010
	MoveFlagTurnRight       uint32 = 0x00000020
	MoveFlagWalking         uint32 = 0x00000100
	MoveFlagOnTransport     uint32 = 0x00000200
	MoveFlagRoot            uint32 = 0x00000800
	MoveFlagFalling         uint32 = 0x00001000
	MoveFlagFallingFar      uint32 = 0x00002000
	MoveFlagSwimming        uint32 = 0x00200000
	MoveFlagAscending       uint32 = 0x00400000
	MoveFlagCanFly          uint32 = 0x01000000
	MoveFlagFlying          uint32 = 0x02000000
	MoveFlagSplineElevation uint32 = 0x04000000
	MoveFlagSplineEnabled   uint32 = 0x08000000
)

// Movement flag-2 bits (3.3.5a only).
const (
	MoveFlag2AlwaysAllowPitching  uint16 = 0x0010
	MoveFlag2InterpolatedMovement uint16 = 0x0200
)

// Bits that moved between expansions.
const (
	tbcMoveFlagJumping           uint32 = 0x00002000
	tbcMoveFlagPitchTransport    uint32 = 0x02000000
	classicMoveFlagOnTransport   uint32 = 0x02000000
	classicMoveFlagSplineEnabled uint32 = 0x00400000
)

// Vec3 is a position or direction in world coordinates.
type Vec3 struct {
	X, Y, Z float32
}

// MovementInfo is the movement block shared by client movement packets,
// server movement echoes and living object updates.
// Fields not present on the wire for the active format stay zero.
type MovementInfo struct {
	Flags       uint32
	Flags2      uint16
	Time        uint32
	Position    Vec3
	Orientation float32

	TransportGuid        uint64
	TransportPosition    Vec3
	TransportOrientation float32
	TransportTime        uint32
	TransportSeat        int8
	TransportTime2       uint32

	Pitch    float32
	FallTime uint32

	JumpVelocity float32
	JumpSinAngle float32
	JumpCosAngle float32
	JumpXYSpeed  float32

	SplineElevation float32
}

// HasFlag reports whether any bit of flag is set.
func (m *MovementInfo) HasFlag(flag uint32) bool {
	return m.Flags&flag != 0
}

func (f *Format) hasPitch(flags uint32, flags2 uint16) bool {
	return flags&f.PitchFlags != 0 || flags2&f.PitchFlags2 != 0
}

// ParseMovementBlock reads one movement block.
func (p *Parsers) ParseMovementBlock(r *packet.Reader) (MovementInfo, error) {
	d := newDecoder(r)
	m := p.readMovement(d)
	return m, d.done("movement block")
}

func (p *Parsers) readMovement(d *decoder) MovementInfo {
	f := &p.format
	var m MovementInfo

	m.Flags = d.u32()
	switch f.MoveFlags2Size {
	case 1:
		m.Flags2 = uint16(d.u8())
	case 2:
		m.Flags2 = d.u16()
	}
	m.Time = d.u32()
	m.Position = d.vec3()
	m.Orientation = d.f32()

	if m.Flags&f.OnTransportFlag != 0 {
		m.TransportGuid = d.packedGuid()
		m.TransportPosition = d.vec3()
		m.TransportOrientation = d.f32()
		if f.TransportTime {
			m.TransportTime = d.u32()
		}
		if f.TransportSeat {
			m.TransportSeat = int8(d.u8())
		}
		if f.InterpolatedFlag2 != 0 && m.Flags2&f.InterpolatedFlag2 != 0 {
			m.TransportTime2 = d.u32()
		}
	}

	if f.hasPitch(m.Flags, m.Flags2) {
		m.Pitch = d.f32()
	}

	m.FallTime = d.u32()

	if m.Flags&f.JumpFlag != 0 {
		m.JumpVelocity = d.f32()
		m.JumpSinAngle = d.f32()
		m.JumpCosAngle = d.f32()
		m.JumpXYSpeed = d.f32()
	}

	if m.Flags&f.SplineElevationFlag != 0 {
		m.SplineElevation = d.f32()
	}
	return m
}

// WriteMovementPayload writes m in the layout ParseMovementBlock reads.
// Flag-2 bits that do not fit the format's width are dropped.
func (p *Parsers) WriteMovementPayload(w *packet.Writer, m MovementInfo) {
	f := &p.format

	w.WriteUint32(m.Flags)
	switch f.MoveFlags2Size {
	case 1:
		w.WriteUint8(uint8(m.Flags2))
	case 2:
		w.WriteUint16(m.Flags2)
	}
	w.WriteUint32(m.Time)
	writeVec3(w, m.Position)
	w.WriteFloat(m.Orientation)

	if m.Flags&f.OnTransportFlag != 0 {
		w.WritePackedGuid(m.TransportGuid)
		writeVec3(w, m.TransportPosition)
		w.WriteFloat(m.TransportOrientation)
		if f.TransportTime {
			w.WriteUint32(m.TransportTime)
		}
		if f.TransportSeat {
			w.WriteUint8(uint8(m.TransportSeat))
		}
		if f.InterpolatedFlag2 != 0 && m.Flags2&f.InterpolatedFlag2 != 0 {
			w.WriteUint32(m.TransportTime2)
		}
	}

	if f.hasPitch(m.Flags, m.Flags2) {
		w.WriteFloat(m.Pitch)
	}

	w.WriteUint32(m.FallTime)

	if m.Flags&f.JumpFlag != 0 {
		w.WriteFloat(m.JumpVelocity)
		w.WriteFloat(m.JumpSinAngle)
		w.WriteFloat(m.JumpCosAngle)
		w.WriteFloat(m.JumpXYSpeed)
	}

	if m.Flags&f.SplineElevationFlag != 0 {
		w.WriteFloat(m.SplineElevation)
	}
}

// BuildMovementPacket builds a CMSG/MSG_MOVE_* packet. The mover's packed guid
// prefixes the payload only where the format requires it.
func (p *Parsers) BuildMovementPacket(op opcode.Op, m MovementInfo, playerGuid uint64) protocol.Packet {
	w := packet.NewWriter(64)
	if p.format.MovementGuidPrefix {
		w.WritePackedGuid(playerGuid)
	}
	p.WriteMovementPayload(w, m)
	return protocol.Packet{Opcode: op, Payload: w.Bytes()}
}

// ParseMovementPacket decodes a server movement echo: packed mover guid
// followed by exactly one movement block. Leftover bytes mean the block
// was framed with the wrong width and are rejected.
func (p *Parsers) ParseMovementPacket(payload []byte) (uint64, MovementInfo, error) {
	d := newDecoder(packet.NewReader(payload))
	guid := d.packedGuid()
	m := p.readMovement(d)
	if d.err == nil && d.remaining() != 0 {
		d.failf("%d trailing bytes", d.remaining())
	}
	if err := d.done("movement packet"); err != nil {
		return 0, MovementInfo{}, err
	}
	return guid, m, nil
}

func writeVec3(w *packet.Writer, v Vec3) {
	w.WriteFloat(v.X)
	w.WriteFloat(v.Y)
	w.WriteFloat(v.Z)
}

// ReadPackedGuid reads a mask-prefixed guid.
func ReadPackedGuid(r *packet.Reader) (uint64, error) {
	g, err := r.ReadPackedGuid()
	if err != nil {
		return 0, fmt.Errorf("packed guid: %w", err)
	}
	return g, nil
}

// WritePackedGuid writes guid in mask-prefixed form.
func WritePackedGuid(w *packet.Writer, guid uint64) {
	w.WritePackedGuid(guid)
}
