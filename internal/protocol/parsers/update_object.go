package parsers

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/wowee/internal/protocol/packet"
	"github.com/udisondev/wowee/internal/updatefield"
)

// UpdateType is the kind of one block inside SMSG_UPDATE_OBJECT.
type UpdateType uint8

const (
	UpdateValues        UpdateType = 0
	UpdateTypeMovement  UpdateType = 1
	UpdateCreateObject  UpdateType = 2
	UpdateCreateObject2 UpdateType = 3
	UpdateOutOfRange    UpdateType = 4
	UpdateNearObjects   UpdateType = 5
)

func (t UpdateType) String() string {
	switch t {
	case UpdateValues:
		return "VALUES"
	case UpdateTypeMovement:
		return "MOVEMENT"
	case UpdateCreateObject:
		return "CREATE_OBJECT"
	case UpdateCreateObject2:
		return "CREATE_OBJECT2"
	case UpdateOutOfRange:
		return "OUT_OF_RANGE_OBJECTS"
	case UpdateNearObjects:
		return "NEAR_OBJECTS"
	default:
		return "UNKNOWN"
	}
}

// ObjectType is the type id carried by create blocks.
type ObjectType uint8

const (
	ObjectTypeObject ObjectType = iota
	ObjectTypeItem
	ObjectTypeContainer
	ObjectTypeUnit
	ObjectTypePlayer
	ObjectTypeGameObject
	ObjectTypeDynamicObject
	ObjectTypeCorpse
)

// Update flags. Vehicle, Position and Rotation exist only with ExtendedUpdateFlags.
const (
	UpdateFlagSelf        uint16 = 0x0001
	UpdateFlagTransport   uint16 = 0x0002
	UpdateFlagHasTarget   uint16 = 0x0004
	UpdateFlagLowGuid     uint16 = 0x0008
	UpdateFlagHighGuid    uint16 = 0x0010
	UpdateFlagLiving      uint16 = 0x0020
	UpdateFlagHasPosition uint16 = 0x0040
	UpdateFlagVehicle     uint16 = 0x0080
	UpdateFlagPosition    uint16 = 0x0100
	UpdateFlagRotation    uint16 = 0x0200
)

// Spline flags selecting the final-facing variant.
const (
	SplineFlagFinalPoint  uint32 = 0x00010000
	SplineFlagFinalTarget uint32 = 0x00020000
	SplineFlagFinalAngle  uint32 = 0x00040000
)

// MaxSplinePoints caps the node list of a spline in an update block.
const MaxSplinePoints = 256

// Spline is the active path of a living object.
type Spline struct {
	Flags       uint32
	FinalPoint  Vec3
	FinalTarget uint64
	FinalAngle  float32

	TimePassed uint32
	Duration   uint32
	ID         uint32

	DurationMod     float32
	DurationModNext float32
	VerticalAccel   float32
	EffectStartTime uint32

	Points   []Vec3
	Mode     uint8
	EndPoint Vec3
}

// UpdateMovement is the movement section of a create or movement block.
type UpdateMovement struct {
	UpdateFlags uint16

	// Info is fully populated for living objects. Stationary objects only
	// carry Position and Orientation; the position variant adds transport data.
	Info              MovementInfo
	CorpseOrientation float32
	Speeds            [numSpeeds]float32
	Spline            *Spline

	TargetGuid         uint64
	TransportTime      uint32
	VehicleID          uint32
	VehicleOrientation float32
	Rotation           uint64
	LowGuid            uint32
	HighGuid           uint32
}

// Living reports whether the block carried a full movement info.
func (u *UpdateMovement) Living() bool {
	return u.UpdateFlags&UpdateFlagLiving != 0
}

// Speed returns one speed value (zero when the format has no such speed).
func (u *UpdateMovement) Speed(s Speed) float32 {
	if s >= numSpeeds {
		return 0
	}
	return u.Speeds[s]
}

// UpdateFields holds the values of one sparse field update.
type UpdateFields struct {
	// Values is keyed by wire index (bit position in the mask).
	Values map[uint16]uint32
	// Named holds the subset of Values whose index maps to a known logical field.
	Named map[updatefield.Field]uint32
}

// Get returns the value of a logical field if it was present.
func (u UpdateFields) Get(f updatefield.Field) (uint32, bool) {
	v, ok := u.Named[f]
	return v, ok
}

// Len returns the number of values carried.
func (u UpdateFields) Len() int {
	return len(u.Values)
}

// UpdateBlock is one entry of SMSG_UPDATE_OBJECT.
type UpdateBlock struct {
	Type       UpdateType
	Guid       uint64
	ObjectType ObjectType
	Movement   *UpdateMovement
	Fields     UpdateFields
	// Guids lists the objects of an out-of-range or near-objects block.
	Guids []uint64
}

// UpdateObject is a decoded SMSG_UPDATE_OBJECT.
type UpdateObject struct {
	BlockCount   uint32
	HasTransport bool
	Blocks       []UpdateBlock
}

// OutOfRange returns every guid reported out of range in the batch.
func (u *UpdateObject) OutOfRange() []uint64 {
	var out []uint64
	for i := range u.Blocks {
		if u.Blocks[i].Type == UpdateOutOfRange {
			out = append(out, u.Blocks[i].Guids...)
		}
	}
	return out
}

// ParseUpdateObject decodes a full SMSG_UPDATE_OBJECT payload.
func (p *Parsers) ParseUpdateObject(r *packet.Reader) (*UpdateObject, error) {
	d := newDecoder(r)
	u := &UpdateObject{}

	u.BlockCount = d.u32()
	if p.format.UpdateHasTransport {
		u.HasTransport = d.u8() != 0
	}
	if err := d.done("update object header"); err != nil {
		return nil, err
	}

	u.Blocks = make([]UpdateBlock, 0, min(u.BlockCount, 256))
	for i := uint32(0); i < u.BlockCount; i++ {
		b := p.readUpdateBlock(d)
		if d.err != nil {
			slog.Debug("update block failed", "block", i+1, "of", u.BlockCount, "type", b.Type, "error", d.err)
			return nil, d.done("update object")
		}
		u.Blocks = append(u.Blocks, b)
	}

	slog.Debug("parsed SMSG_UPDATE_OBJECT", "blocks", len(u.Blocks), "remaining", d.remaining())
	return u, nil
}

func (p *Parsers) readUpdateBlock(d *decoder) UpdateBlock {
	var b UpdateBlock
	b.Type = UpdateType(d.u8())
	if d.err != nil {
		return b
	}

	switch b.Type {
	case UpdateValues:
		b.Guid = d.packedGuid()
		b.Fields = p.readUpdateFields(d)
	case UpdateTypeMovement:
		b.Guid = d.packedGuid()
		b.Movement = p.readUpdateMovement(d)
	case UpdateCreateObject, UpdateCreateObject2:
		b.Guid = d.packedGuid()
		b.ObjectType = ObjectType(d.u8())
		b.Movement = p.readUpdateMovement(d)
		b.Fields = p.readUpdateFields(d)
	case UpdateOutOfRange, UpdateNearObjects:
		n := d.u32()
		if d.err == nil && int(n) > d.remaining() {
			d.failf("%s count %d exceeds payload", b.Type, n)
			return b
		}
		b.Guids = make([]uint64, 0, n)
		for range n {
			b.Guids = append(b.Guids, d.packedGuid())
		}
	default:
		d.failf("unknown update type %d", uint8(b.Type))
	}
	return b
}

func (p *Parsers) readUpdateMovement(d *decoder) *UpdateMovement {
	f := &p.format
	u := &UpdateMovement{}

	if f.UpdateFlagsSize == 2 {
		u.UpdateFlags = d.u16()
	} else {
		u.UpdateFlags = uint16(d.u8())
	}
	flags := u.UpdateFlags
	if !f.ExtendedUpdateFlags {
		flags &^= UpdateFlagVehicle | UpdateFlagPosition | UpdateFlagRotation
	}

	switch {
	case flags&UpdateFlagLiving != 0:
		u.Info = p.readMovement(d)
		for _, s := range f.Speeds {
			u.Speeds[s] = d.f32()
		}
		if u.Info.Flags&f.SplineEnabledFlag != 0 {
			u.Spline = p.readSpline(d)
		}
	case flags&UpdateFlagPosition != 0:
		u.Info.TransportGuid = d.packedGuid()
		u.Info.Position = d.vec3()
		offset := d.vec3()
		if u.Info.TransportGuid != 0 {
			u.Info.TransportPosition = offset
		}
		u.Info.Orientation = d.f32()
		u.CorpseOrientation = d.f32()
	case flags&UpdateFlagHasPosition != 0:
		u.Info.Position = d.vec3()
		u.Info.Orientation = d.f32()
	}

	if flags&UpdateFlagHasTarget != 0 {
		u.TargetGuid = d.packedGuid()
	}
	if flags&UpdateFlagTransport != 0 {
		u.TransportTime = d.u32()
	}
	if flags&UpdateFlagVehicle != 0 {
		u.VehicleID = d.u32()
		u.VehicleOrientation = d.f32()
	}
	if flags&UpdateFlagRotation != 0 {
		u.Rotation = d.u64()
	}
	if flags&UpdateFlagLowGuid != 0 {
		u.LowGuid = d.u32()
		for i := 1; i < f.LowGuidWords; i++ {
			d.u32()
		}
	}
	if flags&UpdateFlagHighGuid != 0 {
		u.HighGuid = d.u32()
	}
	return u
}

func (p *Parsers) readSpline(d *decoder) *Spline {
	f := &p.format
	s := &Spline{}

	s.Flags = d.u32()
	switch {
	case s.Flags&SplineFlagFinalPoint != 0:
		s.FinalPoint = d.vec3()
	case s.Flags&SplineFlagFinalTarget != 0:
		s.FinalTarget = d.u64()
	case s.Flags&SplineFlagFinalAngle != 0:
		s.FinalAngle = d.f32()
	}

	s.TimePassed = d.u32()
	s.Duration = d.u32()
	s.ID = d.u32()

	if f.ExtendedSpline {
		s.DurationMod = d.f32()
		s.DurationModNext = d.f32()
		s.VerticalAccel = d.f32()
		s.EffectStartTime = d.u32()
	}

	n := d.u32()
	if d.err != nil {
		return s
	}
	if n > MaxSplinePoints {
		d.failf("spline point count %d exceeds %d", n, MaxSplinePoints)
		return s
	}
	s.Points = make([]Vec3, 0, n)
	for range n {
		s.Points = append(s.Points, d.vec3())
	}

	if f.ExtendedSpline {
		s.Mode = d.u8()
	}
	s.EndPoint = d.vec3()
	return s
}

// ParseUpdateFields reads a sparse field update: a dword count, that many
// mask dwords, then one u32 per set bit in ascending bit order.
func (p *Parsers) ParseUpdateFields(r *packet.Reader) (UpdateFields, error) {
	d := newDecoder(r)
	u := p.readUpdateFields(d)
	if err := d.done("update fields"); err != nil {
		return UpdateFields{}, err
	}
	return u, nil
}

func (p *Parsers) readUpdateFields(d *decoder) UpdateFields {
	u := UpdateFields{
		Values: make(map[uint16]uint32),
		Named:  make(map[updatefield.Field]uint32),
	}

	count := int(d.u8())
	if d.err != nil || count == 0 {
		return u
	}
	if count*4 > d.remaining() {
		d.fail(fmt.Errorf("update mask of %d dwords: %w", count, ErrTruncated))
		return u
	}

	masks := make([]uint32, count)
	for i := range masks {
		masks[i] = d.u32()
	}

	table := p.fieldTable()
	for block, mask := range masks {
		for bit := 0; bit < 32 && mask != 0; bit++ {
			if mask&(1<<bit) == 0 {
				continue
			}
			index := uint16(block*32 + bit)
			v := d.u32()
			if d.err != nil {
				return u
			}
			u.Values[index] = v
			if table == nil {
				continue
			}
			if f, ok := table.Field(index); ok {
				u.Named[f] = v
			}
		}
	}
	return u
}
