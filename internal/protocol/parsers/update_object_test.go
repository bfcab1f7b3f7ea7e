package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wowee/internal/protocol/packet"
	"github.com/udisondev/wowee/internal/updatefield"
)

func writeSpeeds(w *packet.Writer, f Format) {
	for i := range f.Speeds {
		w.WriteFloat(float32(i + 1))
	}
}

func TestParseUpdateObject_WotLKCreatePlayer(t *testing.T) {
	p := New(WotLK).WithFields(updatefield.Defaults())

	w := packet.NewWriter(256)
	w.WriteUint32(2)

	// create block
	w.WriteUint8(uint8(UpdateCreateObject2))
	w.WritePackedGuid(0x0000000000000007)
	w.WriteUint8(uint8(ObjectTypePlayer))
	w.WriteUint16(UpdateFlagSelf | UpdateFlagLiving)
	p.WriteMovementPayload(w, sampleMovement())
	writeSpeeds(w, WotLK)
	// UNIT_FIELD_HEALTH (24) and UNIT_FIELD_LEVEL (54)
	w.WriteUint8(2)
	w.WriteUint32(1 << 24)
	w.WriteUint32(1 << 22)
	w.WriteUint32(4200)
	w.WriteUint32(80)

	// out of range block
	w.WriteUint8(uint8(UpdateOutOfRange))
	w.WriteUint32(2)
	w.WritePackedGuid(0xF130000000000010)
	w.WritePackedGuid(0x11)

	u, err := p.ParseUpdateObject(packet.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Len(t, u.Blocks, 2)

	b := u.Blocks[0]
	assert.Equal(t, UpdateCreateObject2, b.Type)
	assert.Equal(t, uint64(7), b.Guid)
	assert.Equal(t, ObjectTypePlayer, b.ObjectType)
	require.NotNil(t, b.Movement)
	assert.True(t, b.Movement.Living())
	assert.Equal(t, sampleMovement(), b.Movement.Info)
	assert.Equal(t, float32(2), b.Movement.Speed(SpeedRun))
	assert.Equal(t, float32(9), b.Movement.Speed(SpeedPitch))
	assert.Nil(t, b.Movement.Spline)

	assert.Equal(t, 2, b.Fields.Len())
	hp, ok := b.Fields.Get(updatefield.UnitHealth)
	require.True(t, ok)
	assert.Equal(t, uint32(4200), hp)
	lvl, ok := b.Fields.Get(updatefield.UnitLevel)
	require.True(t, ok)
	assert.Equal(t, uint32(80), lvl)

	assert.Equal(t, []uint64{0xF130000000000010, 0x11}, u.OutOfRange())
}

func TestParseUpdateObject_LivingWithSpline(t *testing.T) {
	p := New(WotLK)

	m := sampleMovement()
	m.Flags = MoveFlagSplineEnabled

	w := packet.NewWriter(256)
	w.WriteUint32(1)
	w.WriteUint8(uint8(UpdateTypeMovement))
	w.WritePackedGuid(0x99)
	w.WriteUint16(UpdateFlagLiving)
	p.WriteMovementPayload(w, m)
	writeSpeeds(w, WotLK)
	w.WriteUint32(SplineFlagFinalAngle)
	w.WriteFloat(3)
	w.WriteUint32(100) // time passed
	w.WriteUint32(2000)
	w.WriteUint32(5)
	w.WriteFloat(1)
	w.WriteFloat(1)
	w.WriteFloat(0)
	w.WriteUint32(0)
	w.WriteUint32(2)
	writeVec3(w, Vec3{X: 1, Y: 1, Z: 1})
	writeVec3(w, Vec3{X: 2, Y: 2, Z: 2})
	w.WriteUint8(0)
	writeVec3(w, Vec3{X: 3, Y: 3, Z: 3})

	u, err := p.ParseUpdateObject(packet.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Len(t, u.Blocks, 1)

	s := u.Blocks[0].Movement.Spline
	require.NotNil(t, s)
	assert.Equal(t, float32(3), s.FinalAngle)
	assert.Equal(t, uint32(2000), s.Duration)
	assert.Len(t, s.Points, 2)
	assert.Equal(t, Vec3{X: 3, Y: 3, Z: 3}, s.EndPoint)
}

func TestParseUpdateObject_SplineTooLong(t *testing.T) {
	p := New(TBC)

	m := sampleMovement()
	m.Flags = MoveFlagSplineEnabled

	w := packet.NewWriter(128)
	w.WriteUint32(1)
	w.WriteUint8(0) // no transport
	w.WriteUint8(uint8(UpdateTypeMovement))
	w.WritePackedGuid(0x99)
	w.WriteUint8(uint8(UpdateFlagLiving))
	p.WriteMovementPayload(w, m)
	writeSpeeds(w, TBC)
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteUint32(MaxSplinePoints + 1)

	_, err := p.ParseUpdateObject(packet.NewReader(w.Bytes()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseUpdateObject_TBCStationary(t *testing.T) {
	p := New(TBC)

	w := packet.NewWriter(128)
	w.WriteUint32(1)
	w.WriteUint8(1)
	w.WriteUint8(uint8(UpdateCreateObject))
	w.WritePackedGuid(0xF110000000000055)
	w.WriteUint8(uint8(ObjectTypeGameObject))
	w.WriteUint8(uint8(UpdateFlagHasPosition | UpdateFlagLowGuid | UpdateFlagHighGuid))
	writeVec3(w, Vec3{X: 10, Y: 20, Z: 30})
	w.WriteFloat(0.5)
	w.WriteUint32(0x55)
	w.WriteUint32(0) // второе слово low guid
	w.WriteUint32(0xF110)
	w.WriteUint8(0) // пустая маска

	u, err := p.ParseUpdateObject(packet.NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.True(t, u.HasTransport)
	require.Len(t, u.Blocks, 1)

	mv := u.Blocks[0].Movement
	assert.False(t, mv.Living())
	assert.Equal(t, Vec3{X: 10, Y: 20, Z: 30}, mv.Info.Position)
	assert.Equal(t, float32(0.5), mv.Info.Orientation)
	assert.Equal(t, uint32(0x55), mv.LowGuid)
	assert.Equal(t, uint32(0xF110), mv.HighGuid)
	assert.Equal(t, 0, u.Blocks[0].Fields.Len())
}

func TestParseUpdateObject_UnknownType(t *testing.T) {
	w := packet.NewWriter(8)
	w.WriteUint32(1)
	w.WriteUint8(9)

	_, err := New(WotLK).ParseUpdateObject(packet.NewReader(w.Bytes()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseUpdateObject_Truncated(t *testing.T) {
	w := packet.NewWriter(8)
	w.WriteUint32(3)
	w.WriteUint8(uint8(UpdateValues))

	_, err := New(WotLK).ParseUpdateObject(packet.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseUpdateFields_MaxMask(t *testing.T) {
	w := packet.NewWriter(1 + 255*4 + 4)
	w.WriteUint8(255)
	for i := range 255 {
		if i == 254 {
			w.WriteUint32(1 << 31)
			continue
		}
		w.WriteUint32(0)
	}
	w.WriteUint32(0xDEADBEEF)

	u, err := New(WotLK).WithFields(updatefield.NewTable()).ParseUpdateFields(packet.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 1, u.Len())
	assert.Equal(t, uint32(0xDEADBEEF), u.Values[254*32+31])
	assert.Empty(t, u.Named)
}

func TestParseUpdateFields_MaskTruncated(t *testing.T) {
	w := packet.NewWriter(16)
	w.WriteUint8(3)
	w.WriteUint32(0)
	w.WriteUint32(0)

	_, err := New(WotLK).ParseUpdateFields(packet.NewReader(w.Bytes()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestParseUpdateFields_ValueTruncated(t *testing.T) {
	w := packet.NewWriter(16)
	w.WriteUint8(1)
	w.WriteUint32(0x3)
	w.WriteUint32(1)

	_, err := New(WotLK).ParseUpdateFields(packet.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestUpdateTypeString(t *testing.T) {
	assert.Equal(t, "CREATE_OBJECT2", UpdateCreateObject2.String())
	assert.Equal(t, "UNKNOWN", UpdateType(42).String())
}
