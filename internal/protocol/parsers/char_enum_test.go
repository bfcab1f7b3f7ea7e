package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

func writeCharacter(w *packet.Writer, f Format, guid uint64, name string) {
	w.WriteUint64(guid)
	w.WriteCString(name)
	w.WriteUint8(1) // human
	w.WriteUint8(2) // paladin
	w.WriteUint8(0)
	w.WriteUint32(0x01020304)
	w.WriteUint8(5)
	w.WriteUint8(70)
	w.WriteUint32(12)
	w.WriteUint32(0)
	writeVec3(w, Vec3{X: -8949.95, Y: -132.49, Z: 83.53})
	w.WriteUint32(33)
	w.WriteUint32(0)
	if f.CharCustomizeFlags {
		w.WriteUint32(0)
	}
	w.WriteUint8(1)
	w.WriteUint32(0)
	w.WriteUint32(0)
	w.WriteUint32(0)
	for i := range f.EquipmentSlots {
		w.WriteUint32(uint32(1000 + i))
		w.WriteUint8(uint8(i))
		if f.EquipmentEnchant {
			w.WriteUint32(0)
		}
	}
}

func TestParseCharEnum(t *testing.T) {
	for _, f := range []Format{WotLK, TBC, Classic} {
		t.Run(f.Name, func(t *testing.T) {
			w := packet.NewWriter(512)
			w.WriteUint8(2)
			writeCharacter(w, f, 0x10, "Arthas")
			writeCharacter(w, f, 0x11, "Jaina")

			resp, err := New(f).ParseCharEnum(packet.NewReader(w.Bytes()))
			require.NoError(t, err)
			require.Len(t, resp.Characters, 2)

			c := resp.Characters[0]
			assert.Equal(t, uint64(0x10), c.Guid)
			assert.Equal(t, "Arthas", c.Name)
			assert.Equal(t, uint8(70), c.Level)
			assert.Equal(t, uint32(12), c.ZoneID)
			assert.True(t, c.HasGuild())
			assert.False(t, c.HasPet())
			assert.True(t, c.FirstLogin)
			require.Len(t, c.Equipment, f.EquipmentSlots)
			assert.Equal(t, uint32(1000+f.EquipmentSlots-1), c.Equipment[f.EquipmentSlots-1].DisplayID)

			assert.Equal(t, "Jaina", resp.Characters[1].Name)
		})
	}
}

func TestParseCharEnum_Empty(t *testing.T) {
	resp, err := New(WotLK).ParseCharEnum(packet.NewReader([]byte{0}))
	require.NoError(t, err)
	assert.Empty(t, resp.Characters)
}

func TestParseCharEnum_Truncated(t *testing.T) {
	w := packet.NewWriter(512)
	w.WriteUint8(1)
	writeCharacter(w, TBC, 1, "Short")

	// wotlk expects 3 more equipment slots
	_, err := New(WotLK).ParseCharEnum(packet.NewReader(w.Bytes()))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestBuildPlayerLogin(t *testing.T) {
	pkt := BuildPlayerLogin(0x0102030405060708)
	assert.Equal(t, opcode.CMsgPlayerLogin, pkt.Opcode)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, pkt.Payload)

	req := BuildCharEnumRequest()
	assert.Equal(t, opcode.CMsgCharEnum, req.Opcode)
	assert.Empty(t, req.Payload)
}
