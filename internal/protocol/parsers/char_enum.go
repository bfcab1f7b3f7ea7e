package parsers

import (
	"log/slog"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// EquipmentItem is one visible equipment slot of a character.
type EquipmentItem struct {
	DisplayID     uint32
	InventoryType uint8
	Enchantment   uint32
}

// PetInfo describes the active pet shown on the character screen.
type PetInfo struct {
	DisplayID uint32
	Level     uint32
	Family    uint32
}

// Character is one record of SMSG_CHAR_ENUM.
type Character struct {
	Guid           uint64
	Name           string
	Race           uint8
	Class          uint8
	Gender         uint8
	Appearance     uint32
	FacialFeatures uint8
	Level          uint8
	ZoneID         uint32
	MapID          uint32
	Position       Vec3
	GuildID        uint32
	Flags          uint32
	Customization  uint32
	FirstLogin     bool
	Pet            PetInfo
	Equipment      []EquipmentItem
}

// HasGuild reports whether the character belongs to a guild.
func (c *Character) HasGuild() bool { return c.GuildID != 0 }

// HasPet reports whether a pet is shown.
func (c *Character) HasPet() bool { return c.Pet.DisplayID != 0 }

// CharEnumResponse is a decoded SMSG_CHAR_ENUM.
type CharEnumResponse struct {
	Characters []Character
}

// ParseCharEnum decodes SMSG_CHAR_ENUM.
func (p *Parsers) ParseCharEnum(r *packet.Reader) (*CharEnumResponse, error) {
	f := &p.format
	d := newDecoder(r)

	count := d.u8()
	resp := &CharEnumResponse{Characters: make([]Character, 0, count)}

	for i := 0; i < int(count) && d.err == nil; i++ {
		var c Character
		c.Guid = d.u64()
		c.Name = d.cstring()
		c.Race = d.u8()
		c.Class = d.u8()
		c.Gender = d.u8()
		c.Appearance = d.u32()
		c.FacialFeatures = d.u8()
		c.Level = d.u8()
		c.ZoneID = d.u32()
		c.MapID = d.u32()
		c.Position = d.vec3()
		c.GuildID = d.u32()
		c.Flags = d.u32()

		if f.CharCustomizeFlags {
			c.Customization = d.u32()
			c.FirstLogin = d.u8() != 0
		} else {
			c.FirstLogin = d.u8() != 0
		}

		c.Pet = PetInfo{DisplayID: d.u32(), Level: d.u32(), Family: d.u32()}

		c.Equipment = make([]EquipmentItem, f.EquipmentSlots)
		for j := range c.Equipment {
			c.Equipment[j].DisplayID = d.u32()
			c.Equipment[j].InventoryType = d.u8()
			if f.EquipmentEnchant {
				c.Equipment[j].Enchantment = d.u32()
			}
		}

		if d.err == nil {
			resp.Characters = append(resp.Characters, c)
		}
	}

	if err := d.done("char enum"); err != nil {
		return nil, err
	}

	for _, c := range resp.Characters {
		slog.Debug("character",
			"guid", c.Guid,
			"name", c.Name,
			"race", c.Race,
			"class", c.Class,
			"level", c.Level,
			"map", c.MapID,
			"zone", c.ZoneID)
	}
	slog.Info("character list received", "format", f.Name, "count", len(resp.Characters))
	return resp, nil
}

// BuildCharEnumRequest builds CMSG_CHAR_ENUM (empty body).
func BuildCharEnumRequest() protocol.Packet {
	return protocol.Packet{Opcode: opcode.CMsgCharEnum}
}

// BuildPlayerLogin builds CMSG_PLAYER_LOGIN for the chosen character.
func BuildPlayerLogin(characterGuid uint64) protocol.Packet {
	w := packet.NewWriter(8)
	w.WriteUint64(characterGuid)
	return protocol.Packet{Opcode: opcode.CMsgPlayerLogin, Payload: w.Bytes()}
}
