package parsers

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// SpellCooldown is one cooldown entry of SMSG_INITIAL_SPELLS.
type SpellCooldown struct {
	SpellID            uint32
	ItemID             uint16
	CategoryID         uint16
	CooldownMs         uint32
	CategoryCooldownMs uint32
}

// InitialSpells is a decoded SMSG_INITIAL_SPELLS.
type InitialSpells struct {
	TalentSpec uint8
	SpellIDs   []uint32
	Cooldowns  []SpellCooldown
	// Narrow is set when spell ids were sent as u16 (1.12 servers).
	Narrow bool
}

// ParseInitialSpells decodes SMSG_INITIAL_SPELLS. The id width comes from the
// format; SpellIDAuto falls back to the payload size: 4 bytes per spell
// (u16 id + u16 slot) versus 6 bytes per spell (u32 id + u16 unknown).
func (p *Parsers) ParseInitialSpells(r *packet.Reader) (*InitialSpells, error) {
	d := newDecoder(r)
	s := &InitialSpells{}

	s.TalentSpec = d.u8()
	count := d.u16()
	if d.err != nil {
		return nil, d.done("initial spells")
	}
	switch p.format.InitialSpellIDs {
	case SpellID16:
		s.Narrow = true
	case SpellID32:
		s.Narrow = false
	default:
		s.Narrow = d.remaining() < int(count)*6+2
	}

	s.SpellIDs = make([]uint32, 0, count)
	for i := 0; i < int(count) && d.err == nil; i++ {
		var id uint32
		if s.Narrow {
			id = uint32(d.u16())
			d.u16() // slot
		} else {
			id = d.u32()
			d.u16()
		}
		if id != 0 {
			s.SpellIDs = append(s.SpellIDs, id)
		}
	}

	cd := d.u16()
	s.Cooldowns = make([]SpellCooldown, 0, cd)
	for i := 0; i < int(cd) && d.err == nil; i++ {
		var c SpellCooldown
		if s.Narrow {
			c.SpellID = uint32(d.u16())
		} else {
			c.SpellID = d.u32()
		}
		c.ItemID = d.u16()
		c.CategoryID = d.u16()
		c.CooldownMs = d.u32()
		c.CategoryCooldownMs = d.u32()
		s.Cooldowns = append(s.Cooldowns, c)
	}

	if err := d.done("initial spells"); err != nil {
		return nil, err
	}
	slog.Info("initial spells", "spells", len(s.SpellIDs), "cooldowns", len(s.Cooldowns), "narrow", s.Narrow)
	return s, nil
}

// Spell cast target flags.
const (
	TargetFlagSelf uint32 = 0x00000000
	TargetFlagUnit uint32 = 0x00000002
)

// BuildCastSpell builds CMSG_CAST_SPELL. targetGuid 0 targets self.
func (p *Parsers) BuildCastSpell(spellID uint32, targetGuid uint64, castCount uint8) protocol.Packet {
	f := &p.format
	w := packet.NewWriter(24)

	if f.CastCount {
		w.WriteUint8(castCount)
	}
	w.WriteUint32(spellID)
	if f.CastFlags {
		w.WriteUint8(0)
	}

	targetFlags := TargetFlagSelf
	if targetGuid != 0 {
		targetFlags = TargetFlagUnit
	}
	if f.TargetFlags16 {
		w.WriteUint16(uint16(targetFlags))
	} else {
		w.WriteUint32(targetFlags)
	}
	if targetGuid != 0 {
		w.WritePackedGuid(targetGuid)
	}

	return protocol.Packet{Opcode: opcode.CMsgCastSpell, Payload: w.Bytes()}
}

// CastFailed is a decoded SMSG_CAST_FAILED.
type CastFailed struct {
	CastCount uint8
	SpellID   uint32
	Result    uint8
}

// ParseCastFailed decodes SMSG_CAST_FAILED.
func (p *Parsers) ParseCastFailed(r *packet.Reader) (*CastFailed, error) {
	d := newDecoder(r)
	c := &CastFailed{}

	switch p.format.CastFailed {
	case CastFailedCountFirst:
		c.CastCount = d.u8()
		c.SpellID = d.u32()
		c.Result = d.u8()
	case CastFailedCountLast:
		c.SpellID = d.u32()
		c.Result = d.u8()
		c.CastCount = d.u8()
	case CastFailedNoCount:
		c.SpellID = d.u32()
		c.Result = d.u8()
	}

	if err := d.done("cast failed"); err != nil {
		return nil, err
	}
	return c, nil
}

// Aura flags of SMSG_AURA_UPDATE.
const (
	AuraFlagEffect0       uint8 = 0x01
	AuraFlagEffect1       uint8 = 0x02
	AuraFlagEffect2       uint8 = 0x04
	AuraFlagNotCaster     uint8 = 0x08
	AuraFlagDuration      uint8 = 0x20
	AuraFlagEffectAmounts uint8 = 0x40
)

// Aura is the state of one aura slot. SpellID 0 means the slot was cleared.
type Aura struct {
	SpellID       uint32
	Flags         uint8
	Level         uint8
	Charges       uint8
	CasterGuid    uint64
	MaxDurationMs int32
	DurationMs    int32
	Amounts       []int32
}

// AuraSlotUpdate pairs a slot index with its new state.
type AuraSlotUpdate struct {
	Slot uint8
	Aura Aura
}

// AuraUpdate is a decoded SMSG_AURA_UPDATE or SMSG_AURA_UPDATE_ALL.
type AuraUpdate struct {
	Guid    uint64
	Updates []AuraSlotUpdate
}

// ParseAuraUpdate decodes SMSG_AURA_UPDATE (one slot) or, with isAll,
// SMSG_AURA_UPDATE_ALL (slots until the payload ends).
// Formats without a dedicated aura opcode return ErrUnsupported.
func (p *Parsers) ParseAuraUpdate(r *packet.Reader, isAll bool) (*AuraUpdate, error) {
	if !p.format.AuraUpdate {
		return nil, fmt.Errorf("aura update (%s): %w", p.format.Name, ErrUnsupported)
	}

	d := newDecoder(r)
	a := &AuraUpdate{Guid: d.packedGuid()}

	for d.err == nil && d.remaining() > 0 {
		var u AuraSlotUpdate
		u.Slot = d.u8()
		u.Aura.SpellID = d.u32()
		if u.Aura.SpellID != 0 {
			readAura(d, &u.Aura)
		}
		if d.err != nil {
			break
		}
		a.Updates = append(a.Updates, u)
		if !isAll {
			break
		}
	}

	if err := d.done("aura update"); err != nil {
		return nil, err
	}
	return a, nil
}

func readAura(d *decoder, a *Aura) {
	a.Flags = d.u8()
	a.Level = d.u8()
	a.Charges = d.u8()
	if a.Flags&AuraFlagNotCaster == 0 {
		a.CasterGuid = d.packedGuid()
	}
	if a.Flags&AuraFlagDuration != 0 {
		a.MaxDurationMs = d.i32()
		a.DurationMs = d.i32()
	}
	if a.Flags&AuraFlagEffectAmounts != 0 {
		for i := range 3 {
			if a.Flags&(1<<i) != 0 {
				a.Amounts = append(a.Amounts, d.i32())
			}
		}
	}
}
