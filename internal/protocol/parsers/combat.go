package parsers

import (
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// Monster move types.
const (
	MonsterMoveNormal       uint8 = 0
	MonsterMoveStop         uint8 = 1
	MonsterMoveFacingSpot   uint8 = 2
	MonsterMoveFacingTarget uint8 = 3
	MonsterMoveFacingAngle  uint8 = 4
)

// Monster move spline flags that add optional blocks.
const (
	MonsterSplineAnimation        uint32 = 0x00000100
	MonsterSplineParabolic        uint32 = 0x00000200
	MonsterSplineUncompressedPath uint32 = 0x00040000
)

// MonsterMove is a decoded SMSG_MONSTER_MOVE.
type MonsterMove struct {
	Guid          uint64
	Position      Vec3
	SplineID      uint32
	MoveType      uint8
	FacingSpot    Vec3
	FacingTarget  uint64
	FacingAngle   float32
	SplineFlags   uint32
	AnimationID   uint32
	Duration      uint32
	VerticalAccel float32
	PointCount    uint32
	// Destination is the final path point; equal to Position for a stop.
	Destination Vec3
	HasDest     bool
}

// ParseMonsterMove decodes SMSG_MONSTER_MOVE. A zero guid is malformed.
func (p *Parsers) ParseMonsterMove(r *packet.Reader) (*MonsterMove, error) {
	f := &p.format
	d := newDecoder(r)
	m := &MonsterMove{}

	m.Guid = d.packedGuid()
	if d.err == nil && m.Guid == 0 {
		d.failf("zero mover guid")
	}
	if f.MonsterMoveExtended {
		d.u8()
	}
	m.Position = d.vec3()
	m.SplineID = d.u32()
	m.MoveType = d.u8()
	if d.err != nil {
		return nil, d.done("monster move")
	}

	if m.MoveType == MonsterMoveStop {
		m.Destination = m.Position
		return m, nil
	}

	switch m.MoveType {
	case MonsterMoveFacingSpot:
		m.FacingSpot = d.vec3()
	case MonsterMoveFacingTarget:
		m.FacingTarget = d.u64()
	case MonsterMoveFacingAngle:
		m.FacingAngle = d.f32()
	}

	m.SplineFlags = d.u32()
	if f.MonsterMoveExtended && m.SplineFlags&MonsterSplineAnimation != 0 {
		m.AnimationID = d.u32()
		d.u32() // effect start time
	}
	m.Duration = d.u32()
	if f.MonsterMoveExtended && m.SplineFlags&MonsterSplineParabolic != 0 {
		m.VerticalAccel = d.f32()
		d.u32()
	}

	m.PointCount = d.u32()
	if d.err == nil && m.PointCount > 0 {
		if m.SplineFlags&MonsterSplineUncompressedPath != 0 {
			// все точки полные, последняя и есть цель
			d.skip(int(m.PointCount-1) * 12)
			m.Destination = d.vec3()
		} else {
			// цель, затем упакованные смещения промежуточных точек
			m.Destination = d.vec3()
			d.skip(int(m.PointCount-1) * 4)
		}
		m.HasDest = d.err == nil
	}

	if err := d.done("monster move"); err != nil {
		return nil, err
	}
	return m, nil
}

// Hit info bits of SMSG_ATTACKERSTATEUPDATE.
const (
	HitInfoMiss     uint32 = 0x00000010
	HitInfoCritical uint32 = 0x00000080
)

// SubDamage is one school component of a melee hit.
type SubDamage struct {
	SchoolMask uint32
	Damage     float32
	IntDamage  uint32
	Absorbed   uint32
	Resisted   uint32
}

// AttackerStateUpdate is a decoded SMSG_ATTACKERSTATEUPDATE.
type AttackerStateUpdate struct {
	HitInfo      uint32
	AttackerGuid uint64
	TargetGuid   uint64
	TotalDamage  int32
	Overkill     int32
	SubDamages   []SubDamage
	VictimState  uint32
	Blocked      uint32
}

// IsCrit reports a critical hit.
func (a *AttackerStateUpdate) IsCrit() bool { return a.HitInfo&HitInfoCritical != 0 }

// IsMiss reports a miss.
func (a *AttackerStateUpdate) IsMiss() bool { return a.HitInfo&HitInfoMiss != 0 }

// ParseAttackerStateUpdate decodes SMSG_ATTACKERSTATEUPDATE.
func (p *Parsers) ParseAttackerStateUpdate(r *packet.Reader) (*AttackerStateUpdate, error) {
	d := newDecoder(r)
	a := &AttackerStateUpdate{}

	a.HitInfo = d.u32()
	a.AttackerGuid = d.packedGuid()
	a.TargetGuid = d.packedGuid()
	a.TotalDamage = d.i32()

	n := d.u8()
	a.SubDamages = make([]SubDamage, 0, n)
	for i := 0; i < int(n) && d.err == nil; i++ {
		a.SubDamages = append(a.SubDamages, SubDamage{
			SchoolMask: d.u32(),
			Damage:     d.f32(),
			IntDamage:  d.u32(),
			Absorbed:   d.u32(),
			Resisted:   d.u32(),
		})
	}

	a.VictimState = d.u32()
	if p.format.DamageOverkill {
		a.Overkill = d.i32()
	}
	if d.err == nil && d.remaining() >= 4 {
		a.Blocked = d.u32()
	}

	if err := d.done("attacker state update"); err != nil {
		return nil, err
	}
	return a, nil
}

// SpellDamageLog is a decoded SMSG_SPELLNONMELEEDAMAGELOG.
type SpellDamageLog struct {
	TargetGuid   uint64
	AttackerGuid uint64
	SpellID      uint32
	Damage       uint32
	Overkill     uint32
	SchoolMask   uint8
	Absorbed     uint32
	Resisted     uint32
	PeriodicLog  bool
	Blocked      uint32
	HitFlags     uint32
}

// IsCrit reports a critical spell hit.
func (s *SpellDamageLog) IsCrit() bool { return s.HitFlags&0x02 != 0 }

// ParseSpellDamageLog decodes SMSG_SPELLNONMELEEDAMAGELOG.
func (p *Parsers) ParseSpellDamageLog(r *packet.Reader) (*SpellDamageLog, error) {
	d := newDecoder(r)
	s := &SpellDamageLog{}

	s.TargetGuid = d.packedGuid()
	s.AttackerGuid = d.packedGuid()
	s.SpellID = d.u32()
	s.Damage = d.u32()
	if p.format.DamageOverkill {
		s.Overkill = d.u32()
	}
	s.SchoolMask = d.u8()
	s.Absorbed = d.u32()
	s.Resisted = d.u32()
	s.PeriodicLog = d.u8() != 0
	d.u8() // unused
	s.Blocked = d.u32()
	s.HitFlags = d.u32()

	if err := d.done("spell damage log"); err != nil {
		return nil, err
	}
	return s, nil
}
