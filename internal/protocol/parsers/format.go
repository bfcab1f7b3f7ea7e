package parsers

import (
	"sync/atomic"

	"github.com/udisondev/wowee/internal/updatefield"
)

// Speed identifies one entry of the speed list in a living update block.
type Speed uint8

const (
	SpeedWalk Speed = iota
	SpeedRun
	SpeedRunBack
	SpeedSwim
	SpeedSwimBack
	SpeedFlight
	SpeedFlightBack
	SpeedTurn
	SpeedPitch
	numSpeeds
)

// CastFailedLayout selects the SMSG_CAST_FAILED field order.
type CastFailedLayout uint8

const (
	// CastFailedCountFirst: castCount u8, spellId u32, result u8.
	CastFailedCountFirst CastFailedLayout = iota
	// CastFailedCountLast: spellId u32, result u8, castCount u8.
	CastFailedCountLast
	// CastFailedNoCount: spellId u32, result u8.
	CastFailedNoCount
)

// SpellIDWidth selects how SMSG_INITIAL_SPELLS encodes spell ids.
type SpellIDWidth uint8

const (
	// SpellIDAuto guesses the width from the payload size.
	SpellIDAuto SpellIDWidth = iota
	// SpellID16: u16 id + u16 slot (1.12).
	SpellID16
	// SpellID32: u32 id + u16 unknown.
	SpellID32
)

// Format lists every wire difference between expansions that the parsers care about.
// One value per expansion; the parsers branch on fields, never on the expansion id.
type Format struct {
	Name string

	// Movement info block. MoveFlags2Size is 0, 1 or 2 bytes.
	MoveFlags2Size      int
	OnTransportFlag     uint32
	PitchFlags          uint32
	PitchFlags2         uint16
	JumpFlag            uint32
	SplineElevationFlag uint32
	SplineEnabledFlag   uint32
	TransportTime       bool
	TransportSeat       bool
	// InterpolatedFlag2 adds a second transport time; 0 = never.
	InterpolatedFlag2 uint16
	// MovementGuidPrefix: client movement packets start with the mover's packed guid.
	MovementGuidPrefix bool

	// Object update block.
	UpdateFlagsSize     int
	ExtendedUpdateFlags bool
	LowGuidWords        int
	Speeds              []Speed
	ExtendedSpline      bool
	UpdateHasTransport  bool
	MonsterMoveExtended bool

	// Character enumeration. CharCustomizeFlags means u32 flags + u8 before
	// pet data; otherwise a single first-login byte.
	EquipmentSlots     int
	EquipmentEnchant   bool
	CharCustomizeFlags bool

	// Spells and combat.
	InitialSpellIDs  SpellIDWidth
	CastCount        bool
	CastFlags        bool
	TargetFlags16    bool
	CastFailed       CastFailedLayout
	AuraUpdate       bool
	DamageOverkill   bool
	NameQueryPacked  bool
	ClassicChatTypes bool

	// Guild.
	GuildBankTabs  int
	GuildRankGold  bool
	GuildMemberSex bool
}

var (
	wotlkSpeeds   = []Speed{SpeedWalk, SpeedRun, SpeedRunBack, SpeedSwim, SpeedSwimBack, SpeedFlight, SpeedFlightBack, SpeedTurn, SpeedPitch}
	tbcSpeeds     = []Speed{SpeedWalk, SpeedRun, SpeedRunBack, SpeedSwim, SpeedFlight, SpeedFlightBack, SpeedSwimBack, SpeedTurn}
	classicSpeeds = []Speed{SpeedWalk, SpeedRun, SpeedRunBack, SpeedSwim, SpeedSwimBack, SpeedTurn}
)

// WotLK describes the 3.3.5a wire format; it is the default for unknown ids.
var WotLK = Format{
	Name:                "wotlk",
	MoveFlags2Size:      2,
	OnTransportFlag:     MoveFlagOnTransport,
	PitchFlags:          MoveFlagSwimming | MoveFlagFlying,
	PitchFlags2:         MoveFlag2AlwaysAllowPitching,
	JumpFlag:            MoveFlagFalling,
	SplineElevationFlag: MoveFlagSplineElevation,
	SplineEnabledFlag:   MoveFlagSplineEnabled,
	TransportTime:       true,
	TransportSeat:       true,
	InterpolatedFlag2:   MoveFlag2InterpolatedMovement,
	MovementGuidPrefix:  true,
	UpdateFlagsSize:     2,
	ExtendedUpdateFlags: true,
	LowGuidWords:        1,
	Speeds:              wotlkSpeeds,
	ExtendedSpline:      true,
	MonsterMoveExtended: true,

	EquipmentSlots:     23,
	EquipmentEnchant:   true,
	CharCustomizeFlags: true,

	InitialSpellIDs: SpellID32,
	CastCount:       true,
	CastFlags:       true,
	CastFailed:      CastFailedCountFirst,
	AuraUpdate:      true,
	DamageOverkill:  true,
	NameQueryPacked: true,

	GuildBankTabs:  6,
	GuildRankGold:  true,
	GuildMemberSex: true,
}

// TBC describes the 2.4.3 wire format.
var TBC = Format{
	Name:                "tbc",
	MoveFlags2Size:      1,
	OnTransportFlag:     MoveFlagOnTransport,
	PitchFlags:          MoveFlagSwimming | tbcMoveFlagPitchTransport,
	JumpFlag:            tbcMoveFlagJumping,
	SplineElevationFlag: MoveFlagSplineElevation,
	SplineEnabledFlag:   MoveFlagSplineEnabled,
	TransportTime:       true,
	UpdateFlagsSize:     1,
	LowGuidWords:        2,
	Speeds:              tbcSpeeds,
	UpdateHasTransport:  true,

	EquipmentSlots:   20,
	EquipmentEnchant: true,

	InitialSpellIDs: SpellID32,
	CastCount:       true,
	CastFailed:      CastFailedCountLast,

	GuildBankTabs:  6,
	GuildRankGold:  true,
	GuildMemberSex: true,
}

// Classic describes the 1.12.1 wire format.
var Classic = Format{
	Name:                "classic",
	MoveFlags2Size:      0,
	OnTransportFlag:     classicMoveFlagOnTransport,
	PitchFlags:          MoveFlagSwimming,
	JumpFlag:            tbcMoveFlagJumping,
	SplineElevationFlag: MoveFlagSplineElevation,
	SplineEnabledFlag:   classicMoveFlagSplineEnabled,
	UpdateFlagsSize:     1,
	LowGuidWords:        1,
	Speeds:              classicSpeeds,
	UpdateHasTransport:  true,

	EquipmentSlots: 20,

	InitialSpellIDs:  SpellID16,
	TargetFlags16:    true,
	CastFailed:       CastFailedNoCount,
	ClassicChatTypes: true,
}

// Parsers decodes and encodes world packet payloads for one expansion.
// Safe for concurrent use: it holds no per-packet state.
type Parsers struct {
	format Format
	fields *updatefield.Table
}

// New creates parsers for format f. Update fields resolve through the active
// update field table at parse time.
func New(f Format) *Parsers {
	return &Parsers{format: f}
}

// For selects parsers by expansion id. "classic" and "turtle" share the
// classic format, "tbc" has its own, everything else uses WotLK.
func For(expansionID string) *Parsers {
	switch expansionID {
	case "classic", "turtle":
		return New(Classic)
	case "tbc":
		return New(TBC)
	default:
		return New(WotLK)
	}
}

// WithFields returns a copy bound to a specific update field table.
func (p *Parsers) WithFields(t *updatefield.Table) *Parsers {
	cp := *p
	cp.fields = t
	return &cp
}

// Format returns the wire format description.
func (p *Parsers) Format() Format {
	return p.format
}

func (p *Parsers) fieldTable() *updatefield.Table {
	if p.fields != nil {
		return p.fields
	}
	return updatefield.Active()
}

var active atomic.Pointer[Parsers]

// SetActive installs p as the process-wide parser set.
func SetActive(p *Parsers) {
	active.Store(p)
}

// Active returns the process-wide parser set, falling back to WotLK.
func Active() *Parsers {
	if p := active.Load(); p != nil {
		return p
	}
	return New(WotLK)
}
