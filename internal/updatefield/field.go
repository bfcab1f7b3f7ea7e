package updatefield

import "fmt"

// Field is a logical update field, independent of any expansion's layout.
type Field uint16

const (
	Invalid Field = iota

	ObjectEntry

	UnitTargetLo
	UnitTargetHi
	UnitBytes0
	UnitHealth
	UnitPower1
	UnitMaxHealth
	UnitMaxPower1
	UnitLevel
	UnitFactionTemplate
	UnitFlags
	UnitFlags2
	UnitDisplayID
	UnitMountDisplayID
	UnitAuras
	UnitNpcFlags
	UnitDynamicFlags
	UnitEnd

	PlayerFlags
	PlayerBytes
	PlayerBytes2
	PlayerXP
	PlayerNextLevelXP
	PlayerCoinage
	PlayerQuestLogStart
	PlayerInvSlotHead
	PlayerPackSlot1
	PlayerSkillInfoStart
	PlayerExploredZonesStart

	GameObjectDisplayID

	ItemStackCount

	ContainerNumSlots
	ContainerSlot1

	numFields
)

var names = [numFields]string{
	ObjectEntry:              "OBJECT_FIELD_ENTRY",
	UnitTargetLo:             "UNIT_FIELD_TARGET_LO",
	UnitTargetHi:             "UNIT_FIELD_TARGET_HI",
	UnitBytes0:               "UNIT_FIELD_BYTES_0",
	UnitHealth:               "UNIT_FIELD_HEALTH",
	UnitPower1:               "UNIT_FIELD_POWER1",
	UnitMaxHealth:            "UNIT_FIELD_MAXHEALTH",
	UnitMaxPower1:            "UNIT_FIELD_MAXPOWER1",
	UnitLevel:                "UNIT_FIELD_LEVEL",
	UnitFactionTemplate:      "UNIT_FIELD_FACTIONTEMPLATE",
	UnitFlags:                "UNIT_FIELD_FLAGS",
	UnitFlags2:               "UNIT_FIELD_FLAGS_2",
	UnitDisplayID:            "UNIT_FIELD_DISPLAYID",
	UnitMountDisplayID:       "UNIT_FIELD_MOUNTDISPLAYID",
	UnitAuras:                "UNIT_FIELD_AURAS",
	UnitNpcFlags:             "UNIT_NPC_FLAGS",
	UnitDynamicFlags:         "UNIT_DYNAMIC_FLAGS",
	UnitEnd:                  "UNIT_END",
	PlayerFlags:              "PLAYER_FLAGS",
	PlayerBytes:              "PLAYER_BYTES",
	PlayerBytes2:             "PLAYER_BYTES_2",
	PlayerXP:                 "PLAYER_XP",
	PlayerNextLevelXP:        "PLAYER_NEXT_LEVEL_XP",
	PlayerCoinage:            "PLAYER_FIELD_COINAGE",
	PlayerQuestLogStart:      "PLAYER_QUEST_LOG_START",
	PlayerInvSlotHead:        "PLAYER_FIELD_INV_SLOT_HEAD",
	PlayerPackSlot1:          "PLAYER_FIELD_PACK_SLOT_1",
	PlayerSkillInfoStart:     "PLAYER_SKILL_INFO_START",
	PlayerExploredZonesStart: "PLAYER_EXPLORED_ZONES_START",
	GameObjectDisplayID:      "GAMEOBJECT_DISPLAYID",
	ItemStackCount:           "ITEM_FIELD_STACK_COUNT",
	ContainerNumSlots:        "CONTAINER_FIELD_NUM_SLOTS",
	ContainerSlot1:           "CONTAINER_FIELD_SLOT_1",
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(names))
	for f, name := range names {
		if name != "" {
			m[name] = Field(f)
		}
	}
	return m
}()

// String returns the canonical field name.
func (f Field) String() string {
	if f > Invalid && f < numFields {
		return names[f]
	}
	return fmt.Sprintf("UNKNOWN_FIELD(%d)", uint16(f))
}

// Parse resolves a canonical field name.
func Parse(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}

// wotlkDefaults: раскладка 3.3.5a (build 12340).
var wotlkDefaults = map[Field]uint16{
	ObjectEntry:              3,
	UnitTargetLo:             6,
	UnitTargetHi:             7,
	UnitBytes0:               56,
	UnitHealth:               24,
	UnitPower1:               25,
	UnitMaxHealth:            32,
	UnitMaxPower1:            33,
	UnitLevel:                54,
	UnitFactionTemplate:      55,
	UnitFlags:                59,
	UnitFlags2:               60,
	UnitDisplayID:            67,
	UnitMountDisplayID:       69,
	UnitNpcFlags:             82,
	UnitDynamicFlags:         147,
	UnitEnd:                  148,
	PlayerFlags:              150,
	PlayerBytes:              151,
	PlayerBytes2:             152,
	PlayerXP:                 634,
	PlayerNextLevelXP:        635,
	PlayerCoinage:            1170,
	PlayerQuestLogStart:      158,
	PlayerInvSlotHead:        324,
	PlayerPackSlot1:          370,
	PlayerSkillInfoStart:     636,
	PlayerExploredZonesStart: 1041,
	GameObjectDisplayID:      8,
	ItemStackCount:           14,
	ContainerNumSlots:        64,
	ContainerSlot1:           66,
}
