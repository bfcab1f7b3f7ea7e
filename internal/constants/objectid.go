package constants

// GUID High Part Constants
//
// The top 16 bits of a 64-bit object GUID encode the object kind.
// Players carry zero in the high part.
const (
	HighGuidPlayer        = 0x0000
	HighGuidItem          = 0x4000
	HighGuidContainer     = 0x4000
	HighGuidGameObject    = 0xF110
	HighGuidTransport     = 0xF120
	HighGuidUnit          = 0xF130
	HighGuidPet           = 0xF140
	HighGuidVehicle       = 0xF150
	HighGuidDynamicObject = 0xF100
	HighGuidCorpse        = 0xF101
	HighGuidMOTransport   = 0x1FC0
)

// HighGuid returns the high 16 bits of guid.
func HighGuid(guid uint64) uint16 {
	return uint16(guid >> 48)
}

// IsPlayerGuid returns true if guid belongs to a player character.
func IsPlayerGuid(guid uint64) bool {
	return guid != 0 && HighGuid(guid) == HighGuidPlayer
}

// IsUnitGuid returns true for creatures, pets and vehicles.
func IsUnitGuid(guid uint64) bool {
	switch HighGuid(guid) {
	case HighGuidUnit, HighGuidPet, HighGuidVehicle:
		return true
	}
	return false
}

// IsGameObjectGuid returns true for game objects and both transport kinds.
func IsGameObjectGuid(guid uint64) bool {
	switch HighGuid(guid) {
	case HighGuidGameObject, HighGuidTransport, HighGuidMOTransport:
		return true
	}
	return false
}

// IsItemGuid returns true for items and containers.
func IsItemGuid(guid uint64) bool {
	return HighGuid(guid) == HighGuidItem
}

// GuidEntry extracts the creature/gameobject template entry (bits 24..47).
// Zero for players and items.
func GuidEntry(guid uint64) uint32 {
	if !IsUnitGuid(guid) && !IsGameObjectGuid(guid) {
		return 0
	}
	return uint32(guid>>24) & 0xFFFFFF
}
