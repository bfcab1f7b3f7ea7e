package expansion

import (
	"fmt"
	"path/filepath"
)

// Version is the client version triple.
type Version struct {
	Major uint8 `json:"major"`
	Minor uint8 `json:"minor"`
	Patch uint8 `json:"patch"`
}

// Profile describes one supported game version.
// Profiles are immutable after discovery.
type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ShortName       string   `json:"shortName"`
	Version         Version  `json:"version"`
	Build           uint16   `json:"build"`
	WorldBuild      uint16   `json:"worldBuild"`
	ProtocolVersion uint8    `json:"protocolVersion"`
	Game            string   `json:"game"`
	Platform        string   `json:"platform"`
	OS              string   `json:"os"`
	Locale          string   `json:"locale"`
	Timezone        uint32   `json:"timezone"`
	MaxLevel        uint32   `json:"maxLevel"`
	Races           []uint32 `json:"races"`
	Classes         []uint32 `json:"classes"`

	// Выводятся из расположения каталога, в JSON не читаются.
	DataPath      string `json:"-"`
	AssetManifest string `json:"-"`
}

// VersionString formats the version the way the client shows it ("3.3.5a").
func (p *Profile) VersionString() string {
	s := fmt.Sprintf("%d.%d.%d", p.Version.Major, p.Version.Minor, p.Version.Patch)
	if p.Version.Major == 3 && p.Version.Minor == 3 && p.Version.Patch == 5 {
		s += "a"
	}
	return s
}

// EffectiveWorldBuild returns the build announced to the world server.
func (p *Profile) EffectiveWorldBuild() uint16 {
	if p.WorldBuild != 0 {
		return p.WorldBuild
	}
	return p.Build
}

// OpcodesPath returns the path of the profile's opcode table.
func (p *Profile) OpcodesPath() string {
	return filepath.Join(p.DataPath, "opcodes.json")
}

// UpdateFieldsPath returns the path of the profile's update-field table.
func (p *Profile) UpdateFieldsPath() string {
	return filepath.Join(p.DataPath, "update_fields.json")
}

// AllowsRace reports whether race is playable in this version.
// An empty list allows everything.
func (p *Profile) AllowsRace(race uint32) bool {
	return len(p.Races) == 0 || contains(p.Races, race)
}

// AllowsClass reports whether class is playable in this version.
func (p *Profile) AllowsClass(class uint32) bool {
	return len(p.Classes) == 0 || contains(p.Classes, class)
}

func contains(list []uint32, v uint32) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
