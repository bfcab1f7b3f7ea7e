package warden

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PatchSet is a build-gated list of writes into otherwise-zero BSS.
// A set applies only to an image whose ImageBase and SizeOfImage both match.
type PatchSet struct {
	Name        string  `yaml:"name"`
	Build       uint16  `yaml:"build"`
	ImageBase   uint32  `yaml:"image_base"`
	SizeOfImage uint32  `yaml:"size_of_image"`
	Patches     []Patch `yaml:"patches"`
}

// Patch writes Bytes (hex) at virtual address VA.
type Patch struct {
	VA    uint32 `yaml:"va"`
	Bytes string `yaml:"bytes"`
	Note  string `yaml:"note"`
}

type patchFile struct {
	Images []PatchSet `yaml:"images"`
}

// LoadPatchTable reads a YAML patch table. A missing file yields no sets,
// which leaves every image unpatched.
func LoadPatchTable(path string) ([]PatchSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading patch table %s: %w", path, err)
	}

	var f patchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing patch table %s: %w", path, err)
	}

	for i, set := range f.Images {
		if set.ImageBase == 0 || set.SizeOfImage == 0 {
			return nil, fmt.Errorf("patch set %d (%q): image_base and size_of_image are required", i, set.Name)
		}
		for j, p := range set.Patches {
			if _, err := hex.DecodeString(p.Bytes); err != nil {
				return nil, fmt.Errorf("patch set %q, patch %d: bad bytes: %w", set.Name, j, err)
			}
		}
	}
	return f.Images, nil
}

// MatchPatchSet returns the first set keyed to imageBase and sizeOfImage.
func MatchPatchSet(sets []PatchSet, imageBase, sizeOfImage uint32) (PatchSet, bool) {
	for _, s := range sets {
		if s.ImageBase == imageBase && s.SizeOfImage == sizeOfImage {
			return s, true
		}
	}
	return PatchSet{}, false
}

// ExpectedSizeOfImage returns the SizeOfImage of the first set for build, or 0.
func ExpectedSizeOfImage(sets []PatchSet, build uint16) uint32 {
	for _, s := range sets {
		if s.Build == build {
			return s.SizeOfImage
		}
	}
	return 0
}

// applyPatches writes every patch. Targets must be inside the image and
// still zero; anything else means the table does not describe this binary.
func (m *MemoryImage) applyPatches(set PatchSet) (int, error) {
	for i, p := range set.Patches {
		b, err := hex.DecodeString(p.Bytes)
		if err != nil {
			return 0, fmt.Errorf("patch %d: %w", i, err)
		}
		if p.VA < m.imageBase {
			return 0, fmt.Errorf("patch %d at 0x%08X below image base", i, p.VA)
		}
		off := uint64(p.VA - m.imageBase)
		if off+uint64(len(b)) > uint64(len(m.image)) {
			return 0, fmt.Errorf("patch %d at 0x%08X outside image", i, p.VA)
		}
		for _, x := range m.image[off : off+uint64(len(b))] {
			if x != 0 {
				return 0, fmt.Errorf("patch %d at 0x%08X overwrites non-zero data", i, p.VA)
			}
		}
		copy(m.image[off:], b)
	}
	return len(set.Patches), nil
}
