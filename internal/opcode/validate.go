package opcode

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Report describes the problems found in one expansion's opcode file.
type Report struct {
	Expansion  string
	Path       string
	Entries    int
	Mapped     int
	Unknown    []string
	Duplicates map[uint16][]string
}

// OK reports whether the file has no problems.
func (r Report) OK() bool {
	return len(r.Unknown) == 0 && len(r.Duplicates) == 0
}

// Validate checks every expansionsDir/*/opcodes.json: each key must resolve
// (directly or through aliases) to a known logical opcode, and no wire value
// may be claimed by two different logical opcodes.
func Validate(expansionsDir string, aliases Aliases) ([]Report, error) {
	paths, err := filepath.Glob(filepath.Join(expansionsDir, "*", "opcodes.json"))
	if err != nil {
		return nil, fmt.Errorf("globbing opcode files: %w", err)
	}
	slices.Sort(paths)

	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		entries, err := ParseEntries(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		rep := Report{
			Expansion:  filepath.Base(filepath.Dir(path)),
			Path:       path,
			Entries:    len(entries),
			Duplicates: make(map[uint16][]string),
		}

		owners := make(map[uint16]Op)
		claimed := make(map[uint16][]string)
		for _, e := range entries {
			op, ok := Parse(aliases.Canonical(e.Name))
			if !ok {
				rep.Unknown = append(rep.Unknown, e.Name)
				continue
			}
			rep.Mapped++
			claimed[e.Wire] = append(claimed[e.Wire], e.Name)
			if prev, dup := owners[e.Wire]; dup && prev != op {
				rep.Duplicates[e.Wire] = claimed[e.Wire]
			}
			owners[e.Wire] = op
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
