package opcode

import (
	"encoding/json"
	"fmt"
	"os"
)

// Aliases maps alternative server-side opcode names to canonical names.
type Aliases map[string]string

type aliasFile struct {
	Aliases map[string]string `json:"aliases"`
}

// LoadAliases reads Data/opcodes/aliases.json ({"aliases": {"ALT": "CANONICAL"}}).
// A missing file yields an empty alias set.
func LoadAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Aliases{}, nil
		}
		return nil, fmt.Errorf("reading aliases %s: %w", path, err)
	}

	var f aliasFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing aliases %s: %w", path, err)
	}
	if f.Aliases == nil {
		return Aliases{}, nil
	}
	return Aliases(f.Aliases), nil
}

// Canonical follows the alias chain starting at name.
// Cycles stop at the first repeated name.
func (a Aliases) Canonical(name string) string {
	if len(a) == 0 {
		return name
	}
	seen := make(map[string]struct{}, 2)
	cur := name
	for {
		next, ok := a[cur]
		if !ok {
			return cur
		}
		if _, loop := seen[cur]; loop {
			return cur
		}
		seen[cur] = struct{}{}
		cur = next
	}
}
