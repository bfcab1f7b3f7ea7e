package opcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"
)

// Table maps logical opcodes to one expansion's wire values and back.
// Both maps are kept mutual inverses. A Table is read-only once activated.
type Table struct {
	toWire   map[Op]uint16
	fromWire map[uint16]Op
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		toWire:   make(map[Op]uint16),
		fromWire: make(map[uint16]Op),
	}
}

// Entry is one name/value pair of an opcode file, in file order.
type Entry struct {
	Name string
	Wire uint16
}

// LoadJSON replaces the table content with the mappings in path.
// Unknown names are ignored. On error the previous content is kept.
func (t *Table) LoadJSON(path string, aliases Aliases) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading opcode table %s: %w", path, err)
	}

	entries, err := ParseEntries(data)
	if err != nil {
		return 0, fmt.Errorf("parsing opcode table %s: %w", path, err)
	}

	toWire := make(map[Op]uint16, len(entries))
	fromWire := make(map[uint16]Op, len(entries))
	for _, e := range entries {
		op, ok := Parse(aliases.Canonical(e.Name))
		if !ok {
			continue
		}
		// Повторное значение: побеждает последнее имя, старое отображение удаляется.
		if prev, dup := fromWire[e.Wire]; dup && prev != op {
			delete(toWire, prev)
		}
		if prevWire, dup := toWire[op]; dup && prevWire != e.Wire {
			delete(fromWire, prevWire)
		}
		toWire[op] = e.Wire
		fromWire[e.Wire] = op
	}

	if len(toWire) == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	t.toWire = toWire
	t.fromWire = fromWire

	slog.Info("opcode table loaded", "path", path, "opcodes", len(toWire), "entries", len(entries))
	return len(toWire), nil
}

// ParseEntries decodes a flat {"NAME": "0xHEX"|int} object preserving key order.
// Values that are neither hex strings nor integers are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		wire, ok := parseWire(raw)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: key, Wire: wire})
	}
	return entries, nil
}

func parseWire(raw json.RawMessage) (uint16, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

// Set maps op to wire, removing any mapping that would break the inverse property.
func (t *Table) Set(op Op, wire uint16) {
	if prev, ok := t.fromWire[wire]; ok {
		delete(t.toWire, prev)
	}
	if prev, ok := t.toWire[op]; ok {
		delete(t.fromWire, prev)
	}
	t.toWire[op] = wire
	t.fromWire[wire] = op
}

// ToWire returns the wire value of op or Unmapped.
func (t *Table) ToWire(op Op) uint16 {
	if w, ok := t.toWire[op]; ok {
		return w
	}
	return Unmapped
}

// FromWire returns the logical opcode of a wire value.
func (t *Table) FromWire(wire uint16) (Op, bool) {
	op, ok := t.fromWire[wire]
	return op, ok
}

// Has reports whether op is mapped.
func (t *Table) Has(op Op) bool {
	_, ok := t.toWire[op]
	return ok
}

// Len returns the number of mapped opcodes.
func (t *Table) Len() int {
	return len(t.toWire)
}

var active atomic.Pointer[Table]

// SetActive installs t as the process-wide table.
func SetActive(t *Table) {
	active.Store(t)
}

// Active returns the process-wide table or nil.
func Active() *Table {
	return active.Load()
}

// Wire returns the active table's wire value for op, or Unmapped.
func Wire(op Op) uint16 {
	t := active.Load()
	if t == nil {
		return Unmapped
	}
	return t.ToWire(op)
}

// Lookup resolves a wire value through the active table.
func Lookup(wire uint16) (Op, error) {
	t := active.Load()
	if t == nil {
		return Invalid, ErrNoActiveTable
	}
	op, ok := t.FromWire(wire)
	if !ok {
		return Invalid, fmt.Errorf("wire 0x%04X: %w", wire, ErrUnknownOpcode)
	}
	return op, nil
}
