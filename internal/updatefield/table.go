package updatefield

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"sync/atomic"
)

// Unknown is the index reported for fields the active layout does not carry.
const Unknown uint16 = 0xFFFF

var (
	// ErrUnknownField is returned when a logical field has no wire index.
	ErrUnknownField = errors.New("unknown update field")

	// ErrEmptyTable is returned when a JSON file maps no known field.
	ErrEmptyTable = errors.New("no update fields loaded")
)

// Table maps logical fields to one expansion's wire indices.
type Table struct {
	index   map[Field]uint16
	reverse map[uint16]Field
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		index:   make(map[Field]uint16),
		reverse: make(map[uint16]Field),
	}
}

// Defaults returns a table populated with the WotLK 3.3.5a layout.
func Defaults() *Table {
	t := NewTable()
	t.LoadDefaults()
	return t
}

// LoadDefaults replaces the content with the WotLK 3.3.5a layout.
func (t *Table) LoadDefaults() {
	t.set(maps.Clone(wotlkDefaults))
	slog.Debug("update field defaults loaded", "fields", len(t.index))
}

// LoadJSON replaces the content with {"NAME": int} pairs from path.
// Unknown names are ignored. If no known field is found the previous
// content is kept and ErrEmptyTable is returned.
func (t *Table) LoadJSON(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading update fields %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parsing update fields %s: %w", path, err)
	}

	loaded := make(map[Field]uint16, len(raw))
	for name, val := range raw {
		f, ok := Parse(name)
		if !ok {
			continue
		}
		var idx uint16
		if err := json.Unmarshal(val, &idx); err != nil {
			slog.Warn("skipping update field with bad index", "field", name, "err", err)
			continue
		}
		loaded[f] = idx
	}

	if len(loaded) == 0 {
		slog.Warn("no update fields loaded, keeping previous table", "path", path)
		return 0, fmt.Errorf("%s: %w", path, ErrEmptyTable)
	}

	t.set(loaded)
	slog.Info("update field table loaded", "path", path, "fields", len(loaded))
	return len(loaded), nil
}

func (t *Table) set(m map[Field]uint16) {
	rev := make(map[uint16]Field, len(m))
	for f, idx := range m {
		rev[idx] = f
	}
	t.index = m
	t.reverse = rev
}

// Index returns the wire index of f or Unknown.
func (t *Table) Index(f Field) uint16 {
	if idx, ok := t.index[f]; ok {
		return idx
	}
	return Unknown
}

// Lookup is Index with an error for unmapped fields.
func (t *Table) Lookup(f Field) (uint16, error) {
	idx, ok := t.index[f]
	if !ok {
		return Unknown, fmt.Errorf("%s: %w", f, ErrUnknownField)
	}
	return idx, nil
}

// Has reports whether f is mapped.
func (t *Table) Has(f Field) bool {
	_, ok := t.index[f]
	return ok
}

// Field returns the logical field stored at a wire index.
func (t *Table) Field(index uint16) (Field, bool) {
	f, ok := t.reverse[index]
	return f, ok
}

// Len returns the number of mapped fields.
func (t *Table) Len() int {
	return len(t.index)
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

// Index resolves f through the active table.
func Index(f Field) uint16 {
	t := active.Load()
	if t == nil {
		return Unknown
	}
	return t.Index(f)
}
