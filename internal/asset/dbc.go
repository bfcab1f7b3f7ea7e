package asset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
)

const (
	dbcMagic      = "WDBC"
	dbcHeaderSize = 20
)

// DBC is a client database table: fixed-size records of 4-byte fields plus a
// string block. Immutable once loaded.
type DBC struct {
	recordCount uint32
	fieldCount  uint32
	recordSize  uint32
	records     []byte
	strings     []byte

	idOnce sync.Once
	ids    map[uint32]int
}

// ParseDBC decodes a binary WDBC table or its CSV export.
func ParseDBC(data []byte) (*DBC, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty data: %w", ErrInvalidDBC)
	}
	if data[0] == '#' {
		return parseDBCCSV(data)
	}
	if len(data) < dbcHeaderSize {
		return nil, fmt.Errorf("%d bytes: %w", len(data), ErrInvalidDBC)
	}
	if string(data[:4]) != dbcMagic {
		return nil, fmt.Errorf("magic %q: %w", data[:4], ErrInvalidDBC)
	}

	d := &DBC{
		recordCount: binary.LittleEndian.Uint32(data[4:]),
		fieldCount:  binary.LittleEndian.Uint32(data[8:]),
		recordSize:  binary.LittleEndian.Uint32(data[12:]),
	}
	stringSize := uint64(binary.LittleEndian.Uint32(data[16:]))
	recordBytes := uint64(d.recordCount) * uint64(d.recordSize)
	if want := dbcHeaderSize + recordBytes + stringSize; uint64(len(data)) < want {
		return nil, fmt.Errorf("truncated: want %d bytes, have %d: %w", want, len(data), ErrInvalidDBC)
	}
	if d.recordSize < d.fieldCount*4 {
		return nil, fmt.Errorf("record size %d below %d fields: %w", d.recordSize, d.fieldCount, ErrInvalidDBC)
	}
	if d.recordSize != d.fieldCount*4 {
		slog.Warn("dbc record size mismatch", "record_size", d.recordSize, "fields", d.fieldCount)
	}

	d.records = data[dbcHeaderSize : dbcHeaderSize+recordBytes]
	d.strings = data[dbcHeaderSize+recordBytes : dbcHeaderSize+recordBytes+stringSize]
	return d, nil
}

// parseDBCCSV reads the text export:
//
//	# fields=N strings=I,J,K
//	1,"Name",3
//
// String columns are quoted with "" escapes; numbers may be unsigned,
// signed or float.
func parseDBCCSV(data []byte) (*DBC, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 16<<20)
	if !sc.Scan() {
		return nil, fmt.Errorf("csv: missing metadata line: %w", ErrInvalidDBC)
	}
	meta := sc.Text()

	var fields uint32
	stringCols := make(map[int]bool)
	for _, tok := range strings.Fields(strings.TrimPrefix(meta, "#")) {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		switch key {
		case "fields":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("csv: fields=%q: %w", val, ErrInvalidDBC)
			}
			fields = uint32(n)
		case "strings":
			for _, c := range strings.Split(val, ",") {
				c = strings.TrimSpace(c)
				if c == "" {
					continue
				}
				n, err := strconv.Atoi(c)
				if err != nil {
					slog.Warn("csv dbc: bad string column", "token", c)
					continue
				}
				stringCols[n] = true
			}
		}
	}
	if fields == 0 {
		return nil, fmt.Errorf("csv: invalid field count: %w", ErrInvalidDBC)
	}

	d := &DBC{fieldCount: fields, recordSize: fields * 4}
	strBlock := []byte{0}
	var records []byte

	row := make([]byte, d.recordSize)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		clear(row)
		pos := 0
		for col := 0; col < int(fields) && pos < len(line); col++ {
			var v uint32
			if stringCols[col] && line[pos] == '"' {
				var s string
				s, pos = readQuoted(line, pos+1)
				if s != "" {
					v = uint32(len(strBlock))
					strBlock = append(strBlock, s...)
					strBlock = append(strBlock, 0)
				}
			} else {
				end := strings.IndexByte(line[pos:], ',')
				if end < 0 {
					end = len(line) - pos
				}
				v = parseCSVNumber(line[pos : pos+end])
				pos += end + 1
			}
			binary.LittleEndian.PutUint32(row[col*4:], v)
		}
		records = append(records, row...)
		d.recordCount++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	d.records = records
	d.strings = strBlock
	return d, nil
}

// readQuoted reads a quoted field starting after the opening quote and
// returns the value and the position after the trailing comma.
func readQuoted(line string, pos int) (string, int) {
	var sb strings.Builder
	for pos < len(line) {
		c := line[pos]
		if c == '"' {
			if pos+1 < len(line) && line[pos+1] == '"' {
				sb.WriteByte('"')
				pos += 2
				continue
			}
			pos++
			break
		}
		sb.WriteByte(c)
		pos++
	}
	if pos < len(line) && line[pos] == ',' {
		pos++
	}
	return sb.String(), pos
}

func parseCSVNumber(tok string) uint32 {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0
	}
	if u, err := strconv.ParseUint(tok, 10, 32); err == nil {
		return uint32(u)
	}
	if i, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return uint32(int32(i))
	}
	if f, err := strconv.ParseFloat(tok, 32); err == nil {
		return math.Float32bits(float32(f))
	}
	slog.Debug("csv dbc: bad number", "token", tok)
	return 0
}

// RecordCount returns the number of records.
func (d *DBC) RecordCount() int { return int(d.recordCount) }

// FieldCount returns the number of 4-byte fields per record.
func (d *DBC) FieldCount() int { return int(d.fieldCount) }

// Uint32 returns a field, or 0 when out of range.
func (d *DBC) Uint32(record, field int) uint32 {
	if record < 0 || field < 0 || record >= int(d.recordCount) || field >= int(d.fieldCount) {
		return 0
	}
	off := record*int(d.recordSize) + field*4
	return binary.LittleEndian.Uint32(d.records[off:])
}

// Int32 returns a field as signed.
func (d *DBC) Int32(record, field int) int32 {
	return int32(d.Uint32(record, field))
}

// Float32 returns a field as float.
func (d *DBC) Float32(record, field int) float32 {
	return math.Float32frombits(d.Uint32(record, field))
}

// String returns the string a field points to.
func (d *DBC) String(record, field int) string {
	return d.StringAt(d.Uint32(record, field))
}

// StringAt returns the NUL-terminated string at offset in the string block.
func (d *DBC) StringAt(offset uint32) string {
	if uint64(offset) >= uint64(len(d.strings)) {
		return ""
	}
	s := d.strings[offset:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// FindByID returns the record index whose first field equals id.
func (d *DBC) FindByID(id uint32) (int, bool) {
	d.idOnce.Do(func() {
		d.ids = make(map[uint32]int, d.recordCount)
		for i := range int(d.recordCount) {
			d.ids[d.Uint32(i, 0)] = i
		}
	})
	i, ok := d.ids[id]
	return i, ok
}
