package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/wowee/internal/opcode"
)

func TestPrintReports(t *testing.T) {
	reports := []opcode.Report{
		{Expansion: "classic", Path: "classic/opcodes.json", Entries: 3, Mapped: 3},
		{
			Expansion:  "tbc",
			Path:       "tbc/opcodes.json",
			Entries:    4,
			Mapped:     3,
			Unknown:    []string{"SMSG_BOGUS"},
			Duplicates: map[uint16][]string{0x1DC: {"CMSG_PING", "SMSG_PONG"}},
		},
	}

	var buf bytes.Buffer
	failed := printReports(&buf, reports, true)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "ok   classic")
	assert.Contains(t, out, "FAIL tbc")
	assert.Contains(t, out, "unknown opcode name SMSG_BOGUS")
	assert.Contains(t, out, "wire 0x1DC claimed by CMSG_PING, SMSG_PONG")
	assert.Contains(t, out, "2 expansions checked, 1 failed")
}
