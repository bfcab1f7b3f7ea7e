package opcode

import "errors"

var (
	// ErrUnknownOpcode is returned when a wire value has no logical mapping.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrEmptyTable is returned when a JSON file yields no known opcodes.
	ErrEmptyTable = errors.New("no opcodes loaded")

	// ErrNoActiveTable is returned when no table was activated yet.
	ErrNoActiveTable = errors.New("no active opcode table")
)
