package opcode

import "fmt"

// Unmapped is the wire value reported for logical opcodes absent from the table.
const Unmapped uint16 = 0xFFFF

var byName = func() map[string]Op {
	m := make(map[string]Op, len(names))
	for op, name := range names {
		if name != "" {
			m[name] = Op(op)
		}
	}
	return m
}()

// String returns the canonical protocol name, e.g. "CMSG_PING".
func (op Op) String() string {
	if op > Invalid && op < numOps {
		return names[op]
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(op))
}

// Valid reports whether op is a known logical opcode.
func (op Op) Valid() bool {
	return op > Invalid && op < numOps
}

// Parse resolves a canonical protocol name to its logical opcode.
func Parse(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// All returns every logical opcode in declaration order.
func All() []Op {
	ops := make([]Op, 0, numOps-1)
	for op := Invalid + 1; op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}
