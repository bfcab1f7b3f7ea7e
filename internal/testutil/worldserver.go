package testutil

import (
	"fmt"
	"net"
	"testing"

	"github.com/udisondev/wowee/internal/constants"
	"github.com/udisondev/wowee/internal/crypto"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
)

// WorldServer is the server end of a world connection for tests.
// It speaks the server framing (4-byte header out, 6-byte header in)
// and resolves opcodes through the active opcode table.
type WorldServer struct {
	t      testing.TB
	conn   net.Conn
	cipher crypto.HeaderCipher
}

// NewWorldServer wraps conn with a per-operation deadline of constants.TestPipeTimeout.
func NewWorldServer(t testing.TB, conn net.Conn) *WorldServer {
	t.Helper()
	return &WorldServer{
		t:    t,
		conn: NewConnWithDeadline(conn, constants.TestPipeTimeout),
	}
}

// SetCipher enables header encryption for both directions.
func (s *WorldServer) SetCipher(c crypto.HeaderCipher) {
	s.cipher = c
}

// Send writes one server packet.
func (s *WorldServer) Send(op opcode.Op, payload []byte) error {
	wire := opcode.Wire(op)
	if wire == opcode.Unmapped {
		return fmt.Errorf("test server: %s has no wire value", op)
	}
	return protocol.WriteServerPacket(s.conn, s.cipher, wire, payload)
}

// SendWire writes one server packet with a raw wire opcode.
func (s *WorldServer) SendWire(wire uint16, payload []byte) error {
	return protocol.WriteServerPacket(s.conn, s.cipher, wire, payload)
}

// Receive reads one client packet and maps its opcode.
func (s *WorldServer) Receive() (opcode.Op, []byte, error) {
	wire, payload, err := protocol.ReadClientPacket(s.conn, s.cipher)
	if err != nil {
		return opcode.Invalid, nil, err
	}
	if wire > 0xFFFF {
		return opcode.Invalid, nil, fmt.Errorf("test server: wire 0x%X out of range", wire)
	}
	op, err := opcode.Lookup(uint16(wire))
	if err != nil {
		return opcode.Invalid, nil, err
	}
	return op, payload, nil
}

// Expect reads one client packet and fails the test unless it carries op.
func (s *WorldServer) Expect(op opcode.Op) []byte {
	s.t.Helper()
	got, payload, err := s.Receive()
	if err != nil {
		s.t.Fatalf("reading %s: %v", op, err)
	}
	if got != op {
		s.t.Fatalf("expected %s, got %s", op, got)
	}
	return payload
}

// Close closes the server end.
func (s *WorldServer) Close() error {
	return s.conn.Close()
}
