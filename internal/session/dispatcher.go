package session

import (
	"context"
	"log/slog"

	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
)

// HandlerFunc processes one inbound packet. The reader is only valid for the
// duration of the call. A returned error terminates the connection.
type HandlerFunc func(ctx context.Context, s *Session, r *packet.Reader) error

// Dispatcher routes inbound packets by logical opcode.
// Registration happens before the session starts; lookups are read-only afterwards.
type Dispatcher struct {
	handlers map[opcode.Op]HandlerFunc
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[opcode.Op]HandlerFunc)}
}

// Handle registers h for op, replacing any previous handler.
func (d *Dispatcher) Handle(op opcode.Op, h HandlerFunc) {
	d.handlers[op] = h
}

// Has reports whether op has a handler.
func (d *Dispatcher) Has(op opcode.Op) bool {
	_, ok := d.handlers[op]
	return ok
}

// Dispatch runs the handler for op. Opcodes without a handler are skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, s *Session, op opcode.Op, payload []byte) error {
	h, ok := d.handlers[op]
	if !ok {
		slog.Debug("unhandled opcode", "session", s.ID(), "opcode", op, "size", len(payload))
		return nil
	}
	return h(ctx, s, packet.NewReader(payload))
}
