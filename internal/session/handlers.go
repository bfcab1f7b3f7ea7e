package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/wowee/internal/constants"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
	"github.com/udisondev/wowee/internal/protocol/parsers"
)

// Event is one decoded inbound record delivered to the application.
// Record holds a pointer to the parsers type matching Opcode.
type Event struct {
	Opcode opcode.Op
	Record any
}

// EventFunc receives decoded records on the read goroutine.
type EventFunc func(ctx context.Context, s *Session, ev Event)

// decodeFunc adapts one parser to a HandlerFunc.
func decodeFunc[T any](op opcode.Op, parse func(*packet.Reader) (T, error), emit EventFunc) HandlerFunc {
	return func(ctx context.Context, s *Session, r *packet.Reader) error {
		rec, err := parse(r)
		if err != nil {
			return err
		}
		if emit != nil {
			emit(ctx, s, Event{Opcode: op, Record: rec})
		}
		return nil
	}
}

// RegisterWorldHandlers binds every world packet parser to its opcode.
// Decoded records are handed to emit; parse errors end the session.
func RegisterWorldHandlers(d *Dispatcher, p *parsers.Parsers, emit EventFunc) {
	d.Handle(opcode.SMsgCharEnum, decodeFunc(opcode.SMsgCharEnum, p.ParseCharEnum, emit))
	d.Handle(opcode.SMsgUpdateObject, decodeFunc(opcode.SMsgUpdateObject, p.ParseUpdateObject, emit))
	d.Handle(opcode.SMsgCompressedUpdateObject, compressedUpdateHandler(p, emit))
	d.Handle(opcode.SMsgDestroyObject, decodeFunc(opcode.SMsgDestroyObject, p.ParseDestroyObject, emit))
	d.Handle(opcode.SMsgMonsterMove, decodeFunc(opcode.SMsgMonsterMove, p.ParseMonsterMove, emit))
	d.Handle(opcode.SMsgAttackerstateupdate, decodeFunc(opcode.SMsgAttackerstateupdate, p.ParseAttackerStateUpdate, emit))
	d.Handle(opcode.SMsgSpellnonmeleedamagelog, decodeFunc(opcode.SMsgSpellnonmeleedamagelog, p.ParseSpellDamageLog, emit))
	d.Handle(opcode.SMsgInitialSpells, decodeFunc(opcode.SMsgInitialSpells, p.ParseInitialSpells, emit))
	d.Handle(opcode.SMsgCastFailed, decodeFunc(opcode.SMsgCastFailed, p.ParseCastFailed, emit))
	d.Handle(opcode.SMsgMessagechat, decodeFunc(opcode.SMsgMessagechat, p.ParseMessageChat, emit))
	d.Handle(opcode.SMsgNameQueryResponse, decodeFunc(opcode.SMsgNameQueryResponse, p.ParseNameQueryResponse, emit))
	d.Handle(opcode.SMsgGuildRoster, decodeFunc(opcode.SMsgGuildRoster, p.ParseGuildRoster, emit))
	d.Handle(opcode.SMsgGuildQueryResponse, decodeFunc(opcode.SMsgGuildQueryResponse, p.ParseGuildQueryResponse, emit))

	if p.Format().AuraUpdate {
		d.Handle(opcode.SMsgAuraUpdate, decodeFunc(opcode.SMsgAuraUpdate, func(r *packet.Reader) (*parsers.AuraUpdate, error) {
			return p.ParseAuraUpdate(r, false)
		}, emit))
		d.Handle(opcode.SMsgAuraUpdateAll, decodeFunc(opcode.SMsgAuraUpdateAll, func(r *packet.Reader) (*parsers.AuraUpdate, error) {
			return p.ParseAuraUpdate(r, true)
		}, emit))
	}
}

// Pinger keeps the connection alive and measures latency from SMSG_PONG.
type Pinger struct {
	interval time.Duration

	mu      sync.Mutex
	seq     uint32
	sentAt  time.Time
	latency time.Duration
}

// NewPinger creates a pinger with the given interval (default when zero).
func NewPinger(interval time.Duration) *Pinger {
	if interval <= 0 {
		interval = constants.DefaultPingInterval
	}
	return &Pinger{interval: interval}
}

// Latency returns the last measured round trip.
func (p *Pinger) Latency() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latency
}

// Register installs the SMSG_PONG handler.
func (p *Pinger) Register(d *Dispatcher) {
	d.Handle(opcode.SMsgPong, func(_ context.Context, s *Session, r *packet.Reader) error {
		seq, err := parsers.ParsePong(r)
		if err != nil {
			return err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if seq != p.seq {
			slog.Debug("stale pong", "session", s.ID(), "seq", seq, "want", p.seq)
			return nil
		}
		p.latency = time.Since(p.sentAt)
		slog.Debug("pong", "session", s.ID(), "seq", seq, "latency", p.latency)
		return nil
	})
}

// Run sends CMSG_PING every interval until the session or ctx ends.
// The latency reported in each ping is the last measured round trip.
func (p *Pinger) Run(ctx context.Context, s *Session) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.Done():
			return nil
		case <-ticker.C:
			p.mu.Lock()
			p.seq++
			p.sentAt = time.Now()
			pkt := parsers.BuildPing(p.seq, uint32(p.latency.Milliseconds()))
			p.mu.Unlock()
			if err := s.Send(pkt); err != nil {
				return err
			}
		}
	}
}
