package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wowee/internal/constants"
	"github.com/udisondev/wowee/internal/crypto"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
)

// Config holds per-connection limits. Zero values fall back to defaults.
type Config struct {
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	SendQueueSize int
}

func (c Config) withDefaults() Config {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = constants.DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = constants.DefaultWriteTimeout
	}
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = constants.DefaultSendQueueSize
	}
	return c
}

// outgoing is one entry of the send queue. An entry with setCipher only
// switches the header cipher; packets queued after it are encrypted.
type outgoing struct {
	pkt       protocol.Packet
	cipher    crypto.HeaderCipher
	setCipher bool
}

// Session is one world server connection.
//
// Reads happen on the goroutine running Run; all handlers execute there.
// Writes go through a bounded queue drained by a single write pump, so header
// cipher state for each direction is touched by exactly one goroutine.
type Session struct {
	id     uuid.UUID
	conn   net.Conn
	remote string
	cfg    Config

	dispatcher *Dispatcher

	// recvCipher is owned by the read goroutine.
	recvCipher crypto.HeaderCipher
	anticheat  atomic.Pointer[crypto.AntiCheatCrypto]

	sendCh    chan outgoing
	closeCh   chan struct{}
	closeOnce sync.Once

	received atomic.Uint64
	sent     atomic.Uint64
}

// New wraps conn. Headers travel in clear until EnableEncryption.
func New(conn net.Conn, d *Dispatcher, cfg Config) *Session {
	cfg = cfg.withDefaults()
	if d == nil {
		d = NewDispatcher()
	}
	return &Session{
		id:         uuid.New(),
		conn:       conn,
		remote:     conn.RemoteAddr().String(),
		cfg:        cfg,
		dispatcher: d,
		sendCh:     make(chan outgoing, cfg.SendQueueSize),
		closeCh:    make(chan struct{}),
	}
}

// Dial connects to a world server and wraps the connection.
func Dial(ctx context.Context, addr string, d *Dispatcher, cfg Config) (*Session, error) {
	dialer := net.Dialer{KeepAlive: 30 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing world server %s: %w", addr, err)
	}
	return New(conn, d, cfg), nil
}

// ID returns the session id used in logs.
func (s *Session) ID() string {
	return s.id.String()
}

// RemoteAddr returns the server address.
func (s *Session) RemoteAddr() string {
	return s.remote
}

// Stats returns the number of packets received and sent so far.
func (s *Session) Stats() (received, sent uint64) {
	return s.received.Load(), s.sent.Load()
}

// EnableEncryption installs the header cipher for both directions.
// Inbound headers are decrypted starting with the next packet; outbound
// headers starting with the next packet queued after this call.
// Must be called from a handler (the read goroutine).
func (s *Session) EnableEncryption(c crypto.HeaderCipher) error {
	s.recvCipher = c
	return s.enqueue(outgoing{cipher: c, setCipher: true})
}

// SetAntiCheat installs the crypto used for anti-cheat payloads in both directions.
func (s *Session) SetAntiCheat(c *crypto.AntiCheatCrypto) {
	s.anticheat.Store(c)
}

// Send queues a packet for async delivery.
// Non-blocking: a full queue closes the session (slow consumer).
func (s *Session) Send(pkt protocol.Packet) error {
	return s.enqueue(outgoing{pkt: pkt})
}

func (s *Session) enqueue(o outgoing) error {
	select {
	case <-s.closeCh:
		return ErrClosed
	default:
	}

	select {
	case s.sendCh <- o:
		return nil
	default:
		slog.Warn("send queue full, closing session", "session", s.ID(), "remote", s.remote)
		s.CloseAsync()
		return ErrSendQueueFull
	}
}

// SendSync queues a packet and blocks until accepted, timeout or close.
func (s *Session) SendSync(pkt protocol.Packet, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s.sendCh <- outgoing{pkt: pkt}:
		return nil
	case <-timer.C:
		return fmt.Errorf("%s after %v: %w", pkt.Opcode, timeout, ErrSendTimeout)
	case <-s.closeCh:
		return ErrClosed
	}
}

// CloseAsync signals both loops to stop without blocking.
// Safe to call multiple times.
func (s *Session) CloseAsync() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
		// разблокирует ReadFull и Write, висящие на соединении
		_ = s.conn.SetReadDeadline(time.Now())
		_ = s.conn.SetWriteDeadline(time.Now())
	})
}

// Close stops the session and closes the connection.
func (s *Session) Close() error {
	s.CloseAsync()
	return s.conn.Close()
}

// Done is closed once the session starts shutting down.
func (s *Session) Done() <-chan struct{} {
	return s.closeCh
}

// Run starts the write pump and runs the read loop until the connection ends,
// ctx is cancelled, or a handler fails. A clean remote close returns nil.
func (s *Session) Run(ctx context.Context) error {
	slog.Info("world session started", "session", s.ID(), "remote", s.remote)
	defer s.conn.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			s.CloseAsync()
		case <-s.closeCh:
		}
		return nil
	})
	g.Go(func() error {
		defer s.CloseAsync()
		return s.writePump()
	})
	g.Go(func() error {
		defer s.CloseAsync()
		return s.readLoop(gctx)
	})

	err := g.Wait()
	received, sent := s.Stats()
	if err != nil {
		slog.Error("world session ended", "session", s.ID(), "remote", s.remote,
			"received", received, "sent", sent, "error", err)
		return err
	}
	slog.Info("world session closed", "session", s.ID(), "remote", s.remote,
		"received", received, "sent", sent)
	return nil
}

func (s *Session) closing() bool {
	select {
	case <-s.closeCh:
		return true
	default:
		return false
	}
}

func (s *Session) readLoop(ctx context.Context) error {
	buf := readPool.get(constants.MaxPacketSize)
	defer readPool.put(buf)

	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			if s.closing() {
				return nil
			}
			return fmt.Errorf("setting read deadline: %w", err)
		}
		if s.closing() {
			return nil
		}

		wire, payload, err := protocol.ReadPacket(s.conn, s.recvCipher, buf)
		if err != nil {
			if s.closing() || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading packet: %w", err)
		}
		s.received.Add(1)

		if err := s.handlePacket(ctx, wire, payload); err != nil {
			return err
		}
	}
}

func (s *Session) handlePacket(ctx context.Context, wire uint16, payload []byte) error {
	op, err := opcode.Lookup(wire)
	if err != nil {
		slog.Debug("skipping unmapped opcode", "session", s.ID(), "wire", fmt.Sprintf("0x%04X", wire), "size", len(payload))
		return nil
	}

	if op == opcode.SMsgWardenData {
		if ac := s.anticheat.Load(); ac != nil {
			payload = ac.Decrypt(payload)
		}
	}

	if err := s.dispatcher.Dispatch(ctx, s, op, payload); err != nil {
		return fmt.Errorf("handling %s: %w", op, err)
	}
	return nil
}

func (s *Session) writePump() error {
	var cipher crypto.HeaderCipher

	for {
		select {
		case o := <-s.sendCh:
			if o.setCipher {
				cipher = o.cipher
				continue
			}
			if err := s.writePacket(cipher, o.pkt); err != nil {
				if s.closing() {
					return nil
				}
				return err
			}
		case <-s.closeCh:
			return nil
		}
	}
}

func (s *Session) writePacket(cipher crypto.HeaderCipher, pkt protocol.Packet) error {
	wire := opcode.Wire(pkt.Opcode)
	if wire == opcode.Unmapped {
		slog.Warn("dropping packet with unmapped opcode", "session", s.ID(), "opcode", pkt.Opcode)
		return nil
	}

	payload := pkt.Payload
	if pkt.Opcode == opcode.CMsgWardenData {
		if ac := s.anticheat.Load(); ac != nil {
			payload = ac.Encrypt(payload)
		}
	}

	buf := writePool.frame(len(payload))
	defer writePool.put(buf)
	copy(buf[constants.ClientHeaderSize:], payload)

	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return fmt.Errorf("setting write deadline: %w", err)
	}
	if s.closing() {
		return nil
	}
	if err := protocol.WritePacket(s.conn, cipher, buf, wire, len(payload)); err != nil {
		return fmt.Errorf("sending %s: %w", pkt.Opcode, err)
	}
	s.sent.Add(1)
	return nil
}
