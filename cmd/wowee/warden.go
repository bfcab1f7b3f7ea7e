package main

import (
	"context"
	"crypto/md5"
	"log/slog"
	"sync"

	"github.com/udisondev/wowee/internal/crypto"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol"
	"github.com/udisondev/wowee/internal/protocol/packet"
	"github.com/udisondev/wowee/internal/session"
	"github.com/udisondev/wowee/internal/warden"
)

// Server → client anti-cheat commands.
const (
	wardenModuleUse   = 0x00
	wardenModuleCache = 0x01
	wardenCheatChecks = 0x02
	wardenInitialize  = 0x03
	wardenHashRequest = 0x05
)

// Client → server replies.
const (
	wardenModuleMissing = 0x00
	wardenModuleOK      = 0x01
)

// wardenHandler downloads and verifies modules. Checks that would need the
// module's native code, memory checks included, are logged and left unanswered.
type wardenHandler struct {
	cache    *warden.ModuleCache
	verifier *crypto.ModuleVerifier

	mu      sync.Mutex
	md5     [md5.Size]byte
	rc4Key  []byte
	size    uint32
	current *warden.Module
}

func (h *wardenHandler) register(d *session.Dispatcher) {
	d.Handle(opcode.SMsgWardenData, h.handle)
}

func (h *wardenHandler) handle(_ context.Context, s *session.Session, r *packet.Reader) error {
	cmd, err := r.ReadUint8()
	if err != nil {
		return err
	}

	switch cmd {
	case wardenModuleUse:
		return h.moduleUse(s, r)
	case wardenModuleCache:
		return h.moduleChunk(s, r)
	case wardenCheatChecks, wardenInitialize, wardenHashRequest:
		h.mu.Lock()
		loaded := h.current != nil
		h.mu.Unlock()
		slog.Debug("warden request ignored", "session", s.ID(), "cmd", cmd, "size", r.Remaining(), "module_loaded", loaded)
	default:
		slog.Warn("unknown warden command", "session", s.ID(), "cmd", cmd)
	}
	return nil
}

func (h *wardenHandler) moduleUse(s *session.Session, r *packet.Reader) error {
	sum, err := r.ReadBytes(md5.Size)
	if err != nil {
		return err
	}
	key, err := r.ReadBytes(16)
	if err != nil {
		return err
	}
	size, err := r.ReadUint32()
	if err != nil {
		return err
	}

	h.mu.Lock()
	copy(h.md5[:], sum)
	h.rc4Key = append(h.rc4Key[:0], key...)
	h.size = size
	h.current = nil
	h.mu.Unlock()

	if blob, ok := h.cache.Load(h.md5); ok {
		slog.Info("warden module cached", "session", s.ID(), "md5", sum)
		return h.finish(s, blob)
	}
	slog.Info("warden module download requested", "session", s.ID(), "size", size)
	return s.Send(protocol.Packet{Opcode: opcode.CMsgWardenData, Payload: []byte{wardenModuleMissing}})
}

func (h *wardenHandler) moduleChunk(s *session.Session, r *packet.Reader) error {
	n, err := r.ReadUint16()
	if err != nil {
		return err
	}
	chunk, err := r.ReadBytes(int(n))
	if err != nil {
		return err
	}

	h.mu.Lock()
	sum, want := h.md5, h.size
	h.mu.Unlock()

	if got := h.cache.AddChunk(sum, chunk); uint32(got) < want {
		return nil
	}
	blob, err := h.cache.Complete(sum)
	if err != nil {
		slog.Error("warden module download failed", "session", s.ID(), "err", err)
		return nil
	}
	return h.finish(s, blob)
}

func (h *wardenHandler) finish(s *session.Session, blob []byte) error {
	h.mu.Lock()
	sum, key := h.md5, h.rc4Key
	h.mu.Unlock()

	m, err := warden.LoadModule(blob, sum, key, h.verifier)
	if err != nil {
		slog.Error("warden module rejected", "session", s.ID(), "err", err)
		return nil
	}
	h.mu.Lock()
	h.current = m
	h.mu.Unlock()

	slog.Info("warden module loaded", "session", s.ID(), "signed", m.Signed, "size", len(m.Image))
	return s.Send(protocol.Packet{Opcode: opcode.CMsgWardenData, Payload: []byte{wardenModuleOK}})
}
