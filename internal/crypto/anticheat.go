package crypto

import (
	"crypto/rc4"
	"fmt"
	"log/slog"
	"sync"
)

// AntiCheatKeySize is the size of each direction's RC4 key.
const AntiCheatKeySize = 16

// AntiCheatCrypto is the RC4 pair protecting anti-cheat payloads.
// The zero value is uninitialised and passes data through unchanged.
type AntiCheatCrypto struct {
	mu  sync.Mutex
	enc *rc4.Cipher // client → server
	dec *rc4.Cipher // server → client
}

// NewAntiCheatCrypto derives both directions' keys from the session key.
func NewAntiCheatCrypto(sessionKey []byte) (*AntiCheatCrypto, error) {
	if len(sessionKey) != SessionKeySize {
		return nil, fmt.Errorf("anti-cheat crypto: key is %d bytes, want %d: %w",
			len(sessionKey), SessionKeySize, ErrInvalidSessionKey)
	}

	encKey, decKey := DeriveAntiCheatKeys(sessionKey)

	c := &AntiCheatCrypto{}
	if err := c.ReplaceKeys(encKey[:], decKey[:]); err != nil {
		return nil, err
	}
	return c, nil
}

// DeriveAntiCheatKeys expands the session key with SHA1Randx:
// first 16 bytes are the client→server key, the next 16 server→client.
func DeriveAntiCheatKeys(sessionKey []byte) (enc, dec [AntiCheatKeySize]byte) {
	g := NewSHA1Randx(sessionKey)
	g.Generate(enc[:])
	g.Generate(dec[:])
	return enc, dec
}

// ReplaceKeys re-keys both directions at once.
// Used after the module hash exchange hands out module-specific keys.
func (c *AntiCheatCrypto) ReplaceKeys(encKey, decKey []byte) error {
	enc, err := rc4.NewCipher(encKey)
	if err != nil {
		return fmt.Errorf("anti-cheat encrypt key: %w", err)
	}
	dec, err := rc4.NewCipher(decKey)
	if err != nil {
		return fmt.Errorf("anti-cheat decrypt key: %w", err)
	}

	c.mu.Lock()
	c.enc = enc
	c.dec = dec
	c.mu.Unlock()
	return nil
}

// Initialized reports whether keys have been installed.
func (c *AntiCheatCrypto) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enc != nil
}

// Encrypt returns data encrypted with the client→server stream.
func (c *AntiCheatCrypto) Encrypt(data []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return process(c.enc, data, "encrypt")
}

// Decrypt returns data decrypted with the server→client stream.
func (c *AntiCheatCrypto) Decrypt(data []byte) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return process(c.dec, data, "decrypt")
}

func process(s *rc4.Cipher, data []byte, op string) []byte {
	out := make([]byte, len(data))
	if s == nil {
		slog.Warn("anti-cheat crypto used before initialization", "op", op)
		copy(out, data)
		return out
	}
	s.XORKeyStream(out, data)
	return out
}
