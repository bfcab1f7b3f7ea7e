package crypto

import (
	"crypto/hmac"
	"crypto/rc4"
	"crypto/sha1"
	"fmt"
)

// SessionKeySize is the size of the SRP6 session key negotiated by the auth server.
const SessionKeySize = 40

// LastRollingBuild is the newest build that uses the rolling header cipher.
// Later builds (WotLK) switched to ARC4.
const LastRollingBuild = 8606

// arc4Drop: сколько байт keystream отбрасывается после инициализации.
const arc4Drop = 1024

// HeaderCipher encrypts outgoing and decrypts incoming world packet headers in place.
// Implementations are stateful and must see every header byte exactly once, in order.
type HeaderCipher interface {
	Encrypt(header []byte)
	Decrypt(header []byte)
}

// NewHeaderCipher picks the header cipher used by the given client build.
func NewHeaderCipher(build uint16, sessionKey []byte) (HeaderCipher, error) {
	if build > LastRollingBuild {
		return NewARC4HeaderCipher(sessionKey)
	}
	if len(sessionKey) == 0 {
		return nil, fmt.Errorf("rolling header cipher: empty key: %w", ErrInvalidSessionKey)
	}
	return NewRollingCipher(sessionKey), nil
}

type rollState struct {
	index int
	prev  byte
}

// RollingCipher is the pre-WotLK header cipher.
//
//   - Encrypt: c = (p ^ key[i]) + prevC
//   - Decrypt: p = (c - prevC) ^ key[i]
//
// Each direction keeps its own (index, prev) pair. The key never changes.
type RollingCipher struct {
	key  []byte
	send rollState
	recv rollState
}

// NewRollingCipher creates a cipher keyed with a copy of key.
func NewRollingCipher(key []byte) *RollingCipher {
	k := make([]byte, len(key))
	copy(k, key)
	return &RollingCipher{key: k}
}

// Encrypt encrypts an outgoing header in place.
func (c *RollingCipher) Encrypt(data []byte) {
	if len(c.key) == 0 {
		return
	}
	s := &c.send
	for i := range data {
		x := (data[i] ^ c.key[s.index]) + s.prev
		s.index = (s.index + 1) % len(c.key)
		s.prev = x
		data[i] = x
	}
}

// Decrypt decrypts an incoming header in place.
func (c *RollingCipher) Decrypt(data []byte) {
	if len(c.key) == 0 {
		return
	}
	s := &c.recv
	for i := range data {
		enc := data[i]
		data[i] = (enc - s.prev) ^ c.key[s.index]
		s.index = (s.index + 1) % len(c.key)
		s.prev = enc
	}
}

// Client-side HMAC seeds for the WotLK header cipher.
var (
	arc4EncryptSeed = []byte{
		0xC2, 0xB3, 0x72, 0x3C, 0xC6, 0xAE, 0xD9, 0xB5,
		0x34, 0x3C, 0x53, 0xEE, 0x2F, 0x43, 0x67, 0xCE,
	}
	arc4DecryptSeed = []byte{
		0xCC, 0x98, 0xAE, 0x04, 0xE8, 0x97, 0xEA, 0xCA,
		0x12, 0xDD, 0xC0, 0x93, 0x42, 0x91, 0x53, 0x57,
	}
)

// ARC4HeaderCipher is the WotLK header cipher: RC4 keyed with
// HMAC-SHA1(seed, sessionKey), first 1024 keystream bytes dropped.
type ARC4HeaderCipher struct {
	enc *rc4.Cipher
	dec *rc4.Cipher
}

// NewARC4HeaderCipher creates the client side of the WotLK header cipher.
func NewARC4HeaderCipher(sessionKey []byte) (*ARC4HeaderCipher, error) {
	return newARC4HeaderCipher(arc4EncryptSeed, arc4DecryptSeed, sessionKey)
}

func newARC4HeaderCipher(encSeed, decSeed, sessionKey []byte) (*ARC4HeaderCipher, error) {
	if len(sessionKey) != SessionKeySize {
		return nil, fmt.Errorf("arc4 header cipher: key is %d bytes, want %d: %w",
			len(sessionKey), SessionKeySize, ErrInvalidSessionKey)
	}

	enc, err := droppedRC4(encSeed, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("arc4 encrypt state: %w", err)
	}
	dec, err := droppedRC4(decSeed, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("arc4 decrypt state: %w", err)
	}
	return &ARC4HeaderCipher{enc: enc, dec: dec}, nil
}

func droppedRC4(seed, sessionKey []byte) (*rc4.Cipher, error) {
	mac := hmac.New(sha1.New, seed)
	mac.Write(sessionKey)

	c, err := rc4.NewCipher(mac.Sum(nil))
	if err != nil {
		return nil, err
	}
	var drop [arc4Drop]byte
	c.XORKeyStream(drop[:], drop[:])
	return c, nil
}

// Encrypt encrypts an outgoing header in place.
func (c *ARC4HeaderCipher) Encrypt(data []byte) {
	c.enc.XORKeyStream(data, data)
}

// Decrypt decrypts an incoming header in place.
func (c *ARC4HeaderCipher) Decrypt(data []byte) {
	c.dec.XORKeyStream(data, data)
}
