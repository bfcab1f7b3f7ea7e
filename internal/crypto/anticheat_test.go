package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAntiCheatKeys_KnownVector(t *testing.T) {
	enc, dec := DeriveAntiCheatKeys(sessionKey())

	assert.Equal(t, "e711c90e3921b9725e3ccc8673099955", hex.EncodeToString(enc[:]))
	assert.Equal(t, "96d79bec6044480918ee080579d8901a", hex.EncodeToString(dec[:]))
}

func TestSHA1Randx_ChunkingIndependent(t *testing.T) {
	a := NewSHA1Randx(sessionKey())
	whole := make([]byte, 50)
	a.Generate(whole)

	b := NewSHA1Randx(sessionKey())
	var parts []byte
	for _, n := range []int{3, 17, 1, 29} {
		p := make([]byte, n)
		b.Generate(p)
		parts = append(parts, p...)
	}
	assert.Equal(t, whole, parts)
}

func TestAntiCheatCrypto_Encrypt(t *testing.T) {
	c, err := NewAntiCheatCrypto(sessionKey())
	require.NoError(t, err)
	require.True(t, c.Initialized())

	in := []byte("hello")
	out := c.Encrypt(in)
	assert.Equal(t, "50e48bb944", hex.EncodeToString(out))
	assert.Equal(t, []byte("hello"), in, "input must not be modified")
}

func TestAntiCheatCrypto_StreamIsStateful(t *testing.T) {
	c, err := NewAntiCheatCrypto(sessionKey())
	require.NoError(t, err)

	first := c.Encrypt([]byte{0, 0, 0, 0})
	second := c.Encrypt([]byte{0, 0, 0, 0})
	assert.NotEqual(t, first, second, "keystream must advance")
}

func TestAntiCheatCrypto_ReplaceKeys(t *testing.T) {
	client := &AntiCheatCrypto{}
	server := &AntiCheatCrypto{}

	k1 := bytes.Repeat([]byte{0x11}, AntiCheatKeySize)
	k2 := bytes.Repeat([]byte{0x22}, AntiCheatKeySize)

	require.NoError(t, client.ReplaceKeys(k1, k2))
	// зеркальная сторона: её decrypt = наш encrypt
	require.NoError(t, server.ReplaceKeys(k2, k1))

	msg := []byte{0x02, 0x00, 0x00, 0x00, 0xAB}
	assert.Equal(t, msg, server.Decrypt(client.Encrypt(msg)))
	assert.Equal(t, msg, client.Decrypt(server.Encrypt(msg)))
}

func TestAntiCheatCrypto_UninitializedPassThrough(t *testing.T) {
	var c AntiCheatCrypto
	assert.False(t, c.Initialized())
	assert.Equal(t, []byte{1, 2, 3}, c.Decrypt([]byte{1, 2, 3}))
	assert.Equal(t, []byte{4, 5}, c.Encrypt([]byte{4, 5}))
}

func TestNewAntiCheatCrypto_BadKey(t *testing.T) {
	_, err := NewAntiCheatCrypto([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrInvalidSessionKey))
}
