package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/udisondev/wowee/internal/constants"
)

func sessionKey() []byte {
	k := make([]byte, SessionKeySize)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestRollingCipher_KnownVector(t *testing.T) {
	c := NewRollingCipher([]byte{0x01, 0x02, 0x03, 0x04})

	data := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	c.Encrypt(data)

	// (AA^01)+00, (BB^02)+AB, (CC^03)+64, (DD^04)+33
	want := []byte{0xAB, 0x64, 0x33, 0x0C}
	if !bytes.Equal(data, want) {
		t.Fatalf("Encrypt: got %x, want %x", data, want)
	}

	mirror := NewRollingCipher([]byte{0x01, 0x02, 0x03, 0x04})
	mirror.Decrypt(data)
	if !bytes.Equal(data, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Fatalf("Decrypt: got %x", data)
	}
}

func TestRollingCipher_StreamAcrossHeaders(t *testing.T) {
	key := sessionKey()
	client := NewRollingCipher(key)
	server := NewRollingCipher(key)

	// 20 заголовков подряд: индекс ключа переходит через границу 40 байт
	for n := range 20 {
		hdr := []byte{0x00, byte(n), 0xDC, 0x01, 0x00, 0x00}
		orig := bytes.Clone(hdr)

		client.Encrypt(hdr)
		if n > 0 && bytes.Equal(hdr, orig) {
			t.Fatalf("header %d not encrypted", n)
		}
		server.Decrypt(hdr)
		if !bytes.Equal(hdr, orig) {
			t.Fatalf("header %d: got %x, want %x", n, hdr, orig)
		}
	}
}

func TestRollingCipher_DirectionsIndependent(t *testing.T) {
	key := []byte{9, 8, 7}
	a := NewRollingCipher(key)
	b := NewRollingCipher(key)

	// Дешифрование на a не должно сдвигать состояние шифрования.
	junk := []byte{1, 2, 3, 4, 5}
	a.Decrypt(junk)

	x := []byte{0x10, 0x20}
	y := []byte{0x10, 0x20}
	a.Encrypt(x)
	b.Encrypt(y)
	if !bytes.Equal(x, y) {
		t.Fatalf("send state affected by receive: %x vs %x", x, y)
	}
}

func TestRollingCipher_KeyIsCopied(t *testing.T) {
	key := []byte{1, 2, 3, 4}
	c := NewRollingCipher(key)
	key[0] = 0xFF

	data := []byte{0xAA}
	c.Encrypt(data)
	if data[0] != 0xAB {
		t.Fatalf("cipher must not alias caller key: got %x", data[0])
	}
}

func TestARC4HeaderCipher_KnownVector(t *testing.T) {
	c, err := NewARC4HeaderCipher(sessionKey())
	if err != nil {
		t.Fatalf("NewARC4HeaderCipher: %v", err)
	}

	hdr := []byte{0x00, 0x08, 0xDC, 0x01, 0x00, 0x00}
	c.Encrypt(hdr)

	want, _ := hex.DecodeString("e65f54e7a6ce")
	if !bytes.Equal(hdr, want) {
		t.Fatalf("got %x, want %x", hdr, want)
	}
}

func TestARC4HeaderCipher_RoundTrip(t *testing.T) {
	client, err := NewARC4HeaderCipher(sessionKey())
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	// Сервер шифрует ключом, которым клиент расшифровывает, и наоборот.
	server, err := newARC4HeaderCipher(arc4DecryptSeed, arc4EncryptSeed, sessionKey())
	if err != nil {
		t.Fatalf("server: %v", err)
	}

	for n := range 5 {
		out := []byte{0x00, byte(n + 4), 0xDC, 0x01, 0x00, 0x00}
		orig := bytes.Clone(out)
		client.Encrypt(out)
		server.Decrypt(out)
		if !bytes.Equal(out, orig) {
			t.Fatalf("c->s %d: got %x, want %x", n, out, orig)
		}

		in := []byte{0x00, byte(n + 2), 0xDD, 0x01}
		orig = bytes.Clone(in)
		server.Encrypt(in)
		client.Decrypt(in)
		if !bytes.Equal(in, orig) {
			t.Fatalf("s->c %d: got %x, want %x", n, in, orig)
		}
	}
}

func TestARC4HeaderCipher_RejectsShortKey(t *testing.T) {
	_, err := NewARC4HeaderCipher(make([]byte, 32))
	if !errors.Is(err, ErrInvalidSessionKey) {
		t.Fatalf("expected ErrInvalidSessionKey, got %v", err)
	}
}

func TestNewHeaderCipher_SelectsByBuild(t *testing.T) {
	tests := []struct {
		build uint16
		arc4  bool
	}{
		{5875, false},
		{constants.TestLegacyBuild, false},
		{constants.TestBuild, true},
	}

	for _, tt := range tests {
		c, err := NewHeaderCipher(tt.build, sessionKey())
		if err != nil {
			t.Fatalf("build %d: %v", tt.build, err)
		}
		_, isARC4 := c.(*ARC4HeaderCipher)
		if isARC4 != tt.arc4 {
			t.Errorf("build %d: arc4=%v, want %v", tt.build, isARC4, tt.arc4)
		}
	}

	if _, err := NewHeaderCipher(5875, nil); !errors.Is(err, ErrInvalidSessionKey) {
		t.Errorf("expected ErrInvalidSessionKey for empty key, got %v", err)
	}
}
