package warden

import (
	"bytes"
	"crypto/md5"
	"crypto/rc4"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zlib"

	"github.com/udisondev/wowee/internal/crypto"
)

// maxModuleSize bounds the declared uncompressed size of a module.
const maxModuleSize = 16 << 20

// Module is a downloaded anti-cheat module after verification and inflation.
// Native code is never executed; the image is kept for hashing checks only.
type Module struct {
	MD5    [md5.Size]byte
	Signed bool
	Image  []byte
}

// LoadModule verifies and unpacks a module:
//
//  1. MD5 of the encrypted blob must match md5sum.
//  2. RC4 decrypt with rc4Key.
//  3. RSA signature check (skipped when verifier is nil).
//  4. Read the 4-byte LE uncompressed size and zlib-inflate the rest.
func LoadModule(blob []byte, md5sum [md5.Size]byte, rc4Key []byte, verifier *crypto.ModuleVerifier) (*Module, error) {
	if md5.Sum(blob) != md5sum {
		return nil, ErrChecksum
	}

	c, err := rc4.NewCipher(rc4Key)
	if err != nil {
		return nil, fmt.Errorf("module rc4 key: %w", err)
	}
	plain := make([]byte, len(blob))
	c.XORKeyStream(plain, blob)

	body := plain
	signed := false
	if verifier != nil {
		body, err = verifier.Verify(plain)
		if err != nil {
			return nil, fmt.Errorf("module signature: %w", err)
		}
		signed = true
	} else {
		slog.Warn("module signature not verified: no modulus configured")
		if n := len(plain) - 260; n >= 0 && string(plain[n:n+4]) == "SIGN" {
			body = plain[:n]
		}
	}

	image, err := inflateModule(body)
	if err != nil {
		return nil, err
	}

	slog.Info("anti-cheat module loaded",
		"md5", fmt.Sprintf("%X", md5sum[:8]),
		"signed", signed,
		"size", len(image))
	return &Module{MD5: md5sum, Signed: signed, Image: image}, nil
}

func inflateModule(body []byte) ([]byte, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("module body %d bytes: %w", len(body), ErrInvalidModule)
	}
	size := binary.LittleEndian.Uint32(body)
	if size > maxModuleSize {
		return nil, fmt.Errorf("module declares %d bytes: %w", size, ErrInvalidModule)
	}

	zr, err := zlib.NewReader(bytes.NewReader(body[4:]))
	if err != nil {
		return nil, fmt.Errorf("module zlib header: %w", err)
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("inflating module: %w", err)
	}
	return out, nil
}
