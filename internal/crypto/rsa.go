package crypto

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math/big"
	"slices"
	"strings"
)

const (
	// ModuleSignatureSize is the RSA-2048 signature size in bytes.
	ModuleSignatureSize = 256

	// moduleSignatureMagic precedes the signature at the end of a module.
	moduleSignatureMagic = "SIGN"

	// moduleSignatureSuffix is appended to the module body before hashing.
	moduleSignatureSuffix = "MAIEV.MOD"

	modulePublicExponent = 65537
	moduleSignaturePad   = 0xBB
)

// ModuleVerifier checks the RSA-2048 signature appended to anti-cheat modules.
type ModuleVerifier struct {
	n *big.Int
}

// NewModuleVerifier builds a verifier from the modulus as stored in the client
// executable: 256 bytes, little-endian, hex-encoded.
func NewModuleVerifier(modulusHexLE string) (*ModuleVerifier, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(modulusHexLE))
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}
	if len(raw) != ModuleSignatureSize {
		return nil, fmt.Errorf("modulus is %d bytes, want %d", len(raw), ModuleSignatureSize)
	}
	return &ModuleVerifier{n: leToInt(raw)}, nil
}

// Verify checks a module whose last 260 bytes are "SIGN" followed by the
// little-endian signature. Returns the module body without the signature.
//
// The signature is valid when sig^65537 mod N, read little-endian, equals
// SHA1(body || "MAIEV.MOD") followed by 0xBB padding.
func (v *ModuleVerifier) Verify(module []byte) ([]byte, error) {
	trailer := len(moduleSignatureMagic) + ModuleSignatureSize
	if len(module) < trailer {
		return nil, fmt.Errorf("module too short for signature (%d bytes): %w", len(module), ErrInvalidSignature)
	}

	body := module[:len(module)-trailer]
	sigBlock := module[len(module)-trailer:]
	if string(sigBlock[:len(moduleSignatureMagic)]) != moduleSignatureMagic {
		return nil, fmt.Errorf("missing %q marker: %w", moduleSignatureMagic, ErrInvalidSignature)
	}

	sig := leToInt(sigBlock[len(moduleSignatureMagic):])
	m := new(big.Int).Exp(sig, big.NewInt(modulePublicExponent), v.n)

	if !bytes.Equal(intToLE(m, ModuleSignatureSize), expectedModuleDigest(body)) {
		return nil, ErrInvalidSignature
	}
	return body, nil
}

// expectedModuleDigest returns the little-endian plaintext a valid signature decrypts to.
func expectedModuleDigest(body []byte) []byte {
	h := sha1.New()
	h.Write(body)
	h.Write([]byte(moduleSignatureSuffix))

	out := bytes.Repeat([]byte{moduleSignaturePad}, ModuleSignatureSize)
	copy(out, h.Sum(nil))
	return out
}

func leToInt(le []byte) *big.Int {
	be := slices.Clone(le)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

// intToLE encodes x as a size-byte little-endian integer (pads with zeros).
func intToLE(x *big.Int, size int) []byte {
	be := x.Bytes()
	if len(be) > size {
		be = be[len(be)-size:]
	}
	out := make([]byte, size)
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}
