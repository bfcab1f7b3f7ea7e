package crypto

import "crypto/sha1"

// SHA1Randx is the SHA-1 based key stream used to expand a session key into
// anti-cheat RC4 keys.
//
//	o1 = SHA1(first half), o2 = SHA1(second half), o0 = 0^20
//	refill: o0 = SHA1(o1 || o0 || o2)
type SHA1Randx struct {
	o0, o1, o2 [sha1.Size]byte
	taken      int
}

// NewSHA1Randx seeds the generator with seed split in two halves.
func NewSHA1Randx(seed []byte) *SHA1Randx {
	half := len(seed) / 2
	g := &SHA1Randx{
		o1:    sha1.Sum(seed[:half]),
		o2:    sha1.Sum(seed[half:]),
		taken: sha1.Size,
	}
	return g
}

func (g *SHA1Randx) fillUp() {
	var buf [3 * sha1.Size]byte
	copy(buf[0:], g.o1[:])
	copy(buf[sha1.Size:], g.o0[:])
	copy(buf[2*sha1.Size:], g.o2[:])
	g.o0 = sha1.Sum(buf[:])
	g.taken = 0
}

// Generate fills out with the next bytes of the stream.
func (g *SHA1Randx) Generate(out []byte) {
	for i := range out {
		if g.taken == sha1.Size {
			g.fillUp()
		}
		out[i] = g.o0[g.taken]
		g.taken++
	}
}
