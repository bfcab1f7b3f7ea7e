package mpq

import (
	"encoding/binary"
	"path"
	"strings"
)

// Hash types used by hashString.
const (
	hashTableOffset = 0
	hashNameA       = 1
	hashNameB       = 2
	hashFileKey     = 3
)

var (
	hashTableKey  = hashString("(hash table)", hashFileKey)
	blockTableKey = hashString("(block table)", hashFileKey)
)

var cryptTable = func() [0x500]uint32 {
	var t [0x500]uint32
	seed := uint32(0x00100001)
	for i := range 0x100 {
		idx := i
		for range 5 {
			seed = (seed*125 + 3) % 0x2AAAAB
			hi := (seed & 0xFFFF) << 16
			seed = (seed*125 + 3) % 0x2AAAAB
			lo := seed & 0xFFFF
			t[idx] = hi | lo
			idx += 0x100
		}
	}
	return t
}()

// hashString hashes an archive path. Lookups are case-insensitive and treat
// '/' as '\'.
func hashString(s string, hashType uint32) uint32 {
	seed1 := uint32(0x7FED7FED)
	seed2 := uint32(0xEEEEEEEE)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		} else if ch == '/' {
			ch = '\\'
		}
		c := uint32(ch)
		seed1 = cryptTable[hashType<<8+c] ^ (seed1 + seed2)
		seed2 = c + seed1 + seed2 + (seed2 << 5) + 3
	}
	return seed1
}

// fileKey derives the encryption key of a file from its base name.
func fileKey(name string, b blockEntry) uint32 {
	base := strings.ReplaceAll(name, "\\", "/")
	key := hashString(path.Base(base), hashFileKey)
	if b.flags&flagFixKey != 0 {
		key = (key + b.filePos) ^ b.fileSize
	}
	return key
}

// decryptBytes decrypts whole dwords in place; a tail shorter than 4 bytes
// stays as is.
func decryptBytes(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	for i := 0; i+4 <= len(data); i += 4 {
		seed += cryptTable[0x400+(key&0xFF)]
		ch := binary.LittleEndian.Uint32(data[i:]) ^ (key + seed)
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = ch + seed + (seed << 5) + 3
		binary.LittleEndian.PutUint32(data[i:], ch)
	}
}

func encryptBytes(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	for i := 0; i+4 <= len(data); i += 4 {
		seed += cryptTable[0x400+(key&0xFF)]
		ch := binary.LittleEndian.Uint32(data[i:])
		binary.LittleEndian.PutUint32(data[i:], ch^(key+seed))
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = ch + seed + (seed << 5) + 3
	}
}
