package warden

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Synthetic KUSER_SHARED_DATA page.
const (
	KuserBase = 0x7FFE0000
	KuserSize = 0x1000

	kuserNtMajorOffset = 0x026C
	kuserNtMinorOffset = 0x0270

	// Windows 7
	kuserNtMajor = 6
	kuserNtMinor = 1
)

// PE32 layout offsets.
const (
	dosHeaderSize       = 64
	dosLfanewOffset     = 0x3C
	coffHeaderSize      = 20
	sectionHeaderSize   = 40
	pe32Magic           = 0x10B
	optImageBaseOffset  = 28
	optSizeOfImgOffset  = 56
	optSizeOfHdrsOffset = 60
)

// MemoryImage is a flat copy of a PE32 executable mapped at its preferred
// base plus a synthetic KUSER_SHARED_DATA page. It answers anti-cheat memory
// reads without a live process and is immutable after loading.
type MemoryImage struct {
	imageBase uint32
	imageSize uint32
	image     []byte
	kuser     [KuserSize]byte
	patched   string
}

// Section describes one PE section as mapped into the image.
type Section struct {
	Name           string
	VirtualAddress uint32
	Size           uint32
}

// PEHeader holds the fields needed to map a PE32 image.
type PEHeader struct {
	ImageBase     uint32
	SizeOfImage   uint32
	SizeOfHeaders uint32
	numSections   uint16
	sectionTable  int
}

// ReadPEHeader validates the MZ/PE signatures and reads the PE32 optional header.
func ReadPEHeader(data []byte) (PEHeader, error) {
	if len(data) < dosHeaderSize {
		return PEHeader{}, fmt.Errorf("file too small (%d bytes): %w", len(data), ErrInvalidImage)
	}
	if data[0] != 'M' || data[1] != 'Z' {
		return PEHeader{}, fmt.Errorf("missing MZ signature: %w", ErrInvalidImage)
	}

	peOff := int(binary.LittleEndian.Uint32(data[dosLfanewOffset:]))
	if peOff < 0 || peOff+4+coffHeaderSize > len(data) {
		return PEHeader{}, fmt.Errorf("PE header offset 0x%X out of file: %w", peOff, ErrInvalidImage)
	}
	if string(data[peOff:peOff+4]) != "PE\x00\x00" {
		return PEHeader{}, fmt.Errorf("missing PE signature: %w", ErrInvalidImage)
	}

	coff := peOff + 4
	numSections := binary.LittleEndian.Uint16(data[coff+2:])
	optSize := int(binary.LittleEndian.Uint16(data[coff+16:]))

	opt := coff + coffHeaderSize
	if optSize < optSizeOfHdrsOffset+4 || opt+optSize > len(data) {
		return PEHeader{}, fmt.Errorf("optional header truncated: %w", ErrInvalidImage)
	}
	if magic := binary.LittleEndian.Uint16(data[opt:]); magic != pe32Magic {
		return PEHeader{}, fmt.Errorf("not PE32 (magic=0x%X): %w", magic, ErrInvalidImage)
	}

	return PEHeader{
		ImageBase:     binary.LittleEndian.Uint32(data[opt+optImageBaseOffset:]),
		SizeOfImage:   binary.LittleEndian.Uint32(data[opt+optSizeOfImgOffset:]),
		SizeOfHeaders: binary.LittleEndian.Uint32(data[opt+optSizeOfHdrsOffset:]),
		numSections:   numSections,
		sectionTable:  opt + optSize,
	}, nil
}

// ParseImage maps a PE32 file into a new MemoryImage.
func ParseImage(data []byte) (*MemoryImage, error) {
	hdr, err := ReadPEHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.SizeOfImage == 0 {
		return nil, fmt.Errorf("zero SizeOfImage: %w", ErrInvalidImage)
	}

	m := &MemoryImage{
		imageBase: hdr.ImageBase,
		imageSize: hdr.SizeOfImage,
		image:     make([]byte, hdr.SizeOfImage),
	}

	headerCopy := min(hdr.SizeOfHeaders, hdr.SizeOfImage, uint32(len(data)))
	copy(m.image, data[:headerCopy])

	for _, s := range m.mapSections(data, hdr) {
		slog.Debug("image section mapped",
			"name", s.Name,
			"va", fmt.Sprintf("0x%08X", hdr.ImageBase+s.VirtualAddress),
			"size", s.Size)
	}

	m.initKuser()

	slog.Info("memory image parsed",
		"image_base", fmt.Sprintf("0x%08X", m.imageBase),
		"size_of_image", fmt.Sprintf("0x%X", m.imageSize),
		"sections", hdr.numSections)
	return m, nil
}

// mapSections copies each section's raw data to its virtual address,
// clamping to both file and image bounds.
func (m *MemoryImage) mapSections(data []byte, hdr PEHeader) []Section {
	fileSize := uint64(len(data))
	var mapped []Section

	for i := range int(hdr.numSections) {
		off := hdr.sectionTable + i*sectionHeaderSize
		if off+sectionHeaderSize > len(data) {
			break
		}
		sh := data[off : off+sectionHeaderSize]

		name := strings.TrimRight(string(sh[:8]), "\x00")
		virtualSize := uint64(binary.LittleEndian.Uint32(sh[8:]))
		virtualAddr := uint64(binary.LittleEndian.Uint32(sh[12:]))
		rawSize := uint64(binary.LittleEndian.Uint32(sh[16:]))
		rawOff := uint64(binary.LittleEndian.Uint32(sh[20:]))

		if rawSize == 0 || rawOff == 0 || rawOff >= fileSize || virtualAddr >= uint64(m.imageSize) {
			continue
		}

		n := rawSize
		if virtualSize != 0 {
			n = min(n, virtualSize)
		}
		n = min(n, fileSize-rawOff, uint64(m.imageSize)-virtualAddr)

		copy(m.image[virtualAddr:virtualAddr+n], data[rawOff:rawOff+n])
		mapped = append(mapped, Section{Name: name, VirtualAddress: uint32(virtualAddr), Size: uint32(n)})
	}
	return mapped
}

func (m *MemoryImage) initKuser() {
	clear(m.kuser[:])
	binary.LittleEndian.PutUint32(m.kuser[kuserNtMajorOffset:], kuserNtMajor)
	binary.LittleEndian.PutUint32(m.kuser[kuserNtMinorOffset:], kuserNtMinor)
}

// LoadImage reads and maps the executable at path, then applies the first
// patch set whose ImageBase and SizeOfImage match the image.
func LoadImage(path string, patches []PatchSet) (*MemoryImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference executable: %w", err)
	}

	m, err := ParseImage(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if set, ok := MatchPatchSet(patches, m.imageBase, m.imageSize); ok {
		n, err := m.applyPatches(set)
		if err != nil {
			return nil, fmt.Errorf("patching %s: %w", path, err)
		}
		m.patched = set.Name
		slog.Info("memory image patched", "set", set.Name, "build", set.Build, "patches", n)
	} else {
		slog.Info("memory image left unpatched", "path", path)
	}
	return m, nil
}

// ReadMemory returns a copy of length bytes at va. The range must lie
// entirely inside the image or entirely inside the KUSER page; the two are
// not contiguous. A zero length always succeeds.
func (m *MemoryImage) ReadMemory(va uint32, length int) ([]byte, bool) {
	if length < 0 {
		return nil, false
	}
	if length == 0 {
		return []byte{}, true
	}

	start := uint64(va)
	end := start + uint64(length)

	if start >= KuserBase && end <= KuserBase+KuserSize {
		off := start - KuserBase
		return cloneRange(m.kuser[:], off, end-KuserBase), true
	}

	base := uint64(m.imageBase)
	if start < base || end > base+uint64(m.imageSize) {
		return nil, false
	}
	return cloneRange(m.image, start-base, end-base), true
}

func cloneRange(b []byte, from, to uint64) []byte {
	out := make([]byte, to-from)
	copy(out, b[from:to])
	return out
}

// ImageBase returns the preferred load address.
func (m *MemoryImage) ImageBase() uint32 { return m.imageBase }

// SizeOfImage returns the mapped image size.
func (m *MemoryImage) SizeOfImage() uint32 { return m.imageSize }

// PatchSet returns the name of the applied patch set, or "" when unpatched.
func (m *MemoryImage) PatchSet() string { return m.patched }
