package warden

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// EnvIntegrityDir overrides the first directory searched for the reference executable.
const EnvIntegrityDir = "WOWEE_INTEGRITY_DIR"

var candidateNames = []string{"WoW.exe", "TurtleWoW.exe", "Wow.exe"}

// peekSize: хватает на DOS + PE + optional header у обычных сборок.
const peekSize = 4096

// CandidateDirs returns the directories searched for the reference executable,
// in order: $WOWEE_INTEGRITY_DIR, Data/misc, then two well-known download dirs.
func CandidateDirs() []string {
	var dirs []string
	if env := os.Getenv(EnvIntegrityDir); env != "" {
		dirs = append(dirs, env)
	}
	dirs = append(dirs, filepath.Join("Data", "misc"))
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs,
			filepath.Join(home, "Downloads", "twmoa_1180"),
			filepath.Join(home, "twmoa_1180"))
	}
	return dirs
}

// FindReferenceExecutable searches dirs for a known client executable.
// When several exist and expectedSizeOfImage is non-zero, the first one whose
// PE SizeOfImage matches wins; otherwise the first found is returned.
func FindReferenceExecutable(dirs []string, expectedSizeOfImage uint32) (string, error) {
	var found []string
	for _, dir := range dirs {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
				found = append(found, p)
			}
		}
	}
	if len(found) == 0 {
		return "", fmt.Errorf("searched %v: %w", dirs, ErrNotFound)
	}

	if expectedSizeOfImage != 0 && len(found) > 1 {
		for _, p := range found {
			size, err := peekSizeOfImage(p)
			if err != nil {
				slog.Debug("skipping candidate executable", "path", p, "err", err)
				continue
			}
			if size == expectedSizeOfImage {
				return p, nil
			}
		}
		slog.Warn("no reference executable matches expected SizeOfImage",
			"expected", fmt.Sprintf("0x%X", expectedSizeOfImage),
			"using", found[0])
	}
	return found[0], nil
}

func peekSizeOfImage(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, peekSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return 0, err
	}
	hdr, err := ReadPEHeader(buf[:n])
	if err != nil {
		return 0, err
	}
	return hdr.SizeOfImage, nil
}
