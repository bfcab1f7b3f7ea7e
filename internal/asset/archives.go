package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wowee/internal/asset/mpq"
)

// Archive priorities. Higher wins.
const (
	PriorityBase         = 100
	PriorityNumericPatch = 150
	PriorityLocale       = 250
	PriorityLocalePatch  = 450
	PriorityLowerLetter  = 800
	PriorityLetter       = 900
)

const (
	slowLookupThreshold   = 100 * time.Millisecond
	archiveOpenConcurrent = 4
)

var baseArchives = []string{"common.MPQ", "common-2.MPQ", "expansion.MPQ", "lichking.MPQ"}

// ArchiveOptions selects which archive families are opened.
type ArchiveOptions struct {
	Locale                string
	DisableLetterPatches  bool
	DisableNumericPatches bool
}

type candidate struct {
	path     string
	priority int
}

// archiveCandidates lists every archive the client may ship, with priorities.
// Lettered patches beat numeric ones; higher-numbered patches beat lower.
func archiveCandidates(dataDir string, opts ArchiveOptions) []candidate {
	var out []candidate
	for _, name := range baseArchives {
		out = append(out, candidate{filepath.Join(dataDir, name), PriorityBase})
	}

	if !opts.DisableLetterPatches {
		for i := range 26 {
			upper := fmt.Sprintf("Patch-%c.mpq", 'A'+i)
			lower := fmt.Sprintf("patch-%c.mpq", 'a'+i)
			out = append(out,
				candidate{filepath.Join(dataDir, upper), PriorityLetter + i},
				candidate{filepath.Join(dataDir, lower), PriorityLowerLetter + i})
		}
	}
	if !opts.DisableNumericPatches {
		out = append(out, candidate{filepath.Join(dataDir, "patch.MPQ"), PriorityNumericPatch})
		for n := 2; n <= 5; n++ {
			out = append(out, candidate{filepath.Join(dataDir, fmt.Sprintf("patch-%d.MPQ", n)), n * 100})
		}
	}

	if l := opts.Locale; l != "" {
		dir := filepath.Join(dataDir, l)
		out = append(out,
			candidate{filepath.Join(dir, "locale-"+l+".MPQ"), PriorityLocale},
			candidate{filepath.Join(dir, "speech-"+l+".MPQ"), 240},
			candidate{filepath.Join(dir, "expansion-speech-"+l+".MPQ"), 245},
			candidate{filepath.Join(dir, "lichking-speech-"+l+".MPQ"), 248},
			candidate{filepath.Join(dir, "patch-"+l+".MPQ"), PriorityLocalePatch},
			candidate{filepath.Join(dir, "patch-"+l+"-2.MPQ"), PriorityLocalePatch + 10},
			candidate{filepath.Join(dir, "patch-"+l+"-3.MPQ"), PriorityLocalePatch + 20},
		)
	}
	return out
}

type archiveEntry struct {
	archive  *mpq.Archive
	priority int
}

// ArchiveSet is the archive layer: archives sorted by priority descending,
// then loose files under the data directory.
//
// A single mutex serialises archive access and the name→archive memo.
// Loose-file reads open their own descriptors and run unlocked.
type ArchiveSet struct {
	dataDir string

	mu       sync.Mutex
	archives []archiveEntry
	where    map[string]*mpq.Archive
}

// NewArchiveSet creates an empty set with loose-file fallback under dataDir.
func NewArchiveSet(dataDir string) *ArchiveSet {
	return &ArchiveSet{
		dataDir: dataDir,
		where:   make(map[string]*mpq.Archive),
	}
}

// OpenArchives opens every known archive present under dataDir.
// Archives that fail to open are logged and skipped.
func OpenArchives(ctx context.Context, dataDir string, opts ArchiveOptions) (*ArchiveSet, error) {
	if _, err := os.Stat(dataDir); err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dataDir, err)
	}
	if opts.DisableLetterPatches {
		slog.Warn("letter patch archives disabled")
	}
	if opts.DisableNumericPatches {
		slog.Warn("numeric patch archives disabled")
	}

	set := NewArchiveSet(dataDir)
	cands := archiveCandidates(dataDir, opts)

	// открываем параллельно, добавляем в порядке списка
	opened := make([]*mpq.Archive, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(archiveOpenConcurrent)
	for i, c := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := os.Stat(c.path); err != nil {
				slog.Debug("archive not present", "path", c.path)
				return nil
			}
			a, err := mpq.Open(c.path)
			if err != nil {
				slog.Error("failed to open archive", "path", c.path, "err", err)
				return nil
			}
			opened[i] = a
			return nil
		})
	}
	err := g.Wait()
	for i, a := range opened {
		if a != nil {
			set.Add(a, cands[i].priority)
		}
	}
	if err != nil {
		set.Close()
		return nil, fmt.Errorf("opening archives: %w", err)
	}

	if set.Len() == 0 {
		slog.Warn("no archives loaded, using loose files only", "data_dir", dataDir)
	} else {
		slog.Info("archives opened", "count", set.Len(), "data_dir", dataDir)
	}
	return set, nil
}

// Add inserts an open archive and keeps the set sorted. Equal priorities
// keep insertion order.
func (s *ArchiveSet) Add(a *mpq.Archive, priority int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archives = append(s.archives, archiveEntry{archive: a, priority: priority})
	slices.SortStableFunc(s.archives, func(x, y archiveEntry) int {
		return y.priority - x.priority
	})
	clear(s.where)
	slog.Info("archive loaded", "path", a.Path(), "priority", priority)
}

// Load opens the archive at path and adds it.
func (s *ArchiveSet) Load(path string, priority int) error {
	a, err := mpq.Open(path)
	if err != nil {
		return err
	}
	s.Add(a, priority)
	return nil
}

// Len returns the number of open archives.
func (s *ArchiveSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.archives)
}

// Priorities returns archive priorities in search order.
func (s *ArchiveSet) Priorities() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.archives))
	for i, e := range s.archives {
		out[i] = e.priority
	}
	return out
}

// locate returns the highest priority archive holding name. Caller holds mu.
func (s *ArchiveSet) locate(name string) *mpq.Archive {
	if a, ok := s.where[name]; ok {
		return a
	}
	start := time.Now()
	var found *mpq.Archive
	for _, e := range s.archives {
		if e.archive.Has(name) {
			found = e.archive
			break
		}
	}
	s.where[name] = found
	if d := time.Since(start); d >= slowLookupThreshold {
		slog.Warn("slow archive lookup", "path", name, "archives", len(s.archives), "took", d)
	}
	return found
}

// ReadFile returns name from the archives, falling back to loose files.
func (s *ArchiveSet) ReadFile(name string) ([]byte, error) {
	s.mu.Lock()
	a := s.locate(name)
	var (
		data []byte
		err  error
	)
	if a != nil {
		data, err = a.ReadFile(name)
	}
	s.mu.Unlock()

	if a != nil {
		if err != nil {
			return nil, fmt.Errorf("archive %s: %w", a.Path(), err)
		}
		slog.Debug("read file from archive", "path", name, "size", len(data))
		return data, nil
	}
	return s.readLoose(name)
}

// Has reports whether name is in an archive or on disk.
func (s *ArchiveSet) Has(name string) bool {
	s.mu.Lock()
	a := s.locate(name)
	s.mu.Unlock()
	if a != nil {
		return true
	}
	_, err := s.findLoose(name)
	return err == nil
}

// FileSize returns the uncompressed size of name.
func (s *ArchiveSet) FileSize(name string) (int64, bool) {
	s.mu.Lock()
	a := s.locate(name)
	var (
		size uint32
		err  error
	)
	if a != nil {
		size, err = a.FileSize(name)
	}
	s.mu.Unlock()
	if a != nil {
		return int64(size), err == nil
	}

	p, err := s.findLoose(name)
	if err != nil {
		return 0, false
	}
	st, err := os.Stat(p)
	if err != nil {
		return 0, false
	}
	return st.Size(), true
}

// Close closes every archive.
func (s *ArchiveSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for _, e := range s.archives {
		if err := e.archive.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.archives = nil
	clear(s.where)
	return errors.Join(errs...)
}

func (s *ArchiveSet) readLoose(name string) ([]byte, error) {
	p, err := s.findLoose(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading loose file: %w", err)
	}
	slog.Debug("read loose file", "path", p, "size", len(data))
	return data, nil
}

// findLoose maps a virtual path to a file under dataDir. The exact path is
// tried first, then each component is matched case-insensitively.
func (s *ArchiveSet) findLoose(name string) (string, error) {
	if s.dataDir == "" {
		return "", ErrMissingAsset
	}
	rel := strings.ReplaceAll(name, "\\", "/")
	parts := slices.DeleteFunc(strings.Split(rel, "/"), func(p string) bool {
		return p == "" || p == "." || p == ".."
	})
	if len(parts) == 0 {
		return "", ErrMissingAsset
	}

	exact := filepath.Join(append([]string{s.dataDir}, parts...)...)
	if st, err := os.Stat(exact); err == nil && st.Mode().IsRegular() {
		return exact, nil
	}

	dir := s.dataDir
	for _, part := range parts {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", ErrMissingAsset
		}
		idx := slices.IndexFunc(entries, func(e os.DirEntry) bool {
			return strings.EqualFold(e.Name(), part)
		})
		if idx < 0 {
			return "", ErrMissingAsset
		}
		dir = filepath.Join(dir, entries[idx].Name())
	}
	if st, err := os.Stat(dir); err != nil || !st.Mode().IsRegular() {
		return "", ErrMissingAsset
	}
	return dir, nil
}
