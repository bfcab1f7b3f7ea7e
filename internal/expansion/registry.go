package expansion

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const (
	defaultActiveID = "wotlk"
	defaultMaxLevel = 60
	profileFileName = "expansion.json"
	manifestName    = "manifest.json"
)

// Registry discovers expansion profiles under a data root and tracks the active one.
type Registry struct {
	mu       sync.RWMutex
	profiles []Profile
	activeID string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize scans dataRoot/expansions/*/expansion.json.
// Returns the number of profiles discovered. Invalid profiles are skipped.
// A missing expansions directory is not an error (0 profiles).
func (r *Registry) Initialize(dataRoot string) (int, error) {
	dir := filepath.Join(dataRoot, "expansions")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("no expansions directory", "path", dir)
			r.reset(nil)
			return 0, nil
		}
		return 0, fmt.Errorf("reading expansions dir %s: %w", dir, err)
	}

	var profiles []Profile
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		profileDir := filepath.Join(dir, e.Name())
		p, err := loadProfile(profileDir)
		if err != nil {
			slog.Warn("skipping expansion profile", "dir", profileDir, "err", err)
			continue
		}
		slog.Info("expansion profile loaded",
			"id", p.ID,
			"name", p.Name,
			"version", p.VersionString(),
			"build", p.Build)
		profiles = append(profiles, p)
	}

	r.reset(profiles)

	r.mu.RLock()
	active := r.activeID
	r.mu.RUnlock()
	slog.Info("expansion registry initialized", "profiles", len(profiles), "active", active)
	return len(profiles), nil
}

// reset replaces the profile list and re-selects the default active profile.
func (r *Registry) reset(profiles []Profile) {
	// classic < tbc < wotlk; порядок только для UI
	slices.SortStableFunc(profiles, func(a, b Profile) int {
		return int(a.Build) - int(b.Build)
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles = profiles
	r.activeID = ""
	if len(profiles) == 0 {
		return
	}
	r.activeID = profiles[len(profiles)-1].ID
	for _, p := range profiles {
		if p.ID == defaultActiveID {
			r.activeID = p.ID
			break
		}
	}
}

func loadProfile(dir string) (Profile, error) {
	path := filepath.Join(dir, profileFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	p := Profile{MaxLevel: defaultMaxLevel}
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if p.ID == "" || p.Build == 0 {
		return Profile{}, fmt.Errorf("invalid profile %s: id=%q build=%d", path, p.ID, p.Build)
	}
	if p.MaxLevel == 0 {
		p.MaxLevel = defaultMaxLevel
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	p.DataPath = abs
	p.AssetManifest = filepath.Join(abs, manifestName)
	return p, nil
}

// Profiles returns a copy of all profiles sorted by build ascending.
func (r *Registry) Profiles() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.profiles)
}

// Profile returns the profile with the given id.
func (r *Registry) Profile(id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(id)
}

func (r *Registry) find(id string) (*Profile, error) {
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			p := r.profiles[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
}

// SetActive selects the active profile. Unknown ids leave the selection unchanged.
func (r *Registry) SetActive(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.find(id); err != nil {
		return err
	}
	r.activeID = id
	return nil
}

// Active returns the active profile.
func (r *Registry) Active() (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.activeID == "" {
		return nil, ErrNoProfiles
	}
	return r.find(r.activeID)
}

// ActiveID returns the active profile id or "" when nothing was discovered.
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}
