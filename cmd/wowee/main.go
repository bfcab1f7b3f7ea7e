package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wowee/internal/asset"
	"github.com/udisondev/wowee/internal/config"
	"github.com/udisondev/wowee/internal/crypto"
	"github.com/udisondev/wowee/internal/expansion"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/parsers"
	"github.com/udisondev/wowee/internal/session"
	"github.com/udisondev/wowee/internal/updatefield"
	"github.com/udisondev/wowee/internal/warden"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.ClientPath()
	cfg, err := config.LoadClient(cfgPath)
	if err != nil {
		return fmt.Errorf("loading client config: %w", err)
	}

	logCloser, err := config.SetupLogging(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCloser.Close()

	slog.Info("wowee starting", "config", cfgPath, "data_root", cfg.DataRoot, "log_level", cfg.Logging.Level)

	profile, err := loadExpansion(cfg)
	if err != nil {
		return err
	}
	p, err := loadProtocol(cfg, profile)
	if err != nil {
		return err
	}

	resolver, hd, err := openAssets(ctx, cfg, profile)
	if err != nil {
		return err
	}
	defer resolver.Close()

	if cfg.Warden.Enabled {
		if _, err := loadMemoryImage(cfg, profile); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Assets.WatchHD {
		g.Go(func() error {
			return hd.Watch(gctx, resolver, profile.ID)
		})
	}

	if cfg.World.SessionKey == "" {
		slog.Info("no session key configured, world connection skipped")
	} else {
		g.Go(func() error {
			return runWorld(gctx, cfg, profile, p)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("wowee stopped")
	return nil
}

func loadExpansion(cfg config.Client) (*expansion.Profile, error) {
	reg := expansion.NewRegistry()
	n, err := reg.Initialize(cfg.DataRoot)
	if err != nil {
		return nil, fmt.Errorf("scanning expansions: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("no expansion profiles under %s: %w", cfg.DataRoot, expansion.ErrNotFound)
	}
	if cfg.Expansion != "" {
		if err := reg.SetActive(cfg.Expansion); err != nil {
			slog.Warn("configured expansion unavailable, keeping default",
				"expansion", cfg.Expansion, "active", reg.ActiveID(), "err", err)
		}
	}
	profile, err := reg.Active()
	if err != nil {
		return nil, err
	}
	slog.Info("expansion selected",
		"id", profile.ID,
		"version", profile.VersionString(),
		"build", profile.Build,
		"profiles", n)
	return profile, nil
}

func loadProtocol(cfg config.Client, profile *expansion.Profile) (*parsers.Parsers, error) {
	aliases, err := opcode.LoadAliases(filepath.Join(cfg.DataRoot, "opcodes", "aliases.json"))
	if err != nil {
		return nil, fmt.Errorf("loading opcode aliases: %w", err)
	}
	ops := opcode.NewTable()
	if _, err := ops.LoadJSON(profile.OpcodesPath(), aliases); err != nil {
		return nil, fmt.Errorf("loading opcodes: %w", err)
	}
	opcode.SetActive(ops)

	fields := loadUpdateFields(profile)
	updatefield.SetActive(fields)

	p := parsers.For(profile.ID).WithFields(fields)
	parsers.SetActive(p)
	return p, nil
}

// loadUpdateFields reads the profile's field table. The built-in defaults
// describe 3.3.5a only, so other expansions get an empty table instead.
func loadUpdateFields(profile *expansion.Profile) *updatefield.Table {
	fields := updatefield.NewTable()
	_, err := fields.LoadJSON(profile.UpdateFieldsPath())
	switch {
	case err == nil:
	case profile.ID == "wotlk":
		slog.Warn("update field table not loaded, using defaults",
			"path", profile.UpdateFieldsPath(), "err", err)
		fields.LoadDefaults()
	default:
		slog.Error("update field table not loaded, field names unavailable",
			"expansion", profile.ID, "path", profile.UpdateFieldsPath(), "err", err)
	}
	return fields
}

func openAssets(ctx context.Context, cfg config.Client, profile *expansion.Profile) (*asset.Resolver, *asset.HDPackManager, error) {
	locale := cfg.Locale
	if locale == "" {
		locale = profile.Locale
	}
	r, err := asset.Open(ctx, asset.Options{
		DataDir:       cfg.DataRoot,
		CacheBudget:   cfg.Assets.CacheBudget(),
		ManifestIndex: cfg.Assets.ManifestIndex,
		Archive: asset.ArchiveOptions{
			Locale:                locale,
			DisableLetterPatches:  cfg.Assets.DisableLetterPatches,
			DisableNumericPatches: cfg.Assets.DisableNumericPatches,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening assets: %w", err)
	}

	if _, err := os.Stat(profile.AssetManifest); err == nil {
		if err := r.LoadBaseManifest(profile.AssetManifest); err != nil {
			slog.Error("loading expansion manifest", "path", profile.AssetManifest, "err", err)
		}
	} else {
		slog.Info("no expansion manifest, using archives only", "path", profile.AssetManifest)
	}

	hd := asset.NewHDPackManager(cfg.Assets.HDDir)
	if _, err := hd.Discover(); err != nil {
		slog.Error("discovering hd packs", "err", err)
	}
	if err := hd.LoadSettings(cfg.Assets.SettingsFile); err != nil {
		slog.Warn("loading hd pack settings", "path", cfg.Assets.SettingsFile, "err", err)
	}
	hd.Apply(r, profile.ID)
	return r, hd, nil
}

// loadMemoryImage validates the reference executable. A missing one only
// disables memory checks; one that fails to load stops startup.
func loadMemoryImage(cfg config.Client, profile *expansion.Profile) (*warden.MemoryImage, error) {
	sets, err := warden.LoadPatchTable(cfg.Warden.PatchTable)
	if err != nil {
		slog.Warn("warden patch table not loaded", "path", cfg.Warden.PatchTable, "err", err)
	}

	dirs := warden.CandidateDirs()
	if cfg.Warden.IntegrityDir != "" {
		dirs = append([]string{cfg.Warden.IntegrityDir}, dirs...)
	}
	exe, err := warden.FindReferenceExecutable(dirs, warden.ExpectedSizeOfImage(sets, profile.Build))
	if err != nil {
		slog.Warn("warden reference executable not found, memory checks disabled", "err", err)
		return nil, nil
	}
	img, err := warden.LoadImage(exe, sets)
	if err != nil {
		return nil, fmt.Errorf("loading warden memory image: %w", err)
	}
	slog.Info("warden memory image loaded", "path", exe,
		"image_base", fmt.Sprintf("0x%X", img.ImageBase()), "patch_set", img.PatchSet())
	return img, nil
}

func runWorld(ctx context.Context, cfg config.Client, profile *expansion.Profile, p *parsers.Parsers) error {
	key, err := hex.DecodeString(cfg.World.SessionKey)
	if err != nil {
		return fmt.Errorf("decoding session key: %w", err)
	}

	d := session.NewDispatcher()
	session.RegisterWorldHandlers(d, p, logEvent)
	pinger := session.NewPinger(cfg.World.PingInterval)
	pinger.Register(d)

	if cfg.Warden.Enabled {
		wh, err := newWardenHandler(cfg)
		if err != nil {
			return err
		}
		wh.register(d)
	}

	s, err := session.Dial(ctx, cfg.World.Address, d, session.Config{
		ReadTimeout:   cfg.World.ReadTimeout,
		WriteTimeout:  cfg.World.WriteTimeout,
		SendQueueSize: cfg.World.SendQueueSize,
	})
	if err != nil {
		return err
	}

	cipher, err := crypto.NewHeaderCipher(profile.EffectiveWorldBuild(), key)
	if err != nil {
		s.Close()
		return fmt.Errorf("creating header cipher: %w", err)
	}
	if err := s.EnableEncryption(cipher); err != nil {
		s.Close()
		return err
	}
	ac, err := crypto.NewAntiCheatCrypto(key)
	if err != nil {
		s.Close()
		return fmt.Errorf("creating anti-cheat crypto: %w", err)
	}
	s.SetAntiCheat(ac)

	if err := s.Send(parsers.BuildCharEnumRequest()); err != nil {
		s.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(gctx) })
	g.Go(func() error { return pinger.Run(gctx, s) })
	return g.Wait()
}

func newWardenHandler(cfg config.Client) (*wardenHandler, error) {
	dir := cfg.Warden.ModuleCache
	if dir == "" {
		dir = warden.DefaultModuleCacheDir()
	}
	cache, err := warden.NewModuleCache(dir)
	if err != nil {
		return nil, err
	}
	var verifier *crypto.ModuleVerifier
	if cfg.Warden.RSAModulus != "" {
		verifier, err = crypto.NewModuleVerifier(cfg.Warden.RSAModulus)
		if err != nil {
			return nil, fmt.Errorf("warden rsa modulus: %w", err)
		}
	}
	return &wardenHandler{cache: cache, verifier: verifier}, nil
}

func logEvent(_ context.Context, s *session.Session, ev session.Event) {
	switch rec := ev.Record.(type) {
	case *parsers.CharEnumResponse:
		slog.Info("characters received", "session", s.ID(), "count", len(rec.Characters))
	case *parsers.MessageChat:
		slog.Info("chat", "type", rec.Type, "sender", rec.SenderName, "text", rec.Message)
	default:
		slog.Debug("world packet", "session", s.ID(), "opcode", ev.Opcode)
	}
}
