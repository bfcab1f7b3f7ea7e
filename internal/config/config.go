package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/wowee/internal/constants"
)

// Environment overrides.
const (
	EnvConfigPath            = "WOWEE_CONFIG"
	EnvLogLevel              = "WOWEE_LOG_LEVEL"
	EnvLogFlushMS            = "WOWEE_LOG_FLUSH_MS"
	EnvLogDedupMS            = "WOWEE_LOG_DEDUP_MS"
	EnvLogStdout             = "WOWEE_LOG_STDOUT"
	EnvIntegrityDir          = "WOWEE_INTEGRITY_DIR"
	EnvDisableLetterPatches  = "WOWEE_DISABLE_LETTER_PATCHES"
	EnvDisableNumericPatches = "WOWEE_DISABLE_NUMERIC_PATCHES"
)

// DefaultClientPath is used when WOWEE_CONFIG is not set.
const DefaultClientPath = "config/client.yaml"

// Client holds all configuration of the client core.
type Client struct {
	DataRoot string `yaml:"data_root"`

	// Expansion overrides the registry's default choice when set.
	Expansion string `yaml:"expansion"`
	Locale    string `yaml:"locale"`

	Logging Logging `yaml:"logging"`
	Assets  Assets  `yaml:"assets"`
	World   World   `yaml:"world"`
	Warden  Warden  `yaml:"warden"`
}

// Logging configures SetupLogging.
type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`

	Stdout bool          `yaml:"stdout"`
	Flush  time.Duration `yaml:"flush"` // 0 = unbuffered
	Dedup  time.Duration `yaml:"dedup"` // 0 = off
}

// Assets configures the resolver.
type Assets struct {
	CacheBudgetMB         int64  `yaml:"cache_budget_mb"` // 0 = derived from RAM
	DisableLetterPatches  bool   `yaml:"disable_letter_patches"`
	DisableNumericPatches bool   `yaml:"disable_numeric_patches"`
	HDDir                 string `yaml:"hd_dir"`
	WatchHD               bool   `yaml:"watch_hd"`
	ManifestIndex         bool   `yaml:"manifest_index"`
	SettingsFile          string `yaml:"settings_file"`
}

// World holds the world-server connection.
type World struct {
	Address    string `yaml:"address"`
	SessionKey string `yaml:"session_key"` // hex, 40 bytes

	WriteTimeout  time.Duration `yaml:"write_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	SendQueueSize int           `yaml:"send_queue_size"`
	PingInterval  time.Duration `yaml:"ping_interval"`
}

// Warden configures the anti-cheat memory image.
type Warden struct {
	Enabled      bool   `yaml:"enabled"`
	IntegrityDir string `yaml:"integrity_dir"`
	PatchTable   string `yaml:"patch_table"`
	ModuleCache  string `yaml:"module_cache"`

	// RSAModulus is the module signing key modulus, little-endian hex.
	// Empty disables signature checks.
	RSAModulus string `yaml:"rsa_modulus"`
}

// DefaultClient returns Client config with sensible defaults.
func DefaultClient() Client {
	return Client{
		DataRoot: "Data",
		Locale:   "enUS",
		Logging: Logging{
			Level:  "info",
			File:   "logs/wowee.log",
			Stdout: true,
		},
		Assets: Assets{
			HDDir:        "hd",
			SettingsFile: "settings.cfg",
		},
		World: World{
			Address:       "127.0.0.1:8085",
			WriteTimeout:  constants.DefaultWriteTimeout,
			ReadTimeout:   constants.DefaultReadTimeout,
			SendQueueSize: constants.DefaultSendQueueSize,
			PingInterval:  constants.DefaultPingInterval,
		},
		Warden: Warden{
			PatchTable: "misc/warden_patches.yaml",
		},
	}
}

// ClientPath returns WOWEE_CONFIG or the default path.
func ClientPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultClientPath
}

// LoadClient loads client config from a YAML file and applies environment
// overrides. If the file doesn't exist, returns defaults.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Client) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogStdout); v != "" {
		c.Logging.Stdout = truthy(v)
	}
	if v := os.Getenv(EnvLogFlushMS); v != "" {
		d, err := millis(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogFlushMS, err)
		}
		c.Logging.Flush = d
	}
	if v := os.Getenv(EnvLogDedupMS); v != "" {
		d, err := millis(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogDedupMS, err)
		}
		c.Logging.Dedup = d
	}
	if v := os.Getenv(EnvIntegrityDir); v != "" {
		c.Warden.IntegrityDir = v
	}
	if v := os.Getenv(EnvDisableLetterPatches); v != "" {
		c.Assets.DisableLetterPatches = truthy(v)
	}
	if v := os.Getenv(EnvDisableNumericPatches); v != "" {
		c.Assets.DisableNumericPatches = truthy(v)
	}
	return nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func millis(v string) (time.Duration, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid milliseconds %q", v)
	}
	return time.Duration(n) * time.Millisecond, nil
}

// CacheBudget returns the configured budget in bytes, 0 when unset.
func (a Assets) CacheBudget() int64 {
	return a.CacheBudgetMB << 20
}
