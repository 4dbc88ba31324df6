package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/netaudioctl/netaudio-go/pkg/log"
)

// Defaults, matching app_config.py's DEFAULT_MDNS_TIMEOUT and
// mdns_cache.py's DEFAULT_CACHE_TTL/CACHE_FILENAME.
const (
	DefaultMDNSTimeout = 5 * time.Second
	MinMDNSTimeout     = 350 * time.Millisecond
	DefaultCacheTTL    = 600 * time.Second
	DefaultCacheFile   = "netaudio_mdns_cache.json"
)

// Config is the runtime configuration surface spec.md §6 enumerates.
type Config struct {
	// MDNSTimeoutSeconds bounds how long a discovery browse runs before
	// giving up (seconds in YAML; app_config.py's mdns_timeout, which
	// "depending on caller" ranges 1.25-5s; a value below MinMDNSTimeout
	// is replaced by DefaultMDNSTimeout).
	MDNSTimeoutSeconds float64 `yaml:"mdns_timeout"`

	// Interface restricts discovery and the multicast monitor to one
	// named network interface. Empty means "all interfaces."
	Interface string `yaml:"interface"`

	// DumpPayloads is the dump_payloads flag (spec.md §6). It is loaded
	// from YAML and kept on Config; no package reads it, so no raw frames
	// are dumped.
	DumpPayloads bool `yaml:"dump_payloads"`

	// Refresh forces a cache bypass, re-running full discovery.
	Refresh bool `yaml:"refresh"`

	// CacheTTLSeconds is the state cache's entry lifetime (seconds in
	// YAML; default 600, per mdns_cache.py's DEFAULT_CACHE_TTL).
	CacheTTLSeconds float64 `yaml:"cache_ttl"`

	// CacheDir holds the local cache file; default is the system temp
	// directory, matching mdns_cache.py's tempfile.gettempdir() fallback.
	CacheDir string `yaml:"cache_dir"`

	// RedisAddr optionally points at a Redis instance for cross-process
	// state sharing (spec.md §6's "optional external hash-map store").
	// Empty disables cache.RedisStore; the local cache.FileStore is used
	// instead.
	RedisAddr string `yaml:"redis_addr"`
}

// MDNSTimeout returns the configured timeout as a time.Duration.
func (c *Config) MDNSTimeout() time.Duration {
	return time.Duration(c.MDNSTimeoutSeconds * float64(time.Second))
}

// CacheTTL returns the configured cache TTL as a time.Duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds * float64(time.Second))
}

// CachePath returns the full path to the local cache file.
func (c *Config) CachePath() string {
	return filepath.Join(c.CacheDir, DefaultCacheFile)
}

// Default returns a Config populated with this system's defaults.
func Default() Config {
	return Config{
		MDNSTimeoutSeconds: DefaultMDNSTimeout.Seconds(),
		CacheTTLSeconds:    DefaultCacheTTL.Seconds(),
		CacheDir:           os.TempDir(),
	}
}

// Load reads a YAML config file at path, applies defaults for zero
// fields, and floors/validates the result, logging a warning for every
// value it had to correct (app_config.py's mdns_timeout setter prints
// the same kind of warning to stderr on an out-of-range value).
func Load(path string, logger log.Logger) (*Config, error) {
	if logger == nil {
		logger = log.NoopLogger{}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, err
	}

	loaded := Config{}
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}

	if loaded.MDNSTimeoutSeconds != 0 {
		cfg.MDNSTimeoutSeconds = loaded.MDNSTimeoutSeconds
	}
	cfg.Interface = loaded.Interface
	cfg.DumpPayloads = loaded.DumpPayloads
	cfg.Refresh = loaded.Refresh
	if loaded.CacheTTLSeconds != 0 {
		cfg.CacheTTLSeconds = loaded.CacheTTLSeconds
	}
	if loaded.CacheDir != "" {
		cfg.CacheDir = loaded.CacheDir
	}
	cfg.RedisAddr = loaded.RedisAddr

	cfg.validate(logger)
	return &cfg, nil
}

// validate floors out-of-range values to their defaults, logging a
// warning for each correction, matching app_config.py's setter
// behavior ("Warning: mDNS timeout must be positive... Using default").
func (c *Config) validate(logger log.Logger) {
	if c.MDNSTimeout() < MinMDNSTimeout {
		logger.Log(log.Event{
			Direction: log.DirectionIn,
			Layer:     log.LayerService,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: "mdns_timeout below minimum, using default",
				Context: DefaultMDNSTimeout.String(),
			},
		})
		c.MDNSTimeoutSeconds = DefaultMDNSTimeout.Seconds()
	}

	if c.CacheTTLSeconds <= 0 {
		logger.Log(log.Event{
			Direction: log.DirectionIn,
			Layer:     log.LayerService,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: "cache_ttl must be positive, using default",
				Context: DefaultCacheTTL.String(),
			},
		})
		c.CacheTTLSeconds = DefaultCacheTTL.Seconds()
	}

	if c.CacheDir == "" {
		c.CacheDir = os.TempDir()
	}
}
