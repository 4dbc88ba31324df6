package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMDNSTimeout, cfg.MDNSTimeout())
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
}

func TestLoadAppliesProvidedValues(t *testing.T) {
	path := writeConfigFile(t, `
mdns_timeout: 2.5
interface: eth0
dump_payloads: true
refresh: true
cache_ttl: 120
cache_dir: /var/lib/netaudio
redis_addr: localhost:6379
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.MDNSTimeout())
	assert.Equal(t, "eth0", cfg.Interface)
	assert.True(t, cfg.DumpPayloads)
	assert.True(t, cfg.Refresh)
	assert.Equal(t, 120*time.Second, cfg.CacheTTL())
	assert.Equal(t, "/var/lib/netaudio", cfg.CacheDir)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadFloorsLowMDNSTimeout(t *testing.T) {
	path := writeConfigFile(t, "mdns_timeout: 0.05\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMDNSTimeout, cfg.MDNSTimeout())
}

func TestLoadFloorsNonPositiveCacheTTL(t *testing.T) {
	path := writeConfigFile(t, "cache_ttl: -5\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "mdns_timeout: [not a number\n")

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestCachePathJoinsDirAndFixedFilename(t *testing.T) {
	cfg := Default()
	cfg.CacheDir = "/tmp/netaudio"
	assert.Equal(t, "/tmp/netaudio/netaudio_mdns_cache.json", cfg.CachePath())
}
