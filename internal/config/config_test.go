package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		DownloaderBin:   "yt-dlp",
		DownloadDir:     "./downloads",
		HistoryFile:     "./history.json",
		DownloadTimeout: 30 * time.Minute,
		ResolveTimeout:  2 * time.Minute,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty downloader binary", func(c *Config) { c.DownloaderBin = "" }},
		{"empty download dir", func(c *Config) { c.DownloadDir = "" }},
		{"empty history file", func(c *Config) { c.HistoryFile = "" }},
		{"negative download timeout", func(c *Config) { c.DownloadTimeout = -time.Second }},
		{"negative resolve timeout", func(c *Config) { c.ResolveTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("YTMP3_DOWNLOAD_DIR", filepath.Join(dir, "downloads"))
	t.Setenv("YTMP3_HISTORY_FILE", filepath.Join(dir, "state", "history.json"))
	t.Setenv("YTMP3_DOWNLOAD_TIMEOUT", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "yt-dlp", cfg.DownloaderBin)
	assert.Equal(t, 10*time.Minute, cfg.DownloadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)

	// Load creates the download dir and the history file's parent.
	assert.DirExists(t, filepath.Join(dir, "downloads"))
	assert.DirExists(t, filepath.Join(dir, "state"))
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("YTMP3_DOWNLOAD_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
