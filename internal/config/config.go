package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration settings.
type Config struct {
	DownloaderBin string `envconfig:"DOWNLOADER_BIN" default:"yt-dlp"`
	FFmpegBin     string `envconfig:"FFMPEG_BIN" default:""`

	DownloadDir string `envconfig:"DOWNLOAD_DIR" default:"./downloads"`
	HistoryFile string `envconfig:"HISTORY_FILE" default:"./history.json"`

	DownloadTimeout time.Duration `envconfig:"DOWNLOAD_TIMEOUT" default:"30m"`
	ResolveTimeout  time.Duration `envconfig:"RESOLVE_TIMEOUT" default:"2m"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Validate checks the configuration for invalid or missing values.
// Returns an error describing the first invalid setting found.
func (c *Config) Validate() error {
	if c.DownloaderBin == "" {
		return fmt.Errorf("downloader binary cannot be empty")
	}

	if c.DownloadDir == "" {
		return fmt.Errorf("download directory cannot be empty")
	}
	if c.HistoryFile == "" {
		return fmt.Errorf("history file cannot be empty")
	}

	if c.DownloadTimeout < 0 {
		return fmt.Errorf("download timeout cannot be negative: %s", c.DownloadTimeout)
	}
	if c.ResolveTimeout < 0 {
		return fmt.Errorf("resolve timeout cannot be negative: %s", c.ResolveTimeout)
	}

	return nil
}
