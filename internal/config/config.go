package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/wavecast/internal/playlist"
	"github.com/llehouerou/wavecast/internal/position"
)

type Config struct {
	MusicDir string `koanf:"music_dir"` // default directory for relative paths
	Volume   *int   `koanf:"volume"`    // initial volume 0-100 (default: 100)
	LoopMode string `koanf:"loop_mode"` // "none", "single" or "queue"

	// Last position: "auto" (default), "yes" or "no"; auto remembers tracks
	// of at least last_position_threshold seconds (default: 600).
	RememberLastPosition  string `koanf:"remember_last_position"`
	LastPositionThreshold int    `koanf:"last_position_threshold"`

	Podcast PodcastConfig `koanf:"podcast"`
	Lyrics  LyricsConfig  `koanf:"lyrics"`
	Desktop DesktopConfig `koanf:"desktop"`

	// Last.fm scrobbling (enabled when all three keys are set)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Log LogConfig `koanf:"log"`
}

// PodcastConfig holds episode download settings.
type PodcastConfig struct {
	DownloadDir           string `koanf:"download_dir"`
	SimultaneousDownloads int    `koanf:"simultaneous_downloads"` // 1-10 (default: 3)
}

// LyricsConfig holds lyric lookup settings.
type LyricsConfig struct {
	Enabled *bool  `koanf:"enabled"` // default: true
	Server  string `koanf:"server"`  // LRCLIB base URL
}

// DesktopConfig toggles desktop integrations.
type DesktopConfig struct {
	MPRIS         *bool `koanf:"mpris"`         // default: true
	Notifications *bool `koanf:"notifications"` // default: true
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	File  string `koanf:"file"`
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths()...)
}

func loadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	// last wins
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.MusicDir = expandPath(cfg.MusicDir)
	cfg.Podcast.DownloadDir = expandPath(cfg.Podcast.DownloadDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Lyrics.Server = strings.TrimSuffix(cfg.Lyrics.Server, "/")

	if _, err := cfg.PositionPolicy(); err != nil {
		return nil, err
	}
	if _, err := cfg.GetLoopMode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wavecast/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wavecast", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// PositionPolicy returns the last-position policy with defaults applied.
func (c *Config) PositionPolicy() (position.Policy, error) {
	mode, err := position.ParseMode(c.RememberLastPosition)
	if err != nil {
		return position.Policy{}, fmt.Errorf("remember_last_position: %w", err)
	}
	threshold := position.DefaultThreshold
	if c.LastPositionThreshold > 0 {
		threshold = time.Duration(c.LastPositionThreshold) * time.Second
	}
	return position.Policy{Mode: mode, Threshold: threshold}, nil
}

func (c *Config) GetLoopMode() (playlist.LoopMode, error) {
	m, err := playlist.ParseLoopMode(c.LoopMode)
	if err != nil {
		return playlist.LoopNone, fmt.Errorf("loop_mode: %w", err)
	}
	return m, nil
}

// GetVolume returns the configured volume clamped to 0-100.
func (c *Config) GetVolume() int {
	if c.Volume == nil {
		return 100
	}
	return max(0, min(100, *c.Volume))
}

// GetPodcastConfig returns the podcast configuration with defaults applied.
func (c *Config) GetPodcastConfig() PodcastConfig {
	cfg := c.Podcast
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(xdg.UserDirs.Music, "podcasts")
	}
	if cfg.SimultaneousDownloads <= 0 || cfg.SimultaneousDownloads > 10 {
		cfg.SimultaneousDownloads = 3
	}
	return cfg
}

func (c *Config) LyricsEnabled() bool {
	return c.Lyrics.Enabled == nil || *c.Lyrics.Enabled
}

func (c *Config) MPRISEnabled() bool {
	return c.Desktop.MPRIS == nil || *c.Desktop.MPRIS
}

func (c *Config) NotificationsEnabled() bool {
	return c.Desktop.Notifications == nil || *c.Desktop.Notifications
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != "" && c.Lastfm.SessionKey != ""
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, "wavecast", "wavecast.log")
	}
	return cfg
}
