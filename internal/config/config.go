package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These match the behavior of casual page
// views on Wikimedia sites; the delay bounds in particular are deliberate
// pacing to avoid triggering anti-scraping defenses.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikigrab"

	// DefaultMaxImages caps how many Commons images are located and
	// downloaded per article.
	DefaultMaxImages = 15

	// DefaultMinWidth is the minimum rendition width requested when
	// upgrading thumbnails, in pixels.
	DefaultMinWidth = 800

	// DefaultTextFile receives the rendered plain-text document.
	DefaultTextFile = "wiki_content.txt"

	// DefaultHTMLFile receives the raw article HTML.
	DefaultHTMLFile = "wiki_content.html"

	// DefaultImageDir receives downloaded images.
	DefaultImageDir = "wiki_images"

	// DefaultManifestFile receives the markdown run manifest.
	DefaultManifestFile = "wiki_report.md"

	// DefaultTimeout is the per-request HTTP timeout. Wikimedia endpoints
	// are fast; a hung request should not stall the pipeline for long.
	DefaultTimeout = 30 * time.Second

	// DefaultMinDelay and DefaultMaxDelay bound the randomized politeness
	// delay between image transfers.
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 2 * time.Second

	// APIKeyEnv is the environment variable that carries the
	// text-to-speech API key. The key is never stored in code.
	APIKeyEnv = "ELEVENLABS_API_KEY"

	// DefaultNarrateEndpoint is the text-to-speech API base URL. The
	// voice ID is appended as a path segment.
	DefaultNarrateEndpoint = "https://api.elevenlabs.io/v1/text-to-speech"

	// DefaultVoiceID is the narration voice used when none is configured.
	DefaultVoiceID = "pqHfZKP75CvOlQylNhV4"

	// DefaultNarrateModel is the synthesis model used when none is
	// configured.
	DefaultNarrateModel = "eleven_monolingual_v1"

	// DefaultNarrateOutput receives synthesized audio.
	DefaultNarrateOutput = "output.mp3"

	// DefaultNarrateInput is the text file read by the narrate command.
	DefaultNarrateInput = "script.txt"
)

// Config holds all options for a grab run. It is populated from defaults,
// the optional config file, CLI flags, and interactive prompts, then passed
// through the application rather than read from global state.
//
// Design decision: A single flat struct, like the rest of this tool's
// configuration surface, because the option count is small.
type Config struct {
	// APIEndpoint is the MediaWiki action API URL.
	APIEndpoint string

	// CommonsOrigin is the media repository site origin.
	CommonsOrigin string

	// MaxImages caps located and downloaded images per article.
	MaxImages int

	// MinWidth is the minimum upgraded rendition width in pixels.
	MinWidth int

	// TextFile, HTMLFile, ImageDir, and ManifestFile are the output
	// artifact paths.
	TextFile     string
	HTMLFile     string
	ImageDir     string
	ManifestFile string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MinDelay and MaxDelay bound the politeness delay between image
	// transfers.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is an explicit config file path. Empty means search
	// the default locations.
	ConfigFilePath string

	// File holds settings loaded from the config file.
	File *File
}

// NewConfig creates a Config with defaults. Several defaults are non-zero,
// so relying on zero values would be wrong; this constructor also documents
// what the defaults are.
func NewConfig() *Config {
	return &Config{
		APIEndpoint:   "https://en.wikipedia.org/w/api.php",
		CommonsOrigin: "https://commons.wikimedia.org",
		MaxImages:     DefaultMaxImages,
		MinWidth:      DefaultMinWidth,
		TextFile:      DefaultTextFile,
		HTMLFile:      DefaultHTMLFile,
		ImageDir:      DefaultImageDir,
		ManifestFile:  DefaultManifestFile,
		Timeout:       DefaultTimeout,
		MinDelay:      DefaultMinDelay,
		MaxDelay:      DefaultMaxDelay,
	}
}

// XDGConfigDir returns the XDG config directory for wikigrab.
// On Linux: ~/.config/wikigrab
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after flags and prompts are applied, before any network
// activity, so bad input fails fast with a clear message.
func (c *Config) Validate() error {
	if c.MaxImages <= 0 {
		return ErrInvalidMaxImages
	}
	if c.MinWidth < 0 {
		return ErrInvalidMinWidth
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return ErrInvalidDelayRange
	}
	if c.TextFile == "" || c.ImageDir == "" {
		return ErrMissingOutputPath
	}
	return nil
}
