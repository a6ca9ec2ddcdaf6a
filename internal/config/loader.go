package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name searched in the working
// directory and the XDG config directory.
const DefaultConfigFile = ".wikigrab"

// ErrConfigNotFound is returned when no config file exists at any of the
// searched locations. Callers treat it as "run with defaults".
var ErrConfigNotFound = errors.New("config file not found")

// File holds the optional YAML configuration. Everything in it is
// optional; unset fields leave the built-in defaults in place.
type File struct {
	// UserAgents replaces the built-in browser user agent pool.
	UserAgents []string `yaml:"user_agents"`

	// Referer replaces the default Referer header.
	Referer string `yaml:"referer"`

	// APIEndpoint replaces the default MediaWiki action API URL.
	APIEndpoint string `yaml:"api_endpoint"`

	// CommonsOrigin replaces the default media repository origin.
	CommonsOrigin string `yaml:"commons_origin"`

	// Narrate configures the text-to-speech command.
	Narrate NarrateConfig `yaml:"narrate"`
}

// NarrateConfig holds text-to-speech settings. The API key should come from
// the environment; the file field exists for setups where that is not
// possible, and is redacted from all log output.
type NarrateConfig struct {
	APIKey          string  `yaml:"api_key"`
	Endpoint        string  `yaml:"endpoint"`
	VoiceID         string  `yaml:"voice_id"`
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
	Style           float64 `yaml:"style"`
	Speed           float64 `yaml:"speed"`
}

// FindConfigFile locates the config file. Search order:
//  1. explicit path, if given (missing file is an error here, not a fallback)
//  2. .wikigrab in the current working directory
//  3. .wikigrab in the XDG config directory
//
// Returns ErrConfigNotFound when nothing is found and no explicit path
// was given.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{
		DefaultConfigFile,
		filepath.Join(XDGConfigDir(), DefaultConfigFile),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrConfigNotFound
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag or well-known locations
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &f, nil
}

// ApplyTo overlays the file's non-empty settings onto the config.
func (f *File) ApplyTo(c *Config) {
	if f == nil {
		return
	}
	if f.APIEndpoint != "" {
		c.APIEndpoint = f.APIEndpoint
	}
	if f.CommonsOrigin != "" {
		c.CommonsOrigin = f.CommonsOrigin
	}
	c.File = f
}
