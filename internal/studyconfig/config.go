// Package studyconfig provides the StudyConfig struct and loader for
// .truststudy.yaml project-level configuration files.
package studyconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for study configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultDataDir    = "."
	DefaultResultsDir = "results/"

	DefaultServerPort = 4680
)

// PathsConfig holds directory paths for session data and exports.
type PathsConfig struct {
	Data    string `yaml:"data,omitempty"`
	Results string `yaml:"results,omitempty"`
}

// CatalogConfig points to an optional catalog override file. Empty
// means the embedded default catalog.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds browser-flow server settings.
type ServerConfig struct {
	Port      int   `yaml:"port,omitempty"`
	NoBrowser *bool `yaml:"no_browser,omitempty"`
}

// StudyConfig is the top-level configuration loaded from .truststudy.yaml.
type StudyConfig struct {
	Paths   PathsConfig   `yaml:"paths,omitempty"`
	Catalog CatalogConfig `yaml:"catalog,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// New returns a StudyConfig with all hard-coded defaults populated.
func New() *StudyConfig {
	return &StudyConfig{
		Paths: PathsConfig{
			Data:    DefaultDataDir,
			Results: DefaultResultsDir,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
	}
}

// Load finds .truststudy.yaml by walking up from startDir (max 10
// levels), unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*StudyConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .truststudy.yaml: %w", err)
	}

	var fileCfg StudyConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .truststudy.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .truststudy.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".truststudy.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *StudyConfig) {
	if src.Paths.Data != "" {
		dst.Paths.Data = src.Paths.Data
	}
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}
	if src.Catalog.Path != "" {
		dst.Catalog.Path = src.Catalog.Path
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}
}

func boolPtr(b bool) *bool {
	return &b
}
