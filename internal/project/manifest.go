package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultInitName  = "init.txt"
	DefaultColorName = "color.txt"
	DefaultAddr      = ":8080"
)

// Manifest is a decoded tileman.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	// Unknown lists keys the decoder did not map, e.g. "load.job".
	Unknown []string
}

type Config struct {
	Tiles  TilesConfig  `toml:"tiles"`
	Parse  ParseConfig  `toml:"parse"`
	Load   LoadConfig   `toml:"load"`
	Serve  ServeConfig  `toml:"serve"`
	Export ExportConfig `toml:"export"`
}

type TilesConfig struct {
	Init  string `toml:"init"`
	Color string `toml:"color"`
}

type ParseConfig struct {
	DepthAwareSplit bool `toml:"depth_aware_split"`
}

type LoadConfig struct {
	Jobs       int  `toml:"jobs"`
	Subfolders bool `toml:"subfolders"`
	Cache      bool `toml:"cache"`
}

type ServeConfig struct {
	Addr string `toml:"addr"`
}

type ExportConfig struct {
	DSN string `toml:"dsn"`
}

// DefaultConfig is what an absent manifest means.
func DefaultConfig() Config {
	return Config{
		Tiles: TilesConfig{Init: DefaultInitName, Color: DefaultColorName},
		Load:  LoadConfig{Subfolders: true, Cache: true},
		Serve: ServeConfig{Addr: DefaultAddr},
	}
}

// LoadManifest finds and decodes tileman.toml starting at startDir. ok is
// false when there is none; the caller then uses DefaultConfig.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := DecodeManifest(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DecodeManifest decodes one manifest file over DefaultConfig.
func DecodeManifest(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("tiles", "init") && strings.TrimSpace(cfg.Tiles.Init) == "" {
		return nil, fmt.Errorf("%s: [tiles].init must not be empty", path)
	}
	if meta.IsDefined("tiles", "color") && strings.TrimSpace(cfg.Tiles.Color) == "" {
		return nil, fmt.Errorf("%s: [tiles].color must not be empty", path)
	}
	for _, name := range []string{cfg.Tiles.Init, cfg.Tiles.Color} {
		if filepath.Base(name) != name {
			return nil, fmt.Errorf("%s: %q must be a plain file name", path, name)
		}
	}
	if cfg.Load.Jobs < 0 {
		return nil, fmt.Errorf("%s: [load].jobs must be >= 0", path)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)

	return &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Config:  cfg,
		Unknown: unknown,
	}, nil
}
