package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "tileman.toml"

// FindManifest walks up from startDir to locate tileman.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Target is a resolved tile directory.
type Target struct {
	Root     string // directory holding the root init document
	InitPath string // root init document
}

// ResolveTarget accepts either a tiles directory or a path to its init
// document. initName comes from [tiles].init.
func ResolveTarget(arg, initName string) (Target, error) {
	if initName == "" {
		initName = DefaultInitName
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return Target{}, fmt.Errorf("failed to resolve %q: %w", arg, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Target{}, fmt.Errorf("failed to stat %q: %w", arg, err)
	}
	if info.IsDir() {
		return Target{Root: abs, InitPath: filepath.Join(abs, initName)}, nil
	}
	return Target{Root: filepath.Dir(abs), InitPath: abs}, nil
}
