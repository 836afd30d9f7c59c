package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tileman/internal/diag"
	"tileman/internal/diagfmt"
	"tileman/internal/driver"
	"tileman/internal/observ"
	"tileman/internal/project"
)

// settings is the merged view of tileman.toml and the command line for one
// target directory.
type settings struct {
	Target   project.Target
	Manifest *project.Manifest // nil when there is none
	Config   project.Config
	Options  driver.Options
	Color    bool
	Quiet    bool
	Timings  bool
	PathMode diagfmt.PathMode
}

// loadFlags registers the flags shared by every command that loads a
// directory.
func loadFlags(cmd *cobra.Command) {
	cmd.Flags().Int("jobs", 0, "max parallel workers for subfolders (0=auto)")
	cmd.Flags().Bool("no-subfolders", false, "read only the root init document")
	cmd.Flags().Bool("depth-aware", false, "split lists at top-level commas only")
	cmd.Flags().Bool("no-cache", false, "disable the persistent disk cache")
}

func resolveSettings(cmd *cobra.Command, arg string) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	s := &settings{Config: project.DefaultConfig()}
	switch {
	case configPath != "":
		m, err := project.DecodeManifest(configPath)
		if err != nil {
			return nil, err
		}
		s.Manifest = m
	default:
		m, ok, err := project.LoadManifest(arg)
		if err != nil {
			return nil, err
		}
		if ok {
			s.Manifest = m
		}
	}
	if s.Manifest != nil {
		s.Config = s.Manifest.Config
	}

	s.Target, err = project.ResolveTarget(arg, s.Config.Tiles.Init)
	if err != nil {
		return nil, err
	}

	if s.Quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.Timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.Color, err = colorEnabled(cmd); err != nil {
		return nil, err
	}
	pathMode, err := root.GetString("path-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	s.PathMode = diagfmt.ParsePathMode(pathMode)

	if s.Manifest != nil && !s.Quiet {
		for _, key := range s.Manifest.Unknown {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: unknown key %q\n", s.Manifest.Path, key)
		}
	}

	s.Options = driver.OptionsFromConfig(s.Config)
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	s.Options.MaxDiagnostics = maxDiagnostics
	if err := applyLoadFlags(cmd, s); err != nil {
		return nil, err
	}
	if s.Timings {
		s.Options.Timer = observ.NewTimer()
	}
	return s, nil
}

// applyLoadFlags lets explicitly set flags override the manifest.
func applyLoadFlags(cmd *cobra.Command, s *settings) error {
	flags := cmd.Flags()
	if flags.Lookup("jobs") == nil {
		return nil
	}
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return fmt.Errorf("--jobs must be >= 0")
		}
		s.Options.Jobs = jobs
	}
	if noSub, _ := flags.GetBool("no-subfolders"); noSub {
		s.Options.Subfolders = false
	}
	if depth, _ := flags.GetBool("depth-aware"); depth {
		s.Options.Lingo.DepthAwareSplit = true
	}
	useCache := s.Config.Load.Cache
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		useCache = false
	}
	if useCache {
		cache, err := driver.OpenDiskCache("tileman")
		if err != nil {
			// кэш необязателен
			if !s.Quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), diag.FormatShort([]diag.Diagnostic{driver.CacheError(err)}, "", false))
			}
		} else {
			s.Options.Cache = cache
		}
	}
	return nil
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.Color,
		PathMode:  s.PathMode,
		BaseDir:   s.Target.Root,
		ShowNotes: true,
		ShowText:  true,
	}
}
