package driver

import (
	"runtime"

	"tileman/internal/lingo"
	"tileman/internal/observ"
	"tileman/internal/project"
)

// Options control one load.
type Options struct {
	InitName       string // root and subfolder init document name
	ColorName      string // subfolder colour document name
	Lingo          lingo.Options
	Jobs           int  // 0 means GOMAXPROCS
	Subfolders     bool // scan subdirectories of the root
	MaxDiagnostics int
	Cache          *DiskCache // nil disables caching
	Progress       ProgressSink
	Timer          *observ.Timer
}

// DefaultMaxDiagnostics bounds the diagnostic bag when Options leave it at 0.
const DefaultMaxDiagnostics = 1000

// OptionsFromConfig maps a manifest onto load options. Cache, Progress and
// Timer stay nil; the CLI fills them in.
func OptionsFromConfig(cfg project.Config) Options {
	return Options{
		InitName:   cfg.Tiles.Init,
		ColorName:  cfg.Tiles.Color,
		Lingo:      lingo.Options{DepthAwareSplit: cfg.Parse.DepthAwareSplit},
		Jobs:       cfg.Load.Jobs,
		Subfolders: cfg.Load.Subfolders,
	}
}

func (o Options) withDefaults() Options {
	if o.InitName == "" {
		o.InitName = project.DefaultInitName
	}
	if o.ColorName == "" {
		o.ColorName = project.DefaultColorName
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return o
}
