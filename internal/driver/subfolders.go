package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"tileman/internal/deser"
	"tileman/internal/source"
	"tileman/internal/tiles"
	"tileman/internal/trace"
)

// SubfolderScan is what a load learned about one subdirectory of the root.
type SubfolderScan struct {
	Name         string // NFC-normalised directory name
	Path         string // directory path, recorded on the category
	InitPath     string
	ColorPath    string // empty when the subfolder has no colour document
	Category     tiles.TileCategory
	ErroredLines []deser.ErroredLine
	// Failed is set when the init document could not be read. The category
	// of a failed subfolder is not merged into the catalogue.
	Failed bool

	initFile  *source.File
	colorFile *source.File
}

// ListSubfolders returns the subdirectories of root that hold an init
// document, sorted by normalised name. Entries without one are skipped.
func ListSubfolders(root, initName string) ([]SubfolderScan, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", root, err)
	}
	scans := make([]SubfolderScan, 0, len(entries))
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		info, err := os.Stat(dir) // follows symlinks, unlike e.IsDir
		if err != nil || !info.IsDir() {
			continue
		}
		initPath := filepath.Join(dir, initName)
		if st, err := os.Stat(initPath); err != nil || st.IsDir() {
			continue
		}
		scans = append(scans, SubfolderScan{
			Name:     norm.NFC.String(e.Name()),
			Path:     dir,
			InitPath: initPath,
		})
	}
	sort.SliceStable(scans, func(i, j int) bool { return scans[i].Name < scans[j].Name })
	return scans, nil
}

// forEach runs fn for 0..n-1 on at most jobs goroutines. Each call owns
// slot i of whatever slice it writes, so no locking is needed.
func forEach(ctx context.Context, jobs, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, n)))
	for i := range n {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// readSubfolders loads the documents of every scan into fileSet. Unreadable
// init documents mark the scan failed; an unreadable colour document is
// logged and the default colour applies.
func readSubfolders(ctx context.Context, fileSet *source.FileSet, scans []SubfolderScan, opts Options) error {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	return forEach(ctx, opts.Jobs, len(scans), func(_ context.Context, i int) error {
		sc := &scans[i]
		started := time.Now()
		emit(opts.Progress, Event{Subfolder: sc.Name, Stage: StageRead, Status: StatusWorking})

		id, err := fileSet.Load(sc.InitPath)
		if err != nil {
			sc.Failed = true
			sc.ErroredLines = append(sc.ErroredLines, ioErroredLine(sc.InitPath, err))
			trace.Error(tracer, trace.ScopeSubfolder, "read:"+sc.Name, err, parent)
			emit(opts.Progress, Event{Subfolder: sc.Name, Stage: StageRead, Status: StatusError, Err: err, Elapsed: time.Since(started)})
			return nil
		}
		sc.initFile = fileSet.Get(id)

		colorPath := filepath.Join(sc.Path, opts.ColorName)
		id, err = fileSet.Load(colorPath)
		switch {
		case err == nil:
			sc.ColorPath = colorPath
			sc.colorFile = fileSet.Get(id)
		case !errors.Is(err, os.ErrNotExist):
			sc.ErroredLines = append(sc.ErroredLines, ioErroredLine(colorPath, err))
			trace.Error(tracer, trace.ScopeSubfolder, "read:"+sc.Name, err, parent)
		}

		trace.Point(tracer, trace.ScopeLine, "read:"+sc.Name, sc.InitPath, parent)
		emit(opts.Progress, Event{Subfolder: sc.Name, Stage: StageRead, Status: StatusDone, Elapsed: time.Since(started)})
		return nil
	})
}

// collectSubfolders runs the subfolder collector over every readable scan.
func collectSubfolders(ctx context.Context, dec *deser.Decoder, scans []SubfolderScan, opts Options) error {
	return forEach(ctx, opts.Jobs, len(scans), func(ctx context.Context, i int) error {
		sc := &scans[i]
		if sc.Failed {
			return nil
		}
		started := time.Now()
		emit(opts.Progress, Event{Subfolder: sc.Name, Stage: StageCollect, Status: StatusWorking})
		_, span := trace.BeginCtx(ctx, trace.ScopeSubfolder, "subfolder:"+sc.Name)

		sf := deser.Subfolder{Name: sc.Name, Path: sc.Path, Init: sc.initFile.Text()}
		if sc.colorFile != nil {
			sf.Color = sc.colorFile.Text()
			sf.HasColor = true
		}
		category, errored := dec.CollectSubfolder(sf)
		sc.Category = category
		sc.ErroredLines = append(sc.ErroredLines, errored...)

		span.WithExtra("tiles", strconv.Itoa(len(category.Tiles))).
			WithExtra("errors", strconv.Itoa(len(sc.ErroredLines))).
			End("")
		emit(opts.Progress, Event{Subfolder: sc.Name, Stage: StageCollect, Status: StatusDone, Elapsed: time.Since(started)})
		return nil
	})
}

func ioErroredLine(path string, err error) deser.ErroredLine {
	de := deser.IOFailure(path, err)
	if errors.Is(err, os.ErrNotExist) {
		de = deser.FileMissing(path)
	}
	return deser.ErroredLine{Line: path, Err: de}
}

// mergeSource returns the categories of readable subfolders in scan order.
func mergeSource(scans []SubfolderScan) []tiles.TileCategory {
	out := make([]tiles.TileCategory, 0, len(scans))
	for i := range scans {
		if !scans[i].Failed {
			out = append(out, scans[i].Category)
		}
	}
	return out
}
