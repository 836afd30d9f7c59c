package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"tileman/internal/deser"
	"tileman/internal/diag"
	"tileman/internal/project"
	"tileman/internal/source"
	"tileman/internal/trace"
)

// Result is one loaded tiles directory.
type Result struct {
	Target     project.Target
	Files      *source.FileSet
	Init       deser.TileInit
	Subfolders []SubfolderScan
	Key        source.Digest
	Cached     bool
}

// Load reads the root init document of target, scans its subfolders and
// assembles the catalogue. A missing or unreadable root document is an
// error; everything below that is reported through the error logs.
func Load(ctx context.Context, target project.Target, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "load")
	defer span.End(target.Root)
	tracer := trace.FromContext(ctx)

	res := &Result{Target: target, Files: source.NewFileSetWithBase(target.Root)}
	dec := deser.NewDecoder(opts.Lingo)

	// read-root
	idx := opts.Timer.Begin("read-root")
	_, rootSpan := trace.BeginCtx(ctx, trace.ScopePass, "read-root")
	rootID, err := res.Files.Load(target.InitPath)
	rootSpan.End(target.InitPath)
	opts.Timer.End(idx, "")
	if err != nil {
		de := deser.IOFailure(target.InitPath, err)
		if errors.Is(err, os.ErrNotExist) {
			de = deser.FileMissing(target.InitPath)
		}
		trace.Error(tracer, trace.ScopePass, "read-root", de, span.ID())
		return nil, fmt.Errorf("failed to read root init document: %w", de)
	}
	rootFile := res.Files.Get(rootID)

	// subfolders
	if opts.Subfolders {
		idx = opts.Timer.Begin("read-subfolders")
		subCtx, subSpan := trace.BeginCtx(ctx, trace.ScopePass, "subfolders")
		scans, err := ListSubfolders(target.Root, opts.InitName)
		if err != nil {
			subSpan.End("")
			opts.Timer.End(idx, "")
			return nil, err
		}
		for i := range scans {
			emit(opts.Progress, Event{Subfolder: scans[i].Name, Stage: StageRead, Status: StatusQueued})
		}
		if err := readSubfolders(subCtx, res.Files, scans, opts); err != nil {
			subSpan.End("cancelled")
			opts.Timer.End(idx, "")
			return nil, err
		}
		subSpan.WithExtra("count", strconv.Itoa(len(scans))).End("")
		opts.Timer.End(idx, strconv.Itoa(len(scans))+" subfolders")
		res.Subfolders = scans
	}

	// disk cache
	useCache := opts.Cache != nil && cacheable(res.Subfolders)
	if useCache {
		res.Key = cacheKey(target.Root, rootFile, res.Subfolders, opts)
		var payload DiskPayload
		hit, err := opts.Cache.Get(res.Key, &payload)
		if err != nil {
			trace.Error(tracer, trace.ScopePass, "cache", err, span.ID())
		}
		if hit && restoreFromCache(res, &payload) {
			res.Cached = true
			trace.Point(tracer, trace.ScopePass, "cache", "hit "+res.Key.String()[:12], span.ID())
			for i := range res.Subfolders {
				emit(opts.Progress, Event{Subfolder: res.Subfolders[i].Name, Stage: StageCollect, Status: StatusDone})
			}
			emit(opts.Progress, Event{Stage: StageAssemble, Status: StatusDone})
			return res, nil
		}
	}

	idx = opts.Timer.Begin("collect")
	if err := collectSubfolders(ctx, dec, res.Subfolders, opts); err != nil {
		opts.Timer.End(idx, "")
		return nil, err
	}
	opts.Timer.End(idx, "")

	// assemble
	started := time.Now()
	emit(opts.Progress, Event{Stage: StageAssemble, Status: StatusWorking})
	idx = opts.Timer.Begin("assemble")
	_, asmSpan := trace.BeginCtx(ctx, trace.ScopePass, "assemble")
	res.Init = dec.ParseTileInit(rootFile.Text(), mergeSource(res.Subfolders), target.Root)
	for _, el := range res.Init.ErroredLines {
		trace.Point(tracer, trace.ScopeLine, "line "+strconv.Itoa(el.LineNo), errText(el), asmSpan.ID())
	}
	asmSpan.WithExtra("categories", strconv.Itoa(len(res.Init.Categories))).
		WithExtra("tiles", strconv.Itoa(res.Init.TileCount())).
		End("")
	opts.Timer.End(idx, fmt.Sprintf("%d categories", len(res.Init.Categories)))
	emit(opts.Progress, Event{Stage: StageAssemble, Status: StatusDone, Elapsed: time.Since(started)})

	if useCache {
		if err := opts.Cache.Put(res.Key, toPayload(res)); err != nil {
			trace.Error(tracer, trace.ScopePass, "cache", err, span.ID())
		}
	}
	return res, nil
}

func errText(el deser.ErroredLine) string {
	if el.Err == nil {
		return ""
	}
	return el.Err.Error()
}

func toPayload(res *Result) *DiskPayload {
	p := &DiskPayload{
		Init:       res.Init,
		Subfolders: make([]CachedSubfolder, len(res.Subfolders)),
		Created:    time.Now().UTC(),
	}
	for i := range res.Subfolders {
		sc := &res.Subfolders[i]
		p.Subfolders[i] = CachedSubfolder{Name: sc.Name, Category: sc.Category, ErroredLines: sc.ErroredLines}
	}
	return p
}

// restoreFromCache copies a payload into res when it describes the same
// subfolder set.
func restoreFromCache(res *Result, p *DiskPayload) bool {
	if len(p.Subfolders) != len(res.Subfolders) {
		return false
	}
	for i := range p.Subfolders {
		if p.Subfolders[i].Name != res.Subfolders[i].Name {
			return false
		}
	}
	for i := range p.Subfolders {
		res.Subfolders[i].Category = p.Subfolders[i].Category
		res.Subfolders[i].ErroredLines = p.Subfolders[i].ErroredLines
	}
	res.Init = p.Init
	return true
}

// CacheError wraps a failure to open the disk cache for diagnostics.
func CacheError(err error) diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.IOCacheError, diag.Location{}, err.Error())
}
