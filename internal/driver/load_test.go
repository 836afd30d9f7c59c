package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"tileman/internal/deser"
	"tileman/internal/diag"
	"tileman/internal/observ"
	"tileman/internal/project"
	"tileman/internal/testkit"
	"tileman/internal/tiles"
)

func tileLine(name string) string {
	return `[#nm:"` + name + `", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #bfTiles:0, #ptPos:0, #tags:[]]`
}

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

// fixture lays out:
//
//	init.txt            Pipes header + tile a
//	pipes/init.txt      Pipes header + tile x, color.txt
//	extra/init.txt      tile y, no colour
//	empty/              no init document
//	notes.txt           plain file
func fixture(t *testing.T) project.Target {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "init.txt"), `-["Pipes", color(10,20,30)]`, tileLine("a"))
	writeFile(t, filepath.Join(root, "pipes", "init.txt"), `-["Pipes", color(10,20,30)]`, tileLine("x"))
	writeFile(t, filepath.Join(root, "pipes", "color.txt"), "10, 20, 30")
	writeFile(t, filepath.Join(root, "extra", "init.txt"), tileLine("y"))
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "notes.txt"), "not a subfolder")

	target, err := project.ResolveTarget(root, "")
	if err != nil {
		t.Fatal(err)
	}
	return target
}

func names(c tiles.TileCategory) string {
	out := make([]string, len(c.Tiles))
	for i, tile := range c.Tiles {
		out[i] = tile.Name
	}
	return strings.Join(out, ",")
}

func TestLoad_RootAndSubfolders(t *testing.T) {
	target := fixture(t)
	res, err := Load(context.Background(), target, Options{Subfolders: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(res.Subfolders) != 2 || res.Subfolders[0].Name != "extra" || res.Subfolders[1].Name != "pipes" {
		t.Fatalf("subfolders = %+v", res.Subfolders)
	}
	extra := res.Subfolders[0]
	if extra.Category.Color != deser.DefaultSubfolderColor || extra.ColorPath != "" || extra.Category.Enabled {
		t.Fatalf("extra = %+v", extra.Category)
	}

	cats := res.Init.Categories
	if len(cats) != 2 {
		t.Fatalf("categories = %+v", cats)
	}
	if cats[0].Name != "Pipes" || names(cats[0]) != "x,a" || cats[0].Subfolder != filepath.Join(target.Root, "pipes") {
		t.Fatalf("merged category = %+v", cats[0])
	}
	if cats[1].Name != "extra" || cats[1].Index != 1 || names(cats[1]) != "y" {
		t.Fatalf("appended category = %+v", cats[1])
	}
	if err := testkit.CheckCategories(cats); err != nil {
		t.Fatal(err)
	}
	if res.Init.Root != target.Root {
		t.Fatalf("Root = %q", res.Init.Root)
	}
}

func TestLoad_NoSubfolders(t *testing.T) {
	res, err := Load(context.Background(), fixture(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Subfolders) != 0 || len(res.Init.Categories) != 1 || names(res.Init.Categories[0]) != "a" {
		t.Fatalf("result = %+v", res.Init)
	}
}

func TestLoad_MissingRoot(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(context.Background(), project.Target{Root: dir, InitPath: filepath.Join(dir, "init.txt")}, Options{})
	if !errors.Is(err, deser.ErrMissingFile) {
		t.Fatalf("expected MissingFile, got %v", err)
	}
}

func TestLoad_ParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "init.txt"), `-["Main", color(1,1,1)]`, tileLine("m"))
	for i := range 12 {
		name := fmt.Sprintf("sub%02d", i)
		writeFile(t, filepath.Join(root, name, "init.txt"),
			fmt.Sprintf(`-["%s", color(1,2,3)]--CATEGORY_INDEX:%d`, name, 20-i), tileLine(name+"-a"), tileLine(name+"-b"), `[#nm:"broken"]`)
	}
	target := project.Target{Root: root, InitPath: filepath.Join(root, "init.txt")}

	seq, err := Load(context.Background(), target, Options{Subfolders: true, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	par, err := Load(context.Background(), target, Options{Subfolders: true, Jobs: 8})
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Init.Categories) != 13 || len(seq.Init.Categories) != len(par.Init.Categories) {
		t.Fatalf("categories: seq=%d par=%d", len(seq.Init.Categories), len(par.Init.Categories))
	}
	for i := range seq.Init.Categories {
		if !seq.Init.Categories[i].Equal(par.Init.Categories[i]) {
			t.Fatalf("category %d differs", i)
		}
	}
	if seq.ErroredLineCount() != 12 || par.ErroredLineCount() != 12 {
		t.Fatalf("errored lines: seq=%d par=%d", seq.ErroredLineCount(), par.ErroredLineCount())
	}
	if err := testkit.CheckCategories(par.Init.Categories); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, fixture(t), Options{Subfolders: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_DiskCache(t *testing.T) {
	target := fixture(t)
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Subfolders: true, Cache: cache}

	first, err := Load(context.Background(), target, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first load cannot be a cache hit")
	}
	second, err := Load(context.Background(), target, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Key != first.Key {
		t.Fatalf("second load: cached=%v key match=%v", second.Cached, second.Key == first.Key)
	}
	if len(second.Init.Categories) != len(first.Init.Categories) {
		t.Fatal("cached catalogue differs in size")
	}
	for i := range first.Init.Categories {
		if !first.Init.Categories[i].Equal(second.Init.Categories[i]) {
			t.Fatalf("cached category %d differs:\n%+v\n%+v", i, first.Init.Categories[i], second.Init.Categories[i])
		}
	}

	// editing a subfolder document changes the key
	writeFile(t, filepath.Join(target.Root, "extra", "init.txt"), tileLine("z"))
	third, err := Load(context.Background(), target, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || third.Key == first.Key {
		t.Fatal("changed documents must miss the cache")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	var p DiskPayload
	if hit, err := cache.Get(third.Key, &p); hit || err != nil {
		t.Fatalf("after DropAll: hit=%v err=%v", hit, err)
	}
}

func TestLoad_DiagnosticsAndProgress(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "init.txt"), `-["Main", color(1,1,1)]`, `[#nm:7]`, `-[oops`)
	writeFile(t, filepath.Join(root, "bare", "init.txt"), "-- nothing here")
	target := project.Target{Root: root, InitPath: filepath.Join(root, "init.txt")}

	var (
		mu     sync.Mutex
		events []Event
	)
	timer := observ.NewTimer()
	res, err := Load(context.Background(), target, Options{
		Subfolders: true,
		Timer:      timer,
		Progress: SinkFunc(func(e Event) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		}),
	})
	if err != nil {
		t.Fatal(err)
	}

	bag := res.Diagnostics(0)
	if !bag.HasErrors() || bag.Len() != 3 {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	items := bag.Items()
	if items[0].Code != diag.SubEmptyCategory || items[1].Code != diag.DesTypeMismatch || items[2].Code != diag.DesRegexMatchFailed {
		t.Fatalf("codes = %v %v %v", items[0].Code.ID(), items[1].Code.ID(), items[2].Code.ID())
	}
	if items[1].Primary.Line != 2 || items[1].Text != `[#nm:7]` {
		t.Fatalf("located = %+v", items[1])
	}

	var sawAssemble bool
	for _, e := range events {
		if e.Stage == StageAssemble && e.Status == StatusDone {
			sawAssemble = true
		}
	}
	if !sawAssemble {
		t.Fatalf("events = %+v", events)
	}
	if len(timer.Report().Phases) != 4 {
		t.Fatalf("phases = %+v", timer.Report().Phases)
	}
}

func TestListSubfoldersNormalizesNames(t *testing.T) {
	root := t.TempDir()
	decomposed := "cafe\u0301"
	writeFile(t, filepath.Join(root, decomposed, "init.txt"), tileLine("a"))
	writeFile(t, filepath.Join(root, "b", "init.txt"), tileLine("b"))

	scans, err := ListSubfolders(root, "init.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 2 || scans[0].Name != "b" || scans[1].Name != "caf\u00e9" {
		t.Fatalf("scans = %+v", scans)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := project.DefaultConfig()
	cfg.Parse.DepthAwareSplit = true
	cfg.Load.Jobs = 3
	opts := OptionsFromConfig(cfg)
	if !opts.Lingo.DepthAwareSplit || opts.Jobs != 3 || !opts.Subfolders || opts.InitName != "init.txt" {
		t.Fatalf("opts = %+v", opts)
	}
}
