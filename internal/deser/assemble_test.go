package deser

import (
	"strings"
	"testing"

	"tileman/internal/lingo"
	"tileman/internal/testkit"
	"tileman/internal/tiles"
)

func lingoDepthAware() lingo.Options {
	return lingo.Options{DepthAwareSplit: true}
}

func tileLine(name string) string {
	return `[#nm:"` + name + `", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #bfTiles:0, #ptPos:0, #tags:[]]`
}

func mustTile(t *testing.T, name string) tiles.TileInfo {
	t.Helper()
	info, err := ParseTileInfo(tileLine(name), true)
	if err != nil {
		t.Fatalf("ParseTileInfo(%s): %v", name, err)
	}
	return info
}

func doc(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func tileNames(c tiles.TileCategory) []string {
	out := make([]string, len(c.Tiles))
	for i, tile := range c.Tiles {
		out[i] = tile.Name
	}
	return out
}

func TestParseTileInit_HeaderAndTiles(t *testing.T) {
	text := doc(
		`-["Pipes", color(10,20,30)]`,
		tileLine("a"),
		tileLine("b"),
	)
	got := ParseTileInit(text, nil, "/levels/tiles")
	if got.Root != "/levels/tiles" {
		t.Fatalf("Root = %q", got.Root)
	}
	if len(got.Categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(got.Categories))
	}
	if names := tileNames(got.Categories[0]); strings.Join(names, ",") != "a,b" {
		t.Fatalf("tiles = %v, want [a b]", names)
	}
	if len(got.ErroredLines) != 0 {
		t.Fatalf("unexpected errors: %+v", got.ErroredLines)
	}
	if err := testkit.CheckCategories(got.Categories); err != nil {
		t.Fatal(err)
	}
}

func TestParseTileInit_CommentsBlanksAndCRLF(t *testing.T) {
	text := "-- leading comment\r\n\r\n-[\"Pipes\", color(1,2,3)]--CATEGORY_INDEX:3\r\n   \r\n" + tileLine("a") + "\r\n"
	got := ParseTileInit(text, nil, "")
	if len(got.Categories) != 1 || got.Categories[0].Index != 3 {
		t.Fatalf("categories = %+v", got.Categories)
	}
	if len(got.Categories[0].Tiles) != 1 || len(got.ErroredLines) != 0 {
		t.Fatalf("tiles = %d, errors = %+v", len(got.Categories[0].Tiles), got.ErroredLines)
	}
}

func TestParseTileInit_TileBeforeHeaderIsDroppedSilently(t *testing.T) {
	text := doc(
		tileLine("orphan"),
		`-["Pipes", color(10,20,30)]`,
		tileLine("a"),
	)
	got := ParseTileInit(text, nil, "")
	if len(got.ErroredLines) != 0 {
		t.Fatalf("orphan tiles must not be logged, got %+v", got.ErroredLines)
	}
	for _, c := range got.Categories {
		for _, tile := range c.Tiles {
			if tile.Name == "orphan" {
				t.Fatalf("orphan tile attached to %q", c.Name)
			}
		}
	}
}

func TestParseTileInit_BadHeaderLogsOnce(t *testing.T) {
	text := doc(
		`-["Pipes", color(10,20,30)]`,
		tileLine("a"),
		`-[Broken header`,
		tileLine("b"),
	)
	got := ParseTileInit(text, nil, "")
	if len(got.ErroredLines) != 1 {
		t.Fatalf("errors = %+v, want exactly one", got.ErroredLines)
	}
	e := got.ErroredLines[0]
	if e.Line != `-[Broken header` || e.LineNo != 3 || e.Err.Kind != RegexMatchFailed {
		t.Fatalf("unexpected entry %+v (%v)", e, e.Err)
	}
	if len(got.Categories) != 1 {
		t.Fatalf("a bad header must not open a category: %d categories", len(got.Categories))
	}
	if names := tileNames(got.Categories[0]); strings.Join(names, ",") != "a,b" {
		t.Fatalf("tiles = %v, want [a b]", names)
	}
}

func TestParseTileInit_BadTileLogged(t *testing.T) {
	text := doc(
		`-["Pipes", color(10,20,30)]`,
		`[#nm:"broken"]`,
		tileLine("a"),
	)
	got := ParseTileInit(text, nil, "")
	if len(got.ErroredLines) != 1 || got.ErroredLines[0].Err.Key != "sz" || got.ErroredLines[0].LineNo != 2 {
		t.Fatalf("errors = %+v", got.ErroredLines)
	}
	if len(got.Categories[0].Tiles) != 1 {
		t.Fatalf("tiles = %v", tileNames(got.Categories[0]))
	}
}

func TestParseTileInit_EqualTileReplacedInPlace(t *testing.T) {
	text := doc(
		`-["Pipes", color(10,20,30)]`,
		tileLine("a"),
		tileLine("b"),
		tileLine("a"),
	)
	got := ParseTileInit(text, nil, "")
	if names := tileNames(got.Categories[0]); strings.Join(names, ",") != "a,b" {
		t.Fatalf("tiles = %v, want [a b]", names)
	}
}

func TestParseTileInit_NoHeaders(t *testing.T) {
	extra := tiles.NewMainCategory("Extra", tiles.Color{1, 1, 1}, 4)
	got := ParseTileInit(doc(tileLine("a"), `[#nm:"bad"]`), []tiles.TileCategory{extra}, "root")
	if got.Categories == nil || len(got.Categories) != 0 {
		t.Fatalf("categories = %+v, want empty", got.Categories)
	}
	if len(got.ErroredLines) != 1 {
		t.Fatalf("errors = %+v, want one", got.ErroredLines)
	}

	empty := ParseTileInit("", nil, "root")
	if len(empty.Categories) != 0 || len(empty.ErroredLines) != 0 {
		t.Fatalf("empty document = %+v", empty)
	}
}

func TestParseTileInit_MergeAdoptsSubfolderAndTiles(t *testing.T) {
	extra := tiles.TileCategory{
		Name:      "Pipes",
		Color:     tiles.Color{10, 20, 30},
		Subfolder: "/levels/tiles/pipes",
		Tiles:     []tiles.TileInfo{mustTile(t, "x"), mustTile(t, "y"), mustTile(t, "z")},
	}
	text := doc(`-["Pipes", color(10,20,30)]`)
	got := ParseTileInit(text, []tiles.TileCategory{extra}, "")
	if len(got.Categories) != 1 {
		t.Fatalf("categories = %d, want 1 (matched extras are not appended twice)", len(got.Categories))
	}
	c := got.Categories[0]
	if c.Name != "Pipes" || c.Color != (tiles.Color{10, 20, 30}) || c.Subfolder != "/levels/tiles/pipes" {
		t.Fatalf("merged category = %+v", c)
	}
	if !c.Enabled {
		t.Fatal("the header decides enabled")
	}
	if names := tileNames(c); strings.Join(names, ",") != "x,y,z" {
		t.Fatalf("tiles = %v", names)
	}
}

func TestParseTileInit_MergeOverridesAndDoesNotAlias(t *testing.T) {
	x := mustTile(t, "x")
	extra := tiles.TileCategory{
		Name:  "Pipes",
		Color: tiles.Color{10, 20, 30},
		Tiles: []tiles.TileInfo{x, mustTile(t, "y")},
	}
	text := doc(`-["Pipes", color(10,20,30)]`, tileLine("x"), tileLine("w"))
	got := ParseTileInit(text, []tiles.TileCategory{extra}, "")
	if names := tileNames(got.Categories[0]); strings.Join(names, ",") != "x,y,w" {
		t.Fatalf("tiles = %v, want [x y w]", names)
	}
	if len(extra.Tiles) != 2 {
		t.Fatal("the merge source must not be modified")
	}
}

func TestParseTileInit_UnmatchedExtrasAppended(t *testing.T) {
	extra := tiles.TileCategory{Name: "Modded", Color: tiles.Color{255, 0, 0}, Index: 9, Subfolder: "mods"}
	text := doc(`-["Pipes", color(10,20,30)]`, tileLine("a"))
	got := ParseTileInit(text, []tiles.TileCategory{extra}, "")
	if len(got.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(got.Categories))
	}
	last := got.Categories[1]
	if last.Name != "Modded" || last.Index != 9 {
		t.Fatalf("appended category = %+v, ordinal must be kept", last)
	}
}

func TestParseTileInit_Normalization(t *testing.T) {
	text := doc(
		`-["A", color(1,1,1)]`,
		`-["B", color(2,2,2)]--CATEGORY_INDEX:5`,
		`-["C", color(3,3,3)]`,
	)
	got := ParseTileInit(text, nil, "")
	want := []struct {
		name  string
		index int
	}{{"A", 0}, {"C", 2}, {"B", 5}}
	if len(got.Categories) != len(want) {
		t.Fatalf("categories = %+v", got.Categories)
	}
	for i, w := range want {
		if got.Categories[i].Name != w.name || got.Categories[i].Index != w.index {
			t.Fatalf("category %d = %s/%d, want %s/%d", i, got.Categories[i].Name, got.Categories[i].Index, w.name, w.index)
		}
	}
	if err := testkit.CheckCategories(got.Categories); err != nil {
		t.Fatal(err)
	}
}

func TestParseTileInit_Deterministic(t *testing.T) {
	extra := []tiles.TileCategory{
		{Name: "Pipes", Color: tiles.Color{10, 20, 30}, Subfolder: "p", Tiles: []tiles.TileInfo{mustTile(t, "x")}},
		{Name: "Loose", Color: tiles.Color{1, 2, 3}, Subfolder: "l"},
	}
	text := doc(
		`-["Pipes", color(10,20,30)]`,
		tileLine("a"),
		`-[nope`,
		`-["Grates", color(5,5,5)]--CATEGORY_INDEX:1`,
		tileLine("b"),
	)
	first := ParseTileInit(text, extra, "r")
	second := ParseTileInit(text, extra, "r")
	if len(first.Categories) != len(second.Categories) {
		t.Fatal("category counts differ between runs")
	}
	for i := range first.Categories {
		if !first.Categories[i].Equal(second.Categories[i]) {
			t.Fatalf("category %d differs between runs", i)
		}
	}
	if len(first.ErroredLines) != len(second.ErroredLines) {
		t.Fatal("error logs differ between runs")
	}
}

func TestTileInit_Accessors(t *testing.T) {
	text := doc(`-["Pipes", color(10,20,30)]--CATEGORY_INDEX:3`, tileLine("a"), tileLine("b"))
	got := ParseTileInit(text, nil, "")
	if got.TileCount() != 2 {
		t.Fatalf("TileCount = %d", got.TileCount())
	}
	if _, ok := got.Category(3); !ok {
		t.Fatal("Category(3) not found")
	}
	if _, ok := got.Category(4); ok {
		t.Fatal("Category(4) must not exist")
	}
}

func TestParseTileInit_MergeKeyIsDeclaration(t *testing.T) {
	collected := tiles.TileCategory{
		Name: "Pipes", Color: tiles.Color{10, 20, 30}, Index: 3,
		Subfolder: "pipes", Tiles: []tiles.TileInfo{mustTile(t, "x")},
	}
	otherOrdinal := collected
	otherOrdinal.Index = 6
	otherOrdinal.Subfolder = "pipes-old"

	got := ParseTileInit(doc(`-["Pipes", color(10,20,30)]--CATEGORY_INDEX:3`), []tiles.TileCategory{collected, otherOrdinal}, "")
	if len(got.Categories) != 2 {
		t.Fatalf("categories = %+v", got.Categories)
	}
	merged := got.Categories[0]
	if merged.Index != 3 || !merged.Enabled || merged.Subfolder != "pipes" || len(merged.Tiles) != 1 {
		t.Fatalf("disabled collected category with tiles must merge into the header: %+v", merged)
	}
	appended := got.Categories[1]
	if appended.Index != 6 || appended.Enabled || appended.Subfolder != "pipes-old" {
		t.Fatalf("a different ordinal is a different declaration: %+v", appended)
	}
}
