package lingo

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"tileman/internal/tiles"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"integer", "42", Integer(42)},
		{"negative integer", "-7", Integer(-7)},
		{"surrounding whitespace", "  13 \t", Integer(13)},
		{"text", `"Small Pipe"`, Text("Small Pipe")},
		{"text keeps backslashes", `"a\b"`, Text(`a\b`)},
		{"empty text", `""`, Text("")},
		{"list", "[1, 2, 3]", List(Integer(1), Integer(2), Integer(3))},
		{"list of text", `["a", "b"]`, List(Text("a"), Text("b"))},
		{"empty list keeps the empty piece", "[]", List(Unparsed(""))},
		{"point", "point(4,5)", Point(4, 5)},
		{"point with spaces and sign", "point( -1 , 2 )", Point(-1, 2)},
		{"point drops non-numeric", "point(1,x,3)", Point(1, 3)},
		{"garbage", "garbage!!", Unparsed("garbage!!")},
		{"lone quote", `"`, Unparsed(`"`)},
		{"overflow", "99999999999", Unparsed("99999999999")},
		{"void", "void", Unparsed("void")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_IntegerRoundTrip(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 255, -4096, math.MaxInt32, math.MinInt32} {
		got := Parse(strconv.Itoa(int(n)))
		if !got.Equal(Integer(n)) {
			t.Errorf("Parse(%d) = %s", n, got)
		}
	}
}

func TestParse_TextRoundTrip(t *testing.T) {
	for _, s := range []string{"", "x", "Big Metal", "pipe_junction-2", "  spaced  "} {
		got := Parse(`"` + s + `"`)
		if !got.Equal(Text(s)) {
			t.Errorf("Parse(%q) = %s", s, got)
		}
	}
}

func TestParse_NestedCommasSplitEverywhere(t *testing.T) {
	got := Parse("[[1,2],[3]]")
	want := List(Unparsed("[1"), Unparsed("2]"), List(Integer(3)))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParser_DepthAwareSplit(t *testing.T) {
	p := NewParser(Options{DepthAwareSplit: true})
	got := p.Parse(`[[1,2],[3], "a,b", point(1,2)]`)
	want := List(
		List(Integer(1), Integer(2)),
		List(Integer(3)),
		Text("a,b"),
		Point(1, 2),
	)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
	if !p.Options().DepthAwareSplit {
		t.Fatal("options not retained")
	}
}

func TestSplitTopLevel(t *testing.T) {
	got := SplitTopLevel(` a , (b,c) ,[d,[e,f]],"g,h" `)
	want := []string{"a", "(b,c)", "[d,[e,f]]", `"g,h"`}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("piece %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAccessors(t *testing.T) {
	if n, err := Integer(5).AsInteger(); err != nil || n != 5 {
		t.Fatalf("AsInteger = %d, %v", n, err)
	}
	if _, err := Text("5").AsInteger(); err == nil {
		t.Fatal("AsInteger on Text must fail")
	} else {
		var ce *ConvertError
		if !errors.As(err, &ce) || ce.Want != "number" {
			t.Fatalf("unexpected error %v", err)
		}
	}
	if s, err := Text("x").AsText(); err != nil || s != "x" {
		t.Fatalf("AsText = %q, %v", s, err)
	}
	if _, err := Integer(1).AsText(); err == nil {
		t.Fatal("AsText on Integer must fail")
	}
	if _, err := Integer(1).AsPoint(); err == nil {
		t.Fatal("AsPoint on Integer must fail")
	}

	mixed := List(Integer(1), Text("a"), Unparsed("?"), Integer(2))
	ints, err := mixed.AsIntegerList()
	if err != nil || len(ints) != 2 || ints[0] != 1 || ints[1] != 2 {
		t.Fatalf("AsIntegerList = %v, %v", ints, err)
	}
	texts, err := mixed.AsTextList()
	if err != nil || len(texts) != 1 || texts[0] != "a" {
		t.Fatalf("AsTextList = %v, %v", texts, err)
	}
	if _, err := Integer(1).AsTextList(); err == nil {
		t.Fatal("AsTextList on Integer must fail")
	}
	if _, err := Unparsed("NULL").AsIntegerList(); err == nil {
		t.Fatal("AsIntegerList on Unparsed must fail")
	}
}

func TestAsTileCellList_DropsUnknownCodes(t *testing.T) {
	got, err := List(Integer(1), Integer(8), Integer(-1), Integer(42), Integer(0)).AsTileCellList()
	if err != nil {
		t.Fatalf("AsTileCellList: %v", err)
	}
	want := []tiles.TileCell{tiles.CellWall, tiles.CellAny, tiles.CellAir}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := Point(1, 1).AsTileCellList(); err == nil {
		t.Fatal("AsTileCellList on Point must fail")
	}
}

func TestAsNullIfZero(t *testing.T) {
	if got := Integer(0).AsNullIfZero(); !got.Equal(Unparsed("NULL")) {
		t.Fatalf("Integer(0) -> %s", got)
	}
	if got := Integer(5).AsNullIfZero(); !got.Equal(Integer(5)) {
		t.Fatalf("Integer(5) -> %s", got)
	}
	if got := Text("x").AsNullIfZero(); !got.Equal(Text("x")) {
		t.Fatalf("Text(x) -> %s", got)
	}
}

func TestValueString(t *testing.T) {
	got := List(Integer(1), Text("a"), Point(2, 3), Unparsed("?")).String()
	want := `List([Integer(1), Text("a"), Point([2, 3]), Unparsed("?")])`
	if got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
