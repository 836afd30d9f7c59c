package diag

import (
	"path/filepath"
	"testing"
)

func TestFormatShort(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "init.txt")
	sub := filepath.Join(base, "pipes", "init.txt")

	diags := []Diagnostic{
		NewError(DesTypeMismatch, Location{Path: sub, Line: 4}, "first line\nsecond"),
		NewError(DesRegexMatchFailed, Location{Path: root, Line: 2}, "not a category header").
			WithNote(Location{Path: root, Line: 1}, "category opened here"),
		New(SevWarning, SubNoColor, Location{Path: filepath.Join(base, "pipes")}, "using default colour"),
	}

	want := "note DES1001 init.txt:1 category opened here\n" +
		"error DES1001 init.txt:2 not a category header\n" +
		"warning SUB2002 pipes:0 using default colour\n" +
		"error DES1004 pipes/init.txt:4 first line second"
	if got := FormatShort(diags, base, true); got != want {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", want, got)
	}

	if got := FormatShort(nil, base, true); got != "" {
		t.Fatalf("empty input rendered %q", got)
	}
}
