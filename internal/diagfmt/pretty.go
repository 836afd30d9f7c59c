package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"tileman/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>: <SEV> <CODE>: <Message>
// затем исходную строку (если ShowText) и Notes.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	p := newPalette(opts.Color)
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
		loc := formatLocation(d.Primary, opts)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(loc),
			severityColor(p, d.Severity).Sprint(strings.ToUpper(severityName(d.Severity))),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if opts.ShowText && d.Text != "" {
			fmt.Fprintf(w, "    %s %s\n", p.dim.Sprint("|"), clip(d.Text, opts.Width-6))
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "    %s %s: %s\n", p.dim.Sprint("note"), formatLocation(n.Loc, opts), n.Msg)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "%s\n", p.dim.Sprintf("... %d more diagnostics not shown", dropped))
	}
	if errs+warns > 0 {
		fmt.Fprintf(w, "%s, %s\n",
			plural(errs, "error"),
			plural(warns, "warning"),
		)
	}
}

func formatLocation(loc diag.Location, opts PrettyOpts) string {
	path := formatPath(loc.Path, opts.PathMode, opts.BaseDir)
	if loc.Line == 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, loc.Line)
}

func severityColor(p palette, s diag.Severity) interface{ Sprint(...any) string } {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// clip обрезает строку по ширине терминала; width <= 0 - без ограничений.
func clip(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
