package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"tileman/internal/lingo"
)

// ValueView is the machine-readable form of a parsed value.
type ValueView struct {
	Kind  string      `json:"kind" yaml:"kind"`
	Int   *int32      `json:"int,omitempty" yaml:"int,omitempty"`
	Text  *string     `json:"text,omitempty" yaml:"text,omitempty"`
	Point []int32     `json:"point,omitempty" yaml:"point,omitempty"`
	List  []ValueView `json:"list,omitempty" yaml:"list,omitempty"`
}

func BuildValueView(v lingo.Value) ValueView {
	view := ValueView{Kind: v.Kind.String()}
	switch v.Kind {
	case lingo.KindInteger:
		n := v.Int
		view.Int = &n
	case lingo.KindText, lingo.KindUnparsed:
		s := v.Text
		view.Text = &s
	case lingo.KindPoint:
		view.Point = append([]int32{}, v.Point...)
	case lingo.KindList:
		view.List = make([]ValueView, len(v.List))
		for i, item := range v.List {
			view.List[i] = BuildValueView(item)
		}
	}
	return view
}

func ValueJSON(w io.Writer, v lingo.Value) error { return WriteJSON(w, BuildValueView(v)) }
func ValueYAML(w io.Writer, v lingo.Value) error { return WriteYAML(w, BuildValueView(v)) }

// ValuePretty prints the value as an indented tree, one node per line.
func ValuePretty(w io.Writer, v lingo.Value, opts PrettyOpts) {
	p := newPalette(opts.Color)
	var walk func(v lingo.Value, depth int)
	walk = func(v lingo.Value, depth int) {
		indent := strings.Repeat("  ", depth)
		kind := p.code.Sprint(v.Kind.String())
		switch v.Kind {
		case lingo.KindList:
			fmt.Fprintf(w, "%s%s (%d)\n", indent, kind, len(v.List))
			for _, item := range v.List {
				walk(item, depth+1)
			}
		case lingo.KindInteger:
			fmt.Fprintf(w, "%s%s %d\n", indent, kind, v.Int)
		case lingo.KindPoint:
			fmt.Fprintf(w, "%s%s %v\n", indent, kind, v.Point)
		default:
			fmt.Fprintf(w, "%s%s %q\n", indent, kind, v.Text)
		}
	}
	walk(v, 0)
}
