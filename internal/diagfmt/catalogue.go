package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"tileman/internal/deser"
	"tileman/internal/tiles"
)

// CatalogueOpts configures rendering of an assembled tile catalogue.
type CatalogueOpts struct {
	PrettyOpts
	ShowTiles  bool // list tiles under each category
	ShowErrors bool
}

// CategoryView is the serialized form of one category.
type CategoryView struct {
	Index     int              `json:"index" yaml:"index"`
	Name      string           `json:"name" yaml:"name"`
	Color     string           `json:"color" yaml:"color"`
	Subfolder string           `json:"subfolder,omitempty" yaml:"subfolder,omitempty"`
	Enabled   bool             `json:"enabled" yaml:"enabled"`
	Tiles     []tiles.TileInfo `json:"tiles" yaml:"tiles"`
}

// ErrorView is the serialized form of an errored line.
type ErrorView struct {
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Text    string `json:"text" yaml:"text"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// CatalogueView is the machine-readable catalogue shared by JSON and YAML.
type CatalogueView struct {
	Root       string         `json:"root" yaml:"root"`
	Categories []CategoryView `json:"categories" yaml:"categories"`
	TileCount  int            `json:"tile_count" yaml:"tile_count"`
	Errors     []ErrorView    `json:"errors" yaml:"errors"`
}

// BuildCatalogueView converts an assembled catalogue into its output form.
func BuildCatalogueView(ti *deser.TileInit) CatalogueView {
	view := CatalogueView{
		Root:       ti.Root,
		Categories: make([]CategoryView, 0, len(ti.Categories)),
		TileCount:  ti.TileCount(),
		Errors:     ErrorViews(ti.ErroredLines),
	}
	for _, c := range ti.Categories {
		list := c.Tiles
		if list == nil {
			list = []tiles.TileInfo{}
		}
		view.Categories = append(view.Categories, CategoryView{
			Index:     c.Index,
			Name:      c.Name,
			Color:     c.Color.Hex(),
			Subfolder: c.Subfolder,
			Enabled:   c.Enabled,
			Tiles:     list,
		})
	}
	return view
}

// ErrorViews converts errored lines; never returns nil.
func ErrorViews(lines []deser.ErroredLine) []ErrorView {
	out := make([]ErrorView, 0, len(lines))
	for _, el := range lines {
		ev := ErrorView{Line: el.LineNo, Text: el.Line}
		if el.Err != nil {
			ev.Kind = el.Err.Kind.String()
			ev.Message = el.Err.Error()
		}
		out = append(out, ev)
	}
	return out
}

// CatalogueJSON writes the catalogue as indented JSON.
func CatalogueJSON(w io.Writer, ti *deser.TileInit) error {
	return WriteJSON(w, BuildCatalogueView(ti))
}

// CatalogueYAML writes the catalogue as YAML.
func CatalogueYAML(w io.Writer, ti *deser.TileInit) error {
	return WriteYAML(w, BuildCatalogueView(ti))
}

// CataloguePretty prints one line per category with a colour swatch; names are
// padded by display width so wide runes keep the columns aligned.
func CataloguePretty(w io.Writer, ti *deser.TileInit, opts CatalogueOpts) {
	p := newPalette(opts.Color)
	root := ti.Root
	if root == "" {
		root = "<input>"
	} else {
		root = formatPath(root, opts.PathMode, opts.BaseDir)
	}
	fmt.Fprintf(w, "%s  %s\n", p.title.Sprint(root), p.dim.Sprintf("(%s, %s, %s)",
		plural(len(ti.Categories), "category"),
		plural(ti.TileCount(), "tile"),
		plural(len(ti.ErroredLines), "errored line")))

	nameWidth := 0
	for _, c := range ti.Categories {
		nameWidth = max(nameWidth, runewidth.StringWidth(c.Name))
	}
	nameWidth = min(nameWidth, 32)

	for _, c := range ti.Categories {
		name := runewidth.FillRight(runewidth.Truncate(c.Name, nameWidth, "…"), nameWidth)
		line := fmt.Sprintf("%4d %s %s %s %s",
			c.Index,
			swatch(c.Color[0], c.Color[1], c.Color[2], opts.Color),
			name,
			p.dim.Sprint(c.Color.Hex()),
			plural(len(c.Tiles), "tile"),
		)
		if c.FromSubfolder() {
			line += " " + p.dim.Sprintf("[%s]", formatPath(c.Subfolder, opts.PathMode, opts.BaseDir))
			if !c.Enabled {
				line += " " + p.warn.Sprint("disabled")
			}
		}
		fmt.Fprintln(w, line)
		if opts.ShowTiles {
			for _, t := range c.Tiles {
				fmt.Fprintln(w, clip("       "+tileSummary(t), opts.Width))
			}
		}
	}

	if opts.ShowErrors {
		for _, ev := range ErrorViews(ti.ErroredLines) {
			loc := "-"
			if ev.Line > 0 {
				loc = fmt.Sprintf("%d", ev.Line)
			}
			fmt.Fprintf(w, "%s %s: %s\n", p.err.Sprintf("%5s", loc), p.code.Sprint(ev.Kind), ev.Message)
		}
	}
}

func tileSummary(t tiles.TileInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %dx%d  %s", t.Name, t.Width(), t.Height(), t.Type)
	if len(t.Tags) > 0 {
		b.WriteString("  #")
		b.WriteString(strings.Join(t.Tags, " #"))
	}
	if !t.Active {
		b.WriteString("  (inactive)")
	}
	return b.String()
}
