package lingo

import (
	"regexp"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// splitCommas splits on commas and swallows the whitespace around them.
var splitCommas = regexp.MustCompile(`\s*,\s*`)

// Options configures a Parser.
type Options struct {
	// DepthAwareSplit makes list and point splitting ignore commas nested in
	// brackets, parentheses or quoted text. Off by default: the editor's own
	// reader splits on every comma and files in the wild rely on that.
	DepthAwareSplit bool
}

// Parser turns raw property values into Value trees.
type Parser struct {
	opts Options
}

// NewParser returns a parser with the given options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Default is the parser used by Parse; it splits on every comma.
var Default = NewParser(Options{})

// Parse parses text with the default parser.
func Parse(text string) Value {
	return Default.Parse(text)
}

// Options returns the options the parser was built with.
func (p *Parser) Options() Options {
	if p == nil {
		return Options{}
	}
	return p.opts
}

// Parse never fails: text matching no rule comes back as Unparsed.
func (p *Parser) Parse(text string) Value {
	text = strings.TrimSpace(text)
	switch {
	case len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
		pieces := p.split(text[1 : len(text)-1])
		items := make([]Value, 0, len(pieces))
		for _, piece := range pieces {
			items = append(items, p.Parse(piece))
		}
		return List(items...)
	case strings.HasPrefix(text, "point(") && strings.HasSuffix(text, ")"):
		pieces := p.split(text[len("point(") : len(text)-1])
		coords := make([]int32, 0, len(pieces))
		for _, piece := range pieces {
			if n, ok := parseInt32(strings.TrimSpace(piece)); ok {
				coords = append(coords, n)
			}
		}
		return Point(coords...)
	case len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`):
		return Text(text[1 : len(text)-1])
	}
	if n, ok := parseInt32(text); ok {
		return Integer(n)
	}
	return Unparsed(text)
}

func (p *Parser) split(s string) []string {
	if p != nil && p.opts.DepthAwareSplit {
		return SplitTopLevel(s)
	}
	return SplitCommas(s)
}

// SplitCommas splits s on every comma, nested or not.
func SplitCommas(s string) []string {
	return splitCommas.Split(s, -1)
}

// SplitTopLevel splits s on commas that are outside brackets, parentheses and
// double-quoted text. Pieces are trimmed.
func SplitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		quote bool
		start int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			quote = !quote
		case quote:
		case c == '[' || c == '(':
			depth++
		case (c == ']' || c == ')') && depth > 0:
			depth--
		case c == ',' && depth == 0:
			out = append(out, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}

func parseInt32(s string) (int32, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return 0, false
	}
	return v, true
}
