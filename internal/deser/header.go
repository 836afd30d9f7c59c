package deser

import (
	"regexp"
	"strconv"
	"strings"

	"tileman/internal/lingo"
	"tileman/internal/tiles"
)

var (
	categoryPattern      = regexp.MustCompile(`"(.+?)"\s*?,\s*?color\((.+?)\)`)
	categoryIndexPattern = regexp.MustCompile(`--CATEGORY_INDEX:(\d+)$`)
)

const (
	headerPrefix  = "-["
	commentPrefix = "--"
)

func isHeaderLine(line string) bool  { return strings.HasPrefix(line, headerPrefix) }
func isCommentLine(line string) bool { return strings.HasPrefix(line, commentPrefix) }

// ParseCategoryHeader parses a `-["Name", color(r,g,b)]` line with an optional
// trailing `--CATEGORY_INDEX:<n>` marker.
func ParseCategoryHeader(line string) (tiles.TileCategory, error) {
	m := categoryPattern.FindStringSubmatch(line)
	if m == nil {
		return tiles.TileCategory{}, newError(RegexMatchFailed, "not a category header")
	}
	color := parseColor(m[2], tiles.Color{})
	index, _ := categoryIndex(line, tiles.UnsetIndex)
	return tiles.NewMainCategory(m[1], color, index), nil
}

// parseColor reads up to three byte channels from a comma separated list.
// Channels that do not parse are skipped, so later ones move forward; missing
// channels take the matching entry of fallback. One leading '+' is allowed.
func parseColor(text string, fallback tiles.Color) tiles.Color {
	channels := make([]uint8, 0, 3)
	for _, piece := range lingo.SplitCommas(text) {
		n, err := strconv.ParseUint(strings.TrimPrefix(piece, "+"), 10, 8)
		if err != nil {
			continue
		}
		channels = append(channels, uint8(n))
	}
	color := fallback
	for i := 0; i < len(color) && i < len(channels); i++ {
		color[i] = channels[i]
	}
	return color
}

// categoryIndex reads the trailing index marker. found is false when the
// line has no marker; a marker whose number overflows reads as invalid.
func categoryIndex(line string, invalid int) (index int, found bool) {
	m := categoryIndexPattern.FindStringSubmatch(line)
	if m == nil {
		return tiles.UnsetIndex, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return invalid, true
	}
	return n, true
}
