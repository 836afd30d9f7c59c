package deser

import (
	"slices"
	"strings"

	"tileman/internal/tiles"
)

// TileInit is the assembled catalogue of one root document.
type TileInit struct {
	Root         string               `json:"root" yaml:"root"`
	Categories   []tiles.TileCategory `json:"categories" yaml:"categories"`
	ErroredLines []ErroredLine        `json:"errored_lines" yaml:"errored_lines"`
}

// TileCount returns the number of tiles over all categories.
func (ti *TileInit) TileCount() int {
	n := 0
	for i := range ti.Categories {
		n += len(ti.Categories[i].Tiles)
	}
	return n
}

// Category returns the category with the given ordinal.
func (ti *TileInit) Category(index int) (tiles.TileCategory, bool) {
	for _, c := range ti.Categories {
		if c.Index == index {
			return c, true
		}
	}
	return tiles.TileCategory{}, false
}

// ParseTileInit assembles a root document with the default decoder.
func ParseTileInit(text string, additional []tiles.TileCategory, root string) TileInit {
	return defaultDecoder.ParseTileInit(text, additional, root)
}

// initFold is the state carried from line to line: the open category (nil
// before the first header), the finished categories and the error log.
type initFold struct {
	current    *tiles.TileCategory
	categories []tiles.TileCategory
	errored    []ErroredLine
	seenHeader bool
}

// ParseTileInit assembles the categories of a root document. additional are
// categories collected elsewhere (subfolders); a header matching one of them
// inherits its subfolder and tiles, and unmatched ones are appended after the
// document's own categories. Matching goes by declaration (name, colour,
// ordinal via TileCategory.Matches), not by whole-record equality: a collected
// category is disabled and holds tiles, so it never equals a fresh header. The result is always well formed: bad lines are
// logged and skipped.
func (d *Decoder) ParseTileInit(text string, additional []tiles.TileCategory, root string) TileInit {
	st := initFold{}
	lineNo := 0
	for raw := range strings.Lines(text) {
		lineNo++
		line := strings.TrimRight(raw, "\r\n")
		if isCommentLine(line) || strings.TrimSpace(line) == "" {
			continue
		}
		st = d.foldInitLine(st, additional, lineNo, line)
	}
	st = st.finalize()

	if !st.seenHeader {
		// nothing to attach tiles to and nothing to merge into
		return TileInit{Root: root, Categories: []tiles.TileCategory{}, ErroredLines: st.errored}
	}

	categories := st.categories
	for _, extra := range additional {
		if !tiles.ContainsMatching(st.categories, extra) {
			categories = append(categories, extra)
		}
	}
	tiles.AssignPositions(categories)
	tiles.SortAndNormalize(categories)

	return TileInit{Root: root, Categories: categories, ErroredLines: st.errored}
}

func (d *Decoder) foldInitLine(st initFold, additional []tiles.TileCategory, lineNo int, line string) initFold {
	if isHeaderLine(line) {
		header, err := ParseCategoryHeader(line)
		if err != nil {
			st.errored = append(st.errored, erroredLine(lineNo, line, err))
			return st
		}
		if i := slices.IndexFunc(additional, header.Matches); i >= 0 {
			header.Subfolder = additional[i].Subfolder
			header.Tiles = slices.Clone(additional[i].Tiles)
		}
		st = st.finalize()
		st.current = &header
		st.seenHeader = true
		return st
	}

	tile, err := d.ParseTileInfo(line, true)
	if err != nil {
		st.errored = append(st.errored, erroredLine(lineNo, line, err))
		return st
	}
	if st.current == nil {
		// no header yet: the tile has nowhere to go and is dropped
		return st
	}
	if i := tiles.IndexTile(st.current.Tiles, tile); i >= 0 {
		st.current.Tiles[i] = tile
	} else {
		st.current.Tiles = append(st.current.Tiles, tile)
	}
	return st
}

func (st initFold) finalize() initFold {
	if st.current != nil {
		st.categories = append(st.categories, *st.current)
		st.current = nil
	}
	return st
}

func erroredLine(lineNo int, line string, err error) ErroredLine {
	de, ok := AsError(err)
	if !ok {
		de = newError(ContentsNotParsed, "%v", err)
	}
	return ErroredLine{LineNo: lineNo, Line: line, Err: de}
}
