package deser

import (
	"strings"

	"tileman/internal/tiles"
)

// DefaultSubfolderColor is used when a subfolder has no colour document.
var DefaultSubfolderColor = tiles.Color{255, 0, 0}

// invalidSubfolderIndex is the ordinal of a subfolder whose marker number
// does not parse.
const invalidSubfolderIndex = 1

// Subfolder is the text a collaborator read from one subdirectory.
type Subfolder struct {
	Name     string // directory name, becomes the initial category name
	Path     string // recorded on the category as its subfolder
	Init     string // init document text
	Color    string // colour document text, meaningful when HasColor
	HasColor bool
}

// SubfolderResult pairs a collected category with the errors of its document.
type SubfolderResult struct {
	Category     tiles.TileCategory `json:"category" yaml:"category"`
	ErroredLines []ErroredLine      `json:"errored_lines" yaml:"errored_lines"`
}

// CollectSubfolder collects a subfolder with the default decoder.
func CollectSubfolder(sf Subfolder) (tiles.TileCategory, []ErroredLine) {
	return defaultDecoder.CollectSubfolder(sf)
}

// CollectSubfolder builds the disabled category of one subfolder document.
//
// Unlike ParseTileInit every header line overwrites the name and colour, and
// every tile is appended even when an equal one is already present.
func (d *Decoder) CollectSubfolder(sf Subfolder) (tiles.TileCategory, []ErroredLine) {
	colorText := "255,0,0"
	if sf.HasColor {
		colorText = strings.TrimSpace(sf.Color)
	}
	category := tiles.NewMainCategory(sf.Name, parseColor(colorText, DefaultSubfolderColor), tiles.UnsetIndex)
	category.Enabled = false
	category.Subfolder = sf.Path

	var errored []ErroredLine
	lineNo := 0
	for raw := range strings.Lines(sf.Init) {
		lineNo++
		line := strings.TrimRight(raw, "\r\n")
		if isCommentLine(line) || strings.TrimSpace(line) == "" {
			continue
		}

		index, hasIndex := categoryIndex(line, invalidSubfolderIndex)
		if hasIndex {
			category.Index = index
		}

		if isHeaderLine(line) {
			header, err := ParseCategoryHeader(line)
			if err != nil {
				errored = append(errored, erroredLine(lineNo, line, err))
				continue
			}
			category.Name = header.Name
			category.Color = header.Color
			continue
		}
		if hasIndex {
			continue
		}

		tile, err := d.ParseTileInfo(line, true)
		if err != nil {
			errored = append(errored, erroredLine(lineNo, line, err))
			continue
		}
		category.Tiles = append(category.Tiles, tile)
	}
	return category, errored
}
