package deser

import (
	"regexp"

	"tileman/internal/lingo"
	"tileman/internal/tiles"
)

// propsPattern captures every flat `#key:value` property of a tile record.
// Group 1 is the key, group 2 the raw value: a quoted string, a point literal,
// a bracketed list of integers or strings, or a bare integer.
var propsPattern = regexp.MustCompile(`\#(\w+):("[\\\w\d\s+_-]*?"|point\([\s\d,-]*?\)|\[\s*((\s*?,?\s*?(-?\d+|"[\w\d\s]*?"))*?)\s*\]|\d+)`)

const missingItemPrefix = "WARNING: MISSING ITEM "

// Decoder runs the extractors and assemblers with one value parser.
type Decoder struct {
	values *lingo.Parser
}

// NewDecoder returns a Decoder whose value parser uses opts.
func NewDecoder(opts lingo.Options) *Decoder {
	return &Decoder{values: lingo.NewParser(opts)}
}

var defaultDecoder = &Decoder{values: lingo.Default}

// ParseTileInfo parses a tile record line with the default decoder.
func ParseTileInfo(line string, isBase bool) (tiles.TileInfo, error) {
	return defaultDecoder.ParseTileInfo(line, isBase)
}

// scanProperties collects raw property values by key; the last occurrence wins.
func scanProperties(line string) map[string]string {
	props := make(map[string]string)
	for _, m := range propsPattern.FindAllStringSubmatch(line, -1) {
		props[m[1]] = m[2]
	}
	return props
}

// ParseTileInfo builds one TileInfo from a record line. Required properties
// are checked in declaration order and the first failure aborts the record;
// optional ones degrade to absent and tags to an empty list.
func (d *Decoder) ParseTileInfo(line string, isBase bool) (tiles.TileInfo, error) {
	props := scanProperties(line)
	get := func(key string) lingo.Value {
		raw, ok := props[key]
		if !ok {
			raw = missingItemPrefix + key
		}
		return d.values.Parse(raw)
	}

	var info tiles.TileInfo

	nm := get("nm")
	name, err := nm.AsText()
	if err != nil {
		return tiles.TileInfo{}, typeMismatch("nm", lingo.KindText.String(), nm.String())
	}
	info.Name = name

	sz := get("sz")
	size, err := sz.AsPoint()
	if err != nil {
		return tiles.TileInfo{}, typeMismatch("sz", lingo.KindPoint.String(), sz.String())
	}
	info.Size = size

	specs := get("specs")
	cells, err := specs.AsTileCellList()
	if err != nil {
		return tiles.TileInfo{}, typeMismatch("specs", lingo.KindList.String(), specs.String())
	}
	info.Specs = cells

	if cells2, err := get("specs2").AsNullIfZero().AsTileCellList(); err == nil {
		info.Specs2 = cells2
	}

	tp := get("tp")
	typeName, err := tp.AsText()
	if err != nil {
		return tiles.TileInfo{}, typeMismatch("tp", lingo.KindText.String(), tp.String())
	}
	tileType, err := tiles.ParseTileType(typeName)
	if err != nil {
		return tiles.TileInfo{}, newError(InvalidValue, "tp: %v", err)
	}
	info.Type = tileType

	if layers, err := get("repeatL").AsIntegerList(); err == nil {
		info.RepeatLayers = layers
	}

	bf := get("bfTiles")
	if info.BufferTiles, err = bf.AsInteger(); err != nil {
		return tiles.TileInfo{}, typeMismatch("bfTiles", lingo.KindInteger.String(), bf.String())
	}

	if rnd, err := get("rnd").AsInteger(); err == nil {
		info.RandomVars = &rnd
	}

	pt := get("ptPos")
	if info.PreviewPos, err = pt.AsInteger(); err != nil {
		return tiles.TileInfo{}, typeMismatch("ptPos", lingo.KindInteger.String(), pt.String())
	}

	tags, err := get("tags").AsTextList()
	if err != nil {
		tags = []string{}
	}
	info.Tags = tags
	info.Active = isBase
	return info, nil
}
