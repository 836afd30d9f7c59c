package store

import (
	"time"

	"tileman/internal/deser"
	"tileman/internal/tiles"
)

// CategoryRow is one category of an exported catalogue.
type CategoryRow struct {
	ID         uint   `gorm:"primaryKey"`
	Root       string `gorm:"index:idx_category_root_ordinal,priority:1;not null"`
	Ordinal    int    `gorm:"index:idx_category_root_ordinal,priority:2"`
	Name       string `gorm:"not null"`
	ColorR     uint8
	ColorG     uint8
	ColorB     uint8
	Subfolder  string
	Enabled    bool
	ExportedAt time.Time
}

func (CategoryRow) TableName() string { return "tile_categories" }

// TileRow is one tile; Position keeps the order inside its category.
type TileRow struct {
	ID           uint    `gorm:"primaryKey"`
	CategoryID   uint    `gorm:"index;not null"`
	Root         string  `gorm:"index;not null"`
	Position     int
	Name         string  `gorm:"not null"`
	Size         []int32 `gorm:"serializer:json"`
	Specs        []int32 `gorm:"serializer:json"`
	Specs2       []int32 `gorm:"serializer:json"`
	Type         string
	RepeatLayers []int32 `gorm:"serializer:json"`
	BufferTiles  int32
	RandomVars   *int32
	PreviewPos   int32
	Tags         []string `gorm:"serializer:json"`
	Active       bool
}

func (TileRow) TableName() string { return "tile_infos" }

// catalogueRows flattens a catalogue. Tile rows carry the index of their
// category in the returned slice until the category IDs are known.
func catalogueRows(ti *deser.TileInit, now time.Time) ([]CategoryRow, [][]TileRow) {
	cats := make([]CategoryRow, 0, len(ti.Categories))
	tileRows := make([][]TileRow, 0, len(ti.Categories))
	for _, c := range ti.Categories {
		cats = append(cats, CategoryRow{
			Root:       ti.Root,
			Ordinal:    c.Index,
			Name:       c.Name,
			ColorR:     c.Color[0],
			ColorG:     c.Color[1],
			ColorB:     c.Color[2],
			Subfolder:  c.Subfolder,
			Enabled:    c.Enabled,
			ExportedAt: now,
		})
		rows := make([]TileRow, 0, len(c.Tiles))
		for pos, t := range c.Tiles {
			rows = append(rows, tileRow(ti.Root, pos, t))
		}
		tileRows = append(tileRows, rows)
	}
	return cats, tileRows
}

func tileRow(root string, pos int, t tiles.TileInfo) TileRow {
	return TileRow{
		Root:         root,
		Position:     pos,
		Name:         t.Name,
		Size:         append([]int32(nil), t.Size...),
		Specs:        cellCodes(t.Specs),
		Specs2:       cellCodes(t.Specs2),
		Type:         t.Type.String(),
		RepeatLayers: append([]int32(nil), t.RepeatLayers...),
		BufferTiles:  t.BufferTiles,
		RandomVars:   t.RandomVars,
		PreviewPos:   t.PreviewPos,
		Tags:         append([]string(nil), t.Tags...),
		Active:       t.Active,
	}
}

// tileFromRow rebuilds a tile; cell codes that no longer decode fail the load.
func tileFromRow(r TileRow) (tiles.TileInfo, error) {
	typ, err := tiles.ParseTileType(r.Type)
	if err != nil {
		return tiles.TileInfo{}, err
	}
	specs, err := cellsFromCodes(r.Specs)
	if err != nil {
		return tiles.TileInfo{}, err
	}
	specs2, err := cellsFromCodes(r.Specs2)
	if err != nil {
		return tiles.TileInfo{}, err
	}
	tagList := r.Tags
	if tagList == nil {
		tagList = []string{}
	}
	return tiles.TileInfo{
		Name:         r.Name,
		Size:         r.Size,
		Specs:        specs,
		Specs2:       specs2,
		Type:         typ,
		RepeatLayers: r.RepeatLayers,
		BufferTiles:  r.BufferTiles,
		RandomVars:   r.RandomVars,
		PreviewPos:   r.PreviewPos,
		Tags:         tagList,
		Active:       r.Active,
	}, nil
}

func categoryFromRow(r CategoryRow) tiles.TileCategory {
	return tiles.TileCategory{
		Name:      r.Name,
		Color:     tiles.Color{r.ColorR, r.ColorG, r.ColorB},
		Index:     r.Ordinal,
		Tiles:     []tiles.TileInfo{},
		Subfolder: r.Subfolder,
		Enabled:   r.Enabled,
	}
}

// cellCodes keeps nil for an absent grid so specs2 round-trips as absent.
func cellCodes(cells []tiles.TileCell) []int32 {
	if cells == nil {
		return nil
	}
	out := make([]int32, len(cells))
	for i, c := range cells {
		out[i] = c.Code()
	}
	return out
}

func cellsFromCodes(codes []int32) ([]tiles.TileCell, error) {
	if codes == nil {
		return nil, nil
	}
	out := make([]tiles.TileCell, len(codes))
	for i, code := range codes {
		c, err := tiles.CellFromCode(code)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
