package testkit

import (
	"fmt"

	"tileman/internal/tiles"
)

// CheckCategories runs the ordering invariants every assembled category list
// must hold:
// 1) ordinals are strictly increasing (sorted and unique)
// 2) every category has a non-nil tile slice
// 3) no two tiles inside one category are structurally equal, unless the
// category carries subfolder tiles (those keep duplicates)
func CheckCategories(list []tiles.TileCategory) error {
	for i, c := range list {
		if i > 0 && c.Index <= list[i-1].Index {
			return fmt.Errorf("category %d (%q) ordinal %d does not follow %d", i, c.Name, c.Index, list[i-1].Index)
		}
		if c.Tiles == nil {
			return fmt.Errorf("category %d (%q) has a nil tile list", i, c.Name)
		}
		if c.Subfolder != "" {
			continue
		}
		for j := range c.Tiles {
			if first := tiles.IndexTile(c.Tiles, c.Tiles[j]); first != j {
				return fmt.Errorf("category %q: tile %d (%q) repeats tile %d", c.Name, j, c.Tiles[j].Name, first)
			}
		}
	}
	return nil
}

// CheckTiles verifies the shape invariants of a decoded tile: the size is a
// two-element point and the spec grids, when present, cover it.
func CheckTiles(list []tiles.TileInfo) error {
	for i, t := range list {
		if len(t.Size) != 2 {
			return fmt.Errorf("tile %d (%q): size has %d components", i, t.Name, len(t.Size))
		}
		area := int(t.Size[0]) * int(t.Size[1])
		if area > 0 && len(t.Specs) != 0 && len(t.Specs) != area {
			return fmt.Errorf("tile %d (%q): %d specs for a %dx%d tile", i, t.Name, len(t.Specs), t.Size[0], t.Size[1])
		}
		if t.Specs2 != nil && len(t.Specs2) != len(t.Specs) {
			return fmt.Errorf("tile %d (%q): specs2 has %d cells, specs %d", i, t.Name, len(t.Specs2), len(t.Specs))
		}
	}
	return nil
}
