package tiles

import (
	"fmt"
	"slices"
	"sort"
)

// Color is an RGB triple.
type Color [3]uint8

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// UnsetIndex marks a category whose ordinal is assigned during normalisation.
const UnsetIndex = 0

// TileCategory is a named, coloured, ordered group of tiles.
type TileCategory struct {
	Name      string     `json:"name" yaml:"name"`
	Color     Color      `json:"color" yaml:"color"`
	Index     int        `json:"index" yaml:"index"`
	Tiles     []TileInfo `json:"tiles" yaml:"tiles"`
	Subfolder string     `json:"subfolder,omitempty" yaml:"subfolder,omitempty"` // empty unless subfolder-sourced
	Enabled   bool       `json:"enabled" yaml:"enabled"`
}

// NewMainCategory returns an enabled category without tiles or subfolder.
func NewMainCategory(name string, color Color, index int) TileCategory {
	return TileCategory{
		Name:    name,
		Color:   color,
		Index:   index,
		Tiles:   []TileInfo{},
		Enabled: true,
	}
}

// Matches compares the declaration of two categories: name, colour and
// ordinal. Header lines only carry these fields, so this is the merge key
// between header-derived and previously collected categories.
func (c TileCategory) Matches(o TileCategory) bool {
	return c.Name == o.Name && c.Color == o.Color && c.Index == o.Index
}

// Equal reports structural equality over every field.
func (c TileCategory) Equal(o TileCategory) bool {
	if !c.Matches(o) || c.Subfolder != o.Subfolder || c.Enabled != o.Enabled {
		return false
	}
	return slices.EqualFunc(c.Tiles, o.Tiles, TileInfo.Equal)
}

// FromSubfolder reports whether the category was collected from a subfolder.
func (c TileCategory) FromSubfolder() bool {
	return c.Subfolder != ""
}

// ContainsMatching reports whether list holds a category matching c.
func ContainsMatching(list []TileCategory, c TileCategory) bool {
	return slices.ContainsFunc(list, c.Matches)
}

// AssignPositions gives every category with an unset ordinal its position in list.
func AssignPositions(list []TileCategory) {
	for i := range list {
		if list[i].Index == UnsetIndex {
			list[i].Index = i
		}
	}
}

// SortAndNormalize orders categories by ordinal (stable for ties) and then
// bumps colliding ordinals so that every ordinal is strictly greater than the
// previous one. Running it twice yields the same result.
func SortAndNormalize(list []TileCategory) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Index < list[j].Index
	})
	for i := 1; i < len(list); i++ {
		if list[i].Index <= list[i-1].Index {
			list[i].Index = list[i-1].Index + 1
		}
	}
}
