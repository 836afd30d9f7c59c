package tiles

import "slices"

// TileInfo is the metadata of one drawable tile definition.
type TileInfo struct {
	Name         string     `json:"name" yaml:"name"`
	Size         []int32    `json:"size" yaml:"size"`
	Specs        []TileCell `json:"specs" yaml:"specs"`
	Specs2       []TileCell `json:"specs2,omitempty" yaml:"specs2,omitempty"` // nil when absent
	Type         TileType   `json:"type" yaml:"type"`
	RepeatLayers []int32    `json:"repeat_layers,omitempty" yaml:"repeat_layers,omitempty"` // nil when absent
	BufferTiles  int32      `json:"buffer_tiles" yaml:"buffer_tiles"`
	RandomVars   *int32     `json:"random_vars,omitempty" yaml:"random_vars,omitempty"`
	PreviewPos   int32      `json:"preview_pos" yaml:"preview_pos"`
	Tags         []string   `json:"tags" yaml:"tags"`
	Active       bool       `json:"active" yaml:"active"`
}

// Equal reports structural equality: every field takes part.
// Optional lists compare presence as well as content.
func (t TileInfo) Equal(o TileInfo) bool {
	if t.Name != o.Name || t.Type != o.Type || t.BufferTiles != o.BufferTiles ||
		t.PreviewPos != o.PreviewPos || t.Active != o.Active {
		return false
	}
	if !slices.Equal(t.Size, o.Size) || !slices.Equal(t.Specs, o.Specs) || !slices.Equal(t.Tags, o.Tags) {
		return false
	}
	if !optionalEqual(t.Specs2, o.Specs2) || !optionalEqual(t.RepeatLayers, o.RepeatLayers) {
		return false
	}
	switch {
	case t.RandomVars == nil && o.RandomVars == nil:
		return true
	case t.RandomVars == nil || o.RandomVars == nil:
		return false
	}
	return *t.RandomVars == *o.RandomVars
}

// Width and Height read the sz point; missing axes read as 0.
func (t TileInfo) Width() int32 {
	if len(t.Size) > 0 {
		return t.Size[0]
	}
	return 0
}

func (t TileInfo) Height() int32 {
	if len(t.Size) > 1 {
		return t.Size[1]
	}
	return 0
}

// HasTag reports whether tag is listed on the tile.
func (t TileInfo) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

func optionalEqual[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}

// IndexTile returns the position of the first tile equal to t, or -1.
func IndexTile(list []TileInfo, t TileInfo) int {
	return slices.IndexFunc(list, t.Equal)
}
