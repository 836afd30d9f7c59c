package tiles

import (
	"errors"
	"fmt"
)

// ErrUnknownTileType is returned for tp values the editor does not render.
var ErrUnknownTileType = errors.New("unknown tile type")

// TileType selects how the editor renders and places a tile.
type TileType uint8

const (
	TypeBox TileType = iota + 1
	TypeVoxelStruct
	TypeVoxelStructRandomDisplaceHorizontal
	TypeVoxelStructRandomDisplaceVertical
	TypeVoxelStructRockType
	TypeVoxelStructSandType
)

var tileTypeNames = map[string]TileType{
	"box":                                 TypeBox,
	"voxelStruct":                         TypeVoxelStruct,
	"voxelStructRandomDisplaceHorizontal": TypeVoxelStructRandomDisplaceHorizontal,
	"voxelStructRandomDisplaceVertical":   TypeVoxelStructRandomDisplaceVertical,
	"voxelStructRockType":                 TypeVoxelStructRockType,
	"voxelStructSandType":                 TypeVoxelStructSandType,
}

// ParseTileType resolves the text of a tp property. Matching is exact.
func ParseTileType(s string) (TileType, error) {
	if t, ok := tileTypeNames[s]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTileType, s)
}

func (t TileType) String() string {
	switch t {
	case TypeBox:
		return "box"
	case TypeVoxelStruct:
		return "voxelStruct"
	case TypeVoxelStructRandomDisplaceHorizontal:
		return "voxelStructRandomDisplaceHorizontal"
	case TypeVoxelStructRandomDisplaceVertical:
		return "voxelStructRandomDisplaceVertical"
	case TypeVoxelStructRockType:
		return "voxelStructRockType"
	case TypeVoxelStructSandType:
		return "voxelStructSandType"
	}
	return "unknown"
}

// MarshalText keeps the dialect spelling in JSON and YAML output.
func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TileType) UnmarshalText(b []byte) error {
	parsed, err := ParseTileType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
