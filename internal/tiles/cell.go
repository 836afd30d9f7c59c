package tiles

import (
	"errors"
	"fmt"
)

// ErrUnknownCell is returned when a spec code has no TileCell.
var ErrUnknownCell = errors.New("unknown tile cell code")

// TileCell is one geometry cell of a tile spec grid.
type TileCell int8

const (
	CellAny              TileCell = -1
	CellAir              TileCell = 0
	CellWall             TileCell = 1
	CellSlopeNE          TileCell = 2
	CellSlopeNW          TileCell = 3
	CellSlopeES          TileCell = 4
	CellSlopeSW          TileCell = 5
	CellFloor            TileCell = 6
	CellShortcutEntrance TileCell = 7
	CellGlass            TileCell = 9
)

// CellFromCode maps a raw spec code onto a TileCell.
func CellFromCode(code int32) (TileCell, error) {
	// 8 is not a cell
	if code < -1 || code > 9 || code == 8 {
		return CellAir, fmt.Errorf("%w: %d", ErrUnknownCell, code)
	}
	return TileCell(code), nil
}

// Code returns the raw spec code.
func (c TileCell) Code() int32 {
	return int32(c)
}

func (c TileCell) String() string {
	switch c {
	case CellAny:
		return "any"
	case CellAir:
		return "air"
	case CellWall:
		return "wall"
	case CellSlopeNE:
		return "slope-ne"
	case CellSlopeNW:
		return "slope-nw"
	case CellSlopeES:
		return "slope-es"
	case CellSlopeSW:
		return "slope-sw"
	case CellFloor:
		return "floor"
	case CellShortcutEntrance:
		return "shortcut-entrance"
	case CellGlass:
		return "glass"
	}
	return fmt.Sprintf("cell(%d)", int8(c))
}
