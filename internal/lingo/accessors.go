package lingo

import (
	"fmt"

	"tileman/internal/tiles"
)

// ConvertError reports that a Value does not hold the variant an accessor needs.
type ConvertError struct {
	Want  string
	Value Value
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s not a %s", e.Value, e.Want)
}

func convertErr(want string, v Value) error {
	return &ConvertError{Want: want, Value: v}
}

func (v Value) AsInteger() (int32, error) {
	switch v.Kind {
	case KindInteger:
		return v.Int, nil
	case KindText, KindList, KindPoint, KindUnparsed:
	}
	return 0, convertErr("number", v)
}

func (v Value) AsText() (string, error) {
	switch v.Kind {
	case KindText:
		return v.Text, nil
	case KindInteger, KindList, KindPoint, KindUnparsed:
	}
	return "", convertErr("string", v)
}

func (v Value) AsPoint() ([]int32, error) {
	switch v.Kind {
	case KindPoint:
		return v.Point, nil
	case KindInteger, KindText, KindList, KindUnparsed:
	}
	return nil, convertErr("point", v)
}

// AsTextList keeps the Text elements of a List and drops the rest.
func (v Value) AsTextList() ([]string, error) {
	if v.Kind != KindList {
		return nil, convertErr("string array", v)
	}
	out := make([]string, 0, len(v.List))
	for _, item := range v.List {
		if s, err := item.AsText(); err == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

// AsIntegerList keeps the Integer elements of a List and drops the rest.
func (v Value) AsIntegerList() ([]int32, error) {
	if v.Kind != KindList {
		return nil, convertErr("number array", v)
	}
	out := make([]int32, 0, len(v.List))
	for _, item := range v.List {
		if n, err := item.AsInteger(); err == nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// AsTileCellList narrows a List of integers to tile cells; codes without a
// cell are dropped.
func (v Value) AsTileCellList() ([]tiles.TileCell, error) {
	codes, err := v.AsIntegerList()
	if err != nil {
		return nil, convertErr("tile cell array", v)
	}
	out := make([]tiles.TileCell, 0, len(codes))
	for _, code := range codes {
		if cell, err := tiles.CellFromCode(code); err == nil {
			out = append(out, cell)
		}
	}
	return out, nil
}

// AsNullIfZero maps Integer(0) to Unparsed("NULL"); other values pass through.
func (v Value) AsNullIfZero() Value {
	if v.Kind == KindInteger && v.Int == 0 {
		return Unparsed("NULL")
	}
	return v
}
