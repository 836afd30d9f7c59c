package lingo

import (
	"fmt"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindUnparsed Kind = iota
	KindInteger
	KindText
	KindList
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindText:
		return "Text"
	case KindList:
		return "List"
	case KindPoint:
		return "Point"
	case KindUnparsed:
		return "Unparsed"
	}
	return "Unknown"
}

// Value is the result of parsing one raw property value. Exactly one payload
// field is meaningful, selected by Kind; construct values with the helpers
// below rather than by hand.
type Value struct {
	Kind  Kind
	Int   int32
	Text  string // Text payload, or the raw text of Unparsed
	List  []Value
	Point []int32
}

func Integer(n int32) Value       { return Value{Kind: KindInteger, Int: n} }
func Text(s string) Value         { return Value{Kind: KindText, Text: s} }
func List(items ...Value) Value   { return Value{Kind: KindList, List: items} }
func Point(coords ...int32) Value { return Value{Kind: KindPoint, Point: coords} }
func Unparsed(raw string) Value   { return Value{Kind: KindUnparsed, Text: raw} }

// Equal compares two values variant by variant.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInteger:
		return v.Int == o.Int
	case KindText, KindUnparsed:
		return v.Text == o.Text
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindPoint:
		if len(v.Point) != len(o.Point) {
			return false
		}
		for i := range v.Point {
			if v.Point[i] != o.Point[i] {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value in a debug form, e.g. List([Integer(1), Text("a")]).
func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return fmt.Sprintf("Integer(%d)", v.Int)
	case KindText:
		return fmt.Sprintf("Text(%q)", v.Text)
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "List([" + strings.Join(parts, ", ") + "])"
	case KindPoint:
		parts := make([]string, len(v.Point))
		for i, c := range v.Point {
			parts[i] = fmt.Sprint(c)
		}
		return "Point([" + strings.Join(parts, ", ") + "])"
	case KindUnparsed:
		return fmt.Sprintf("Unparsed(%q)", v.Text)
	}
	return "Unknown"
}
