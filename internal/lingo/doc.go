// Package lingo parses the value grammar of the tile-init dialect.
//
// A property value is one of: a bare integer, a double-quoted string without
// escapes, a point literal `point(x, y)` or a bracketed list whose elements are
// values again. Parsing never fails; text that matches none of these forms
// comes back as an Unparsed value carrying the trimmed input.
//
// Narrowing accessors (AsInteger, AsText, AsTextList, AsIntegerList,
// AsTileCellList) return a *ConvertError when the value holds another variant.
// List accessors drop elements that do not narrow.
//
// Splitting of list and point interiors is not bracket-aware by default:
//
//	Parse(`[[1,2],[3]]`) // List([Unparsed("[1"), Unparsed("2]"), List([Integer(3)])])
//
// A Parser created with Options{DepthAwareSplit: true} splits on top-level
// commas only.
package lingo
