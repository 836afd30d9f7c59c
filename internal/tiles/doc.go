// Package tiles holds the tile catalogue model: cells, tile types, tile
// definitions and the coloured categories that group them.
//
// Values are plain data. Identity is structural (Equal) for tiles, while
// categories are merged by declaration (Matches). Ordinal 0 means "assign
// automatically"; AssignPositions and SortAndNormalize turn a raw category
// list into the canonical display order.
package tiles
