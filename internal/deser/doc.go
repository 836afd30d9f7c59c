// Package deser turns tile-init documents into the tiles model.
//
// # Documents
//
// A root document is line oriented:
//
//	-["Pipes", color(10, 20, 30)]--CATEGORY_INDEX:2
//	[#nm:"Small Pipe", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #repeatL:[1, 9], #bfTiles:0, #rnd:1, #ptPos:0, #tags:[]]
//	-- a comment
//
// Header lines start with `-[`, comment lines with `--`. Every other
// non-blank line is a tile record.
//
// # Error handling
//
// Nothing here aborts. A record that fails its required properties is logged
// as an ErroredLine and skipped; the document as a whole always yields a
// TileInit. Errors are *Error values of a closed Kind set and compare with
// errors.Is against the Err* sentinels.
//
// # Known quirks
//
// Tile records before the first header are dropped without an error entry.
// The subfolder collector lets every header overwrite the category name and
// colour and appends duplicate tiles, whereas the root assembler replaces a
// structurally equal tile in place. Both behaviours are pinned by tests.
package deser
