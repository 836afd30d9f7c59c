package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"tileman/internal/deser"
	"tileman/internal/testkit"
	"tileman/internal/tiles"
)

// assembleTimeout is the maximum time allowed for one document.
const assembleTimeout = 5 * time.Second

func FuzzTileInfo(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		line := clampInput(input)
		info, err := deser.ParseTileInfo(line, true)
		if err != nil {
			if _, ok := deser.AsError(err); !ok {
				t.Fatalf("error %v is not a deser.Error", err)
			}
			return
		}
		if info.Tags == nil {
			t.Fatal("decoded tile has nil tags")
		}
	})
}

func FuzzCategoryHeader(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		c, err := deser.ParseCategoryHeader(clampInput(input))
		if err != nil {
			return
		}
		if !c.Enabled || c.Subfolder != "" || c.Tiles == nil {
			t.Fatalf("header category = %+v", c)
		}
	})
}

// FuzzTileInitNoHang assembles arbitrary documents with a subfolder merge
// source and checks the catalogue invariants. A timeout catches hangs.
func FuzzTileInitNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), assembleTimeout)
		defer cancel()

		done := make(chan deser.TileInit, 1)
		go func() {
			sub, _ := deser.CollectSubfolder(deser.Subfolder{Name: "sub", Path: "sub", Init: text})
			extra := []tiles.TileCategory{sub}
			done <- deser.ParseTileInit(text, extra, "fuzz")
		}()

		select {
		case ti := <-done:
			if err := testkit.CheckCategories(ti.Categories); err != nil {
				t.Fatalf("%v\ninput: %q", err, truncateForLog(text, 200))
			}
			lines := strings.Count(text, "\n") + 1
			for _, el := range ti.ErroredLines {
				if el.LineNo < 1 || el.LineNo > lines || el.Err == nil {
					t.Fatalf("bad errored line %+v for a %d-line document", el, lines)
				}
			}
		case <-ctx.Done():
			t.Fatalf("assembler hang detected: took longer than %v\ninput (%d bytes): %q",
				assembleTimeout, len(text), truncateForLog(text, 200))
		}
	})
}
