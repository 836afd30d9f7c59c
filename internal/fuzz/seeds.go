package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var dialectSeeds = []string{
	`point(1, 2)`,
	`[1, "a", point(3,4)]`,
	`[[1,2],[3]]`,
	`"unterminated`,
	`-["Pipes", color(10,20,30)]--CATEGORY_INDEX:2`,
	`-["Dim", color(7)]`,
	`--CATEGORY_INDEX:99999999999999999999999`,
	`[#nm:"a", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #bfTiles:0, #ptPos:0, #tags:[]]`,
	`[#nm:"b", #sz:point(2,1), #specs:[1,-1], #specs2:[0,0], #tp:"box", #repeatL:[1,2], #bfTiles:1, #rnd:3, #ptPos:0, #tags:["x"]]`,
	"-[\"A\", color(1,1,1)]\r\n[#nm:\"a\"]\r\n",
}

// documents returns the dialect seeds plus every init document under
// testdata/, whole and line by line.
func documents() [][]byte {
	out := make([][]byte, 0, len(dialectSeeds))
	for _, s := range dialectSeeds {
		out = append(out, []byte(s))
	}
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return out
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".txt" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		out = append(out, clampSeed(src))
		for _, line := range bytes.Split(src, []byte{'\n'}) {
			if len(bytes.TrimSpace(line)) > 0 {
				out = append(out, clampSeed(line))
			}
		}
		return nil
	})
	return out
}

func addCorpusSeeds(f *testing.F) {
	for _, doc := range documents() {
		f.Add(doc)
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input string, maxLen int) string {
	if len(input) <= maxLen {
		return input
	}
	return input[:maxLen] + "..."
}
