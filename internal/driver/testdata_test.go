package driver

import (
	"context"
	"path/filepath"
	"testing"

	"tileman/internal/project"
	"tileman/internal/testkit"
)

func TestLoad_Testdata(t *testing.T) {
	target, err := project.ResolveTarget(filepath.Join("..", "..", "testdata", "tiles"), "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Load(context.Background(), target, Options{Subfolders: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cats := res.Init.Categories
	want := []struct {
		name  string
		index int
		tiles string
	}{
		{"Misc", 0, "Rubble,Big Rubble"},
		{"Empty", 2, ""},
		{"Machinery", 4, "Gear Big,Pipe Small"},
	}
	if len(cats) != len(want) {
		t.Fatalf("categories = %+v", cats)
	}
	for i, w := range want {
		if cats[i].Name != w.name || cats[i].Index != w.index || names(cats[i]) != w.tiles {
			t.Errorf("category %d = %q #%d [%s], want %q #%d [%s]",
				i, cats[i].Name, cats[i].Index, names(cats[i]), w.name, w.index, w.tiles)
		}
	}
	if !cats[2].Enabled || cats[2].Subfolder == "" {
		t.Errorf("Machinery should be enabled and carry its subfolder: %+v", cats[2])
	}
	if cats[1].Enabled {
		t.Error("Empty comes only from a subfolder and stays disabled")
	}
	if err := testkit.CheckCategories(cats); err != nil {
		t.Fatal(err)
	}

	var lines []int
	for _, el := range res.Init.ErroredLines {
		lines = append(lines, el.LineNo)
	}
	if len(lines) != 2 || lines[0] != 8 || lines[1] != 9 {
		t.Fatalf("errored lines = %v", lines)
	}
}
