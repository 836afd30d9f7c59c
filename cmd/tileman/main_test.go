package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tileman/internal/diagfmt"
)

const tileA = `[#nm:"a", #sz:point(1,1), #specs:[1], #specs2:0, #tp:"voxelStruct", #bfTiles:0, #ptPos:0, #tags:[]]`

func writeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"init.txt":        "-[\"Pipes\", color(10,20,30)]\n" + tileA + "\n[#nm:\"bad\"]\n",
		"Pipes/init.txt":  strings.Replace(tileA, `"a"`, `"x"`, 1) + "\n",
		"Pipes/color.txt": "10,20,30\n",
	}
	for name, text := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// resetFlags puts every flag back to its default; cobra keeps values
// between Execute calls in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParse_JSON(t *testing.T) {
	root := writeFixture(t)
	stdout, stderr, err := execute(t, "parse", "--format", "json", "--ui", "off", "--color", "off", root)
	if err != nil {
		t.Fatalf("parse: %v\n%s", err, stderr)
	}
	var view diagfmt.CatalogueView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(view.Categories) != 1 || view.TileCount != 2 {
		t.Fatalf("view = %+v", view)
	}
	if view.Categories[0].Subfolder == "" {
		t.Fatal("Pipes must adopt the subfolder path")
	}
	if !strings.Contains(stderr, "DES1004") {
		t.Fatalf("stderr lacks the errored line:\n%s", stderr)
	}
}

func TestParse_NoSubfolders(t *testing.T) {
	root := writeFixture(t)
	stdout, _, err := execute(t, "parse", "--format", "yaml", "--no-subfolders", "--quiet", root)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "tile_count: 1") {
		t.Fatalf("yaml:\n%s", stdout)
	}
}

func TestDiag_ExitCode(t *testing.T) {
	root := writeFixture(t)
	stdout, _, err := execute(t, "diag", "--format", "short", root)
	if err == nil || exitCodeFor(err) != 2 {
		t.Fatalf("err = %v, want exit code 2", err)
	}
	if !strings.Contains(stdout, "error DES1004 init.txt:3") {
		t.Fatalf("stdout:\n%s", stdout)
	}
}

func TestDiag_Clean(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "init.txt"), []byte("-[\"A\", color(1,1,1)]\n"+tileA+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := execute(t, "diag", "--format", "json", root)
	if err != nil {
		t.Fatalf("diag: %v", err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil || out.Count != 0 {
		t.Fatalf("output = %s (%v)", stdout, err)
	}
}

func TestParse_MissingRoot(t *testing.T) {
	_, _, err := execute(t, "parse", "--ui", "off", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "root init document") {
		t.Fatalf("err = %v", err)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"value", "--format", "debug", "point(1, 2)"}, "Point([1, 2])\n"},
		{[]string{"value", "--format", "pretty", "--color", "off", "[1, \"a\"]"}, "List (2)\n  Integer 1\n  Text \"a\"\n"},
	}
	for _, tt := range tests {
		stdout, _, err := execute(t, tt.args...)
		if err != nil {
			t.Fatal(err)
		}
		if stdout != tt.want {
			t.Errorf("%v = %q, want %q", tt.args, stdout, tt.want)
		}
	}
}

func TestVersion_JSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "tileman" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestResolveSettings_ManifestAndFlags(t *testing.T) {
	root := writeFixture(t)
	manifest := "[load]\njobs = 3\nsubfolders = false\ncache = false\n[parse]\ndepth_aware_split = true\n[extra]\nkey = 1\n"
	if err := os.WriteFile(filepath.Join(root, "tileman.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}
	resetFlags(rootCmd)
	var errOut bytes.Buffer
	parseCmd.SetErr(&errOut)
	defer parseCmd.SetErr(nil)
	if err := parseCmd.Flags().Set("jobs", "5"); err != nil {
		t.Fatal(err)
	}
	s, err := resolveSettings(parseCmd, root)
	if err != nil {
		t.Fatal(err)
	}
	if s.Manifest == nil || s.Options.Jobs != 5 || s.Options.Subfolders || !s.Options.Lingo.DepthAwareSplit {
		t.Fatalf("settings = %+v", s.Options)
	}
	if s.Options.Cache != nil {
		t.Fatal("cache = false in the manifest must disable the cache")
	}
	if !strings.Contains(errOut.String(), "extra.key") {
		t.Fatalf("unknown keys not reported: %q", errOut.String())
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error")
	}
}

func TestValue_MemProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.out")
	if _, _, err := execute(t, "value", "--memprofile", path, "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("heap profile not written: %v", err)
	}
}
