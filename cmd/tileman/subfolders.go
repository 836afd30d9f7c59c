package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tileman/internal/diagfmt"
	"tileman/internal/driver"
	"tileman/internal/tiles"
)

var subfoldersCmd = &cobra.Command{
	Use:   "subfolders [flags] <dir>",
	Short: "List the categories collected from subfolders",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubfolders,
}

func init() {
	subfoldersCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	loadFlags(subfoldersCmd)
}

type subfolderEntry struct {
	Name     string               `json:"name" yaml:"name"`
	Path     string               `json:"path" yaml:"path"`
	Color    string               `json:"color_file,omitempty" yaml:"color_file,omitempty"`
	Failed   bool                 `json:"failed,omitempty" yaml:"failed,omitempty"`
	Category diagfmt.CategoryView `json:"category" yaml:"category"`
	Errors   []diagfmt.ErrorView  `json:"errors" yaml:"errors"`
}

func runSubfolders(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	s, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	s.Options.Subfolders = true
	res, err := loadTarget(cmd, s, uiModeOff)
	if err != nil {
		return err
	}

	entries := make([]subfolderEntry, 0, len(res.Subfolders))
	for _, sc := range res.Subfolders {
		entries = append(entries, subfolderEntry{
			Name:     sc.Name,
			Path:     sc.Path,
			Color:    sc.ColorPath,
			Failed:   sc.Failed,
			Category: categoryView(sc),
			Errors:   diagfmt.ErrorViews(sc.ErroredLines),
		})
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		return diagfmt.WriteJSON(out, entries)
	case "yaml":
		return diagfmt.WriteYAML(out, entries)
	case "pretty":
		printSubfolders(out, entries, s)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
	}
}

func categoryView(sc driver.SubfolderScan) diagfmt.CategoryView {
	view := diagfmt.CategoryView{
		Index:     sc.Category.Index,
		Name:      sc.Category.Name,
		Color:     sc.Category.Color.Hex(),
		Subfolder: sc.Category.Subfolder,
		Enabled:   sc.Category.Enabled,
		Tiles:     sc.Category.Tiles,
	}
	if view.Tiles == nil {
		view.Tiles = []tiles.TileInfo{}
	}
	return view
}

func printSubfolders(out io.Writer, entries []subfolderEntry, s *settings) {
	bad := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)
	if s.Color {
		bad.EnableColor()
		dim.EnableColor()
	} else {
		bad.DisableColor()
		dim.DisableColor()
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, dim.Sprint("no subfolders with an init document"))
		return
	}
	for _, e := range entries {
		status := ""
		if e.Failed {
			status = " " + bad.Sprint("unreadable")
		}
		ordinal := "-"
		if e.Category.Index != 0 {
			ordinal = fmt.Sprint(e.Category.Index)
		}
		fmt.Fprintf(out, "%-20s %-20s %s %4s %3d tiles%s\n",
			e.Name, e.Category.Name, e.Category.Color, ordinal, len(e.Category.Tiles), status)
		for _, ev := range e.Errors {
			fmt.Fprintf(out, "    %s %s: %s\n", dim.Sprintf("line %d", ev.Line), ev.Kind, ev.Message)
		}
	}
}
