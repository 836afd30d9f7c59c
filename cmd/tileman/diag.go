package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tileman/internal/diag"
	"tileman/internal/diagfmt"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <dir|init.txt>",
	Short: "Report errored lines of a tiles directory",
	Long:  `Load a tiles directory and print only its diagnostics. Exits with status 2 when any line errored.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|short)")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	loadFlags(diagCmd)
}

// runDiagnose loads the target, formats its diagnostics and returns an
// exitError when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	s, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	if fullPath {
		s.PathMode = diagfmt.PathModeAbsolute
	}
	res, err := loadTarget(cmd, s, uiModeOff)
	if err != nil {
		return err
	}

	bag := res.Diagnostics(s.Options.MaxDiagnostics)
	if noWarnings {
		bag.Filter(diag.SevError)
	}

	out := cmd.OutOrStdout()
	jsonOpts := diagfmt.JSONOpts{
		PathMode:     s.PathMode,
		BaseDir:      s.Target.Root,
		IncludeNotes: withNotes,
	}
	switch strings.ToLower(format) {
	case "pretty":
		opts := s.prettyOpts()
		opts.ShowNotes = withNotes
		diagfmt.Pretty(out, bag, opts)
	case "json":
		err = diagfmt.JSON(out, bag, jsonOpts)
	case "yaml":
		err = diagfmt.YAML(out, bag, jsonOpts)
	case "short":
		if bag.Len() > 0 {
			fmt.Fprintln(out, diag.FormatShort(bag.Items(), s.Target.Root, withNotes))
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if bag.HasErrors() {
		return &exitError{code: 2, msg: fmt.Sprintf("%d errored lines", res.ErroredLineCount())}
	}
	return nil
}
