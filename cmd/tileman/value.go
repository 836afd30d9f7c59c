package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tileman/internal/diagfmt"
	"tileman/internal/lingo"
)

var valueCmd = &cobra.Command{
	Use:   "value [flags] <text>",
	Short: "Parse one raw dialect value and print its tree",
	Long:  `Parse one property value, e.g. 'point(1,2)' or '[1, "a"]', and print the resulting Value tree.`,
	Example: `  tileman value 'point(3, 4)'
  tileman value --depth-aware '[[1,2],[3]]'`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

func init() {
	valueCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|debug)")
	valueCmd.Flags().Bool("depth-aware", false, "split lists at top-level commas only")
}

func runValue(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	depthAware, err := cmd.Flags().GetBool("depth-aware")
	if err != nil {
		return fmt.Errorf("failed to get depth-aware flag: %w", err)
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	v := lingo.NewParser(lingo.Options{DepthAwareSplit: depthAware}).Parse(args[0])
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		diagfmt.ValuePretty(out, v, diagfmt.PrettyOpts{Color: useColor})
		return nil
	case "json":
		return diagfmt.ValueJSON(out, v)
	case "yaml":
		return diagfmt.ValueYAML(out, v)
	case "debug":
		fmt.Fprintln(out, v.String())
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json, yaml or debug)", format)
	}
}
