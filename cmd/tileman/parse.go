package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tileman/internal/diagfmt"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <dir|init.txt>",
	Short: "Load a tiles directory and print its catalogue",
	Long:  `Read the root init document and every subfolder, merge them and print the resulting categories. Errored lines are reported on stderr.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
	parseCmd.Flags().Bool("tiles", false, "list tiles under each category (pretty only)")
	parseCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	loadFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", format)
	}
	showTiles, err := cmd.Flags().GetBool("tiles")
	if err != nil {
		return fmt.Errorf("failed to get tiles flag: %w", err)
	}
	mode, err := uiModeFlag(cmd)
	if err != nil {
		return err
	}
	// машинный вывод не смешиваем с прогрессом
	if format != "pretty" && mode == uiModeAuto {
		mode = uiModeOff
	}

	s, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := loadTarget(cmd, s, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.CatalogueJSON(out, &res.Init)
	case "yaml":
		err = diagfmt.CatalogueYAML(out, &res.Init)
	default:
		diagfmt.CataloguePretty(out, &res.Init, diagfmt.CatalogueOpts{
			PrettyOpts: s.prettyOpts(),
			ShowTiles:  showTiles,
		})
	}
	if err != nil {
		return err
	}

	if !s.Quiet {
		bag := res.Diagnostics(s.Options.MaxDiagnostics)
		if bag.Len() > 0 {
			diagfmt.Pretty(cmd.ErrOrStderr(), bag, s.prettyOpts())
		}
	}
	return nil
}
