package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tileman/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <dir>",
	Short: "Write the catalogue of a tiles directory to PostgreSQL",
	Long:  `Load a tiles directory and replace its snapshot in the tile_categories and tile_infos tables.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("dsn", "", "PostgreSQL DSN (default from [export].dsn or TILEMAN_DB_DSN)")
	exportCmd.Flags().Bool("migrate", true, "create or update the tables before writing")
	loadFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	dsn, err := cmd.Flags().GetString("dsn")
	if err != nil {
		return fmt.Errorf("failed to get dsn flag: %w", err)
	}
	migrate, err := cmd.Flags().GetBool("migrate")
	if err != nil {
		return fmt.Errorf("failed to get migrate flag: %w", err)
	}
	if dsn == "" {
		dsn = s.Config.Export.DSN
	}
	if dsn == "" {
		dsn = os.Getenv("TILEMAN_DB_DSN")
	}
	if dsn == "" {
		return fmt.Errorf("no database: pass --dsn, set [export].dsn or TILEMAN_DB_DSN")
	}

	res, err := loadTarget(cmd, s, uiModeOff)
	if err != nil {
		return err
	}

	db, err := store.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	if migrate {
		if err := store.Migrate(cmd.Context(), db); err != nil {
			return err
		}
	}
	if err := store.New(db).Export(cmd.Context(), &res.Init); err != nil {
		return fmt.Errorf("export %s: %w", res.Init.Root, err)
	}
	if !s.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d categories, %d tiles from %s\n",
			len(res.Init.Categories), res.Init.TileCount(), res.Init.Root)
	}
	return nil
}
