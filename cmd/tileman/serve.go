package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tileman/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] <dir>",
	Short: "Serve the catalogue of a tiles directory over HTTP",
	Long:  `Load a tiles directory once and serve it read-only as JSON under /api.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from [serve].addr)")
	loadFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args[0])
	if err != nil {
		return err
	}
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("failed to get addr flag: %w", err)
	}
	if addr == "" {
		addr = s.Config.Serve.Addr
	}

	res, err := loadTarget(cmd, s, uiModeOff)
	if err != nil {
		return err
	}
	if !s.Quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "serving %s (%d categories, %d tiles, %d errored lines) on %s\n",
			res.Init.Root, len(res.Init.Categories), res.Init.TileCount(), res.ErroredLineCount(), addr)
	}

	h := server.New(addr, server.Handler{Result: res})
	h.Spin()
	return nil
}
