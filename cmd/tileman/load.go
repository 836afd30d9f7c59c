package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tileman/internal/driver"
)

// loadTarget runs the driver for s, with the progress UI when requested.
func loadTarget(cmd *cobra.Command, s *settings, mode uiMode) (*driver.Result, error) {
	defer dumpTraceOnPanic()

	load := func(ctx context.Context, opts driver.Options) (*driver.Result, error) {
		return driver.Load(ctx, s.Target, opts)
	}
	var (
		res *driver.Result
		err error
	)
	if !s.Quiet && shouldUseTUI(mode) {
		res, err = runLoadWithUI(cmd.Context(), "loading "+s.Target.Root, s.Target.Root, s.Options, load)
	} else {
		res, err = load(cmd.Context(), s.Options)
	}
	if err != nil {
		dumpTraceTail(cmd.ErrOrStderr(), failureTail)
		return nil, err
	}
	if s.Timings {
		printTimings(cmd.ErrOrStderr(), s.Options.Timer, res)
	}
	return res, nil
}

func uiModeFlag(cmd *cobra.Command) (uiMode, error) {
	if cmd.Flags().Lookup("ui") == nil {
		return uiModeOff, nil
	}
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return "", fmt.Errorf("failed to get ui flag: %w", err)
	}
	return readUIMode(value)
}
