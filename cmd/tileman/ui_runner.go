package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tileman/internal/driver"
	"tileman/internal/ui"
)

type loadOutcome struct {
	result *driver.Result
	err    error
}

// runLoadWithUI runs driver.Load while a progress model renders to stderr,
// leaving stdout for the catalogue.
func runLoadWithUI(ctx context.Context, title string, target string, opts driver.Options, load func(context.Context, driver.Options) (*driver.Result, error)) (*driver.Result, error) {
	var names []string
	if opts.Subfolders {
		scans, err := driver.ListSubfolders(target, opts.InitName)
		if err == nil {
			for _, sc := range scans {
				names = append(names, sc.Name)
			}
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan loadOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := load(ctx, optsCopy)
		outcomeCh <- loadOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
