package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wtf/internal/driver"
	"wtf/internal/ui"
)

type runOutcome struct {
	results []*driver.Result
	err     error
}

func runFixWithUI(ctx context.Context, title string, files []string, opts *fixOptions) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		var out runOutcome
		for _, path := range files {
			res, err := fixPath(ctx, path, opts, events)
			if err != nil {
				out.err = err
				break
			}
			out.results = append(out.results, res)
		}
		outcomeCh <- out
		close(events)
	}()

	return waitForUI(title, files, events, outcomeCh)
}

func runCheckWithUI(ctx context.Context, title string, files []string, opts driver.Options, jobs int, cache *driver.Cache) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		results, err := driver.CheckFiles(ctx, files, opts, jobs, cache, events)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	return waitForUI(title, files, events, outcomeCh)
}

func waitForUI(title string, files []string, events chan driver.Event, outcomeCh chan runOutcome) ([]*driver.Result, error) {
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
