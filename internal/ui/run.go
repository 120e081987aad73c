package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jaiparse/internal/driver"
)

// RunWithProgress runs work in the background and renders its progress
// events until it returns. The error of work wins over a UI error.
func RunWithProgress(ctx context.Context, out io.Writer, title string, files []string, work func(sink driver.ProgressSink) error) error {
	events := make(chan driver.Event, 256)
	result := make(chan error, 1)
	go func() {
		err := work(driver.ChanSink(events))
		close(events)
		result <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events),
		tea.WithContext(ctx), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep draining so the worker never blocks on a full channel
		go func() {
			for range events {
			}
		}()
	}
	if err := <-result; err != nil {
		return err
	}
	return uiErr
}
