package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/postcraft/internal/controller"
)

type generateResultMsg struct {
	err error
}

type copyResultMsg struct {
	err error
}

type saveResultMsg struct {
	err error
}

// operations is the slice of the controller the jobs drive.
type operations interface {
	Submit(ctx context.Context) error
	CopyResult() error
	SaveResult() error
}

func generateJob(ops operations) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		err := ops.Submit(ctx)
		return generateResultMsg{err: err}, err
	}
}

func copyJob(ops operations) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := ops.CopyResult()
		return copyResultMsg{err: err}, err
	}
}

func saveJob(ops operations) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := ops.SaveResult()
		return saveResultMsg{err: err}, err
	}
}

var _ operations = (*controller.Controller)(nil)
