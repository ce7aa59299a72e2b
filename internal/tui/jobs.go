package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/postcraft/internal/controller"
)

type jobKind string

type jobStatus string

const (
	jobKindGenerate jobKind = "generate"
	jobKindCopy     jobKind = "copy"
	jobKindSave     jobKind = "save"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
	jobStatusSkipped   jobStatus = "skipped"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs controller operations off the update loop and reports their
// lifecycle back as messages.
type jobBus struct {
	counter int64
	ctx     context.Context
	log     zerolog.Logger
}

func newJobBus(ctx context.Context, log zerolog.Logger) *jobBus {
	return &jobBus{ctx: ctx, log: log}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		return b.run(id, kind, started, runner)
	}

	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) run(id string, kind jobKind, started time.Time, runner jobRunner) jobResultEnvelope {
	payload, err := runner(b.ctx)
	snapshot := jobSnapshot{
		ID:          id,
		Kind:        kind,
		StartedAt:   started,
		CompletedAt: time.Now(),
	}
	switch {
	case errors.Is(err, controller.ErrBusy):
		snapshot.Status = jobStatusSkipped
	case err != nil:
		snapshot.Status = jobStatusFailed
		snapshot.Err = err.Error()
	default:
		snapshot.Status = jobStatusSucceeded
	}
	snapshot.Duration = snapshot.CompletedAt.Sub(started)
	b.log.Debug().
		Str("job", string(kind)).
		Str("id", id).
		Str("status", string(snapshot.Status)).
		Dur("duration", snapshot.Duration).
		Err(err).
		Msg("[jobs]")
	return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
}
