package tui

import (
	"context"
	"errors"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/postcraft/internal/chips"
)

// errClosed is returned by blocking dialogs once the program is shutting down.
var errClosed = errors.New("tui: program closed")

type controlID int

const (
	controlGenerate controlID = iota
	controlCopy
	controlSave
)

type controlState struct {
	enabled bool
	label   string
}

// bridge implements the controller surfaces on top of the Bubble Tea loop.
// The controller runs on command goroutines; it reads mirrored form state
// under the mutex and every mutation is delivered to the model as a message
// on events.
type bridge struct {
	events chan tea.Msg
	done   <-chan struct{}

	mu         sync.Mutex
	topic      string
	credential string
	selection  chips.Selection
	output     string
	controls   map[controlID]*controlState
}

func newBridge(done <-chan struct{}) *bridge {
	return &bridge{
		events: make(chan tea.Msg, 64),
		done:   done,
		controls: map[controlID]*controlState{
			controlGenerate: {enabled: true, label: generateLabel},
			controlCopy:     {enabled: false, label: copyLabel},
			controlSave:     {enabled: false, label: saveLabel},
		},
	}
}

// listen waits for the next surface mutation. The model re-arms it after
// each delivered message so exactly one listener is outstanding.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return msg
		case <-b.done:
			return nil
		}
	}
}

func (b *bridge) post(msg tea.Msg) {
	select {
	case b.events <- msg:
	case <-b.done:
	}
}

// syncInputs mirrors the form so Submit reads a consistent snapshot.
func (b *bridge) syncInputs(topic, credential string, selection chips.Selection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topic = topic
	b.credential = credential
	b.selection = selection
}

// syncOutput records user edits made in the output area.
func (b *bridge) syncOutput(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.output = text
}

func (b *bridge) control(id controlID) controlState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.controls[id]
}

// Inputs

func (b *bridge) Topic() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.topic
}

func (b *bridge) Credential() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.credential
}

func (b *bridge) Selection() chips.Selection {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(chips.Selection, len(b.selection))
	for k, v := range b.selection {
		out[k] = v
	}
	return out
}

func (b *bridge) FocusTopic()      { b.post(focusMsg{field: fieldTopic}) }
func (b *bridge) FocusCredential() { b.post(focusMsg{field: fieldCredential}) }

// Output

func (b *bridge) Clear() { b.setOutput("") }

func (b *bridge) SetLines(lines []string) { b.setOutput(strings.Join(lines, "\n")) }

func (b *bridge) setOutput(text string) {
	b.mu.Lock()
	b.output = text
	b.mu.Unlock()
	b.post(outputTextMsg{text: text})
}

func (b *bridge) SetEditable(editable bool) { b.post(outputEditableMsg{editable: editable}) }

func (b *bridge) Focus() { b.post(focusMsg{field: fieldOutput}) }

func (b *bridge) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output
}

// Notifier

func (b *bridge) Alert(ctx context.Context, message, title string) error {
	return b.dialog(ctx, dialogAlert, title, message)
}

func (b *bridge) Error(ctx context.Context, message, title string) error {
	return b.dialog(ctx, dialogError, title, message)
}

func (b *bridge) dialog(ctx context.Context, kind dialogKind, title, message string) error {
	ack := make(chan struct{})
	select {
	case b.events <- dialogMsg{kind: kind, title: title, message: message, ack: ack}:
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return errClosed
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return errClosed
	}
}

func (b *bridge) Notice(message string) { b.post(noticeMsg{text: message}) }

// buttonHandle adapts one trigger control to controller.Control.
type buttonHandle struct {
	b  *bridge
	id controlID
}

func (h buttonHandle) SetEnabled(enabled bool) {
	h.b.mu.Lock()
	changed := h.b.controls[h.id].enabled != enabled
	h.b.controls[h.id].enabled = enabled
	h.b.mu.Unlock()
	if changed {
		h.b.post(controlsChangedMsg{})
	}
}

func (h buttonHandle) Label() string {
	h.b.mu.Lock()
	defer h.b.mu.Unlock()
	return h.b.controls[h.id].label
}

func (h buttonHandle) SetLabel(label string) {
	h.b.mu.Lock()
	changed := h.b.controls[h.id].label != label
	h.b.controls[h.id].label = label
	h.b.mu.Unlock()
	if changed {
		h.b.post(controlsChangedMsg{})
	}
}
