package controller

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/csheth/postcraft/internal/archive"
	"github.com/csheth/postcraft/internal/chips"
	"github.com/csheth/postcraft/internal/generator"
)

type fakeInputs struct {
	topic           string
	credential      string
	selection       chips.Selection
	topicFocused    bool
	credentialFocus bool
}

func (f *fakeInputs) Topic() string              { return f.topic }
func (f *fakeInputs) Credential() string         { return f.credential }
func (f *fakeInputs) Selection() chips.Selection { return f.selection }
func (f *fakeInputs) FocusTopic()                { f.topicFocused = true }
func (f *fakeInputs) FocusCredential()           { f.credentialFocus = true }

type fakeOutput struct {
	mu       sync.Mutex
	lines    []string
	editable bool
	focused  bool
	clears   int
}

func (f *fakeOutput) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = nil
	f.clears++
}

func (f *fakeOutput) SetLines(lines []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lines = append([]string(nil), lines...)
}

func (f *fakeOutput) SetEditable(editable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editable = editable
}

func (f *fakeOutput) Focus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = true
}

func (f *fakeOutput) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.lines, "\n")
}

type fakeControl struct {
	mu      sync.Mutex
	enabled bool
	label   string
	history []string
}

func newFakeControl(label string) *fakeControl {
	return &fakeControl{enabled: true, label: label}
}

func (f *fakeControl) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

func (f *fakeControl) Label() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.label
}

func (f *fakeControl) SetLabel(label string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = label
	f.history = append(f.history, label)
}

func (f *fakeControl) snapshot() (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled, f.label
}

type dialog struct {
	kind    string
	title   string
	message string
}

type fakeNotifier struct {
	mu      sync.Mutex
	dialogs []dialog
	notices []string
}

func (f *fakeNotifier) Alert(ctx context.Context, message, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialogs = append(f.dialogs, dialog{kind: "alert", title: title, message: message})
	return nil
}

func (f *fakeNotifier) Error(ctx context.Context, message, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialogs = append(f.dialogs, dialog{kind: "error", title: title, message: message})
	return nil
}

func (f *fakeNotifier) Notice(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, message)
}

func (f *fakeNotifier) all() []dialog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dialog(nil), f.dialogs...)
}

type fakeClient struct {
	mu         sync.Mutex
	calls      []generator.Request
	credential bool
	generate   func(ctx context.Context, req generator.Request) (generator.Result, error)
}

func (f *fakeClient) Generate(ctx context.Context, req generator.Request) (generator.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.generate
	f.mu.Unlock()
	if fn == nil {
		return generator.Result{Text: "generated"}, nil
	}
	return fn(ctx, req)
}

func (f *fakeClient) RequiresCredential() bool { return f.credential }
func (f *fakeClient) Name() string             { return "fake" }

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

type fakeArchive struct {
	entries []archive.Entry
	err     error
}

func (f *fakeArchive) Save(entry archive.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

// manualTimers captures scheduled callbacks so tests decide when they fire.
type manualTimers struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (m *manualTimers) AfterFunc(d time.Duration, f func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, f)
	m.delays = append(m.delays, d)
}

func (m *manualTimers) fireAll() {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

type harness struct {
	ctrl      *Controller
	inputs    *fakeInputs
	output    *fakeOutput
	notifier  *fakeNotifier
	generate  *fakeControl
	copy      *fakeControl
	save      *fakeControl
	client    *fakeClient
	clipboard *fakeClipboard
	archive   *fakeArchive
	timers    *manualTimers
}

func newHarness(t testing.TB, withArchive bool) *harness {
	t.Helper()
	h := &harness{
		inputs: &fakeInputs{
			topic:     "Go 1.24 is out",
			selection: chips.Selection{chips.GroupPlatform: "twitter", chips.GroupTone: "friendly", chips.GroupStyle: "informative"},
		},
		output:    &fakeOutput{},
		notifier:  &fakeNotifier{},
		generate:  newFakeControl("Generate Post"),
		copy:      newFakeControl("Copy"),
		save:      newFakeControl("Save"),
		client:    &fakeClient{},
		clipboard: &fakeClipboard{},
		timers:    &manualTimers{},
	}
	deps := Deps{
		Inputs:    h.inputs,
		Output:    h.output,
		Notifier:  h.notifier,
		Generate:  h.generate,
		Copy:      h.copy,
		Save:      h.save,
		Client:    h.client,
		Clipboard: h.clipboard,
		AfterFunc: h.timers.AfterFunc,
	}
	if withArchive {
		h.archive = &fakeArchive{}
		deps.Archive = h.archive
	}
	ctrl, err := New(deps)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.ctrl = ctrl
	return h
}
