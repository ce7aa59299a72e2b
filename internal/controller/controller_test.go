package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/csheth/postcraft/internal/generator"
)

func TestSubmitRejectsBlankTopic(t *testing.T) {
	for _, topic := range []string{"", "   ", "\n\t "} {
		h := newHarness(t, false)
		h.inputs.topic = topic

		err := h.ctrl.Submit(context.Background())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("topic %q: expected ValidationError, got %v", topic, err)
		}
		if h.client.callCount() != 0 {
			t.Fatalf("topic %q: no request should be issued", topic)
		}
		dialogs := h.notifier.all()
		if len(dialogs) != 1 || dialogs[0].kind != "alert" || dialogs[0].title != "Missing Topic" {
			t.Fatalf("topic %q: unexpected dialogs %#v", topic, dialogs)
		}
		if !h.inputs.topicFocused {
			t.Fatalf("topic %q: topic field should be focused", topic)
		}
		if enabled, label := h.generate.snapshot(); !enabled || label != "Generate Post" {
			t.Fatalf("trigger should be untouched, got enabled=%v label=%q", enabled, label)
		}
	}
}

func TestSubmitRequiresCredentialWhenClientDoes(t *testing.T) {
	h := newHarness(t, false)
	h.client.credential = true
	h.inputs.credential = "  "

	err := h.ctrl.Submit(context.Background())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Title != "API Key Required" {
		t.Fatalf("expected API Key Required validation error, got %v", err)
	}
	if h.client.callCount() != 0 {
		t.Fatal("no request should be issued without a credential")
	}
	if !h.inputs.credentialFocus {
		t.Fatal("credential field should be focused")
	}
}

func TestSubmitPassesCredentialThrough(t *testing.T) {
	h := newHarness(t, false)
	h.client.credential = true
	h.inputs.credential = " sk-abc "

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := h.client.calls[0].Credential; got != "sk-abc" {
		t.Fatalf("credential = %q", got)
	}
}

func TestSubmitSuccessRendersLines(t *testing.T) {
	h := newHarness(t, false)
	h.client.generate = func(ctx context.Context, req generator.Request) (generator.Result, error) {
		return generator.Result{Text: "line1\nline2"}, nil
	}

	if err := h.ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	req := h.client.calls[0]
	if req.Platform != "twitter" || req.Tone != "friendly" || req.Style != "informative" || req.Topic != "Go 1.24 is out" {
		t.Fatalf("unexpected request: %#v", req)
	}
	if len(h.output.lines) != 2 || h.output.lines[0] != "line1" || h.output.lines[1] != "line2" {
		t.Fatalf("unexpected output lines: %#v", h.output.lines)
	}
	if !h.output.editable || !h.output.focused {
		t.Fatal("output should be editable and focused after success")
	}
	if enabled, _ := h.copy.snapshot(); !enabled {
		t.Fatal("copy should be enabled once output has text")
	}
	if enabled, _ := h.save.snapshot(); !enabled {
		t.Fatal("save should be enabled once output has text")
	}
	if len(h.notifier.all()) != 0 {
		t.Fatalf("no dialogs expected on success, got %#v", h.notifier.all())
	}
}

func TestSubmitErrorShowsServerMessage(t *testing.T) {
	h := newHarness(t, false)
	h.output.lines = []string{"previous post"}
	h.client.generate = func(ctx context.Context, req generator.Request) (generator.Result, error) {
		return generator.Result{}, &generator.Error{Kind: generator.KindTransport, Status: 500, Message: "rate limited"}
	}

	if err := h.ctrl.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	dialogs := h.notifier.all()
	if len(dialogs) != 1 || dialogs[0].kind != "error" || dialogs[0].message != "Error: rate limited" {
		t.Fatalf("unexpected dialogs: %#v", dialogs)
	}
	if h.output.Text() != "" || h.output.editable {
		t.Fatalf("output should stay cleared and read-only, got %q editable=%v", h.output.Text(), h.output.editable)
	}
	if enabled, _ := h.copy.snapshot(); enabled {
		t.Fatal("copy should be disabled with empty output")
	}
}

func TestSubmitErrorWithoutMessageFallsBack(t *testing.T) {
	h := newHarness(t, false)
	h.client.generate = func(ctx context.Context, req generator.Request) (generator.Result, error) {
		return generator.Result{}, &generator.Error{Kind: generator.KindTransport, Status: 500}
	}

	_ = h.ctrl.Submit(context.Background())
	dialogs := h.notifier.all()
	if len(dialogs) != 1 || dialogs[0].message != "Error: Failed to generate post" {
		t.Fatalf("unexpected dialogs: %#v", dialogs)
	}
}

func TestSubmitEpilogueRestoresTrigger(t *testing.T) {
	cases := map[string]func(ctx context.Context, req generator.Request) (generator.Result, error){
		"success": func(ctx context.Context, req generator.Request) (generator.Result, error) {
			return generator.Result{Text: "ok"}, nil
		},
		"failure": func(ctx context.Context, req generator.Request) (generator.Result, error) {
			return generator.Result{}, errors.New("network down")
		},
		"panic": func(ctx context.Context, req generator.Request) (generator.Result, error) {
			panic("boom")
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, false)
			h.client.generate = fn
			_ = h.ctrl.Submit(context.Background())

			if h.ctrl.State().IsGenerating {
				t.Fatal("IsGenerating should be false after submit")
			}
			if h.ctrl.Busy() {
				t.Fatal("in-flight guard should be released")
			}
			enabled, label := h.generate.snapshot()
			if !enabled || label != "Generate Post" {
				t.Fatalf("trigger not restored: enabled=%v label=%q", enabled, label)
			}
			restores := 0
			for _, l := range h.generate.history {
				if l == "Generate Post" {
					restores++
				}
			}
			if restores != 1 {
				t.Fatalf("label should be restored exactly once, history=%v", h.generate.history)
			}
		})
	}
}

func TestSubmitPanicSurfacesError(t *testing.T) {
	h := newHarness(t, false)
	h.client.generate = func(ctx context.Context, req generator.Request) (generator.Result, error) {
		panic("boom")
	}
	if err := h.ctrl.Submit(context.Background()); err == nil {
		t.Fatal("panic should be reported as an error")
	}
	dialogs := h.notifier.all()
	if len(dialogs) != 1 || dialogs[0].message != "Error: Failed to generate post" {
		t.Fatalf("unexpected dialogs: %#v", dialogs)
	}
}

func TestSubmitGuardsConcurrentCalls(t *testing.T) {
	h := newHarness(t, false)
	entered := make(chan struct{})
	release := make(chan struct{})
	h.client.generate = func(ctx context.Context, req generator.Request) (generator.Result, error) {
		close(entered)
		<-release
		return generator.Result{Text: "done"}, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		firstErr = h.ctrl.Submit(context.Background())
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the client")
	}

	if !h.ctrl.State().IsGenerating {
		t.Fatal("IsGenerating should be true while in flight")
	}
	if enabled, label := h.generate.snapshot(); enabled || label != GeneratingLabel {
		t.Fatalf("trigger should be disabled with loading label, got enabled=%v label=%q", enabled, label)
	}
	if err := h.ctrl.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("second submit = %v, want ErrBusy", err)
	}

	close(release)
	wg.Wait()
	if firstErr != nil {
		t.Fatalf("first submit error = %v", firstErr)
	}
	if got := h.client.callCount(); got != 1 {
		t.Fatalf("expected exactly one request, got %d", got)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\nd")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitLines() = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SplitLines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
