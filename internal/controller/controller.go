// Package controller owns the post generation lifecycle: it validates the form,
// dispatches a single request, renders the result or the error, and restores
// the idle state whatever happens in between.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/csheth/postcraft/internal/generator"
)

// Labels written onto controls while an operation runs.
const (
	GeneratingLabel = "Generating..."
	CopiedLabel     = "Copied!"
	SavedLabel      = "Saved!"
)

const (
	missingTopicTitle      = "Missing Topic"
	missingTopicMessage    = "Please enter a topic or idea for your post"
	missingCredentialTitle = "API Key Required"
	missingCredentialMsg   = "Please enter your API key"
	errorTitle             = "Error"
)

// DefaultConfirmDelay is how long Copied!/Saved! labels stay up.
const DefaultConfirmDelay = 2 * time.Second

// State mirrors the three UI flags.
type State struct {
	IsGenerating bool
	IsCopying    bool
	IsSaving     bool
}

// Deps wires the controller to its collaborators.
type Deps struct {
	Inputs   Inputs
	Output   Output
	Notifier Notifier
	Generate Control
	Copy     Control
	Save     Control
	Client   generator.Client

	Clipboard Clipboard
	// Archive is optional; without it Save only flashes the confirmation label.
	Archive Archive
	Logger  *zerolog.Logger
	// AfterFunc schedules label reverts; defaults to time.AfterFunc.
	AfterFunc    func(d time.Duration, f func())
	ConfirmDelay time.Duration
}

// Controller is the PostRequestController.
type Controller struct {
	deps     Deps
	log      zerolog.Logger
	delay    time.Duration
	inFlight atomic.Bool

	mu    sync.Mutex
	state State
	last  *generator.Request
}

// New validates deps and returns a ready controller.
func New(deps Deps) (*Controller, error) {
	switch {
	case deps.Inputs == nil:
		return nil, errors.New("controller: inputs surface is required")
	case deps.Output == nil:
		return nil, errors.New("controller: output surface is required")
	case deps.Notifier == nil:
		return nil, errors.New("controller: notifier is required")
	case deps.Generate == nil:
		return nil, errors.New("controller: generate control is required")
	case deps.Client == nil:
		return nil, errors.New("controller: generation client is required")
	}
	c := &Controller{deps: deps, log: zerolog.Nop(), delay: deps.ConfirmDelay}
	if deps.Logger != nil {
		c.log = deps.Logger.With().Str("component", "controller").Logger()
	}
	if c.delay <= 0 {
		c.delay = DefaultConfirmDelay
	}
	if c.deps.AfterFunc == nil {
		c.deps.AfterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return c, nil
}

// State returns a snapshot of the UI flags.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a submission holds the in-flight guard.
func (c *Controller) Busy() bool {
	return c.inFlight.Load()
}

// ProviderName names the generation client in use.
func (c *Controller) ProviderName() string {
	return c.deps.Client.Name()
}

// RequiresCredential reports whether the client needs a caller-supplied key.
func (c *Controller) RequiresCredential() bool {
	return c.deps.Client.RequiresCredential()
}

// Submit runs one generation end to end. A call made while another is in
// flight returns ErrBusy without touching any surface.
func (c *Controller) Submit(ctx context.Context) (err error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer c.inFlight.Store(false)

	topic := strings.TrimSpace(c.deps.Inputs.Topic())
	selection := c.deps.Inputs.Selection()
	credential := strings.TrimSpace(c.deps.Inputs.Credential())

	if topic == "" {
		return c.reject(ctx, &ValidationError{Title: missingTopicTitle, Message: missingTopicMessage}, c.deps.Inputs.FocusTopic)
	}
	if c.deps.Client.RequiresCredential() && credential == "" {
		return c.reject(ctx, &ValidationError{Title: missingCredentialTitle, Message: missingCredentialMsg}, c.deps.Inputs.FocusCredential)
	}

	req := generator.Request{
		Platform:   selection.Platform(),
		Topic:      topic,
		Tone:       selection.Tone(),
		Style:      selection.Style(),
		Credential: credential,
	}

	original := c.deps.Generate.Label()
	c.setGenerating(true)
	c.deps.Generate.SetEnabled(false)
	c.deps.Generate.SetLabel(GeneratingLabel)
	c.deps.Output.Clear()
	c.deps.Output.SetEditable(false)
	c.refreshControls()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
			c.log.Error().Err(err).Msg("generate recovered")
			c.notifyFailure(ctx, err)
		}
		c.setGenerating(false)
		c.deps.Generate.SetEnabled(true)
		c.deps.Generate.SetLabel(original)
		c.refreshControls()
	}()

	started := time.Now()
	result, err := c.deps.Client.Generate(ctx, req)
	event := c.log.Info()
	status := "succeeded"
	if err != nil {
		event = c.log.Warn().Err(err)
		status = "failed"
	}
	event.Str("job", "generate").
		Str("status", status).
		Str("provider", c.deps.Client.Name()).
		Object("request", req).
		Dur("duration", time.Since(started)).
		Msg("generation finished")

	if err != nil {
		c.notifyFailure(ctx, err)
		return err
	}

	c.deps.Output.SetLines(SplitLines(result.Text))
	c.deps.Output.SetEditable(true)
	c.deps.Output.Focus()
	c.remember(req)
	c.refreshControls()
	return nil
}

func (c *Controller) reject(ctx context.Context, verr *ValidationError, focus func()) error {
	if err := c.deps.Notifier.Alert(ctx, verr.Message, verr.Title); err != nil {
		c.log.Debug().Err(err).Msg("alert dismissed without acknowledgment")
	}
	if focus != nil {
		focus()
	}
	return verr
}

func (c *Controller) notifyFailure(ctx context.Context, err error) {
	message := "Error: " + generator.Message(err)
	if nerr := c.deps.Notifier.Error(ctx, message, errorTitle); nerr != nil {
		c.log.Debug().Err(nerr).Msg("error dialog dismissed without acknowledgment")
	}
}

func (c *Controller) remember(req generator.Request) {
	req.Credential = ""
	c.mu.Lock()
	c.last = &req
	c.mu.Unlock()
}

func (c *Controller) setGenerating(v bool) {
	c.mu.Lock()
	c.state.IsGenerating = v
	c.mu.Unlock()
}

// refreshControls enables Copy and Save iff the output holds text and nothing
// is generating.
func (c *Controller) refreshControls() {
	hasText := strings.TrimSpace(c.deps.Output.Text()) != ""
	generating := c.State().IsGenerating
	enabled := hasText && !generating
	if c.deps.Copy != nil {
		c.deps.Copy.SetEnabled(enabled)
	}
	if c.deps.Save != nil {
		c.deps.Save.SetEnabled(enabled)
	}
}

// SplitLines converts \r\n, \r and \n line breaks into separate lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
