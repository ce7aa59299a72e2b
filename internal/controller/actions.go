package controller

import (
	"strings"

	"github.com/csheth/postcraft/internal/archive"
)

// CopyResult writes the output text to the clipboard and flashes the Copy
// label. Blank output or a copy already in progress makes it a no-op.
func (c *Controller) CopyResult() error {
	if c.deps.Clipboard == nil {
		return nil
	}
	text := c.deps.Output.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	c.mu.Lock()
	if c.state.IsCopying {
		c.mu.Unlock()
		return nil
	}
	c.state.IsCopying = true
	c.mu.Unlock()

	if err := c.deps.Clipboard.WriteText(text); err != nil {
		c.setCopying(false)
		c.log.Error().Err(err).Str("job", "copy").Msg("clipboard write failed")
		c.deps.Notifier.Notice("Copy failed: " + err.Error())
		return &ClipboardError{Err: err}
	}
	c.log.Debug().Str("job", "copy").Int("chars", len(text)).Msg("post copied")
	c.flash(c.deps.Copy, CopiedLabel, func() { c.setCopying(false) })
	return nil
}

// SaveResult archives the output (when an archive is configured) and flashes
// the Save label. Blank output or a save already in progress makes it a no-op.
func (c *Controller) SaveResult() error {
	text := c.deps.Output.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	c.mu.Lock()
	if c.state.IsSaving {
		c.mu.Unlock()
		return nil
	}
	c.state.IsSaving = true
	var last *archive.Entry
	if c.last != nil {
		entry := archive.NewEntry(c.last.Platform, c.last.Tone, c.last.Style, c.last.Topic, text, c.deps.Client.Name())
		last = &entry
	}
	c.mu.Unlock()

	if c.deps.Archive != nil {
		if last == nil {
			sel := c.deps.Inputs.Selection()
			entry := archive.NewEntry(sel.Platform(), sel.Tone(), sel.Style(), c.deps.Inputs.Topic(), text, c.deps.Client.Name())
			last = &entry
		}
		if err := c.deps.Archive.Save(*last); err != nil {
			c.setSaving(false)
			c.log.Error().Err(err).Str("job", "save").Msg("archive write failed")
			c.deps.Notifier.Notice("Save failed: " + err.Error())
			return err
		}
		c.log.Info().Str("job", "save").Str("id", last.ID).Str("platform", last.Platform).Msg("post archived")
	}
	c.flash(c.deps.Save, SavedLabel, func() { c.setSaving(false) })
	return nil
}

// flash swaps the control label and restores it after the confirm delay.
func (c *Controller) flash(ctrl Control, label string, done func()) {
	if ctrl == nil {
		c.deps.AfterFunc(c.delay, done)
		return
	}
	original := ctrl.Label()
	ctrl.SetLabel(label)
	c.deps.AfterFunc(c.delay, func() {
		ctrl.SetLabel(original)
		done()
	})
}

func (c *Controller) setCopying(v bool) {
	c.mu.Lock()
	c.state.IsCopying = v
	c.mu.Unlock()
}

func (c *Controller) setSaving(v bool) {
	c.mu.Lock()
	c.state.IsSaving = v
	c.mu.Unlock()
}
