package controller

import (
	"context"

	"github.com/csheth/postcraft/internal/archive"
	"github.com/csheth/postcraft/internal/chips"
)

// Inputs is the form the controller reads at submit time.
type Inputs interface {
	Topic() string
	Credential() string
	Selection() chips.Selection
	FocusTopic()
	FocusCredential()
}

// Output is the region that receives the generated post.
type Output interface {
	Clear()
	SetLines(lines []string)
	SetEditable(editable bool)
	Focus()
	// Text returns the current plain text, including user edits.
	Text() string
}

// Control is a button-like trigger with an enabled flag and a label.
type Control interface {
	SetEnabled(enabled bool)
	Label() string
	SetLabel(label string)
}

// Notifier presents dialogs. Alert and Error block until the user acknowledges
// them or ctx is done; Notice must not block.
type Notifier interface {
	Alert(ctx context.Context, message, title string) error
	Error(ctx context.Context, message, title string) error
	Notice(message string)
}

// Clipboard receives copied posts.
type Clipboard interface {
	WriteText(text string) error
}

// Archive persists saved posts.
type Archive interface {
	Save(entry archive.Entry) error
}
