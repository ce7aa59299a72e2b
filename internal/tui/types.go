package tui

import "time"

type field int

const (
	fieldTopic field = iota
	fieldCredential
	fieldPlatform
	fieldTone
	fieldStyle
	fieldOutput
)

type dialogKind int

const (
	dialogAlert dialogKind = iota
	dialogError
)

type dialog struct {
	kind    dialogKind
	title   string
	message string
	ack     chan struct{}
}

const heroTagline = "Turn a topic into a ready-to-post draft."

const (
	generateLabel = "Generate Post"
	copyLabel     = "Copy"
	saveLabel     = "Save"
)

const (
	topicPlaceholder      = "What should the post be about?"
	credentialPlaceholder = "sk-..."
	outputPlaceholder     = "Your generated post will appear here."
	topicCharLimit        = 500
	noticeTTL             = 6 * time.Second
)

const (
	minOutputWidth          = 40
	outputHorizontalPadding = 4
)

// Surface mutations delivered by the bridge.
type (
	outputTextMsg struct {
		text string
	}
	outputEditableMsg struct {
		editable bool
	}
	focusMsg struct {
		field field
	}
	controlsChangedMsg struct{}
	dialogMsg          dialog
	noticeMsg          struct {
		text string
	}
	noticeExpiredMsg struct {
		seq int
	}
)
