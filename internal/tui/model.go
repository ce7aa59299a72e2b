package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/csheth/postcraft/internal/chips"
	"github.com/csheth/postcraft/internal/controller"
	"github.com/csheth/postcraft/internal/generator"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client    generator.Client
	Clipboard controller.Clipboard
	// Archive is optional; without it Save only confirms.
	Archive controller.Archive
	Logger  *zerolog.Logger
	// Selection overrides the chip defaults.
	Selection chips.Selection
	// Credential pre-fills the API key field.
	Credential   string
	ConfirmDelay time.Duration
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) (tea.Model, error) {
	if config.Client == nil {
		return nil, errors.New("tui: generation client is required")
	}
	set, err := chips.NewDefaultSet(config.Selection)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	topic := textinput.New()
	topic.Placeholder = topicPlaceholder
	topic.CharLimit = topicCharLimit
	topic.Width = 70
	topic.Prompt = "› "
	topic.Focus()

	credential := textinput.New()
	credential.Placeholder = credentialPlaceholder
	credential.EchoMode = textinput.EchoPassword
	credential.EchoCharacter = '•'
	credential.Width = 70
	credential.Prompt = "› "
	credential.SetValue(config.Credential)

	output := textarea.New()
	output.Placeholder = outputPlaceholder
	output.ShowLineNumbers = false
	output.CharLimit = 10000
	output.SetWidth(76)
	output.SetHeight(8)
	output.Blur()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())
	br := newBridge(ctx.Done())
	ctrl, err := controller.New(controller.Deps{
		Inputs:       br,
		Output:       br,
		Notifier:     br,
		Generate:     buttonHandle{b: br, id: controlGenerate},
		Copy:         buttonHandle{b: br, id: controlCopy},
		Save:         buttonHandle{b: br, id: controlSave},
		Client:       config.Client,
		Clipboard:    config.Clipboard,
		Archive:      config.Archive,
		Logger:       &logger,
		ConfirmDelay: config.ConfirmDelay,
	})
	if err != nil {
		cancel()
		return nil, err
	}

	m := &model{
		config:     config,
		ctx:        ctx,
		cancel:     cancel,
		bridge:     br,
		ctrl:       ctrl,
		ops:        ctrl,
		jobs:       newJobBus(ctx, logger.With().Str("component", "tui").Logger()),
		topic:      topic,
		credential: credential,
		output:     output,
		spinner:    spin,
		chips:      set,
		layout:     newPageLayout(),
		focus:      fieldTopic,
		running:    map[string]jobKind{},
	}
	m.syncInputs()
	return m, nil
}

type model struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc
	bridge *bridge
	ctrl   *controller.Controller
	ops    operations
	jobs   *jobBus

	topic      textinput.Model
	credential textinput.Model
	output     textarea.Model
	spinner    spinner.Model
	chips      *chips.Set
	layout     pageLayout

	focus     field
	editable  bool
	dialog    *dialog
	notice    string
	noticeSeq int
	running   map[string]jobKind
	revealKey bool
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.bridge.listen())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncInputs()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.topic.Width = m.layout.fieldWidth
		m.credential.Width = m.layout.fieldWidth
		m.output.SetWidth(m.layout.outputWidth)
		m.output.SetHeight(m.layout.outputHeight)
		return nil
	case spinner.TickMsg:
		if m.isRunning(jobKindGenerate) {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	case jobSignalMsg:
		// One tick chain drives the spinner however many generate jobs overlap.
		ticking := m.isRunning(jobKindGenerate)
		m.running[msg.Snapshot.ID] = msg.Snapshot.Kind
		if msg.Snapshot.Kind == jobKindGenerate && !ticking {
			return m.spinner.Tick
		}
		return nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		return nil
	case outputTextMsg:
		m.output.SetValue(msg.text)
		return m.bridge.listen()
	case outputEditableMsg:
		m.editable = msg.editable
		return m.bridge.listen()
	case focusMsg:
		m.setFocus(msg.field)
		return m.bridge.listen()
	case controlsChangedMsg:
		return m.bridge.listen()
	case dialogMsg:
		d := dialog(msg)
		m.dialog = &d
		return m.bridge.listen()
	case noticeMsg:
		m.noticeSeq++
		m.notice = msg.text
		seq := m.noticeSeq
		return tea.Batch(m.bridge.listen(), tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return noticeExpiredMsg{seq: seq}
		}))
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *model) handleKey(key tea.KeyMsg) tea.Cmd {
	if key.Type == tea.KeyCtrlC {
		m.cancel()
		return tea.Quit
	}
	if m.dialog != nil {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			m.dismissDialog()
		}
		return nil
	}

	switch key.Type {
	case tea.KeyCtrlS:
		return m.generateCmd()
	case tea.KeyCtrlY:
		return m.copyCmd()
	case tea.KeyCtrlO:
		return m.saveCmd()
	case tea.KeyCtrlR:
		m.toggleReveal()
		return nil
	case tea.KeyTab:
		m.moveFocus(1)
		return nil
	case tea.KeyShiftTab:
		m.moveFocus(-1)
		return nil
	}

	switch m.focus {
	case fieldTopic:
		if key.Type == tea.KeyEnter {
			return m.generateCmd()
		}
		var cmd tea.Cmd
		m.topic, cmd = m.topic.Update(key)
		return cmd
	case fieldCredential:
		if key.Type == tea.KeyEnter {
			return m.generateCmd()
		}
		var cmd tea.Cmd
		m.credential, cmd = m.credential.Update(key)
		return cmd
	case fieldPlatform, fieldTone, fieldStyle:
		group := m.focusedGroup()
		if group == nil {
			return nil
		}
		switch key.String() {
		case "left", "h":
			group.Cycle(-1)
		case "right", "l":
			group.Cycle(1)
		case "enter":
			return m.generateCmd()
		}
		return nil
	case fieldOutput:
		if !m.editable {
			return nil
		}
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(key)
		m.bridge.syncOutput(m.output.Value())
		return cmd
	}
	return nil
}

func (m *model) generateCmd() tea.Cmd {
	if !m.bridge.control(controlGenerate).enabled {
		return nil
	}
	m.syncInputs()
	m.notice = ""
	return m.jobs.Start(jobKindGenerate, generateJob(m.ops))
}

func (m *model) copyCmd() tea.Cmd {
	if !m.bridge.control(controlCopy).enabled {
		return nil
	}
	return m.jobs.Start(jobKindCopy, copyJob(m.ops))
}

func (m *model) saveCmd() tea.Cmd {
	if !m.bridge.control(controlSave).enabled {
		return nil
	}
	return m.jobs.Start(jobKindSave, saveJob(m.ops))
}

func (m *model) dismissDialog() {
	if m.dialog == nil {
		return
	}
	close(m.dialog.ack)
	m.dialog = nil
}

func (m *model) toggleReveal() {
	m.revealKey = !m.revealKey
	if m.revealKey {
		m.credential.EchoMode = textinput.EchoNormal
	} else {
		m.credential.EchoMode = textinput.EchoPassword
	}
}

// fields lists the focus order; the credential field only exists when the
// client needs one.
func (m *model) fields() []field {
	out := []field{fieldTopic}
	if m.ctrl.RequiresCredential() {
		out = append(out, fieldCredential)
	}
	return append(out, fieldPlatform, fieldTone, fieldStyle, fieldOutput)
}

func (m *model) moveFocus(delta int) {
	order := m.fields()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	m.setFocus(order[idx])
}

func (m *model) setFocus(f field) {
	if f == fieldCredential && !m.ctrl.RequiresCredential() {
		f = fieldTopic
	}
	m.focus = f
	m.topic.Blur()
	m.credential.Blur()
	m.output.Blur()
	switch f {
	case fieldTopic:
		m.topic.Focus()
	case fieldCredential:
		m.credential.Focus()
	case fieldOutput:
		m.output.Focus()
	}
}

func (m *model) focusedGroup() *chips.Group {
	var name string
	switch m.focus {
	case fieldPlatform:
		name = chips.GroupPlatform
	case fieldTone:
		name = chips.GroupTone
	case fieldStyle:
		name = chips.GroupStyle
	default:
		return nil
	}
	group, _ := m.chips.Group(name)
	return group
}

func (m *model) syncInputs() {
	m.bridge.syncInputs(m.topic.Value(), m.credential.Value(), m.chips.Selection())
}

func (m *model) statusLine() string {
	stats := []string{
		fmt.Sprintf("Provider %s", m.ctrl.ProviderName()),
	}
	sel := m.chips.Selection()
	stats = append(stats,
		fmt.Sprintf("Platform %s", sel.Platform()),
		fmt.Sprintf("Tone %s", sel.Tone()),
		fmt.Sprintf("Style %s", sel.Style()),
	)
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) isRunning(kind jobKind) bool {
	for _, k := range m.running {
		if k == kind {
			return true
		}
	}
	return false
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindGenerate, jobKindCopy, jobKindSave} {
		if m.isRunning(kind) {
			badges = append(badges, fmt.Sprintf("%s…", kind))
		}
	}
	return badges
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	focusMarkerStyle   = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	noticeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166"))
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	chipStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	activeChipStyle     = chipStyle.Copy().Bold(true).Foreground(heroTextColor).Background(heroEmberColor).BorderForeground(heroAccentColor)
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(heroAccentColor).Padding(0, 2)
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 2)
	outputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	alertBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(heroAccentColor).Padding(1, 3)
	errorBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 3)
	logoFaceStyle       = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle  = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines        = []string{
		"╔═╗╔═╗╔═╗╔╦╗╔═╗╦═╗╔═╗╔═╗╔╦╗",
		"╠═╝║ ║╚═╗ ║ ║  ╠╦╝╠═╣╠╣  ║ ",
		"╩  ╚═╝╚═╝ ╩ ╚═╝╩╚═╩ ╩╚   ╩ ",
	}
)
