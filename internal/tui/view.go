package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/postcraft/internal/chips"
	"github.com/csheth/postcraft/internal/controller"
)

func (m *model) View() string {
	if m.dialog != nil {
		return m.dialogView()
	}
	return joinNonEmpty([]string{
		m.heroView(),
		m.formView(),
		m.buttonsView(),
		m.outputView(),
		m.footerView(),
	})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderLogo(),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) formView() string {
	rows := []string{
		m.fieldLabel(fieldTopic, "Topic"),
		m.topic.View(),
	}
	if m.ctrl.RequiresCredential() {
		hint := "Ctrl+R to show"
		if m.revealKey {
			hint = "Ctrl+R to hide"
		}
		rows = append(rows,
			m.fieldLabel(fieldCredential, "API Key")+" "+helperStyle.Render(hint),
			m.credential.View(),
		)
	}
	for _, group := range m.chips.Groups() {
		rows = append(rows, m.chipRow(group))
	}
	return strings.Join(rows, "\n")
}

func (m *model) fieldLabel(f field, title string) string {
	marker := "  "
	if m.focus == f {
		marker = focusMarkerStyle.Render("▸ ")
	}
	return marker + sectionHeaderStyle.Render(title)
}

func (m *model) chipRow(group *chips.Group) string {
	f := fieldForGroup(group.Name())
	cells := []string{m.fieldLabel(f, padRight(group.Title(), 9))}
	active := group.ActiveIndex()
	for i, opt := range group.Options() {
		style := chipStyle
		if i == active {
			style = activeChipStyle
		}
		cells = append(cells, style.Render(opt.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

func fieldForGroup(name string) field {
	switch name {
	case chips.GroupPlatform:
		return fieldPlatform
	case chips.GroupTone:
		return fieldTone
	default:
		return fieldStyle
	}
}

func (m *model) buttonsView() string {
	buttons := []string{}
	for _, id := range []controlID{controlGenerate, controlCopy, controlSave} {
		state := m.bridge.control(id)
		label := state.label
		if id == controlGenerate && label == controller.GeneratingLabel {
			label = m.spinner.View() + " " + label
		}
		style := buttonStyle
		if !state.enabled {
			style = disabledButtonStyle
		}
		buttons = append(buttons, style.Render(label), " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m *model) outputView() string {
	title := m.fieldLabel(fieldOutput, "Post")
	if !m.editable {
		title += " " + helperStyle.Render("(read-only)")
	}
	return joinNonEmpty([]string{title, outputBoxStyle.Render(m.output.View())})
}

func (m *model) footerView() string {
	parts := []string{m.statusLine()}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts, m.keyLegendView())
	return strings.Join(parts, "\n")
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Ctrl+S", "Generate"},
		{"Ctrl+Y", "Copy"},
		{"Ctrl+O", "Save"},
		{"Tab", "Next field"},
		{"←/→", "Pick chip"},
		{"Ctrl+C", "Quit"},
	}
	var cells []string
	for _, hint := range hints {
		cells = append(cells, keyStyle.Render(hint.Key), keyDescStyle.Render(" "+hint.Description+"  "))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) dialogView() string {
	d := m.dialog
	width := m.layout.outputWidth - 10
	if width < 30 {
		width = 30
	}
	titleStyle := sectionHeaderStyle
	box := alertBoxStyle
	if d.kind == dialogError {
		titleStyle = errorStyle.Copy().Bold(true)
		box = errorBoxStyle
	}
	body := joinNonEmpty([]string{
		titleStyle.Render(d.title),
		wordwrap.String(d.message, width),
		helperStyle.Render("Press Enter to dismiss"),
	})
	rendered := box.Render(body)
	if m.layout.windowWidth == 0 || m.layout.windowHeight == 0 {
		return joinNonEmpty([]string{m.heroView(), rendered})
	}
	return lipgloss.Place(m.layout.windowWidth, m.layout.windowHeight, lipgloss.Center, lipgloss.Center, rendered)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func padRight(value string, width int) string {
	if n := len([]rune(value)); n < width {
		return value + strings.Repeat(" ", width-n)
	}
	return value
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	// shadow sits one cell down and right of the face
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
