package chips

import (
	"fmt"
	"strings"
)

// Group names used by the generator form.
const (
	GroupPlatform = "platform"
	GroupTone     = "tone"
	GroupStyle    = "style"
)

// Option is a single selectable chip.
type Option struct {
	Value string
	Label string
}

// Group holds a mutually exclusive set of chips with exactly one active value.
type Group struct {
	name    string
	title   string
	options []Option
	active  int
}

// NewGroup builds a group and activates defaultValue. An unknown default is an error.
func NewGroup(name, title string, options []Option, defaultValue string) (*Group, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("chip group %q has no options", name)
	}
	g := &Group{name: name, title: title, options: append([]Option(nil), options...)}
	idx := g.indexOf(defaultValue)
	if idx < 0 {
		return nil, fmt.Errorf("chip group %q: unknown default %q", name, defaultValue)
	}
	g.active = idx
	return g, nil
}

func (g *Group) Name() string  { return g.name }
func (g *Group) Title() string { return g.title }

// Options returns a copy of the group's chips in display order.
func (g *Group) Options() []Option {
	return append([]Option(nil), g.options...)
}

// Active returns the currently active value.
func (g *Group) Active() string {
	return g.options[g.active].Value
}

// ActiveIndex returns the position of the active chip.
func (g *Group) ActiveIndex() int {
	return g.active
}

// Select activates value. Selecting the already active chip is a no-op and
// reports changed=false.
func (g *Group) Select(value string) (bool, error) {
	idx := g.indexOf(value)
	if idx < 0 {
		return false, fmt.Errorf("chip group %q: unknown value %q", g.name, value)
	}
	if idx == g.active {
		return false, nil
	}
	g.active = idx
	return true, nil
}

// Cycle moves the active chip by delta positions, wrapping around the ends.
func (g *Group) Cycle(delta int) bool {
	if len(g.options) < 2 || delta == 0 {
		return false
	}
	n := len(g.options)
	next := ((g.active+delta)%n + n) % n
	changed, _ := g.Select(g.options[next].Value)
	return changed
}

func (g *Group) indexOf(value string) int {
	value = strings.TrimSpace(value)
	for i, opt := range g.options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}

// Selection maps group names to active values.
type Selection map[string]string

func (s Selection) Platform() string { return s[GroupPlatform] }
func (s Selection) Tone() string     { return s[GroupTone] }
func (s Selection) Style() string    { return s[GroupStyle] }

// Set is an ordered collection of chip groups.
type Set struct {
	groups []*Group
}

// NewSet builds a set from groups. Group names must be unique.
func NewSet(groups ...*Group) (*Set, error) {
	seen := map[string]struct{}{}
	for _, g := range groups {
		if _, dup := seen[g.name]; dup {
			return nil, fmt.Errorf("duplicate chip group %q", g.name)
		}
		seen[g.name] = struct{}{}
	}
	return &Set{groups: append([]*Group(nil), groups...)}, nil
}

// Groups returns the groups in display order.
func (s *Set) Groups() []*Group {
	return append([]*Group(nil), s.groups...)
}

// Group looks up a group by name.
func (s *Set) Group(name string) (*Group, bool) {
	for _, g := range s.groups {
		if g.name == name {
			return g, true
		}
	}
	return nil, false
}

// Selection snapshots the active value of every group.
func (s *Set) Selection() Selection {
	sel := make(Selection, len(s.groups))
	for _, g := range s.groups {
		sel[g.name] = g.Active()
	}
	return sel
}

// Apply selects the given values; empty values keep the current selection.
func (s *Set) Apply(values Selection) error {
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		g, ok := s.Group(name)
		if !ok {
			return fmt.Errorf("unknown chip group %q", name)
		}
		if _, err := g.Select(value); err != nil {
			return err
		}
	}
	return nil
}
