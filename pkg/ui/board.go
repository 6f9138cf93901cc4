package ui

import (
	"html"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// NodeKind tells rendered nodes apart.
type NodeKind uint8

const (
	// NodeError is an inline message inserted after the target field.
	NodeError NodeKind = iota + 1
	// NodeContainer is a page element named by data-error-container. It is
	// emptied, not removed, when errors are cleared.
	NodeContainer
	NodeTooltip
)

// Node is one rendered element tied to a field by its reference id.
type Node struct {
	Kind        NodeKind
	ReferenceID string
	// After is the index of the field the node follows.
	After int
	// ID is set for container nodes only.
	ID       string
	Class    string
	Position Position
	Text     string
}

// Summary is the rendered error summary.
type Summary struct {
	Target  string
	Heading string
	Items   []SummaryItem
}

// SummaryItem links one failed field.
type SummaryItem struct {
	ReferenceID string
	Label       string
	Message     string
}

// Text is the visible link text, "label: message".
func (i SummaryItem) Text() string {
	return i.Label + ": " + i.Message
}

// Board records rendered validation output. It is safe for concurrent use.
type Board struct {
	mu sync.RWMutex

	theme          Theme
	tooltips       Position
	errorClass     string
	tooltipClass   string
	helperText     bool
	shake          bool
	summaryTarget  string
	summaryHeading string

	nodes      []Node
	containers map[string]*Node
	states     map[int]fieldState
	shaking    map[int]bool
	focused    *form.Field
	summary    *Summary

	policy *bluemonday.Policy
}

// NewBoard creates a board with the beast theme, inline messages, the shake
// animation and no tooltips.
func NewBoard(opts ...Option) *Board {
	b := &Board{
		theme:          ThemeBeast,
		tooltips:       TooltipNone,
		errorClass:     DefaultErrorClass,
		tooltipClass:   DefaultTooltipClass,
		helperText:     true,
		shake:          true,
		summaryHeading: DefaultSummaryHeading,
		containers:     make(map[string]*Node),
		states:         make(map[int]fieldState),
		shaking:        make(map[int]bool),
		policy:         bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetTheme switches the theme. Recorded field states are kept and reported
// with the new theme's classes.
func (b *Board) SetTheme(t Theme) {
	b.mu.Lock()
	b.theme = t
	b.mu.Unlock()
}

func (b *Board) Theme() Theme {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.theme
}

// ErrorClass is the class of inline error messages.
func (b *Board) ErrorClass() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.errorClass
}

// SetSummaryHeading replaces the summary heading, for example after a
// language switch.
func (b *Board) SetSummaryHeading(heading string) {
	b.mu.Lock()
	b.summaryHeading = heading
	b.mu.Unlock()
}

// ClearAll removes every error node and tooltip, empties containers and
// drops all theme classes. The summary is left alone.
func (b *Board) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nodes = b.nodes[:0]
	for _, c := range b.containers {
		c.Text = ""
		c.ReferenceID = ""
	}
	clear(b.states)
}

// ClearField removes the nodes of field and its theme class.
func (b *Board) ClearField(field form.Field) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked(field.ID)
	delete(b.states, field.Index)
}

func (b *Board) clearLocked(ref string) {
	b.nodes = slices.DeleteFunc(b.nodes, func(n Node) bool { return n.ReferenceID == ref })
	for _, c := range b.containers {
		if c.ReferenceID == ref {
			c.Text = ""
			c.ReferenceID = ""
		}
	}
}

// RenderError shows message for field. The tooltip and the inline message
// follow target; a data-error-container attribute redirects the inline
// message into that container instead.
func (b *Board) RenderError(field, target form.Field, message string) {
	text := b.plain(message)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tooltips != "" && b.tooltips != TooltipNone {
		b.nodes = append(b.nodes, Node{
			Kind:        NodeTooltip,
			ReferenceID: field.ID,
			After:       target.Index,
			Class:       b.tooltipClass,
			Position:    b.tooltips,
			Text:        text,
		})
	}

	if b.helperText {
		if id := field.Attrs.Get(form.AttrErrorContainer); id != "" {
			c, ok := b.containers[id]
			if !ok {
				c = &Node{Kind: NodeContainer, ID: id}
				b.containers[id] = c
			}
			c.Text = text
			c.ReferenceID = field.ID
			c.After = target.Index
		} else {
			b.nodes = slices.DeleteFunc(b.nodes, func(n Node) bool {
				return n.ReferenceID == field.ID && n.Kind == NodeError
			})
			b.nodes = append(b.nodes, Node{
				Kind:        NodeError,
				ReferenceID: field.ID,
				After:       target.Index,
				Class:       b.errorClass,
				Text:        text,
			})
		}
	}

	if b.shake {
		b.shaking[field.Index] = true
	}
	b.states[field.Index] = stateInvalid
}

func (b *Board) MarkValid(field form.Field) {
	b.mu.Lock()
	b.states[field.Index] = stateValid
	b.mu.Unlock()
}

func (b *Board) Focus(field form.Field) {
	b.mu.Lock()
	b.focused = &field
	b.mu.Unlock()
}

// RenderSummary lists the failed fields with the message currently shown
// for each. Nothing is rendered without a summary target.
func (b *Board) RenderSummary(failed []validator.Verdict) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.summaryTarget == "" {
		return
	}

	s := &Summary{Target: b.summaryTarget, Heading: b.summaryHeading}
	for _, v := range failed {
		msg, ok := b.messageLocked(v.Field.ID)
		if !ok {
			msg = "Invalid field"
		}
		s.Items = append(s.Items, SummaryItem{
			ReferenceID: v.Field.ID,
			Label:       v.Field.Label(),
			Message:     msg,
		})
	}
	b.summary = s
}

func (b *Board) ClearSummary() {
	b.mu.Lock()
	b.summary = nil
	b.mu.Unlock()
}

// AnimationEnd ends the shake animation of the field at index.
func (b *Board) AnimationEnd(index int) {
	b.mu.Lock()
	delete(b.shaking, index)
	b.mu.Unlock()
}

// Nodes returns the inline messages and tooltips in render order, followed
// by non-empty containers sorted by id.
func (b *Board) Nodes() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := slices.Clone(b.nodes)
	ids := make([]string, 0, len(b.containers))
	for id, c := range b.containers {
		if c.ReferenceID != "" {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, *b.containers[id])
	}
	return out
}

// Message returns the text shown for the field with the given reference id.
func (b *Board) Message(ref string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.messageLocked(ref)
}

func (b *Board) messageLocked(ref string) (string, bool) {
	for _, n := range b.nodes {
		if n.ReferenceID == ref && n.Kind == NodeError {
			return n.Text, true
		}
	}
	for _, c := range b.containers {
		if c.ReferenceID == ref && c.Text != "" {
			return c.Text, true
		}
	}
	for _, n := range b.nodes {
		if n.ReferenceID == ref {
			return n.Text, true
		}
	}
	return "", false
}

// Container returns the container with the given id.
func (b *Board) Container(id string) (Node, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.containers[id]
	if !ok {
		return Node{}, false
	}
	return *c, true
}

// Class returns the classes of the field at index: the theme class and,
// while animating, the shake class.
func (b *Board) Class(index int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	valid, invalid := b.theme.Classes()
	var classes []string
	switch b.states[index] {
	case stateValid:
		classes = append(classes, valid)
	case stateInvalid:
		classes = append(classes, invalid)
	}
	if b.shaking[index] {
		classes = append(classes, ShakeClass)
	}
	return strings.TrimSpace(strings.Join(classes, " "))
}

func (b *Board) Focused() (form.Field, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.focused == nil {
		return form.Field{}, false
	}
	return *b.focused, true
}

func (b *Board) Summary() (Summary, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.summary == nil {
		return Summary{}, false
	}
	s := *b.summary
	s.Items = slices.Clone(s.Items)
	return s, true
}

// plain strips markup from message and returns the text a user would see.
func (b *Board) plain(message string) string {
	return strings.TrimSpace(html.UnescapeString(b.policy.Sanitize(message)))
}
