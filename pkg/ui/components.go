package ui

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// SlotPrefix prefixes the element id of a field's error slot.
const SlotPrefix = "beast-error-"

// SlotID is the id of the element holding the error of the field with the
// given reference id.
func SlotID(ref string) string {
	return SlotPrefix + ref
}

// ErrorNode renders an inline message, tooltip or container.
func ErrorNode(n Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<div")
		if n.ID != "" {
			attr(&sb, "id", n.ID)
		}
		if n.Class != "" {
			attr(&sb, "class", n.Class)
		}
		attr(&sb, "data-reference-id", n.ReferenceID)
		if n.Kind == NodeTooltip {
			attr(&sb, "data-position", string(n.Position))
			attr(&sb, "role", "tooltip")
		} else {
			attr(&sb, "role", "alert")
		}
		sb.WriteString(">")
		sb.WriteString(templ.EscapeString(n.Text))
		sb.WriteString("</div>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// Slot renders the error slot of a field. An empty message renders an
// empty slot, which clears the error when patched into a page.
func Slot(ref, class, message string) templ.Component {
	return ErrorNode(Node{
		Kind:        NodeContainer,
		ID:          SlotID(ref),
		ReferenceID: ref,
		Class:       class,
		Text:        message,
	})
}

// SummaryBox renders the error summary with one anchor per failed field.
func SummaryBox(s Summary) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString("<div")
		if s.Target != "" {
			attr(&sb, "id", s.Target)
		}
		sb.WriteString(`><div class="beast-summary-box">`)
		if s.Heading != "" {
			sb.WriteString("<strong>")
			sb.WriteString(templ.EscapeString(SummaryIcon + " " + s.Heading))
			sb.WriteString("</strong>")
		}
		sb.WriteString(`<ul class="beast-summary-list">`)
		for _, item := range s.Items {
			sb.WriteString("<li><a")
			attr(&sb, "href", "#"+item.ReferenceID)
			sb.WriteString(">")
			sb.WriteString(templ.EscapeString(item.Text()))
			sb.WriteString("</a></li>")
		}
		sb.WriteString("</ul></div></div>")
		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// EmptySummary renders the summary target without content.
func EmptySummary(target string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="`+templ.EscapeString(target)+`"></div>`)
		return err
	})
}

// Errors renders every node of the board followed by the summary.
func (b *Board) Errors() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, n := range b.Nodes() {
			if err := ErrorNode(n).Render(ctx, w); err != nil {
				return err
			}
		}
		if s, ok := b.Summary(); ok {
			return SummaryBox(s).Render(ctx, w)
		}
		return nil
	})
}

// Render renders a component to a string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func attr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(templ.EscapeString(value))
	sb.WriteString(`"`)
}
