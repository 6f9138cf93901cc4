package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/beast/pkg/form"
)

// outcome is the result of a single rule.
type outcome struct {
	ok  bool
	msg message
	// literal messages come from custom validators and are used verbatim.
	literal bool
	target  *form.Field
}

func pass() outcome {
	return outcome{ok: true}
}

func fail(msg message) outcome {
	return outcome{msg: msg}
}

// Required is present when the field carries the "required" attribute.
type Required struct{}

func (Required) Kind() Kind { return KindRequired }
func (Required) rule()      {}

func (Required) check(field form.Field, snap form.Snapshot) outcome {
	switch field.Type {
	case form.TypeCheckbox:
		if field.Checked {
			return pass()
		}
	case form.TypeRadio:
		group := radioGroup(field, snap)
		for _, member := range group {
			if member.Checked {
				return pass()
			}
		}
		out := fail(builtin(MsgRequired))
		last := group[len(group)-1]
		out.target = &last
		return out
	case form.TypeFile:
		if field.Files > 0 {
			return pass()
		}
	default:
		if strings.TrimSpace(field.Value) != "" {
			return pass()
		}
	}
	return fail(builtin(MsgRequired))
}

func radioGroup(field form.Field, snap form.Snapshot) []form.Field {
	if field.Name == "" {
		return []form.Field{field}
	}
	group := snap.Group(form.TypeRadio, field.Name)
	if len(group) == 0 {
		return []form.Field{field}
	}
	return group
}

// MinLength checks the rune length of non-empty values.
type MinLength struct {
	Min int
}

func (MinLength) Kind() Kind { return KindMinLength }
func (MinLength) rule()      {}

func (r MinLength) check(field form.Field) outcome {
	if field.Value == "" || utf8.RuneCountInString(field.Value) >= r.Min {
		return pass()
	}
	return fail(builtin(MsgMinLength, "n", strconv.Itoa(r.Min)))
}

// MaxLength checks the rune length of non-empty values.
type MaxLength struct {
	Max int
}

func (MaxLength) Kind() Kind { return KindMaxLength }
func (MaxLength) rule()      {}

func (r MaxLength) check(field form.Field) outcome {
	if field.Value == "" || utf8.RuneCountInString(field.Value) <= r.Max {
		return pass()
	}
	return fail(builtin(MsgMaxLength, "n", strconv.Itoa(r.Max)))
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email applies to fields of type email.
type Email struct{}

func (Email) Kind() Kind { return KindEmail }
func (Email) rule()      {}

func (Email) check(field form.Field) outcome {
	if field.Value == "" || emailRegex.MatchString(field.Value) {
		return pass()
	}
	return fail(builtin(MsgEmail))
}

// Match requires the value to equal the value of another named field.
type Match struct {
	Target string
}

func (Match) Kind() Kind { return KindMatch }
func (Match) rule()      {}

func (r Match) check(field form.Field, snap form.Snapshot) outcome {
	if field.Value == "" {
		return pass()
	}
	if other, ok := snap.Lookup(r.Target); ok && other.Value == field.Value {
		return pass()
	}
	return fail(builtin(MsgMatch))
}

// CheckboxMin requires at least Min checked boxes in the checkbox group.
type CheckboxMin struct {
	Min int
}

func (CheckboxMin) Kind() Kind { return KindCheckboxMin }
func (CheckboxMin) rule()      {}

func (r CheckboxMin) check(field form.Field, snap form.Snapshot) outcome {
	group := []form.Field{field}
	if field.Name != "" {
		if members := snap.Group(form.TypeCheckbox, field.Name); len(members) > 0 {
			group = members
		}
	}

	checked := 0
	for _, box := range group {
		if box.Checked {
			checked++
		}
	}
	if checked >= r.Min {
		return pass()
	}

	out := fail(builtin(MsgMinChecked, "n", strconv.Itoa(r.Min)))
	last := group[len(group)-1]
	out.target = &last
	return out
}
