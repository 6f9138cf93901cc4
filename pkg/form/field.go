package form

import "strings"

// Type is the control type of a field, as in the HTML "type" attribute.
type Type string

const (
	TypeText     Type = "text"
	TypeEmail    Type = "email"
	TypePassword Type = "password"
	TypeNumber   Type = "number"
	TypeDate     Type = "date"
	TypeTel      Type = "tel"
	TypeURL      Type = "url"
	TypeCheckbox Type = "checkbox"
	TypeRadio    Type = "radio"
	TypeFile     Type = "file"
	TypeHidden   Type = "hidden"
	TypeSelect   Type = "select"
	TypeTextarea Type = "textarea"
)

// Attribute names understood by the validation rules.
const (
	AttrRequired         = "required"
	AttrPattern          = "pattern"
	AttrMinLength        = "minlength"
	AttrMaxLength        = "maxlength"
	AttrMin              = "data-min"
	AttrMax              = "data-max"
	AttrMinAge           = "data-min-age"
	AttrMaxAge           = "data-max-age"
	AttrMatch            = "data-match"
	AttrPasswordStrength = "data-password-strength"
	AttrValidator        = "data-validator"
	AttrErrorMessage     = "data-error-message"
	AttrErrorContainer   = "data-error-container"
	AttrSleep            = "data-sleep"
	AttrLabel            = "data-label"
	AttrAriaLabel        = "aria-label"
	AttrPlaceholder      = "placeholder"
)

// Attrs holds the declarative attributes of a field. Presence matters for
// boolean attributes such as "required", so an empty value still counts.
type Attrs map[string]string

// Has reports whether the attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the trimmed attribute value, or "" when absent.
func (a Attrs) Get(name string) string {
	return strings.TrimSpace(a[name])
}

// Clone returns a copy safe to hand to other goroutines.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Field is a single control of a form.
type Field struct {
	// Index is the position of the field in document order.
	Index int
	// ID is the reference id used to tie rendered nodes to the field.
	// Fields sharing a name share an ID.
	ID       string
	Name     string
	Type     Type
	Value    string
	Checked  bool
	Files    int
	Disabled bool
	// Step is the wizard step the field belongs to, 0 when outside any step.
	Step  int
	Attrs Attrs
}

// IsGroup reports whether the field is part of a checkbox or radio group.
func (f Field) IsGroup() bool {
	return f.Type == TypeCheckbox || f.Type == TypeRadio
}

// Label returns the human readable name used in error summaries.
func (f Field) Label() string {
	for _, attr := range []string{AttrAriaLabel, AttrPlaceholder, AttrLabel} {
		if v := f.Attrs.Get(attr); v != "" {
			return v
		}
	}
	if f.Name != "" {
		return f.Name
	}
	return "[unnamed]"
}

func (f Field) clone() Field {
	f.Attrs = f.Attrs.Clone()
	return f
}
