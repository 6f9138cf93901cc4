package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Kind identifies a rule variant. Kinds are declared in evaluation order.
type Kind int

const (
	KindNone Kind = iota
	KindRequired
	KindCheckboxMin
	KindMatch
	KindMinLength
	KindRange
	KindAge
	KindPattern
	KindMaxLength
	KindEmail
	KindPasswordStrength
	KindCustom
)

var kindNames = [...]string{
	KindNone:             "none",
	KindRequired:         "required",
	KindCheckboxMin:      "checkbox_min",
	KindMatch:            "match",
	KindMinLength:        "minlength",
	KindRange:            "range",
	KindAge:              "age",
	KindPattern:          "pattern",
	KindMaxLength:        "maxlength",
	KindEmail:            "email",
	KindPasswordStrength: "password_strength",
	KindCustom:           "custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every rule kind in evaluation order.
func Kinds() []Kind {
	return []Kind{
		KindRequired, KindCheckboxMin, KindMatch, KindMinLength, KindRange, KindAge,
		KindPattern, KindMaxLength, KindEmail, KindPasswordStrength, KindCustom,
	}
}

// Rule is one compiled check. The set of implementations is closed: every
// variant is declared in this package and handled by Engine.
type Rule interface {
	Kind() Kind
	rule()
}

// Verdict is the result of evaluating all rules of one field.
type Verdict struct {
	Valid   bool
	Message string
	// Rule is the failing rule, KindNone for valid fields.
	Rule  Kind
	Field form.Field
	// Target is the field the error is rendered after. It is the last
	// member of the group for checkbox minimum and radio required failures.
	Target form.Field
}

// Err converts a failed verdict to a ValidationError, nil when valid.
func (v Verdict) Err() *ValidationError {
	if v.Valid {
		return nil
	}
	return &ValidationError{
		Field:   v.Field.Name,
		Label:   v.Field.Label(),
		Message: v.Message,
		Rule:    v.Rule.String(),
	}
}

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects the failures of a validation pass in document order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages reported for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the failing field names without duplicates.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// FromVerdicts collects the failed verdicts into ValidationErrors.
func FromVerdicts(verdicts ...Verdict) ValidationErrors {
	var errs ValidationErrors
	for _, v := range verdicts {
		if err := v.Err(); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

// ExtractValidationErrors returns the ValidationErrors wrapped in err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	var ve ValidationErrors
	return err != nil && errors.As(err, &ve)
}
