package validator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Custom delegates to a named validator from the registry.
type Custom struct {
	Name string
}

func (Custom) Kind() Kind { return KindCustom }
func (Custom) rule()      {}

// Compile builds the ordered rule list of a field from its attributes.
// Attributes with unusable values (a non-numeric minlength, an invalid
// pattern) are skipped and reported in the returned error; the rules that
// could be built are always returned.
func Compile(field form.Field) ([]Rule, error) {
	var (
		rules []Rule
		errs  []error
		attrs = field.Attrs
	)
	invalid := func(name string, err error) {
		errs = append(errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalidAttribute, name, attrs[name], err))
	}

	if attrs.Has(form.AttrRequired) {
		rules = append(rules, Required{})
	}

	if field.Type == form.TypeCheckbox && attrs.Get(form.AttrMin) != "" {
		if n, err := strconv.Atoi(attrs.Get(form.AttrMin)); err == nil {
			rules = append(rules, CheckboxMin{Min: n})
		} else {
			invalid(form.AttrMin, err)
		}
	}

	if target := attrs.Get(form.AttrMatch); target != "" {
		rules = append(rules, Match{Target: target})
	}

	if attrs.Has(form.AttrMinLength) {
		if n, err := strconv.Atoi(attrs.Get(form.AttrMinLength)); err == nil && n >= 0 {
			rules = append(rules, MinLength{Min: n})
		} else {
			invalid(form.AttrMinLength, errNotCount(err))
		}
	}

	if field.Type != form.TypeCheckbox {
		var r Range
		if v := attrs.Get(form.AttrMin); v != "" {
			r.Min, r.HasMin = parseNumber(v)
			if !r.HasMin {
				invalid(form.AttrMin, strconv.ErrSyntax)
			}
		}
		if v := attrs.Get(form.AttrMax); v != "" {
			r.Max, r.HasMax = parseNumber(v)
			if !r.HasMax {
				invalid(form.AttrMax, strconv.ErrSyntax)
			}
		}
		if r.HasMin || r.HasMax {
			rules = append(rules, r)
		}
	}

	var age Age
	if v := attrs.Get(form.AttrMinAge); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			age.Min, age.HasMin = n, true
		} else {
			invalid(form.AttrMinAge, err)
		}
	}
	if v := attrs.Get(form.AttrMaxAge); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			age.Max, age.HasMax = n, true
		} else {
			invalid(form.AttrMaxAge, err)
		}
	}
	if age.HasMin || age.HasMax {
		rules = append(rules, age)
	}

	if attrs.Has(form.AttrPattern) {
		src := attrs[form.AttrPattern]
		if expr, err := compilePattern(src); err == nil {
			rules = append(rules, Pattern{Source: src, expr: expr})
		} else {
			invalid(form.AttrPattern, err)
		}
	}

	if attrs.Has(form.AttrMaxLength) {
		if n, err := strconv.Atoi(attrs.Get(form.AttrMaxLength)); err == nil && n >= 0 {
			rules = append(rules, MaxLength{Max: n})
		} else {
			invalid(form.AttrMaxLength, errNotCount(err))
		}
	}

	if field.Type == form.TypeEmail {
		rules = append(rules, Email{})
	}

	if tier := attrs.Get(form.AttrPasswordStrength); tier != "" {
		rules = append(rules, PasswordStrength{Tier: tier})
	}

	if name := attrs.Get(form.AttrValidator); name != "" {
		rules = append(rules, Custom{Name: name})
	}

	return rules, errors.Join(errs...)
}

func errNotCount(err error) error {
	if err != nil {
		return err
	}
	return errors.New("negative length")
}

// NewPattern compiles a Pattern rule.
func NewPattern(src string) (Pattern, error) {
	expr, err := compilePattern(src)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: pattern=%q: %v", ErrInvalidAttribute, src, err)
	}
	return Pattern{Source: src, expr: expr}, nil
}
