package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/beast/pkg/form"
)

var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Age bounds the age in whole years of a birth date value. Values that do
// not parse as a date are not checked.
type Age struct {
	Min, Max       int
	HasMin, HasMax bool
}

func (Age) Kind() Kind { return KindAge }
func (Age) rule()      {}

func (r Age) check(field form.Field, now time.Time) outcome {
	birth, ok := parseDate(field.Value)
	if !ok {
		return pass()
	}
	age := ageAt(birth, now)
	if r.HasMin && age < r.Min {
		return fail(builtin(MsgMinAge, "n", strconv.Itoa(r.Min)))
	}
	if r.HasMax && age > r.Max {
		return fail(builtin(MsgMaxAge, "n", strconv.Itoa(r.Max)))
	}
	return pass()
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ageAt returns the completed years between birth and now, counting a year
// only once its month and day have been reached.
func ageAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
