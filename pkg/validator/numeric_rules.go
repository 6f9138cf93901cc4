package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Range bounds the numeric value of the field. Values that do not parse as
// a finite number are not checked.
type Range struct {
	Min, Max       float64
	HasMin, HasMax bool
}

func (Range) Kind() Kind { return KindRange }
func (Range) rule()      {}

func (r Range) check(field form.Field) outcome {
	value, ok := parseNumber(field.Value)
	if !ok {
		return pass()
	}
	if r.HasMin && value < r.Min {
		return fail(builtin(MsgMinValue, "n", formatNumber(r.Min)))
	}
	if r.HasMax && value > r.Max {
		return fail(builtin(MsgMaxValue, "n", formatNumber(r.Max)))
	}
	return pass()
}

// decimalNumber is the plain decimal syntax of HTML number inputs. It keeps
// strconv extensions such as hex floats, underscores and "Inf" out.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalNumber.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
