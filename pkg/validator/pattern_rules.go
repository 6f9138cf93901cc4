package validator

import (
	"regexp"
	"sync"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Pattern requires the whole value to match the expression, as the HTML
// pattern attribute does.
type Pattern struct {
	Source string
	expr   *regexp.Regexp
}

func (Pattern) Kind() Kind { return KindPattern }
func (Pattern) rule()      {}

func (r Pattern) check(field form.Field) outcome {
	if field.Value == "" || r.expr == nil || r.expr.MatchString(field.Value) {
		return pass()
	}
	return fail(builtin(MsgInvalidFormat))
}

var patternCache sync.Map

// compilePattern anchors src and caches the compiled expression.
func compilePattern(src string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(src); ok {
		return cached.(*regexp.Regexp), nil
	}
	expr, err := regexp.Compile(`^(?:` + src + `)$`)
	if err != nil {
		return nil, err
	}
	actual, _ := patternCache.LoadOrStore(src, expr)
	return actual.(*regexp.Regexp), nil
}
