package coordinator

import (
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// Result is the aggregate of one validation pass.
type Result struct {
	Valid bool
	// FirstInvalid is the failed field earliest in document order.
	FirstInvalid *form.Field
	// Failed holds the failed verdicts in document order.
	Failed []validator.Verdict
	// Verdicts holds every verdict of the pass in document order.
	Verdicts []validator.Verdict
	// Superseded is set when a newer pass cancelled this one. All other
	// fields are zero in that case.
	Superseded bool
}

// Errors converts the failed verdicts to validation errors.
func (r Result) Errors() validator.ValidationErrors {
	return validator.FromVerdicts(r.Failed...)
}

func aggregate(verdicts []validator.Verdict) Result {
	res := Result{Valid: true, Verdicts: verdicts}
	for _, v := range verdicts {
		if v.Valid {
			continue
		}
		res.Valid = false
		res.Failed = append(res.Failed, v)
		if res.FirstInvalid == nil {
			field := v.Field
			res.FirstInvalid = &field
		}
	}
	return res
}
