package coordinator

import (
	"context"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// Renderer is the surface validation results are drawn on. Calls are
// serialized by the coordinator; implementations need no locking of their
// own against it.
type Renderer interface {
	// ClearAll removes every rendered error, tooltip and theme class.
	ClearAll()
	// ClearField removes the nodes rendered for field on a previous run.
	ClearField(field form.Field)
	// RenderError draws message after target and marks field invalid.
	RenderError(field, target form.Field, message string)
	MarkValid(field form.Field)
	Focus(field form.Field)
	RenderSummary(failed []validator.Verdict)
	ClearSummary()
}

// Submitter sends the form data once a full pass succeeds. Failures are the
// submitter's own business; they never reach the caller of the pass.
type Submitter interface {
	Submit(ctx context.Context, data map[string]any)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, data map[string]any)

func (fn SubmitterFunc) Submit(ctx context.Context, data map[string]any) {
	fn(ctx, data)
}

// NopRenderer discards everything. It suits server side validation where
// only the Result matters.
type NopRenderer struct{}

func (NopRenderer) ClearAll()                             {}
func (NopRenderer) ClearField(form.Field)                 {}
func (NopRenderer) RenderError(_, _ form.Field, _ string) {}
func (NopRenderer) MarkValid(form.Field)                  {}
func (NopRenderer) Focus(form.Field)                      {}
func (NopRenderer) RenderSummary([]validator.Verdict)     {}
func (NopRenderer) ClearSummary()                         {}
