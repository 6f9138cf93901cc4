package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// ResponseFunc adapts a function to Response.
type ResponseFunc func(w http.ResponseWriter, r *http.Request) error

func (f ResponseFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// Context is the request context handed to typed handlers.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
}

// NewContext wraps the request and response writer.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }

// HandlerFunc handles a request whose payload has been bound to R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Bind decodes the request payload.
type Bind[R any] func(r *http.Request) (R, error)

// ErrorHandler reports binding and rendering failures.
type ErrorHandler func(ctx Context, err error)

// Wrap converts a typed handler to http.HandlerFunc. Binding errors,
// nil responses and render errors go to onError.
func Wrap[R any](h HandlerFunc[R], bind Bind[R], onError ErrorHandler) http.HandlerFunc {
	if onError == nil {
		onError = defaultErrorHandler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if bind != nil {
			var err error
			if req, err = bind(r); err != nil {
				onError(ctx, err)
				return
			}
		}

		res := h(ctx, req)
		if res == nil {
			onError(ctx, ErrNilResponse)
			return
		}
		if err := res.Render(w, r); err != nil {
			onError(ctx, err)
		}
	}
}

func defaultErrorHandler(ctx Context, err error) {
	info := Classify(err)
	http.Error(ctx.ResponseWriter(), info.Message, info.Status)
}

// Datastar request detection.
const (
	DataStarAcceptHeader = "text/event-stream"
	DataStarQueryParam   = "datastar"
)

// IsDataStar reports whether r comes from a Datastar action and expects
// server-sent events.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get("Datastar-Request") == "true" {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return r.Header.Get("Accept") == DataStarAcceptHeader
}

// Patch modes for element patches.
const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
)
