package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// PatchOption configures where an element patch lands.
type PatchOption = datastar.PatchElementOption

func WithTarget(selector string) PatchOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) PatchOption {
	return datastar.WithMode(mode)
}

// TemplPatch is one component with its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []PatchOption
}

func Patch(c templ.Component, opts ...PatchOption) TemplPatch {
	return TemplPatch{Component: c, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
}

// Render sends one SSE element patch per component to Datastar clients and
// the concatenated HTML to everyone else.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a single component.
func Templ(c templ.Component, opts ...PatchOption) Response {
	return templResponse{patches: []TemplPatch{Patch(c, opts...)}}
}

// TemplMulti renders several components, each with its own target.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{patches: patches}
}

// WithStatus sets the status of the plain HTML variant. SSE streams always
// answer 200.
func WithStatus(res Response, status int) Response {
	if t, ok := res.(templResponse); ok {
		t.status = status
		return t
	}
	return res
}
