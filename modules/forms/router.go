package forms

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the services mounted by Router. Nil services are
// skipped.
type RouterOptions struct {
	Forms   Mountable
	Locales Mountable
	// Middleware wraps every mounted route, typically the i18n middleware.
	Middleware []func(http.Handler) http.Handler
}

// Router builds the validation API:
//
//	r.Mount("/", forms.Router(forms.RouterOptions{
//		Forms:      forms.NewService(catalog, reg, translator),
//		Locales:    forms.NewLocales(translator),
//		Middleware: []func(http.Handler) http.Handler{translator.Middleware(nil)},
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(opts.Middleware...)
	if opts.Forms != nil {
		r.Mount("/forms", opts.Forms.Handle())
	}
	if opts.Locales != nil {
		r.Mount("/locales", opts.Locales.Handle())
	}
	return r
}
