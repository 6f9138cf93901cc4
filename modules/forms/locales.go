package forms

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/beast/handler"
	"github.com/dmitrymomot/beast/pkg/i18n"
)

// Locales serves message tables so browser code can show the same
// translated messages as the server.
type Locales struct {
	translator   *i18n.Translator
	errorHandler handler.ErrorHandler
}

func NewLocales(translator *i18n.Translator, errorHandler handler.ErrorHandler) *Locales {
	return &Locales{translator: translator, errorHandler: errorHandler}
}

func (l *Locales) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/", handler.Wrap(l.list, nil, l.errorHandler))
	r.Get("/{lang}", handler.Wrap(l.export, bindLang, l.errorHandler))
	return r
}

func bindLang(r *http.Request) (string, error) {
	return chi.URLParam(r, "lang"), nil
}

func (l *Locales) list(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSON(map[string]any{
		"default":   l.translator.DefaultLanguage(),
		"languages": l.translator.SupportedLanguages(),
	})
}

func (l *Locales) export(_ handler.Context, lang string) handler.Response {
	data, err := l.translator.ExportJSON(lang)
	if err != nil {
		if i18n.IsLanguageNotSupportedError(err) {
			return handler.JSONError(handler.ErrNotFound)
		}
		return handler.JSONError(err)
	}
	return handler.ResponseFunc(func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, err := w.Write(data)
		return err
	})
}
