package i18n

import (
	"context"
	"net/http"
	"strings"
)

type localeContextKey struct{}

// WithLocale stores the negotiated language in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// LocaleFromContext returns the language stored by WithLocale or fallback.
func LocaleFromContext(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(localeContextKey{}).(string); ok && lang != "" {
		return lang
	}
	return fallback
}

// LangExtractor picks the request language, or "" when undecided.
type LangExtractor func(r *http.Request) string

// QueryLangExtractor reads the language from a query parameter, then from
// the Accept-Language header, restricted to the supported languages.
func QueryLangExtractor(param string, supported []string) LangExtractor {
	return func(r *http.Request) string {
		if lang := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(param))); lang != "" {
			for _, s := range supported {
				if strings.EqualFold(s, lang) {
					return s
				}
			}
		}
		return ParseAcceptLanguage(r.Header.Get("Accept-Language"), supported, "")
	}
}

// Middleware stores the language chosen by extract (or the translator's
// default language) in the request context.
func (t *Translator) Middleware(extract LangExtractor) func(http.Handler) http.Handler {
	if extract == nil {
		extract = QueryLangExtractor("lang", t.SupportedLanguages())
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extract(r)
			if lang == "" {
				lang = t.defaultLang
			}
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
