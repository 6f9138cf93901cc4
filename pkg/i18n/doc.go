// Package i18n holds the message tables used for validation errors.
//
// Tables are loaded through a TranslationAdapter (in-memory maps, or YAML and
// JSON files from any fs.FS) into a Translator. Keys are dot separated and
// templates use named placeholders:
//
//	en:
//	  validation:
//	    minlength: "Minimum length is %{n} characters"
//
//	t.T("en", "validation.minlength", "n", "8")
//
// Lookup reports whether a translation exists so callers can apply their own
// fallback chain. SetMessages and AddMessage change tables at runtime.
//
// Middleware negotiates the request language (query parameter, then
// Accept-Language) and stores it in the request context.
package i18n
