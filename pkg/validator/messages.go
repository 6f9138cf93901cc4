package validator

import (
	"embed"
	"strings"
)

// Locales holds the built-in message tables (en, da, de, pirate) in the
// YAML layout understood by the i18n package.
//
//go:embed locales/*.yaml
var Locales embed.FS

// LocalesDir is the directory of the tables inside Locales.
const LocalesDir = "locales"

// Message keys, relative to the language table.
const (
	MsgRequired       = "validation.required"
	MsgEmail          = "validation.email"
	MsgMinLength      = "validation.minlength"
	MsgMaxLength      = "validation.maxlength"
	MsgMinValue       = "validation.min_value"
	MsgMaxValue       = "validation.max_value"
	MsgMinAge         = "validation.min_age"
	MsgMaxAge         = "validation.max_age"
	MsgMinChecked     = "validation.min_checked"
	MsgMatch          = "validation.match"
	MsgInvalidFormat  = "validation.invalid_format"
	MsgInvalidValue   = "validation.invalid_value"
	MsgPasswordPrefix = "validation.password_strength."
)

// Messages resolves translated message templates. *i18n.Translator
// satisfies it.
type Messages interface {
	Lookup(lang, key string, args ...string) (string, bool)
}

// message is a failure message before resolution: a table key with its
// named arguments and the English text used when no table has the key.
type message struct {
	key      string
	args     []string
	fallback string
}

func newMessage(key, fallback string, args ...string) message {
	return message{key: key, args: args, fallback: fallback}
}

var fallbacks = map[string]string{
	MsgRequired:                  "This field is required",
	MsgEmail:                     "Please enter a valid email address",
	MsgMinLength:                 "Minimum length is %{n} characters",
	MsgMaxLength:                 "Maximum length is %{n} characters",
	MsgMinValue:                  "Must be at least %{n}",
	MsgMaxValue:                  "Must be at most %{n}",
	MsgMinAge:                    "You must be at least %{n} years old",
	MsgMaxAge:                    "You must be no older than %{n} years old",
	MsgMinChecked:                "Select at least %{n}",
	MsgMatch:                     "Values do not match",
	MsgInvalidFormat:             "Invalid format",
	MsgInvalidValue:              "Invalid value",
	MsgPasswordPrefix + "weak":   "Password must be at least 6 characters",
	MsgPasswordPrefix + "medium": "Password must be at least 8 characters and include a number",
	MsgPasswordPrefix + "strong": "Password must be at least 10 characters and include uppercase, lowercase, number, and symbol",
}

// builtin returns the message for key with its English fallback.
func builtin(key string, args ...string) message {
	return newMessage(key, fallbacks[key], args...)
}

// substitute replaces %{name} placeholders using name/value pairs.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "%{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
