package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Translator resolves translation keys per language. Keys are dot separated
// paths into nested tables ("validation.required") and templates use named
// placeholders: "Minimum length is %{n} characters".
//
// Tables can be changed at runtime with SetMessages and AddMessage; all
// methods are safe for concurrent use.
type Translator struct {
	mu             sync.RWMutex
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used by the context helpers when
// the request carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey makes T return the key itself for missing translations.
// Enabled by default.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every missing key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}

// NewTranslator loads the adapter's tables and returns a ready translator.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	tables, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, table := range tables {
		if lang == "" {
			return nil, fmt.Errorf("%w: empty language code", ErrFailedToParse)
		}
		if table == nil {
			return nil, fmt.Errorf("%w: nil table for language %s", ErrFailedToParse, lang)
		}
	}

	t.translations = make(map[string]map[string]any, len(tables))
	merge(t.translations, tables)
	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.supportedLanguages()))
	return t, nil
}

func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the sorted language codes with a table.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.supportedLanguages()
}

func (t *Translator) supportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

func (t *Translator) HasLanguage(lang string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.translations[lang]
	return ok
}

func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.Lookup(lang, key)
	return ok
}

// Lookup returns the formatted translation and whether it exists.
// Arguments are name/value pairs substituted into %{name} placeholders.
func (t *Translator) Lookup(lang, key string, args ...string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	table, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := lookup(table, key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	if !ok {
		return "", false
	}
	return format(s, args), true
}

// T translates key for lang. Missing translations return the key (or "" when
// fallback to key is disabled).
//
//	t.T("en", "validation.minlength", "n", "8") // "Minimum length is 8 characters"
func (t *Translator) T(lang, key string, args ...string) string {
	if s, ok := t.Lookup(lang, key, args...); ok {
		return s
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Td translates key with an explicit fallback template.
func (t *Translator) Td(lang, key, fallback string, args ...string) string {
	if s, ok := t.Lookup(lang, key, args...); ok {
		return s
	}
	return format(fallback, args)
}

// Tc translates key in the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(LocaleFromContext(ctx, t.defaultLang), key, args...)
}

// SetMessages merges messages into the table of lang, creating the table
// when the language is new. Keys are dot separated paths.
func (t *Translator) SetMessages(lang string, messages map[string]string) error {
	if lang == "" {
		return &LanguageNotSupportedError{Lang: lang}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	table, ok := t.translations[lang]
	if !ok {
		table = make(map[string]any, len(messages))
		t.translations[lang] = table
	}
	var errs []error
	for key, msg := range messages {
		if err := store(table, key, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddMessage sets a single translation.
func (t *Translator) AddMessage(lang, key, message string) error {
	return t.SetMessages(lang, map[string]string{key: message})
}

// ExportJSON returns the table of lang as JSON, for client-side use.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	table, ok := t.translations[lang]
	if !ok {
		return nil, &LanguageNotSupportedError{Lang: lang}
	}
	data, err := json.Marshal(table)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshal, err)
	}
	return data, nil
}

func lookup(table map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := table
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func store(table map[string]any, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	parts := strings.Split(key, ".")
	current := table
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders; unknown placeholders are kept.
func format(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
