package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter       = errors.New("i18n: adapter is nil")
	ErrParsingCancelled = errors.New("i18n: parsing cancelled")
	ErrFailedToParse    = errors.New("i18n: failed to parse translations")
	ErrFailedToReadFile = errors.New("i18n: failed to read translation file")
	ErrNoTranslations   = errors.New("i18n: no translations found")
	ErrEmptyKey         = errors.New("i18n: translation key is empty")
	ErrFailedToMarshal  = errors.New("i18n: failed to marshal translations")
)

// LanguageNotSupportedError reports a lookup for a language without a table.
type LanguageNotSupportedError struct {
	Lang string
}

func (e *LanguageNotSupportedError) Error() string {
	return fmt.Sprintf("i18n: language not supported: %s", e.Lang)
}

// IsLanguageNotSupportedError reports whether err is a LanguageNotSupportedError.
func IsLanguageNotSupportedError(err error) bool {
	var target *LanguageNotSupportedError
	return errors.As(err, &target)
}
