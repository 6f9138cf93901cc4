package form

import "errors"

var (
	ErrFieldNotFound        = errors.New("form: field not found")
	ErrNotCheckable         = errors.New("form: field is not a checkbox or radio")
	ErrNotFileInput         = errors.New("form: field is not a file input")
	ErrInvalidDefinition    = errors.New("form: invalid definition")
	ErrDuplicateDefinition  = errors.New("form: duplicate definition id")
	ErrDefinitionNotFound   = errors.New("form: definition not found")
	ErrUnsupportedMediaType = errors.New("form: unsupported media type")
	ErrMissingContentType   = errors.New("form: missing content type")
	ErrInvalidBody          = errors.New("form: invalid request body")
)
