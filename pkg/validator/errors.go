package validator

import "errors"

var (
	// ErrUnknownRule is reported for a Rule implementation the engine does not handle.
	ErrUnknownRule = errors.New("validator: unknown rule")

	// ErrInvalidAttribute is reported when an attribute value cannot be
	// compiled into a rule. The attribute is ignored.
	ErrInvalidAttribute = errors.New("validator: invalid attribute")

	// ErrCustomValidator wraps errors returned by custom validators.
	ErrCustomValidator = errors.New("validator: custom validator failed")
)
