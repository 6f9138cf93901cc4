package ui

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTheme    = errors.New("ui: unknown theme")
	ErrUnknownPosition = errors.New("ui: unknown tooltip position")
)

// Theme selects the classes applied to validated fields.
type Theme string

const (
	ThemeBeast     Theme = "beast"
	ThemeBootstrap Theme = "bootstrap"
	ThemeNone      Theme = "none"
)

// Classes returns the valid and invalid class names of the theme. ThemeNone
// and unknown themes apply no classes.
func (t Theme) Classes() (valid, invalid string) {
	switch t {
	case ThemeBeast:
		return "valid", "invalid"
	case ThemeBootstrap:
		return "is-valid", "is-invalid"
	default:
		return "", ""
	}
}

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeBeast, ThemeBootstrap, ThemeNone:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Position is where tooltips are placed relative to the error target.
type Position string

const (
	TooltipNone      Position = "none"
	TooltipTopLeft   Position = "top-left"
	TooltipTopCenter Position = "top-center"
	TooltipTopRight  Position = "top-right"
)

func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case TooltipNone, TooltipTopLeft, TooltipTopCenter, TooltipTopRight:
		return p, nil
	case "":
		return TooltipNone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

type fieldState uint8

const (
	stateNone fieldState = iota
	stateValid
	stateInvalid
)
