package ui

// Default class names and summary text.
const (
	DefaultErrorClass     = "beast-error-msg"
	DefaultTooltipClass   = "beast-tooltip"
	DefaultSummaryHeading = "Please fix the following:"
	SummaryIcon           = "❌"
	// ShakeClass is set on fields while the shake animation runs.
	ShakeClass = "shake"
)

// Option configures a Board.
type Option func(*Board)

func WithTheme(t Theme) Option {
	return func(b *Board) {
		b.theme = t
	}
}

// WithTooltips enables tooltips at the given position.
func WithTooltips(p Position) Option {
	return func(b *Board) {
		b.tooltips = p
	}
}

func WithErrorClass(class string) Option {
	return func(b *Board) {
		if class != "" {
			b.errorClass = class
		}
	}
}

func WithTooltipClass(class string) Option {
	return func(b *Board) {
		if class != "" {
			b.tooltipClass = class
		}
	}
}

// WithHelperText controls inline error messages. Enabled by default.
func WithHelperText(enabled bool) Option {
	return func(b *Board) {
		b.helperText = enabled
	}
}

// WithShake controls the shake animation on invalid fields. Enabled by default.
func WithShake(enabled bool) Option {
	return func(b *Board) {
		b.shake = enabled
	}
}

// WithSummaryTarget enables the error summary, rendered into the element
// with the given id.
func WithSummaryTarget(id string) Option {
	return func(b *Board) {
		b.summaryTarget = id
	}
}

func WithSummaryHeading(heading string) Option {
	return func(b *Board) {
		b.summaryHeading = heading
	}
}
