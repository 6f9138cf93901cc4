package beast

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/registry"
	"github.com/dmitrymomot/beast/pkg/submit"
	"github.com/dmitrymomot/beast/pkg/ui"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// SubmitTo describes where valid form data is sent after a full pass.
type SubmitTo struct {
	URL string
	// Method defaults to POST.
	Method     string
	Headers    map[string]string
	Transform  submit.Transform
	OnResponse func(submit.Response)
	OnError    func(error)
	// Timeout bounds the request; zero means none.
	Timeout time.Duration
	// Secret enables HMAC signing of the request body.
	Secret string
	// Breaker, when set, stops submissions to an endpoint that keeps
	// failing. It may be shared between validators.
	Breaker *submit.Breaker
}

type config struct {
	errorContainerClass string
	tooltipClass        string
	focusFirst          bool
	validateOnChange    bool
	tooltips            ui.Position
	helperText          bool
	shakeInput          bool
	waitForDom          bool
	setNoValidate       bool
	autoSubmit          bool
	initSteps           bool
	debug               bool
	onFail              func([]validator.Verdict)
	onSuccess           func(map[string]any)
	onInit              func()
	onStepChange        func(int)
	language            string
	theme               ui.Theme
	submitTo            *SubmitTo
	errorSummaryTarget  string

	logger     *slog.Logger
	registry   *registry.Registry
	translator *i18n.Translator
}

func defaultConfig() config {
	return config{
		errorContainerClass: ui.DefaultErrorClass,
		tooltipClass:        ui.DefaultTooltipClass,
		focusFirst:          true,
		validateOnChange:    true,
		tooltips:            ui.TooltipNone,
		helperText:          true,
		shakeInput:          true,
		waitForDom:          true,
		setNoValidate:       true,
		autoSubmit:          true,
		language:            i18n.DefaultLanguage,
		theme:               ui.ThemeBeast,
	}
}

// Option configures a Validator.
type Option func(*config)

func WithErrorContainerClass(class string) Option {
	return func(c *config) {
		if class != "" {
			c.errorContainerClass = class
		}
	}
}

func WithTooltipClass(class string) Option {
	return func(c *config) {
		if class != "" {
			c.tooltipClass = class
		}
	}
}

// WithFocusFirst moves focus to the first invalid field after a failed
// pass. Enabled by default.
func WithFocusFirst(enabled bool) Option {
	return func(c *config) { c.focusFirst = enabled }
}

// WithValidateOnChange validates fields from HandleChange and, once they
// failed, from HandleInput. Enabled by default.
func WithValidateOnChange(enabled bool) Option {
	return func(c *config) { c.validateOnChange = enabled }
}

func WithTooltips(p ui.Position) Option {
	return func(c *config) { c.tooltips = p }
}

// WithHelperText toggles inline error messages. Enabled by default.
func WithHelperText(enabled bool) Option {
	return func(c *config) { c.helperText = enabled }
}

func WithShakeInput(enabled bool) Option {
	return func(c *config) { c.shakeInput = enabled }
}

// WithWaitForDom defers initialization until Ready is called. Enabled by
// default; disable it to initialize in New.
func WithWaitForDom(enabled bool) Option {
	return func(c *config) { c.waitForDom = enabled }
}

// WithSetNoValidate marks the form novalidate on initialization so that
// native browser validation stays out of the way. Enabled by default.
func WithSetNoValidate(enabled bool) Option {
	return func(c *config) { c.setNoValidate = enabled }
}

// WithAutoSubmit lets HandleSubmit report true for valid forms so the
// native submission proceeds. Enabled by default.
func WithAutoSubmit(enabled bool) Option {
	return func(c *config) { c.autoSubmit = enabled }
}

// WithInitSteps shows the first step on initialization.
func WithInitSteps(enabled bool) Option {
	return func(c *config) { c.initSteps = enabled }
}

// WithDebug logs every pass at debug level to stderr unless a logger is
// set with WithLogger.
func WithDebug(enabled bool) Option {
	return func(c *config) { c.debug = enabled }
}

func WithOnFail(fn func(failed []validator.Verdict)) Option {
	return func(c *config) { c.onFail = fn }
}

func WithOnSuccess(fn func(data map[string]any)) Option {
	return func(c *config) { c.onSuccess = fn }
}

func WithOnInit(fn func()) Option {
	return func(c *config) { c.onInit = fn }
}

func WithOnStepChange(fn func(step int)) Option {
	return func(c *config) { c.onStepChange = fn }
}

func WithLanguage(lang string) Option {
	return func(c *config) {
		if lang != "" {
			c.language = lang
		}
	}
}

func WithTheme(t ui.Theme) Option {
	return func(c *config) { c.theme = t }
}

// WithSubmitTo sends the form data to an endpoint after every successful
// full pass.
func WithSubmitTo(s SubmitTo) Option {
	return func(c *config) { c.submitTo = &s }
}

// WithErrorSummaryTarget enables the error summary rendered into the
// element with the given id.
func WithErrorSummaryTarget(id string) Option {
	return func(c *config) { c.errorSummaryTarget = id }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRegistry shares a validator registry between validators.
func WithRegistry(r *registry.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithTranslator replaces the built-in message tables.
func WithTranslator(t *i18n.Translator) Option {
	return func(c *config) { c.translator = t }
}
