package beast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dmitrymomot/beast/pkg/coordinator"
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/registry"
	"github.com/dmitrymomot/beast/pkg/submit"
	"github.com/dmitrymomot/beast/pkg/ui"
	"github.com/dmitrymomot/beast/pkg/validator"
	"github.com/dmitrymomot/beast/pkg/wizard"
)

var (
	ErrNilForm      = errors.New("beast: form is nil")
	ErrNoSteps      = errors.New("beast: form has no steps")
	ErrUnknownField = errors.New("beast: unknown field")
)

// Validator ties a form to the rule engine, the error board, the step
// wizard and the optional submission client.
type Validator struct {
	cfg        config
	form       *form.Form
	registry   *registry.Registry
	translator *i18n.Translator
	engine     *validator.Engine
	board      *ui.Board
	coord      *coordinator.Coordinator
	wizard     *wizard.Wizard
	logger     *slog.Logger

	initOnce sync.Once
}

// New builds a validator for f. Unless WithWaitForDom(false) is given the
// validator is initialized later by Ready.
func New(f *form.Form, opts ...Option) (*Validator, error) {
	if f == nil {
		return nil, ErrNilForm
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &Validator{cfg: cfg, form: f, registry: cfg.registry, translator: cfg.translator}
	v.logger = cfg.logger
	if v.logger == nil {
		v.logger = logger.Discard()
		if cfg.debug {
			v.logger = logger.New(logger.WithLevel(slog.LevelDebug), logger.WithTextFormatter(), logger.WithOutput(os.Stderr))
		}
	}
	v.logger = v.logger.With(logger.Component("beast"), logger.Form(f.ID()))

	if v.registry == nil {
		v.registry = registry.New()
	}
	if v.translator == nil {
		t, err := i18n.NewTranslator(context.Background(),
			i18n.NewFSAdapter(validator.Locales, validator.LocalesDir, i18n.NewYAMLParser()),
			i18n.WithLogger(v.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("beast: load messages: %w", err)
		}
		v.translator = t
	}
	if !v.translator.HasLanguage(cfg.language) {
		return nil, &i18n.LanguageNotSupportedError{Lang: cfg.language}
	}

	v.engine = validator.NewEngine(v.registry,
		validator.WithMessages(v.translator),
		validator.WithLanguage(cfg.language),
		validator.WithLogger(v.logger),
	)

	boardOpts := []ui.Option{
		ui.WithTheme(cfg.theme),
		ui.WithTooltips(cfg.tooltips),
		ui.WithErrorClass(cfg.errorContainerClass),
		ui.WithTooltipClass(cfg.tooltipClass),
		ui.WithHelperText(cfg.helperText),
		ui.WithShake(cfg.shakeInput),
		ui.WithSummaryHeading(v.summaryHeading(cfg.language)),
	}
	if cfg.errorSummaryTarget != "" {
		boardOpts = append(boardOpts, ui.WithSummaryTarget(cfg.errorSummaryTarget))
	}
	v.board = ui.NewBoard(boardOpts...)

	coordOpts := []coordinator.Option{
		coordinator.WithFocusFirst(cfg.focusFirst),
		coordinator.WithSummary(cfg.errorSummaryTarget != ""),
		coordinator.WithOnFail(cfg.onFail),
		coordinator.WithOnSuccess(cfg.onSuccess),
		coordinator.WithLogger(v.logger),
	}
	if cfg.submitTo != nil {
		client, err := newSubmitter(*cfg.submitTo, v.logger)
		if err != nil {
			return nil, err
		}
		coordOpts = append(coordOpts, coordinator.WithSubmitter(client))
	}
	v.coord = coordinator.New(f, v.engine, v.board, coordOpts...)

	if steps := f.Steps(); len(steps) > 0 {
		numbers := make([]int, 0, len(steps))
		for _, s := range steps {
			numbers = append(numbers, s.Number)
		}
		w, err := wizard.New(numbers,
			wizard.WithGuard(v.canLeave),
			wizard.WithOnStepChange(cfg.onStepChange),
			wizard.WithLogger(v.logger),
		)
		if err != nil {
			return nil, err
		}
		v.wizard = w
	}

	v.logger.Debug("validator created", slog.Int("fields", f.Len()))
	if !cfg.waitForDom {
		v.Initialize()
	}
	return v, nil
}

func newSubmitter(s SubmitTo, log *slog.Logger) (*submit.Client, error) {
	opts := []submit.Option{
		submit.WithMethod(s.Method),
		submit.WithHeaders(s.Headers),
		submit.WithTransform(s.Transform),
		submit.WithOnResponse(s.OnResponse),
		submit.WithOnError(s.OnError),
		submit.WithLogger(log),
	}
	if s.Timeout > 0 {
		opts = append(opts, submit.WithTimeout(s.Timeout))
	}
	if s.Secret != "" {
		opts = append(opts, submit.WithSignature(s.Secret))
	}
	if s.Breaker != nil {
		opts = append(opts, submit.WithBreaker(s.Breaker))
	}
	return submit.NewClient(s.URL, opts...)
}

// Initialize marks the form novalidate, shows the first step and calls the
// init hook. Only the first call has an effect.
func (v *Validator) Initialize() {
	v.initOnce.Do(func() {
		if v.cfg.setNoValidate {
			v.form.SetNoValidate(true)
		}
		if v.cfg.initSteps && v.wizard != nil {
			_ = v.wizard.Show(v.wizard.Steps()[0])
			v.logger.Debug("step flow initialized")
		}
		if v.cfg.onInit != nil {
			v.cfg.onInit()
		}
		v.logger.Debug("validator initialized")
	})
}

// Ready signals that the document is loaded. It initializes validators
// created with WithWaitForDom.
func (v *Validator) Ready() {
	v.Initialize()
}

// Validate runs a full pass over the enabled fields. A valid form is
// handed to the success hook and submitted when SubmitTo is set; the
// submission outcome only reaches the SubmitTo hooks.
func (v *Validator) Validate(ctx context.Context) bool {
	res := v.coord.RunAll(ctx)
	return res.Valid && !res.Superseded
}

// ValidateCurrentStep validates the fields of the current step. Forms
// without steps have nothing to validate.
func (v *Validator) ValidateCurrentStep(ctx context.Context) bool {
	if v.wizard == nil {
		return true
	}
	res := v.coord.RunStep(ctx, v.wizard.Current())
	return res.Valid && !res.Superseded
}

// ValidateField validates the field with the given name; for checkbox and
// radio groups the group is validated through its first member.
func (v *Validator) ValidateField(ctx context.Context, name string) bool {
	field, ok := v.form.FieldByName(name)
	if !ok {
		v.logger.Warn("validate unknown field", logger.Field(name))
		return false
	}
	verdict, err := v.coord.ValidateField(ctx, field.Index)
	if err != nil {
		v.logger.Debug("field validation superseded", logger.Field(name), logger.Error(err))
		return false
	}
	return verdict.Valid
}

// HandleChange reacts to a committed change of the named field.
func (v *Validator) HandleChange(ctx context.Context, name string) bool {
	if !v.cfg.validateOnChange {
		return true
	}
	return v.ValidateField(ctx, name)
}

// HandleInput reacts to typing. Only fields whose last validation failed
// are revalidated, so errors do not appear while the user is still typing.
func (v *Validator) HandleInput(ctx context.Context, name string) bool {
	if !v.cfg.validateOnChange {
		return true
	}
	field, ok := v.form.FieldByName(name)
	if !ok || !v.form.IsDirty(field.Index) {
		return true
	}
	return v.ValidateField(ctx, name)
}

// HandleSubmit validates the form and reports whether the native
// submission should proceed.
func (v *Validator) HandleSubmit(ctx context.Context) bool {
	valid := v.Validate(ctx)
	v.logger.Debug("submit handled", slog.Bool("valid", valid), slog.Bool("auto_submit", v.cfg.autoSubmit))
	return valid && v.cfg.autoSubmit
}

// Next moves to the following step when the current one is valid. Steps
// marked validate require the whole form to be valid. On the last step
// Next does nothing.
func (v *Validator) Next(ctx context.Context) error {
	if v.wizard == nil {
		return ErrNoSteps
	}
	return v.wizard.Next(ctx)
}

// Prev moves to the previous step without validation.
func (v *Validator) Prev(ctx context.Context) error {
	if v.wizard == nil {
		return ErrNoSteps
	}
	return v.wizard.Prev(ctx)
}

// CurrentStep returns the current step number, 0 for forms without steps.
func (v *Validator) CurrentStep() int {
	if v.wizard == nil {
		return 0
	}
	return v.wizard.Current()
}

// canLeave guards the next transition. Full form checks run as a subset
// pass so that leaving a step never triggers the success hook or a
// submission.
func (v *Validator) canLeave(ctx context.Context, step int) bool {
	if s, ok := v.form.Step(step); ok && s.Validate {
		all := make([]int, v.form.Len())
		for i := range all {
			all[i] = i
		}
		res := v.coord.RunSubset(ctx, all...)
		return res.Valid && !res.Superseded
	}
	res := v.coord.RunStep(ctx, step)
	return res.Valid && !res.Superseded
}

// AddValidator registers a custom validator referenced by data-validator.
func (v *Validator) AddValidator(name string, fn registry.Func) error {
	if err := v.registry.Register(name, fn); err != nil {
		return err
	}
	v.logger.Debug("custom validator added", slog.String("validator", name))
	return nil
}

// SetLanguage switches the message language. The language must have a
// table, built in or added with SetMessages.
func (v *Validator) SetLanguage(lang string) error {
	if !v.translator.HasLanguage(lang) {
		v.logger.Warn("language not found", logger.Language(lang))
		return &i18n.LanguageNotSupportedError{Lang: lang}
	}
	v.engine.SetLanguage(lang)
	v.board.SetSummaryHeading(v.summaryHeading(lang))
	v.logger.Debug("language set", logger.Language(lang))
	return nil
}

func (v *Validator) Language() string {
	return v.engine.Language()
}

// SetMessages merges messages into the table of lang, creating it when
// needed. Keys are message keys such as "required" or "min_value"; see
// MessageKey for the accepted spellings.
func (v *Validator) SetMessages(lang string, messages map[string]string) error {
	normalized := make(map[string]string, len(messages))
	for key, msg := range messages {
		normalized[MessageKey(key)] = msg
	}
	return v.translator.SetMessages(lang, normalized)
}

func (v *Validator) AddMessage(lang, key, message string) error {
	return v.SetMessages(lang, map[string]string{key: message})
}

func (v *Validator) SetTheme(t ui.Theme) {
	v.board.SetTheme(t)
	v.logger.Debug("theme set", slog.String("theme", string(t)))
}

// Reset cancels running validations, clears every error and forgets which
// fields failed.
func (v *Validator) Reset() {
	v.coord.Reset()
	v.logger.Debug("validator reset")
}

// FormData returns the submittable values of the form.
func (v *Validator) FormData() map[string]any {
	return v.form.Data()
}

func (v *Validator) Form() *form.Form {
	return v.form
}

// Board exposes the rendered errors.
func (v *Validator) Board() *ui.Board {
	return v.board
}

func (v *Validator) summaryHeading(lang string) string {
	return v.translator.Td(lang, "summary.heading", ui.DefaultSummaryHeading)
}
