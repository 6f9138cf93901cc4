package validator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/registry"
)

// Validators resolves custom validators by name. *registry.Registry
// satisfies it.
type Validators interface {
	Lookup(name string) (registry.Func, bool)
}

// Engine evaluates the rules of one field at a time. It is safe for
// concurrent use; one engine serves all evaluations of a form.
type Engine struct {
	validators Validators
	messages   Messages
	now        func() time.Time
	logger     *slog.Logger

	mu   sync.RWMutex
	lang string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMessages sets the message tables used for rule failures.
func WithMessages(m Messages) Option {
	return func(e *Engine) {
		e.messages = m
	}
}

func WithLanguage(lang string) Option {
	return func(e *Engine) {
		if lang != "" {
			e.lang = lang
		}
	}
}

// WithClock sets the time source used by age rules.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an engine. validators may be nil when no field uses
// data-validator.
func NewEngine(validators Validators, opts ...Option) *Engine {
	e := &Engine{
		validators: validators,
		now:        time.Now,
		logger:     logger.Discard(),
		lang:       "en",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("validator"))
	return e
}

func (e *Engine) Language() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lang
}

// SetLanguage switches the message language for subsequent evaluations.
func (e *Engine) SetLanguage(lang string) {
	e.mu.Lock()
	e.lang = lang
	e.mu.Unlock()
}

// Evaluate runs the rules of field against snap. The verdict fails closed:
// it starts invalid with the required message and only turns valid once
// every rule has passed. The error is non-nil only when ctx was cancelled
// during the artificial delay or a custom validator; the verdict must then
// be discarded.
func (e *Engine) Evaluate(ctx context.Context, field form.Field, snap form.Snapshot) (Verdict, error) {
	lang := e.Language()
	verdict := Verdict{
		Rule:    KindRequired,
		Message: e.resolve(field, lang, outcome{msg: builtin(MsgRequired)}),
		Field:   field,
		Target:  field,
	}

	if err := e.delay(ctx, field); err != nil {
		return verdict, err
	}

	rules, err := Compile(field)
	if err != nil {
		e.logger.WarnContext(ctx, "ignoring invalid attributes", logger.Field(field.Name), logger.Error(err))
	}

	for _, rule := range rules {
		out, err := e.apply(ctx, rule, field, snap)
		if err != nil {
			return verdict, err
		}
		if out.ok {
			continue
		}
		verdict.Rule = rule.Kind()
		verdict.Message = e.resolve(field, lang, out)
		if out.target != nil {
			verdict.Target = *out.target
		}
		e.logger.DebugContext(ctx, "field failed",
			logger.Field(field.Name), logger.Rule(rule.Kind().String()), slog.String("message", verdict.Message))
		return verdict, nil
	}

	return Verdict{Valid: true, Field: field, Target: field}, nil
}

// apply dispatches a rule to its check. Every variant must have a case.
func (e *Engine) apply(ctx context.Context, rule Rule, field form.Field, snap form.Snapshot) (outcome, error) {
	switch r := rule.(type) {
	case Required:
		return r.check(field, snap), nil
	case CheckboxMin:
		return r.check(field, snap), nil
	case Match:
		return r.check(field, snap), nil
	case MinLength:
		return r.check(field), nil
	case Range:
		return r.check(field), nil
	case Age:
		return r.check(field, e.now()), nil
	case Pattern:
		return r.check(field), nil
	case MaxLength:
		return r.check(field), nil
	case Email:
		return r.check(field), nil
	case PasswordStrength:
		return r.check(field), nil
	case Custom:
		return e.custom(ctx, r, field)
	}
	e.logger.ErrorContext(ctx, "unhandled rule", logger.Field(field.Name), logger.Error(fmt.Errorf("%w: %T", ErrUnknownRule, rule)))
	return fail(builtin(MsgInvalidValue)), nil
}

func (e *Engine) custom(ctx context.Context, r Custom, field form.Field) (outcome, error) {
	var (
		fn registry.Func
		ok bool
	)
	if e.validators != nil {
		fn, ok = e.validators.Lookup(r.Name)
	}
	if !ok {
		e.logger.WarnContext(ctx, "custom validator not found", logger.Field(field.Name), slog.String("validator", r.Name))
		return pass(), nil
	}

	res, err := callValidator(ctx, fn, field)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome{}, ctxErr
	}
	if err != nil {
		e.logger.ErrorContext(ctx, "custom validator failed",
			logger.Field(field.Name), slog.String("validator", r.Name), logger.Error(err))
		return fail(builtin(MsgInvalidValue)), nil
	}
	if res.Valid {
		return pass(), nil
	}
	if res.Message == "" {
		return fail(builtin(MsgInvalidValue)), nil
	}
	return outcome{msg: message{fallback: res.Message}, literal: true}, nil
}

func callValidator(ctx context.Context, fn registry.Func, field form.Field) (res registry.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCustomValidator, p)
		}
	}()
	res, err = fn(ctx, field)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCustomValidator, err)
	}
	return res, err
}

// delay honours data-sleep (seconds) for non-empty values.
func (e *Engine) delay(ctx context.Context, field form.Field) error {
	if field.Value == "" {
		return nil
	}
	raw := field.Attrs.Get(form.AttrSleep)
	if raw == "" {
		return nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs <= 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
		return nil
	}

	timer := time.NewTimer(time.Duration(secs * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// resolve picks the message of a failed rule: the field's data-error-message
// override, then the language table, then the English fallback. Messages
// returned by custom validators are kept as they are.
func (e *Engine) resolve(field form.Field, lang string, out outcome) string {
	if out.literal {
		return out.msg.fallback
	}
	if override := field.Attrs.Get(form.AttrErrorMessage); override != "" {
		return override
	}
	if e.messages != nil && out.msg.key != "" {
		if s, ok := e.messages.Lookup(lang, out.msg.key, out.msg.args...); ok {
			return s
		}
	}
	return substitute(out.msg.fallback, out.msg.args)
}
