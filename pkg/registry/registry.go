package registry

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrymomot/beast/pkg/form"
)

var (
	ErrEmptyName    = errors.New("registry: validator name is empty")
	ErrNilValidator = errors.New("registry: validator function is nil")
)

// Outcome is the result of a custom validator.
type Outcome struct {
	Valid   bool
	Message string
}

// Pass reports a successful check.
func Pass() Outcome {
	return Outcome{Valid: true}
}

// Fail reports a failed check. An empty message makes the engine fall back
// to the generic "invalid value" message.
func Fail(message string) Outcome {
	return Outcome{Message: message}
}

// Func is a custom validator. It may block (remote lookups, artificial
// latency) and must honour ctx cancellation. A returned error fails the
// field closed.
type Func func(ctx context.Context, field form.Field) (Outcome, error)

// Predicate adapts a boolean check into a Func failing with message.
func Predicate(message string, fn func(ctx context.Context, field form.Field) bool) Func {
	return func(ctx context.Context, field form.Field) (Outcome, error) {
		if fn(ctx, field) {
			return Pass(), nil
		}
		return Fail(message), nil
	}
}

// Registry maps validator names to functions. Registering an existing name
// replaces the previous function.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Func
}

func New() *Registry {
	return &Registry{validators: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilValidator
	}
	r.mu.Lock()
	r.validators[name] = fn
	r.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on invalid input.
func (r *Registry) MustRegister(name string, fn Func) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.validators[name]
	return fn, ok
}

// Names returns the registered validator names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
