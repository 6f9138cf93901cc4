package wizard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/beast/pkg/logger"
)

// Event moves the wizard between steps.
type Event string

const (
	Next Event = "next"
	Prev Event = "prev"
)

// Guard decides whether the wizard may leave step on Next.
type Guard func(ctx context.Context, step int) bool

// Action runs during a transition, before the current step changes.
type Action func(ctx context.Context, from, to int, event Event) error

type transition struct {
	to      int
	guarded bool
}

// Wizard is a goroutine-safe step state machine.
type Wizard struct {
	steps       []int
	transitions map[int]map[Event]transition
	guards      []Guard
	actions     []Action
	onChange    func(int)
	initial     int
	logger      *slog.Logger

	// fire serializes transitions; mu guards current only.
	fire    sync.Mutex
	mu      sync.RWMutex
	current int
}

// New creates a wizard over the given step numbers, which are sorted and
// deduplicated. It starts on the first step unless WithInitial says
// otherwise.
func New(steps []int, opts ...Option) (*Wizard, error) {
	steps = slices.Clone(steps)
	slices.Sort(steps)
	steps = slices.Compact(steps)
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if steps[0] < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStep, steps[0])
	}

	w := &Wizard{
		steps:       steps,
		transitions: make(map[int]map[Event]transition, len(steps)),
		initial:     steps[0],
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !slices.Contains(steps, w.initial) {
		return nil, fmt.Errorf("%w: initial step %d", ErrInvalidStep, w.initial)
	}
	w.logger = w.logger.With(logger.Component("wizard"))

	for i, step := range steps {
		w.transitions[step] = make(map[Event]transition, 2)
		if i+1 < len(steps) {
			w.transitions[step][Next] = transition{to: steps[i+1], guarded: true}
		}
		if i > 0 {
			w.transitions[step][Prev] = transition{to: steps[i-1]}
		}
	}
	w.current = w.initial
	return w, nil
}

// MustNew is like New but panics on error.
func MustNew(steps []int, opts ...Option) *Wizard {
	w, err := New(steps, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create wizard: %v", err))
	}
	return w
}

func (w *Wizard) Current() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Steps returns the step numbers in order.
func (w *Wizard) Steps() []int {
	return slices.Clone(w.steps)
}

// IsFirst reports whether the current step is the first one.
func (w *Wizard) IsFirst() bool {
	return w.Current() == w.steps[0]
}

func (w *Wizard) IsLast() bool {
	return w.Current() == w.steps[len(w.steps)-1]
}

// Next advances to the following step once every guard passes. On the
// last step it does nothing.
func (w *Wizard) Next(ctx context.Context) error {
	return w.Fire(ctx, Next)
}

// Prev goes back one step. On the first step it does nothing.
func (w *Wizard) Prev(ctx context.Context) error {
	return w.Fire(ctx, Prev)
}

// Fire applies event to the current step. The step change hook runs after
// the transition is released, so it may fire further events.
func (w *Wizard) Fire(ctx context.Context, event Event) error {
	if event != Next && event != Prev {
		return fmt.Errorf("%w: unknown event %q", ErrInvalidStep, event)
	}
	to, changed, err := w.transition(ctx, event)
	if err != nil || !changed {
		return err
	}
	w.notify(to)
	return nil
}

func (w *Wizard) transition(ctx context.Context, event Event) (int, bool, error) {
	w.fire.Lock()
	defer w.fire.Unlock()

	from := w.Current()
	t, ok := w.transitions[from][event]
	if !ok {
		w.logger.DebugContext(ctx, "no transition", logger.Step(from), slog.String("event", string(event)))
		return from, false, nil
	}

	if t.guarded {
		for _, guard := range w.guards {
			if !guard(ctx, from) {
				w.logger.DebugContext(ctx, "transition rejected", logger.Step(from), slog.String("event", string(event)))
				return from, false, NewErrTransitionRejected(from, event)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return from, false, err
	}

	for _, action := range w.actions {
		if err := action(ctx, from, t.to, event); err != nil {
			return from, false, fmt.Errorf("wizard: action failed: %w", err)
		}
	}

	w.set(t.to)
	return t.to, true, nil
}

// CanFire reports whether event would change the step right now. Guards
// are evaluated.
func (w *Wizard) CanFire(ctx context.Context, event Event) bool {
	from := w.Current()
	t, ok := w.transitions[from][event]
	if !ok {
		return false
	}
	if t.guarded {
		for _, guard := range w.guards {
			if !guard(ctx, from) {
				return false
			}
		}
	}
	return true
}

// Show jumps to step without running guards or actions.
func (w *Wizard) Show(step int) error {
	if !slices.Contains(w.steps, step) {
		return fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	w.fire.Lock()
	w.set(step)
	w.fire.Unlock()
	w.notify(step)
	return nil
}

// Reset returns to the initial step.
func (w *Wizard) Reset() {
	w.fire.Lock()
	w.set(w.initial)
	w.fire.Unlock()
	w.notify(w.initial)
}

func (w *Wizard) set(step int) {
	w.mu.Lock()
	w.current = step
	w.mu.Unlock()
	w.logger.Debug("step shown", logger.Step(step))
}

func (w *Wizard) notify(step int) {
	if w.onChange != nil {
		w.onChange(step)
	}
}
