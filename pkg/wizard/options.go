package wizard

import "log/slog"

// Option configures a Wizard.
type Option func(*Wizard)

// WithGuard adds a check that must pass before Next leaves a step.
func WithGuard(g Guard) Option {
	return func(w *Wizard) {
		if g != nil {
			w.guards = append(w.guards, g)
		}
	}
}

// WithAction adds a side effect run on every transition before the step
// changes. A failing action aborts the transition.
func WithAction(a Action) Option {
	return func(w *Wizard) {
		if a != nil {
			w.actions = append(w.actions, a)
		}
	}
}

// WithOnStepChange sets the hook called whenever a step is shown. It runs
// outside the transition lock and may call Next or Prev.
func WithOnStepChange(fn func(step int)) Option {
	return func(w *Wizard) {
		w.onChange = fn
	}
}

// WithInitial starts the wizard on the given step instead of the first one.
func WithInitial(step int) Option {
	return func(w *Wizard) {
		w.initial = step
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Wizard) {
		if l != nil {
			w.logger = l
		}
	}
}
