package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrNoSteps     = errors.New("wizard: no steps")
	ErrInvalidStep = errors.New("wizard: invalid step")
)

// ErrTransitionRejected reports that a guard vetoed leaving a step.
type ErrTransitionRejected struct {
	Step  int
	Event Event
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("wizard: %s from step %d was rejected", e.Event, e.Step)
}

func NewErrTransitionRejected(step int, event Event) *ErrTransitionRejected {
	return &ErrTransitionRejected{Step: step, Event: event}
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
