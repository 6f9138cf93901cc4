// Package wizard drives multi-step forms as a small finite state machine.
//
// States are wizard step numbers and there are two events: Next and Prev.
// Next is guarded, usually by a validation pass over the current step (or
// the whole form for steps that ask for it); Prev is unconditional. Next on
// the last step and Prev on the first step are no-ops, so the machine has no
// terminal state.
//
//	w, err := wizard.New([]int{1, 2, 3},
//		wizard.WithGuard(func(ctx context.Context, step int) bool {
//			return coord.RunStep(ctx, step).Valid
//		}),
//		wizard.WithOnStepChange(func(step int) { ... }),
//	)
//	if err := w.Next(ctx); wizard.IsTransitionRejectedError(err) { ... }
//
// Guards run outside the state lock, so Current stays responsive while a
// slow validation is in progress. Transitions themselves are serialized.
package wizard
