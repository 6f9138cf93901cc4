// Package coordinator runs validation passes over a form.
//
// A pass takes a snapshot of the form, evaluates every selected field
// concurrently with a validator.Engine and joins the verdicts before
// aggregating them in document order. Radio groups are evaluated once per
// pass and disabled fields are skipped.
//
// Rendering happens through the Renderer interface as each field completes,
// then once more after aggregation (focus, summary). Hooks run after the
// renderer has been updated:
//
//	c := coordinator.New(f, engine, board,
//		coordinator.WithOnFail(func(failed []validator.Verdict) { ... }),
//		coordinator.WithSubmitter(client),
//	)
//	res := c.RunAll(ctx)
//
// Starting a pass cancels the previous one together with every in-flight
// single field evaluation. A superseded pass never touches the renderer and
// reports Result.Superseded.
package coordinator
