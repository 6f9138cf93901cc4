// Package async provides generic helpers for running functions in goroutines
// and joining their results.
//
// Async starts a function and returns a *Future. Await blocks for the
// result, AwaitContext gives up when a context is done and IsComplete polls.
// WaitAll joins a list of futures, waiting for every one of them even when
// some fail, which is what a validation pass needs: the wall time of the
// pass is the time of its slowest field, not the sum.
//
//	futures := make([]*async.Future[validator.Verdict], 0, len(fields))
//	for _, f := range fields {
//	    futures = append(futures, async.Async(ctx, f, evaluate))
//	}
//	verdicts, err := async.WaitAll(futures...)
//
// All helpers are context aware: a function started with an already
// cancelled context never runs and its future resolves with ctx.Err().
package async
