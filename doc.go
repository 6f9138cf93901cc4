// Package beast validates HTML forms from their attributes.
//
// A form is described once (see pkg/form) and validated with the same
// rules everywhere: required, pattern, minlength and maxlength, numeric
// ranges, ages, matching fields, password strength, checkbox group minimums
// and custom validators that may call databases or remote services.
//
//	f := def.Build()
//	v, err := beast.New(f,
//		beast.WithWaitForDom(false),
//		beast.WithErrorSummaryTarget("errors"),
//		beast.WithSubmitTo(beast.SubmitTo{URL: "https://api.example.com/signup"}),
//	)
//	_ = v.AddValidator("checkUsername", redis.Unique(client, "usernames", "Username is taken"))
//
//	_ = f.SetValue("email", "ada@example.com")
//	v.HandleChange(ctx, "email")
//	if v.HandleSubmit(ctx) {
//		// valid: let the submission through
//	}
//
// Every field of a pass is evaluated concurrently and a new pass cancels the
// one still running, so slow custom validators never render stale errors.
// Rendered errors are collected on a ui.Board and can be turned into HTML
// with the components of pkg/ui.
package beast
