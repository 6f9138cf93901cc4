// Package validator evaluates the declarative validation attributes of a
// form field.
//
// Compile turns the attributes of a form.Field into an ordered list of rule
// variants (Required, CheckboxMin, Match, MinLength, Range, Age, Pattern,
// MaxLength, Email, PasswordStrength, Custom). Engine.Evaluate runs them in
// that order and stops at the first failure:
//
//	engine := validator.NewEngine(reg, validator.WithMessages(translator))
//	verdict, err := engine.Evaluate(ctx, field, f.Snapshot())
//	if err != nil {
//	    // ctx was cancelled: the pass was superseded, drop the verdict
//	}
//	if !verdict.Valid {
//	    fmt.Println(verdict.Message) // "Minimum length is 8 characters"
//	}
//
// Rules that compare fields (data-match, checkbox and radio groups) read the
// snapshot passed to Evaluate, never the live form.
//
// # Messages
//
// A failure message is, in order of precedence, the field's
// data-error-message attribute, the entry of the active language in the
// Messages tables, or a built-in English text. Messages returned by custom
// validators are used as they are. Locales embeds the en, da, de and pirate
// tables.
//
// # Suspension
//
// Two rules may block: the data-sleep delay and custom validators. Both
// observe ctx, so cancelling the context of a pass stops its evaluations.
package validator
