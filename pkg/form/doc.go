// Package form models an HTML form as plain Go values: an ordered list of
// fields with declarative validation attributes, their current values and
// checked state, wizard step membership and the transient "dirty" flag.
//
// A Form is mutable and goroutine-safe. Validation never reads it directly:
// a Snapshot is taken at the start of each pass so that rules comparing
// fields (for example data-match) see one consistent state no matter how the
// form changes while the pass is running.
//
// Forms are usually declared in YAML and collected in a Catalog:
//
//	catalog, err := form.LoadCatalog(os.DirFS("forms"))
//	def, _ := catalog.Get("signup")
//	f := def.Build()
//
// On the server side Bind turns a submitted request into a Form for the same
// definition, so the rules that ran in the browser can run again in Go.
package form
