// Package ui is an in-memory rendering surface for validation results.
//
// A Board records what a browser would show: error messages rendered after
// their anchor field or into a named container, tooltips, the valid/invalid
// theme class of each field, the focused field, the shake animation flag
// and the error summary. It implements coordinator.Renderer.
//
// The recorded state can be turned into HTML with the templ components in
// this package, which is how the HTTP module streams error nodes to the
// browser. Messages are reduced to plain text with bluemonday before they
// are stored, so markup returned by custom validators is never rendered.
package ui
