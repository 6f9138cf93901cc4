// Package handler adapts typed request handlers to net/http.
//
// A handler receives a Context and a bound payload and returns a Response.
// JSON and JSONError produce the {"data": ..., "error": ...} envelope;
// Templ and TemplMulti render templ components either as plain HTML or, for
// Datastar requests, as server-sent element patches:
//
//	return handler.TemplMulti(
//		handler.Patch(ui.Slot(ref, class, msg), handler.WithTarget("#"+ui.SlotID(ref))),
//		handler.Patch(ui.SummaryBox(summary)),
//	)
//
// Errors returned from binding or rendering go through an ErrorHandler,
// usually the one built by NewErrorHandler.
package handler
