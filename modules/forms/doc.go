// Package forms exposes server-side validation over HTTP.
//
// Routes mounted by Router:
//
//	GET  /forms                        ids of the loaded definitions
//	GET  /forms/{form}                 a definition as JSON
//	POST /forms/{form}/validate        full pass; 422 with field errors on failure
//	POST /forms/{form}/fields/{field}  live validation of one field
//	GET  /locales                      supported languages
//	GET  /locales/{lang}               message table for browser code
//
// Datastar requests (and Accept: text/html) receive element patches of the
// error slots and summary instead of JSON.
package forms
