package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/logger"
	"github.com/dmitrymomot/beast/pkg/requestid"
	"github.com/dmitrymomot/beast/pkg/validator"
)

// ErrorInfo is the client facing view of an error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
	Fields  validator.ValidationErrors
}

// Classify maps errors to statuses: HTTP errors keep their code, failed
// validation is 422, malformed bodies 400 and unsupported media 415.
// Anything else is a 500 whose message is not leaked.
func Classify(err error) ErrorInfo {
	var httpErr HTTPError
	switch {
	case validator.IsValidationError(err):
		return ErrorInfo{
			Status:  http.StatusUnprocessableEntity,
			Code:    "validation_error",
			Message: "validation failed",
			Fields:  validator.ExtractValidationErrors(err),
		}
	case errors.As(err, &httpErr):
		return ErrorInfo{Status: httpErr.Code, Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	case errors.Is(err, form.ErrUnsupportedMediaType):
		return ErrorInfo{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type", Message: err.Error()}
	case errors.Is(err, form.ErrInvalidBody), errors.Is(err, form.ErrMissingContentType):
		return ErrorInfo{Status: http.StatusBadRequest, Code: "bad_request", Message: err.Error()}
	default:
		return ErrorInfo{Status: http.StatusInternalServerError, Code: "internal_error", Message: "An error occurred processing your request"}
	}
}

// NewErrorHandler logs the failure and answers with a JSON error body.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err)

		level := slog.LevelError
		if info.Status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Component("http"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status", info.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error", logger.Error(renderErr))
		}
	}
}
