// Package logger builds *slog.Logger values with functional options and
// provides attribute constructors so that log keys stay consistent.
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "beastd"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.WarnContext(ctx, "custom validator not found", logger.Field("username"), logger.Rule("custom"))
//
// Discard returns a logger that drops everything; it is the default for the
// library packages so that nothing is printed unless a caller opts in.
package logger
