// Package logger builds log/slog loggers for the cache tooling.
//
// [New] creates a JSON or text logger from a [Config] that can be embedded in
// an env-parsed application config. When a Sentry DSN is set, records are also
// forwarded to Sentry: errors become Issues, warnings and errors are stored as
// logs. If Sentry fails to start, logging continues locally.
//
//	log, err := logger.New(logger.Config{Level: "debug", Format: "text"}, os.Stderr)
//	if err != nil {
//		return err
//	}
//
// Request-scoped attributes travel in the context:
//
//	ctx = logger.WithAttrs(ctx, slog.String("scenario", name))
//	log.InfoContext(ctx, "replay finished") // includes scenario=name
//
// A [ContextExtractor] adds attributes computed from the context on every call.
// [NewLogHandlerDecorator] applies both mechanisms to any slog.Handler.
//
// [NewNope] returns a logger that discards output, the default for library code.
package logger
