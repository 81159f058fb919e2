// Package logger builds *slog.Logger values with functional options and
// context-aware attribute injection.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in a handler that runs every registered ContextExtractor
// before a record is written. Request ids and tenant ids stored in the
// request context therefore show up on every log line without being passed
// around explicitly.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "flagsvc"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "override stored",
//		logger.FlagKey("new-gradebook"),
//		logger.Duration(time.Since(start)),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
