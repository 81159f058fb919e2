// Package requestid correlates log records of one HTTP request.
//
// Middleware assigns every request an id, reusing a well-formed
// X-Request-ID header from the client, and stores it in the request
// context. FromContext reads it back, and LoggerExtractor plugs it into
// logger.WithContextExtractors so every record logged with the request
// context carries request_id:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	router.Use(requestid.Middleware)
package requestid
