// Package httpserver runs an http.Handler with graceful shutdown and
// provides JSON liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns nil after a clean shutdown and an error wrapping ErrStart
// when the address cannot be bound.
package httpserver
