// Package redis provides helpers for connecting to Redis and using it as a
// shared key-value store.
//
// The package wraps go-redis and adds:
//
//   - Connect, which pings the server with retries before handing out a client.
//   - Storage, a context-aware key-value wrapper with prefix deletion built on SCAN.
//   - Healthcheck, a closure suitable for readiness probes.
//
// Configuration is described by Config and is usually populated from the
// environment:
//
//	cfg := config.MustLoad[redis.Config]()
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	_ = store.Set(ctx, "flags:tenant:42", payload, 5*time.Second)
//	_ = store.DeletePrefix(ctx, "flags:")
//
// Errors returned by the package wrap sentinel values with errors.Join, so
// callers can branch with errors.Is.
package redis
