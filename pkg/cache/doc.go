// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiration.
//
// The cache evicts the least recently used entry once it reaches capacity.
// Entries stored with a TTL are dropped lazily on the first lookup after
// they expire, so an expired entry never reaches the caller.
//
// # Usage
//
//	c := cache.NewLRUCache[string, []byte](1024, cache.WithTTL[string, []byte](5*time.Second))
//
//	c.Put("tenant:42", payload)
//	if v, ok := c.Get("tenant:42"); ok {
//		// use v
//	}
//
//	c.PutWithTTL("tenant:43", payload, time.Minute)
//	c.Remove("tenant:42")
//	c.Clear()
//
// A TTL of zero disables expiration for the entry.
package cache
