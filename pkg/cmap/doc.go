// Package cmap provides a concurrent-safe sharded map.
//
// Sharding reduces lock contention compared to a single mutex-guarded
// map when many goroutines touch unrelated keys, as the per-client
// rate limiter state in the HTTP layer does.
package cmap
