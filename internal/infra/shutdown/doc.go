// Package shutdown provides graceful shutdown for PairLink.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic triggering (fatal server errors)
//   - Timeout-based forced shutdown
//   - Cleanup hook registration
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Stop(ctx) })
//	err := h.Wait()
package shutdown
