// Package httpserver provides the HTTP/HTTPS server for PairLink.
//
// It uses the Go standard library net/http for routing and transport,
// with middleware for request IDs, panic recovery, CORS, per-client
// rate limiting, and Prometheus request metrics.
package httpserver
