// Package main provides the entry point for pairlink-server.
//
// The server is the core PairLink service that provides:
//
//   - HTTP/HTTPS API for pairing session lifecycle management
//   - Prometheus metrics on /metrics
//   - Automatic log-level reload on configuration file changes
//
// Usage:
//
//	pairlink-server [flags]
//	pairlink-server --config /path/to/pairlink.yaml
//
// The server loads configuration, initializes infrastructure
// components, and starts the HTTP listener.
package main
