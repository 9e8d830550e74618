// Package connection provides the HTTP client pairlink-cli uses to
// talk to pairlink-server.
package connection
