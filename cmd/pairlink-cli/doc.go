// Package main provides the entry point for pairlink-cli.
//
// The CLI tool provides command-line access to pairlink-server for:
//
//   - Creating pairing sessions (scannable code or typed code)
//   - Listing, inspecting, confirming, and removing sessions
//   - Checking server health
//
// Usage:
//
//	pairlink-cli [command] [flags]
//	pairlink-cli session create-pair --phone +15551234567
//	pairlink-cli session list --output json
package main
