// Package handler provides HTTP request handlers for PairLink.
//
// This package implements the HTTP API endpoints for pairing session
// lifecycle management: creating scan and pairing-code sessions,
// confirming, listing, inspecting, and deleting them.
package handler
