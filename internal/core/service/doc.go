// Package service provides the domain services for PairLink.
//
// Registry owns the live-session collection and all expiry timers.
// Manager is the lifecycle facade external callers use to create,
// confirm, remove, and list pairing sessions.
package service
