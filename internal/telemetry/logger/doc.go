// Package logger provides structured logging for PairLink.
//
// It wraps the standard library log/slog to provide structured JSON
// logging with automatic redaction of subscriber-identifying data
// (phone numbers, pairing codes), context-aware request ID
// propagation, and runtime log level adjustment.
package logger
