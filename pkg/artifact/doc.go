// Package artifact provides pure generation of pairing artifacts:
// scannable (QR-style) payloads and short alphanumeric pairing codes.
//
// All operations are total: they consume a randomness source and
// cannot fail for any input.
package artifact
