// Package domain defines the core domain models for PairLink.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling: the pairing session entity,
// its state machine, the authentication artifact variants, and the
// structured error types shared by all layers.
package domain
