// Package config defines the server configuration structure.
package config

// Sanitize returns a copy of the config safe for logging.
//
// PairLink config carries no secrets today; the hook exists so new
// sensitive fields get masked in one place instead of at every log
// call site.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg
	return &sanitized
}
