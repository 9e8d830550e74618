// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for pairlink-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Pairing PairingSection `koanf:"pairing"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// ReadTimeout and WriteTimeout bound request processing.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is the per-client request rate (requests/second).
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the per-client burst allowance.
	RateBurst int `koanf:"rate_burst"`

	// CORSOrigins lists allowed cross-origin request origins.
	// Empty disables CORS headers entirely.
	CORSOrigins []string `koanf:"cors_origins"`
}

// PairingSection configures session lifecycle behavior.
type PairingSection struct {
	// ScanTimeout is the confirmation deadline for scannable-code
	// sessions.
	ScanTimeout time.Duration `koanf:"scan_timeout"`

	// PairTimeout is the confirmation deadline for pairing-code
	// sessions. Typing takes longer than scanning.
	PairTimeout time.Duration `koanf:"pair_timeout"`

	// CodeLength is the number of characters in a pairing code,
	// excluding group separators.
	CodeLength int `koanf:"code_length"`

	// CodeAlphabet is the character set pairing codes draw from.
	CodeAlphabet string `koanf:"code_alphabet"`

	// CodeGroupSize splits displayed codes into dash-separated groups.
	// Zero disables grouping.
	CodeGroupSize int `koanf:"code_group_size"`

	// ProvisionDelay simulates the channel provisioning round trip
	// before a session is created. Zero disables it.
	ProvisionDelay time.Duration `koanf:"provision_delay"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
