// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr  = "127.0.0.1:5180"
	DefaultHTTPSAddr = "127.0.0.1:5443"

	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
	DefaultRateLimit    = 20.0
	DefaultRateBurst    = 40

	DefaultScanTimeout    = 30 * time.Second
	DefaultPairTimeout    = 60 * time.Second
	DefaultCodeLength     = 8
	DefaultCodeAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultCodeGroupSize  = 4
	DefaultProvisionDelay = 150 * time.Millisecond

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:         DefaultHTTPAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				RateLimit:    DefaultRateLimit,
				RateBurst:    DefaultRateBurst,
			},
		},
		Pairing: PairingSection{
			ScanTimeout:    DefaultScanTimeout,
			PairTimeout:    DefaultPairTimeout,
			CodeLength:     DefaultCodeLength,
			CodeAlphabet:   DefaultCodeAlphabet,
			CodeGroupSize:  DefaultCodeGroupSize,
			ProvisionDelay: DefaultProvisionDelay,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
