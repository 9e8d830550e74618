// Package config defines the server configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyPairing(&cfg.Pairing); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	// TLS is all-or-nothing: cert and key come together.
	if (cfg.HTTP.TLSCertFile == "") != (cfg.HTTP.TLSKeyFile == "") {
		return errors.New("server.http.tls_cert_file and tls_key_file must both be set")
	}
	if cfg.HTTP.TLSCertFile != "" {
		if _, err := os.Stat(cfg.HTTP.TLSCertFile); err != nil {
			return errors.New("server.http.tls_cert_file: " + err.Error())
		}
		if _, err := os.Stat(cfg.HTTP.TLSKeyFile); err != nil {
			return errors.New("server.http.tls_key_file: " + err.Error())
		}
	}

	if cfg.HTTP.RateLimit < 0 {
		return errors.New("server.http.rate_limit must not be negative")
	}
	if cfg.HTTP.RateLimit > 0 && cfg.HTTP.RateBurst < 1 {
		return errors.New("server.http.rate_burst must be at least 1 when rate limiting is enabled")
	}

	return nil
}

func verifyPairing(cfg *PairingSection) error {
	if cfg.ScanTimeout <= 0 {
		return errors.New("pairing.scan_timeout must be positive")
	}
	if cfg.PairTimeout <= 0 {
		return errors.New("pairing.pair_timeout must be positive")
	}
	if cfg.CodeLength < 4 || cfg.CodeLength > 32 {
		return errors.New("pairing.code_length must be between 4 and 32")
	}
	if len(cfg.CodeAlphabet) < 2 {
		return errors.New("pairing.code_alphabet needs at least 2 characters")
	}
	if cfg.CodeGroupSize < 0 {
		return errors.New("pairing.code_group_size must not be negative")
	}
	if cfg.ProvisionDelay < 0 {
		return errors.New("pairing.provision_delay must not be negative")
	}
	return nil
}
