// Package buildinfo provides build information for PairLink.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/pairlink-go/internal/infra/buildinfo.Version=v1.0.0"
package buildinfo
