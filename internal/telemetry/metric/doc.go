// Package metric provides Prometheus metrics for PairLink.
//
// It exposes session lifecycle counters, the active-session gauge,
// and HTTP request metrics in Prometheus format on /metrics.
package metric
