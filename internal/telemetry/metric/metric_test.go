package metric

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_SessionCounters(t *testing.T) {
	r := NewRegistry()

	r.SessionsActive.Inc()
	r.SessionsActive.Inc()
	r.SessionsActive.Dec()
	if got := testutil.ToFloat64(r.SessionsActive); got != 1 {
		t.Errorf("sessions_active = %v, want 1", got)
	}

	r.SessionsCreated.WithLabelValues("scan").Inc()
	r.SessionsCreated.WithLabelValues("pairing").Add(2)
	if got := testutil.ToFloat64(r.SessionsCreated.WithLabelValues("pairing")); got != 2 {
		t.Errorf("sessions_created_total{kind=pairing} = %v, want 2", got)
	}

	r.SessionsExpired.Inc()
	if got := testutil.ToFloat64(r.SessionsExpired); got != 1 {
		t.Errorf("sessions_expired_total = %v, want 1", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.SessionsCreated.WithLabelValues("scan").Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "pairlink_sessions_created_total") {
		t.Errorf("metrics output missing session counter:\n%s", body)
	}
}
