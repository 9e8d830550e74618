package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/pairlink-go/internal/core/service"
	"github.com/yndnr/pairlink-go/internal/telemetry/logger"
	"github.com/yndnr/pairlink-go/internal/telemetry/metric"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("generates when absent", func(t *testing.T) {
		var captured string
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = logger.RequestIDFromContext(r.Context())
		}), RequestID())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.HasPrefix(captured, "req-") {
			t.Errorf("request ID = %q, want req- prefix", captured)
		}
		if rec.Header().Get("X-Request-ID") != captured {
			t.Errorf("response header = %q, context = %q", rec.Header().Get("X-Request-ID"), captured)
		}
	})

	t.Run("honors client-provided ID", func(t *testing.T) {
		var captured string
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = logger.RequestIDFromContext(r.Context())
		}), RequestID())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-from-client")
		h.ServeHTTP(httptest.NewRecorder(), req)

		if captured != "req-from-client" {
			t.Errorf("request ID = %q, want req-from-client", captured)
		}
	})
}

func TestRecover(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), Recover(logger.Default()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if got := rec.Header().Get("X-Error-Code"); got != "PL-SYS-5000" {
		t.Errorf("X-Error-Code = %q, want PL-SYS-5000", got)
	}
}

func TestRateLimit(t *testing.T) {
	t.Run("allows within burst, rejects beyond", func(t *testing.T) {
		h := Chain(okHandler(), RateLimit(1, 2))

		statuses := make([]int, 0, 4)
		for i := 0; i < 4; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}

		if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
			t.Errorf("first two requests = %v, want 200s", statuses[:2])
		}
		if statuses[3] != http.StatusTooManyRequests {
			t.Errorf("fourth request = %d, want 429", statuses[3])
		}
	})

	t.Run("clients are limited independently", func(t *testing.T) {
		h := Chain(okHandler(), RateLimit(1, 1))

		drain := httptest.NewRequest(http.MethodGet, "/", nil)
		drain.RemoteAddr = "192.0.2.1:1234"
		h.ServeHTTP(httptest.NewRecorder(), drain)

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.RemoteAddr = "192.0.2.2:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, other)

		if rec.Code != http.StatusOK {
			t.Errorf("second client status = %d, want 200", rec.Code)
		}
	})

	t.Run("disabled at zero rate", func(t *testing.T) {
		h := Chain(okHandler(), RateLimit(0, 0))
		for i := 0; i < 20; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d status = %d with limiting disabled", i, rec.Code)
			}
		}
	})

	t.Run("one middleware instance shares the budget across handlers", func(t *testing.T) {
		limit := RateLimit(1, 1)
		a := Chain(okHandler(), limit)
		b := Chain(okHandler(), limit)

		first := httptest.NewRequest(http.MethodGet, "/a", nil)
		first.RemoteAddr = "192.0.2.3:1234"
		rec := httptest.NewRecorder()
		a.ServeHTTP(rec, first)
		if rec.Code != http.StatusOK {
			t.Fatalf("first request status = %d, want 200", rec.Code)
		}

		second := httptest.NewRequest(http.MethodGet, "/b", nil)
		second.RemoteAddr = "192.0.2.3:5678"
		rec = httptest.NewRecorder()
		b.ServeHTTP(rec, second)
		if rec.Code != http.StatusTooManyRequests {
			t.Errorf("second handler status = %d, want 429 from the shared budget", rec.Code)
		}
	})
}

func TestRouter_RateLimitSpansRoutes(t *testing.T) {
	manager := service.NewManager(service.NewRegistry(), service.ManagerConfig{
		ScanTimeout:    time.Minute,
		PairTimeout:    time.Minute,
		ProvisionDelay: 0,
	})
	t.Cleanup(manager.Close)

	router := NewRouter(&RouterConfig{
		Manager:   manager,
		Logger:    logger.Default(),
		RateLimit: 1,
		RateBurst: 1,
	})

	list := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	list.RemoteAddr = "10.0.0.9:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, list)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sessions status = %d, want 200", rec.Code)
	}

	// The same client's burst is spent; a different route must refuse.
	create := httptest.NewRequest(http.MethodPost, "/sessions/scan", nil)
	create.RemoteAddr = "10.0.0.9:1234"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, create)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("POST /sessions/scan status = %d, want 429 across routes", rec.Code)
	}

	// Health stays reachable regardless.
	health := httptest.NewRequest(http.MethodGet, "/health", nil)
	health.RemoteAddr = "10.0.0.9:1234"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, health)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	t.Run("allowed origin gets headers", func(t *testing.T) {
		h := Chain(okHandler(), CORS([]string{"https://app.example.com"}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("Allow-Origin = %q", got)
		}
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		h := Chain(okHandler(), CORS([]string{"https://app.example.com"}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		h := Chain(okHandler(), CORS([]string{"*"}))

		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", rec.Code)
		}
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := metric.NewRegistry()
	h := Chain(okHandler(), Metrics(m, "/sessions"))

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions", nil))
	}

	got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions", "200"))
	if got != 3 {
		t.Errorf("requests_total = %v, want 3", got)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.0.2.1:1234", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remoteAddr: "[::1]:8080", want: "::1"},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRouter_EndToEnd(t *testing.T) {
	manager := service.NewManager(service.NewRegistry(), service.ManagerConfig{
		ScanTimeout:    time.Minute,
		PairTimeout:    time.Minute,
		ProvisionDelay: 0,
	})
	t.Cleanup(manager.Close)

	router := NewRouter(&RouterConfig{
		Manager: manager,
		Metrics: metric.NewRegistry(),
		Logger:  logger.Default(),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/scan", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /sessions/scan status = %d, want 201", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "pairlink_http_requests_total") {
		t.Error("metrics output missing request counter")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope status = %d, want 404", rec.Code)
	}
}
