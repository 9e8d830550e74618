package service

import (
	"sync"
	"time"

	"github.com/yndnr/pairlink-go/internal/core/domain"
	"github.com/yndnr/pairlink-go/internal/telemetry/logger"
	"github.com/yndnr/pairlink-go/internal/telemetry/metric"
	"github.com/yndnr/pairlink-go/pkg/artifact"
)

// Registry holds the set of live pairing sessions and owns their
// expiry timers exclusively.
//
// Every session gets exactly one one-shot timer at creation. The timer
// transitions the session to StateDisconnected only if it is still
// StateConnecting at fire time; Delete stops the timer before removing
// the record, so a timer can never touch a removed session.
//
// A single registry-wide mutex serializes all mutations. The workload
// is low-volume and latency-insensitive; per-session locking would buy
// nothing and complicate the ordering and timer bookkeeping.
type Registry struct {
	mu      sync.Mutex
	records map[string]*record
	order   []string // session IDs in creation order, oldest first

	gen     *artifact.Generator
	log     logger.Logger
	metrics *metric.Registry
}

// record pairs a session with its timer cancellation handle.
type record struct {
	session *domain.Session
	timer   *time.Timer
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry)

// WithGenerator sets the artifact generator.
func WithGenerator(g *artifact.Generator) RegistryOption {
	return func(r *Registry) {
		if g != nil {
			r.gen = g
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics sets the metrics registry. Nil disables recording.
func WithMetrics(m *metric.Registry) RegistryOption {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty session registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		records: make(map[string]*record),
		gen:     artifact.New(),
		log:     logger.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create allocates a new session in StateConnecting with a freshly
// generated ID and an artifact of the requested kind, and schedules
// its expiry timer. phoneNumber is only used for the pairing kind.
func (r *Registry) Create(kind domain.ArtifactKind, phoneNumber string, timeout time.Duration) (*domain.Session, error) {
	var art domain.Artifact
	switch kind {
	case domain.ArtifactScan:
		art = domain.ScannableCode{Payload: r.gen.ScannablePayload()}
	case domain.ArtifactPairing:
		art = domain.PairingCode{Code: r.gen.PairingCode(), PhoneNumber: phoneNumber}
	default:
		return nil, domain.ErrInvalidArgument.WithDetails("unknown artifact kind: " + string(kind))
	}

	id, err := domain.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        id,
		State:     domain.StateConnecting,
		Artifact:  art,
		CreatedAt: time.Now().UnixMilli(),
	}
	session.SetDeadline(timeout)

	if err := session.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, exists := r.records[id]; exists {
		r.mu.Unlock()
		return nil, domain.ErrSessionConflict.WithDetails("id " + id)
	}

	rec := &record{session: session}
	rec.timer = time.AfterFunc(timeout, func() { r.expire(id) })

	r.records[id] = rec
	r.order = append(r.order, id)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SessionsCreated.WithLabelValues(string(kind)).Inc()
		r.metrics.SessionsActive.Inc()
	}
	r.log.Info("session created",
		"session_id", id,
		"kind", string(kind),
		"expires_at", session.ExpiresAtTime(),
	)

	return session.Clone(), nil
}

// expire is the timer callback. It disconnects the session only if it
// is still connecting; a session confirmed before the timer fired is
// left untouched, as is a session that was deleted in the meantime.
func (r *Registry) expire(id string) {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok || rec.session.State != domain.StateConnecting {
		r.mu.Unlock()
		return
	}
	rec.session.State = domain.StateDisconnected
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SessionsExpired.Inc()
	}
	r.log.Info("session expired", "session_id", id)
}

// Advance transitions a connecting session to StateConnected and stops
// its timer. Advancing a session that is already connected or
// disconnected is a no-op returning the unchanged record.
func (r *Registry) Advance(id string) (*domain.Session, error) {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return nil, domain.ErrSessionNotFound.WithDetails("id " + id)
	}

	confirmed := false
	if rec.session.State == domain.StateConnecting {
		rec.session.State = domain.StateConnected
		rec.timer.Stop()
		confirmed = true
	}
	clone := rec.session.Clone()
	r.mu.Unlock()

	if confirmed {
		if r.metrics != nil {
			r.metrics.SessionsConfirmed.Inc()
		}
		r.log.Info("session confirmed", "session_id", id)
	}

	return clone, nil
}

// Delete removes a session record and cancels its pending timer.
// A second delete of the same ID fails with not-found.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return domain.ErrSessionNotFound.WithDetails("id " + id)
	}

	rec.timer.Stop()
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SessionsDeleted.Inc()
		r.metrics.SessionsActive.Dec()
	}
	r.log.Info("session deleted", "session_id", id)

	return nil
}

// Get retrieves a session by ID.
func (r *Registry) Get(id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrSessionNotFound.WithDetails("id " + id)
	}
	return rec.session.Clone(), nil
}

// List returns all live sessions, most recently created first.
// Creation order is the only ordering guarantee.
func (r *Registry) List() []*domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := make([]*domain.Session, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if rec, ok := r.records[r.order[i]]; ok {
			sessions = append(sessions, rec.session.Clone())
		}
	}
	return sessions
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Close stops all pending timers. Records are left in place; Close is
// for process shutdown, not session teardown.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		rec.timer.Stop()
	}
}
