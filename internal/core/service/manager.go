package service

import (
	"context"
	"strings"
	"time"

	"github.com/yndnr/pairlink-go/internal/core/domain"
	"github.com/yndnr/pairlink-go/internal/telemetry/logger"
)

// ManagerConfig holds the lifecycle timeouts for the Manager facade.
type ManagerConfig struct {
	// ScanTimeout is the deadline for scannable-code sessions.
	ScanTimeout time.Duration

	// PairTimeout is the deadline for pairing-code sessions. Typing a
	// code takes longer than scanning, so the default is more generous.
	PairTimeout time.Duration

	// ProvisionDelay simulates the channel provisioning round trip that
	// precedes session creation. Zero disables the delay.
	ProvisionDelay time.Duration
}

// DefaultManagerConfig returns the stock lifecycle timeouts.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		ScanTimeout:    30 * time.Second,
		PairTimeout:    60 * time.Second,
		ProvisionDelay: 150 * time.Millisecond,
	}
}

// Manager is the pairing-session lifecycle facade. It validates input,
// applies the per-kind timeouts, and delegates bookkeeping to the
// Registry.
type Manager struct {
	registry *Registry
	cfg      ManagerConfig
}

// NewManager creates a Manager on top of an existing registry.
// Zero-valued config fields fall back to the defaults.
func NewManager(registry *Registry, cfg ManagerConfig) *Manager {
	def := DefaultManagerConfig()
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = def.ScanTimeout
	}
	if cfg.PairTimeout <= 0 {
		cfg.PairTimeout = def.PairTimeout
	}
	if cfg.ProvisionDelay < 0 {
		cfg.ProvisionDelay = 0
	}

	return &Manager{
		registry: registry,
		cfg:      cfg,
	}
}

// CreateScanSession provisions a channel and opens a session carrying
// a scannable code artifact.
func (m *Manager) CreateScanSession(ctx context.Context) (*domain.Session, error) {
	if err := m.provision(ctx); err != nil {
		return nil, err
	}

	session, err := m.registry.Create(domain.ArtifactScan, "", m.cfg.ScanTimeout)
	if err != nil {
		logger.L(ctx).Error("scan session create failed", "error", err)
		return nil, err
	}
	return session, nil
}

// CreatePairingSession provisions a channel and opens a session
// carrying a pairing code bound to the given phone number.
func (m *Manager) CreatePairingSession(ctx context.Context, phoneNumber string) (*domain.Session, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, domain.ErrMissingPhoneNumber
	}
	if len(phoneNumber) > domain.MaxPhoneNumberLength {
		return nil, domain.ErrInvalidArgument.WithDetails("phone_number exceeds 32 characters")
	}

	if err := m.provision(ctx); err != nil {
		return nil, err
	}

	session, err := m.registry.Create(domain.ArtifactPairing, phoneNumber, m.cfg.PairTimeout)
	if err != nil {
		logger.L(ctx).Error("pairing session create failed", "error", err)
		return nil, err
	}
	return session, nil
}

// Confirm marks a session as connected. Confirming a session that has
// already connected or disconnected leaves it unchanged; the caller
// gets the current record back and can inspect its state.
func (m *Manager) Confirm(ctx context.Context, id string) (*domain.Session, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	session, err := m.registry.Advance(id)
	if err != nil {
		logger.L(ctx).Warn("session confirm failed", "session_id", id, "error", err)
		return nil, err
	}
	return session, nil
}

// Remove deletes a session and cancels its expiry timer.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := m.registry.Delete(id); err != nil {
		logger.L(ctx).Warn("session remove failed", "session_id", id, "error", err)
		return err
	}
	return nil
}

// Get retrieves a session by ID.
func (m *Manager) Get(_ context.Context, id string) (*domain.Session, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return m.registry.Get(id)
}

// ListActive returns all live sessions, most recently created first.
func (m *Manager) ListActive(_ context.Context) []*domain.Session {
	return m.registry.List()
}

// Close stops all pending session timers.
func (m *Manager) Close() {
	m.registry.Close()
}

// provision blocks for the configured provisioning delay, honoring
// context cancellation.
func (m *Manager) provision(ctx context.Context) error {
	if m.cfg.ProvisionDelay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(m.cfg.ProvisionDelay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrMissingArgument.WithDetails("session id is required")
	}
	return nil
}
