package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yndnr/pairlink-go/internal/core/domain"
)

// testManager returns a manager with no provisioning delay and short
// timeouts suitable for tests.
func testManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(NewRegistry(), ManagerConfig{
		ScanTimeout:    time.Minute,
		PairTimeout:    time.Minute,
		ProvisionDelay: 0,
	})
	t.Cleanup(m.Close)
	return m
}

func TestManager_CreateScanSession(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	s, err := m.CreateScanSession(ctx)
	if err != nil {
		t.Fatalf("CreateScanSession() error = %v", err)
	}
	if s.Artifact.Kind() != domain.ArtifactScan {
		t.Errorf("Kind() = %v, want %v", s.Artifact.Kind(), domain.ArtifactScan)
	}
	if s.State != domain.StateConnecting {
		t.Errorf("State = %v, want %v", s.State, domain.StateConnecting)
	}
}

func TestManager_CreatePairingSession(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		phone   string
		wantErr *domain.DomainError
	}{
		{name: "valid", phone: "+15551230003"},
		{name: "surrounding whitespace trimmed", phone: "  +15551230004  "},
		{name: "empty", phone: "", wantErr: domain.ErrMissingPhoneNumber},
		{name: "whitespace only", phone: "   ", wantErr: domain.ErrMissingPhoneNumber},
		{name: "too long", phone: "+123456789012345678901234567890123", wantErr: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := m.CreatePairingSession(ctx, tt.phone)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreatePairingSession() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreatePairingSession() error = %v", err)
			}
			pc := s.Artifact.(domain.PairingCode)
			if pc.PhoneNumber == "" || pc.PhoneNumber[0] != '+' {
				t.Errorf("PhoneNumber = %q, want trimmed E.164-style number", pc.PhoneNumber)
			}
		})
	}
}

func TestManager_ProvisionDelayHonorsContext(t *testing.T) {
	m := NewManager(NewRegistry(), ManagerConfig{
		ScanTimeout:    time.Minute,
		PairTimeout:    time.Minute,
		ProvisionDelay: 5 * time.Second,
	})
	t.Cleanup(m.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.CreateScanSession(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("CreateScanSession() error = %v, want %v", err, context.DeadlineExceeded)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, provisioning delay was not interrupted", elapsed)
	}

	// No half-created session may remain.
	if got := m.ListActive(context.Background()); len(got) != 0 {
		t.Errorf("ListActive() = %d sessions after cancelled create, want 0", len(got))
	}
}

func TestManager_ConfirmAndRemove(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	s, err := m.CreateScanSession(ctx)
	if err != nil {
		t.Fatalf("CreateScanSession() error = %v", err)
	}

	got, err := m.Confirm(ctx, s.ID)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if got.State != domain.StateConnected {
		t.Errorf("State = %v, want %v", got.State, domain.StateConnected)
	}

	if err := m.Remove(ctx, s.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := m.Get(ctx, s.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get() after remove error = %v, want %v", err, domain.ErrSessionNotFound)
	}
}

func TestManager_BlankID(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	if _, err := m.Confirm(ctx, ""); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Confirm(\"\") error = %v, want %v", err, domain.ErrMissingArgument)
	}
	if err := m.Remove(ctx, "  "); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Remove(blank) error = %v, want %v", err, domain.ErrMissingArgument)
	}
	if _, err := m.Get(ctx, ""); !errors.Is(err, domain.ErrMissingArgument) {
		t.Errorf("Get(\"\") error = %v, want %v", err, domain.ErrMissingArgument)
	}
}

func TestManager_ListActiveOrdering(t *testing.T) {
	m := testManager(t)
	ctx := context.Background()

	first, _ := m.CreateScanSession(ctx)
	second, _ := m.CreatePairingSession(ctx, "+15551230005")
	third, _ := m.CreateScanSession(ctx)

	got := m.ListActive(ctx)
	if len(got) != 3 {
		t.Fatalf("ListActive() = %d sessions, want 3", len(got))
	}
	wantOrder := []string{third.ID, second.ID, first.ID}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("ListActive()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(NewRegistry(), ManagerConfig{})
	t.Cleanup(m.Close)

	def := DefaultManagerConfig()
	if m.cfg.ScanTimeout != def.ScanTimeout {
		t.Errorf("ScanTimeout = %v, want %v", m.cfg.ScanTimeout, def.ScanTimeout)
	}
	if m.cfg.PairTimeout != def.PairTimeout {
		t.Errorf("PairTimeout = %v, want %v", m.cfg.PairTimeout, def.PairTimeout)
	}
}
