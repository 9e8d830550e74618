package domain

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session constraints.
const (
	MaxPhoneNumberLength = 32

	// SessionIDPrefix is the prefix for session IDs.
	SessionIDPrefix = "plss-"

	// sessionIDLength is plss- (5) + ULID (26).
	sessionIDLength = 31
)

// Session represents one pairing attempt: its identifier, connection
// state, authentication artifact, and expiry deadline.
type Session struct {
	// ID is the unique identifier for the session.
	// Format: plss-{ulid_lowercase}, 31 characters total. Immutable.
	ID string `json:"id"`

	// State is the current connection state.
	State State `json:"state"`

	// Artifact is the authentication artifact, fixed at creation.
	Artifact Artifact `json:"artifact"`

	// CreatedAt is the session creation timestamp (Unix milliseconds).
	// Immutable.
	CreatedAt int64 `json:"created_at"`

	// ExpiresAt is the deadline after which an unconfirmed session
	// auto-transitions to StateDisconnected (Unix milliseconds).
	// Set once at creation, never extended.
	ExpiresAt int64 `json:"expires_at"`
}

// GenerateSessionID generates a new session ID using ULID.
// The ULID combines a millisecond creation timestamp with a random
// suffix, so IDs are collision-resistant across rapid successive calls.
// Format: plss-{ulid_lowercase}, 31 characters total.
func GenerateSessionID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", ErrInternalServer.WithCause(err)
	}
	return SessionIDPrefix + strings.ToLower(id.String()), nil
}

// IsValidSessionID checks if a string is a valid session ID format.
// The ID is normalized to lowercase before validation.
func IsValidSessionID(id string) bool {
	id = strings.ToLower(id)

	if !strings.HasPrefix(id, SessionIDPrefix) {
		return false
	}
	if len(id) != sessionIDLength {
		return false
	}

	ulidPart := strings.ToUpper(id[len(SessionIDPrefix):])
	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// Validate validates the session fields against constraints.
func (s *Session) Validate() error {
	var violations []string

	if s.ID == "" {
		violations = append(violations, "id is required")
	}
	if s.Artifact == nil {
		violations = append(violations, "artifact is required")
	}
	if pc, ok := s.Artifact.(PairingCode); ok {
		if pc.PhoneNumber == "" {
			violations = append(violations, "pairing artifact requires a phone number")
		}
		if len(pc.PhoneNumber) > MaxPhoneNumberLength {
			violations = append(violations, "phone_number exceeds 32 characters")
		}
	}

	if len(violations) > 0 {
		return ErrSessionValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}

// Expired returns true if the deadline has passed.
func (s *Session) Expired() bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return time.Now().UnixMilli() > s.ExpiresAt
}

// Remaining returns the time left until the deadline.
// Returns 0 if the deadline has passed or none is set.
func (s *Session) Remaining() time.Duration {
	if s.ExpiresAt == 0 {
		return 0
	}
	remaining := s.ExpiresAt - time.Now().UnixMilli()
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// SetDeadline sets the expiry deadline from a timeout duration.
func (s *Session) SetDeadline(timeout time.Duration) {
	s.ExpiresAt = time.Now().Add(timeout).UnixMilli()
}

// Clone creates a copy of the session. Artifact variants are value
// types, so a shallow copy is a full copy.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}

// CreatedAtTime returns CreatedAt as time.Time.
func (s *Session) CreatedAtTime() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

// ExpiresAtTime returns ExpiresAt as time.Time.
func (s *Session) ExpiresAtTime() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.ExpiresAt)
}
