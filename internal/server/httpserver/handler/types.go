package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses
// Prometheus text format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// CreatePairingSessionRequest is the request body for POST /sessions/pairing.
type CreatePairingSessionRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// ArtifactResponse represents a session artifact in API responses.
// Exactly one of Payload or Code is set, per Kind.
type ArtifactResponse struct {
	Kind        string `json:"kind"`
	Payload     string `json:"payload,omitempty"`
	Code        string `json:"code,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// SessionResponse represents a session in API responses.
type SessionResponse struct {
	ID        string           `json:"id"`
	State     string           `json:"state"`
	Artifact  ArtifactResponse `json:"artifact"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// ListSessionsResponse is the response body for GET /sessions.
type ListSessionsResponse struct {
	Items []SessionResponse `json:"items"`
	Total int               `json:"total"`
}
