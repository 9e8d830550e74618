package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/yndnr/pairlink-go/internal/core/domain"
)

// handleCreateScanSession handles POST /sessions/scan.
func (h *Handler) handleCreateScanSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.CreateScanSession(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// handleCreatePairingSession handles POST /sessions/pairing.
func (h *Handler) handleCreatePairingSession(w http.ResponseWriter, r *http.Request) {
	var req CreatePairingSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrBadRequest.Code, "invalid request body", nil)
		return
	}

	session, err := h.manager.CreatePairingSession(r.Context(), req.PhoneNumber)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// handleGetSession handles GET /sessions/{id}.
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	session, err := h.manager.Get(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// handleConfirmSession handles POST /sessions/{id}/confirm.
func (h *Handler) handleConfirmSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	session, err := h.manager.Confirm(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// handleDeleteSession handles DELETE /sessions/{id}.
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	if err := h.manager.Remove(r.Context(), sessionID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]bool{"success": true})
}

// handleListSessions handles GET /sessions.
func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.manager.ListActive(r.Context())

	items := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = sessionToResponse(s)
	}

	h.writeJSON(w, r, http.StatusOK, ListSessionsResponse{
		Items: items,
		Total: len(items),
	})
}

// sessionToResponse converts a domain.Session to a SessionResponse.
func sessionToResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		State:     s.State.String(),
		CreatedAt: time.UnixMilli(s.CreatedAt),
		ExpiresAt: time.UnixMilli(s.ExpiresAt),
	}

	switch art := s.Artifact.(type) {
	case domain.ScannableCode:
		resp.Artifact = ArtifactResponse{
			Kind:    string(domain.ArtifactScan),
			Payload: art.Payload,
		}
	case domain.PairingCode:
		resp.Artifact = ArtifactResponse{
			Kind:        string(domain.ArtifactPairing),
			Code:        art.Code,
			PhoneNumber: art.PhoneNumber,
		}
	}

	return resp
}
