package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tableroom/tableroom/internal/api/middleware"
	"github.com/tableroom/tableroom/internal/api/request"
	"github.com/tableroom/tableroom/internal/api/response"
	"github.com/tableroom/tableroom/internal/services/identity"
)

// ParticipantHandler handles identity endpoints
type ParticipantHandler struct {
	identities *identity.Service
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(identities *identity.Service) *ParticipantHandler {
	return &ParticipantHandler{
		identities: identities,
	}
}

// Create handles POST /api/v1/participants
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	participant, err := h.identities.Register(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromIdentity(participant))
}

// GetMe handles GET /api/v1/participants/me
func (h *ParticipantHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	response.JSON(w, http.StatusOK, response.ParticipantFromIdentity(participant))
}
