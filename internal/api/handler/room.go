package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tableroom/tableroom/internal/api/middleware"
	"github.com/tableroom/tableroom/internal/api/request"
	"github.com/tableroom/tableroom/internal/api/response"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/session"
	"github.com/tableroom/tableroom/internal/transport/sse"
)

// RoomHandler handles room command and query endpoints. Commands follow the
// silent rejection rule: an accepted mutation returns the fresh snapshot, a
// rejected one returns 204 with no body and no hint of the reason.
type RoomHandler struct {
	controller *session.Controller
	hubManager *sse.HubManager
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(controller *session.Controller, hubManager *sse.HubManager) *RoomHandler {
	return &RoomHandler{
		controller: controller,
		hubManager: hubManager,
	}
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = middleware.MustGetParticipant(r.Context()).DisplayName
	}

	h.command(w, r, session.Command{
		Action:      session.ActionJoin,
		RoomID:      roomID(r),
		DisplayName: displayName,
	})
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, session.Command{
		Action: session.ActionLeave,
		RoomID: roomID(r),
	})
}

// SetMarker handles POST /api/v1/rooms/{room_id}/marker
func (h *RoomHandler) SetMarker(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, session.ActionSetMarker)
}

// SetToken handles POST /api/v1/rooms/{room_id}/token
func (h *RoomHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	h.place(w, r, session.ActionSetToken)
}

// Meditate handles POST /api/v1/rooms/{room_id}/meditate
func (h *RoomHandler) Meditate(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, session.Command{
		Action: session.ActionMeditate,
		RoomID: roomID(r),
	})
}

// EndTurn handles POST /api/v1/rooms/{room_id}/end-turn
func (h *RoomHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, session.Command{
		Action: session.ActionEndTurn,
		RoomID: roomID(r),
	})
}

// GetSnapshot handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.controller.Snapshot(roomID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot)
}

// Events handles GET /api/v1/rooms/{room_id}/events as an SSE stream
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	hub := h.hubManager.GetOrCreateHub(roomID(r))
	sse.ServeSSE(w, r, hub, participant.ID)
}

func (h *RoomHandler) place(w http.ResponseWriter, r *http.Request, action session.Action) {
	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.command(w, r, session.Command{
		Action: action,
		RoomID: roomID(r),
		Index:  model.BoardIndex(req.Index),
	})
}

func (h *RoomHandler) command(w http.ResponseWriter, r *http.Request, cmd session.Command) {
	participant := middleware.MustGetParticipant(r.Context())

	res := h.controller.HandleCommand(r.Context(), participant.ID, cmd)
	if !res.Accepted || res.Snapshot == nil {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, res.Snapshot)
}

func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["room_id"])
}
