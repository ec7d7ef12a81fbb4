package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tableroom/tableroom/internal/api/handler"
	"github.com/tableroom/tableroom/internal/api/middleware"
	"github.com/tableroom/tableroom/internal/api/response"
	"github.com/tableroom/tableroom/internal/engine"
	"github.com/tableroom/tableroom/internal/services/identity"
	"github.com/tableroom/tableroom/internal/services/session"
	"github.com/tableroom/tableroom/internal/transport/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Registry          *engine.Registry
	IdentityService   *identity.Service
	SessionController *session.Controller
	HubManager        *sse.HubManager
	WebsocketHandler  http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	participantHandler := handler.NewParticipantHandler(cfg.IdentityService)
	roomHandler := handler.NewRoomHandler(cfg.SessionController, cfg.HubManager)

	identityMiddleware := middleware.Identity(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Identity routes (minting an identity needs none)
	api.HandleFunc("/participants", participantHandler.Create).Methods(http.MethodPost)

	participants := api.PathPrefix("/participants").Subrouter()
	participants.Use(identityMiddleware)
	participants.HandleFunc("/me", participantHandler.GetMe).Methods(http.MethodGet)

	// Room routes (all require a participant identity)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(identityMiddleware)
	rooms.HandleFunc("/{room_id}", roomHandler.GetSnapshot).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/events", roomHandler.Events).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/marker", roomHandler.SetMarker).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/token", roomHandler.SetToken).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/meditate", roomHandler.Meditate).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/end-turn", roomHandler.EndTurn).Methods(http.MethodPost)

	// Websocket endpoint carries its own identity handshake
	if cfg.WebsocketHandler != nil {
		r.Handle("/ws", cfg.WebsocketHandler)
	}

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler(cfg.Registry)).Methods(http.MethodGet)

	return r
}

func healthHandler(registry *engine.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status: "ok",
			Rooms:  registry.Len(),
		})
	}
}
