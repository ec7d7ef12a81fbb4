package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tableroom/tableroom/internal/api/apierr"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/services/identity"
)

type contextKey string

const participantContextKey contextKey = "participant"

// Identity binds requests to a participant identity. The bearer token is the
// participant id minted by POST /participants; this is connection identity,
// not authentication.
func Identity(identities *identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			participant, err := identities.Resolve(r.Context(), model.ParticipantID(token))
			if err != nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), participantContextKey, participant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the participant token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to query parameter for EventSource clients, which cannot
	// set headers.
	return r.URL.Query().Get("participant_id")
}

// GetParticipant returns the identity from the request context
func GetParticipant(ctx context.Context) *model.Identity {
	participant, _ := ctx.Value(participantContextKey).(*model.Identity)
	return participant
}

// MustGetParticipant returns the identity or panics
func MustGetParticipant(ctx context.Context) *model.Identity {
	participant := GetParticipant(ctx)
	if participant == nil {
		panic("no participant in context - identity middleware not applied?")
	}
	return participant
}
