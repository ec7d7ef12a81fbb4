package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tableroom/tableroom/internal/dependencies/clock"
	"github.com/tableroom/tableroom/internal/dependencies/random"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/storage"
)

const (
	participantIDPrefix   = "p_"
	participantIDLength   = 22
	participantIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrBlankDisplayName = errors.New("display name must not be blank")

// Service manages participant identities across connections
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new identity service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "identity_service")),
	}
}

// Register mints a new participant identity
func (s *Service) Register(ctx context.Context, displayName string) (*model.Identity, error) {
	displayName = model.NormalizeDisplayName(displayName)
	if displayName == "" {
		return nil, ErrBlankDisplayName
	}

	now := s.clock.Now()
	identity := &model.Identity{
		ID:          model.ParticipantID(participantIDPrefix + s.random.String(participantIDLength, participantIDAlphabet)),
		DisplayName: displayName,
		CreatedAt:   now,
		LastSeenAt:  now,
	}

	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("registered participant",
		slog.String("participant_id", string(identity.ID)),
		slog.String("display_name", identity.DisplayName))

	return identity, nil
}

// Resolve looks up an existing identity by participant ID
func (s *Service) Resolve(ctx context.Context, id model.ParticipantID) (*model.Identity, error) {
	return s.storage.GetIdentity(ctx, id)
}

// Remember refreshes an identity's last-seen time and display name.
// Unknown participants are recorded as new identities so a reconnecting
// client keeps working even after its record has expired.
func (s *Service) Remember(ctx context.Context, id model.ParticipantID, displayName string) error {
	displayName = model.NormalizeDisplayName(displayName)
	now := s.clock.Now()

	identity, err := s.storage.GetIdentity(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrIdentityNotFound) {
			return err
		}
		identity = &model.Identity{
			ID:        id,
			CreatedAt: now,
		}
	}

	if displayName != "" {
		identity.DisplayName = displayName
	}
	identity.LastSeenAt = now

	return s.storage.SaveIdentity(ctx, identity)
}

// Forget removes a stored identity
func (s *Service) Forget(ctx context.Context, id model.ParticipantID) error {
	return s.storage.DeleteIdentity(ctx, id)
}
