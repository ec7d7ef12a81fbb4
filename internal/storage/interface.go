package storage

import (
	"context"

	"github.com/tableroom/tableroom/internal/model"
)

// Storage defines the interface for identity persistence. Room state is
// deliberately absent: rooms live only in memory and die with the process.
type Storage interface {
	SaveIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, id model.ParticipantID) (*model.Identity, error)
	DeleteIdentity(ctx context.Context, id model.ParticipantID) error
}
