package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tableroom/tableroom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndGetIdentity() {
	identity := &model.Identity{
		ID:          "p-1",
		DisplayName: "Alice",
		CreatedAt:   time.Now(),
	}

	err := s.storage.SaveIdentity(s.ctx, identity)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetIdentity(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Equal(identity.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetIdentityNotFound() {
	_, err := s.storage.GetIdentity(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *StorageSuite) TestSaveOverwrites() {
	_ = s.storage.SaveIdentity(s.ctx, &model.Identity{ID: "p-1", DisplayName: "Alice"})
	_ = s.storage.SaveIdentity(s.ctx, &model.Identity{ID: "p-1", DisplayName: "Alicia"})

	retrieved, err := s.storage.GetIdentity(s.ctx, "p-1")
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.DisplayName)
}

func (s *StorageSuite) TestDeleteIdentity() {
	_ = s.storage.SaveIdentity(s.ctx, &model.Identity{ID: "p-1", DisplayName: "Alice"})

	err := s.storage.DeleteIdentity(s.ctx, "p-1")
	s.Require().NoError(err)

	_, err = s.storage.GetIdentity(s.ctx, "p-1")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}
