package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tableroom/tableroom/internal/dependencies/mocks"
	"github.com/tableroom/tableroom/internal/model"
	"github.com/tableroom/tableroom/internal/storage/memory"
	"github.com/tableroom/tableroom/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRegister() {
	s.random.QueueString("abc123")

	identity, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(model.ParticipantID("p_abc123"), identity.ID)
	s.Equal("Alice", identity.DisplayName)
	s.Equal(s.clock.Now(), identity.CreatedAt)
	s.Equal(s.clock.Now(), identity.LastSeenAt)

	stored, err := s.storage.GetIdentity(s.ctx, identity.ID)
	s.Require().NoError(err)
	s.Equal(identity.DisplayName, stored.DisplayName)
}

func (s *ServiceSuite) TestRegisterTrimsDisplayName() {
	s.random.QueueString("abc123")

	identity, err := s.service.Register(s.ctx, "  Alice  ")
	s.Require().NoError(err)
	s.Equal("Alice", identity.DisplayName)
}

func (s *ServiceSuite) TestRegisterBlankDisplayName() {
	_, err := s.service.Register(s.ctx, "   ")
	s.ErrorIs(err, ErrBlankDisplayName)
}

func (s *ServiceSuite) TestResolve() {
	s.random.QueueString("abc123")
	identity, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)

	resolved, err := s.service.Resolve(s.ctx, identity.ID)
	s.Require().NoError(err)
	s.Equal(identity.ID, resolved.ID)
}

func (s *ServiceSuite) TestResolveUnknown() {
	_, err := s.service.Resolve(s.ctx, "p_nope")
	s.ErrorIs(err, model.ErrIdentityNotFound)
}

func (s *ServiceSuite) TestRememberUpdatesLastSeen() {
	s.random.QueueString("abc123")
	identity, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	s.Require().NoError(s.service.Remember(s.ctx, identity.ID, "Alice the Second"))

	stored, err := s.storage.GetIdentity(s.ctx, identity.ID)
	s.Require().NoError(err)
	s.Equal("Alice the Second", stored.DisplayName)
	s.Equal(s.clock.Now(), stored.LastSeenAt)
	s.Equal(identity.CreatedAt, stored.CreatedAt)
}

func (s *ServiceSuite) TestRememberKeepsNameWhenBlank() {
	s.random.QueueString("abc123")
	identity, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Remember(s.ctx, identity.ID, "  "))

	stored, err := s.storage.GetIdentity(s.ctx, identity.ID)
	s.Require().NoError(err)
	s.Equal("Alice", stored.DisplayName)
}

func (s *ServiceSuite) TestRememberUnknownCreatesRecord() {
	err := s.service.Remember(s.ctx, "p_fresh", "Bob")
	s.Require().NoError(err)

	stored, err := s.storage.GetIdentity(s.ctx, "p_fresh")
	s.Require().NoError(err)
	s.Equal("Bob", stored.DisplayName)
	s.Equal(s.clock.Now(), stored.CreatedAt)
}

func (s *ServiceSuite) TestForget() {
	s.random.QueueString("abc123")
	identity, err := s.service.Register(s.ctx, "Alice")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Forget(s.ctx, identity.ID))

	_, err = s.storage.GetIdentity(s.ctx, identity.ID)
	s.ErrorIs(err, model.ErrIdentityNotFound)
}
