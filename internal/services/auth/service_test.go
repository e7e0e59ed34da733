package auth

import (
	"context"
	"testing"
	"time"

	"github.com/pkalnins/tycoon-go/internal/dependencies/mocks"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/storage/memory"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
}

func (s *ServiceSuite) TestCreateGuestUser() {
	session, err := s.service.CreateGuestUser(s.ctx, "Anna", "cat")

	s.Require().NoError(err)
	s.NotEmpty(session.Token)
	s.True(session.User.IsGuest)
	s.Equal("Anna", session.User.DisplayName)

	stored, err := s.storage.GetUser(s.ctx, session.UserID)
	s.Require().NoError(err)
	s.Equal("Anna", stored.DisplayName)
}

func (s *ServiceSuite) TestRegisterAndLogin() {
	session, err := s.service.RegisterUser(s.ctx, "anna", "secret123", "Anna", "")
	s.Require().NoError(err)
	s.False(session.User.IsGuest)

	login, err := s.service.Login(s.ctx, "anna", "secret123")
	s.Require().NoError(err)
	s.Equal(session.UserID, login.UserID)
	s.NotEqual(session.Token, login.Token)
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.RegisterUser(s.ctx, "anna", "secret123", "Anna", "")
	s.Require().NoError(err)

	_, err = s.service.RegisterUser(s.ctx, "anna", "other", "Anna Two", "")

	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.RegisterUser(s.ctx, "anna", "secret123", "Anna", "")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "anna", "wrong")

	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "secret123")

	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	session, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	got, err := s.service.ValidateSession(session.Token)

	s.Require().NoError(err)
	s.Equal(session.UserID, got.UserID)
}

func (s *ServiceSuite) TestValidateUnknownToken() {
	_, err := s.service.ValidateSession("sess_bogus")

	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetUser() {
	session, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	user, err := s.service.GetUser(session.Token)

	s.Require().NoError(err)
	s.Equal(session.UserID, user.ID)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	fresh, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)
	stale := fresh
	fresh2, err := s.service.CreateGuestUser(s.ctx, "Bert", "")
	s.Require().NoError(err)

	s.service.CleanExpiredSessions()

	_, err = s.service.ValidateSession(stale.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh2.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestGuestSessionRegisteredUserLookupIsSeparate() {
	_, err := s.service.CreateGuestUser(s.ctx, "Anna", "")
	s.Require().NoError(err)

	_, err = s.storage.GetRegisteredUserByUsername(s.ctx, "Anna")
	s.ErrorIs(err, model.ErrUserNotFound)
}
