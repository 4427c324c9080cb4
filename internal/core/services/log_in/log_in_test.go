package login

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = "test@test.test"
	RAW_PASSWORD = user.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	SessionIssuer  *user.FakeSessionIssuer
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.SessionIssuer = user.NewFakeSessionIssuer()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		suite.SessionIssuer,
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: RAW_PASSWORD},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.NotEqual(user.SessionToken(""), result.Token)
	assert.Equal(u.ID, result.User.ID)

	claims, err := s.SessionIssuer.Verify(result.Token)
	assert.Nil(err)
	assert.Equal(u.ID, claims.UserID)
}

func (s *testSuite) TestInvalidCredentialsIfWrongPassword() {
	s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: user.RawPassword("wrong-password")},
	)
	s.True(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) TestInvalidCredentialsIfUserDoesNotExist() {
	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("unknown@test.test"), Password: RAW_PASSWORD},
	)
	s.True(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(RAW_PASSWORD)
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			Name:         "Test",
			PasswordHash: passwordHash,
			Role:         user.RoleUser,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
