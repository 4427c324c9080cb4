package confirmpasswordreset

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/logging"
	uow "gatekeeper/internal/core/domain/unit_of_work"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL           = "test@test.test"
	SECRET          = user.RawResetSecret("test-reset-secret")
	OLD_PASSWORD    = user.RawPassword("old-password")
	NEW_PASSWORD    = user.RawPassword("new-password")
	VALID_DURATION  = time.Hour
	UNKNOWN_USER_ID = user.ID(4040)
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                *logging.FakeLogger
	UnitOfWork            *uow.FakeUnitOfWork
	PasswordHasher        *user.FakePasswordHasher
	PasswordChangedSender *user.FakePasswordChangedSender
	Service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.PasswordChangedSender = user.NewFakePasswordChangedSender()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.UnitOfWork.Context.UserRepository,
		suite.PasswordHasher,
		suite.PasswordChangedSender,
		VALID_DURATION,
		func() time.Time { return NOW },
	)
}

func TestConfirmPasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()
	s.createResetToken(u, NOW)

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)

	assert := s.Require()
	assert.Nil(err)
	assert.True(s.UnitOfWork.Context.WasCommitCalled)

	updated, err := s.UnitOfWork.Context.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(NEW_PASSWORD, updated.PasswordHash))
	assert.False(s.PasswordHasher.ValidatePassword(OLD_PASSWORD, updated.PasswordHash))

	assert.Equal(0, s.UnitOfWork.Context.ResetTokenRepository.TokenCount())
	assert.Equal(1, s.PasswordChangedSender.SentCount())
}

func (s *testSuite) TestSecondConfirmFails() {
	u := s.createUser()
	s.createResetToken(u, NOW)

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)
	s.Require().Nil(err)

	_, err = s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: user.RawPassword("yet-another")},
	)
	s.True(errors.Is(err, user.ErrInvalidOrExpiredResetToken))
}

func (s *testSuite) TestWrongSecretBurnsToken() {
	u := s.createUser()
	s.createResetToken(u, NOW)

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: user.RawResetSecret("tampered"), NewPassword: NEW_PASSWORD},
	)

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidOrExpiredResetToken))
	// No retry window: one failed attempt destroys the token.
	assert.Equal(0, s.UnitOfWork.Context.ResetTokenRepository.TokenCount())

	unchanged, err := s.UnitOfWork.Context.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(OLD_PASSWORD, unchanged.PasswordHash))
	assert.Equal(0, s.PasswordChangedSender.SentCount())
}

func (s *testSuite) TestExpiredTokenFailsWithCorrectSecret() {
	u := s.createUser()
	s.createResetToken(u, NOW.Add(-VALID_DURATION-time.Minute))

	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)

	s.True(errors.Is(err, user.ErrInvalidOrExpiredResetToken))
	s.Equal(0, s.UnitOfWork.Context.ResetTokenRepository.TokenCount())
}

// consumedTokenRepository serves the read but reports that the delete
// matched no rows, as happens when a concurrent attempt or a newer reset
// request removes the row between our read and our delete.
type consumedTokenRepository struct {
	*user.FakeResetTokenRepository
}

func (r *consumedTokenRepository) DeleteByUserID(ctx context.Context, userID user.ID) (int64, error) {
	return 0, nil
}

type consumedTokenUowContext struct {
	*uow.FakeUnitOfWorkContext
	tokens user.ResetTokenRepository
}

func (c *consumedTokenUowContext) ResetTokens() user.ResetTokenRepository {
	return c.tokens
}

type consumedTokenUnitOfWork struct {
	context *consumedTokenUowContext
}

func (u *consumedTokenUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	return u.context, nil
}

func (s *testSuite) TestTokenDeletedByConcurrentAttemptIsRejected() {
	u := s.createUser()
	s.createResetToken(u, NOW)

	uowContext := &consumedTokenUowContext{
		FakeUnitOfWorkContext: s.UnitOfWork.Context,
		tokens:                &consumedTokenRepository{s.UnitOfWork.Context.ResetTokenRepository},
	}
	service := New(
		s.Logger,
		&consumedTokenUnitOfWork{context: uowContext},
		s.UnitOfWork.Context.UserRepository,
		s.PasswordHasher,
		s.PasswordChangedSender,
		VALID_DURATION,
		func() time.Time { return NOW },
	)

	_, err := service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)

	assert := s.Require()
	assert.True(errors.Is(err, user.ErrInvalidOrExpiredResetToken))
	assert.True(uowContext.WasCommitCalled)

	unchanged, err := s.UnitOfWork.Context.UserRepository.GetByID(context.Background(), u.ID)
	assert.Nil(err)
	assert.True(s.PasswordHasher.ValidatePassword(OLD_PASSWORD, unchanged.PasswordHash))
	assert.Equal(0, s.PasswordChangedSender.SentCount())
}

func (s *testSuite) TestErrorIfUserDoesNotExist() {
	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: UNKNOWN_USER_ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)
	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (s *testSuite) TestErrorIfNoTokenExists() {
	u := s.createUser()
	_, err := s.Service.Run(
		context.Background(),
		Input{UserID: u.ID, Secret: SECRET, NewPassword: NEW_PASSWORD},
	)
	s.True(errors.Is(err, user.ErrInvalidOrExpiredResetToken))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	passwordHash, err := s.PasswordHasher.HashPassword(OLD_PASSWORD)
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UnitOfWork.Context.UserRepository.Create(
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

func (s *testSuite) createResetToken(u user.User, createdAt time.Time) {
	s.T().Helper()
	secretHash, err := s.PasswordHasher.HashPassword(user.RawPassword(SECRET))
	if err != nil {
		s.FailNow(err.Error())
	}
	err = s.UnitOfWork.Context.ResetTokenRepository.Create(
		context.Background(),
		user.CreateResetTokenInput{UserID: u.ID, SecretHash: secretHash, CreatedAt: createdAt},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
}
