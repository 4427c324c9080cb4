package signup

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
	EMAIL        = c.Email("test@test.test")
	NAME         = "Test"
	RAW_PASSWORD = user.RawPassword("test-password")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestSignUpService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(
		context.Background(),
		Input{Email: EMAIL, Name: NAME, Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(EMAIL, result.User.Email)
	assert.Equal(NAME, result.User.Name)
	assert.Equal(user.RoleUser, result.User.Role)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash))
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	_, err := suite.UnitOfWork.Context.UserRepository.Create(
		ctx,
		user.CreateUserInput{
			Email:        EMAIL,
			PasswordHash: user.PasswordHash("test"),
			Role:         user.RoleUser,
			CreatedAt:    NOW,
		},
	)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: EMAIL, Name: NAME, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}
