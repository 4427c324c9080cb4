package uow

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/db"
	dbuser "gatekeeper/internal/db/user"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.T(), suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCommit() {
	ctx := context.Background()
	uowCtx, err := suite.uow.Begin(ctx)

	assert := suite.Require()
	assert.Nil(err)
	defer uowCtx.Rollback(ctx)

	u, err := uowCtx.Users().Create(ctx, createUserInput())
	assert.Nil(err)
	err = uowCtx.ResetTokens().Create(
		ctx,
		user.CreateResetTokenInput{
			UserID:     u.ID,
			SecretHash: user.PasswordHash("test-hash"),
			CreatedAt:  NOW,
		},
	)
	assert.Nil(err)
	assert.Nil(uowCtx.Commit(ctx))

	token, err := suite.tokenRepository().GetByUserID(ctx, u.ID)
	assert.Nil(err)
	assert.Equal(u.ID, token.UserID)
}

func (suite *testSuite) TestRollback() {
	ctx := context.Background()
	uowCtx, err := suite.uow.Begin(ctx)

	assert := suite.Require()
	assert.Nil(err)

	u, err := uowCtx.Users().Create(ctx, createUserInput())
	assert.Nil(err)
	assert.Nil(uowCtx.Rollback(ctx))

	_, err = suite.userRepository().GetByID(ctx, u.ID)
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) userRepository() user.UserRepository {
	return dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) tokenRepository() user.ResetTokenRepository {
	return dbuser.NewPgxResetTokenRepository(suite.pool)
}

func createUserInput() user.CreateUserInput {
	return user.CreateUserInput{
		Email:        c.NewEmail("test@test.test"),
		Name:         "Test",
		PasswordHash: user.PasswordHash("test-password-hash"),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
	}
}
