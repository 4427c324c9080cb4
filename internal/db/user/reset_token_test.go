package user

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/db"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const SECRET_HASH = "test-secret-hash"

type resetTokenTestSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	userRepo  *PgxUserRepository
	tokenRepo *PgxResetTokenRepository
}

func (suite *resetTokenTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.userRepo = NewPgxRepository(suite.pool)
	suite.tokenRepo = NewPgxResetTokenRepository(suite.pool)
}

func (suite *resetTokenTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *resetTokenTestSuite) TearDownTest() {
	db.TruncateTables(suite.T(), suite.pool)
}

func TestPgxResetTokenRepository(t *testing.T) {
	suite.Run(t, new(resetTokenTestSuite))
}

func (suite *resetTokenTestSuite) TestCreateAndGet() {
	u := suite.createUser()

	err := suite.tokenRepo.Create(
		context.Background(),
		user.CreateResetTokenInput{
			UserID:     u.ID,
			SecretHash: user.PasswordHash(SECRET_HASH),
			CreatedAt:  NOW,
		},
	)

	assert := suite.Require()
	assert.Nil(err)

	token, err := suite.tokenRepo.GetByUserID(context.Background(), u.ID)
	assert.Nil(err)
	assert.Equal(u.ID, token.UserID)
	assert.Equal(user.PasswordHash(SECRET_HASH), token.SecretHash)
	assert.True(NOW.Equal(token.CreatedAt))
}

func (suite *resetTokenTestSuite) TestGetReturnsErrorIfTokenDoesNotExist() {
	u := suite.createUser()
	_, err := suite.tokenRepo.GetByUserID(context.Background(), u.ID)
	suite.ErrorIs(err, user.ErrResetTokenDoesNotExist)
}

func (suite *resetTokenTestSuite) TestDeleteByUserID() {
	u := suite.createUser()
	err := suite.tokenRepo.Create(
		context.Background(),
		user.CreateResetTokenInput{
			UserID:     u.ID,
			SecretHash: user.PasswordHash(SECRET_HASH),
			CreatedAt:  NOW,
		},
	)

	assert := suite.Require()
	assert.Nil(err)

	count, err := suite.tokenRepo.DeleteByUserID(context.Background(), u.ID)
	assert.Nil(err)
	assert.Equal(int64(1), count)

	count, err = suite.tokenRepo.DeleteByUserID(context.Background(), u.ID)
	assert.Nil(err)
	assert.Equal(int64(0), count)
}

func (suite *resetTokenTestSuite) createUser() user.User {
	suite.T().Helper()
	u, err := suite.userRepo.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			Name:         NAME,
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			Role:         user.RoleUser,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}
