package user

import (
	"context"
	c "gatekeeper/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	Name         string
	PasswordHash PasswordHash
	Role         Role
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

type CreateResetTokenInput struct {
	UserID     ID
	SecretHash PasswordHash
	CreatedAt  time.Time
}

type ResetTokenRepository interface {
	Create(ctx context.Context, input CreateResetTokenInput) error
	GetByUserID(ctx context.Context, userID ID) (ResetToken, error)
	// DeleteByUserID removes all reset tokens of the user and reports how
	// many rows were removed. Deleting a user without tokens is not an
	// error.
	DeleteByUserID(ctx context.Context, userID ID) (count int64, err error)
}
