package uow

import (
	"context"
	"gatekeeper/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	ResetTokens() user.ResetTokenRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
