package user

import (
	"context"
	"errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxResetTokenRepository struct {
	db db.DBTX
}

func NewPgxResetTokenRepository(db db.DBTX) *PgxResetTokenRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxResetTokenRepository{db: db}
}

func (r *PgxResetTokenRepository) Create(
	ctx context.Context,
	input user.CreateResetTokenInput,
) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO password_reset_token (user_id, secret_hash, created_at)
		 VALUES ($1, $2, $3)`,
		int64(input.UserID),
		string(input.SecretHash),
		input.CreatedAt,
	)
	return err
}

func (r *PgxResetTokenRepository) GetByUserID(
	ctx context.Context,
	userID user.ID,
) (token user.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT user_id, secret_hash, created_at
		 FROM password_reset_token WHERE user_id = $1`,
		int64(userID),
	)
	var (
		id         int64
		secretHash string
	)
	err = row.Scan(&id, &secretHash, &token.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return token, user.ErrResetTokenDoesNotExist
	}
	if err != nil {
		return token, err
	}
	token.UserID = user.ID(id)
	token.SecretHash = user.PasswordHash(secretHash)
	return token, nil
}

func (r *PgxResetTokenRepository) DeleteByUserID(
	ctx context.Context,
	userID user.ID,
) (count int64, err error) {
	commandTag, err := r.db.Exec(
		ctx,
		`DELETE FROM password_reset_token WHERE user_id = $1`,
		int64(userID),
	)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}
