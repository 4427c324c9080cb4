package user

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(
	ctx context.Context,
	input user.CreateUserInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, name, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, name, password_hash, role, created_at`,
		string(input.Email),
		input.Name,
		string(input.PasswordHash),
		string(input.Role),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, email, name, password_hash, role, created_at
		 FROM "user" WHERE id = $1`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(
	ctx context.Context,
	email c.Email,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, email, name, password_hash, role, created_at
		 FROM "user" WHERE LOWER(email) = LOWER($1)`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPassword(
	ctx context.Context,
	id user.ID,
	password user.PasswordHash,
) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $1 WHERE id = $2`,
		string(password),
		int64(id),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		name         string
		passwordHash string
		role         string
	)
	err = row.Scan(&id, &email, &name, &passwordHash, &role, &u.CreatedAt)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	u.Email = c.Email(email)
	u.Name = name
	u.PasswordHash = user.PasswordHash(passwordHash)
	u.Role = user.Role(role)
	return u, nil
}
