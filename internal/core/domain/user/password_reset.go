package user

import (
	"context"
	"time"
)

// RawResetSecret is the plaintext secret embedded in a reset link. It is
// never persisted, only its hash is.
type RawResetSecret string

func (s RawResetSecret) String() string {
	return "***"
}

// ResetToken is the stored half of a password reset secret. At most one
// row exists per user; a row is destroyed by the first confirm attempt
// against it, successful or not.
type ResetToken struct {
	UserID     ID
	SecretHash PasswordHash
	CreatedAt  time.Time
}

func (t ResetToken) IsExpired(at time.Time, validDuration time.Duration) bool {
	return at.Sub(t.CreatedAt) > validDuration
}

type ResetSecretGenerator interface {
	GenerateResetSecret() RawResetSecret
}

type PasswordResetLinkSender interface {
	SendResetLink(ctx context.Context, user User, link string) error
}

type PasswordChangedSender interface {
	SendPasswordChanged(ctx context.Context, user User) error
}
