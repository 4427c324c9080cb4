package session

import (
	"fmt"
	"gatekeeper/internal/core/domain/user"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIssuer signs session tokens with HMAC-SHA256. The algorithm is pinned
// on verification so a token claiming "none" or an asymmetric method is
// rejected outright.
type JWTIssuer struct {
	secret        []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewJWTIssuer(secret string, validDuration time.Duration, now func() time.Time) *JWTIssuer {
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{secret: []byte(secret), validDuration: validDuration, now: now}
}

func (i *JWTIssuer) Issue(u user.User) (user.SessionToken, error) {
	issuedAt := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(u.ID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.validDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return user.SessionToken(""), err
	}
	return user.SessionToken(signed), nil
}

func (i *JWTIssuer) Verify(token user.SessionToken) (claims user.SessionClaims, err error) {
	parsed, err := jwt.ParseWithClaims(
		string(token),
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return claims, user.ErrInvalidSessionToken
	}
	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return claims, user.ErrInvalidSessionToken
	}
	userID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return claims, fmt.Errorf("%w: invalid subject", user.ErrInvalidSessionToken)
	}
	if registered.IssuedAt == nil {
		return claims, fmt.Errorf("%w: missing iat", user.ErrInvalidSessionToken)
	}
	return user.SessionClaims{
		UserID:   user.ID(userID),
		IssuedAt: registered.IssuedAt.Time,
	}, nil
}
