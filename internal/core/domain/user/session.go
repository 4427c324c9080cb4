package user

import "time"

// SessionToken is an opaque signed value held by the client. Sessions are
// stateless: nothing is persisted and there is no server-side revocation.
type SessionToken string

// SessionClaims is the verified identity assertion extracted from a
// session token.
type SessionClaims struct {
	UserID   ID
	IssuedAt time.Time
}

type SessionIssuer interface {
	Issue(user User) (SessionToken, error)
	// Verify returns ErrInvalidSessionToken for tampered, malformed,
	// wrong-algorithm or expired tokens.
	Verify(token SessionToken) (SessionClaims, error)
}
