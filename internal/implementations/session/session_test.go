package session

import (
	"errors"
	"gatekeeper/internal/core/domain/user"
	"testing"
	"time"
)

const (
	SECRET         = "test-secret"
	VALID_DURATION = time.Hour
)

var NOW time.Time = time.Now().UTC().Truncate(time.Second)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, VALID_DURATION, func() time.Time { return NOW })
	u := user.User{ID: user.ID(42)}

	token, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}
	if token == user.SessionToken("") {
		t.Fatal("token must not be empty")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("could not verify token: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("unexpected user ID: %v", claims.UserID)
	}
	if !claims.IssuedAt.Equal(NOW) {
		t.Fatalf("unexpected issued at: %v", claims.IssuedAt)
	}
}

func TestVerifyFailsForTamperedToken(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, VALID_DURATION, func() time.Time { return NOW })
	token, err := issuer.Issue(user.User{ID: user.ID(42)})
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}

	tampered := user.SessionToken(string(token) + "x")
	if _, err := issuer.Verify(tampered); !errors.Is(err, user.ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got: %v", err)
	}
}

func TestVerifyFailsForDifferentSecret(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, VALID_DURATION, func() time.Time { return NOW })
	token, err := issuer.Issue(user.User{ID: user.ID(42)})
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}

	other := NewJWTIssuer("another-secret", VALID_DURATION, func() time.Time { return NOW })
	if _, err := other.Verify(token); !errors.Is(err, user.ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got: %v", err)
	}
}

func TestVerifyFailsForExpiredToken(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, VALID_DURATION, func() time.Time { return NOW })
	token, err := issuer.Issue(user.User{ID: user.ID(42)})
	if err != nil {
		t.Fatalf("could not issue token: %v", err)
	}

	later := NewJWTIssuer(
		SECRET,
		VALID_DURATION,
		func() time.Time { return NOW.Add(VALID_DURATION + time.Minute) },
	)
	if _, err := later.Verify(token); !errors.Is(err, user.ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got: %v", err)
	}
}

func TestVerifyFailsForGarbage(t *testing.T) {
	issuer := NewJWTIssuer(SECRET, VALID_DURATION, func() time.Time { return NOW })
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(user.SessionToken(token)); !errors.Is(err, user.ErrInvalidSessionToken) {
			t.Fatalf("expected ErrInvalidSessionToken for %q, got: %v", token, err)
		}
	}
}
