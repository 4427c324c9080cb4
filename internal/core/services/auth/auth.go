package auth

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionIssuer  user.SessionIssuer
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

// WithAuthentication verifies the session token found in the context,
// loads the corresponding user and passes it to the inner service.
func WithAuthentication[T Input, S any](
	sessionIssuer user.SessionIssuer,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionIssuer == nil {
		panic(e.NewNilArgumentError("sessionIssuer"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionIssuer:  sessionIssuer,
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrInvalidSessionToken
	}
	claims, err := s.sessionIssuer.Verify(authToken)
	if err != nil {
		return result, user.ErrInvalidSessionToken
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

// Authorize is the ownership check: the authenticated caller may only act
// on its own resources. It answers a different question than token
// verification and fails closed when either identity is missing.
func Authorize(requestedID user.ID, authenticated user.User) error {
	if requestedID == 0 || authenticated.ID == 0 {
		return user.ErrPermissionDenied
	}
	if requestedID != authenticated.ID {
		return user.ErrPermissionDenied
	}
	return nil
}
