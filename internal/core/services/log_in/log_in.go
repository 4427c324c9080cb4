package login

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

type Result struct {
	Token user.SessionToken
	User  user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	sessionIssuer  user.SessionIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionIssuer user.SessionIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionIssuer == nil {
		panic(e.NewNilArgumentError("sessionIssuer"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		passwordHasher: passwordHasher,
		sessionIssuer:  sessionIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	token, err := s.sessionIssuer.Issue(u)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue session token for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session token issued.",
		logging.Entry("userID", u.ID),
	)
	return Result{Token: token, User: u}, nil
}
