package changepassword

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"gatekeeper/internal/core/services/auth"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log                   logging.Logger
	userRepository        user.UserRepository
	passwordHasher        user.PasswordHasher
	passwordChangedSender user.PasswordChangedSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	passwordChangedSender user.PasswordChangedSender,
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
	if passwordChangedSender == nil {
		panic(e.NewNilArgumentError("passwordChangedSender"))
	}
	return &service{
		log:                   log,
		userRepository:        userRepository,
		passwordHasher:        passwordHasher,
		passwordChangedSender: passwordChangedSender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	isCurrentPasswordValid := s.passwordHasher.ValidatePassword(
		input.CurrentPassword,
		input.User.PasswordHash,
	)
	if !isCurrentPasswordValid {
		return result, user.ErrInvalidCredentials
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	if err := s.userRepository.SetPassword(ctx, input.User.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.User.ID))
		return result, err
	}

	if err := s.passwordChangedSender.SendPasswordChanged(ctx, input.User); err != nil {
		s.log.Warning(
			ctx,
			"Could not send password changed notification.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(ctx, "User password has been changed.", logging.Entry("userID", input.User.ID))
	return Result{}, nil
}
