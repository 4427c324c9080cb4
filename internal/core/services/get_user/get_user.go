package getuser

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"gatekeeper/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
	User   user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{log: log, userRepository: userRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := auth.Authorize(input.UserID, input.User); err != nil {
		s.log.Info(
			ctx,
			"Access to another user's profile denied.",
			logging.Entry("requestedID", input.UserID),
			logging.Entry("userID", input.User.ID),
		)
		return result, err
	}
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if err != nil {
		return result, err
	}
	return Result{User: u}, nil
}
