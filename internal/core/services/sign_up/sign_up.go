package signup

import (
	"context"
	"errors"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	uow "gatekeeper/internal/core/domain/unit_of_work"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"time"
)

type Input struct {
	Email    c.Email
	Name     string
	Password user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         user.RoleUser,
		CreatedAt:    s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(ctx, "User with the email already exists.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	return Result{User: createdUser}, nil
}
