package confirmpasswordreset

import (
	"context"
	"errors"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	uow "gatekeeper/internal/core/domain/unit_of_work"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"time"
)

type Input struct {
	UserID      user.ID
	Secret      user.RawResetSecret
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log                   logging.Logger
	unitOfWork            uow.UnitOfWork
	userRepository        user.UserRepository
	passwordHasher        user.PasswordHasher
	passwordChangedSender user.PasswordChangedSender
	validDuration         time.Duration
	now                   func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	passwordChangedSender user.PasswordChangedSender,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
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
	if validDuration <= 0 {
		panic(e.NewInvalidStateError("validDuration must be positive"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		unitOfWork:            unitOfWork,
		userRepository:        userRepository,
		passwordHasher:        passwordHasher,
		passwordChangedSender: passwordChangedSender,
		validDuration:         validDuration,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", input.UserID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", input.UserID))
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

	token, err := uow.ResetTokens().GetByUserID(ctx, u.ID)
	if errors.Is(err, user.ErrResetTokenDoesNotExist) {
		return result, user.ErrInvalidOrExpiredResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	// The token is single use: delete it before validating so that this
	// attempt, successful or not, is its last.
	count, err := uow.ResetTokens().DeleteByUserID(ctx, u.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}

	// A zero count means the row we read is gone: a concurrent attempt
	// consumed it, or a newer request replaced it after our read. Either
	// way this attempt must not act on the stale secret.
	isConsumed := count == 0
	isValid := s.passwordHasher.ValidatePassword(user.RawPassword(input.Secret), token.SecretHash)
	isExpired := token.IsExpired(s.now(), s.validDuration)
	if isConsumed || !isValid || isExpired {
		if err := uow.Commit(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return result, err
			}
			s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
			return result, err
		}
		s.log.Info(
			ctx,
			"Password reset attempt rejected, token burned.",
			logging.Entry("userID", u.ID),
			logging.Entry("isConsumed", isConsumed),
			logging.Entry("isExpired", isExpired),
		)
		return result, user.ErrInvalidOrExpiredResetToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("err", err))
		return result, err
	}
	if err := uow.Users().SetPassword(ctx, u.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	if err := s.passwordChangedSender.SendPasswordChanged(ctx, u); err != nil {
		s.log.Warning(
			ctx,
			"Could not send password changed notification.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return result, nil
}
