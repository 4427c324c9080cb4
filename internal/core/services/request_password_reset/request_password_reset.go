package requestpasswordreset

import (
	"context"
	"errors"
	"fmt"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	uow "gatekeeper/internal/core/domain/unit_of_work"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"net/url"
	"time"
)

type Input struct {
	Email c.Email
}

type Result struct {
	Link string
}

type service struct {
	log             logging.Logger
	unitOfWork      uow.UnitOfWork
	userRepository  user.UserRepository
	secretGenerator user.ResetSecretGenerator
	passwordHasher  user.PasswordHasher
	resetLinkSender user.PasswordResetLinkSender
	resetBaseURL    url.URL
	now             func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	userRepository user.UserRepository,
	secretGenerator user.ResetSecretGenerator,
	passwordHasher user.PasswordHasher,
	resetLinkSender user.PasswordResetLinkSender,
	resetBaseURL url.URL,
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
	if secretGenerator == nil {
		panic(e.NewNilArgumentError("secretGenerator"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if resetLinkSender == nil {
		panic(e.NewNilArgumentError("resetLinkSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		unitOfWork:      unitOfWork,
		userRepository:  userRepository,
		secretGenerator: secretGenerator,
		passwordHasher:  passwordHasher,
		resetLinkSender: resetLinkSender,
		resetBaseURL:    resetBaseURL,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, err
	}

	secret := s.secretGenerator.GenerateResetSecret()
	secretHash, err := s.passwordHasher.HashPassword(user.RawPassword(secret))
	if err != nil {
		s.log.Error(ctx, "Could not hash reset secret.", logging.Entry("err", err))
		return result, err
	}

	// Delete-then-insert inside one transaction so that at most one valid
	// token per user survives two concurrent requests.
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	deleted, err := uow.ResetTokens().DeleteByUserID(ctx, u.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	if deleted > 0 {
		s.log.Info(
			ctx,
			"Previous password reset tokens invalidated.",
			logging.Entry("userID", u.ID),
			logging.Entry("count", deleted),
		)
	}
	err = uow.ResetTokens().Create(ctx, user.CreateResetTokenInput{
		UserID:     u.ID,
		SecretHash: secretHash,
		CreatedAt:  s.now(),
	})
	if err != nil {
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

	link := s.resetLink(u, secret)

	// The token is already committed; delivery is best effort and must not
	// undo it.
	if err := s.resetLinkSender.SendResetLink(ctx, u, link); err != nil {
		s.log.Warning(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(ctx, "Password reset token has been created.", logging.Entry("userID", u.ID))
	return Result{Link: link}, nil
}

func (s *service) resetLink(u user.User, secret user.RawResetSecret) string {
	link := s.resetBaseURL.JoinPath("passwordReset")
	// Kept in this exact shape for existing client deep links.
	link.RawQuery = fmt.Sprintf("token=%s&id=%d", string(secret), u.ID)
	return link.String()
}
