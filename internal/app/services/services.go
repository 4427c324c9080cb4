package services

import (
	"gatekeeper/internal/app/deps"
	"gatekeeper/internal/core/services"
	"gatekeeper/internal/core/services/auth"
	changepassword "gatekeeper/internal/core/services/change_password"
	confirmpasswordreset "gatekeeper/internal/core/services/confirm_password_reset"
	getuser "gatekeeper/internal/core/services/get_user"
	login "gatekeeper/internal/core/services/log_in"
	"gatekeeper/internal/core/services/me"
	requestpasswordreset "gatekeeper/internal/core/services/request_password_reset"
	signup "gatekeeper/internal/core/services/sign_up"
)

type Services struct {
	SignUp               services.Service[signup.Input, signup.Result]
	LogIn                services.Service[login.Input, login.Result]
	Me                   services.Service[me.Input, me.Result]
	ChangePassword       services.Service[changepassword.Input, changepassword.Result]
	GetUser              services.Service[getuser.Input, getuser.Result]
	RequestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ConfirmPasswordReset services.Service[confirmpasswordreset.Input, confirmpasswordreset.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogIn = login.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionIssuer,
	)
	s.Me = auth.WithAuthentication(
		deps.SessionIssuer,
		deps.UserRepository,
		me.New(deps.Logger),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionIssuer,
		deps.UserRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.PasswordChangedSender,
		),
	)
	s.GetUser = auth.WithAuthentication(
		deps.SessionIssuer,
		deps.UserRepository,
		getuser.New(deps.Logger, deps.UserRepository),
	)
	s.RequestPasswordReset = requestpasswordreset.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.UserRepository,
		deps.ResetSecretGenerator,
		deps.PasswordHasher,
		deps.ResetLinkSender,
		deps.Config.PasswordResetBaseURL,
		deps.Now,
	)
	s.ConfirmPasswordReset = confirmpasswordreset.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.PasswordChangedSender,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)

	return s
}
