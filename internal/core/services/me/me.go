package me

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/core/services"
	"gatekeeper/internal/core/services/auth"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log logging.Logger
}

// New returns the identity service. It is only useful wrapped with
// auth.WithAuthentication, which fills in the user.
func New(log logging.Logger) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &service{log: log}
}

func (s *service) Run(ctx context.Context, input Input) (Result, error) {
	return Result{User: input.User}, nil
}
