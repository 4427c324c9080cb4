package me

import (
	"context"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnsAuthenticatedUser(t *testing.T) {
	service := New(logging.NewFakeLogger())
	u := user.User{ID: user.ID(42), Email: "test@test.test"}

	result, err := service.Run(context.Background(), Input{User: u})

	assert.Nil(t, err)
	assert.Equal(t, u, result.User)
}
