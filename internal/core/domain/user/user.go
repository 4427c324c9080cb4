package user

import (
	"fmt"
	c "gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           ID
	Email        c.Email
	Name         string
	PasswordHash PasswordHash
	Role         Role
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}
