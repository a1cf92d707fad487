package commands

import (
	"errors"
	"strings"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrAuthenticateCommandIsNotConstructed = errors.New(
	"AuthenticateCommand must be created via NewAuthenticateCommand constructor",
)

type AuthenticateCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateCommand(email, password string) (AuthenticateCommand, error) {
	var err error
	email = strings.TrimSpace(email)
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("password"))
	}
	if err != nil {
		return AuthenticateCommand{}, err
	}

	return AuthenticateCommand{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AuthenticateCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateCommandIsNotConstructed)
}

func (c AuthenticateCommand) Email() string {
	return c.email
}

func (c AuthenticateCommand) Password() string {
	return c.password
}
