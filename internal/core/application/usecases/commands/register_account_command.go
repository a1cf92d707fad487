package commands

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

const minPasswordLength = 6

var ErrRegisterAccountCommandIsNotConstructed = errors.New(
	"RegisterAccountCommand must be created via NewRegisterAccountCommand constructor",
)

// RegisterAccountCommand signs up a requester or a courier. Admin accounts
// are not self-service.
type RegisterAccountCommand struct {
	email    string
	password string
	fullName string
	phone    string
	role     kernel.Role

	guard guard.ConstructorGuard
}

func NewRegisterAccountCommand(email, password, fullName, phone string, role kernel.Role) (RegisterAccountCommand, error) {
	var err error
	email = strings.TrimSpace(email)
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	} else if !strings.Contains(email, "@") {
		err = errors.Join(err, errs.NewValueIsInvalidError("email"))
	}
	if len(password) < minPasswordLength {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"password", fmt.Errorf("must be at least %d characters", minPasswordLength)))
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("full_name"))
	}
	if role != kernel.RoleRequester && role != kernel.RoleCourier {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q cannot be registered", role)))
	}
	if err != nil {
		return RegisterAccountCommand{}, err
	}

	return RegisterAccountCommand{
		email:    email,
		password: password,
		fullName: fullName,
		phone:    strings.TrimSpace(phone),
		role:     role,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

func (c RegisterAccountCommand) Email() string {
	return c.email
}

func (c RegisterAccountCommand) Password() string {
	return c.password
}

func (c RegisterAccountCommand) FullName() string {
	return c.fullName
}

func (c RegisterAccountCommand) Phone() string {
	return c.phone
}

func (c RegisterAccountCommand) Role() kernel.Role {
	return c.role
}
