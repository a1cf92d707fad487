// Package account holds the marketplace profile created alongside an
// identity-provider account.
package account

import (
	"errors"
	"strings"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrProfileIsNotConstructed = errors.New("profile must be created via NewProfile")

type Profile struct {
	id        kernel.UUID
	email     string
	fullName  string
	phone     string
	role      kernel.Role
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewProfile(id kernel.UUID, email, fullName, phone string, role kernel.Role, createdAt time.Time) (*Profile, error) {
	var err error
	if e := id.Validate(); e != nil {
		err = errors.Join(err, errs.NewValueIsRequiredErrorWithCause("user_id", e))
	}
	email = strings.TrimSpace(email)
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("email"))
	} else if !strings.Contains(email, "@") {
		err = errors.Join(err, errs.NewValueIsInvalidError("email"))
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("full_name"))
	}
	if _, e := kernel.ParseRole(string(role)); e != nil {
		err = errors.Join(err, e)
	}
	if err != nil {
		return nil, err
	}

	return &Profile{
		id:        id,
		email:     email,
		fullName:  fullName,
		phone:     strings.TrimSpace(phone),
		role:      role,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) ID() kernel.UUID {
	return p.id
}

func (p *Profile) Email() string {
	return p.email
}

func (p *Profile) FullName() string {
	return p.fullName
}

func (p *Profile) Phone() string {
	return p.phone
}

func (p *Profile) Role() kernel.Role {
	return p.role
}

func (p *Profile) IsCourier() bool {
	return p.role == kernel.RoleCourier
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}
