package kernel

import (
	"errors"
	"strings"

	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

type Role string

const (
	RoleRequester Role = "requester"
	RoleCourier   Role = "courier"
	RoleAdmin     Role = "admin"
)

// roleAliases maps the campus-facing role names onto the canonical ones.
var roleAliases = map[string]Role{
	"requester": RoleRequester,
	"mahasiswa": RoleRequester,
	"student":   RoleRequester,
	"courier":   RoleCourier,
	"kurir":     RoleCourier,
	"admin":     RoleAdmin,
}

func ParseRole(s string) (Role, error) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("role", errors.New(s))
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

var ErrPrincipalNotConstructed = errors.New("principal must be created via NewPrincipal")

// Principal is the authenticated caller of a use case.
type Principal struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewPrincipal(id UUID, role Role) (Principal, error) {
	if err := id.Validate(); err != nil {
		return Principal{}, errs.NewValueIsRequiredErrorWithCause("principal id", err)
	}
	if _, err := ParseRole(string(role)); err != nil {
		return Principal{}, err
	}
	return Principal{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemPrincipal is used by scheduled jobs and webhook-driven flows.
func SystemPrincipal() Principal {
	return Principal{id: systemID, role: RoleAdmin, guard: guard.NewConstructorGuard()}
}

var systemID = UUID{id: [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}}

func (p Principal) ID() UUID {
	return p.id
}

func (p Principal) Role() Role {
	return p.role
}

func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}

func (p Principal) IsCourier() bool {
	return p.role == RoleCourier
}

func (p Principal) IsRequester() bool {
	return p.role == RoleRequester
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalNotConstructed)
}
