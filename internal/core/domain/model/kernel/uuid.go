package kernel

import (
	"campusdelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("uuid")

// UUID identifies orders, couriers, users and ledger entries. The nil UUID is
// never valid.
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// ParseUUID parses the canonical textual form. paramName is reported in the
// validation error so HTTP callers can see which field was rejected.
func ParseUUID(paramName, s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	parsed := UUID{id: id}
	if err := parsed.Validate(); err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return parsed, nil
}

func UUIDFromGoogle(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

func (u UUID) Google() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
