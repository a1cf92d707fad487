package payment

import (
	"errors"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

// Customer is forwarded to the gateway for its checkout page.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c Customer) Validate() error {
	var err error
	if strings.TrimSpace(c.FirstName) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer.first_name"))
	}
	if strings.TrimSpace(c.Email) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customer.email"))
	} else if !strings.Contains(c.Email, "@") {
		err = errors.Join(err, errs.NewValueIsInvalidError("customer.email"))
	}
	return err
}
