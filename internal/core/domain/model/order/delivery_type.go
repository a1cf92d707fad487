package order

import (
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

type DeliveryType string

const (
	Standard DeliveryType = "standard"
	Express  DeliveryType = "express"
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch DeliveryType(strings.ToLower(strings.TrimSpace(s))) {
	case Standard:
		return Standard, nil
	case Express:
		return Express, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("delivery_type", fmt.Errorf("%q is not standard or express", s))
	}
}

func (t DeliveryType) String() string {
	return string(t)
}

func (t DeliveryType) IsExpress() bool {
	return t == Express
}
