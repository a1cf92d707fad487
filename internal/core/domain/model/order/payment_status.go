package order

import (
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentUnpaid
	PaymentPending
	PaymentPaid
	PaymentFailed
	PaymentExpired
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown: "unknown",
		PaymentUnpaid:  "unpaid",
		PaymentPending: "pending",
		PaymentPaid:    "paid",
		PaymentFailed:  "failed",
		PaymentExpired: "expired",
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentUnknown && str == needle {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_status", fmt.Errorf("%q is not a known payment status", s))
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s PaymentStatus) Validate() error {
	if s <= PaymentUnknown || s > PaymentExpired {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// IsGatewayOutcome reports whether a gateway notification may produce s.
func (s PaymentStatus) IsGatewayOutcome() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed || s == PaymentExpired
}
