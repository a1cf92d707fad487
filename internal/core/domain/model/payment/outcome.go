package payment

import (
	"fmt"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// ResolveOutcome maps a gateway notification onto the order payment status.
//
//	capture + accept     -> paid
//	capture + challenge  -> pending
//	capture + deny       -> failed
//	capture + none       -> pending
//	settlement           -> paid
//	pending              -> pending
//	deny, cancel, expire, failure -> failed
func ResolveOutcome(tx TransactionStatus, fraud FraudStatus) (order.PaymentStatus, error) {
	switch tx {
	case TransactionCapture:
		switch fraud {
		case FraudAccept:
			return order.PaymentPaid, nil
		case FraudChallenge, FraudNone:
			return order.PaymentPending, nil
		case FraudDeny:
			return order.PaymentFailed, nil
		}
	case TransactionSettlement:
		return order.PaymentPaid, nil
	case TransactionPending:
		return order.PaymentPending, nil
	case TransactionDeny, TransactionCancel, TransactionExpire, TransactionFailure:
		return order.PaymentFailed, nil
	}
	return order.PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transaction_status", fmt.Errorf("no outcome for %q with fraud status %q", tx, fraud))
}
