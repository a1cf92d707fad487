package payment

import (
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

// TransactionStatus is the status a gateway reports for a transaction.
type TransactionStatus string

const (
	TransactionCapture    TransactionStatus = "capture"
	TransactionSettlement TransactionStatus = "settlement"
	TransactionPending    TransactionStatus = "pending"
	TransactionDeny       TransactionStatus = "deny"
	TransactionCancel     TransactionStatus = "cancel"
	TransactionExpire     TransactionStatus = "expire"
	TransactionFailure    TransactionStatus = "failure"
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	status := TransactionStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case TransactionCapture, TransactionSettlement, TransactionPending,
		TransactionDeny, TransactionCancel, TransactionExpire, TransactionFailure:
		return status, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("transaction_status", fmt.Errorf("%q is not recognized", s))
}

// FraudStatus is only meaningful for card captures. An empty value means the
// gateway sent none.
type FraudStatus string

const (
	FraudNone      FraudStatus = ""
	FraudAccept    FraudStatus = "accept"
	FraudChallenge FraudStatus = "challenge"
	FraudDeny      FraudStatus = "deny"
)

func ParseFraudStatus(s string) (FraudStatus, error) {
	status := FraudStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case FraudNone, FraudAccept, FraudChallenge, FraudDeny:
		return status, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("fraud_status", fmt.Errorf("%q is not recognized", s))
}
