package order

import (
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	WaitingPayment
	SearchingCourier
	Matched
	PickedUp
	OnDelivery
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		WaitingPayment:   "waiting_payment",
		SearchingCourier: "searching_courier",
		Matched:          "matched",
		PickedUp:         "picked_up",
		OnDelivery:       "on_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// courierSteps is the progression a courier drives once matched.
func courierSteps() map[Status]Status {
	return map[Status]Status{
		Matched:    PickedUp,
		PickedUp:   OnDelivery,
		OnDelivery: Delivered,
	}
}

func AllStatuses() []Status {
	return []Status{Pending, WaitingPayment, SearchingCourier, Matched, PickedUp, OnDelivery, Delivered, Cancelled}
}

func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// HasCourier reports whether an order in this status must carry a courier.
func (s Status) HasCourier() bool {
	return s == Matched || s == PickedUp || s == OnDelivery || s == Delivered
}

func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && !s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}
	if !courier && s.HasCourier() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}
	return nil
}

// NextCourierStep returns the only status a courier may move the order to.
func (s Status) NextCourierStep() (Status, bool) {
	next, ok := courierSteps()[s]
	return next, ok
}

// IsCourierStep reports whether to is one of the courier-driven statuses.
func IsCourierStep(to Status) bool {
	return to == PickedUp || to == OnDelivery || to == Delivered
}

func (s Status) ValidateAdvance(to Status) error {
	next, ok := s.NextCourierStep()
	if !ok || next != to {
		return NewInvalidTransitionError(s, to)
	}
	return nil
}

func (s Status) ValidateCancel() error {
	if s.IsTerminal() {
		return NewInvalidTransitionError(s, Cancelled)
	}
	return nil
}

func (s Status) ValidateMatch() error {
	if s != SearchingCourier {
		return NewInvalidTransitionError(s, Matched)
	}
	return nil
}

func NewInvalidTransitionError(from, to Status) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to),
	)
}
