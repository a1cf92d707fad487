package order

import (
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed  = errors.New("order must be created via NewOrder")
	ErrInvalidTransition      = errors.New("transition is not allowed")
	ErrPaymentAlreadySettled  = errors.New("payment is already settled")
	ErrPaymentNotInitiated    = errors.New("payment was not initiated")
	ErrCourierAlreadyAssigned = errors.New("courier is already assigned")
)

const initialVersion int64 = 1

type Order struct {
	id          kernel.UUID
	requesterID kernel.UUID
	courierID   *kernel.UUID

	pickup       Address
	delivery     Address
	item         Item
	deliveryType DeliveryType
	quote        Quote

	status        Status
	paymentStatus PaymentStatus

	paymentToken       string
	gatewayOrderID     string
	paymentRequestedAt *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int64

	changes []StatusChange

	isConstructed bool
}

func NewOrder(
	id, requesterID kernel.UUID,
	pickup, delivery Address,
	item Item,
	deliveryType DeliveryType,
	quote Quote,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentUnpaid,
		createdAt:     now,
		updatedAt:     now,
		version:       initialVersion,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequester(requesterID),
		o.setAddresses(pickup, delivery),
		o.setItem(item),
		o.setDeliveryType(deliveryType),
		quote.Validate(),
	); err != nil {
		return nil, err
	}
	o.quote = quote
	o.record(Pending, "order created", now)

	return o, nil
}

// Snapshot carries the persisted state of an order.
type Snapshot struct {
	ID                 kernel.UUID
	RequesterID        kernel.UUID
	CourierID          *kernel.UUID
	Pickup             Address
	Delivery           Address
	Item               Item
	DeliveryType       DeliveryType
	Quote              Quote
	Status             Status
	PaymentStatus      PaymentStatus
	PaymentToken       string
	GatewayOrderID     string
	PaymentRequestedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int64
}

// RestoreOrder rebuilds an order from storage. It rejects states that break
// the courier invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		quote:              s.Quote,
		paymentToken:       s.PaymentToken,
		gatewayOrderID:     s.GatewayOrderID,
		paymentRequestedAt: s.PaymentRequestedAt,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		version:            s.Version,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setRequester(s.RequesterID),
		o.setAddresses(s.Pickup, s.Delivery),
		o.setItem(s.Item),
		o.setDeliveryType(s.DeliveryType),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
		s.Status.ValidateCanHaveCourier(s.CourierID != nil),
	); err != nil {
		return nil, err
	}
	if s.CourierID != nil {
		id := *s.CourierID
		o.courierID = &id
	}
	o.status = s.Status
	o.paymentStatus = s.PaymentStatus

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) RequesterID() kernel.UUID {
	return o.requesterID
}

func (o *Order) Pickup() Address {
	return o.pickup
}

func (o *Order) Delivery() Address {
	return o.delivery
}

func (o *Order) Item() Item {
	return o.item
}

func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

func (o *Order) Quote() Quote {
	return o.quote
}

func (o *Order) Fee() int64 {
	return o.quote.Fee
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) PaymentToken() string {
	return o.paymentToken
}

func (o *Order) GatewayOrderID() string {
	return o.gatewayOrderID
}

func (o *Order) PaymentRequestedAt() *time.Time {
	return o.paymentRequestedAt
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Version() int64 {
	return o.version
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) IsRequestedBy(id kernel.UUID) bool {
	return o.requesterID.IsEqual(id)
}

func (o *Order) CourierID() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// ExpectVersion fails when the caller acted on a stale copy of the order.
func (o *Order) ExpectVersion(version int64) error {
	if version != o.version {
		return errs.NewVersionConflictError("order", o.id, version)
	}
	return nil
}

// IncrementVersion is called by the repository after a successful
// conditional write.
func (o *Order) IncrementVersion() {
	o.version++
}

// PullStatusChanges returns and clears the status changes recorded since the
// last call.
func (o *Order) PullStatusChanges() []StatusChange {
	changes := o.changes
	o.changes = nil
	return changes
}

// InitiatePayment stores the gateway token and moves the order into
// waiting_payment. A retry while waiting replaces the previous token.
func (o *Order) InitiatePayment(token, gatewayOrderID string, now time.Time) error {
	if token == "" {
		return errs.NewValueIsRequiredError("payment_token")
	}
	if gatewayOrderID == "" {
		return errs.NewValueIsRequiredError("gateway_order_id")
	}
	if o.status != Pending && o.status != WaitingPayment {
		return NewInvalidTransitionError(o.status, WaitingPayment)
	}
	if o.paymentStatus == PaymentPaid {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", ErrPaymentAlreadySettled)
	}

	o.paymentToken = token
	o.gatewayOrderID = gatewayOrderID
	o.paymentStatus = PaymentPending
	o.paymentRequestedAt = &now
	if o.status == Pending {
		o.status = WaitingPayment
		o.record(WaitingPayment, "payment initiated", now)
	}
	o.updatedAt = now
	return nil
}

// ApplyPaymentOutcome records a gateway outcome. Only paid advances the
// order, and only out of waiting_payment. Once paid, other outcomes are
// rejected with ErrPaymentAlreadySettled and leave the order untouched.
func (o *Order) ApplyPaymentOutcome(outcome PaymentStatus, now time.Time) error {
	if !outcome.IsGatewayOutcome() {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_status", fmt.Errorf("%s is not a gateway outcome", outcome))
	}
	if o.gatewayOrderID == "" {
		return errs.NewValueIsInvalidErrorWithCause("payment_status", ErrPaymentNotInitiated)
	}
	if o.paymentStatus == PaymentPaid {
		if outcome == PaymentPaid {
			return nil
		}
		return ErrPaymentAlreadySettled
	}

	o.paymentStatus = outcome
	o.updatedAt = now
	if outcome == PaymentPaid && o.status == WaitingPayment {
		o.status = SearchingCourier
		o.record(SearchingCourier, "payment settled", now)
	}
	return nil
}

// ExpirePayment marks a payment that was never settled as expired. The order
// status does not change.
func (o *Order) ExpirePayment(now time.Time) error {
	if o.status != WaitingPayment || o.paymentStatus != PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment_status", fmt.Errorf("%s payment of %s order cannot expire", o.paymentStatus, o.status))
	}
	o.paymentStatus = PaymentExpired
	o.updatedAt = now
	return nil
}

func (o *Order) AssignCourier(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier_id", err)
	}
	if o.courierID != nil {
		return errs.NewValueIsInvalidErrorWithCause("courier_id", ErrCourierAlreadyAssigned)
	}
	if err := o.status.ValidateMatch(); err != nil {
		return err
	}

	o.courierID = &courierID
	o.status = Matched
	o.updatedAt = now
	o.record(Matched, "courier matched", now)
	return nil
}

// Advance moves a matched order one step forward along the courier path.
func (o *Order) Advance(to Status, notes string, now time.Time) error {
	if err := o.status.ValidateAdvance(to); err != nil {
		return err
	}
	o.status = to
	o.updatedAt = now
	o.record(to, notes, now)
	return nil
}

// Cancel moves any non-terminal order to cancelled and detaches the courier.
// The detached courier, if any, is returned so it can be released.
func (o *Order) Cancel(notes string, now time.Time) (*kernel.UUID, error) {
	if err := o.status.ValidateCancel(); err != nil {
		return nil, err
	}
	released := o.courierID
	o.courierID = nil
	o.status = Cancelled
	o.updatedAt = now
	o.record(Cancelled, notes, now)
	return released, nil
}

func (o *Order) record(status Status, notes string, at time.Time) {
	o.changes = append(o.changes, StatusChange{Status: status, Notes: notes, At: at})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setRequester(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requester_id", err)
	}
	o.requesterID = id
	return nil
}

func (o *Order) setAddresses(pickup, delivery Address) error {
	if err := pickup.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup_address", err)
	}
	if err := delivery.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_address", err)
	}
	o.pickup = pickup
	o.delivery = delivery
	return nil
}

func (o *Order) setItem(item Item) error {
	if err := item.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item", err)
	}
	o.item = item
	return nil
}

func (o *Order) setDeliveryType(t DeliveryType) error {
	if _, err := ParseDeliveryType(string(t)); err != nil {
		return err
	}
	o.deliveryType = t
	return nil
}
