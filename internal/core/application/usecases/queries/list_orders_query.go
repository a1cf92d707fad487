package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// OrderFilter narrows ListOrdersQuery. Nil fields match everything.
type OrderFilter struct {
	RequesterID *kernel.UUID
	CourierID   *kernel.UUID
	Status      *order.Status
}

// ListOrdersQuery lists orders newest first.
//
// The filter is scoped to the caller: requesters only ever see their own
// orders, couriers see the orders assigned to them plus the open
// searching_courier board. Admins see everything.
type ListOrdersQuery struct {
	principal kernel.Principal
	filter    OrderFilter
	limit     int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(principal kernel.Principal, filter OrderFilter, limit int) (ListOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}

	scoped, err := scopeFilter(principal, filter)
	if err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		principal: principal,
		filter:    scoped,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter {
	return q.filter
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func scopeFilter(p kernel.Principal, f OrderFilter) (OrderFilter, error) {
	self := p.ID()

	switch {
	case p.IsAdmin():
		return f, nil
	case p.IsRequester():
		if f.RequesterID != nil && !f.RequesterID.IsEqual(self) {
			return OrderFilter{}, errs.NewAccessDeniedError("list orders of "+f.RequesterID.String(), self)
		}
		f.RequesterID = &self
		return f, nil
	case p.IsCourier():
		if f.CourierID != nil && !f.CourierID.IsEqual(self) {
			return OrderFilter{}, errs.NewAccessDeniedError("list orders of "+f.CourierID.String(), self)
		}
		board := f.Status != nil && *f.Status == order.SearchingCourier
		if !board {
			f.CourierID = &self
		}
		return f, nil
	}
	return OrderFilter{}, errs.NewAccessDeniedError("list orders", self)
}
