package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"campusdelivery/internal/core/domain/model/courier"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

var ErrNoCouriersAvailable = errors.New("no couriers available")

type MatchingPolicy string

const (
	// MatchFirstAvailable takes the first available courier in the order the
	// registry returned them (least recently updated first).
	MatchFirstAvailable MatchingPolicy = "first"
	// MatchNearest takes the available courier closest to the pickup point.
	// Orders without pickup coordinates fall back to MatchFirstAvailable.
	MatchNearest MatchingPolicy = "nearest"
)

func ParseMatchingPolicy(s string) (MatchingPolicy, error) {
	switch MatchingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchFirstAvailable:
		return MatchFirstAvailable, nil
	case MatchNearest:
		return MatchNearest, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("matching_policy", fmt.Errorf("%q is not first or nearest", s))
	}
}

type OrderDispatcher struct {
	policy MatchingPolicy
}

func NewOrderDispatcher(policy MatchingPolicy) OrderDispatcher {
	if policy == "" {
		policy = MatchFirstAvailable
	}
	return OrderDispatcher{policy: policy}
}

func (d OrderDispatcher) Policy() MatchingPolicy {
	return d.policy
}

// Dispatch reserves one of the candidate couriers and assigns it to the
// order. Both aggregates are mutated only when a courier was found.
func (d OrderDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier, now time.Time) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.Status().ValidateMatch(); err != nil {
		return nil, err
	}

	best, err := d.pick(o, couriers)
	if err != nil {
		return nil, err
	}

	if err := best.Reserve(now); err != nil {
		return nil, err
	}
	if err := o.AssignCourier(best.ID(), now); err != nil {
		best.Release(now)
		return nil, err
	}

	return best, nil
}

func (d OrderDispatcher) pick(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	pickup := o.Pickup().Coordinates()

	var (
		best     *courier.Courier
		bestDist = math.MaxFloat64
	)
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsAvailable() {
			continue
		}
		if d.policy != MatchNearest || pickup == nil {
			return c, nil
		}
		if dist := c.DistanceKmTo(*pickup); dist < bestDist {
			bestDist = dist
			best = c
		}
	}

	if best == nil {
		return nil, ErrNoCouriersAvailable
	}
	return best, nil
}
