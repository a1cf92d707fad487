package order

import (
	"fmt"

	"campusdelivery/internal/pkg/errs"
)

// Eta is an arrival window in minutes.
type Eta struct {
	MinMinutes int
	MaxMinutes int
}

func (e Eta) String() string {
	return fmt.Sprintf("%d-%d minutes", e.MinMinutes, e.MaxMinutes)
}

// Quote is the fee and arrival estimate computed at order creation. It is
// never recomputed for an existing order.
type Quote struct {
	DistanceKm float64
	Fee        int64
	Eta        Eta
}

func (q Quote) Validate() error {
	if q.Fee <= 0 {
		return errs.NewValueIsOutOfRangeError("fee", q.Fee, 1, "unbounded")
	}
	if q.DistanceKm < 0 {
		return errs.NewValueIsOutOfRangeError("distance", q.DistanceKm, 0, "unbounded")
	}
	if q.Eta.MinMinutes <= 0 || q.Eta.MaxMinutes < q.Eta.MinMinutes {
		return errs.NewValueIsInvalidErrorWithCause("eta", fmt.Errorf("%s is not a valid window", q.Eta))
	}
	return nil
}
