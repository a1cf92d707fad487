package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrQuoteQueryIsNotConstructed = errors.New(
	"QuoteQuery must be created via NewQuoteQuery constructor",
)

// QuoteQuery prices a delivery before the order exists. Either coordinate
// may be nil, in which case the distance component is zero.
type QuoteQuery struct {
	pickup       *kernel.Coordinates
	delivery     *kernel.Coordinates
	weightKg     float64
	deliveryType order.DeliveryType

	guard guard.ConstructorGuard
}

func NewQuoteQuery(
	pickup, delivery *kernel.Coordinates,
	weightKg float64,
	deliveryType string,
) (QuoteQuery, error) {
	dt, dtErr := order.ParseDeliveryType(deliveryType)

	var weightErr error
	if !(weightKg > 0) {
		weightErr = errs.NewValueIsOutOfRangeError("item_weight", weightKg, "0 exclusive", "unbounded")
	}

	if err := errors.Join(dtErr, weightErr); err != nil {
		return QuoteQuery{}, err
	}

	return QuoteQuery{
		pickup:       pickup,
		delivery:     delivery,
		weightKg:     weightKg,
		deliveryType: dt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q QuoteQuery) Validate() error {
	return q.guard.Validate(ErrQuoteQueryIsNotConstructed)
}
