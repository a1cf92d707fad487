package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
)

type QuoteQueryHandler struct {
	estimator services.FeeEstimator
}

func NewQuoteQueryHandler(estimator services.FeeEstimator) QuoteQueryHandler {
	return QuoteQueryHandler{estimator: estimator}
}

func (h QuoteQueryHandler) Handle(_ context.Context, query QuoteQuery) (order.Quote, error) {
	if err := query.Validate(); err != nil {
		return order.Quote{}, err
	}
	return h.estimator.Quote(query.pickup, query.delivery, query.weightKg, query.deliveryType)
}
