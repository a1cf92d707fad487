package services

import (
	"math"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// Tariff in IDR.
const (
	BaseFee          = 10000
	FeePerKm         = 2000
	FeePerKg         = 1000
	ExpressSurcharge = 5000
)

const (
	StandardBaseMinutes = 30
	ExpressBaseMinutes  = 15
	MinutesPerKm        = 5
	EtaWindowMinutes    = 15
)

type FeeEstimator struct{}

func NewFeeEstimator() FeeEstimator {
	return FeeEstimator{}
}

// EstimateFee returns round(base + km*perKm + kg*perKg + express surcharge).
func (FeeEstimator) EstimateFee(distanceKm, weightKg float64, deliveryType order.DeliveryType) int64 {
	fee := BaseFee + distanceKm*FeePerKm + weightKg*FeePerKg
	if deliveryType.IsExpress() {
		fee += ExpressSurcharge
	}
	return int64(math.Round(fee))
}

func (FeeEstimator) EstimateEta(distanceKm float64, deliveryType order.DeliveryType) order.Eta {
	base := StandardBaseMinutes
	if deliveryType.IsExpress() {
		base = ExpressBaseMinutes
	}
	minMinutes := base + int(math.Ceil(distanceKm*MinutesPerKm))
	return order.Eta{MinMinutes: minMinutes, MaxMinutes: minMinutes + EtaWindowMinutes}
}

// Quote prices a delivery. Distance is zero unless both points carry
// coordinates.
func (e FeeEstimator) Quote(
	pickup, delivery *kernel.Coordinates,
	weightKg float64,
	deliveryType order.DeliveryType,
) (order.Quote, error) {
	if !(weightKg > 0) {
		return order.Quote{}, errs.NewValueIsOutOfRangeError("item_weight", weightKg, "0 exclusive", "unbounded")
	}
	if _, err := order.ParseDeliveryType(string(deliveryType)); err != nil {
		return order.Quote{}, err
	}

	var distance float64
	if pickup != nil && delivery != nil {
		distance = pickup.DistanceKm(*delivery)
	}

	return order.Quote{
		DistanceKm: distance,
		Fee:        e.EstimateFee(distance, weightKg, deliveryType),
		Eta:        e.EstimateEta(distance, deliveryType),
	}, nil
}
