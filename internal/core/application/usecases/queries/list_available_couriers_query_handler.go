package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAvailableCouriersQueryHandler lists couriers that can take an order,
// least recently updated first. It takes no locks.
type ListAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableCouriersQueryHandler(db *gorm.DB) ListAvailableCouriersQueryHandler {
	return ListAvailableCouriersQueryHandler{db: db}
}

func (h ListAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableCouriersQuery,
) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]CourierView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			location_lat,
			location_lng,
			is_available,
			last_updated
		FROM courier_locations
		WHERE is_available = ?
		ORDER BY last_updated, courier_id
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view     CourierView
			id       uuid.UUID
			lat, lng float64
		)

		err = rows.Scan(
			&id,
			&lat,
			&lng,
			&view.IsAvailable,
			&view.LastUpdated,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromGoogle(id)
		if idErr != nil {
			return nil, idErr
		}
		view.ID = courierID

		location, locErr := kernel.NewCoordinates(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		view.Location = location
		couriers = append(couriers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
