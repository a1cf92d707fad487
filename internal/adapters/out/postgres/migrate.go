package postgres

import (
	"campusdelivery/internal/adapters/out/postgres/accountrepo"
	"campusdelivery/internal/adapters/out/postgres/courierrepo"
	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/adapters/out/postgres/paymentrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TrackingDTO{},
		&courierrepo.CourierDTO{},
		&paymentrepo.PaymentDTO{},
		&accountrepo.ProfileDTO{},
	)
}
