package paymentrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionID string    `gorm:"type:varchar(128);not null;index"`
	Amount        int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(16);not null"`
	PaymentTime   *time.Time
	CreatedAt     time.Time `gorm:"not null;index;autoCreateTime:false"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(e *payment.Entry) PaymentDTO {
	return PaymentDTO{
		ID:            e.ID().Google(),
		OrderID:       e.OrderID().Google(),
		TransactionID: e.TransactionID(),
		Amount:        e.Amount(),
		Status:        e.Status().String(),
		PaymentTime:   e.PaymentTime(),
		CreatedAt:     e.CreatedAt(),
	}
}
