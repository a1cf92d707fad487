package payment

import (
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
)

// NewGatewayOrderID builds the merchant reference sent to the gateway. The
// millisecond suffix keeps retries for the same order distinct.
func NewGatewayOrderID(orderID kernel.UUID, now time.Time) string {
	return fmt.Sprintf("ORDER-%s-%d", orderID, now.UnixMilli())
}
