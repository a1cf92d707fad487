package order

import "time"

// StatusChange is recorded whenever the order status changes. Repositories
// turn pending changes into tracking entries in the same transaction as the
// order write.
type StatusChange struct {
	Status Status
	Notes  string
	At     time.Time
}
