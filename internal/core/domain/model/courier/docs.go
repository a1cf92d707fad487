// Package courier holds the courier registry record: the last reported
// position of a courier and whether the courier accepts new orders.
//
// A courier becomes unavailable when reserved for an order and is released
// back to available when that order is cancelled.
package courier
