// Package order holds the Order aggregate and its lifecycle.
//
// An order moves forward along
//
//	pending -> waiting_payment -> searching_courier -> matched -> picked_up -> on_delivery -> delivered
//
// and may be cancelled from any non-terminal state. The payment status is
// tracked independently and only its transition to paid advances the order.
// A courier is attached exactly while the order is matched, picked up, on
// delivery or delivered. The fee is frozen at creation.
package order
