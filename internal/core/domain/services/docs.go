// Package services contains domain services that coordinate more than one
// aggregate: the order dispatcher that pairs a searching order with a courier
// and the fee estimator used for quotes.
package services
