// Package payment contains the append-only payment ledger and the mapping
// from gateway notification statuses to order payment outcomes.
package payment
