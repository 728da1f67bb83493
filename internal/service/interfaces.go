// Package service defines the interfaces crossing layer boundaries.
package service

import "context"

// Snapshots is the contract for the durable snapshot store behind the
// budget engine. The blob is opaque to implementations; schemaVersion is
// recorded alongside it for diagnostics and future upgrades.
type Snapshots interface {
	LoadSnapshot(ctx context.Context) ([]byte, error)
	SaveSnapshot(ctx context.Context, data []byte, schemaVersion int) error
	Close() error
}
