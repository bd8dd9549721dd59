package storage

import (
	"github.com/traindeck/traindeck/pkg/types"
)

// Store defines the interface for the local submission log.
// Implemented by the BoltDB-backed store.
type Store interface {
	// Apps
	SaveApp(rec *types.AppRecord) error
	GetApp(id string) (*types.AppRecord, error)
	ListApps() ([]*types.AppRecord, error)
	DeleteApp(id string) error

	// Utility
	Close() error
}
