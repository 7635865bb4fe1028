// Package inventory keeps a history of the CK_INFO reported by the token
// libraries a host has loaded.
package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/niclabs/ckabi/ck"
)

type InfoStorage interface {

	// Executes the logic necessary to initialize the storage.
	InitStorage() error

	// Saves a snapshot into the storage, or returns an error.
	SaveSnapshot(*Snapshot) error

	// Retrieves a snapshot by ID.
	GetSnapshot(id string) (*Snapshot, error)

	// Lists the snapshots of a module, newest first. An empty module lists
	// every snapshot.
	GetSnapshots(module string) ([]*Snapshot, error)

	// Finalizes the use of the storage. The storage is not usable
	// If this method is called.
	CloseStorage() error
}

// Snapshot is a CK_INFO as read from a module at some point in time.
type Snapshot struct {
	ID         string
	Module     string
	Info       *ck.Info
	RecordedAt time.Time
}

func NewSnapshot(module string, info *ck.Info) *Snapshot {
	return &Snapshot{
		ID:         uuid.New().String(),
		Module:     module,
		Info:       info,
		RecordedAt: time.Now().UTC(),
	}
}
