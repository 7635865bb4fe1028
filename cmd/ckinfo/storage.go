package main

import (
	"fmt"

	"github.com/niclabs/ckabi/internal/config"
	"github.com/niclabs/ckabi/inventory"
	"github.com/niclabs/ckabi/inventory/sqlite3"
)

// newStorage opens and initializes the configured inventory.
func newStorage(ic config.InventoryConfig) (inventory.InfoStorage, error) {
	var storage inventory.InfoStorage
	var err error
	switch ic.Type {
	case "sqlite3":
		storage, err = sqlite3.GetDatabase(ic.Path)
	default:
		return nil, fmt.Errorf("storage option %q not found", ic.Type)
	}
	if err != nil {
		return nil, err
	}
	if err := storage.InitStorage(); err != nil {
		storage.CloseStorage()
		return nil, err
	}
	return storage, nil
}
