package runstore

import (
	"fmt"
	"sync"

	"github.com/quantgeo/scoresmith/internal/contract"
	"github.com/quantgeo/scoresmith/schema"
)

// Global store instance for main logic.
var (
	manager   = &storeManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// storeManager guards the store pointer during initialization.
type storeManager struct {
	sync.RWMutex
	store contract.RunStore
}

// InitStore initializes the global run store. It is safe to call from
// multiple commands; the store is built exactly once.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize run store: %w", err)
			return
		}
		manager.Lock()
		defer manager.Unlock()
		manager.store = store
	})
	return initErr
}

// GetStore returns the global run store, or nil when tracking is disabled or
// initialization never happened.
func GetStore() contract.RunStore {
	manager.RLock()
	defer manager.RUnlock()
	return manager.store
}

// CloseStore should be called on application shutdown.
func CloseStore() {
	closeOnce.Do(func() {
		manager.Lock()
		defer manager.Unlock()
		if manager.store != nil {
			if err := manager.store.Close(); err != nil {
				contract.LogWarn("failed to close run store", err)
			}
			manager.store = nil
		}
	})
}
