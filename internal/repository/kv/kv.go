package kv

import (
	"context"
	"sync"
)

// Keys under which the store persists each collection.
const (
	KeyUsers             = "prod_users"
	KeyProduction        = "prod_records"
	KeyPurchases         = "prod_purchases"
	KeyStockOuts         = "prod_stock_outs"
	KeyPrestationProd    = "prod_prestation_prod"
	KeyPrestationEtuvage = "prod_prestation_etuvage"
	KeyMasterData        = "prod_master_data"
	KeyCurrentUser       = "prod_current_user"
)

// Store is the key-value persistence collaborator. Values are JSON text.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Memory is a process-local Store used for development and tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Remove deletes key. Missing keys are ignored.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
