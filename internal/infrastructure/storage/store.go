package storage

import (
	"context"
	"sync"
)

// Store persists named byte regions. Writes are atomic at region
// granularity: a reader never observes a half-written region.
type Store interface {
	// Read returns the region's bytes, or ErrNoRegion if it was never
	// written. The returned slice is the caller's to keep.
	Read(ctx context.Context, region string) ([]byte, error)

	// Write replaces the region's bytes.
	Write(ctx context.Context, region string, data []byte) error

	// Erase removes the region. Erasing an absent region is a no-op.
	Erase(ctx context.Context, region string) error
}

// Memory is an in-memory Store for tests and the hardware-less simulation
// build. FailWrites injects persistence faults for the fatal-path tests.
type Memory struct {
	mu         sync.RWMutex
	regions    map[string][]byte
	failWrites error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{regions: make(map[string][]byte)}
}

// Read returns a copy of the region's bytes.
func (m *Memory) Read(_ context.Context, region string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.regions[region]
	if !ok {
		return nil, ErrNoRegion
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	return cpy, nil
}

// Write stores a copy of data under region.
func (m *Memory) Write(_ context.Context, region string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites != nil {
		return m.failWrites
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	m.regions[region] = cpy
	return nil
}

// Erase removes the region.
func (m *Memory) Erase(_ context.Context, region string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.regions, region)
	return nil
}

// FailWrites makes every subsequent Write return err. Pass nil to heal.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = err
}
