package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/sawmill/pool-core/internal/infrastructure/storage"
	"github.com/sawmill/pool-core/internal/periph"
)

// headerTag identifies the record format. Changing the layout means
// changing the tag, which resets deployed records to defaults on upgrade.
const headerTag = "POOLC3"

const (
	region     = "config"
	recordSize = len(headerTag) + 5
)

// Compiled-in defaults.
const (
	DefaultFilterPoolMinutes = 20
	DefaultFilterSpaMinutes  = 10
	DefaultFilterStartHour   = 1
	DefaultFilterStartPM     = false // 1 AM
	DefaultHeaterAllowed     = true
)

// Field editing bounds.
const (
	minFilterMinutes = 1
	maxFilterMinutes = 240
)

// Record holds the operator-tunable parameters.
type Record struct {
	FilterPoolMinutes byte
	FilterSpaMinutes  byte
	FilterStartHour   byte // 1-12
	FilterStartPM     bool
	HeaterAllowed     bool
}

// defaultRecord returns the compiled-in defaults.
func defaultRecord() Record {
	return Record{
		FilterPoolMinutes: DefaultFilterPoolMinutes,
		FilterSpaMinutes:  DefaultFilterSpaMinutes,
		FilterStartHour:   DefaultFilterStartHour,
		FilterStartPM:     DefaultFilterStartPM,
		HeaterAllowed:     DefaultHeaterAllowed,
	}
}

// FilterStartMeridiem returns the start meridiem as a periph constant.
func (r Record) FilterStartMeridiem() byte {
	if r.FilterStartPM {
		return periph.PM
	}
	return periph.AM
}

// Manager owns the record and its persistence.
//
// Thread Safety: all methods are safe for concurrent use; mutation comes
// from the control loop's menu editor, reads from the status service.
type Manager struct {
	mu    sync.RWMutex
	store storage.Store
	rec   Record
	dirty bool
}

// Load reads the record from the store.
//
// A matching header tag loads the full record. A missing region or a
// foreign/garbled header resets the record to defaults and persists it;
// initialized reports that reset so the caller can log it.
func Load(ctx context.Context, store storage.Store) (m *Manager, initialized bool, err error) {
	m = &Manager{store: store}

	raw, readErr := store.Read(ctx, region)
	if readErr == nil && len(raw) == recordSize && string(raw[:len(headerTag)]) == headerTag {
		m.rec = decode(raw)
		return m, false, nil
	}

	m.rec = defaultRecord()
	if writeErr := m.persist(ctx); writeErr != nil {
		return nil, false, fmt.Errorf("initializing configuration: %w", writeErr)
	}
	return m, true, nil
}

// Get returns a copy of the current record.
func (m *Manager) Get() Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rec
}

// Dirty reports whether the record has unsaved changes.
func (m *Manager) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

// Save persists the record if it has unsaved changes. A persistence
// failure is returned for the caller to treat as fatal.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	if err := m.persist(ctx); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// persist writes the encoded record. Caller holds the lock (or is still
// single-threaded during Load).
func (m *Manager) persist(ctx context.Context) error {
	return m.store.Write(ctx, region, encode(m.rec))
}

func encode(r Record) []byte {
	buf := make([]byte, 0, recordSize)
	buf = append(buf, headerTag...)
	buf = append(buf, r.FilterPoolMinutes, r.FilterSpaMinutes, r.FilterStartHour,
		boolByte(r.FilterStartPM), boolByte(r.HeaterAllowed))
	return buf
}

func decode(raw []byte) Record {
	f := raw[len(headerTag):]
	return Record{
		FilterPoolMinutes: f[0],
		FilterSpaMinutes:  f[1],
		FilterStartHour:   f[2],
		FilterStartPM:     f[3] != 0,
		HeaterAllowed:     f[4] != 0,
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
