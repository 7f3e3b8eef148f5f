package eventlog

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/sawmill/pool-core/internal/infrastructure/storage"
	"github.com/sawmill/pool-core/internal/periph"
)

// Log geometry. Capacity and the overwrite-oldest policy are load-bearing:
// the log must fit its fixed storage region and never grow.
const (
	// Capacity is the number of record slots.
	Capacity = 100

	// MessageLen is the fixed size of the message buffer in each slot.
	// Longer messages are truncated; a full buffer has no NUL terminator.
	MessageLen = 24

	// recordSize is the persisted size of one slot.
	recordSize = periph.DateTimeSize + 2 + MessageLen

	// headerSize is the persisted size of the occupancy header.
	headerSize = 4

	headerRegion = "eventlog/header"
	slotPrefix   = "eventlog/slot/"
)

// Clock is the wall clock the log stamps appends with.
type Clock interface {
	Read() (periph.DateTime, error)
}

// Record is one decoded log entry.
type Record struct {
	At      periph.DateTime
	Kind    Kind
	Message string
}

// Format renders the record as a log-dump line.
func (r Record) Format() string {
	line := r.At.String() + "  " + r.Kind.String()
	if r.Message != "" {
		line += ": " + r.Message
	}
	return line
}

// Log is the fixed-capacity circular event log.
//
// All records are cached in memory; Open loads them from the store and
// Append writes through. The slot is persisted before the header, so a
// power loss between the two writes loses at most the newest record and
// never corrupts an older one.
type Log struct {
	mu    sync.RWMutex
	store storage.Store
	clock Clock

	slots [Capacity]Record
	count int // occupied slots, <= Capacity
	next  int // next slot to write, < Capacity

	onAppend func(Record)
}

// Open loads the log from the store.
//
// A missing or malformed header means a fresh (or corrupted) region; the
// log is reset to empty and the zero header persisted. Slot regions are
// decoded with bounded reads; a slot that fails to read back is left as
// the KindNone sentinel rather than failing the whole load.
func Open(ctx context.Context, store storage.Store, clock Clock) (*Log, error) {
	l := &Log{store: store, clock: clock}

	header, err := store.Read(ctx, headerRegion)
	if err != nil || len(header) != headerSize {
		// First boot or unreadable header: start empty.
		if writeErr := l.writeHeader(ctx); writeErr != nil {
			return nil, fmt.Errorf("initializing event log: %w", writeErr)
		}
		return l, nil
	}

	count := int(binary.LittleEndian.Uint16(header[0:2]))
	next := int(binary.LittleEndian.Uint16(header[2:4]))
	if count > Capacity || next >= Capacity {
		// Occupancy out of range: the region is not ours. Reset.
		l.count, l.next = 0, 0
		if writeErr := l.writeHeader(ctx); writeErr != nil {
			return nil, fmt.Errorf("resetting event log: %w", writeErr)
		}
		return l, nil
	}
	l.count, l.next = count, next

	for i := 0; i < Capacity; i++ {
		raw, readErr := store.Read(ctx, slotRegion(i))
		if readErr != nil || len(raw) != recordSize {
			continue
		}
		l.slots[i] = decodeRecord(raw)
	}
	return l, nil
}

func slotRegion(i int) string {
	return fmt.Sprintf("%s%d", slotPrefix, i)
}

// Append stamps the current wall-clock time and writes a record,
// overwriting the oldest slot when the log is full.
//
// A store failure is returned wrapped in ErrAppendFailed; the caller must
// treat it as fatal.
func (l *Log) Append(ctx context.Context, kind Kind, message string) error {
	at, err := l.clock.Read()
	if err != nil || at.Validate() != nil {
		at = periph.FallbackDateTime
	}

	l.mu.Lock()
	rec := Record{At: at, Kind: kind, Message: truncate(message)}
	slot := l.next

	if err := l.store.Write(ctx, slotRegion(slot), encodeRecord(rec)); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: slot %d: %v", ErrAppendFailed, slot, err)
	}

	l.slots[slot] = rec
	l.next = (l.next + 1) % Capacity
	if l.count < Capacity {
		l.count++
	}

	if err := l.writeHeaderLocked(ctx); err != nil {
		l.mu.Unlock()
		return fmt.Errorf("%w: header: %v", ErrAppendFailed, err)
	}
	callback := l.onAppend
	l.mu.Unlock()

	if callback != nil {
		callback(rec)
	}
	return nil
}

// Count returns the number of occupied slots.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// SetOnAppend registers a callback invoked after each successful append,
// outside the log's lock. Used to mirror events to MQTT.
func (l *Log) SetOnAppend(fn func(Record)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onAppend = fn
}

// recordAt returns the record at logical position pos, where 0 is the
// oldest occupied slot. Caller holds at least a read lock.
func (l *Log) recordAt(pos int) Record {
	oldest := l.next - l.count
	if oldest < 0 {
		oldest += Capacity
	}
	return l.slots[(oldest+pos)%Capacity]
}

// Dump emits formatted records through fn until fn returns false or the
// log is exhausted. newestFirst selects the direction. The dump works on
// a snapshot of the occupancy taken at the start, so a concurrent append
// does not tear it; re-calling Dump restarts from the chosen end.
func (l *Log) Dump(newestFirst bool, fn func(line string) bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if newestFirst {
		for pos := l.count - 1; pos >= 0; pos-- {
			if !fn(l.recordAt(pos).Format()) {
				return
			}
		}
		return
	}
	for pos := 0; pos < l.count; pos++ {
		if !fn(l.recordAt(pos).Format()) {
			return
		}
	}
}

// Records returns a copy of the occupied records, oldest first.
func (l *Log) Records() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, l.count)
	for pos := 0; pos < l.count; pos++ {
		out[pos] = l.recordAt(pos)
	}
	return out
}

func (l *Log) writeHeader(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writeHeaderLocked(ctx)
}

func (l *Log) writeHeaderLocked(ctx context.Context) error {
	var header [headerSize]byte
	binary.LittleEndian.PutUint16(header[0:2], uint16(l.count))
	binary.LittleEndian.PutUint16(header[2:4], uint16(l.next))
	return l.store.Write(ctx, headerRegion, header[:])
}

// truncate bounds a message to the slot's message buffer.
func truncate(s string) string {
	if len(s) > MessageLen {
		return s[:MessageLen]
	}
	return s
}

// encodeRecord packs a record into its persisted slot layout.
func encodeRecord(r Record) []byte {
	buf := make([]byte, recordSize)
	at := r.At.Pack()
	copy(buf[0:periph.DateTimeSize], at[:])
	binary.LittleEndian.PutUint16(buf[periph.DateTimeSize:periph.DateTimeSize+2], uint16(r.Kind))
	copy(buf[periph.DateTimeSize+2:], r.Message)
	return buf
}

// decodeRecord unpacks a persisted slot. The message read is bounded to
// the buffer length and stops at the first NUL; a full buffer is taken
// whole (no terminator is guaranteed).
func decodeRecord(buf []byte) Record {
	var at [periph.DateTimeSize]byte
	copy(at[:], buf[0:periph.DateTimeSize])
	kind := Kind(binary.LittleEndian.Uint16(buf[periph.DateTimeSize : periph.DateTimeSize+2]))
	msg := buf[periph.DateTimeSize+2 : recordSize]
	end := len(msg)
	for i, b := range msg {
		if b == 0 {
			end = i
			break
		}
	}
	return Record{
		At:      periph.UnpackDateTime(at),
		Kind:    kind,
		Message: string(msg[:end]),
	}
}
