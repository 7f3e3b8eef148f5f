package history

import (
	"fmt"
	"sync"

	"github.com/sawmill/pool-core/internal/periph"
)

// Sampling geometry.
const (
	// DeltaMinutes is the interval between samples.
	DeltaMinutes = 1

	// TotalHours is how much history the buffer holds.
	TotalHours = 20

	// Capacity is the number of entries in the arena.
	Capacity = TotalHours * 60 / DeltaMinutes

	// secondsPerSample is how many valid seconds must elapse per sample.
	secondsPerSample = DeltaMinutes * 60
)

// Sample is one decoded history entry. The day-of-week field of the
// timestamp is sacrificed for the temperature, so At.Day is always zero.
type Sample struct {
	At   periph.DateTime
	Temp int
}

// Format renders the sample as a CSV dump line: "yyyy-mm-dd hh:mm:ss xM, temp".
func (s Sample) Format() string {
	return fmt.Sprintf("%s, %d", s.At, s.Temp)
}

// History is the fixed-capacity rolling temperature buffer.
type History struct {
	mu      sync.RWMutex
	entries [Capacity][periph.DateTimeSize]byte
	head    int // next entry to write
	count   int // occupied entries, <= Capacity

	validSeconds int // seconds of valid temperature toward the next sample

	onSample func(Sample)
}

// New returns an empty history.
func New() *History {
	return &History{}
}

// TickSecond advances the sampling counter by one second. When the
// temperature is invalid the counter holds, so no sample is ever recorded
// from stale data. After a full interval of valid seconds the current
// reading is appended.
func (h *History) TickSecond(now periph.DateTime, temp int, valid bool) {
	h.mu.Lock()
	if !valid {
		h.mu.Unlock()
		return
	}
	h.validSeconds++
	if h.validSeconds < secondsPerSample {
		h.mu.Unlock()
		return
	}
	h.validSeconds = 0
	s := Sample{At: now, Temp: temp}
	h.appendLocked(s)
	callback := h.onSample
	h.mu.Unlock()

	if callback != nil {
		callback(s)
	}
}

// appendLocked packs the sample into the arena, overwriting the oldest
// entry when full. Caller holds the write lock.
func (h *History) appendLocked(s Sample) {
	at := s.At
	at.Day = byte(s.Temp) // temperature lives where the day of week was
	h.entries[h.head] = at.Pack()
	h.head = (h.head + 1) % Capacity
	if h.count < Capacity {
		h.count++
	}
}

// Count returns the number of occupied entries.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// sampleAt decodes the entry at logical position pos, 0 = oldest.
// Caller holds at least a read lock.
func (h *History) sampleAt(pos int) Sample {
	oldest := h.head - h.count
	if oldest < 0 {
		oldest += Capacity
	}
	at := periph.UnpackDateTime(h.entries[(oldest+pos)%Capacity])
	temp := int(at.Day)
	at.Day = 0
	return Sample{At: at, Temp: temp}
}

// Samples returns a copy of the occupied entries, oldest first.
func (h *History) Samples() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Sample, h.count)
	for pos := 0; pos < h.count; pos++ {
		out[pos] = h.sampleAt(pos)
	}
	return out
}

// Latest returns the newest sample, if any.
func (h *History) Latest() (Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.count == 0 {
		return Sample{}, false
	}
	return h.sampleAt(h.count - 1), true
}

// Dump emits formatted samples oldest-to-newest through fn until fn
// returns false or the history is exhausted. Re-calling restarts.
func (h *History) Dump(fn func(line string) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for pos := 0; pos < h.count; pos++ {
		if !fn(h.sampleAt(pos).Format()) {
			return
		}
	}
}

// SetOnSample registers a callback invoked after each recorded sample,
// outside the history's lock. Used to export samples to InfluxDB.
func (h *History) SetOnSample(fn func(Sample)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSample = fn
}
