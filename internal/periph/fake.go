package periph

import (
	"sync"
)

// FakeRelays is an in-memory RelayOutput that records every actuation in
// order. It backs the test suite and the hardware-less simulation build.
type FakeRelays struct {
	mu    sync.Mutex
	state [NumRelays]bool
	ops   []RelayOp
}

// RelayOp is one recorded relay actuation.
type RelayOp struct {
	Relay Relay
	On    bool
}

// NewFakeRelays returns a FakeRelays with all relays off.
func NewFakeRelays() *FakeRelays {
	return &FakeRelays{}
}

// Set records the actuation and updates the relay state.
func (f *FakeRelays) Set(relay Relay, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state[relay] = on
	f.ops = append(f.ops, RelayOp{Relay: relay, On: on})
}

// IsOn reports the current state of one relay.
func (f *FakeRelays) IsOn(relay Relay) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state[relay]
}

// Ops returns a copy of the recorded actuation sequence.
func (f *FakeRelays) Ops() []RelayOp {
	f.mu.Lock()
	defer f.mu.Unlock()
	cpy := make([]RelayOp, len(f.ops))
	copy(cpy, f.ops)
	return cpy
}

// ClearOps discards the recorded actuation sequence, keeping relay state.
func (f *FakeRelays) ClearOps() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = nil
}

// FakeIndicators is an in-memory IndicatorOutput.
type FakeIndicators struct {
	mu   sync.Mutex
	mask uint16
}

// NewFakeIndicators returns a FakeIndicators with all indicators off.
func NewFakeIndicators() *FakeIndicators {
	return &FakeIndicators{}
}

// Set applies the mask update.
func (f *FakeIndicators) Set(mask uint16, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on {
		f.mask |= mask
	} else {
		f.mask &^= mask
	}
}

// Mask returns the current indicator mask.
func (f *FakeIndicators) Mask() uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mask
}

// IsOn reports whether every indicator in mask is lit.
func (f *FakeIndicators) IsOn(mask uint16) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mask&mask == mask
}

// FakeSensor is a settable TemperatureSensor.
type FakeSensor struct {
	mu      sync.Mutex
	temp    int
	present bool
}

// NewFakeSensor returns a present sensor reading the given temperature.
func NewFakeSensor(temp int) *FakeSensor {
	return &FakeSensor{temp: temp, present: true}
}

// Read returns the configured temperature.
func (f *FakeSensor) Read() (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.temp, f.present
}

// SetTemp changes the reported temperature.
func (f *FakeSensor) SetTemp(temp int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.temp = temp
}

// SetPresent changes whether reads succeed.
func (f *FakeSensor) SetPresent(present bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.present = present
}

// FakeClock is a settable WallClock. The datetime it returns is fixed
// until changed; tests that need time to advance call Set or Advance.
type FakeClock struct {
	mu      sync.Mutex
	now     DateTime
	readErr error
}

// NewFakeClock returns a clock reading the given datetime.
func NewFakeClock(now DateTime) *FakeClock {
	return &FakeClock{now: now}
}

// Read returns the configured datetime, or the configured error.
func (f *FakeClock) Read() (DateTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readErr != nil {
		return DateTime{}, f.readErr
	}
	return f.now, nil
}

// Write sets the clock.
func (f *FakeClock) Write(dt DateTime) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = dt
	return nil
}

// Set changes the datetime returned by Read.
func (f *FakeClock) Set(dt DateTime) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = dt
}

// FailReads makes Read return the given error until called with nil.
func (f *FakeClock) FailReads(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErr = err
}

// Advance moves the clock forward by whole seconds, rolling minutes and
// hours. Date fields are left alone; tests that cross midnight set the
// datetime explicitly.
func (f *FakeClock) Advance(seconds int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < seconds; i++ {
		f.now.Sec++
		if f.now.Sec < 60 {
			continue
		}
		f.now.Sec = 0
		f.now.Min++
		if f.now.Min < 60 {
			continue
		}
		f.now.Min = 0
		f.now.Hour++
		if f.now.Hour == 12 {
			if f.now.Meridiem == AM {
				f.now.Meridiem = PM
			} else {
				f.now.Meridiem = AM
			}
		} else if f.now.Hour > 12 {
			f.now.Hour = 1
		}
	}
}

// FakeEncoder is a settable rotary encoder for tests and the
// hardware-less rig, which wires it in with nothing turning it.
type FakeEncoder struct {
	mu  sync.Mutex
	pos int
}

// Position returns the current detent count.
func (f *FakeEncoder) Position() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos
}

// Turn moves the knob by delta detents.
func (f *FakeEncoder) Turn(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos += delta
}

// CountingWatchdog counts pokes; tests assert liveness was maintained
// through blocking waits.
type CountingWatchdog struct {
	mu    sync.Mutex
	pokes int
}

// Poke increments the counter.
func (w *CountingWatchdog) Poke() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pokes++
}

// Pokes returns the poke count.
func (w *CountingWatchdog) Pokes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pokes
}

// NopWatchdog discards pokes. For deployments without the external
// watchdog circuit.
type NopWatchdog struct{}

// Poke does nothing.
func (NopWatchdog) Poke() {}
