package controller

import "sync"

// Timers holds the shared countdown counters. They are decremented only
// by TickSecond (called from the tick goroutine) and read, armed or
// zeroed by the control loop; every access runs inside the same short
// critical section so the loop never observes a counter mid-decrement.
//
// The condition variable lets a blocking sequencer wait sleep between
// ticks instead of spinning.
type Timers struct {
	mu   sync.Mutex
	cond *sync.Cond

	// Second-granularity counters.
	waitSeconds     int // current blocking sequencer wait
	cooldownSeconds int // heater minimum off-time remaining
	titleSeconds    int // time until the top display line rotates

	// Minute-granularity counters, decremented every 60 ticks.
	modeMinutes     int
	jetsMinutes     int
	lightMinutes    int
	secondsInMinute int
}

// NewTimers returns zeroed timers.
func NewTimers() *Timers {
	t := &Timers{}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// TickSecond advances every counter by one second. It runs in bounded
// time and never blocks on anything but the timer mutex.
func (t *Timers) TickSecond() {
	t.mu.Lock()
	if t.waitSeconds > 0 {
		t.waitSeconds--
	}
	if t.cooldownSeconds > 0 {
		t.cooldownSeconds--
	}
	if t.titleSeconds > 0 {
		t.titleSeconds--
	}
	t.secondsInMinute++
	if t.secondsInMinute >= 60 {
		t.secondsInMinute = 0
		if t.modeMinutes > 0 {
			t.modeMinutes--
		}
		if t.jetsMinutes > 0 {
			t.jetsMinutes--
		}
		if t.lightMinutes > 0 {
			t.lightMinutes--
		}
	}
	t.mu.Unlock()
	t.cond.Broadcast()
}

// await calls each with the counter's current value, then again each time
// it changes, returning once it reaches zero. counter must be a field of
// t guarded by t.mu. each runs outside the critical section.
func (t *Timers) await(counter *int, each func(remaining int)) {
	t.mu.Lock()
	for {
		rem := *counter
		t.mu.Unlock()
		if each != nil {
			each(rem)
		}
		t.mu.Lock()
		if *counter <= 0 {
			break
		}
		prev := *counter
		for *counter == prev {
			t.cond.Wait()
		}
	}
	t.mu.Unlock()
}

// RunWait blocks for the given number of ticks, reporting the remaining
// seconds (including the final zero) through each.
func (t *Timers) RunWait(seconds int, each func(remaining int)) {
	t.mu.Lock()
	t.waitSeconds = seconds
	t.mu.Unlock()
	t.await(&t.waitSeconds, each)
}

// ArmCooldown starts the heater minimum off-time countdown without
// blocking.
func (t *Timers) ArmCooldown(seconds int) {
	t.mu.Lock()
	t.cooldownSeconds = seconds
	t.mu.Unlock()
}

// CooldownSeconds returns the remaining heater off-time.
func (t *Timers) CooldownSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cooldownSeconds
}

// AwaitCooldown blocks until the cooldown counter reaches zero, reporting
// progress through each.
func (t *Timers) AwaitCooldown(each func(remaining int)) {
	t.await(&t.cooldownSeconds, each)
}

// SetModeMinutes arms the mode timer.
func (t *Timers) SetModeMinutes(minutes int) {
	t.mu.Lock()
	t.modeMinutes = minutes
	t.mu.Unlock()
}

// ModeMinutes returns the remaining mode time.
func (t *Timers) ModeMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modeMinutes
}

// SetJetsMinutes arms the spa jets timer.
func (t *Timers) SetJetsMinutes(minutes int) {
	t.mu.Lock()
	t.jetsMinutes = minutes
	t.mu.Unlock()
}

// JetsMinutes returns the remaining jets time.
func (t *Timers) JetsMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jetsMinutes
}

// SetLightMinutes arms the pool light timer.
func (t *Timers) SetLightMinutes(minutes int) {
	t.mu.Lock()
	t.lightMinutes = minutes
	t.mu.Unlock()
}

// LightMinutes returns the remaining light time.
func (t *Timers) LightMinutes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lightMinutes
}

// ResetTitle re-arms the title rotation countdown.
func (t *Timers) ResetTitle(seconds int) {
	t.mu.Lock()
	t.titleSeconds = seconds
	t.mu.Unlock()
}

// TitleExpired reports whether the title countdown has run out and, if
// so, re-arms it in the same critical section.
func (t *Timers) TitleExpired(rearm int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.titleSeconds > 0 {
		return false
	}
	t.titleSeconds = rearm
	return true
}
