package controller

import (
	"sync/atomic"
	"testing"
	"time"
)

// pump ticks the timers from a background goroutine until stopped,
// standing in for the once-per-second tick source at test speed.
func pump(t *testing.T, timers *Timers) func() {
	t.Helper()
	var stop atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		for !stop.Load() {
			timers.TickSecond()
			time.Sleep(time.Millisecond)
		}
	}()
	return func() {
		stop.Store(true)
		<-done
	}
}

func TestTickSecond_MinuteCounters(t *testing.T) {
	timers := NewTimers()
	timers.SetModeMinutes(2)
	timers.SetJetsMinutes(1)

	for i := 0; i < 59; i++ {
		timers.TickSecond()
	}
	if got := timers.ModeMinutes(); got != 2 {
		t.Errorf("ModeMinutes after 59 ticks = %d, want 2", got)
	}
	timers.TickSecond()
	if got := timers.ModeMinutes(); got != 1 {
		t.Errorf("ModeMinutes after 60 ticks = %d, want 1", got)
	}
	if got := timers.JetsMinutes(); got != 0 {
		t.Errorf("JetsMinutes after 60 ticks = %d, want 0", got)
	}
	for i := 0; i < 60; i++ {
		timers.TickSecond()
	}
	if got := timers.ModeMinutes(); got != 0 {
		t.Errorf("ModeMinutes after 120 ticks = %d, want 0", got)
	}
}

func TestRunWait_CountsDown(t *testing.T) {
	timers := NewTimers()
	stop := pump(t, timers)
	defer stop()

	var seen []int
	timers.RunWait(3, func(remaining int) {
		seen = append(seen, remaining)
	})

	if len(seen) < 2 || seen[0] != 3 || seen[len(seen)-1] != 0 {
		t.Errorf("countdown reported %v, want 3..0", seen)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] >= seen[i-1] {
			t.Errorf("countdown not monotonic: %v", seen)
		}
	}
}

func TestRunWait_ZeroReturnsImmediately(t *testing.T) {
	timers := NewTimers()
	// No tick source at all: a zero wait must still return.
	called := 0
	timers.RunWait(0, func(remaining int) {
		called++
		if remaining != 0 {
			t.Errorf("remaining = %d, want 0", remaining)
		}
	})
	if called != 1 {
		t.Errorf("callback ran %d times, want 1", called)
	}
}

func TestCooldown(t *testing.T) {
	timers := NewTimers()
	timers.ArmCooldown(2)
	if got := timers.CooldownSeconds(); got != 2 {
		t.Fatalf("CooldownSeconds = %d, want 2", got)
	}

	stop := pump(t, timers)
	defer stop()
	timers.AwaitCooldown(nil)
	if got := timers.CooldownSeconds(); got != 0 {
		t.Errorf("CooldownSeconds after wait = %d, want 0", got)
	}
}

func TestTitleExpired(t *testing.T) {
	timers := NewTimers()
	timers.ResetTitle(2)
	if timers.TitleExpired(2) {
		t.Error("title should not expire while armed")
	}
	timers.TickSecond()
	timers.TickSecond()
	if !timers.TitleExpired(2) {
		t.Error("title should expire after countdown")
	}
	// Expiry re-arms in the same call.
	if timers.TitleExpired(2) {
		t.Error("title should be re-armed after expiry")
	}
}
