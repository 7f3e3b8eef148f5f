// Package controller implements the mode state machine, the
// valve/pump/heater sequencer, and the control loop that ties the
// peripherals, event log, temperature history and configuration together.
//
// Concurrency model: exactly one goroutine (the control loop started by
// Run) ever mutates controller state or calls the sequencer. A once-per-
// second tick goroutine only decrements the shared timer counters through
// Timers, which carries its own short critical section. Everything else
// (status web service, MQTT publisher) reads an immutable Status snapshot
// the loop republishes after every pass.
//
// Sequencer calls block: a valve change holds the loop for the full
// settle delay, a heater stop for the full cooldown. The loop keeps the
// external watchdog poked and the countdown rendered during those waits;
// timers keep decrementing because the tick goroutine never blocks.
package controller
