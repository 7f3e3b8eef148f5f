// Package periph defines the peripheral interfaces the controller core
// drives, and the shared hardware vocabulary (relay identifiers, indicator
// masks, button identifiers, valve positions, the packed wall-clock
// datetime format).
//
// The package contains no bus-level code. Real implementations wrap the
// relay mux, LED driver, temperature sensor, and hardware clock; the fake
// implementations here back the test suite and the simulated deployments.
//
// The DateTime type mirrors the 8-byte register layout of the battery-backed
// hardware clock (12-hour format with a meridiem flag). It is also the
// timestamp format used by the persisted event log, so its packed encoding
// is part of the storage contract and must not change shape.
package periph
