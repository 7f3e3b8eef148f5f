// Package settings manages the persisted operator configuration record:
// filter cycle durations, the daily filter start time, and whether the
// heater may run at all.
//
// The record is versioned by a 6-byte ASCII header tag checked verbatim on
// load. A mismatch means a different firmware generation (or garbage)
// wrote the region, so the record is reset to compiled-in defaults and
// persisted; the caller logs that reinitialization. The record is written
// back only when a field was actually changed.
//
// Persisted layout (bit-exact, 11 bytes): header tag, then five
// single-byte fields (filter pool minutes, filter spa minutes, filter
// start hour, filter start meridiem, heater allowed).
package settings
