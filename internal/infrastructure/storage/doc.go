// Package storage provides the persistent byte-region store backing the
// event log and the operator configuration record.
//
// The controller persists small fixed-layout byte regions (a configuration
// record, an event-log header, event-log slots). The Store interface models
// exactly that: named regions read and written whole. The production
// implementation keeps regions as rows in a SQLite database, which gives
// each region write the atomicity the callers assume; the in-memory
// implementation backs the test suite and supports fault injection.
//
// Region contents are opaque here. Their bit-exact layouts belong to the
// packages that own them (eventlog, settings).
//
// Thread Safety:
//   - All Store implementations are safe for concurrent use.
package storage
