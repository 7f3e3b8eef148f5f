// Package eventlog implements the persistent circular event log.
//
// The log holds a fixed number of timestamped event records. Appending when
// full overwrites the oldest record. Every append is written through to the
// byte-region store (slot first, then the occupancy header), so the log
// survives power loss; a failed write is reported to the caller, which
// treats it as fatal because log integrity is safety-relevant.
//
// Persisted layout (bit-exact):
//   - header region: count (uint16 LE), next-write-index (uint16 LE)
//   - one region per slot: 8-byte packed datetime, 2-byte kind (LE),
//     24-byte message buffer (NOT guaranteed NUL-terminated; readers must
//     bound reads to the buffer length)
//
// Thread Safety:
//   - All methods are safe for concurrent use. Appends come from the
//     single control loop; dumps come from the status web service.
package eventlog
