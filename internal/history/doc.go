// Package history keeps the rolling temperature history.
//
// Samples are appended once per elapsed minute of *valid* temperature,
// where valid means water is actually flowing past the sensor. Seconds
// during which the temperature is invalid do not advance the sampling
// counter, so the history contains no stale or partial entries.
//
// The buffer is a fixed-capacity arena with overwrite-oldest semantics,
// sized for twenty hours at one sample per minute. Each entry is the
// 8-byte packed datetime with the temperature stored in the day-of-week
// byte; the day of week is not worth eight bytes per sample, and this
// keeps the arena at 9.6 KB.
//
// Thread Safety:
//   - All methods are safe for concurrent use. Ticks come from the
//     control loop; dumps come from the status web service.
package history
