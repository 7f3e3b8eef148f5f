package eventlog

// Kind identifies what happened. The numeric values are persisted; new
// kinds must be appended, never renumbered.
type Kind uint16

const (
	// KindNone is the invalid sentinel; a decoded slot with KindNone was
	// never written.
	KindNone Kind = iota

	// Lifecycle events.
	KindStartup
	KindIdle
	KindHeatSpa
	KindHeatPool
	KindFillSpa
	KindEmptySpa
	KindFilterPool
	KindFilterSpa

	// Error events.
	KindClockBad
	KindSensorBad
	KindConfigInit
	KindAssertFailed
)

// String returns the kind's display name, as shown in log dumps.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStartup:
		return "startup"
	case KindIdle:
		return "idle"
	case KindHeatSpa:
		return "heat spa"
	case KindHeatPool:
		return "heat pool"
	case KindFillSpa:
		return "fill spa"
	case KindEmptySpa:
		return "empty spa"
	case KindFilterPool:
		return "filter pool"
	case KindFilterSpa:
		return "filter spa"
	case KindClockBad:
		return "clock bad"
	case KindSensorBad:
		return "temp sensor bad"
	case KindConfigInit:
		return "initialized configuration"
	case KindAssertFailed:
		return "assertion failed"
	}
	return "unknown"
}
