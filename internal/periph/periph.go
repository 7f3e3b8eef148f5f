package periph

// Relay identifies one of the ten physical relays.
type Relay int

// The relay complement, in panel order.
const (
	RelayPoolPump Relay = iota
	RelaySpaPump
	RelaySpaJetsPump
	RelayHeatPool
	RelayHeatSpa
	RelayPoolValve
	RelaySpaValve
	RelayHeaterValve
	RelayPoolLight
	RelaySpare

	NumRelays = 10
)

// String returns the relay's panel name.
func (r Relay) String() string {
	switch r {
	case RelayPoolPump:
		return "pool pump"
	case RelaySpaPump:
		return "spa pump"
	case RelaySpaJetsPump:
		return "spa jets pump"
	case RelayHeatPool:
		return "heat pool"
	case RelayHeatSpa:
		return "heat spa"
	case RelayPoolValve:
		return "pool valve"
	case RelaySpaValve:
		return "spa valve"
	case RelayHeaterValve:
		return "heater valve"
	case RelayPoolLight:
		return "pool light"
	case RelaySpare:
		return "spare"
	}
	return "unknown relay"
}

// ValvePosition is the commanded position of a motorised diverter valve.
// "Left" and "Right" describe where the water block sits viewed from the
// valve's input port; which relay level that maps to depends on the valve
// wiring and is the RelayOutput implementation's concern.
type ValvePosition bool

const (
	ValveLeft  ValvePosition = true
	ValveRight ValvePosition = false
)

// RelayOutput actuates the physical relays.
//
// Implementations must be safe to call from the single control-loop
// goroutine; they are never called concurrently by the core.
type RelayOutput interface {
	// Set drives one relay on or off.
	Set(relay Relay, on bool)
}

// Indicator masks for the eleven panel indicator lights. The first eight
// mirror the eight panel buttons one-to-one.
const (
	IndHeatSpa       uint16 = 0x0001
	IndHeatPool      uint16 = 0x0002
	IndSpaJets       uint16 = 0x0004
	IndPoolLight     uint16 = 0x0008
	IndFilterSpa     uint16 = 0x0010
	IndFilterPool    uint16 = 0x0020
	IndSpaWaterLevel uint16 = 0x0040
	IndMenu          uint16 = 0x0080
	IndTempBlue      uint16 = 0x0100
	IndTempGreen     uint16 = 0x0200
	IndTempRed       uint16 = 0x0400
)

// IndicatorOutput drives the panel indicator lights as a mask update.
type IndicatorOutput interface {
	// Set turns the indicators selected by mask on or off, leaving the
	// others unchanged.
	Set(mask uint16, on bool)
}

// Button identifies one of the eight panel buttons. During configuration
// editing the first four double as navigation keys (left, right, down, up),
// matching the arrow glyphs on the panel legend.
type Button int

const (
	ButtonHeatSpa Button = iota // left arrow in menu mode
	ButtonHeatPool
	ButtonSpaJets
	ButtonPoolLight
	ButtonFilterSpa
	ButtonFilterPool
	ButtonSpaWaterLevel
	ButtonMenu

	NumButtons = 8
)

// String returns the button's panel legend.
func (b Button) String() string {
	switch b {
	case ButtonHeatSpa:
		return "heat spa"
	case ButtonHeatPool:
		return "heat pool"
	case ButtonSpaJets:
		return "spa jets"
	case ButtonPoolLight:
		return "pool light"
	case ButtonFilterSpa:
		return "filter spa"
	case ButtonFilterPool:
		return "filter pool"
	case ButtonSpaWaterLevel:
		return "spa level"
	case ButtonMenu:
		return "menu"
	}
	return "unknown button"
}

// IndicatorMask returns the indicator that mirrors this button.
func (b Button) IndicatorMask() uint16 {
	return uint16(1) << uint(b)
}

// TemperatureSensor reads the water temperature at the heater inlet.
type TemperatureSensor interface {
	// Read returns the temperature in whole degrees Fahrenheit.
	// ok is false when the sensor is absent or the conversion failed.
	Read() (temp int, ok bool)
}

// WallClock reads and sets the battery-backed hardware clock.
type WallClock interface {
	// Read returns the current datetime. A non-nil error means the bus
	// transaction failed; an in-range read with nonsense fields is the
	// caller's problem to detect via DateTime.Validate.
	Read() (DateTime, error)

	// Write sets the clock.
	Write(DateTime) error
}

// RotaryEncoder is the quadrature temperature knob. Position counts
// detents and is cumulative; direction is the sign of the delta between
// reads. The consumer goroutine is the only reader.
type RotaryEncoder interface {
	// Position returns the accumulated detent count since power-up.
	// It may be negative.
	Position() int
}

// Watchdog is the external liveness watchdog. The control loop must poke
// it periodically, including from inside every blocking settle/cooldown
// wait; a missed poke triggers an external hard reset.
type Watchdog interface {
	Poke()
}
