package controller

import "github.com/sawmill/pool-core/internal/periph"

// Mode is the single top-level exclusive operating state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeHeatSpa
	ModeHeatPool
	ModeFillSpa
	ModeEmptySpa
	ModeFilterPool
	ModeFilterSpa
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHeatSpa:
		return "heat spa"
	case ModeHeatPool:
		return "heat pool"
	case ModeFillSpa:
		return "fill spa"
	case ModeEmptySpa:
		return "empty spa"
	case ModeFilterPool:
		return "filter pool"
	case ModeFilterSpa:
		return "filter spa"
	}
	return "unknown mode"
}

// ValveConfig is the position of the three diverter valves as a unit.
// The valves are only ever moved together; Undefined exists solely as the
// power-on state before the first commanded change.
type ValveConfig int

const (
	ValvesUndefined ValveConfig = iota
	ValvesHeatSpa
	ValvesHeatPool
	ValvesFillSpa
	ValvesEmptySpa
)

func (v ValveConfig) String() string {
	switch v {
	case ValvesUndefined:
		return "undefined"
	case ValvesHeatSpa:
		return "heat spa"
	case ValvesHeatPool:
		return "heat pool"
	case ValvesFillSpa:
		return "fill spa"
	case ValvesEmptySpa:
		return "empty spa"
	}
	return "unknown valves"
}

// valvePositions maps a configuration to the three valve relays, in the
// order pool valve, spa valve, heater valve. The combinations mirror the
// plumbing: heating paths route through the heater, transfer paths bypass
// it.
func valvePositions(v ValveConfig) (positions [3]bool, ok bool) {
	switch v {
	case ValvesHeatSpa:
		return [3]bool{false, true, true}, true
	case ValvesHeatPool:
		return [3]bool{true, false, true}, true
	case ValvesFillSpa:
		return [3]bool{true, true, false}, true
	case ValvesEmptySpa:
		return [3]bool{false, false, false}, true
	}
	return [3]bool{}, false
}

// valveRelays lists the valve relay for each position slot.
var valveRelays = [3]periph.Relay{
	periph.RelayPoolValve,
	periph.RelaySpaValve,
	periph.RelayHeaterValve,
}

// PumpStatus names which circulation pump is running. The spa and pool
// share a single flow path through the heater, so at most one runs.
type PumpStatus int

const (
	PumpNone PumpStatus = iota
	PumpSpa
	PumpPool
)

func (p PumpStatus) String() string {
	switch p {
	case PumpNone:
		return "off"
	case PumpSpa:
		return "spa"
	case PumpPool:
		return "pool"
	}
	return "unknown pump"
}

// HeaterMode names which entity the heater serves. Energization is a
// separate flag: the heater may be in a mode but currently off because
// the water is at target.
type HeaterMode int

const (
	HeaterNone HeaterMode = iota
	HeaterSpa
	HeaterPool
)

func (h HeaterMode) String() string {
	switch h {
	case HeaterNone:
		return "off"
	case HeaterSpa:
		return "spa"
	case HeaterPool:
		return "pool"
	}
	return "unknown heater"
}

// Event is one discrete operator input, debounced upstream.
type Event int

const (
	EvNone Event = iota
	EvHeatSpa
	EvHeatPool
	EvSpaJets
	EvPoolLight
	EvFilterSpa
	EvFilterPool
	EvSpaWaterLevel
	EvMenu
	EvTempUp
	EvTempDown
)

func (e Event) String() string {
	switch e {
	case EvHeatSpa:
		return "heat spa"
	case EvHeatPool:
		return "heat pool"
	case EvSpaJets:
		return "spa jets"
	case EvPoolLight:
		return "pool light"
	case EvFilterSpa:
		return "filter spa"
	case EvFilterPool:
		return "filter pool"
	case EvSpaWaterLevel:
		return "spa level"
	case EvMenu:
		return "menu"
	case EvTempUp:
		return "temp up"
	case EvTempDown:
		return "temp down"
	}
	return "none"
}

// ButtonEvent maps a panel button to its operator event.
func ButtonEvent(b periph.Button) Event {
	switch b {
	case periph.ButtonHeatSpa:
		return EvHeatSpa
	case periph.ButtonHeatPool:
		return EvHeatPool
	case periph.ButtonSpaJets:
		return EvSpaJets
	case periph.ButtonPoolLight:
		return EvPoolLight
	case periph.ButtonFilterSpa:
		return EvFilterSpa
	case periph.ButtonFilterPool:
		return EvFilterPool
	case periph.ButtonSpaWaterLevel:
		return EvSpaWaterLevel
	case periph.ButtonMenu:
		return EvMenu
	}
	return EvNone
}

// Temperature bounds and targets, degrees Fahrenheit.
const (
	TempMin         = 60
	TempMaxPool     = 92
	TempMaxSpa      = 105
	TargetSpaStart  = 102
	TargetPoolStart = 80

	// hysteresisBand is how far below target the water must fall before
	// the heater re-energizes.
	hysteresisBand = 2
)
