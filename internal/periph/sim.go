package periph

import "sync"

// SimulatedSensor stands in for the temperature sensor when the probe is
// absent or unreadable at startup. It tracks a plausible water temperature:
// rising slowly toward a ceiling while told the heater is energised,
// drifting back toward ambient otherwise. The controller advances it once
// per sampled minute.
type SimulatedSensor struct {
	mu   sync.Mutex
	temp int
}

// Simulation bounds, degrees Fahrenheit.
const (
	simAmbient = 72
	simCeiling = 106
)

// NewSimulatedSensor returns a simulated sensor starting at ambient.
func NewSimulatedSensor() *SimulatedSensor {
	return &SimulatedSensor{temp: simAmbient}
}

// Read always succeeds with the simulated temperature.
func (s *SimulatedSensor) Read() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temp, true
}

// Advance moves the simulation one step: up one degree while heating,
// down one degree toward ambient otherwise.
func (s *SimulatedSensor) Advance(heating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if heating && s.temp < simCeiling {
		s.temp++
	} else if !heating && s.temp > simAmbient {
		s.temp--
	}
}
