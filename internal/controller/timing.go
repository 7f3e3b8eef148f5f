package controller

// Timing collects every settle delay, cooldown and timeout the controller
// uses. Production runs DefaultTiming; tests shrink the blocking delays
// to keep the suite fast.
type Timing struct {
	// Blocking sequencer delays, seconds.
	HeaterOffSeconds   int // minimum heater off-time before the next command
	ValveSettleSeconds int // wait after commanding a valve change
	PumpOffSeconds     int // wait after stopping a pump
	PumpOnSeconds      int // wait after starting a pump

	// Mode timeouts, minutes.
	SpaModeMinutes   int
	PoolModeMinutes  int
	FillSpaMinutes   int
	EmptySpaMinutes  int
	SpaJetsMinutes   int
	PoolLightMinutes int

	// TitleSeconds is how long each rotating top display line holds.
	TitleSeconds int
}

// DefaultTiming returns the production delays. The heater cooldown and
// valve settle times come from the equipment manuals and must not be
// shortened in the field.
func DefaultTiming() Timing {
	return Timing{
		HeaterOffSeconds:   60,
		ValveSettleSeconds: 45,
		PumpOffSeconds:     3,
		PumpOnSeconds:      3,
		SpaModeMinutes:     180,
		PoolModeMinutes:    1440,
		FillSpaMinutes:     5,
		EmptySpaMinutes:    5,
		SpaJetsMinutes:     60,
		PoolLightMinutes:   180,
		TitleSeconds:       2,
	}
}
