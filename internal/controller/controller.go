package controller

import (
	"context"
	"sync"

	"github.com/sawmill/pool-core/internal/eventlog"
	"github.com/sawmill/pool-core/internal/history"
	"github.com/sawmill/pool-core/internal/infrastructure/logging"
	"github.com/sawmill/pool-core/internal/periph"
	"github.com/sawmill/pool-core/internal/settings"
)

// Config wires the controller's collaborators.
type Config struct {
	Relays     periph.RelayOutput
	Indicators periph.IndicatorOutput
	Sensor     periph.TemperatureSensor
	Clock      periph.WallClock
	Watchdog   periph.Watchdog

	Log      *eventlog.Log
	History  *history.History
	Settings *settings.Manager
	Logger   *logging.Logger

	Timing Timing

	// ClockGood reports whether startup clock validation passed. When
	// false the loop stops polling the clock and keeps the fallback time.
	ClockGood bool

	// Fault is invoked on an invariant violation after the diagnostic
	// state is rendered and logged. Production leaves it nil, which halts
	// the loop until the unfed watchdog hard-resets the box; tests inject
	// a panic to surface the violation.
	Fault func(msg string)
}

// Status is the immutable snapshot the loop republishes after every pass.
// The status web service and the MQTT publisher read nothing else.
type Status struct {
	Mode        Mode
	Valves      ValveConfig
	Pump        PumpStatus
	Heater      HeaterMode
	HeaterOn    bool
	Target      int
	Temp        int
	TempValid   bool
	JetsOn      bool
	LightOn     bool
	ClockGood   bool
	Now         periph.DateTime
	Indicators  uint16
	ModeMinutes int
}

// Controller owns the mode state machine and the sequencer. All state
// below the status mutex is touched only by the Run goroutine.
type Controller struct {
	relays   periph.RelayOutput
	inds     periph.IndicatorOutput
	sensor   periph.TemperatureSensor
	clock    periph.WallClock
	watchdog periph.Watchdog

	log    *eventlog.Log
	hist   *history.History
	cfg    *settings.Manager
	logger *logging.Logger
	timing Timing
	fault  func(msg string)

	timers *Timers
	view   *View
	input  *Input
	tick   chan struct{}

	ctx context.Context

	mode     Mode
	valves   ValveConfig
	pump     PumpStatus
	heater   HeaterMode
	heaterOn bool
	target   int
	jetsOn   bool
	lightOn  bool
	indMask  uint16

	clockGood bool
	now       periph.DateTime
	temp      int
	tempValid bool

	autoStarted bool
	autoLatched bool
	autoDate    periph.DateTime

	prompting  bool // spa level fill/empty selection active
	menu       bool
	menuField  settings.Field
	titleLine  int
	notice     string
	noticeLeft int

	statusMu sync.RWMutex
	status   Status
}

// New builds a controller. The loop does not start until Run.
func New(cfg Config) *Controller {
	c := &Controller{
		relays:    cfg.Relays,
		inds:      cfg.Indicators,
		sensor:    cfg.Sensor,
		clock:     cfg.Clock,
		watchdog:  cfg.Watchdog,
		log:       cfg.Log,
		hist:      cfg.History,
		cfg:       cfg.Settings,
		logger:    cfg.Logger,
		timing:    cfg.Timing,
		fault:     cfg.Fault,
		timers:    NewTimers(),
		view:      NewView(),
		input:     NewInput(),
		tick:      make(chan struct{}, 1),
		ctx:       context.Background(),
		clockGood: cfg.ClockGood,
		now:       periph.FallbackDateTime,
	}
	if c.watchdog == nil {
		c.watchdog = periph.NopWatchdog{}
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	if c.fault == nil {
		c.fault = func(string) { select {} }
	}
	return c
}

// Input returns the operator event queue.
func (c *Controller) Input() *Input { return c.input }

// View returns the shared display buffer.
func (c *Controller) View() *View { return c.view }

// Timers returns the shared timer counters, for the tick source.
func (c *Controller) Timers() *Timers { return c.timers }

// Status returns the latest published snapshot.
func (c *Controller) Status() Status {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status
}

// Tick advances the timer counters and paces the control loop. Called
// once per second from the tick goroutine; it never blocks, so a loop
// stuck inside a settle wait simply coalesces the pending pulses.
func (c *Controller) Tick() {
	c.timers.TickSecond()
	select {
	case c.tick <- struct{}{}:
	default:
	}
}

// Run is the control loop. It is the only goroutine that mutates
// controller state or touches the relays.
func (c *Controller) Run(ctx context.Context) error {
	c.ctx = ctx
	c.timers.ResetTitle(c.timing.TitleSeconds)
	c.refreshInstruments()
	c.render()
	c.publishStatus()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.input.Events():
			c.handleEvent(ev)
		case <-c.tick:
			c.secondPass()
		}
		c.render()
		c.publishStatus()
	}
}

// secondPass is the once-per-second housekeeping: instruments, history,
// hysteresis, timer expiries and the daily autostart.
func (c *Controller) secondPass() {
	c.watchdog.Poke()
	c.refreshInstruments()

	c.hist.TickSecond(c.now, c.temp, c.tempValid)
	c.runHysteresis()
	c.checkTimeouts()
	c.checkAutostart()

	if c.noticeLeft > 0 {
		c.noticeLeft--
	}
	if c.timers.TitleExpired(c.timing.TitleSeconds) {
		c.titleLine = (c.titleLine + 1) % titleLines
	}
}

// refreshInstruments re-reads the wall clock and the temperature sensor.
// A clock that went bad after startup keeps the last good reading rather
// than flooding the log; startup validation already recorded the event.
func (c *Controller) refreshInstruments() {
	if c.clockGood {
		if dt, err := c.clock.Read(); err == nil && dt.Validate() == nil {
			c.now = dt
		}
	}

	temp, ok := c.sensor.Read()
	c.temp = temp
	// The sensor sits in the heater plumbing: its reading only reflects
	// the water while a pump is pushing flow through a heating path.
	c.tempValid = ok && c.pump != PumpNone &&
		(c.valves == ValvesHeatSpa || c.valves == ValvesHeatPool)
}

// checkTimeouts handles mode and auxiliary timer expiry.
func (c *Controller) checkTimeouts() {
	if c.mode != ModeIdle && c.timers.ModeMinutes() == 0 {
		if c.mode == ModeFilterPool && c.autoStarted {
			// The scheduled daily cycle filters both bodies back to back.
			c.enterMode(ModeFilterSpa)
		} else {
			c.enterIdle()
		}
	}
	if c.jetsOn && c.timers.JetsMinutes() == 0 {
		c.setJets(false)
	}
	if c.lightOn && c.timers.LightMinutes() == 0 {
		c.setLight(false)
	}
}

// checkAutostart fires the daily filter cycle when the configured start
// time comes around, once per calendar date. The latch keeps the
// once-per-second check from retriggering within the same hour.
func (c *Controller) checkAutostart() {
	if !c.clockGood || c.mode != ModeIdle {
		return
	}
	rec := c.cfg.Get()
	if c.now.Hour != rec.FilterStartHour || c.now.Meridiem != rec.FilterStartMeridiem() {
		return
	}
	if c.autoLatched && c.now.SameDate(c.autoDate) {
		return
	}
	c.autoLatched = true
	c.autoDate = c.now
	c.autoStarted = true
	c.logger.Info("filter cycle autostart", "at", c.now.String())
	c.enterMode(ModeFilterPool)
}

// publishStatus copies the loop state into the shared snapshot.
func (c *Controller) publishStatus() {
	s := Status{
		Mode:        c.mode,
		Valves:      c.valves,
		Pump:        c.pump,
		Heater:      c.heater,
		HeaterOn:    c.heaterOn,
		Target:      c.target,
		Temp:        c.temp,
		TempValid:   c.tempValid,
		JetsOn:      c.jetsOn,
		LightOn:     c.lightOn,
		ClockGood:   c.clockGood,
		Now:         c.now,
		Indicators:  c.indMask,
		ModeMinutes: c.timers.ModeMinutes(),
	}
	c.statusMu.Lock()
	c.status = s
	c.statusMu.Unlock()
}

// setIndicator drives one indicator and mirrors it in the status mask.
func (c *Controller) setIndicator(mask uint16, on bool) {
	if on {
		c.indMask |= mask
	} else {
		c.indMask &^= mask
	}
	c.inds.Set(mask, on)
}

// appendEvent writes to the event log. Log integrity is safety-relevant,
// so a persistence failure is an invariant violation.
func (c *Controller) appendEvent(kind eventlog.Kind, msg string) {
	if err := c.log.Append(c.ctx, kind, msg); err != nil {
		c.fatalf("event log append failed: %v", err)
	}
}
