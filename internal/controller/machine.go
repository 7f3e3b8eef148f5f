package controller

import (
	"github.com/sawmill/pool-core/internal/eventlog"
	"github.com/sawmill/pool-core/internal/periph"
)

// handleEvent dispatches one operator event. The menu editor and the
// fill/empty prompt each capture all input while active.
func (c *Controller) handleEvent(ev Event) {
	c.logger.Debug("operator event", "event", ev.String())
	if c.menu {
		c.handleMenuEvent(ev)
		return
	}
	if c.prompting {
		c.handlePromptEvent(ev)
		return
	}

	switch ev {
	case EvHeatSpa:
		c.toggleMode(ModeHeatSpa)
	case EvHeatPool:
		c.toggleMode(ModeHeatPool)
	case EvFilterSpa:
		c.toggleMode(ModeFilterSpa)
	case EvFilterPool:
		c.toggleMode(ModeFilterPool)
	case EvSpaJets:
		c.setJets(!c.jetsOn)
	case EvPoolLight:
		c.setLight(!c.lightOn)
	case EvSpaWaterLevel:
		if c.mode == ModeFillSpa || c.mode == ModeEmptySpa {
			c.enterIdle()
			return
		}
		c.prompting = true
		c.setIndicator(periph.IndSpaWaterLevel, true)
	case EvMenu:
		c.enterMenu()
	case EvTempUp:
		c.adjustTarget(1)
	case EvTempDown:
		c.adjustTarget(-1)
	}
}

// handlePromptEvent resolves the fill/empty selection. The panel arrows
// pick a direction; anything else cancels with no side effects.
func (c *Controller) handlePromptEvent(ev Event) {
	c.prompting = false
	c.setIndicator(periph.IndSpaWaterLevel, false)
	target := ModeIdle
	switch ev {
	case EvPoolLight: // up arrow
		target = ModeFillSpa
	case EvSpaJets: // down arrow
		target = ModeEmptySpa
	default:
		return
	}
	if c.mode != ModeIdle {
		c.enterIdle()
	}
	c.enterMode(target)
}

// toggleMode implements the idempotent-toggle contract: the active
// mode's own control returns to Idle; any other control forces Idle
// first, then enters its mode.
func (c *Controller) toggleMode(target Mode) {
	if c.mode == target {
		c.enterIdle()
		return
	}
	if (target == ModeHeatSpa || target == ModeHeatPool) && !c.cfg.Get().HeaterAllowed {
		// Refused before any teardown: the current mode keeps running.
		c.transientNotice("Heater is disabled")
		return
	}
	if c.mode != ModeIdle {
		c.enterIdle()
	}
	if target == ModeFilterPool {
		c.autoStarted = false // operator start, no spa chaining
	}
	c.enterMode(target)
}

// enterMode configures the plumbing for the target mode without passing
// through Idle. toggleMode forces Idle first for operator switches; the
// autostarted filter chain calls this directly so the pool-to-spa
// handoff logs no intermediate Idle event.
func (c *Controller) enterMode(target Mode) {
	if c.mode != ModeIdle {
		c.setIndicator(modeIndicator(c.mode), false)
	}
	switch target {
	case ModeHeatSpa, ModeHeatPool:
		c.enterHeat(target)
	case ModeFilterPool, ModeFilterSpa:
		c.enterFilter(target)
	case ModeFillSpa, ModeEmptySpa:
		c.enterTransfer(target)
	default:
		c.fatalf("enter mode %d", int(target))
	}
}

// enterIdle is the universal teardown: indicators dark, pumps and
// heater stopped, mode timer cleared. The Idle log event is suppressed
// when the controller was already idle.
func (c *Controller) enterIdle() {
	prior := c.mode
	c.setIndicator(periph.IndHeatSpa|periph.IndHeatPool|periph.IndFilterSpa|
		periph.IndFilterPool|periph.IndSpaWaterLevel, false)
	c.pumpsOff()
	c.timers.SetModeMinutes(0)
	c.mode = ModeIdle
	c.autoStarted = false
	c.titleLine = 0
	c.timers.ResetTitle(c.timing.TitleSeconds)
	if prior != ModeIdle {
		c.appendEvent(eventlog.KindIdle, "")
	}
}

func (c *Controller) enterHeat(target Mode) {
	if target == ModeHeatSpa {
		c.setValveConfig(ValvesHeatSpa)
		c.pumpOn(PumpSpa)
		c.heaterStart(HeaterSpa, TargetSpaStart)
		c.timers.SetModeMinutes(c.timing.SpaModeMinutes)
		c.mode = ModeHeatSpa
		c.setIndicator(periph.IndHeatSpa, true)
		c.appendEvent(eventlog.KindHeatSpa, "")
		return
	}
	c.setValveConfig(ValvesHeatPool)
	c.pumpOn(PumpPool)
	c.heaterStart(HeaterPool, TargetPoolStart)
	c.timers.SetModeMinutes(c.timing.PoolModeMinutes)
	c.mode = ModeHeatPool
	c.setIndicator(periph.IndHeatPool, true)
	c.appendEvent(eventlog.KindHeatPool, "")
}

// enterFilter starts a filter cycle. The valve rule: if the heater is
// disallowed, or the valves are not currently in a heating
// configuration, route through the other entity's heating path so the
// filtering entity's return line is still correct. When the valves
// already sit in a heating configuration and the heater is allowed,
// they stay put. Asymmetric on purpose: it lets one entity filter while
// the heater is tied up with the other.
func (c *Controller) enterFilter(target Mode) {
	rec := c.cfg.Get()
	desired := c.valves
	if !rec.HeaterAllowed || (c.valves != ValvesHeatSpa && c.valves != ValvesHeatPool) {
		if target == ModeFilterPool {
			desired = ValvesHeatSpa
		} else {
			desired = ValvesHeatPool
		}
	}
	c.setValveConfig(desired)

	if target == ModeFilterPool {
		c.pumpOn(PumpPool)
		c.timers.SetModeMinutes(int(rec.FilterPoolMinutes))
		c.mode = ModeFilterPool
		c.setIndicator(periph.IndFilterPool, true)
		c.appendEvent(eventlog.KindFilterPool, "")
		return
	}
	c.pumpOn(PumpSpa)
	c.timers.SetModeMinutes(int(rec.FilterSpaMinutes))
	c.mode = ModeFilterSpa
	c.setIndicator(periph.IndFilterSpa, true)
	c.appendEvent(eventlog.KindFilterSpa, "")
}

// enterTransfer moves water between the pool and the spa: fill pushes
// pool water in with the pool pump, empty drains with the spa pump.
func (c *Controller) enterTransfer(target Mode) {
	if target == ModeFillSpa {
		c.setValveConfig(ValvesFillSpa)
		c.pumpOn(PumpPool)
		c.timers.SetModeMinutes(c.timing.FillSpaMinutes)
		c.mode = ModeFillSpa
		c.setIndicator(periph.IndSpaWaterLevel, true)
		c.appendEvent(eventlog.KindFillSpa, "")
		return
	}
	c.setValveConfig(ValvesEmptySpa)
	c.pumpOn(PumpSpa)
	c.timers.SetModeMinutes(c.timing.EmptySpaMinutes)
	c.mode = ModeEmptySpa
	c.setIndicator(periph.IndSpaWaterLevel, true)
	c.appendEvent(eventlog.KindEmptySpa, "")
}

// setJets toggles the spa jets pump, an auxiliary load independent of
// the mode.
func (c *Controller) setJets(on bool) {
	c.jetsOn = on
	c.relays.Set(periph.RelaySpaJetsPump, on)
	c.setIndicator(periph.IndSpaJets, on)
	minutes := 0
	if on {
		minutes = c.timing.SpaJetsMinutes
	}
	c.timers.SetJetsMinutes(minutes)
}

// setLight toggles the pool light.
func (c *Controller) setLight(on bool) {
	c.lightOn = on
	c.relays.Set(periph.RelayPoolLight, on)
	c.setIndicator(periph.IndPoolLight, on)
	minutes := 0
	if on {
		minutes = c.timing.PoolLightMinutes
	}
	c.timers.SetLightMinutes(minutes)
}

// adjustTarget moves the target temperature one degree per rotary
// pulse, clamped to the active entity's safe range.
func (c *Controller) adjustTarget(delta int) {
	var max int
	switch c.mode {
	case ModeHeatSpa:
		max = TempMaxSpa
	case ModeHeatPool:
		max = TempMaxPool
	default:
		return
	}
	c.target += delta
	if c.target < TempMin {
		c.target = TempMin
	}
	if c.target > max {
		c.target = max
	}
}

// modeIndicator returns the panel lamp that mirrors a mode.
func modeIndicator(m Mode) uint16 {
	switch m {
	case ModeHeatSpa:
		return periph.IndHeatSpa
	case ModeHeatPool:
		return periph.IndHeatPool
	case ModeFilterSpa:
		return periph.IndFilterSpa
	case ModeFilterPool:
		return periph.IndFilterPool
	case ModeFillSpa, ModeEmptySpa:
		return periph.IndSpaWaterLevel
	}
	return 0
}
