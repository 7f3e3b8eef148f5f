package controller

import (
	"fmt"

	"github.com/sawmill/pool-core/internal/periph"
)

// The sequencer enforces physical ordering: valves never move under
// flow, pumps never stop with the heater energized, and the heater
// always gets its minimum off-time. Every blocking wait keeps the
// watchdog poked and the countdown on the display.

// setValveConfig moves the three valves to the target configuration.
// A request for the current configuration is a no-op; anything else
// stops pumps and heater first, then commands the valves and holds for
// the settle delay before the configuration is trusted.
func (c *Controller) setValveConfig(target ValveConfig) {
	positions, ok := valvePositions(target)
	if !ok {
		c.fatalf("illegal valve configuration %d", int(target))
		return
	}
	if target == c.valves {
		return
	}

	c.pumpsOff()
	for i, relay := range valveRelays {
		c.relays.Set(relay, positions[i])
	}
	c.waitSettle(c.timing.ValveSettleSeconds, "Valves moving")
	c.valves = target
}

// pumpOn starts the named pump after making sure nothing else is
// running, then holds for the start settle delay.
func (c *Controller) pumpOn(which PumpStatus) {
	if which == PumpNone {
		c.fatalf("pump on with no pump named")
		return
	}
	if c.pump == which {
		return
	}

	c.pumpsOff()
	relay := periph.RelaySpaPump
	if which == PumpPool {
		relay = periph.RelayPoolPump
	}
	c.relays.Set(relay, true)
	c.waitSettle(c.timing.PumpOnSeconds, "Pump starting")
	c.pump = which
}

// pumpsOff stops the heater, then both circulation pumps, then holds for
// the stop settle delay so the water column comes to rest.
func (c *Controller) pumpsOff() {
	c.heaterOff()
	if c.pump == PumpNone {
		return
	}
	c.relays.Set(periph.RelaySpaPump, false)
	c.relays.Set(periph.RelayPoolPump, false)
	c.waitSettle(c.timing.PumpOffSeconds, "Pump stopping")
	c.pump = PumpNone
}

// heaterOff drops the heater out of its mode. If it was actually
// energized the mandatory cooldown is armed and waited out here, so no
// caller can re-command the heater early.
func (c *Controller) heaterOff() {
	if c.heater == HeaterNone {
		return
	}
	wasOn := c.heaterOn
	c.relays.Set(periph.RelayHeatSpa, false)
	c.relays.Set(periph.RelayHeatPool, false)
	c.heaterOn = false
	c.heater = HeaterNone
	c.updateHeatIndicators()

	if wasOn {
		c.timers.ArmCooldown(c.timing.HeaterOffSeconds)
		c.timers.AwaitCooldown(c.cooldownProgress)
	}
}

// heaterStart puts the heater in a mode and energizes it. The hysteresis
// path arms the cooldown without blocking, so a mode re-entry can arrive
// with off-time still on the counter; any remainder is waited out here
// before the contactor closes.
func (c *Controller) heaterStart(mode HeaterMode, target int) {
	if c.timers.CooldownSeconds() > 0 {
		c.timers.AwaitCooldown(c.cooldownProgress)
	}
	c.heater = mode
	c.target = target
	c.energizeHeater(true)
}

// cooldownProgress keeps the watchdog fed and the countdown on the
// display while a cooldown wait blocks the loop.
func (c *Controller) cooldownProgress(remaining int) {
	c.watchdog.Poke()
	if remaining > 0 {
		c.setLine(3, fmt.Sprintf("Heater cooling %3ds", remaining))
	}
}

// energizeHeater switches the contactor for the current heater mode.
func (c *Controller) energizeHeater(on bool) {
	relay := periph.RelayHeatSpa
	if c.heater == HeaterPool {
		relay = periph.RelayHeatPool
	}
	c.relays.Set(relay, on)
	c.heaterOn = on
	c.updateHeatIndicators()
}

// runHysteresis is the per-second thermostat. Off at target, back on
// two degrees below it, and never back on while the cooldown is live.
// Short-cycling the heater is what the band and the cooldown prevent.
func (c *Controller) runHysteresis() {
	if c.heater == HeaterNone || c.pump == PumpNone || !c.tempValid {
		return
	}
	if c.heaterOn && c.temp >= c.target {
		c.energizeHeater(false)
		c.timers.ArmCooldown(c.timing.HeaterOffSeconds)
	} else if !c.heaterOn && c.temp <= c.target-hysteresisBand && c.timers.CooldownSeconds() == 0 {
		c.energizeHeater(true)
	}
}

// updateHeatIndicators drives the three temperature lamps: red while the
// heater is energized, blue while a heating mode is waiting at target,
// green when no heating is in effect.
func (c *Controller) updateHeatIndicators() {
	c.setIndicator(periph.IndTempRed, c.heaterOn)
	c.setIndicator(periph.IndTempBlue, c.heater != HeaterNone && !c.heaterOn)
	c.setIndicator(periph.IndTempGreen, c.heater == HeaterNone)
}

// waitSettle blocks for a settle delay, poking the watchdog and showing
// the countdown each second.
func (c *Controller) waitSettle(seconds int, label string) {
	c.timers.RunWait(seconds, func(remaining int) {
		c.watchdog.Poke()
		if remaining > 0 {
			c.setLine(3, fmt.Sprintf("%s %2ds", label, remaining))
		}
	})
}
