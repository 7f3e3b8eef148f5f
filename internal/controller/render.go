package controller

import (
	"fmt"

	"github.com/sawmill/pool-core/internal/periph"
)

// titleLines is how many lines the top-row rotation cycles through.
const titleLines = 3

// render repaints the whole frame from controller state. Blocking
// sequencer waits paint their countdown onto the bottom row directly;
// the next pass through here overwrites it.
func (c *Controller) render() {
	if c.menu {
		c.renderMenu()
		return
	}
	if c.prompting {
		c.renderPrompt()
		return
	}
	c.view.HideCursor()
	c.setLine(0, c.titleText())
	c.setLine(1, "Mode: "+c.mode.String())
	c.setLine(2, c.tempText())
	c.setLine(3, c.bottomText())
}

func (c *Controller) titleText() string {
	switch c.titleLine {
	case 1:
		if !c.clockGood {
			return "(clock not set)"
		}
		return fmt.Sprintf("%02d/%02d/%02d %2d:%02d %s",
			c.now.Month, c.now.Date, c.now.Year,
			c.now.Hour, c.now.Min, meridiemText(c.now.Meridiem))
	case 2:
		switch {
		case c.heaterOn:
			return "Heater on (" + c.heater.String() + ")"
		case c.heater != HeaterNone:
			return "Heater at target"
		default:
			return "Heater off"
		}
	}
	return "Saw Mill Lodge Pool"
}

func (c *Controller) tempText() string {
	if !c.tempValid {
		return "Water temp --"
	}
	line := fmt.Sprintf("Water %3dF", c.temp)
	if c.heater != HeaterNone {
		line += fmt.Sprintf("  set %3d", c.target)
	}
	return line
}

func (c *Controller) bottomText() string {
	if c.noticeLeft > 0 {
		return c.notice
	}
	line := "Pump " + c.pump.String()
	if c.jetsOn {
		line += "  jets"
	}
	if c.lightOn {
		line += "  light"
	}
	return line
}

func (c *Controller) renderPrompt() {
	c.view.HideCursor()
	c.setLine(0, "Spa water level")
	c.setLine(1, "  up arrow = fill")
	c.setLine(2, "  down arrow = empty")
	c.setLine(3, "other key cancels")
}

func (c *Controller) renderMenu() {
	value := "value: " + c.cfg.Value(c.menuField)
	c.setLine(0, "Settings")
	c.setLine(1, c.menuField.Label())
	c.setLine(2, value)
	c.setLine(3, "arrows edit,menu ends")
	c.view.SetCursor(2, len("value: "), true)
}

func meridiemText(m byte) string {
	if m == periph.PM {
		return "PM"
	}
	return "AM"
}

// transientNotice shows a short-lived message on the bottom row, used
// for refusals that are not errors and must not mutate state.
func (c *Controller) transientNotice(msg string) {
	c.notice = msg
	c.noticeLeft = noticeSeconds
}

const noticeSeconds = 3

// setLine writes one display row. A malformed row index is an invariant
// violation and takes the fatal path.
func (c *Controller) setLine(row int, text string) {
	if !c.view.SetLine(row, text) {
		c.fatalf("display row %d out of range", row)
	}
}
