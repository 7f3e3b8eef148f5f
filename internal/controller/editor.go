package controller

import (
	"github.com/sawmill/pool-core/internal/periph"
	"github.com/sawmill/pool-core/internal/settings"
)

// The configuration editor. While active, the first four panel buttons
// act as their arrow legends: left/right walk the fields, up/down
// adjust the selected one. Menu exits and persists any change.

func (c *Controller) enterMenu() {
	c.menu = true
	c.menuField = 0
	c.setIndicator(periph.IndMenu, true)
}

func (c *Controller) handleMenuEvent(ev Event) {
	switch ev {
	case EvMenu:
		c.menu = false
		c.setIndicator(periph.IndMenu, false)
		c.view.HideCursor()
		if err := c.cfg.Save(c.ctx); err != nil {
			c.fatalf("saving configuration: %v", err)
		}
	case EvHeatSpa: // left arrow
		c.menuField--
		if c.menuField < 0 {
			c.menuField = settings.NumFields - 1
		}
	case EvHeatPool: // right arrow
		c.menuField = (c.menuField + 1) % settings.NumFields
	case EvPoolLight: // up arrow
		c.cfg.Adjust(c.menuField, 1)
	case EvSpaJets: // down arrow
		c.cfg.Adjust(c.menuField, -1)
	}
}
