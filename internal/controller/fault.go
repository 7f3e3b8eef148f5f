package controller

import (
	"fmt"

	"github.com/sawmill/pool-core/internal/eventlog"
)

// fatalf is the single invariant-violation path. It records the
// assertion, paints the diagnostic frame and hands off to the fault
// hook. The default hook parks the loop; the watchdog then goes unfed
// and the external reset circuit restarts the box.
func (c *Controller) fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.logger.Error("assertion failed", "detail", msg)

	// Best effort: the log itself may be what failed.
	_ = c.log.Append(c.ctx, eventlog.KindAssertFailed, msg)

	c.view.HideCursor()
	c.view.SetLine(0, "** HALTED **")
	c.view.SetLine(1, msg)
	c.view.SetLine(2, blankLine())
	c.view.SetLine(3, "power cycle to reset")
	c.publishStatus()

	c.fault(msg)
}
