package controller

import "sync"

// Display geometry, matching the 4x20 character panel.
const (
	ViewRows = 4
	ViewCols = 20
)

// Frame is one immutable snapshot of the display: four fixed-width rows
// plus the cursor state. External renderers (the character display
// driver, the status web page) pull frames and never write back.
type Frame struct {
	Lines     [ViewRows]string
	CursorRow int
	CursorCol int
	CursorOn  bool
}

// View is the shared display buffer the control loop renders into.
//
// Thread Safety: safe for concurrent use; the loop writes, renderers read.
type View struct {
	mu    sync.RWMutex
	frame Frame
}

// NewView returns a blank view.
func NewView() *View {
	v := &View{}
	for i := range v.frame.Lines {
		v.frame.Lines[i] = blankLine()
	}
	return v
}

func blankLine() string {
	return "                    " // ViewCols spaces
}

// SetLine replaces one row, padded or truncated to the display width.
// It reports false for an out-of-range row without touching the frame;
// the controller treats that as an invariant violation.
func (v *View) SetLine(row int, text string) bool {
	if row < 0 || row >= ViewRows {
		return false
	}
	if len(text) > ViewCols {
		text = text[:ViewCols]
	}
	for len(text) < ViewCols {
		text += " "
	}
	v.mu.Lock()
	v.frame.Lines[row] = text
	v.mu.Unlock()
	return true
}

// SetCursor places the blinking cursor, used by the configuration editor
// to mark the field being adjusted.
func (v *View) SetCursor(row, col int, blink bool) {
	v.mu.Lock()
	v.frame.CursorRow = row
	v.frame.CursorCol = col
	v.frame.CursorOn = blink
	v.mu.Unlock()
}

// HideCursor turns the cursor off.
func (v *View) HideCursor() {
	v.SetCursor(0, 0, false)
}

// Snapshot returns a copy of the current frame.
func (v *View) Snapshot() Frame {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.frame
}
