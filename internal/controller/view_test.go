package controller

import "testing"

func TestView_LinesFixedWidth(t *testing.T) {
	v := NewView()
	if !v.SetLine(1, "Mode: idle") {
		t.Error("in-range row rejected")
	}
	v.SetLine(2, "this line is far too long for the panel")
	if v.SetLine(-1, "dropped") {
		t.Error("negative row accepted")
	}
	if v.SetLine(ViewRows, "dropped") {
		t.Error("row past the panel accepted")
	}

	f := v.Snapshot()
	for i, line := range f.Lines {
		if len(line) != ViewCols {
			t.Errorf("line %d width = %d, want %d", i, len(line), ViewCols)
		}
	}
	if f.Lines[1][:10] != "Mode: idle" {
		t.Errorf("line 1 = %q", f.Lines[1])
	}
	if f.Lines[2] != "this line is far too" {
		t.Errorf("line 2 = %q", f.Lines[2])
	}
}

func TestView_Cursor(t *testing.T) {
	v := NewView()
	v.SetCursor(2, 7, true)
	f := v.Snapshot()
	if f.CursorRow != 2 || f.CursorCol != 7 || !f.CursorOn {
		t.Errorf("cursor = %+v", f)
	}
	v.HideCursor()
	if v.Snapshot().CursorOn {
		t.Error("cursor should be hidden")
	}
}
