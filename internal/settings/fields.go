package settings

import "fmt"

// Field identifies one editable parameter of the record. Fields are
// ordered the way the menu editor walks them.
type Field int

const (
	FieldFilterPoolMinutes Field = iota
	FieldFilterSpaMinutes
	FieldFilterStartHour
	FieldFilterStartMeridiem
	FieldHeaterAllowed

	NumFields
)

// Label returns the display name of the field, sized for a 20-column row.
func (f Field) Label() string {
	switch f {
	case FieldFilterPoolMinutes:
		return "Filter pool mins"
	case FieldFilterSpaMinutes:
		return "Filter spa mins"
	case FieldFilterStartHour:
		return "Filter start hour"
	case FieldFilterStartMeridiem:
		return "Filter start AM/PM"
	case FieldHeaterAllowed:
		return "Heater allowed"
	default:
		return "?"
	}
}

// Value renders the field's current value for display.
func (m *Manager) Value(f Field) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch f {
	case FieldFilterPoolMinutes:
		return fmt.Sprintf("%d", m.rec.FilterPoolMinutes)
	case FieldFilterSpaMinutes:
		return fmt.Sprintf("%d", m.rec.FilterSpaMinutes)
	case FieldFilterStartHour:
		return fmt.Sprintf("%d", m.rec.FilterStartHour)
	case FieldFilterStartMeridiem:
		if m.rec.FilterStartPM {
			return "PM"
		}
		return "AM"
	case FieldHeaterAllowed:
		if m.rec.HeaterAllowed {
			return "yes"
		}
		return "no"
	default:
		return "?"
	}
}

// Adjust moves the field by delta steps, clamping numeric fields to their
// bounds and toggling two-state fields on any nonzero delta. The record is
// marked dirty only when the stored value actually changed.
func (m *Manager) Adjust(f Field, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.rec
	switch f {
	case FieldFilterPoolMinutes:
		m.rec.FilterPoolMinutes = clampByte(int(m.rec.FilterPoolMinutes)+delta, minFilterMinutes, maxFilterMinutes)
	case FieldFilterSpaMinutes:
		m.rec.FilterSpaMinutes = clampByte(int(m.rec.FilterSpaMinutes)+delta, minFilterMinutes, maxFilterMinutes)
	case FieldFilterStartHour:
		m.rec.FilterStartHour = clampByte(int(m.rec.FilterStartHour)+delta, 1, 12)
	case FieldFilterStartMeridiem:
		if delta != 0 {
			m.rec.FilterStartPM = !m.rec.FilterStartPM
		}
	case FieldHeaterAllowed:
		if delta != 0 {
			m.rec.HeaterAllowed = !m.rec.HeaterAllowed
		}
	}
	if m.rec != before {
		m.dirty = true
	}
}

func clampByte(v, lo, hi int) byte {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return byte(v)
}
