package periph

import (
	"fmt"
	"time"
)

// DateTimeSize is the packed size of a DateTime in bytes.
const DateTimeSize = 8

// Meridiem values for the Meridiem field.
const (
	AM byte = 0
	PM byte = 1
)

// DateTime is the wall-clock timestamp in the hardware clock's register
// layout: one byte per field, 12-hour format.
//
// Field ranges (inclusive):
//   - Sec: 0-59
//   - Min: 0-59
//   - Hour: 1-12
//   - Meridiem: AM or PM
//   - Day: 1-7 (day of week, 1 = Sunday)
//   - Date: 1-31, valid for Month
//   - Month: 1-12
//   - Year: 0-99 (years since 2000)
type DateTime struct {
	Sec, Min, Hour, Meridiem, Day, Date, Month, Year byte
}

// FallbackDateTime is the fixed substitute used when the hardware clock
// reads back out-of-range fields ("clock bad"). Saturday 2022-01-01,
// 12:00:00 AM.
var FallbackDateTime = DateTime{
	Sec: 0, Min: 0, Hour: 12, Meridiem: AM,
	Day: 7, Date: 1, Month: 1, Year: 22,
}

// daysInMonth returns the number of days in the given month, accounting
// for leap years in the 2000-2099 window the year byte covers.
func daysInMonth(month, year byte) byte {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 { // 2000-2099: every fourth year is a leap year
			return 29
		}
		return 28
	default:
		return 31
	}
}

// Validate reports whether every field is within its legal range.
// Any out-of-range field means the hardware clock cannot be trusted.
func (dt DateTime) Validate() error {
	switch {
	case dt.Sec > 59:
		return fmt.Errorf("%w: sec=%d", ErrBadDateTime, dt.Sec)
	case dt.Min > 59:
		return fmt.Errorf("%w: min=%d", ErrBadDateTime, dt.Min)
	case dt.Hour < 1 || dt.Hour > 12:
		return fmt.Errorf("%w: hour=%d", ErrBadDateTime, dt.Hour)
	case dt.Meridiem > PM:
		return fmt.Errorf("%w: meridiem=%d", ErrBadDateTime, dt.Meridiem)
	case dt.Day < 1 || dt.Day > 7:
		return fmt.Errorf("%w: day=%d", ErrBadDateTime, dt.Day)
	case dt.Month < 1 || dt.Month > 12:
		return fmt.Errorf("%w: month=%d", ErrBadDateTime, dt.Month)
	case dt.Date < 1 || dt.Date > daysInMonth(dt.Month, dt.Year):
		return fmt.Errorf("%w: date=%d for month %d", ErrBadDateTime, dt.Date, dt.Month)
	}
	return nil
}

// Pack encodes the datetime into its 8-byte persisted form.
func (dt DateTime) Pack() [DateTimeSize]byte {
	return [DateTimeSize]byte{
		dt.Sec, dt.Min, dt.Hour, dt.Meridiem,
		dt.Day, dt.Date, dt.Month, dt.Year,
	}
}

// UnpackDateTime decodes a datetime from its 8-byte persisted form.
// It does not validate field ranges; callers that care should call
// Validate on the result.
func UnpackDateTime(b [DateTimeSize]byte) DateTime {
	return DateTime{
		Sec: b[0], Min: b[1], Hour: b[2], Meridiem: b[3],
		Day: b[4], Date: b[5], Month: b[6], Year: b[7],
	}
}

// hour24 converts the 12-hour fields to a 0-23 hour.
func (dt DateTime) hour24() int {
	h := int(dt.Hour) % 12
	if dt.Meridiem == PM {
		h += 12
	}
	return h
}

// Time converts to a time.Time in the given location.
func (dt DateTime) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(2000+int(dt.Year), time.Month(dt.Month), int(dt.Date),
		dt.hour24(), int(dt.Min), int(dt.Sec), 0, loc)
}

// FromTime converts a time.Time to the hardware clock layout.
func FromTime(t time.Time) DateTime {
	hour := byte(t.Hour() % 12)
	meridiem := AM
	if t.Hour() >= 12 {
		meridiem = PM
	}
	if hour == 0 {
		hour = 12
	}
	return DateTime{
		Sec:      byte(t.Second()),
		Min:      byte(t.Minute()),
		Hour:     hour,
		Meridiem: meridiem,
		Day:      byte(t.Weekday()) + 1,
		Date:     byte(t.Day()),
		Month:    byte(t.Month()),
		Year:     byte(t.Year() % 100),
	}
}

// String formats as "yyyy-mm-dd hh:mm:ss xM", the format used by the
// event log and temperature history dumps.
func (dt DateTime) String() string {
	meridiem := "AM"
	if dt.Meridiem == PM {
		meridiem = "PM"
	}
	return fmt.Sprintf("20%02d-%02d-%02d %02d:%02d:%02d %s",
		dt.Year, dt.Month, dt.Date, dt.Hour, dt.Min, dt.Sec, meridiem)
}

// SameDate reports whether two datetimes fall on the same calendar date.
// Used to latch the daily filter autostart.
func (dt DateTime) SameDate(other DateTime) bool {
	return dt.Date == other.Date && dt.Month == other.Month && dt.Year == other.Year
}
