package periph

import (
	"errors"
	"testing"
	"time"
)

func TestDateTime_PackUnpack(t *testing.T) {
	dt := DateTime{
		Sec: 30, Min: 45, Hour: 7, Meridiem: PM,
		Day: 3, Date: 15, Month: 6, Year: 24,
	}

	got := UnpackDateTime(dt.Pack())
	if got != dt {
		t.Errorf("round trip = %+v, want %+v", got, dt)
	}
}

func TestDateTime_Validate(t *testing.T) {
	valid := DateTime{Sec: 0, Min: 0, Hour: 1, Meridiem: AM, Day: 1, Date: 1, Month: 1, Year: 22}

	tests := []struct {
		name    string
		mutate  func(*DateTime)
		wantErr bool
	}{
		{"valid", func(*DateTime) {}, false},
		{"sec too large", func(dt *DateTime) { dt.Sec = 60 }, true},
		{"min too large", func(dt *DateTime) { dt.Min = 60 }, true},
		{"hour zero", func(dt *DateTime) { dt.Hour = 0 }, true},
		{"hour thirteen", func(dt *DateTime) { dt.Hour = 13 }, true},
		{"bad meridiem", func(dt *DateTime) { dt.Meridiem = 2 }, true},
		{"day zero", func(dt *DateTime) { dt.Day = 0 }, true},
		{"day eight", func(dt *DateTime) { dt.Day = 8 }, true},
		{"month zero", func(dt *DateTime) { dt.Month = 0 }, true},
		{"month thirteen", func(dt *DateTime) { dt.Month = 13 }, true},
		{"date zero", func(dt *DateTime) { dt.Date = 0 }, true},
		{"feb 30", func(dt *DateTime) { dt.Month = 2; dt.Date = 30 }, true},
		{"feb 29 leap year", func(dt *DateTime) { dt.Month = 2; dt.Date = 29; dt.Year = 24 }, false},
		{"feb 29 non-leap year", func(dt *DateTime) { dt.Month = 2; dt.Date = 29; dt.Year = 23 }, true},
		{"april 31", func(dt *DateTime) { dt.Month = 4; dt.Date = 31 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt := valid
			tt.mutate(&dt)
			err := dt.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%+v) = nil, want error", dt)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%+v) = %v, want nil", dt, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrBadDateTime) {
				t.Errorf("error %v is not ErrBadDateTime", err)
			}
		})
	}
}

func TestDateTime_FromTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want DateTime
	}{
		{
			name: "afternoon",
			in:   time.Date(2024, 6, 15, 15, 4, 5, 0, time.UTC),
			want: DateTime{Sec: 5, Min: 4, Hour: 3, Meridiem: PM, Day: 7, Date: 15, Month: 6, Year: 24},
		},
		{
			name: "midnight is 12 AM",
			in:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			want: DateTime{Sec: 0, Min: 0, Hour: 12, Meridiem: AM, Day: 7, Date: 1, Month: 1, Year: 22},
		},
		{
			name: "noon is 12 PM",
			in:   time.Date(2022, 1, 1, 12, 0, 0, 0, time.UTC),
			want: DateTime{Sec: 0, Min: 0, Hour: 12, Meridiem: PM, Day: 7, Date: 1, Month: 1, Year: 22},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTime(tt.in)
			if got != tt.want {
				t.Errorf("FromTime(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
			back := got.Time(time.UTC)
			if !back.Equal(tt.in) {
				t.Errorf("Time() = %v, want %v", back, tt.in)
			}
		})
	}
}

func TestDateTime_String(t *testing.T) {
	dt := DateTime{Sec: 5, Min: 4, Hour: 3, Meridiem: PM, Day: 7, Date: 15, Month: 6, Year: 24}
	want := "2024-06-15 03:04:05 PM"
	if got := dt.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFallbackDateTime_IsValid(t *testing.T) {
	if err := FallbackDateTime.Validate(); err != nil {
		t.Errorf("fallback datetime does not validate: %v", err)
	}
}

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock(DateTime{Sec: 58, Min: 59, Hour: 11, Meridiem: AM, Day: 1, Date: 1, Month: 1, Year: 22})
	clk.Advance(3)

	now, err := clk.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := DateTime{Sec: 1, Min: 0, Hour: 12, Meridiem: PM, Day: 1, Date: 1, Month: 1, Year: 22}
	if now != want {
		t.Errorf("after advance = %+v, want %+v", now, want)
	}
}
