package domain

import (
	"encoding/json"
	"time"
)

// =============================================================================
// DAY - Calendar-day granularity time point
// =============================================================================

// Day is a calendar day in UTC. Scheduling, rest periods and weekday masks
// all operate at day granularity; only the final task timestamp carries a
// clock time.
type Day struct {
	t time.Time
}

const dayLayout = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

func Today() Day {
	return DayOf(time.Now().UTC())
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// Epoch is the sentinel "available immediately" date for workers with no
// task history.
func Epoch() Day {
	return NewDay(1970, time.January, 1)
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.t.After(other.t) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// Properties
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }
func (d Day) Time() time.Time       { return d.t }

// At combines the day with a clock time, e.g. morning shift at 09:30.
func (d Day) At(hour, minute int) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), hour, minute, 0, 0, time.UTC)
}

func (d Day) String() string {
	return d.t.Format(dayLayout)
}

// Days serialize as "2006-01-02" so snapshot keys stay readable.
func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MaxDay returns the later of two days.
func MaxDay(a, b Day) Day {
	if a.After(b) {
		return a
	}
	return b
}
