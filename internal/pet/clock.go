package pet

import (
	"fmt"
	"time"
)

// Default timing. One tick is NeedsInterval / TicksPerInterval of real time,
// i.e. one second with the defaults; every duration the engine counts is in ticks.
const (
	DefaultNeedsInterval    = 120 * time.Second
	DefaultTicksPerInterval = 120
)

// Clock maps real elapsed time to the number of ticks that should have run.
type Clock struct {
	NeedsInterval    time.Duration
	TicksPerInterval int
}

// NewClock returns a clock with the given interval and ratio.
// Non-positive arguments fall back to the defaults.
func NewClock(needsInterval time.Duration, ticksPerInterval int) Clock {
	if needsInterval <= 0 {
		needsInterval = DefaultNeedsInterval
	}
	if ticksPerInterval <= 0 {
		ticksPerInterval = DefaultTicksPerInterval
	}
	return Clock{
		NeedsInterval:    needsInterval,
		TicksPerInterval: ticksPerInterval,
	}
}

// TicksAt returns floor(elapsed / NeedsInterval * TicksPerInterval).
func (c Clock) TicksAt(elapsed time.Duration) int64 {
	if elapsed <= 0 {
		return 0
	}
	// Integer arithmetic avoids float drift on long runs.
	return int64(elapsed) * int64(c.TicksPerInterval) / int64(c.NeedsInterval)
}

// Owed returns how many ticks must run now, given ran ticks already executed.
// A clock discontinuity can make this negative; it is clamped to zero.
func (c Clock) Owed(elapsed time.Duration, ran int64) int64 {
	owed := c.TicksAt(elapsed) - ran
	if owed < 0 {
		return 0
	}
	return owed
}

// IntervalTicks is the needs interval expressed in ticks.
func (c Clock) IntervalTicks() int64 {
	return int64(c.TicksPerInterval)
}

// MinutesPerAdvance is how far the step-mode display clock moves per advance.
func (c Clock) MinutesPerAdvance() int {
	return int(c.NeedsInterval/time.Second) / 60
}

// Signals are the calendar-derived triggers for one loop iteration.
type Signals struct {
	Hour                 int
	HourChanged          bool
	MoodBlockChanged     bool
	WeatherPeriodChanged bool
}

// Calendar tracks which hour, mood block and weather period were last seen.
// The zero value fires every signal on its first observation.
type Calendar struct {
	loc           *time.Location
	seen          bool
	lastHour      int
	lastMoodBlock int
	lastPeriod    int
}

// NewCalendar creates a calendar reading wall-clock hours in loc (nil means local).
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc}
}

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Observe derives the signals for t and records them as seen.
func (c *Calendar) Observe(t time.Time) Signals {
	hour := t.In(c.loc).Hour()
	block := hour / 8
	period := 0
	if hour >= 12 {
		period = 1
	}

	sig := Signals{
		Hour:                 hour,
		HourChanged:          !c.seen || hour != c.lastHour,
		MoodBlockChanged:     !c.seen || block != c.lastMoodBlock,
		WeatherPeriodChanged: !c.seen || period != c.lastPeriod,
	}

	c.seen = true
	c.lastHour = hour
	c.lastMoodBlock = block
	c.lastPeriod = period
	return sig
}

// ClockText formats t as the HH:MM header shown in real-time mode.
func (c *Calendar) ClockText(t time.Time) string {
	return t.In(c.loc).Format("15:04")
}

// advanceClockText moves an HH:MM display string forward by minutes.
// Hours run 1..12; wrapping past 12 returns true so the caller can flip day/night.
func advanceClockText(text string, minutes int) (string, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(text, "%d:%d", &hour, &minute); err != nil {
		hour, minute = 0, 0
	}

	minute += minutes
	wrapped := false
	for minute >= 60 {
		minute -= 60
		hour++
		if hour > 12 {
			hour = 1
			wrapped = true
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), wrapped
}
