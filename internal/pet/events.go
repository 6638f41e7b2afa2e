package pet

import (
	"strings"
	"time"
)

// EventEffect is the stat change encoded in a random-event line.
type EventEffect struct {
	Token string  // matched token, "" if the line has none
	Stat  string  // hunger, happiness or energy
	Delta float64 // +1 or -1
}

// eventTokens is the precedence order for effect tokens.
// When a line carries several tokens, the earliest entry in this list wins,
// regardless of where the tokens sit in the text.
var eventTokens = []EventEffect{
	{Token: "hunger+", Stat: StatHunger, Delta: 1},
	{Token: "hunger-", Stat: StatHunger, Delta: -1},
	{Token: "happy+", Stat: StatHappiness, Delta: 1},
	{Token: "happy-", Stat: StatHappiness, Delta: -1},
	{Token: "energy+", Stat: StatEnergy, Delta: 1},
	{Token: "energy-", Stat: StatEnergy, Delta: -1},
}

// ParseEventEffect returns the effect of an event line (case-insensitive).
// Lines without a token yield a zero EventEffect.
func ParseEventEffect(line string) EventEffect {
	lower := strings.ToLower(line)
	for _, eff := range eventTokens {
		if strings.Contains(lower, eff.Token) {
			return eff
		}
	}
	return EventEffect{}
}

// Event scheduling limits, in real time.
const (
	MaxEventsPerHour  = 2
	firstEventMin     = 900 // seconds
	firstEventSpread  = 900
	nextEventMin      = 1800
	nextEventSpread   = 1800
	eventDisplayTicks = 30
)

// EventScheduler decides when a random environmental event is due.
// It runs on real time only and is decoupled from the tick cadence.
type EventScheduler struct {
	start time.Time
	next  time.Time
	rng   Rand
}

// NewEventScheduler schedules the first event uniform[900,1800) seconds after start.
func NewEventScheduler(start time.Time, rng Rand) *EventScheduler {
	offset := time.Duration(firstEventMin+rng.Intn(firstEventSpread)) * time.Second
	return &EventScheduler{
		start: start,
		next:  start.Add(offset),
		rng:   rng,
	}
}

// Next returns the earliest real time at which an event may fire.
func (s *EventScheduler) Next() time.Time {
	return s.next
}

// Due reports whether an event should fire now for the given engine state.
func (s *EventScheduler) Due(now time.Time, st *State) bool {
	return st.RandomEventsThisHour < MaxEventsPerHour &&
		!now.Before(s.next) &&
		!st.Away
}

// Fire consumes one unit of the hourly budget, reschedules the next event
// uniform[1800,3600) seconds from now and flags the engine to apply it.
func (s *EventScheduler) Fire(now time.Time, e *Engine) {
	e.state.RandomEventsThisHour++
	s.next = now.Add(time.Duration(nextEventMin+s.rng.Intn(nextEventSpread)) * time.Second)
	e.QueueEvent()
	e.log.Debug("random event scheduled",
		"this_hour", e.state.RandomEventsThisHour,
		"next", s.next.Format(time.Kitchen),
	)
}

// Poll fires an event if one is due. It returns true when it fired.
func (s *EventScheduler) Poll(now time.Time, e *Engine) bool {
	if !s.Due(now, e.state) {
		return false
	}
	s.Fire(now, e)
	return true
}

// applyEvent shows a random event line and applies its effect.
func (e *Engine) applyEvent() Status {
	e.state.EventPending = false
	if len(e.tables.Events) == 0 {
		return StatusOngoing
	}

	line := pick(e.rng, e.tables.Events)
	e.setMessage(line, eventDisplayTicks)

	eff := ParseEventEffect(line)
	s := e.state
	switch eff.Stat {
	case StatHunger:
		s.Hunger = clamp(s.Hunger + eff.Delta)
	case StatHappiness:
		// A sick pet cannot be cheered up, mirroring play.
		if eff.Delta < 0 || !s.Sick {
			s.Happiness = clamp(s.Happiness + eff.Delta)
		}
	case StatEnergy:
		s.Energy = clamp(s.Energy + eff.Delta)
	}
	e.log.Info("random event", "text", line, "token", eff.Token)

	if s.anyPrimaryZero() {
		return StatusDied
	}
	return StatusOngoing
}
