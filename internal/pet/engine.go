package pet

import (
	"io"

	"github.com/charmbracelet/log"
)

// Durations in ticks.
const (
	wanderAfterTicks   = 300 // idle time before the pet may wander off
	awayCooldownTicks  = 600 // minimum gap between returning and leaving again
	awayDurationTicks  = 300 // how long a wander lasts
	phraseWindowTicks  = 120 // how long a needs phrase stays active
	clockAdvanceTicks  = 60  // step-mode display clock cadence
	actionMessageTicks = 30
)

// Probabilities rolled by the engine.
const (
	returnWellChance   = 0.8
	returnIckyChance   = 0.2
	phraseSpawnChance  = 0.01
	sicknessChance     = 0.1
	cureChance         = 0.45
	moodChangeChance   = 0.5
	fairWeatherChance  = 0.8
	weatherSickChance  = 0.2
	returnRestoreBoost = 1.5
)

// Display lines the engine falls back to.
const (
	blankMessage  = "           "
	idleMessage   = "Thanks for hanging out, friend!"
	fillerMessage = "I wonder what we're doing next!"
)

// Engine owns a State and advances it. It is not safe for concurrent use:
// exactly one goroutine calls Tick and the action handlers.
type Engine struct {
	state    *State
	tables   Tables
	rng      Rand
	clock    Clock
	realTime bool
	log      *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine lifecycle logs to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock sets the tick/interval mapping.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithRealTime marks the engine as driven by the wall clock. The header
// clock is then set by the caller instead of advancing per tick.
func WithRealTime() Option {
	return func(e *Engine) {
		e.realTime = true
	}
}

// New creates an engine with a fresh pet.
func New(tables Tables, rng Rand, opts ...Option) *Engine {
	e := &Engine{
		state:  newState(),
		tables: tables,
		rng:    rng,
		clock:  NewClock(DefaultNeedsInterval, DefaultTicksPerInterval),
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ticks returns how many ticks have run.
func (e *Engine) Ticks() int64 {
	return e.state.Now
}

// Clock returns the engine's tick mapping.
func (e *Engine) Clock() Clock {
	return e.clock
}

// Away reports whether the pet is currently wandering.
func (e *Engine) Away() bool {
	return e.state.Away
}

// QueueEvent flags a random event to be applied on the next tick.
func (e *Engine) QueueEvent() {
	e.state.EventPending = true
}

// NoteInput records that the player did something on the current tick.
func (e *Engine) NoteInput() {
	e.state.LastInputTime = e.state.Now
}

// Say shows arbitrary text as a transient message. It has no stat effect.
func (e *Engine) Say(text string) {
	e.setMessage(text, actionMessageTicks)
}

// SetClockText sets the header clock (real-time mode).
func (e *Engine) SetClockText(text string) {
	e.state.ClockText = text
}

// ApplyCalendar reacts to wall-clock boundaries: day/night and the event
// budget on the hour, mood on 8-hour blocks, weather on AM/PM.
func (e *Engine) ApplyCalendar(sig Signals) {
	s := e.state

	if sig.HourChanged {
		s.RandomEventsThisHour = 0
		s.DayTime = sig.Hour >= 6 && sig.Hour < 18
	}

	if sig.MoodBlockChanged && chance(e.rng, moodChangeChance) {
		s.Mood = pick(e.rng, Moods)
		e.log.Debug("mood changed", "mood", s.Mood)
	}

	if sig.WeatherPeriodChanged {
		if chance(e.rng, fairWeatherChance) {
			s.Weather = pick(e.rng, fairWeather)
		} else {
			s.Weather = pick(e.rng, foulWeather)
			if chance(e.rng, weatherSickChance) {
				s.Sick = true
				e.log.Info("caught a chill", "weather", s.Weather)
			}
		}
	}
}

// setMessage shows text until duration ticks from now.
func (e *Engine) setMessage(text string, duration int64) {
	e.state.Message = text
	e.state.MessageExpiry = e.state.Now + duration
}

// Tick advances the simulation by one tick and reports the outcome.
func (e *Engine) Tick() Status {
	s := e.state
	s.Now++

	e.advanceClock()

	if s.Now > s.MessageExpiry {
		s.Message = idleMessage
	}

	e.maybeWander()

	// A depleted pet that is away never comes back; this is checked before
	// the return roll so an expired wander cannot rescue it.
	if s.Away && s.anyPrimaryAtOrBelowZero() {
		return e.finish(StatusNeverReturns)
	}

	e.maybeReturn()

	if status := e.decay(); status.Terminal() {
		return e.finish(status)
	}

	if s.EventPending {
		if status := e.applyEvent(); status.Terminal() {
			return e.finish(status)
		}
	}

	e.maybeSpawnPhrase()
	e.expirePhrase()

	overCap := s.Hunger > MaxStat || s.Energy > 9
	s.Hunger = clamp(s.Hunger)
	s.Happiness = clamp(s.Happiness)
	s.Energy = clamp(s.Energy)

	if overCap && chance(e.rng, sicknessChance) {
		s.Sick = true
		e.log.Info("got sick from overdoing it")
	}

	if s.anyPrimaryAtOrBelowZero() {
		return e.finish(StatusDied)
	}
	return StatusOngoing
}

// advanceClock moves the step-mode header clock every clockAdvanceTicks.
func (e *Engine) advanceClock() {
	s := e.state
	if e.realTime || s.Now-s.lastClockUpdate < clockAdvanceTicks {
		return
	}
	s.lastClockUpdate = s.Now

	text, wrapped := advanceClockText(s.ClockText, e.clock.MinutesPerAdvance())
	s.ClockText = text
	if wrapped {
		s.DayTime = !s.DayTime
	}
}

// maybeWander sends an idle pet off, at most once per cooldown.
func (e *Engine) maybeWander() {
	s := e.state
	if s.Away || s.Now-s.LastInputTime < wanderAfterTicks {
		return
	}
	if s.AwayUsed > 0 && s.Now-s.LastAwayEnd < awayCooldownTicks {
		return
	}

	s.Away = true
	s.AwayStart = s.Now
	e.setMessage("Wandering off...", actionMessageTicks)
	e.log.Info("wandered off", "tick", s.Now)
}

// maybeReturn brings the pet back after awayDurationTicks and rolls the outcome.
func (e *Engine) maybeReturn() {
	s := e.state
	if !s.Away || s.Now-s.AwayStart < awayDurationTicks {
		return
	}

	s.Away = false
	s.LastAwayEnd = s.Now

	switch {
	case chance(e.rng, returnWellChance):
		switch lowestPrimary(s) {
		case StatHunger:
			s.Hunger = clamp(s.Hunger + returnRestoreBoost)
		case StatHappiness:
			if !s.Sick {
				s.Happiness = clamp(s.Happiness + returnRestoreBoost)
			}
		case StatEnergy:
			s.Energy = clamp(s.Energy + returnRestoreBoost)
		}
		e.setMessage("Returned feeling better about life!", actionMessageTicks)
	case chance(e.rng, returnIckyChance):
		s.Sick = true
		e.setMessage("Returned feeling icky...", actionMessageTicks)
	default:
		e.setMessage("Scraped my knee...", actionMessageTicks)
	}

	s.AwayUsed++
	e.log.Info("returned", "tick", s.Now, "message", s.Message, "away_used", s.AwayUsed)
}

// lowestPrimary names the lowest of hunger, happiness and energy.
// Ties resolve left to right.
func lowestPrimary(s *State) string {
	name, low := StatHunger, s.Hunger
	if s.Happiness < low {
		name, low = StatHappiness, s.Happiness
	}
	if s.Energy < low {
		name = StatEnergy
	}
	return name
}

// decay applies the periodic needs decrement once per needs interval.
func (e *Engine) decay() Status {
	s := e.state
	if s.Away || s.Now-s.LastNeedsUpdate < e.clock.IntervalTicks() {
		return StatusOngoing
	}
	s.LastNeedsUpdate = s.Now

	d := 0.5
	if s.Sick {
		d = 0.2
	}

	if s.Mood == MoodSad {
		s.Happiness = floor(s.Happiness - 0.2)
	}

	if s.DayTime {
		s.Hunger = floor(s.Hunger - d*1.2)
	} else {
		s.Hunger = floor(s.Hunger - d)
	}

	switch {
	case s.Mood == MoodExcited:
		s.Energy = floor(s.Energy - d*1.5)
	case s.DayTime:
		s.Energy = floor(s.Energy - d)
	default:
		s.Energy = floor(s.Energy - d*1.2)
	}

	if !s.Sick {
		s.Happiness = floor(s.Happiness - d)
	}

	if s.anyPrimaryZero() {
		return StatusDied
	}

	s.Friendship = floor(s.Friendship - 0.1)
	if s.Friendship == 0 {
		return StatusRanAway
	}
	return StatusOngoing
}

// maybeSpawnPhrase occasionally voices a need.
func (e *Engine) maybeSpawnPhrase() {
	s := e.state
	if s.Sick || s.Away || len(e.tables.Phrases) == 0 || s.ActivePhrase != nil {
		return
	}
	if !chance(e.rng, phraseSpawnChance) {
		return
	}

	phrase := pick(e.rng, e.tables.Phrases)
	s.ActivePhrase = &ActivePhrase{Phrase: phrase, Started: s.Now}
	e.setMessage(phrase.Text, phraseWindowTicks)
	e.log.Debug("needs phrase", "text", phrase.Text, "stat", phrase.Stat)
}

// expirePhrase drops a phrase nobody answered.
func (e *Engine) expirePhrase() {
	s := e.state
	if s.ActivePhrase == nil || s.Now-s.ActivePhrase.Started <= phraseWindowTicks {
		return
	}
	if s.Message == s.ActivePhrase.Phrase.Text {
		s.Message = fillerMessage
	}
	s.ActivePhrase = nil
}

// finish logs a terminal status on its way out.
func (e *Engine) finish(status Status) Status {
	e.log.Info("run over", "status", status, "tick", e.state.Now)
	return status
}
