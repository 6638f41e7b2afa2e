// Package pet implements the companion simulation: the per-tick state
// transition, the action handlers, environmental cycles, random events and
// needs phrases. It has no terminal or I/O dependencies; the platform layer
// owns timing, input and rendering.
package pet

import (
	"math"
	"strings"
)

// Stat bounds and the starting value of every stat.
const (
	MinStat     = 0.0
	MaxStat     = 10.0
	InitialStat = 5.0

	// Values closer than this to the floor are treated as exactly zero,
	// so repeated 0.1 decrements land on 0 instead of a float residue.
	zeroEpsilon = 1e-9
)

// Mood is the pet's current disposition, re-rolled on 8-hour blocks.
type Mood string

const (
	MoodContent Mood = "content"
	MoodSad     Mood = "sad"
	MoodExcited Mood = "excited"
)

// Moods lists the moods in the order they are sampled from.
var Moods = []Mood{MoodContent, MoodSad, MoodExcited}

// Weather is the current weather, re-rolled at AM/PM boundaries.
type Weather string

const (
	WeatherClear  Weather = "Clear"
	WeatherCloudy Weather = "Cloudy"
	WeatherRain   Weather = "Rain"
	WeatherSnow   Weather = "Snow"
)

var (
	fairWeather = []Weather{WeatherClear, WeatherCloudy}
	foulWeather = []Weather{WeatherRain, WeatherSnow}
)

// Stat names a phrase can target.
const (
	StatHunger    = "hunger"
	StatHappiness = "happiness"
	StatEnergy    = "energy"
)

// NeedsPhrase is one record of the needs-phrase table.
type NeedsPhrase struct {
	Text      string
	Stat      string // hunger, happiness, energy; "" for malformed records
	Magnitude float64
}

// Targets reports whether the phrase targets the named stat (case-insensitive).
func (p NeedsPhrase) Targets(stat string) bool {
	return p.Stat != "" && strings.EqualFold(p.Stat, stat)
}

// Tables holds the read-only resource sequences handed to the engine.
type Tables struct {
	Phrases []NeedsPhrase
	Events  []string
}

// ActivePhrase is an outstanding need together with the tick it appeared on.
type ActivePhrase struct {
	Phrase  NeedsPhrase
	Started int64
}

// State is the mutable pet entity. It is owned by a single Engine and is
// never shared between goroutines.
type State struct {
	Hunger     float64
	Happiness  float64
	Energy     float64
	Friendship float64

	Sick bool

	Away        bool
	AwayStart   int64
	AwayUsed    int
	LastAwayEnd int64

	Mood    Mood
	Weather Weather
	DayTime bool

	ActivePhrase *ActivePhrase

	Message       string
	MessageExpiry int64

	// Tick counters
	Now             int64
	LastInputTime   int64
	LastNeedsUpdate int64
	lastClockUpdate int64

	RandomEventsThisHour int
	EventPending         bool

	ClockText string
}

// newState returns a pet with default stats.
func newState() *State {
	return &State{
		Hunger:     InitialStat,
		Happiness:  InitialStat,
		Energy:     InitialStat,
		Friendship: InitialStat,
		Mood:       MoodContent,
		Weather:    WeatherClear,
		DayTime:    true,
		Message:    blankMessage,
		ClockText:  "00:00",
	}
}

// anyPrimaryAtOrBelowZero reports whether hunger, happiness or energy is depleted.
func (s *State) anyPrimaryAtOrBelowZero() bool {
	return s.Hunger <= 0 || s.Happiness <= 0 || s.Energy <= 0
}

// anyPrimaryZero reports whether hunger, happiness or energy is exactly zero.
func (s *State) anyPrimaryZero() bool {
	return s.Hunger == 0 || s.Happiness == 0 || s.Energy == 0
}

// clamp bounds v to [MinStat, MaxStat], snapping float residue at the floor to zero.
func clamp(v float64) float64 {
	if v < zeroEpsilon {
		return MinStat
	}
	return math.Min(v, MaxStat)
}

// floor bounds v from below only.
func floor(v float64) float64 {
	if v < zeroEpsilon {
		return MinStat
	}
	return v
}
