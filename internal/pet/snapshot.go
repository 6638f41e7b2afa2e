package pet

// Snapshot is a read-only copy of everything the display needs.
// It is a plain value so it can be handed across goroutines.
type Snapshot struct {
	Tick int64

	Hunger     float64
	Happiness  float64
	Energy     float64
	Friendship float64

	Sick     bool
	Away     bool
	AwayUsed int

	Mood    Mood
	Weather Weather
	DayTime bool

	Message   string
	ClockText string

	// Phrase is the outstanding need, empty when there is none.
	Phrase     string
	PhraseStat string
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := e.state
	snap := Snapshot{
		Tick:       s.Now,
		Hunger:     s.Hunger,
		Happiness:  s.Happiness,
		Energy:     s.Energy,
		Friendship: s.Friendship,
		Sick:       s.Sick,
		Away:       s.Away,
		AwayUsed:   s.AwayUsed,
		Mood:       s.Mood,
		Weather:    s.Weather,
		DayTime:    s.DayTime,
		Message:    s.Message,
		ClockText:  s.ClockText,
	}
	if s.ActivePhrase != nil {
		snap.Phrase = s.ActivePhrase.Phrase.Text
		snap.PhraseStat = s.ActivePhrase.Phrase.Stat
	}
	return snap
}

// Total is the sum of the three primary stats.
func (s Snapshot) Total() float64 {
	return s.Hunger + s.Happiness + s.Energy
}
