package pet

import (
	"math"
	"testing"
)

// scriptedRand replays fixed rolls. Once a script runs out, Float64 returns
// 0.99 (no chance fires) and Intn returns 0.
type scriptedRand struct {
	floats     []float64
	ints       []int
	floatCalls int
}

func (r *scriptedRand) Float64() float64 {
	r.floatCalls++
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0] % n
	r.ints = r.ints[1:]
	return i
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestEngine(tables Tables, rng Rand) *Engine {
	return New(tables, rng)
}

func TestFeedFromDefaults(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})

	if status := e.Feed(); status != StatusOngoing {
		t.Fatalf("Feed() = %v, want ongoing", status)
	}

	s := e.state
	if !approx(s.Hunger, 6) {
		t.Errorf("Hunger = %v, want 6", s.Hunger)
	}
	if !approx(s.Energy, 4.75) {
		t.Errorf("Energy = %v, want 4.75", s.Energy)
	}
	if !approx(s.Friendship, 5.2) {
		t.Errorf("Friendship = %v, want 5.2", s.Friendship)
	}
	if !approx(s.Happiness, 5) {
		t.Errorf("Happiness = %v, want 5", s.Happiness)
	}
	if s.Message != "Eating..." {
		t.Errorf("Message = %q, want Eating...", s.Message)
	}
}

func TestPlayAndSleepDeltas(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.Play()
	if !approx(e.state.Happiness, 6) || !approx(e.state.Energy, 4.75) {
		t.Errorf("after Play: happiness %v energy %v", e.state.Happiness, e.state.Energy)
	}
	if e.state.Message != "Zoomies!!!" {
		t.Errorf("Message = %q, want Zoomies!!!", e.state.Message)
	}

	e.Sleep()
	if !approx(e.state.Energy, 5.75) || !approx(e.state.Hunger, 4.75) {
		t.Errorf("after Sleep: energy %v hunger %v", e.state.Energy, e.state.Hunger)
	}
	if e.state.Message != "Sleeping..." {
		t.Errorf("Message = %q, want Sleeping...", e.state.Message)
	}

	fresh := newTestEngine(Tables{}, &scriptedRand{})
	fresh.Sleep()
	if !approx(fresh.state.Energy, 6) || !approx(fresh.state.Hunger, 4.75) {
		t.Errorf("Sleep on a fresh pet: energy %v hunger %v", fresh.state.Energy, fresh.state.Hunger)
	}
	if !approx(e.state.Friendship, 5.4) {
		t.Errorf("Friendship = %v, want 5.4", e.state.Friendship)
	}
}

func TestPlayWhileSickKeepsHappiness(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.Sick = true

	e.Play()
	if !approx(e.state.Happiness, 5) {
		t.Errorf("Happiness = %v, want unchanged 5", e.state.Happiness)
	}
	if !approx(e.state.Energy, 4.75) {
		t.Errorf("Energy = %v, want 4.75", e.state.Energy)
	}
}

func TestFeedCuresSickness(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.3}})
	e.state.Sick = true
	e.Feed()
	if e.state.Sick {
		t.Error("expected a roll under 0.45 to cure sickness")
	}

	e = newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.5}})
	e.state.Sick = true
	e.Feed()
	if !e.state.Sick {
		t.Error("expected a roll over 0.45 to leave the pet sick")
	}
}

func TestActionDeath(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.Energy = 0.25

	if status := e.Feed(); status != StatusDied {
		t.Fatalf("Feed() = %v, want died", status)
	}
	if e.state.Energy != 0 {
		t.Errorf("Energy = %v, want exactly 0", e.state.Energy)
	}
}

func TestActionsIgnoredWhileAway(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.Away = true
	before := *e.state

	for _, act := range []func() Status{e.Feed, e.Play, e.Sleep} {
		if status := act(); status != StatusOngoing {
			t.Fatalf("action while away = %v, want ongoing", status)
		}
	}

	if *e.state != before {
		t.Errorf("state changed while away:\nbefore %+v\nafter  %+v", before, *e.state)
	}
}

func TestPhraseFulfilledOnce(t *testing.T) {
	phrase := NeedsPhrase{Text: "I'm so hungry", Stat: "Hunger", Magnitude: 0.5}
	e := newTestEngine(Tables{Phrases: []NeedsPhrase{phrase}}, &scriptedRand{})
	e.state.ActivePhrase = &ActivePhrase{Phrase: phrase}

	e.Feed()
	if !approx(e.state.Hunger, 5.5) {
		t.Errorf("Hunger = %v, want 5.5", e.state.Hunger)
	}
	if e.state.Message != "Thank you for feeding me!" {
		t.Errorf("Message = %q", e.state.Message)
	}
	if e.state.ActivePhrase != nil {
		t.Fatal("phrase not cleared after fulfilment")
	}

	e.Feed()
	if !approx(e.state.Hunger, 6.5) {
		t.Errorf("second Feed: Hunger = %v, want 6.5", e.state.Hunger)
	}
	if e.state.Message != "Eating..." {
		t.Errorf("second Feed: Message = %q", e.state.Message)
	}
}

func TestPhraseIgnoresOtherActions(t *testing.T) {
	phrase := NeedsPhrase{Text: "Let's play!", Stat: "happiness", Magnitude: 0.3}
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.ActivePhrase = &ActivePhrase{Phrase: phrase}

	e.Sleep()
	if e.state.ActivePhrase == nil {
		t.Fatal("sleep should not fulfil a happiness phrase")
	}
	e.Play()
	if e.state.ActivePhrase != nil {
		t.Fatal("play should fulfil a happiness phrase")
	}
	if !approx(e.state.Happiness, 5.7) {
		t.Errorf("Happiness = %v, want 5.7", e.state.Happiness)
	}
}

func TestMalformedPhraseNeverFulfilled(t *testing.T) {
	phrase := NeedsPhrase{Text: "garbled line"}
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.ActivePhrase = &ActivePhrase{Phrase: phrase}

	e.Feed()
	e.Play()
	e.Sleep()
	if e.state.ActivePhrase == nil {
		t.Error("a phrase without a stat should only clear on expiry")
	}
}

func TestPeriodicDecayKills(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.Now = 119
	e.state.Hunger = 0.25

	if status := e.Tick(); status != StatusDied {
		t.Fatalf("Tick() = %v, want died", status)
	}
	if e.state.Hunger != 0 {
		t.Errorf("Hunger = %v, want 0", e.state.Hunger)
	}
}

func TestPeriodicDecayRates(t *testing.T) {
	tests := []struct {
		name                  string
		sick, day             bool
		mood                  Mood
		hunger, happy, energy float64
	}{
		{"day content", false, true, MoodContent, 4.4, 4.5, 4.5},
		{"night content", false, false, MoodContent, 4.5, 4.5, 4.4},
		{"day excited", false, true, MoodExcited, 4.4, 4.5, 4.25},
		{"day sad", false, true, MoodSad, 4.4, 4.3, 4.5},
		{"sick day", true, true, MoodContent, 4.76, 5, 4.8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(Tables{}, &scriptedRand{})
			e.state.Now = 119
			e.state.lastClockUpdate = 119
			e.state.Sick = tc.sick
			e.state.DayTime = tc.day
			e.state.Mood = tc.mood

			if status := e.Tick(); status != StatusOngoing {
				t.Fatalf("Tick() = %v", status)
			}
			s := e.state
			if !approx(s.Hunger, tc.hunger) || !approx(s.Happiness, tc.happy) || !approx(s.Energy, tc.energy) {
				t.Errorf("got hunger %v happiness %v energy %v, want %v %v %v",
					s.Hunger, s.Happiness, s.Energy, tc.hunger, tc.happy, tc.energy)
			}
			if !approx(s.Friendship, 4.9) {
				t.Errorf("Friendship = %v, want 4.9", s.Friendship)
			}
		})
	}
}

func TestFriendshipRunsOut(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.state.Now = 119
	e.state.Friendship = 0.1

	if status := e.Tick(); status != StatusRanAway {
		t.Fatalf("Tick() = %v, want ran_away", status)
	}
	if e.state.anyPrimaryAtOrBelowZero() {
		t.Error("primary stats should still be positive")
	}
}

func TestNeverReturnsBeforeReturnRoll(t *testing.T) {
	rng := &scriptedRand{}
	e := newTestEngine(Tables{}, rng)
	e.state.Away = true
	e.state.AwayStart = 0
	e.state.Now = 299
	e.state.LastInputTime = 299
	e.state.Hunger = 0

	if status := e.Tick(); status != StatusNeverReturns {
		t.Fatalf("Tick() = %v, want never_returns", status)
	}
	if rng.floatCalls != 0 {
		t.Errorf("return roll consumed %d rolls, want 0", rng.floatCalls)
	}
}

func TestWanderAndReturn(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})

	for i := 0; i < 299; i++ {
		if status := e.Tick(); status != StatusOngoing {
			t.Fatalf("tick %d: %v", e.Ticks(), status)
		}
	}
	if e.Away() {
		t.Fatal("wandered before 300 idle ticks")
	}

	e.Tick()
	if !e.Away() {
		t.Fatal("expected the pet to wander at tick 300")
	}
	if e.state.Message != "Wandering off..." {
		t.Errorf("Message = %q", e.state.Message)
	}

	for e.Ticks() < 600 {
		if status := e.Tick(); status != StatusOngoing {
			t.Fatalf("tick %d: %v", e.Ticks(), status)
		}
	}
	if e.Away() {
		t.Fatal("expected the pet back at tick 600")
	}
	if e.state.AwayUsed != 1 {
		t.Errorf("AwayUsed = %d, want 1", e.state.AwayUsed)
	}
	if e.state.Message != "Scraped my knee..." {
		t.Errorf("Message = %q, want the scraped-knee return", e.state.Message)
	}

	for e.Ticks() < 1199 {
		if status := e.Tick(); status != StatusOngoing {
			t.Fatalf("tick %d: %v", e.Ticks(), status)
		}
		if e.Away() {
			t.Fatalf("left again at tick %d inside the cooldown", e.Ticks())
		}
	}
	e.Tick()
	if !e.Away() {
		t.Error("expected a second wander once the cooldown elapsed")
	}
}

func TestInputPreventsWandering(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	for i := 0; i < 500; i++ {
		if i%200 == 0 {
			e.NoteInput()
		}
		e.Tick()
		if e.Away() {
			t.Fatalf("wandered at tick %d despite input", e.Ticks())
		}
	}
}

func TestReturnRestoresLowestStat(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.1}})
	e.state.Away = true
	e.state.Now = 299
	e.state.LastInputTime = 299
	e.state.LastNeedsUpdate = 299
	e.state.Energy = 2

	e.Tick()
	if e.Away() {
		t.Fatal("expected return")
	}
	if !approx(e.state.Energy, 3.5) {
		t.Errorf("Energy = %v, want 3.5", e.state.Energy)
	}
	if e.state.Message != "Returned feeling better about life!" {
		t.Errorf("Message = %q", e.state.Message)
	}
}

func TestReturnIcky(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.9, 0.1}})
	e.state.Away = true
	e.state.Now = 299
	e.state.LastInputTime = 299

	e.Tick()
	if !e.state.Sick {
		t.Error("expected the pet to come back sick")
	}
}

func TestEventTreat(t *testing.T) {
	e := newTestEngine(Tables{Events: []string{"You found a treat! hunger+"}}, &scriptedRand{})
	e.QueueEvent()

	if status := e.Tick(); status != StatusOngoing {
		t.Fatalf("Tick() = %v", status)
	}
	s := e.state
	if !approx(s.Hunger, 6) || !approx(s.Happiness, 5) || !approx(s.Energy, 5) {
		t.Errorf("got hunger %v happiness %v energy %v", s.Hunger, s.Happiness, s.Energy)
	}
	if s.Message != "You found a treat! hunger+" {
		t.Errorf("Message = %q", s.Message)
	}
	if s.EventPending {
		t.Error("event still pending after tick")
	}

	e.state.Hunger = 10
	e.QueueEvent()
	e.Tick()
	if s.Hunger != 10 {
		t.Errorf("Hunger = %v, want capped at 10", s.Hunger)
	}
}

func TestEventCanKill(t *testing.T) {
	e := newTestEngine(Tables{Events: []string{"A storm rolls in energy-"}}, &scriptedRand{})
	e.state.Energy = 1
	e.QueueEvent()

	if status := e.Tick(); status != StatusDied {
		t.Fatalf("Tick() = %v, want died", status)
	}
}

func TestEventHappyBlockedWhileSick(t *testing.T) {
	e := newTestEngine(Tables{Events: []string{"A butterfly! happy+"}}, &scriptedRand{})
	e.state.Sick = true
	e.QueueEvent()
	e.Tick()
	if !approx(e.state.Happiness, 5) {
		t.Errorf("Happiness = %v, want 5", e.state.Happiness)
	}
}

func TestParseEventEffect(t *testing.T) {
	tests := []struct {
		line  string
		token string
	}{
		{"You found a treat! hunger+", "hunger+"},
		{"Lost your lunch HUNGER-", "hunger-"},
		{"energy- but also hunger+", "hunger+"},
		{"happy- energy+", "happy-"},
		{"Nothing happens.", ""},
	}
	for _, tc := range tests {
		if got := ParseEventEffect(tc.line).Token; got != tc.token {
			t.Errorf("ParseEventEffect(%q) = %q, want %q", tc.line, got, tc.token)
		}
	}
}

func TestPhraseSpawnAndExpiry(t *testing.T) {
	phrase := NeedsPhrase{Text: "Feed me!", Stat: "hunger", Magnitude: 0.2}
	e := newTestEngine(Tables{Phrases: []NeedsPhrase{phrase}}, &scriptedRand{floats: []float64{0.005}})

	e.Tick()
	if e.state.ActivePhrase == nil {
		t.Fatal("expected a phrase to spawn")
	}
	if e.state.Message != "Feed me!" {
		t.Errorf("Message = %q", e.state.Message)
	}

	for e.Ticks() < 121 {
		e.Tick()
	}
	if e.state.ActivePhrase == nil {
		t.Fatal("phrase expired too early")
	}
	e.Tick()
	if e.state.ActivePhrase != nil {
		t.Error("phrase should expire after 120 ticks")
	}
}

func TestNoPhraseWhileSick(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.0}}
	e := newTestEngine(Tables{Phrases: []NeedsPhrase{{Text: "x", Stat: "hunger"}}}, rng)
	e.state.Sick = true
	e.Tick()
	if e.state.ActivePhrase != nil {
		t.Error("sick pets do not voice needs")
	}
}

func TestOverCapSickness(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.05}})
	e.state.Hunger = 10.5

	e.Tick()
	if e.state.Hunger != MaxStat {
		t.Errorf("Hunger = %v, want clamped to 10", e.state.Hunger)
	}
	if !e.state.Sick {
		t.Error("expected over-cap hunger to make the pet sick")
	}
}

func TestQuietTickKeepsStats(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	e.Tick()
	before := e.Snapshot()
	e.Tick()
	after := e.Snapshot()

	if before.Hunger != after.Hunger || before.Happiness != after.Happiness ||
		before.Energy != after.Energy || before.Friendship != after.Friendship {
		t.Errorf("quiet tick changed stats: %+v -> %+v", before, after)
	}
}

func TestMessageExpires(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{})
	if e.state.Message != blankMessage {
		t.Fatalf("initial Message = %q", e.state.Message)
	}
	e.Say("hello")
	for i := 0; i < 30; i++ {
		e.Tick()
	}
	if e.state.Message != "hello" {
		t.Fatalf("Message = %q, want hello until expiry", e.state.Message)
	}
	e.Tick()
	if e.state.Message != idleMessage {
		t.Errorf("Message = %q, want %q", e.state.Message, idleMessage)
	}
}

func TestStatsStayInBounds(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := NewRand(seed)
		tables := Tables{
			Phrases: []NeedsPhrase{{Text: "hungry", Stat: "hunger", Magnitude: -2}},
			Events:  []string{"treat hunger+", "rain happy-", "nap energy+"},
		}
		e := New(tables, rng)

		for i := 0; i < 5000; i++ {
			status := StatusOngoing
			switch rng.Intn(40) {
			case 0:
				status = e.Feed()
				e.NoteInput()
			case 1:
				status = e.Play()
				e.NoteInput()
			case 2:
				status = e.Sleep()
				e.NoteInput()
			case 3:
				e.QueueEvent()
			}
			if !status.Terminal() {
				status = e.Tick()
			}

			s := e.state
			for name, v := range map[string]float64{
				"hunger": s.Hunger, "happiness": s.Happiness,
				"energy": s.Energy, "friendship": s.Friendship,
			} {
				if v < MinStat || v > MaxStat {
					t.Fatalf("seed %d tick %d: %s = %v out of bounds", seed, s.Now, name, v)
				}
			}
			if status.Terminal() {
				break
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		tables := Tables{
			Phrases: []NeedsPhrase{{Text: "play?", Stat: "happiness", Magnitude: 0.5}},
			Events:  []string{"treat hunger+"},
		}
		e := New(tables, NewRand(12345))
		for i := 0; i < 2000; i++ {
			if i%90 == 0 {
				e.Feed()
				e.NoteInput()
			}
			if e.Tick().Terminal() {
				break
			}
		}
		return e.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestApplyCalendar(t *testing.T) {
	e := newTestEngine(Tables{}, &scriptedRand{floats: []float64{0.1, 0.9, 0.1}, ints: []int{1, 0}})
	e.state.RandomEventsThisHour = 2

	e.ApplyCalendar(Signals{Hour: 19, HourChanged: true, MoodBlockChanged: true, WeatherPeriodChanged: true})

	s := e.state
	if s.DayTime {
		t.Error("19:00 should be night")
	}
	if s.RandomEventsThisHour != 0 {
		t.Errorf("RandomEventsThisHour = %d, want reset", s.RandomEventsThisHour)
	}
	if s.Mood != MoodSad {
		t.Errorf("Mood = %v, want sad", s.Mood)
	}
	if s.Weather != WeatherRain {
		t.Errorf("Weather = %v, want Rain", s.Weather)
	}
	if !s.Sick {
		t.Error("foul weather roll under 0.2 should make the pet sick")
	}
}
