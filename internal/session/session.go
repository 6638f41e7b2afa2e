// Package session runs the real-time control loop around a pet engine:
// calendar triggers, random events, owed ticks and queued input. Every front
// end (terminal UI, plain line mode, auto player) drives the same Session.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/display"
	"github.com/vovakirdan/gotchi/internal/pet"
)

// ExitMessage is printed when the player quits.
const ExitMessage = "Exiting."

// Options configures a Session.
type Options struct {
	Start    time.Time      // wall-clock start; zero means time.Now()
	Location *time.Location // zone for calendar signals and the header clock
	Logger   *log.Logger
}

// Result reports what one Advance did.
type Result struct {
	Changed bool       // the rendered display differs from the previous one
	Status  pet.Status // terminal status, if the run ended
	Quit    bool       // the player asked to quit
}

// Done reports whether the run is over for any reason.
func (r Result) Done() bool {
	return r.Quit || r.Status.Terminal()
}

// Session owns an engine and everything that feeds it. It must be advanced
// from a single goroutine; other goroutines talk to it only through the
// queue and read it only through the Board.
type Session struct {
	engine   *pet.Engine
	queue    *core.Queue
	calendar *pet.Calendar
	events   *pet.EventScheduler
	board    *Board
	start    time.Time
	log      *log.Logger

	lines  []display.Line
	text   []string
	result Result
}

// New wires a session around engine. rng drives the event scheduler and
// is usually the engine's own source.
func New(engine *pet.Engine, queue *core.Queue, rng pet.Rand, opts Options) *Session {
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		engine:   engine,
		queue:    queue,
		calendar: pet.NewCalendar(opts.Location),
		events:   pet.NewEventScheduler(start, rng),
		board:    NewBoard(),
		start:    start,
		log:      logger,
	}
	s.render()
	s.publish()
	return s
}

// Board returns the published view of the session.
func (s *Session) Board() *Board {
	return s.board
}

// Queue returns the input queue feeding the session.
func (s *Session) Queue() *core.Queue {
	return s.queue
}

// Lines returns the most recent render.
func (s *Session) Lines() []display.Line {
	return s.lines
}

// Snapshot returns the engine's current state.
func (s *Session) Snapshot() pet.Snapshot {
	return s.engine.Snapshot()
}

// Result returns the outcome of the last Advance.
func (s *Session) Result() Result {
	return s.result
}

// Advance performs one loop iteration at wall time now. Once the run is
// over further calls are no-ops returning the final result.
func (s *Session) Advance(now time.Time) Result {
	if s.result.Done() {
		return Result{Status: s.result.Status, Quit: s.result.Quit}
	}

	s.engine.ApplyCalendar(s.calendar.Observe(now))
	s.engine.SetClockText(s.calendar.ClockText(now))
	s.events.Poll(now, s.engine)

	status := s.runOwed(now)
	if !status.Terminal() {
		if in, ok := s.queue.TryPop(); ok {
			status = s.Apply(in)
		}
	}

	s.result.Status = status
	s.result.Changed = s.render()
	s.publish()
	return s.result
}

// runOwed runs every tick the wall clock says is due, stopping at the
// first terminal status.
func (s *Session) runOwed(now time.Time) pet.Status {
	clock := s.engine.Clock()
	owed := clock.Owed(now.Sub(s.start), s.engine.Ticks())
	for i := int64(0); i < owed; i++ {
		if status := s.engine.Tick(); status.Terminal() {
			return status
		}
	}
	return pet.StatusOngoing
}

// Apply feeds one input to the engine. Any input counts as activity.
func (s *Session) Apply(in core.Input) pet.Status {
	s.engine.NoteInput()
	s.log.Debug("input", "command", in.Command, "text", in.Text)

	if in.Command == core.CommandQuit {
		s.result.Quit = true
		return pet.StatusOngoing
	}
	return dispatch(s.engine, in)
}

// render recomputes the display and reports whether it changed.
func (s *Session) render() bool {
	lines := display.Lines(s.engine.Snapshot())
	text := display.Text(lines)
	changed := len(display.Changed(s.text, text)) > 0
	s.lines = lines
	s.text = text
	return changed
}

func (s *Session) publish() {
	s.board.Publish(Frame{
		Lines:    s.text,
		Snapshot: s.engine.Snapshot(),
		Status:   s.result.Status,
		Quit:     s.result.Quit,
	})
}

// FinalMessage is the line shown when the run ends.
func (r Result) FinalMessage() string {
	if r.Quit {
		return ExitMessage
	}
	return r.Status.Message()
}

// Label names the outcome for run history: "quit" or the status name.
func (r Result) Label() string {
	if r.Quit {
		return "quit"
	}
	return r.Status.String()
}
