package autoplay

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/pet"
	"github.com/vovakirdan/gotchi/internal/session"
)

// SystemPrompt is sent with every turn.
const SystemPrompt = "You are caring for this simulation.\n" +
	"At each turn you see the ENTIRE screen and must choose exactly one action:\n\n" +
	"  [F]eed   [P]lay   [S]leep   [Q]uit\n\n" +
	"Reply with JUST that letter."

// requestTimeout bounds a single provider call.
const requestTimeout = 90 * time.Second

var commandPattern = regexp.MustCompile(`\[?\s*([FPSQfpsq])\s*\]?`)

// ParseCommand extracts the first F/P/S/Q letter from a model reply and
// returns it lower-cased.
func ParseCommand(reply string) (string, bool) {
	m := commandPattern.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// Turn is one decision the model made.
type Turn struct {
	At       time.Time
	Command  string // upper-case letter
	Reply    string
	Snapshot pet.Snapshot // state the decision was made against
}

// DriverOptions configures a Driver.
type DriverOptions struct {
	CallPeriod   time.Duration // minimum time between provider calls
	RetryDelay   time.Duration // back-off after a failed call
	PollInterval time.Duration // how often waits check for the end of the run
	Window       int           // messages sent per call; 0 sends the whole conversation
	Logger       *log.Logger
	OnTurn       func(Turn)
}

// Driver plays one run. It only reads the session's Board and pushes into
// its queue, so it can run on its own goroutine next to the owner loop.
type Driver struct {
	provider Provider
	board    *session.Board
	queue    *core.Queue
	opts     DriverOptions
	log      *log.Logger

	history []Message
}

// NewDriver creates a driver for the session behind board and queue.
func NewDriver(p Provider, board *session.Board, queue *core.Queue, opts DriverOptions) *Driver {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		provider: p,
		board:    board,
		queue:    queue,
		opts:     opts,
		log:      logger,
	}
}

// History returns a copy of the conversation so far.
func (d *Driver) History() []Message {
	return append([]Message(nil), d.history...)
}

// Run calls the model once per call period until the run ends, the model
// answers Q, or ctx is cancelled. The only error it returns is ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	for {
		frame, _ := d.board.Read()
		if frame.Done() {
			return nil
		}

		started := time.Now()
		cmd, err := d.turn(ctx, frame)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.log.Warn("model call failed", "err", err, "retry_in", d.opts.RetryDelay)
			if !d.wait(ctx, d.opts.RetryDelay) {
				return ctx.Err()
			}
			continue
		}
		if cmd == "q" {
			return nil
		}

		if !d.wait(ctx, d.opts.CallPeriod-time.Since(started)) {
			return ctx.Err()
		}
	}
}

// turn shows the model the current screen and queues its answer. An
// unanswered screen is dropped from the history so roles keep alternating.
func (d *Driver) turn(ctx context.Context, frame session.Frame) (string, error) {
	d.history = append(d.history, Message{Role: RoleUser, Text: strings.Join(frame.Lines, "\n")})

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply, err := d.provider.Send(callCtx, SystemPrompt, window(d.history, d.opts.Window))
	if err != nil {
		d.history = d.history[:len(d.history)-1]
		return "", err
	}
	d.history = append(d.history, Message{Role: RoleAssistant, Text: reply})
	d.log.Debug("model reply", "reply", reply)

	cmd, ok := ParseCommand(reply)
	if !ok {
		d.log.Info("reply had no command", "reply", reply)
		return "", nil
	}
	d.queue.PushLine(cmd)

	if d.opts.OnTurn != nil {
		d.opts.OnTurn(Turn{
			At:       time.Now(),
			Command:  strings.ToUpper(cmd),
			Reply:    reply,
			Snapshot: frame.Snapshot,
		})
	}
	return cmd, nil
}

// wait sleeps for d, returning early when the run ends. It reports false
// only when ctx was cancelled.
func (d *Driver) wait(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	deadline := time.NewTimer(dur)
	defer deadline.Stop()
	poll := time.NewTicker(d.opts.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return true
		case <-poll.C:
			if frame, _ := d.board.Read(); frame.Done() {
				return true
			}
		}
	}
}

// window returns the last n messages, starting on a user turn.
func window(history []Message, n int) []Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	out := history[len(history)-n:]
	if len(out) > 0 && out[0].Role == RoleAssistant {
		out = out[1:]
	}
	return out
}
