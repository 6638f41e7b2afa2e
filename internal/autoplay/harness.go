package autoplay

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gotchi/internal/config"
	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/session"
	"github.com/vovakirdan/gotchi/internal/storage"
)

// RunMode is the mode recorded in run history for auto-played runs.
const RunMode = "auto"

// NewRunFunc builds the session for run n (1-based) around the shared
// input queue and returns it with the seed it was created from.
type NewRunFunc func(n int, queue *core.Queue) (*session.Session, int64)

// LoopFunc owns s until its run ends, e.g. session.RunPlain.
type LoopFunc func(ctx context.Context, s *session.Session) (session.Result, error)

// Harness plays several consecutive runs with one provider and keeps the
// stat log, summaries and run history for all of them.
type Harness struct {
	Provider Provider
	Config   config.AutoplayConfig
	Store    *storage.Store // optional
	Logger   *log.Logger
	Out      io.Writer // run banners and summaries
	NewRun   NewRunFunc
	Loop     LoopFunc

	queue *core.Queue
	logs  Logs

	mu    sync.Mutex
	board *session.Board
	runID int64
}

// Report describes what a Harness run produced.
type Report struct {
	Runs      int
	Summaries []string
	CSVPath   string
	JSONPath  string
}

func (h *Harness) init() {
	if h.queue == nil {
		h.queue = core.NewQueue()
	}
	if h.Logger == nil {
		h.Logger = log.New(io.Discard)
	}
	if h.Out == nil {
		h.Out = io.Discard
	}
}

// Queue returns the input queue shared by every run.
func (h *Harness) Queue() *core.Queue {
	h.init()
	return h.queue
}

// Logs returns the stat and summary log.
func (h *Harness) Logs() *Logs {
	return &h.logs
}

// Run plays Config.Runs runs one after another, then writes the logs to
// Config.LogDir. Cancelling ctx ends the current run and skips the rest;
// the logs are still written.
func (h *Harness) Run(ctx context.Context) (Report, error) {
	h.init()
	runs := h.Config.Runs
	if runs <= 0 {
		runs = 1
	}

	var report Report
	for n := 1; n <= runs && ctx.Err() == nil; n++ {
		h.playRun(ctx, n, runs)
		report.Runs++
	}

	report.Summaries = h.logs.Summaries()
	csvPath, jsonPath, err := h.logs.Write(config.ExpandHome(h.Config.LogDir), time.Now())
	report.CSVPath, report.JSONPath = csvPath, jsonPath
	if err != nil {
		return report, err
	}
	if csvPath != "" {
		fmt.Fprintf(h.Out, " ➜ CSV log saved to  %s\n", csvPath)
	}
	fmt.Fprintf(h.Out, " ➜ Summaries saved to %s\n", jsonPath)
	return report, nil
}

func (h *Harness) playRun(ctx context.Context, n, runs int) {
	fmt.Fprintf(h.Out, "\n—— RUN %d/%d ———————————————\n", n, runs)

	h.queue.Drain()
	s, seed := h.NewRun(n, h.queue)
	runID := h.startRun(seed)

	h.mu.Lock()
	h.board, h.runID = s.Board(), runID
	h.mu.Unlock()

	driver := NewDriver(h.Provider, s.Board(), h.queue, DriverOptions{
		CallPeriod: h.Config.CallPeriod,
		RetryDelay: h.Config.RetryDelay,
		Window:     h.Config.HistoryWindow,
		Logger:     h.Logger,
		OnTurn:     func(t Turn) { h.record(runID, t) },
	})

	driverCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		driver.Run(driverCtx) //nolint:errcheck // Only reports cancellation
	}()

	res, err := h.Loop(ctx, s)
	cancel()
	<-done

	h.mu.Lock()
	h.board = nil
	h.mu.Unlock()

	if err != nil && ctx.Err() == nil {
		h.Logger.Error("run loop failed", "run", n, "err", err)
	}
	h.finishRun(runID, s, res)

	summary := QuitSummary
	if res.Status.Terminal() && ctx.Err() == nil {
		summary = Summarise(ctx, h.Provider, driver.History(), h.Config.HistoryWindow)
		fmt.Fprintf(h.Out, "\n—— Summary of run %d ——\n%s\n\n", n, summary)
	}
	h.logs.AddSummary(summary)
	if h.Store != nil && runID != 0 {
		if err := h.Store.SetSummary(runID, summary); err != nil {
			h.Logger.Warn("cannot save summary", "err", err)
		}
	}
	fmt.Fprintf(h.Out, "Run %d finished.\n\n", n)
}

// Operate queues an operator line for the current run. Commands are logged
// like model turns; anything else is passed through as a message.
func (h *Harness) Operate(line string) {
	h.init()
	in := core.ParseInput(line)
	if in.Command == core.CommandNone {
		return
	}
	h.queue.Push(in)

	switch in.Command {
	case core.CommandFeed, core.CommandPlay, core.CommandSleep, core.CommandQuit:
	default:
		return
	}

	h.mu.Lock()
	board, runID := h.board, h.runID
	h.mu.Unlock()
	if board == nil {
		return
	}
	frame, _ := board.Read()
	h.record(runID, Turn{
		At:       time.Now(),
		Command:  strings.ToUpper(in.Text),
		Snapshot: frame.Snapshot,
	})
}

func (h *Harness) record(runID int64, t Turn) {
	h.logs.Record(t)
	if h.Store == nil || runID == 0 {
		return
	}
	_, err := h.Store.SaveTurn(storage.Turn{
		RunID:     runID,
		Command:   t.Command,
		Reply:     t.Reply,
		Hunger:    t.Snapshot.Hunger,
		Happiness: t.Snapshot.Happiness,
		Energy:    t.Snapshot.Energy,
	})
	if err != nil {
		h.Logger.Warn("cannot save turn", "err", err)
	}
}

func (h *Harness) startRun(seed int64) int64 {
	if h.Store == nil {
		return 0
	}
	id, err := h.Store.StartRun(RunMode, seed)
	if err != nil {
		h.Logger.Warn("cannot record run", "err", err)
		return 0
	}
	return id
}

func (h *Harness) finishRun(runID int64, s *session.Session, res session.Result) {
	if h.Store == nil || runID == 0 {
		return
	}
	if err := h.Store.FinishRun(runID, storage.OutcomeOf(s.Snapshot(), res.Label())); err != nil {
		h.Logger.Warn("cannot finish run", "err", err)
	}
}
