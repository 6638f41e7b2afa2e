package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gotchi/internal/autoplay"
	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/session"
)

var (
	flagRuns       int
	flagProvider   string
	flagCallPeriod time.Duration
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Let a language model look after the pet",
	Long: `Show the pet's screen to a language model every call period and let it
choose Feed, Play, Sleep or Quit. After each death the model writes a short
retrospective. A CSV stat log and a JSON file of summaries are written to
the configured log directory.

Set ANTHROPIC_API_KEY (Claude) or GOOGLE_API_KEY (Gemini). Lines typed on
stdin are passed to the pet as well.

Examples:
  gotchi auto
  gotchi auto --runs 1 --provider gemini
  gotchi auto --call-period 30s`,
	Run: runAuto,
}

func init() {
	autoCmd.Flags().IntVar(&flagRuns, "runs", 0, "Number of consecutive runs (default from config)")
	autoCmd.Flags().StringVar(&flagProvider, "provider", "", "claude or gemini (default: auto-detect)")
	autoCmd.Flags().DurationVar(&flagCallPeriod, "call-period", 0, "Minimum time between model calls (default from config)")
}

func runAuto(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagRuns > 0 {
		cfg.Autoplay.Runs = flagRuns
	}
	if flagProvider != "" {
		cfg.Autoplay.Provider = flagProvider
	}
	if flagCallPeriod > 0 {
		cfg.Autoplay.CallPeriod = flagCallPeriod
	}

	logger, closeLog := newLogger()
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	provider, err := autoplay.NewProvider(ctx, cfg.Autoplay)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	baseSeed := core.RuntimeConfig{Seed: flagSeed}.ResolveSeed()
	ansi := term.IsTerminal(int(os.Stdout.Fd()))

	h := &autoplay.Harness{
		Provider: provider,
		Config:   cfg.Autoplay,
		Store:    store,
		Logger:   logger,
		Out:      os.Stderr,
		NewRun: func(n int, q *core.Queue) (*session.Session, int64) {
			rt := core.RuntimeConfig{Seed: baseSeed + int64(n-1), RealTime: true}
			return newSession(cfg, rt, q, logger), rt.Seed
		},
		Loop: func(ctx context.Context, s *session.Session) (session.Result, error) {
			return session.RunPlain(ctx, s, os.Stdout, session.PlainOptions{
				Interval: cfg.Timing.FrameInterval(),
				ANSI:     ansi,
			})
		},
	}

	go func() {
		if err := core.ForEachLine(ctx, os.Stdin, h.Operate); err != nil {
			logger.Debug("stdin reader stopped", "err", err)
		}
	}()

	fmt.Fprintln(os.Stderr, "Launching automated tester... CTRL-C to stop.")
	report, err := h.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%d run(s) complete. Good-bye!\n", report.Runs)
}
