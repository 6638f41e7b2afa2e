package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/platform/tui"
	"github.com/vovakirdan/gotchi/internal/session"
)

var flagPlain bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Raise a pet in real time",
	Long: `Start a new pet. Its needs decay in real time, so check in often.

Controls:
  F   - Feed
  P   - Play
  S   - Sleep
  Q   - Quit
  anything else is said to the pet

On a terminal the pet runs full screen; with --plain, or when stdin is
not a terminal, commands are read one per line.

Examples:
  gotchi play
  gotchi play --seed 42
  gotchi play --plain`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlain, "plain", false, "Line mode instead of the full-screen UI")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger, closeLog := newLogger()
	defer closeLog()

	rt := core.RuntimeConfig{Seed: flagSeed, RealTime: true}.Resolved()
	s := newSession(cfg, rt, core.NewQueue(), logger)

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	runID := startRun(store, "play", rt.Seed)

	var (
		res session.Result
		err error
	)
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !flagPlain {
		res, err = tui.Run(s, tui.Options{Interval: cfg.Timing.FrameInterval()})
		if err == nil {
			printScreen(os.Stdout, s.Snapshot())
			fmt.Printf("\n%s\n", res.FinalMessage())
		}
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		go func() {
			if err := core.ReadLines(ctx, os.Stdin, s.Queue()); err != nil {
				logger.Debug("stdin reader stopped", "err", err)
			}
		}()

		res, err = session.RunPlain(ctx, s, os.Stdout, session.PlainOptions{
			Interval: cfg.Timing.FrameInterval(),
			ANSI:     term.IsTerminal(int(os.Stdout.Fd())),
		})
		if errors.Is(err, context.Canceled) {
			res, err = session.Result{Quit: true}, nil
			fmt.Printf("\n%s\n", res.FinalMessage())
		}
	}

	finishRun(store, runID, s.Snapshot(), res.Label())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
