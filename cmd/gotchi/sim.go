package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/session"
)

var (
	flagTicks  int64
	flagScript string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Step a pet without a wall clock",
	Long: `Run the pet for a number of ticks as fast as possible. Each tick is
one logical second; the header clock advances 2 minutes every 60 ticks.
Commands can be scripted as cmd@tick entries.

Examples:
  gotchi sim --ticks 86400
  gotchi sim --seed 7 --script "f@10,p@300,s@900,hello@1200"`,
	Run: runSim,
}

func init() {
	simCmd.Flags().Int64Var(&flagTicks, "ticks", 86400, "Maximum number of ticks to run")
	simCmd.Flags().StringVar(&flagScript, "script", "", "Comma-separated cmd@tick inputs")
}

func runSim(cmd *cobra.Command, args []string) {
	steps, err := session.ParseScript(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	logger, closeLog := newLogger()
	defer closeLog()

	rt := core.RuntimeConfig{Seed: flagSeed}.Resolved()
	engine, _ := newEngine(cfg, rt, logger)

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	runID := startRun(store, "sim", rt.Seed)

	res := session.RunSteps(engine, steps, flagTicks)
	finishRun(store, runID, engine.Snapshot(), res.Label())

	printScreen(os.Stdout, engine.Snapshot())
	fmt.Println()
	if res.Quit || res.Status.Terminal() {
		fmt.Println(res.FinalMessage())
	} else {
		fmt.Printf("Still going after %d ticks.\n", res.Ticks)
	}
	fmt.Printf("Seed: %d\n", rt.Seed)
}
