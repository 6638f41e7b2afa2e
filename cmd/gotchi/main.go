// gotchi is a virtual ASCII pet that lives in your terminal.
//
// Usage:
//
//	gotchi play              - Raise a pet in real time
//	gotchi sim               - Step a pet without a wall clock
//	gotchi auto              - Let a language model look after the pet
//	gotchi history           - Browse past runs
//	gotchi tables            - Show the loaded phrase and event tables
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default from config: ~/.gotchi/gotchi.db)
//	--config <path> - Use a custom config YAML
//	--log <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata" // time zones on systems without a zoneinfo database

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gotchi/internal/config"
	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/display"
	"github.com/vovakirdan/gotchi/internal/pet"
	"github.com/vovakirdan/gotchi/internal/session"
	"github.com/vovakirdan/gotchi/internal/storage"
	"github.com/vovakirdan/gotchi/internal/tables"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gotchi",
	Short: "gotchi - a virtual ASCII pet in your terminal",
	Long: `gotchi is a small creature that lives in your terminal. It gets hungry,
bored and tired, wanders off when ignored, and needs you to keep it alive.

Available commands:
  play     - Raise a pet in real time
  sim      - Step a pet without a wall clock
  auto     - Let a language model look after the pet
  history  - Browse past runs
  tables   - Show the loaded phrase and event tables

Examples:
  gotchi play
  gotchi sim --ticks 3600 --script "f@10,p@300"
  gotchi auto --runs 1
  gotchi history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tablesCmd)
}

// loadConfig loads the configuration or exits.
func loadConfig() config.GameConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg
}

// newLogger returns a logger writing to --log, or a silent one. The
// terminal belongs to the pet, so logs never go to stdout.
func newLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(config.ExpandHome(flagLogPath), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "gotchi",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// openStore opens the run history database. The pet works without it.
func openStore(cfg config.GameConfig) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - the pet still works
		return nil
	}
	return store
}

// newEngine builds an engine from the config. Real-time engines take their
// header clock from the wall clock; stepped engines advance it themselves.
func newEngine(cfg config.GameConfig, rt core.RuntimeConfig, logger *log.Logger) (*pet.Engine, pet.Rand) {
	rng := pet.NewRand(rt.Seed)
	opts := []pet.Option{
		pet.WithLogger(logger),
		pet.WithClock(pet.NewClock(cfg.Timing.NeedsInterval, cfg.Timing.TicksPerInterval)),
	}
	if rt.RealTime {
		opts = append(opts, pet.WithRealTime())
	}
	return pet.New(tables.Load(cfg.Resources, logger), rng, opts...), rng
}

// newSession wires a session around a fresh engine. rt.RealTime should be set.
func newSession(cfg config.GameConfig, rt core.RuntimeConfig, q *core.Queue, logger *log.Logger) *session.Session {
	engine, rng := newEngine(cfg, rt, logger)
	return session.New(engine, q, rng, session.Options{
		Location: cfg.Timing.Location(),
		Logger:   logger,
	})
}

// startRun opens a history row, returning 0 when there is no store.
func startRun(store *storage.Store, mode string, seed int64) int64 {
	if store == nil {
		return 0
	}
	id, err := store.StartRun(mode, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
		return 0
	}
	return id
}

// finishRun records how the run ended.
func finishRun(store *storage.Store, id int64, snap pet.Snapshot, label string) {
	if store == nil || id == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the run is over regardless
	store.FinishRun(id, storage.OutcomeOf(snap, label))
}

// printScreen writes the plain display of snap.
func printScreen(w io.Writer, snap pet.Snapshot) {
	fmt.Fprintln(w, strings.Join(display.Text(display.Lines(snap)), "\n"))
}
