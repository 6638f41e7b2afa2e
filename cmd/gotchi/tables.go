package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gotchi/internal/pet"
	"github.com/vovakirdan/gotchi/internal/tables"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show the loaded phrase and event tables",
	Long: `Print the needs phrases and random events the pet will use, with the
stat each one touches. Paths come from the resources section of the config;
empty paths use the built-in tables.`,
	Run: runTables,
}

func runTables(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger, closeLog := newLogger()
	defer closeLog()

	t := tables.Load(cfg.Resources, logger)

	fmt.Printf("Needs phrases (%d):\n", len(t.Phrases))
	for _, p := range t.Phrases {
		stat := p.Stat
		if stat == "" {
			stat = "-"
		}
		fmt.Printf("  %-10s  %5.2f  %s\n", stat, p.Magnitude, p.Text)
	}

	fmt.Println()
	fmt.Printf("Random events (%d):\n", len(t.Events))
	for _, line := range t.Events {
		fmt.Printf("  %-8s  %s\n", effectLabel(pet.ParseEventEffect(line)), line)
	}
}

func effectLabel(e pet.EventEffect) string {
	if e.Token == "" {
		return "none"
	}
	return e.Token
}
