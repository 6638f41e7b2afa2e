package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gotchi/internal/platform/tui"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past runs",
	Long: `Show how past pets fared: outcome, ticks survived and final stats.
On a terminal this opens a browser; otherwise a plain table is printed.

Examples:
  gotchi history
  gotchi history --limit 5 | cat`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list in plain mode")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	// Open run storage
	store := openStore(cfg)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Run History")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gotchi play' to raise your first pet!")
		return
	}

	// Print header
	fmt.Printf("  %-5s  %-5s  %-13s  %8s  %5s  %5s  %5s  %s\n", "ID", "Mode", "Outcome", "Ticks", "Hun", "Hap", "Ene", "Started")
	fmt.Printf("  %-5s  %-5s  %-13s  %8s  %5s  %5s  %5s  %s\n", "--", "----", "-------", "-----", "---", "---", "---", "-------")

	for _, r := range runs {
		fmt.Printf("  %-5d  %-5s  %-13s  %8d  %5.1f  %5.1f  %5.1f  %s\n",
			r.ID, r.Mode, r.Status, r.Ticks, r.Hunger, r.Happiness, r.Energy,
			r.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Finished runs: %d, longest %d ticks, average %.0f ticks\n",
		stats.Runs, stats.LongestTicks, stats.AvgTicks)

	statuses := make([]string, 0, len(stats.ByStatus))
	for status := range stats.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		fmt.Printf("  %-13s  %d\n", status, stats.ByStatus[status])
	}
}
