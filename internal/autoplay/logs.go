package autoplay

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// StatRow is one line of the stat log.
type StatRow struct {
	Timestamp string
	Command   string
	Hunger    float64
	Happiness float64
	Energy    float64
	Total     float64
}

var statHeader = []string{"timestamp", "command", "hunger", "happiness", "energy", "total"}

// Logs collects stat rows and summaries across every run of a session.
// It is safe for concurrent use.
type Logs struct {
	mu        sync.Mutex
	rows      []StatRow
	summaries []string
}

// Record appends a row for t.
func (l *Logs) Record(t Turn) {
	s := t.Snapshot
	row := StatRow{
		Timestamp: t.At.UTC().Format(time.DateTime),
		Command:   t.Command,
		Hunger:    round3(s.Hunger),
		Happiness: round3(s.Happiness),
		Energy:    round3(s.Energy),
		Total:     round3(s.Total()),
	}

	l.mu.Lock()
	l.rows = append(l.rows, row)
	l.mu.Unlock()
}

// AddSummary appends the retrospective of a finished run.
func (l *Logs) AddSummary(s string) {
	l.mu.Lock()
	l.summaries = append(l.summaries, s)
	l.mu.Unlock()
}

// Rows returns a copy of the recorded rows.
func (l *Logs) Rows() []StatRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]StatRow(nil), l.rows...)
}

// Summaries returns a copy of the recorded summaries.
func (l *Logs) Summaries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.summaries...)
}

// Write saves gotchi_stats_<ts>.csv (only when rows were recorded) and
// summaries_<ts>.json into dir. It returns the paths written; csvPath is
// empty when there were no rows.
func (l *Logs) Write(dir string, now time.Time) (csvPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("autoplay: cannot create log directory %s: %w", dir, err)
	}
	ts := now.Unix()
	rows := l.Rows()

	if len(rows) > 0 {
		csvPath = filepath.Join(dir, fmt.Sprintf("gotchi_stats_%d.csv", ts))
		if err := writeCSV(csvPath, rows); err != nil {
			return "", "", err
		}
	}

	jsonPath = filepath.Join(dir, fmt.Sprintf("summaries_%d.json", ts))
	data, err := json.MarshalIndent(struct {
		Summaries []string `json:"summaries"`
	}{Summaries: nonNil(l.Summaries())}, "", "  ")
	if err != nil {
		return csvPath, "", fmt.Errorf("autoplay: cannot encode summaries: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return csvPath, "", fmt.Errorf("autoplay: cannot write %s: %w", jsonPath, err)
	}
	return csvPath, jsonPath, nil
}

func writeCSV(path string, rows []StatRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("autoplay: cannot create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write(statHeader) //nolint:errcheck // Flush reports the first write error
	for _, r := range rows {
		w.Write([]string{ //nolint:errcheck // Flush reports the first write error
			r.Timestamp,
			r.Command,
			formatStat(r.Hunger),
			formatStat(r.Happiness),
			formatStat(r.Energy),
			formatStat(r.Total),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("autoplay: cannot write %s: %w", path, err)
	}
	return f.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
