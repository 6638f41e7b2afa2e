// Package tables loads the needs-phrase and random-event resources.
// A missing or unreadable file is never fatal: the caller gets an empty
// table and a warning in the log.
package tables

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gotchi/internal/config"
	"github.com/vovakirdan/gotchi/internal/pet"
)

//go:embed defaults/needs_phrases.txt
var defaultPhrases []byte

//go:embed defaults/random_events.txt
var defaultEvents []byte

// ParsePhrases reads text|stat|magnitude records, one per line.
// Lines with the wrong number of fields are kept as bare text with no stat;
// an unparsable magnitude becomes 0. Blank lines are skipped.
func ParsePhrases(r io.Reader) ([]pet.NeedsPhrase, error) {
	var phrases []pet.NeedsPhrase
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			phrases = append(phrases, pet.NeedsPhrase{Text: line})
			continue
		}

		mag, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			mag = 0
		}
		phrases = append(phrases, pet.NeedsPhrase{
			Text:      parts[0],
			Stat:      strings.TrimSpace(parts[1]),
			Magnitude: mag,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tables: read phrases: %w", err)
	}
	return phrases, nil
}

// ParseEvents reads one event per non-blank line.
func ParseEvents(r io.Reader) ([]string, error) {
	var events []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			events = append(events, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tables: read events: %w", err)
	}
	return events, nil
}

// Load reads both tables. Empty paths select the embedded defaults.
func Load(cfg config.ResourcesConfig, logger *log.Logger) pet.Tables {
	return pet.Tables{
		Phrases: loadPhrases(cfg.PhrasesPath, logger),
		Events:  loadEvents(cfg.EventsPath, logger),
	}
}

func loadPhrases(path string, logger *log.Logger) []pet.NeedsPhrase {
	r, closer, err := open(path, defaultPhrases)
	if err != nil {
		logger.Warn("needs phrases unavailable, continuing without them", "path", path, "err", err)
		return nil
	}
	defer closer() //nolint:errcheck // Read-only file

	phrases, err := ParsePhrases(r)
	if err != nil {
		logger.Warn("needs phrases unreadable, continuing without them", "path", path, "err", err)
		return nil
	}
	logger.Debug("loaded needs phrases", "count", len(phrases), "path", path)
	return phrases
}

func loadEvents(path string, logger *log.Logger) []string {
	r, closer, err := open(path, defaultEvents)
	if err != nil {
		logger.Warn("random events unavailable, continuing without them", "path", path, "err", err)
		return nil
	}
	defer closer() //nolint:errcheck // Read-only file

	events, err := ParseEvents(r)
	if err != nil {
		logger.Warn("random events unreadable, continuing without them", "path", path, "err", err)
		return nil
	}
	logger.Debug("loaded random events", "count", len(events), "path", path)
	return events
}

// open returns the file at path, or the embedded fallback when path is empty.
func open(path string, fallback []byte) (io.Reader, func() error, error) {
	if path == "" {
		return bytes.NewReader(fallback), func() error { return nil }, nil
	}
	f, err := os.Open(config.ExpandHome(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
