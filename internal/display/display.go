// Package display turns a pet snapshot into the fixed-layout text screen:
// header, speech box, face, stats and the command hint.
package display

import (
	"fmt"

	"github.com/vovakirdan/gotchi/internal/core"
	"github.com/vovakirdan/gotchi/internal/pet"
)

// Line is one row of the display with a color hint.
type Line struct {
	Text  string
	Color core.Color
}

// Height is the number of lines Lines always returns. A present pet gets a
// blank fourth body row so its frame matches the away frame and changed-row
// redraws never leave a stale line behind.
const Height = 12

// HintLine lists the player commands.
const HintLine = "[F]eed  [P]lay  [S]leep  [Q]uit"

// lowStat is the value under which the stats line is highlighted.
const lowStat = 3

// Lines renders the snapshot. The layout never changes height, so a front
// end can redraw in place.
func Lines(s pet.Snapshot) []Line {
	dayNight := "Day"
	if !s.DayTime {
		dayNight = "Night"
	}

	lines := make([]Line, 0, Height)
	lines = append(lines,
		Line{Text: fmt.Sprintf("%s | Weather: %s | Mood: %s | %s", s.ClockText, s.Weather, s.Mood, dayNight), Color: core.ColorCyan},
		Line{Text: "   .----------------------."},
		Line{Text: messageLine(s.Message)},
		Line{Text: "   '------o---------------'"},
		Line{Text: "          o"},
		Line{Text: "           o"},
	)

	if s.Away {
		lines = append(lines, Line{}, Line{}, Line{}, Line{})
	} else {
		face, color := faceFor(s)
		lines = append(lines,
			Line{Text: `            (\_/)`},
			Line{Text: "            " + face, Color: color},
			Line{Text: "            />❤️ ", Color: core.ColorRed},
			Line{},
		)
	}

	statsColor := core.ColorDefault
	if s.Hunger < lowStat || s.Happiness < lowStat || s.Energy < lowStat {
		statsColor = core.ColorYellow
	}
	lines = append(lines,
		Line{Text: fmt.Sprintf("Hunger: %.2f | Happiness: %.2f | Energy: %.2f", s.Hunger, s.Happiness, s.Energy), Color: statsColor},
		Line{Text: HintLine, Color: core.ColorGray},
	)
	return lines
}

func messageLine(msg string) string {
	if msg == "" {
		return "   |                    |"
	}
	return "   | " + msg + " |"
}

// faceFor picks the expression: sick beats happiness.
func faceFor(s pet.Snapshot) (string, core.Color) {
	switch {
	case s.Sick:
		return "(x_x)", core.ColorGreen
	case s.Happiness > 7:
		return "(^o^)", core.ColorMagenta
	case s.Happiness < 3:
		return "(T_T)", core.ColorBlue
	default:
		return "(^_^)", core.ColorDefault
	}
}

// Text strips the color hints.
func Text(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
