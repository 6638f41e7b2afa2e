package display

import (
	"fmt"
	"io"
	"strings"
)

// Changed returns the indexes of rows that differ between prev and next.
// A shorter slice is padded with empty rows.
func Changed(prev, next []string) []int {
	n := max(len(prev), len(next))
	var rows []int
	for i := 0; i < n; i++ {
		if row(prev, i) != row(next, i) {
			rows = append(rows, i)
		}
	}
	return rows
}

// WriteUpdate redraws only the rows that changed, using ANSI cursor
// addressing, then parks the cursor below the display so typed input does
// not collide with it.
func WriteUpdate(w io.Writer, prev, next []string) error {
	var sb strings.Builder
	for _, i := range Changed(prev, next) {
		fmt.Fprintf(&sb, "\033[%d;1H\033[2K%s", i+1, row(next, i))
	}
	fmt.Fprintf(&sb, "\033[%d;1H", max(len(prev), len(next))+1)
	_, err := io.WriteString(w, sb.String())
	return err
}

// ClearScreen clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) error {
	_, err := io.WriteString(w, "\033[2J\033[H")
	return err
}

func row(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
