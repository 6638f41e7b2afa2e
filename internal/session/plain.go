package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vovakirdan/gotchi/internal/display"
)

// PlainOptions configures RunPlain.
type PlainOptions struct {
	Interval time.Duration // loop period; the display is redrawn at most this often
	ANSI     bool          // redraw changed rows in place instead of reprinting frames
}

// RunPlain drives s on a ticker until the run ends or ctx is cancelled,
// writing the display to w. It is the line-mode counterpart of the
// terminal UI; input arrives through s.Queue().
func RunPlain(ctx context.Context, s *Session, w io.Writer, opts PlainOptions) (Result, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	var prev []string
	if opts.ANSI {
		if err := display.ClearScreen(w); err != nil {
			return Result{}, err
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		case now := <-ticker.C:
			res := s.Advance(now)

			next := display.Text(s.Lines())
			if prev == nil || res.Changed {
				if err := draw(w, prev, next, opts.ANSI); err != nil {
					return res, err
				}
				prev = next
			}

			if res.Done() {
				_, err := fmt.Fprintf(w, "\n%s\n", res.FinalMessage())
				return res, err
			}
		}
	}
}

func draw(w io.Writer, prev, next []string, ansi bool) error {
	if ansi {
		return display.WriteUpdate(w, prev, next)
	}
	_, err := io.WriteString(w, strings.Join(next, "\n")+"\n\n")
	return err
}
