package core

import (
	"bufio"
	"context"
	"io"
)

// ReadLines pushes every line read from r into q until r is exhausted or
// ctx is cancelled. It returns the scanner error, if any.
func ReadLines(ctx context.Context, r io.Reader, q *Queue) error {
	return ForEachLine(ctx, r, q.PushLine)
}

// ForEachLine calls fn with every line read from r until r is exhausted or
// ctx is cancelled.
//
// A blocked Read cannot be interrupted; on cancellation the goroutine
// running ForEachLine exits at the next line.
func ForEachLine(ctx context.Context, r io.Reader, fn func(line string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		fn(scanner.Text())
	}
	return scanner.Err()
}
