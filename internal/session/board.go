package session

import (
	"sync"

	"github.com/vovakirdan/gotchi/internal/pet"
)

// Frame is one published view of the session.
type Frame struct {
	Lines    []string
	Snapshot pet.Snapshot
	Status   pet.Status
	Quit     bool
}

// Done reports whether the run had ended when the frame was published.
func (f Frame) Done() bool {
	return f.Quit || f.Status.Terminal()
}

// Board holds the latest Frame for readers on other goroutines, such as
// the auto player. Publishing replaces the frame; readers get a copy.
type Board struct {
	mu      sync.RWMutex
	frame   Frame
	version uint64
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Publish stores f as the current frame.
func (b *Board) Publish(f Frame) {
	lines := make([]string, len(f.Lines))
	copy(lines, f.Lines)
	f.Lines = lines

	b.mu.Lock()
	b.frame = f
	b.version++
	b.mu.Unlock()
}

// Read returns the current frame and its version. The version increases
// with every Publish.
func (b *Board) Read() (Frame, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f := b.frame
	f.Lines = append([]string(nil), b.frame.Lines...)
	return f, b.version
}
