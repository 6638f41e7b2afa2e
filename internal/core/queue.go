package core

import "sync"

// Queue is an unbounded FIFO of player inputs. Any number of producers may
// Push; the single owner of the pet drains it. Push never blocks.
type Queue struct {
	mu    sync.Mutex
	items []Input
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an input.
func (q *Queue) Push(in Input) {
	q.mu.Lock()
	q.items = append(q.items, in)
	q.mu.Unlock()
}

// PushLine parses line and appends the result.
func (q *Queue) PushLine(line string) {
	q.Push(ParseInput(line))
}

// TryPop removes and returns the oldest input, if any.
func (q *Queue) TryPop() (Input, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Input{}, false
	}
	in := q.items[0]
	q.items[0] = Input{}
	q.items = q.items[1:]
	return in, true
}

// Drain removes and returns everything queued.
func (q *Queue) Drain() []Input {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued inputs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
