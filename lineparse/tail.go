package lineparse

import "fmt"

type numberedLine struct {
	number int
	text   string
}

// tailBuffer stores the N most recently queued lines. It is not safe for
// concurrent use.
type tailBuffer struct {
	i      int
	items  []numberedLine
	looped bool
}

func newTailBuffer(n int) (*tailBuffer, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("cannot create tailBuffer with negative line count: %d", n)
	case n == 0:
		return new(tailBuffer), nil
	default:
		return &tailBuffer{items: make([]numberedLine, n)}, nil
	}
}

// Queue stores item, overwriting the oldest line once the buffer is full.
func (cb *tailBuffer) Queue(item numberedLine) {
	// Special case when buffer has no capacity: nothing to remember.
	if cb.items == nil {
		return
	}
	cb.items[cb.i] = item

	// Increment index making note when we wrap-around.
	if cb.i++; cb.i == cap(cb.items) {
		cb.i = 0
		cb.looped = true
	}
}

// Drain returns the stored lines, oldest first.
func (cb *tailBuffer) Drain() []numberedLine {
	if cb.looped {
		out := make([]numberedLine, 0, len(cb.items))
		out = append(out, cb.items[cb.i:]...) // f g c d e
		return append(out, cb.items[:cb.i]...)
	}
	return cb.items[:cb.i] // a b c _ _
}
