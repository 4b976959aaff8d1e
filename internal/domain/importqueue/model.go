package importqueue

import (
	"errors"
	"strings"
)

// DefaultCapacity is the number of staging slots.
const DefaultCapacity = 30

var ErrFull = errors.New("import queue is full")

// Slot is one staged URL and its position in the queue.
type Slot struct {
	Index int
	URL   string
}

// Queue is a bounded ordered set of pending result URLs. Empty slots hold "".
type Queue struct {
	slots []string
}

func New(capacity int) Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Queue{slots: make([]string, capacity)}
}

// FromSlots rebuilds a queue from stored slot values, padded or truncated to capacity.
func FromSlots(values []string, capacity int) Queue {
	q := New(capacity)
	for i := 0; i < len(values) && i < len(q.slots); i++ {
		q.slots[i] = strings.TrimSpace(values[i])
	}
	return q
}

func (q Queue) Capacity() int {
	return len(q.slots)
}

// Slots returns a copy of every slot value in order.
func (q Queue) Slots() []string {
	out := make([]string, len(q.slots))
	copy(out, q.slots)
	return out
}

// Pending lists the non-empty slots in queue order.
func (q Queue) Pending() []Slot {
	out := make([]Slot, 0, len(q.slots))
	for i, url := range q.slots {
		if url == "" {
			continue
		}
		out = append(out, Slot{Index: i, URL: url})
	}
	return out
}

// Enqueue writes urls into the first contiguous run of empty slots.
// Nothing is written when the run is too short.
func (q *Queue) Enqueue(urls []string) ([]Slot, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	start := -1
	for i, url := range q.slots {
		if url == "" {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrFull
	}

	free := 0
	for i := start; i < len(q.slots) && q.slots[i] == ""; i++ {
		free++
	}
	if len(urls) > free {
		return nil, ErrFull
	}

	written := make([]Slot, 0, len(urls))
	for i, url := range urls {
		q.slots[start+i] = url
		written = append(written, Slot{Index: start + i, URL: url})
	}
	return written, nil
}

// Consume clears the slot if it still holds the same URL. Replaying a
// consume for an already cleared or reused slot is a no-op.
func (q *Queue) Consume(slot Slot) bool {
	if slot.Index < 0 || slot.Index >= len(q.slots) {
		return false
	}
	if q.slots[slot.Index] != slot.URL {
		return false
	}
	q.slots[slot.Index] = ""
	return true
}
