// Package history keeps the submitted command lines for recall with the
// up/down keys.
package history

import (
	"strings"

	list "github.com/bahlo/generic-list-go"
)

// Direction selects which way Recall moves the cursor.
type Direction int

const (
	// Older moves toward the first recorded command.
	Older Direction = iota
	// Newer moves toward the most recent command.
	Newer
)

// List is a doubly linked list of commands with a recall cursor.
// Entries are never evicted.
type List struct {
	entries *list.List[string]
	cursor  *list.Element[string]
}

// New returns an empty history.
func New() *List {
	return &List{entries: list.New[string]()}
}

// Record appends line and moves the cursor to it. Blank lines and repeats of
// the most recent entry are ignored.
func (h *List) Record(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if tail := h.entries.Back(); tail != nil && tail.Value == line {
		return
	}
	h.cursor = h.entries.PushBack(line)
}

// Recall moves the cursor one step in dir, unless it is already at that end,
// and returns the command under the cursor. It returns false when the history
// is empty.
func (h *List) Recall(dir Direction) (string, bool) {
	if h.cursor == nil {
		return "", false
	}
	switch dir {
	case Older:
		if prev := h.cursor.Prev(); prev != nil {
			h.cursor = prev
		}
	case Newer:
		if next := h.cursor.Next(); next != nil {
			h.cursor = next
		}
	}
	return h.cursor.Value, true
}

// Len returns the number of recorded commands.
func (h *List) Len() int {
	return h.entries.Len()
}

// Entries returns a copy of the history, oldest first.
func (h *List) Entries() []string {
	out := make([]string, 0, h.entries.Len())
	for el := h.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}
