package history

import (
	"strings"
	"sync"

	"github.com/scylladb/go-set/strset"
)

// MaxSize is the number of distinct entries kept.
const MaxSize = 20

// History manages input recall for the console.
// Entries are distinct: re-entering an old input moves it to the newest slot.
type History struct {
	entries []string
	seen    *strset.Set
	index   int    // Current position in history (-1 means new input)
	current string // Stores current input when navigating history
	mu      sync.Mutex
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{
		entries: make([]string, 0, MaxSize),
		seen:    strset.New(),
		index:   -1,
	}
}

// Add adds a new entry to history.
func (h *History) Add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen.Has(entry) {
		h.remove(entry)
	}
	h.entries = append(h.entries, entry)
	h.seen.Add(entry)

	// Trim to max size
	if len(h.entries) > MaxSize {
		for _, dropped := range h.entries[:len(h.entries)-MaxSize] {
			h.seen.Remove(dropped)
		}
		h.entries = append([]string(nil), h.entries[len(h.entries)-MaxSize:]...)
	}

	h.index = -1
	h.current = ""
}

func (h *History) remove(entry string) {
	for i, existing := range h.entries {
		if existing == entry {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.seen.Remove(entry)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Previous returns the previous entry in history
// currentInput is the current textarea content (saved when first navigating)
func (h *History) Previous(currentInput string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}

	// If we're at the newest position, save current input
	if h.index == -1 {
		h.current = currentInput
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	} else {
		// Already at oldest entry
		return h.entries[0], false
	}

	return h.entries[h.index], true
}

// Next returns the next entry in history (toward present)
func (h *History) Next() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == -1 {
		return "", false
	}

	h.index++
	if h.index >= len(h.entries) {
		// Return to current input
		h.index = -1
		return h.current, true
	}

	return h.entries[h.index], true
}

// Reset resets the navigation index (call when input is modified)
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.index = -1
	h.current = ""
}

// Clear drops every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.entries[:0]
	h.seen.Clear()
	h.index = -1
	h.current = ""
}
