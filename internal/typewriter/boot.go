package typewriter

import "time"

// BootSequence is announced when a console starts.
var BootSequence = []string{
	"WEYLAND-YUTANI SYSTEMS",
	"NOSTROMO MAINFRAME BOOT SEQUENCE",
	"INITIALIZING MU/TH/UR 6000...",
	"LOADING NEURAL PROTOCOLS...",
	"ESTABLISHING SECURE CONNECTION...",
	"INTERFACE READY",
	"AWAITING CREW INPUT...",
}

// DefaultBootInterval between two announcements.
const DefaultBootInterval = 800 * time.Millisecond

// Boot emits a fixed list of announcements, one per interval.
type Boot struct {
	items    []string
	interval time.Duration
	emitted  int
	next     time.Time
	running  bool
}

// NewBoot returns a boot sequence over items.
func NewBoot(items []string, interval time.Duration) *Boot {
	return &Boot{items: items, interval: interval}
}

// Start the sequence. The first item is due one interval after now.
func (b *Boot) Start(now time.Time) {
	b.emitted = 0
	b.next = now.Add(b.interval)
	b.running = len(b.items) > 0
}

// Advance returns the items that became due.
func (b *Boot) Advance(now time.Time) []string {
	var due []string
	for b.running && !now.Before(b.next) {
		due = append(due, b.items[b.emitted])
		b.emitted++
		b.next = b.next.Add(b.interval)
		if b.emitted == len(b.items) {
			b.running = false
		}
	}
	return due
}

// Cancel stops the sequence where it is.
func (b *Boot) Cancel() { b.running = false }

// Running reports whether items are still pending.
func (b *Boot) Running() bool { return b.running }

// Deadline of the next item.
func (b *Boot) Deadline() (time.Time, bool) {
	if !b.running {
		return time.Time{}, false
	}
	return b.next, true
}

// Len returns the number of items.
func (b *Boot) Len() int { return len(b.items) }
