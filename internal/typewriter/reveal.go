package typewriter

import "time"

// Pace selects the reveal speed of a message.
type Pace int

const (
	PaceStandard Pace = iota
	PaceAcknowledgement
	PaceBoot
)

// Pacing holds the per-character interval of each pace.
type Pacing struct {
	Standard        time.Duration
	Acknowledgement time.Duration
	Boot            time.Duration
}

// DefaultPacing of the console.
var DefaultPacing = Pacing{
	Standard:        30 * time.Millisecond,
	Acknowledgement: 20 * time.Millisecond,
	Boot:            15 * time.Millisecond,
}

// Interval of the given pace.
func (p Pacing) Interval(pace Pace) time.Duration {
	switch pace {
	case PaceAcknowledgement:
		return p.Acknowledgement
	case PaceBoot:
		return p.Boot
	default:
		return p.Standard
	}
}

// Phase of a reveal.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRevealing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseRevealing:
		return "revealing"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Reveal exposes a growing prefix of one message, one character per interval.
// It holds no timers: the owner advances it with the current time.
type Reveal struct {
	phase     Phase
	messageID string
	text      []rune
	position  int
	interval  time.Duration
	next      time.Time
}

// Start revealing text. A reveal still in progress is finished first and its message id returned.
func (r *Reveal) Start(messageID, text string, interval time.Duration, now time.Time) (flushed string, ok bool) {
	if r.phase == PhaseRevealing {
		flushed, ok = r.messageID, true
	}
	r.messageID = messageID
	r.text = []rune(text)
	r.position = 0
	r.interval = interval
	r.next = now.Add(interval)
	r.phase = PhaseRevealing
	if len(r.text) == 0 || interval <= 0 {
		r.position = len(r.text)
		r.phase = PhaseDone
	}
	return flushed, ok
}

// Advance reveals every character whose deadline is not after now.
// Returns true when this call completed the reveal.
func (r *Reveal) Advance(now time.Time) bool {
	if r.phase != PhaseRevealing {
		return false
	}
	for r.position < len(r.text) && !now.Before(r.next) {
		r.position++
		r.next = r.next.Add(r.interval)
	}
	if r.position == len(r.text) {
		r.phase = PhaseDone
		return true
	}
	return false
}

// Finish shows the full text at once.
func (r *Reveal) Finish() {
	if r.phase != PhaseRevealing {
		return
	}
	r.position = len(r.text)
	r.phase = PhaseDone
}

// Cancel drops the reveal.
func (r *Reveal) Cancel() {
	*r = Reveal{}
}

// Deadline of the next character, if revealing.
func (r *Reveal) Deadline() (time.Time, bool) {
	if r.phase != PhaseRevealing {
		return time.Time{}, false
	}
	return r.next, true
}

// Phase of the reveal.
func (r *Reveal) Phase() Phase { return r.phase }

// MessageID of the message being (or last) revealed.
func (r *Reveal) MessageID() string { return r.messageID }

// Revealing reports whether the given message is still being revealed.
func (r *Reveal) Revealing(messageID string) bool {
	return r.phase == PhaseRevealing && r.messageID == messageID
}

// Visible returns the revealed prefix.
func (r *Reveal) Visible() string {
	return string(r.text[:r.position])
}

// Position in characters.
func (r *Reveal) Position() int { return r.position }
