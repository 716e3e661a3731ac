package sound

import (
	"io"
	"sync"
)

// Effect identifies a sound.
type Effect int

const (
	EffectKeypress Effect = iota
	EffectBeep
	EffectBoot
)

func (e Effect) String() string {
	switch e {
	case EffectKeypress:
		return "keypress"
	case EffectBeep:
		return "beep"
	case EffectBoot:
		return "boot"
	default:
		return "unknown"
	}
}

// Player plays sound effects.
type Player interface {
	Play(Effect)
}

// Bell rings the terminal bell. Keypresses are silent.
type Bell struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{writer: w}
}

// Play implements Player.
func (b *Bell) Play(effect Effect) {
	if effect == EffectKeypress {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.writer.Write([]byte("\a"))
}

// Silent discards every effect.
type Silent struct{}

// Play implements Player.
func (Silent) Play(Effect) {}

// Recorder keeps every played effect. Used by tests and the websocket console, which forwards them.
type Recorder struct {
	mu      sync.Mutex
	effects []Effect
}

// Play implements Player.
func (r *Recorder) Play(effect Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = append(r.effects, effect)
}

// Effects returns the recorded effects.
func (r *Recorder) Effects() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Effect(nil), r.effects...)
}
