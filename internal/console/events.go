package console

import (
	"github.com/nostromo/mother/internal/sound"
	"github.com/nostromo/mother/internal/transcript"
)

// EventKind of a console event.
type EventKind string

const (
	// EventMessage is emitted when a message is appended.
	EventMessage EventKind = "message"
	// EventReveal carries newly revealed characters of the streaming message.
	EventReveal EventKind = "reveal"
	// EventRevealDone is emitted when a message is fully shown.
	EventRevealDone EventKind = "reveal_done"
	// EventBusy is emitted when the input lock changes.
	EventBusy EventKind = "busy"
	// EventSuggestions is emitted when the follow-up suggestions change.
	EventSuggestions EventKind = "suggestions"
	// EventClear is emitted when the session is wiped.
	EventClear EventKind = "clear"
	// EventOpenSettings asks the surface to show the settings editor.
	EventOpenSettings EventKind = "open_settings"
	// EventSound asks the surface to play a sound.
	EventSound EventKind = "sound"
	// EventBootComplete is emitted once the boot announcements are done.
	EventBootComplete EventKind = "boot_complete"
	// EventRejected is emitted when an input is refused because the console is booting or busy.
	EventRejected EventKind = "rejected"
)

// Event emitted by a console. Only the fields relevant to Kind are set.
type Event struct {
	Kind        EventKind           `json:"kind"`
	Message     *transcript.Message `json:"message,omitempty"`
	MessageID   string              `json:"message_id,omitempty"`
	Delta       string              `json:"delta,omitempty"`
	Busy        bool                `json:"busy,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Sound       string              `json:"sound,omitempty"`
	Input       string              `json:"input,omitempty"`
	effect      sound.Effect
}

// Effect of an EventSound.
func (e Event) Effect() sound.Effect { return e.effect }
