package transcript

import (
	"time"

	"github.com/google/uuid"
)

// Sender of a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderMother Sender = "mother"
)

// Label shown in front of a message.
func (s Sender) Label() string {
	if s == SenderUser {
		return "CREW"
	}
	return "MOTHER"
}

// Message of the transcript. Never mutated once appended.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage returns a message with a fresh time-ordered id.
func NewMessage(sender Sender, content string, timestamp time.Time) Message {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Message{ID: id.String(), Content: content, Sender: sender, Timestamp: timestamp}
}

// Transcript is the ordered list of messages of a session.
// Not safe for concurrent use.
type Transcript struct {
	messages []Message
}

// Append a message.
func (t *Transcript) Append(message Message) {
	t.messages = append(t.messages, message)
}

// Messages returns a copy of the messages in insertion order.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

// Get a message by id.
func (t *Transcript) Get(id string) (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].ID == id {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// Last message, if any.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Clear drops every message.
func (t *Transcript) Clear() { t.messages = nil }
