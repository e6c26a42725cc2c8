package model

import "time"

// MessageID uniquely identifies a message across the system
type MessageID string

// MessageType classifies a message's visibility scope
type MessageType string

const (
	// TypeMessage is a public message visible to everyone
	TypeMessage MessageType = "message"
	// TypePrivate is visible only to its sender and recipient
	TypePrivate MessageType = "private_message"
	// TypeStatus is a system-generated join/leave notice, always public
	TypeStatus MessageType = "status"
)

// Everyone is the recipient sentinel for public messages
const Everyone = "Todos"

// Message is a single chat log entry. From and To are participant names,
// not live references: the message stays valid after the named
// participants leave.
type Message struct {
	ID   MessageID   `json:"id"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	// Time is the display time-of-day string, assigned at creation and
	// immutable after. SentAt is the native timestamp used for ordering.
	Time   string    `json:"time"`
	SentAt time.Time `json:"sent_at"`
}

// VisibleTo reports whether the named requester may see this message.
// Private messages are visible only to their sender and recipient;
// everything else is public.
func (m *Message) VisibleTo(requester string) bool {
	if m.Type != TypePrivate {
		return true
	}
	return m.From == requester || m.To == requester
}
