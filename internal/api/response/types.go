package response

import (
	"time"

	"github.com/uolchat/batepapo/internal/model"
)

// Participant represents a live participant in API responses. The wire
// field is lastStatus, the name the existing front end reads.
type Participant struct {
	Name       string    `json:"name"`
	LastStatus time.Time `json:"lastStatus"`
}

// ParticipantFromModel converts a model.Participant to a response Participant
func ParticipantFromModel(p *model.Participant) Participant {
	return Participant{
		Name:       p.Name,
		LastStatus: p.LastSeen,
	}
}

// ParticipantsFromModel converts a participant list
func ParticipantsFromModel(participants []*model.Participant) []Participant {
	out := make([]Participant, len(participants))
	for i, p := range participants {
		out[i] = ParticipantFromModel(p)
	}
	return out
}

// Message represents a message in API responses
type Message struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

// MessageFromModel converts a model.Message to a response Message
func MessageFromModel(m *model.Message) Message {
	return Message{
		ID:   string(m.ID),
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	}
}

// MessagesFromModel converts a message list
func MessagesFromModel(messages []*model.Message) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = MessageFromModel(m)
	}
	return out
}
