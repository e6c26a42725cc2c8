package model

import "time"

// Participant is a logged-in chat identity keyed by display name.
// There is no account behind it: whoever presents the name is the
// participant, for as long as the name stays live.
type Participant struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}
