package request

// LoginRequest is the request body for registering a participant
type LoginRequest struct {
	Name string `json:"name"`
}

// MessageRequest is the request body for posting or editing a message.
// The sender comes from the User header, never the body.
type MessageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}
