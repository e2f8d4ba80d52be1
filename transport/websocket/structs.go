package websocket

import "encoding/json"

// Message is one inbound client command.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is one outbound frame: either a reply to a command or a
// pushed game event (action "event").
type Response struct {
	Action  string `json:"action"`
	Event   string `json:"event,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type selectPayload struct {
	Category string `json:"category"`
	Price    int    `json:"price"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type wagerPayload struct {
	Amount int `json:"amount"`
}

type uiEventPayload struct {
	Event string `json:"event"`
}

type buzzResult struct {
	Won bool `json:"won"`
}
