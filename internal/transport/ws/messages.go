package ws

// MessageType represents the type of an inbound client intent
type MessageType string

// Client → Server message types. Server → client traffic is the room's
// event stream (domain.RoomEvent) marshaled as-is.
const (
	MsgJoin      MessageType = "join"
	MsgAttempt   MessageType = "attempt"
	MsgTyping    MessageType = "typing"
	MsgStartGame MessageType = "startGame"
	MsgLeave     MessageType = "leave"
	MsgPing      MessageType = "ping"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client message payloads, documented for reference; the handler reads
// them out of the decoded payload map.

// JoinPayload is the payload for a join message
type JoinPayload struct {
	PlayerName  string `json:"playerName"`
	PlayerColor int    `json:"playerColor"`
}

// AttemptPayload is the payload for an attempt message
type AttemptPayload struct {
	InvaderID string `json:"invaderId"`
	Typed     string `json:"typed"`
}

// TypingPayload is the payload for a typing message
type TypingPayload struct {
	CurrentInput string `json:"currentInput"`
}

// StartGamePayload is the payload for a startGame message
type StartGamePayload struct {
	Mode     string `json:"mode"`
	Duration int    `json:"duration"`
}
