package domain

import "time"

// EventType represents the type of room event
type EventType string

const (
	EventRoomState       EventType = "roomState"
	EventCountdown       EventType = "countdown"
	EventSpawn           EventType = "spawn"
	EventKill            EventType = "kill"
	EventMissed          EventType = "missed"
	EventAttemptRejected EventType = "attemptRejected"
	EventTimeTick        EventType = "timeTick"
	EventGameOver        EventType = "gameOver"
	EventPlayerTyping    EventType = "playerTyping"
	EventJourneyPhase    EventType = "journeyPhase"
	EventError           EventType = "error"
)

// RoomEvent represents an outbound event produced by a room.
// PlayerID, when set, targets a single recipient; ExcludeID, when set,
// excludes one recipient from a broadcast.
type RoomEvent struct {
	Type      EventType   `json:"type"`
	RoomCode  string      `json:"roomCode"`
	PlayerID  string      `json:"-"`
	ExcludeID string      `json:"-"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a broadcast event
func NewEvent(eventType EventType, roomCode string, payload interface{}) *RoomEvent {
	return &RoomEvent{
		Type:      eventType,
		RoomCode:  roomCode,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates an event delivered to a single player
func NewPlayerEvent(eventType EventType, roomCode, playerID string, payload interface{}) *RoomEvent {
	return &RoomEvent{
		Type:      eventType,
		RoomCode:  roomCode,
		PlayerID:  playerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewEventExcluding creates a broadcast event skipping one player
func NewEventExcluding(eventType EventType, roomCode, excludeID string, payload interface{}) *RoomEvent {
	return &RoomEvent{
		Type:      eventType,
		RoomCode:  roomCode,
		ExcludeID: excludeID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// RoomStatePayload is the full room snapshot sent on join/leave and on connect
type RoomStatePayload struct {
	RoomCode      string    `json:"roomCode"`
	Players       []*Player `json:"players"`
	Phase         Phase     `json:"phase"`
	Mode          Mode      `json:"mode,omitempty"`
	Duration      int       `json:"duration,omitempty"`
	TimeRemaining int       `json:"timeRemaining"`
	YourID        string    `json:"yourId"`
}

// CountdownPayload is broadcast every second during the pre-game countdown
type CountdownPayload struct {
	Count int `json:"count"` // 3, 2, 1, 0 (0 = go)
}

// SpawnPayload announces a new invader on the field
type SpawnPayload struct {
	Invader *Invader `json:"invader"`
}

// KillPayload is broadcast to all participants when an invader is destroyed
type KillPayload struct {
	InvaderID    string `json:"invaderId"`
	KilledBy     string `json:"killedBy"`
	KillerName   string `json:"killerName"`
	KillerColor  int    `json:"killerColor"`
	PointsEarned int    `json:"pointsEarned"`
	NewScore     int    `json:"newScore"`
	NewCombo     int    `json:"newCombo"`
}

// MissedPayload reports an invader removed by expiry or a phase clear
type MissedPayload struct {
	InvaderID string `json:"invaderId"`
}

// RejectReason explains why an attempt was refused
type RejectReason string

const (
	RejectAlreadyKilled RejectReason = "already_killed"
	RejectWrongAnswer   RejectReason = "wrong_answer"
)

// AttemptRejectedPayload is sent only to the attempting player
type AttemptRejectedPayload struct {
	InvaderID string       `json:"invaderId"`
	Reason    RejectReason `json:"reason"`
}

// TimeTickPayload is broadcast every second while playing
type TimeTickPayload struct {
	TimeRemaining int `json:"timeRemaining"`
}

// GameOverPayload carries the final scoreboard, sorted descending by score
type GameOverPayload struct {
	Scoreboard []ScoreboardEntry `json:"scoreboard"`
}

// PlayerTypingPayload relays a player's in-progress input to the others
type PlayerTypingPayload struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	CurrentInput string `json:"currentInput"`
}

// JourneyPhasePayload announces an adventure phase change
type JourneyPhasePayload struct {
	Phase           int         `json:"phase"`
	Name            string      `json:"name"`
	Color           string      `json:"color"`
	SpawnType       InvaderType `json:"spawnType"`
	SpeedMultiplier float64     `json:"speedMultiplier"`
}

// ErrorPayload is sent when a request is refused with a user-visible reason
type ErrorPayload struct {
	Message string `json:"message"`
}
