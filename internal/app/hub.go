package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wordshooter/internal/domain"
)

const (
	// DefaultRoomCodeLength is the default length for room codes
	DefaultRoomCodeLength = 4

	// StaleRoomTimeout is how long before an empty room is cleaned up
	StaleRoomTimeout = 2 * time.Hour
)

// RoomCodeChars are characters used for room codes (no ambiguous chars)
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// RoomHub manages all active game sessions. Rooms are fully independent:
// there is no shared mutable state across them.
type RoomHub struct {
	sessions       map[string]*GameSession
	mu             sync.RWMutex
	roomCodeLength int
	maxPlayers     int
	logger         *slog.Logger
	done           chan struct{}
}

// NewRoomHub creates a new room hub
func NewRoomHub(roomCodeLength, maxPlayers int, logger *slog.Logger) *RoomHub {
	if roomCodeLength <= 0 {
		roomCodeLength = DefaultRoomCodeLength
	}

	hub := &RoomHub{
		sessions:       make(map[string]*GameSession),
		roomCodeLength: roomCodeLength,
		maxPlayers:     maxPlayers,
		logger:         logger,
		done:           make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// CreateRoom creates a new room and returns its session
func (h *RoomHub) CreateRoom() (*GameSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var roomCode string
	for attempts := 0; attempts < 10; attempts++ {
		roomCode = h.generateRoomCode()
		if _, exists := h.sessions[roomCode]; !exists {
			break
		}
	}

	if _, exists := h.sessions[roomCode]; exists {
		return nil, fmt.Errorf("failed to generate unique room code")
	}

	room := domain.NewRoom(roomCode, h.maxPlayers)
	session := NewGameSession(room, h.logger)
	h.sessions[roomCode] = session

	h.logger.Info("room created", "roomCode", roomCode)

	return session, nil
}

// GetSession returns a game session by room code
func (h *RoomHub) GetSession(roomCode string) (*GameSession, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, ok := h.sessions[roomCode]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}

	return session, nil
}

// DeleteSession removes a game session
func (h *RoomHub) DeleteSession(roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if session, ok := h.sessions[roomCode]; ok {
		session.Close()
		delete(h.sessions, roomCode)
		h.logger.Info("room deleted", "roomCode", roomCode)
	}
}

// GetSessionCount returns the number of active sessions
func (h *RoomHub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// GetTotalPlayerCount returns the total number of players across all sessions
func (h *RoomHub) GetTotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, session := range h.sessions {
		total += session.GetPlayerCount()
	}
	return total
}

// Close shuts down the hub and all sessions
func (h *RoomHub) Close() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, session := range h.sessions {
		session.Close()
	}
	h.sessions = make(map[string]*GameSession)
}

// generateRoomCode generates a random room code
func (h *RoomHub) generateRoomCode() string {
	b := make([]byte, h.roomCodeLength)
	rand.Read(b)

	code := make([]byte, h.roomCodeLength)
	for i := range code {
		code[i] = RoomCodeChars[int(b[i])%len(RoomCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically cleans up stale rooms
func (h *RoomHub) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.cleanupStaleRooms()
		}
	}
}

// cleanupStaleRooms removes rooms that have sat empty for too long
func (h *RoomHub) cleanupStaleRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	stale := make([]string, 0)

	for roomCode, session := range h.sessions {
		if session.GetPlayerCount() == 0 && now.Sub(session.GetCreatedAt()) > StaleRoomTimeout {
			stale = append(stale, roomCode)
		}
	}

	for _, roomCode := range stale {
		if session, ok := h.sessions[roomCode]; ok {
			session.Close()
			delete(h.sessions, roomCode)
			h.logger.Info("stale room cleaned up", "roomCode", roomCode)
		}
	}
}
