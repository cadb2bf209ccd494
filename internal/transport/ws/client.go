package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wordshooter/internal/app"
	"wordshooter/internal/domain"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	session  *app.GameSession
	playerID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, session *app.GameSession, playerID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		session:  session,
		playerID: playerID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// GetPlayerID returns the player ID for this client
func (c *Client) GetPlayerID() string {
	return c.playerID
}

// Send implements app.ClientConnection
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped", "playerID", c.playerID)
		return nil
	}
}

// Close implements app.ClientConnection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.session.UnregisterClient(c.playerID)
		c.session.Leave(c.playerID)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client.
// Unparseable messages are dropped silently.
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	switch msg.Type {
	case MsgJoin:
		c.handleJoin(msg.Payload)
	case MsgAttempt:
		c.handleAttempt(msg.Payload)
	case MsgTyping:
		c.handleTyping(msg.Payload)
	case MsgStartGame:
		c.handleStartGame(msg.Payload)
	case MsgLeave:
		c.handleLeave()
	case MsgPing:
		// Keepalive only
	}
}

// handleJoin handles a join message
func (c *Client) handleJoin(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return
	}

	name, _ := payloadMap["playerName"].(string)
	colorIdx := 0
	if v, ok := payloadMap["playerColor"].(float64); ok {
		colorIdx = int(v)
	}

	_, err := c.session.Join(c.playerID, name, colorIdx)
	if err != nil {
		switch err {
		case domain.ErrRoomFull:
			c.sendError("Room is full.")
		case domain.ErrGameInProgress:
			c.sendError("Game is already in progress.")
		default:
			c.sendError(err.Error())
		}
		return
	}
}

// handleAttempt handles a kill attempt. Rejections surface as
// attemptRejected events from the session; everything else is silent.
func (c *Client) handleAttempt(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return
	}

	invaderID, _ := payloadMap["invaderId"].(string)
	typed, _ := payloadMap["typed"].(string)
	if invaderID == "" {
		return
	}

	c.session.HandleAttempt(c.playerID, invaderID, typed)
}

// handleTyping relays the player's current input
func (c *Client) handleTyping(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return
	}

	input, _ := payloadMap["currentInput"].(string)
	c.session.HandleTyping(c.playerID, input)
}

// handleStartGame handles a host's start request
func (c *Client) handleStartGame(payload interface{}) {
	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return
	}

	mode, _ := payloadMap["mode"].(string)
	duration := 60
	if v, ok := payloadMap["duration"].(float64); ok {
		duration = int(v)
	}

	err := c.session.StartGame(c.playerID, domain.Mode(mode), duration)
	if err != nil {
		switch err {
		case domain.ErrNotHost:
			c.sendError("Only the host can start the game.")
		case domain.ErrInvalidMode, domain.ErrInvalidDuration:
			c.sendError("Invalid game settings.")
		case domain.ErrInvalidPhase:
			// Start raced with an in-progress game; expected, ignore
		default:
			c.sendError(err.Error())
		}
		return
	}
}

// handleLeave handles an explicit leave message
func (c *Client) handleLeave() {
	c.session.Leave(c.playerID)
}

// sendError sends an error event to this client only
func (c *Client) sendError(message string) {
	event := domain.NewPlayerEvent(domain.EventError, c.session.GetRoomCode(), c.playerID, &domain.ErrorPayload{
		Message: message,
	})
	c.Send(event)
}
