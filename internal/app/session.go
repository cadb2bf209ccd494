package app

import (
	"log/slog"
	"sync"
	"time"

	"wordshooter/internal/domain"
)

const (
	// countdownStart is the number of 3-2-1 ticks before play begins
	countdownStart = 3

	// eventBufferSize is the size of the outbound event queue
	eventBufferSize = 256
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// GameSession wraps a room with concurrency control, timer scheduling,
// and client fan-out. Every mutation of the room runs under one mutex, so
// message handlers and timer callbacks never interleave mid-mutation:
// exactly one attempt can ever observe a given invader as present.
type GameSession struct {
	room   *domain.Room
	mu     sync.Mutex
	logger *slog.Logger

	clients   map[string]ClientConnection
	clientsMu sync.RWMutex

	events chan *domain.RoomEvent
	done   chan struct{}

	// Stale-timer defense: loops capture the generation they were armed
	// with and bail out once it no longer matches. gen covers the
	// countdown and tick loops, spawnGen the spawn loop, which restarts
	// independently on adventure phase changes.
	gen      uint64
	spawnGen uint64

	countdown int
	plan      domain.SpawnPlan

	// Overridable in tests
	countdownInterval time.Duration
	tickInterval      time.Duration
	mathRespawnDelay  time.Duration

	createdAt time.Time
}

// NewGameSession creates a session around a room and starts its event
// broadcaster
func NewGameSession(room *domain.Room, logger *slog.Logger) *GameSession {
	s := &GameSession{
		room:              room,
		logger:            logger,
		clients:           make(map[string]ClientConnection),
		events:            make(chan *domain.RoomEvent, eventBufferSize),
		done:              make(chan struct{}),
		countdownInterval: time.Second,
		tickInterval:      time.Second,
		mathRespawnDelay:  time.Second,
		createdAt:         time.Now(),
	}

	go s.eventLoop()

	return s
}

// GetRoomCode returns the room code
func (s *GameSession) GetRoomCode() string {
	return s.room.Code
}

// GetCreatedAt returns when the session was created
func (s *GameSession) GetCreatedAt() time.Time {
	return s.createdAt
}

// GetPlayerCount returns the number of players in the room
func (s *GameSession) GetPlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.room.Players)
}

// GetPhase returns the current room phase
func (s *GameSession) GetPhase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Phase
}

// CanJoin reports whether a new player would currently be admitted
func (s *GameSession) CanJoin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.Phase.AcceptsJoins() && len(s.room.Players) < s.room.MaxPlayers
}

// MaxPlayers returns the room's player capacity
func (s *GameSession) MaxPlayers() int {
	return s.room.MaxPlayers
}

// RegisterClient registers a client connection for a player
func (s *GameSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *GameSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// Join adds a player to the room and rebroadcasts the roster
func (s *GameSession) Join(playerID, name string, colorIdx int) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.room.AddPlayer(playerID, name, colorIdx)
	if err != nil {
		return nil, err
	}

	s.broadcastRoomStateLocked()

	return player, nil
}

// Leave removes a player, handing off the host role if needed. When the
// last player leaves, every timer is invalidated and the room reverts to
// lobby.
func (s *GameSession) Leave(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.RemovePlayer(playerID) {
		return false
	}

	if s.room.IsEmpty() {
		s.invalidateTimersLocked()
		return true
	}

	s.broadcastRoomStateLocked()
	return true
}

// SendRoomState sends the current snapshot to one player, so a fresh
// connection learns its own id
func (s *GameSession) SendRoomState(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queueEvent(domain.NewPlayerEvent(domain.EventRoomState, s.room.Code, playerID, s.room.Snapshot(playerID)))
}

// StartGame arms the countdown. Host only; valid from lobby or finished.
func (s *GameSession) StartGame(playerID string, mode domain.Mode, duration int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	if err := s.room.StartCountdown(mode, duration); err != nil {
		return err
	}

	s.invalidateTimersLocked()
	s.countdown = countdownStart
	s.queueEvent(domain.NewEvent(domain.EventCountdown, s.room.Code, &domain.CountdownPayload{Count: s.countdown}))

	go s.countdownLoop(s.gen)

	return nil
}

// HandleAttempt validates a kill attempt. Out-of-phase attempts and
// unknown players are silent no-ops; rejections go only to the attempting
// player; a kill is broadcast to everyone.
func (s *GameSession) HandleAttempt(playerID, invaderID, typed string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.room.Attempt(playerID, invaderID, typed, time.Now())
	if result == nil {
		return
	}

	if result.Rejected {
		s.queueEvent(domain.NewPlayerEvent(domain.EventAttemptRejected, s.room.Code, playerID, &domain.AttemptRejectedPayload{
			InvaderID: invaderID,
			Reason:    result.Reason,
		}))
		return
	}

	s.queueEvent(domain.NewEvent(domain.EventKill, s.room.Code, &domain.KillPayload{
		InvaderID:    invaderID,
		KilledBy:     playerID,
		KillerName:   result.Player.Name,
		KillerColor:  result.Player.Color,
		PointsEarned: result.Points,
		NewScore:     result.Player.Score,
		NewCombo:     result.Player.Combo,
	}))

	if s.room.Mode == domain.ModeAdventure {
		s.checkJourneyLocked()
	}

	// Killing the sole math question triggers a quick replacement rather
	// than waiting out the spawn cadence
	if s.plan.Type == domain.InvaderMath && len(s.room.Invaders) == 0 && s.room.Phase == domain.PhasePlaying {
		gen := s.spawnGen
		time.AfterFunc(s.mathRespawnDelay, func() {
			s.mathRespawn(gen)
		})
	}
}

// HandleTyping relays a player's in-progress input to everyone else
func (s *GameSession) HandleTyping(playerID, currentInput string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.room.GetPlayer(playerID)
	if !ok {
		return
	}

	s.queueEvent(domain.NewEventExcluding(domain.EventPlayerTyping, s.room.Code, playerID, &domain.PlayerTypingPayload{
		PlayerID:     playerID,
		PlayerName:   player.Name,
		CurrentInput: currentInput,
	}))
}

// ── Countdown ──

func (s *GameSession) countdownLoop(gen uint64) {
	ticker := time.NewTicker(s.countdownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.countdownTick(gen) {
				return
			}
		}
	}
}

// countdownTick fires once per second during countdown. Returns false
// when the loop should stop.
func (s *GameSession) countdownTick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.room.Phase != domain.PhaseCountdown {
		return false
	}

	s.countdown--
	s.queueEvent(domain.NewEvent(domain.EventCountdown, s.room.Code, &domain.CountdownPayload{Count: s.countdown}))

	if s.countdown <= 0 {
		s.beginPlayingLocked()
		return false
	}

	return true
}

// ── Playing ──

func (s *GameSession) beginPlayingLocked() {
	s.room.BeginPlaying(time.Now())
	s.broadcastRoomStateLocked()

	if s.room.Mode == domain.ModeAdventure {
		phase := domain.JourneyPhaseForScore(0)
		s.enterJourneyPhaseLocked(phase)
	} else {
		s.plan = domain.PlanForMode(s.room.Mode)
		s.spawnGen++
		s.spawnBatchLocked(s.plan.InitialBatch)
		go s.spawnLoop(s.spawnGen, s.plan.Interval)
	}

	go s.tickLoop(s.gen)
}

func (s *GameSession) tickLoop(gen uint64) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.timeTick(gen) {
				return
			}
		}
	}
}

// timeTick fires once per second while playing: decrements the clock,
// sweeps expired invaders, and ends the game at zero
func (s *GameSession) timeTick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || s.room.Phase != domain.PhasePlaying {
		return false
	}

	remaining, finished := s.room.Tick()
	s.queueEvent(domain.NewEvent(domain.EventTimeTick, s.room.Code, &domain.TimeTickPayload{TimeRemaining: remaining}))

	for _, id := range s.room.SweepExpired(time.Now()) {
		s.queueEvent(domain.NewEvent(domain.EventMissed, s.room.Code, &domain.MissedPayload{InvaderID: id}))
	}

	if finished {
		s.endGameLocked()
		return false
	}

	return true
}

func (s *GameSession) endGameLocked() {
	s.invalidateTimersLocked()
	scoreboard := s.room.Finish()
	s.queueEvent(domain.NewEvent(domain.EventGameOver, s.room.Code, &domain.GameOverPayload{Scoreboard: scoreboard}))
}

// ── Spawning ──

func (s *GameSession) spawnLoop(gen uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.spawnTick(gen) {
				return
			}
		}
	}
}

func (s *GameSession) spawnTick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.spawnGen || s.room.Phase != domain.PhasePlaying {
		return false
	}

	if len(s.room.Invaders) < s.plan.MaxInvaders {
		s.spawnOneLocked()
	}

	return true
}

func (s *GameSession) spawnBatchLocked(count int) {
	for i := 0; i < count && len(s.room.Invaders) < s.plan.MaxInvaders; i++ {
		s.spawnOneLocked()
	}
}

func (s *GameSession) spawnOneLocked() {
	elapsed := s.room.GameElapsed(time.Now())
	speed := domain.BaseSpeed(s.plan.Type, elapsed) * s.plan.SpeedMultiplier

	var inv *domain.Invader
	switch s.plan.Type {
	case domain.InvaderMath:
		inv = domain.NewMathInvader(speed)
	case domain.InvaderLetter:
		inv = domain.NewLetterInvader(s.room.AliveAnswers(), speed)
	default:
		inv = domain.NewWordInvader(s.room.AliveAnswers(), speed)
	}

	s.room.AddInvader(inv)
	s.queueEvent(domain.NewEvent(domain.EventSpawn, s.room.Code, &domain.SpawnPayload{Invader: inv}))
}

// mathRespawn fires after a math kill to put the next question up
func (s *GameSession) mathRespawn(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.spawnGen || s.room.Phase != domain.PhasePlaying {
		return
	}

	if len(s.room.Invaders) == 0 {
		s.spawnOneLocked()
	}
}

// ── Journey phases ──

// checkJourneyLocked re-derives the ladder rung from the highest score
// among all players and transitions the spawn engine if it changed
func (s *GameSession) checkJourneyLocked() {
	phase := domain.JourneyPhaseForScore(s.room.HighestScore())
	if phase.Number == s.room.JourneyPhase {
		return
	}

	// Old spawn loop dies, live invaders are individually reported as
	// missed so client animations can clean up
	s.spawnGen++
	for _, id := range s.room.ClearInvaders() {
		s.queueEvent(domain.NewEvent(domain.EventMissed, s.room.Code, &domain.MissedPayload{InvaderID: id}))
	}

	s.enterJourneyPhaseLocked(phase)
}

func (s *GameSession) enterJourneyPhaseLocked(phase domain.JourneyPhase) {
	s.room.JourneyPhase = phase.Number
	s.plan = phase.Plan()
	s.spawnGen++

	s.queueEvent(domain.NewEvent(domain.EventJourneyPhase, s.room.Code, &domain.JourneyPhasePayload{
		Phase:           phase.Number,
		Name:            phase.Name,
		Color:           phase.Color,
		SpawnType:       phase.Spawn,
		SpeedMultiplier: phase.SpeedMultiplier,
	}))

	s.spawnBatchLocked(s.plan.InitialBatch)
	go s.spawnLoop(s.spawnGen, s.plan.Interval)
}

// ── Timer invalidation ──

// invalidateTimersLocked makes every armed timer callback a no-op the
// next time it fires
func (s *GameSession) invalidateTimersLocked() {
	s.gen++
	s.spawnGen++
}

// ── Event fan-out ──

func (s *GameSession) broadcastRoomStateLocked() {
	for _, p := range s.room.PlayerList() {
		s.queueEvent(domain.NewPlayerEvent(domain.EventRoomState, s.room.Code, p.ID, s.room.Snapshot(p.ID)))
	}
}

// queueEvent adds an event to the broadcast queue
func (s *GameSession) queueEvent(event *domain.RoomEvent) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and delivers them to clients
func (s *GameSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.deliverEvent(event)
		}
	}
}

// deliverEvent sends an event to the appropriate clients
func (s *GameSession) deliverEvent(event *domain.RoomEvent) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if playerID == event.ExcludeID {
			continue
		}
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session and all client connections
func (s *GameSession) Close() {
	select {
	case <-s.done:
		return // Already closed
	default:
		close(s.done)
	}

	s.mu.Lock()
	s.invalidateTimersLocked()
	s.mu.Unlock()

	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = make(map[string]ClientConnection)
	s.clientsMu.Unlock()
}
