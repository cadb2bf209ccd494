package domain

import (
	"sort"
	"strings"
	"time"
)

// Room is the authoritative state of one game session. It owns the
// player roster, the live invader set, and the phase. All methods are
// plain synchronous mutations; serialization of callers is the session
// layer's job.
type Room struct {
	Code          string
	Phase         Phase
	Mode          Mode
	Duration      int // seconds, set at start
	TimeRemaining int
	HostID        string
	Players       map[string]*Player
	order         []string // join order, drives host succession
	Invaders      map[string]*Invader
	GameStart     time.Time
	JourneyPhase  int // current ladder rung number, 0 outside adventure games
	MaxPlayers    int
	CreatedAt     time.Time
}

// NewRoom creates an empty room in the lobby phase
func NewRoom(code string, maxPlayers int) *Room {
	return &Room{
		Code:       code,
		Phase:      PhaseLobby,
		Players:    make(map[string]*Player),
		Invaders:   make(map[string]*Invader),
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
	}
}

// AddPlayer adds a player to the roster. A returning id already in the
// roster is always let through, regardless of phase or capacity. The
// first player to join becomes host.
func (r *Room) AddPlayer(id, name string, colorIdx int) (*Player, error) {
	if existing, ok := r.Players[id]; ok {
		return existing, nil
	}

	if len(r.Players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}

	if !r.Phase.AcceptsJoins() {
		return nil, ErrGameInProgress
	}

	player := NewPlayer(id, name, colorIdx)
	if len(r.Players) == 0 {
		player.IsHost = true
		r.HostID = id
	}

	r.Players[id] = player
	r.order = append(r.order, id)

	return player, nil
}

// RemovePlayer removes a player. The host role passes to the next-oldest
// remaining player; an emptied room reverts to lobby and sheds its
// invaders. Returns false if the id was not in the roster.
func (r *Room) RemovePlayer(id string) bool {
	if _, ok := r.Players[id]; !ok {
		return false
	}

	delete(r.Players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.HostID == id {
		r.HostID = ""
		if len(r.order) > 0 {
			r.HostID = r.order[0]
			r.Players[r.HostID].IsHost = true
		}
	}

	if len(r.Players) == 0 {
		r.Invaders = make(map[string]*Invader)
		r.Phase = PhaseLobby
		r.JourneyPhase = 0
	}

	return true
}

// GetPlayer returns a player by id
func (r *Room) GetPlayer(id string) (*Player, bool) {
	p, ok := r.Players[id]
	return p, ok
}

// IsHost checks if the given player is the current host
func (r *Room) IsHost(id string) bool {
	return r.HostID != "" && r.HostID == id
}

// IsEmpty returns true when no players remain
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// PlayerList returns all players in join order
func (r *Room) PlayerList() []*Player {
	players := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.Players[id])
	}
	return players
}

// StartCountdown arms a new game. Valid only from lobby or finished.
// Resets every player's per-game stats.
func (r *Room) StartCountdown(mode Mode, duration int) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}
	if !r.Phase.CanTransitionTo(PhaseCountdown) {
		return ErrInvalidPhase
	}

	r.Mode = mode
	r.Duration = duration
	r.TimeRemaining = duration
	r.Phase = PhaseCountdown
	r.JourneyPhase = 0

	for _, p := range r.Players {
		p.ResetForNewGame()
	}

	return nil
}

// BeginPlaying enters the playing phase: stale invaders are cleared and
// the game-start timestamp recorded
func (r *Room) BeginPlaying(now time.Time) {
	r.Phase = PhasePlaying
	r.Invaders = make(map[string]*Invader)
	r.GameStart = now
	r.TimeRemaining = r.Duration
}

// Tick decrements the remaining time by one second and reports whether
// the game is over
func (r *Room) Tick() (timeRemaining int, finished bool) {
	r.TimeRemaining--
	return r.TimeRemaining, r.TimeRemaining <= 0
}

// SweepExpired removes and returns the ids of invaders past their lifetime
func (r *Room) SweepExpired(now time.Time) []string {
	var expired []string
	for id, inv := range r.Invaders {
		if inv.Expired(now) {
			delete(r.Invaders, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// ClearInvaders removes every live invader, returning their ids so each
// can be reported as missed
func (r *Room) ClearInvaders() []string {
	ids := make([]string, 0, len(r.Invaders))
	for id := range r.Invaders {
		ids = append(ids, id)
	}
	r.Invaders = make(map[string]*Invader)
	return ids
}

// AddInvader registers a freshly spawned invader
func (r *Room) AddInvader(inv *Invader) {
	r.Invaders[inv.ID] = inv
}

// AliveAnswers returns the answers of all live invaders, used by the
// spawn engine to avoid duplicates
func (r *Room) AliveAnswers() []string {
	answers := make([]string, 0, len(r.Invaders))
	for _, inv := range r.Invaders {
		answers = append(answers, inv.Answer)
	}
	return answers
}

// GameElapsed returns how long the current game has been playing
func (r *Room) GameElapsed(now time.Time) time.Duration {
	return now.Sub(r.GameStart)
}

// Finish ends the game and returns the final scoreboard
func (r *Room) Finish() []ScoreboardEntry {
	r.Phase = PhaseFinished
	r.Invaders = make(map[string]*Invader)
	return r.Scoreboard()
}

// Scoreboard returns every player's final standing, sorted descending by
// score. The sort is stable so ties retain join order.
func (r *Room) Scoreboard() []ScoreboardEntry {
	entries := make([]ScoreboardEntry, 0, len(r.order))
	for _, p := range r.PlayerList() {
		entries = append(entries, p.ToScoreboardEntry())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// HighestScore returns the best score among current players. Drives the
// adventure ladder lookup.
func (r *Room) HighestScore() int {
	highest := 0
	for _, p := range r.Players {
		if p.Score > highest {
			highest = p.Score
		}
	}
	return highest
}

// AttemptResult describes the outcome of a kill attempt
type AttemptResult struct {
	Rejected bool
	Reason   RejectReason
	Invader  *Invader
	Player   *Player
	Points   int
}

// Attempt validates a typed answer against an invader. Returns nil when
// the attempt is a silent no-op (wrong phase or unknown player). Every
// counted attempt increments the player's attempt total; failures reset
// the combo. A success removes the invader atomically, so at most one
// attempt per invader can ever succeed.
func (r *Room) Attempt(playerID, invaderID, typed string, now time.Time) *AttemptResult {
	player, ok := r.Players[playerID]
	if !ok || r.Phase != PhasePlaying {
		return nil
	}

	player.TotalAttempts++

	invader, ok := r.Invaders[invaderID]
	if !ok {
		player.Combo = 0
		return &AttemptResult{Rejected: true, Reason: RejectAlreadyKilled, Player: player}
	}

	if !strings.EqualFold(typed, invader.Answer) {
		player.Combo = 0
		return &AttemptResult{Rejected: true, Reason: RejectWrongAnswer, Player: player}
	}

	delete(r.Invaders, invaderID)

	player.CorrectAttempts++
	player.WordsKilled++
	player.Combo++
	if player.Combo > player.MaxCombo {
		player.MaxCombo = player.Combo
	}

	points := KillPoints(invader, player.Combo, now.Sub(invader.SpawnedAt()))
	player.Score += points

	return &AttemptResult{Invader: invader, Player: player, Points: points}
}

// Snapshot builds the room-state payload for one recipient
func (r *Room) Snapshot(forPlayerID string) *RoomStatePayload {
	return &RoomStatePayload{
		RoomCode:      r.Code,
		Players:       r.PlayerList(),
		Phase:         r.Phase,
		Mode:          r.Mode,
		Duration:      r.Duration,
		TimeRemaining: r.TimeRemaining,
		YourID:        forPlayerID,
	}
}
