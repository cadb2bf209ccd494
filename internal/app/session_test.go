package app

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordshooter/internal/domain"
)

// fakeClient records every event delivered to it
type fakeClient struct {
	id string

	mu     sync.Mutex
	events []*domain.RoomEvent
}

func (c *fakeClient) Send(message interface{}) error {
	event, ok := message.(*domain.RoomEvent)
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *fakeClient) GetPlayerID() string { return c.id }
func (c *fakeClient) Close() error        { return nil }

func (c *fakeClient) ofType(t domain.EventType) []*domain.RoomEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*domain.RoomEvent
	for _, e := range c.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (c *fakeClient) countOf(t domain.EventType) int {
	return len(c.ofType(t))
}

func newTestSession(t *testing.T) *GameSession {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	room := domain.NewRoom("TEST", 5)
	s := NewGameSession(room, logger)
	s.countdownInterval = 5 * time.Millisecond
	s.tickInterval = 5 * time.Millisecond
	s.mathRespawnDelay = 5 * time.Millisecond
	t.Cleanup(s.Close)
	return s
}

func joinWithClient(t *testing.T, s *GameSession, id, name string) *fakeClient {
	t.Helper()
	client := &fakeClient{id: id}
	s.RegisterClient(id, client)
	_, err := s.Join(id, name, 0)
	require.NoError(t, err)
	return client
}

func TestStartGameHostOnly(t *testing.T) {
	s := newTestSession(t)
	joinWithClient(t, s, "host", "Alice")
	joinWithClient(t, s, "guest", "Bob")

	err := s.StartGame("guest", domain.ModeWords, 60)
	assert.ErrorIs(t, err, domain.ErrNotHost)

	err = s.StartGame("host", domain.ModeWords, 60)
	assert.NoError(t, err)
}

func TestCountdownRunsToPlaying(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 60))
	assert.Equal(t, domain.PhaseCountdown, s.GetPhase())

	require.Eventually(t, func() bool {
		return s.GetPhase() == domain.PhasePlaying
	}, time.Second, time.Millisecond)

	// The full 3-2-1-0 sequence was announced
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventCountdown) >= 4
	}, time.Second, time.Millisecond)

	counts := host.ofType(domain.EventCountdown)
	var seen []int
	for _, e := range counts[:4] {
		seen = append(seen, e.Payload.(*domain.CountdownPayload).Count)
	}
	assert.Equal(t, []int{3, 2, 1, 0}, seen)
}

func TestWordsGameSpawnsInitialBatch(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 60))

	require.Eventually(t, func() bool {
		return host.countOf(domain.EventSpawn) >= 3
	}, time.Second, time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.GreaterOrEqual(t, len(s.room.Invaders), 3)
	assert.LessOrEqual(t, len(s.room.Invaders), 6, "words cap")
}

func TestGameRunsToGameOver(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 2))

	require.Eventually(t, func() bool {
		return host.countOf(domain.EventGameOver) > 0
	}, 2*time.Second, time.Millisecond)

	assert.Equal(t, domain.PhaseFinished, s.GetPhase())

	over := host.ofType(domain.EventGameOver)[0]
	board := over.Payload.(*domain.GameOverPayload).Scoreboard
	require.Len(t, board, 1)
	assert.Equal(t, "host", board[0].ID)

	assert.NotZero(t, host.countOf(domain.EventTimeTick))
}

func TestAttemptRejectionGoesOnlyToAttacker(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")
	guest := joinWithClient(t, s, "guest", "Bob")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 60))
	require.Eventually(t, func() bool {
		return s.GetPhase() == domain.PhasePlaying
	}, time.Second, time.Millisecond)

	s.HandleAttempt("guest", "no-such-invader", "whatever")

	require.Eventually(t, func() bool {
		return guest.countOf(domain.EventAttemptRejected) == 1
	}, time.Second, time.Millisecond)

	rej := guest.ofType(domain.EventAttemptRejected)[0]
	assert.Equal(t, domain.RejectAlreadyKilled, rej.Payload.(*domain.AttemptRejectedPayload).Reason)
	assert.Zero(t, host.countOf(domain.EventAttemptRejected))
}

func TestKillIsBroadcast(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")
	guest := joinWithClient(t, s, "guest", "Bob")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 60))
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventSpawn) > 0
	}, time.Second, time.Millisecond)

	id, answer := firstInvader(s)
	s.HandleAttempt("guest", id, answer)

	for _, c := range []*fakeClient{host, guest} {
		require.Eventually(t, func() bool {
			return c.countOf(domain.EventKill) == 1
		}, time.Second, time.Millisecond)
	}

	kill := host.ofType(domain.EventKill)[0].Payload.(*domain.KillPayload)
	assert.Equal(t, id, kill.InvaderID)
	assert.Equal(t, "guest", kill.KilledBy)
	assert.Equal(t, "Bob", kill.KillerName)
	assert.Equal(t, len(answer), kill.PointsEarned)
	assert.Equal(t, 1, kill.NewCombo)
}

// firstInvader returns one live invader's id and answer
func firstInvader(s *GameSession) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, inv := range s.room.Invaders {
		return id, inv.Answer
	}
	return "", ""
}

func TestTypingExcludesSender(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")
	guest := joinWithClient(t, s, "guest", "Bob")

	s.HandleTyping("host", "cas")

	require.Eventually(t, func() bool {
		return guest.countOf(domain.EventPlayerTyping) == 1
	}, time.Second, time.Millisecond)

	typing := guest.ofType(domain.EventPlayerTyping)[0].Payload.(*domain.PlayerTypingPayload)
	assert.Equal(t, "host", typing.PlayerID)
	assert.Equal(t, "cas", typing.CurrentInput)
	assert.Zero(t, host.countOf(domain.EventPlayerTyping))
}

func TestMathKillTriggersRespawn(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeMath, 60))
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventSpawn) > 0
	}, time.Second, time.Millisecond)

	id, answer := firstInvader(s)
	s.HandleAttempt("host", id, answer)

	// A replacement question shows up after the respawn delay
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventSpawn) >= 2
	}, time.Second, time.Millisecond)
}

func TestAdventureJourneyTransition(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeAdventure, 60))
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventSpawn) > 0
	}, time.Second, time.Millisecond)

	// Adventure opens on rung 1
	phases := host.ofType(domain.EventJourneyPhase)
	require.NotEmpty(t, phases)
	assert.Equal(t, 1, phases[0].Payload.(*domain.JourneyPhasePayload).Phase)

	// Push the host to the edge of the math rung, then kill once to cross it
	s.mu.Lock()
	s.room.Players["host"].Score = 299
	s.mu.Unlock()

	id, answer := firstInvader(s)
	s.HandleAttempt("host", id, answer)

	require.Eventually(t, func() bool {
		for _, e := range host.ofType(domain.EventJourneyPhase) {
			if e.Payload.(*domain.JourneyPhasePayload).Phase == 4 {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)

	s.mu.Lock()
	assert.Equal(t, 4, s.room.JourneyPhase)
	s.mu.Unlock()

	// The new rung spawns math questions
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, inv := range s.room.Invaders {
			return inv.Type == domain.InvaderMath
		}
		return false
	}, time.Second, time.Millisecond)
}

func TestLeaveLastPlayerStopsTheGame(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 60))
	require.Eventually(t, func() bool {
		return s.GetPhase() == domain.PhasePlaying
	}, time.Second, time.Millisecond)

	require.True(t, s.Leave("host"))
	s.UnregisterClient("host")

	assert.Equal(t, domain.PhaseLobby, s.GetPhase())
	assert.Zero(t, s.GetPlayerCount())

	// Timers were invalidated, so the event flow dries up
	time.Sleep(20 * time.Millisecond)
	before := host.countOf(domain.EventTimeTick)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, host.countOf(domain.EventTimeTick))
}

func TestHostSuccessionIsBroadcast(t *testing.T) {
	s := newTestSession(t)
	joinWithClient(t, s, "host", "Alice")
	guest := joinWithClient(t, s, "guest", "Bob")

	require.True(t, s.Leave("host"))
	s.UnregisterClient("host")

	require.Eventually(t, func() bool {
		states := guest.ofType(domain.EventRoomState)
		if len(states) == 0 {
			return false
		}
		last := states[len(states)-1].Payload.(*domain.RoomStatePayload)
		return len(last.Players) == 1 && last.Players[0].IsHost
	}, time.Second, time.Millisecond)
}

func TestRestartFromFinished(t *testing.T) {
	s := newTestSession(t)
	host := joinWithClient(t, s, "host", "Alice")

	require.NoError(t, s.StartGame("host", domain.ModeWords, 1))
	require.Eventually(t, func() bool {
		return host.countOf(domain.EventGameOver) == 1
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, s.StartGame("host", domain.ModeMath, 60))
	require.Eventually(t, func() bool {
		return s.GetPhase() == domain.PhasePlaying
	}, time.Second, time.Millisecond)

	s.mu.Lock()
	assert.Zero(t, s.room.Players["host"].Score)
	assert.Equal(t, domain.ModeMath, s.room.Mode)
	s.mu.Unlock()
}
