package domain

// Phase represents the current phase of a room
type Phase string

const (
	PhaseLobby     Phase = "lobby"     // Waiting for players to join
	PhaseCountdown Phase = "countdown" // 3-2-1 countdown before play
	PhasePlaying   Phase = "playing"   // Invaders falling, attempts accepted
	PhaseFinished  Phase = "finished"  // Scoreboard shown, re-armable by host
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseLobby:     {PhaseCountdown},
		PhaseCountdown: {PhasePlaying, PhaseLobby}, // Back to lobby if room empties mid-countdown
		PhasePlaying:   {PhaseFinished, PhaseLobby},
		PhaseFinished:  {PhaseCountdown, PhaseLobby}, // Host re-arms, or room empties
	}

	for _, valid := range validTransitions[p] {
		if valid == target {
			return true
		}
	}
	return false
}

// AcceptsJoins returns true if new players may join the room in this phase
func (p Phase) AcceptsJoins() bool {
	return p == PhaseLobby || p == PhaseFinished
}
