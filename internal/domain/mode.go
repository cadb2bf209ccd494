package domain

// Mode represents the game mode chosen by the host at start
type Mode string

const (
	ModeWords     Mode = "words"     // Fixed word list, concurrent invaders
	ModeMath      Mode = "math"      // One arithmetic question at a time
	ModeAdventure Mode = "adventure" // Score-driven journey phase ladder
)

// Valid returns true if the mode is one of the known game modes
func (m Mode) Valid() bool {
	return m == ModeWords || m == ModeMath || m == ModeAdventure
}

// String returns the string representation of the mode
func (m Mode) String() string {
	return string(m)
}
