package domain

import (
	"math"
	"strings"
	"time"
)

// PlayerColors is the fixed palette of player accent colors.
// A player's color field is an index into this slice.
var PlayerColors = []string{
	"#ff4444", // red
	"#4ecca3", // green
	"#4a90e2", // blue
	"#ffd700", // gold
	"#ff69b4", // pink
	"#00d4ff", // cyan
}

// Player represents a connected participant in a room
type Player struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Color           int       `json:"color"` // index into PlayerColors
	Score           int       `json:"score"`
	Combo           int       `json:"combo"`
	MaxCombo        int       `json:"maxCombo"`
	WordsKilled     int       `json:"wordsKilled"`
	TotalAttempts   int       `json:"totalAttempts"`
	CorrectAttempts int       `json:"correctAttempts"`
	IsHost          bool      `json:"isHost"`
	JoinedAt        time.Time `json:"-"`
}

// NewPlayer creates a new player with a sanitized name and clamped color index
func NewPlayer(id, name string, colorIdx int) *Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Player"
	}

	if colorIdx < 0 || colorIdx >= len(PlayerColors) {
		colorIdx = 0
	}

	return &Player{
		ID:       id,
		Name:     name,
		Color:    colorIdx,
		JoinedAt: time.Now(),
	}
}

// ResetForNewGame zeroes the player's per-game stats
func (p *Player) ResetForNewGame() {
	p.Score = 0
	p.Combo = 0
	p.MaxCombo = 0
	p.WordsKilled = 0
	p.TotalAttempts = 0
	p.CorrectAttempts = 0
}

// Accuracy returns the player's hit rate as a whole percentage.
// Defined as 0 when no attempts were made.
func (p *Player) Accuracy() int {
	if p.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(float64(p.CorrectAttempts) / float64(p.TotalAttempts) * 100))
}

// ScoreboardEntry is one row of the end-of-game scoreboard
type ScoreboardEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Score       int    `json:"score"`
	WordsKilled int    `json:"wordsKilled"`
	MaxCombo    int    `json:"maxCombo"`
	Accuracy    int    `json:"accuracy"`
}

// ToScoreboardEntry converts a player to their final scoreboard row
func (p *Player) ToScoreboardEntry() ScoreboardEntry {
	return ScoreboardEntry{
		ID:          p.ID,
		Name:        p.Name,
		Color:       p.Color,
		Score:       p.Score,
		WordsKilled: p.WordsKilled,
		MaxCombo:    p.MaxCombo,
		Accuracy:    p.Accuracy(),
	}
}
