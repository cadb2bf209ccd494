package domain

import (
	"math"
	"time"
)

// Combo thresholds shared by every mode: 3+ hits = 1.5x, 5+ = 2x, 10+ = 3x

// ComboMultiplier returns the score multiplier for a consecutive-hit count
func ComboMultiplier(combo int) float64 {
	switch {
	case combo >= 10:
		return 3
	case combo >= 5:
		return 2
	case combo >= 3:
		return 1.5
	default:
		return 1
	}
}

// KillPoints computes the points awarded for destroying an invader.
// Math invaders are worth a flat 10, or 11 when solved in under a second;
// word and letter invaders are worth their answer's character length.
// The base is multiplied by the combo multiplier and floored, so a fast
// math solve at combo 4 is worth floor(11 x 1.5) = 16.
func KillPoints(inv *Invader, combo int, solveTime time.Duration) int {
	var base float64
	if inv.Type == InvaderMath {
		base = 10
		if solveTime < time.Second {
			base = 11
		}
	} else {
		base = float64(len(inv.Answer))
	}

	return int(math.Floor(base * ComboMultiplier(combo)))
}
