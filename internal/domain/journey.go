package domain

import "time"

// SpawnPlan describes how the spawn engine should behave: what to spawn,
// how fast it falls, how many may be alive at once, and on what cadence
// the spawner restocks.
type SpawnPlan struct {
	Type            InvaderType
	SpeedMultiplier float64
	MaxInvaders     int
	Interval        time.Duration
	InitialBatch    int
}

// PlanForMode returns the spawn plan for the standalone (non-adventure)
// game modes. Words restock on a fixed interval up to a small concurrent
// cap; math never spawns a second invader while one is alive.
func PlanForMode(m Mode) SpawnPlan {
	if m == ModeMath {
		return SpawnPlan{
			Type:            InvaderMath,
			SpeedMultiplier: 1,
			MaxInvaders:     1,
			Interval:        4 * time.Second,
			InitialBatch:    1,
		}
	}
	return SpawnPlan{
		Type:            InvaderWord,
		SpeedMultiplier: 1,
		MaxInvaders:     6,
		Interval:        2500 * time.Millisecond,
		InitialBatch:    3,
	}
}

// JourneyPhase is one rung of the adventure mode difficulty ladder.
// The table is static; the room's current phase is always re-derived from
// the highest score among all players.
type JourneyPhase struct {
	Number          int           `json:"phase"`
	MinScore        int           `json:"minScore"`
	Spawn           InvaderType   `json:"spawnType"`
	SpeedMultiplier float64       `json:"speedMultiplier"`
	MaxInvaders     int           `json:"-"`
	Interval        time.Duration `json:"-"`
	InitialBatch    int           `json:"-"`
	Name            string        `json:"name"`
	Color           string        `json:"color"`
}

// JourneyPhases is the adventure ladder, ordered by ascending MinScore.
var JourneyPhases = []JourneyPhase{
	{Number: 1, MinScore: 0, Spawn: InvaderWord, SpeedMultiplier: 2, MaxInvaders: 6, Interval: 2500 * time.Millisecond, InitialBatch: 3, Name: "WORDS (2x)", Color: "#FFFFFF"},
	{Number: 2, MinScore: 100, Spawn: InvaderWord, SpeedMultiplier: 1, MaxInvaders: 6, Interval: 2500 * time.Millisecond, InitialBatch: 3, Name: "WORDS (1x)", Color: "#4A90E2"},
	{Number: 3, MinScore: 200, Spawn: InvaderLetter, SpeedMultiplier: 2, MaxInvaders: 10, Interval: 800 * time.Millisecond, InitialBatch: 3, Name: "LETTERS (2x)", Color: "#00D4FF"},
	{Number: 4, MinScore: 300, Spawn: InvaderMath, SpeedMultiplier: 2, MaxInvaders: 1, Interval: 4 * time.Second, InitialBatch: 1, Name: "MATH (2x)", Color: "#E67E22"},
	{Number: 5, MinScore: 400, Spawn: InvaderWord, SpeedMultiplier: 3, MaxInvaders: 6, Interval: 2500 * time.Millisecond, InitialBatch: 3, Name: "WORDS (3x)", Color: "#FF4500"},
	{Number: 6, MinScore: 500, Spawn: InvaderWord, SpeedMultiplier: 1, MaxInvaders: 6, Interval: 2500 * time.Millisecond, InitialBatch: 3, Name: "WORDS (1x)", Color: "#4A90E2"},
	{Number: 7, MinScore: 800, Spawn: InvaderLetter, SpeedMultiplier: 3, MaxInvaders: 10, Interval: 800 * time.Millisecond, InitialBatch: 3, Name: "LETTERS (3x)", Color: "#00D4FF"},
	{Number: 8, MinScore: 900, Spawn: InvaderMath, SpeedMultiplier: 3, MaxInvaders: 1, Interval: 4 * time.Second, InitialBatch: 1, Name: "MATH (3x)", Color: "#E67E22"},
}

// JourneyPhaseForScore returns the ladder entry with the highest MinScore
// not exceeding the given score. Scans from the top down so the lookup
// stays correct even if a score could ever move backward.
func JourneyPhaseForScore(score int) JourneyPhase {
	for i := len(JourneyPhases) - 1; i >= 0; i-- {
		if score >= JourneyPhases[i].MinScore {
			return JourneyPhases[i]
		}
	}
	return JourneyPhases[0]
}

// Plan returns the spawn plan for this journey phase
func (jp JourneyPhase) Plan() SpawnPlan {
	return SpawnPlan{
		Type:            jp.Spawn,
		SpeedMultiplier: jp.SpeedMultiplier,
		MaxInvaders:     jp.MaxInvaders,
		Interval:        jp.Interval,
		InitialBatch:    jp.InitialBatch,
	}
}
