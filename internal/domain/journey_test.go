package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJourneyPhaseForScoreBoundaries(t *testing.T) {
	cases := []struct {
		score int
		phase int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{299, 3},
		{300, 4},
		{399, 4},
		{400, 5},
		{499, 5},
		{500, 6},
		{799, 6},
		{800, 7},
		{899, 7},
		{900, 8},
		{1500, 8},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.phase, JourneyPhaseForScore(tc.score).Number, "score %d", tc.score)
	}
}

func TestJourneyPhaseForScoreNegative(t *testing.T) {
	// Scores cannot go negative in play, but the lookup must not care
	assert.Equal(t, 1, JourneyPhaseForScore(-50).Number)
}

func TestJourneyLadderShape(t *testing.T) {
	assert.Len(t, JourneyPhases, 8)

	// Ascending thresholds, numbered 1..8
	for i, jp := range JourneyPhases {
		assert.Equal(t, i+1, jp.Number)
		if i > 0 {
			assert.Greater(t, jp.MinScore, JourneyPhases[i-1].MinScore)
		}
		assert.NotEmpty(t, jp.Name)
		assert.NotEmpty(t, jp.Color)
		assert.Positive(t, jp.MaxInvaders)
		assert.Positive(t, jp.Interval)
	}

	// Letter phases have the high cap and fast cadence
	assert.Equal(t, InvaderLetter, JourneyPhases[2].Spawn)
	assert.Equal(t, 10, JourneyPhases[2].MaxInvaders)
	assert.Equal(t, InvaderLetter, JourneyPhases[6].Spawn)

	// Math phases never allow a second concurrent invader
	assert.Equal(t, InvaderMath, JourneyPhases[3].Spawn)
	assert.Equal(t, 1, JourneyPhases[3].MaxInvaders)
	assert.Equal(t, InvaderMath, JourneyPhases[7].Spawn)
	assert.Equal(t, 1, JourneyPhases[7].MaxInvaders)
}

func TestJourneyPhasePlan(t *testing.T) {
	jp := JourneyPhaseForScore(300)
	plan := jp.Plan()

	assert.Equal(t, jp.Spawn, plan.Type)
	assert.Equal(t, jp.SpeedMultiplier, plan.SpeedMultiplier)
	assert.Equal(t, jp.MaxInvaders, plan.MaxInvaders)
	assert.Equal(t, jp.Interval, plan.Interval)
	assert.Equal(t, jp.InitialBatch, plan.InitialBatch)
}

func TestPlanForMode(t *testing.T) {
	words := PlanForMode(ModeWords)
	assert.Equal(t, InvaderWord, words.Type)
	assert.Equal(t, 6, words.MaxInvaders)
	assert.Equal(t, 3, words.InitialBatch)

	math := PlanForMode(ModeMath)
	assert.Equal(t, InvaderMath, math.Type)
	assert.Equal(t, 1, math.MaxInvaders)
	assert.Equal(t, 1, math.InitialBatch)
}
