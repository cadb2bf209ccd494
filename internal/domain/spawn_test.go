package domain

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWordInvaderAvoidsLiveWords(t *testing.T) {
	// Every word but one in use: the spawner must pick the free one
	used := make([]string, 0, len(WordList)-1)
	for _, w := range WordList[1:] {
		used = append(used, w)
	}

	for i := 0; i < 20; i++ {
		inv := NewWordInvader(used, 0.3)
		assert.Equal(t, WordList[0], inv.Word)
	}
}

func TestNewWordInvaderFallsBackWhenAllInUse(t *testing.T) {
	inv := NewWordInvader(WordList, 0.3)
	require.NotNil(t, inv)
	assert.Contains(t, WordList, inv.Word)
}

func TestNewWordInvaderShape(t *testing.T) {
	inv := NewWordInvader(nil, 0.3)

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, InvaderWord, inv.Type)
	assert.Equal(t, inv.Word, inv.DisplayWord)
	assert.Equal(t, inv.Word, inv.Answer)
	assert.GreaterOrEqual(t, inv.X, 0.0)
	assert.Less(t, inv.X, float64(RefWidth))

	// Jitter keeps speed within 0.8x - 1.2x of base
	assert.GreaterOrEqual(t, inv.Speed, 0.3*0.8)
	assert.Less(t, inv.Speed, 0.3*1.2)

	assert.WithinDuration(t, time.Now(), inv.SpawnedAt(), time.Second)
}

func TestNewMathInvaderAnswersAreConsistent(t *testing.T) {
	for i := 0; i < 500; i++ {
		inv := NewMathInvader(0.35)

		answer, err := strconv.Atoi(inv.Answer)
		require.NoError(t, err)
		assert.Positive(t, answer, "display %s", inv.DisplayWord)
		assert.Equal(t, InvaderMath, inv.Type)

		switch {
		case strings.Contains(inv.DisplayWord, "+"):
			parts := strings.SplitN(inv.DisplayWord, "+", 2)
			a, _ := strconv.Atoi(parts[0])
			b, _ := strconv.Atoi(parts[1])
			assert.Equal(t, a+b, answer)
			assert.GreaterOrEqual(t, a, 1)
			assert.LessOrEqual(t, a, 50)
			assert.GreaterOrEqual(t, b, 1)
			assert.LessOrEqual(t, b, 50)
		case strings.Contains(inv.DisplayWord, "-"):
			parts := strings.SplitN(inv.DisplayWord, "-", 2)
			a, _ := strconv.Atoi(parts[0])
			b, _ := strconv.Atoi(parts[1])
			assert.Equal(t, a-b, answer)
			assert.GreaterOrEqual(t, a, 20)
			assert.LessOrEqual(t, a, 69)
			assert.Less(t, b, a, "subtraction must stay positive")
		case strings.Contains(inv.DisplayWord, "x"):
			parts := strings.SplitN(inv.DisplayWord, "x", 2)
			a, _ := strconv.Atoi(parts[0])
			b, _ := strconv.Atoi(parts[1])
			assert.Equal(t, a*b, answer)
			assert.GreaterOrEqual(t, a, 1)
			assert.LessOrEqual(t, a, 12)
			assert.GreaterOrEqual(t, b, 1)
			assert.LessOrEqual(t, b, 12)
		default:
			t.Fatalf("unrecognized math display %q", inv.DisplayWord)
		}
	}
}

func TestNewLetterInvaderAvoidsLiveLetters(t *testing.T) {
	used := make([]string, 0, 25)
	for i := 1; i < len(Letters); i++ {
		used = append(used, string(Letters[i]))
	}

	for i := 0; i < 20; i++ {
		inv := NewLetterInvader(used, 0.3)
		assert.Equal(t, "a", inv.Word)
		assert.Equal(t, InvaderLetter, inv.Type)
		assert.Len(t, inv.Answer, 1)
	}
}

func TestBaseSpeedSteps(t *testing.T) {
	// Words and letters: 0.30 + 0.10 per 20s step
	assert.InDelta(t, 0.30, BaseSpeed(InvaderWord, 0), 1e-9)
	assert.InDelta(t, 0.30, BaseSpeed(InvaderWord, 19*time.Second), 1e-9)
	assert.InDelta(t, 0.40, BaseSpeed(InvaderWord, 20*time.Second), 1e-9)
	assert.InDelta(t, 0.50, BaseSpeed(InvaderLetter, 40*time.Second), 1e-9)

	// Math: 0.35 + 0.05 per 20s step
	assert.InDelta(t, 0.35, BaseSpeed(InvaderMath, 0), 1e-9)
	assert.InDelta(t, 0.35, BaseSpeed(InvaderMath, 19*time.Second), 1e-9)
	assert.InDelta(t, 0.40, BaseSpeed(InvaderMath, 20*time.Second), 1e-9)
	assert.InDelta(t, 0.45, BaseSpeed(InvaderMath, 45*time.Second), 1e-9)
}

func TestInvaderExpiry(t *testing.T) {
	now := time.Now()
	inv := &Invader{SpawnTime: now.UnixMilli()}

	assert.False(t, inv.Expired(now))
	assert.False(t, inv.Expired(now.Add(29*time.Second)))
	assert.True(t, inv.Expired(now.Add(30*time.Second)))
	assert.True(t, inv.Expired(now.Add(time.Minute)))
}
