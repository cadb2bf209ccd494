package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// InvaderType distinguishes what kind of answer an invader expects
type InvaderType string

const (
	InvaderWord   InvaderType = "word"
	InvaderMath   InvaderType = "math"
	InvaderLetter InvaderType = "letter"
)

const (
	// RefWidth is the reference viewport width. Clients scale x positions
	// proportionally to their own viewport.
	RefWidth = 1024

	// InvaderLifetime is how long an invader stays on the field before it
	// is swept and reported as missed.
	InvaderLifetime = 30 * time.Second
)

// Invader is one falling on-field target. The JSON shape is exactly what
// clients receive in spawn events.
type Invader struct {
	ID              string      `json:"id"`
	Word            string      `json:"word"`
	DisplayWord     string      `json:"displayWord"`
	Answer          string      `json:"answer"`
	X               float64     `json:"x"`
	Speed           float64     `json:"speed"`
	HorizontalDrift float64     `json:"horizontalDrift"`
	Type            InvaderType `json:"invaderType"`
	Emoji           string      `json:"emoji"`
	SpawnTime       int64       `json:"spawnTime"` // unix milliseconds
}

// SpawnedAt returns the invader's spawn time as a time.Time
func (i *Invader) SpawnedAt() time.Time {
	return time.UnixMilli(i.SpawnTime)
}

// Expired returns true once the invader has outlived InvaderLifetime
func (i *Invader) Expired(now time.Time) bool {
	return now.Sub(i.SpawnedAt()) >= InvaderLifetime
}

func newInvaderID() string {
	return "inv_" + uuid.NewString()
}

// jitter scales a base speed by a random factor in [0.8, 1.2)
func jitter(baseSpeed float64) float64 {
	return baseSpeed * (0.8 + rand.Float64()*0.4)
}

func drift() float64 {
	return (rand.Float64() - 0.5) * 0.3
}

// NewWordInvader spawns a word invader at a random x position, choosing a
// word not currently alive on the field
func NewWordInvader(usedWords []string, baseSpeed float64) *Invader {
	word := PickWord(usedWords)
	estimatedWidth := float64(len(word)*15 + 40)
	x := rand.Float64() * math.Max(100, RefWidth-estimatedWidth)

	return &Invader{
		ID:              newInvaderID(),
		Word:            word,
		DisplayWord:     word,
		Answer:          word,
		X:               x,
		Speed:           jitter(baseSpeed),
		HorizontalDrift: drift(),
		Type:            InvaderWord,
		Emoji:           "👾",
		SpawnTime:       time.Now().UnixMilli(),
	}
}

// NewLetterInvader spawns a single-letter invader, excluding letters
// already alive on the field
func NewLetterInvader(usedLetters []string, baseSpeed float64) *Invader {
	letter := PickLetter(usedLetters)
	x := rand.Float64() * math.Max(100, RefWidth-60)

	return &Invader{
		ID:              newInvaderID(),
		Word:            letter,
		DisplayWord:     letter,
		Answer:          letter,
		X:               x,
		Speed:           jitter(baseSpeed),
		HorizontalDrift: drift(),
		Type:            InvaderLetter,
		Emoji:           "⭐",
		SpawnTime:       time.Now().UnixMilli(),
	}
}

// NewMathInvader spawns a horizontally centered arithmetic question.
// The displayed word is the question, the answer is the computed result.
func NewMathInvader(baseSpeed float64) *Invader {
	var num1, num2, answer int
	var display string

	switch rand.Intn(3) {
	case 0: // addition, operands 1-50
		num1 = rand.Intn(50) + 1
		num2 = rand.Intn(50) + 1
		answer = num1 + num2
		display = fmt.Sprintf("%d+%d", num1, num2)
	case 1: // subtraction, minuend 20-69, always positive result
		num1 = rand.Intn(50) + 20
		num2 = rand.Intn(num1-1) + 1
		answer = num1 - num2
		display = fmt.Sprintf("%d-%d", num1, num2)
	default: // multiplication, operands 1-12
		num1 = rand.Intn(12) + 1
		num2 = rand.Intn(12) + 1
		answer = num1 * num2
		display = fmt.Sprintf("%dx%d", num1, num2)
	}

	estimatedWidth := float64(len(display)*15 + 40)
	x := math.Max(0, RefWidth/2-estimatedWidth/2)

	return &Invader{
		ID:              newInvaderID(),
		Word:            strconv.Itoa(answer),
		DisplayWord:     display,
		Answer:          strconv.Itoa(answer),
		X:               x,
		Speed:           jitter(baseSpeed),
		HorizontalDrift: drift(),
		Type:            InvaderMath,
		Emoji:           "👽",
		SpawnTime:       time.Now().UnixMilli(),
	}
}

// BaseSpeed returns the un-jittered fall speed for a spawn type after the
// given elapsed game time. Speed increases in 20 second steps: math climbs
// gently (0.35 + 0.05 per step), words and letters faster (0.30 + 0.10
// per step). Adventure mode scales this further by the journey phase's
// speed multiplier.
func BaseSpeed(t InvaderType, elapsed time.Duration) float64 {
	steps := float64(int(elapsed.Seconds()) / 20)
	if t == InvaderMath {
		return 0.35 + 0.05*steps
	}
	return 0.30 + 0.10*steps
}
