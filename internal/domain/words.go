package domain

import "math/rand"

// WordList is the fixed pool word invaders are drawn from.
// Mixed-length everyday vocabulary so point values (= word length) vary
var WordList = []string{
	// Animals
	"dog", "cat", "lion", "tiger", "bear", "wolf", "fox", "deer",
	"rabbit", "mouse", "rat", "snake", "frog", "fish", "bird", "eagle",
	"hawk", "owl", "crow", "duck", "goose", "swan", "horse", "cow",
	"pig", "sheep", "goat", "chicken", "turkey", "elephant", "rhino", "hippo",

	// Plants
	"rose", "tulip", "daisy", "lily", "orchid", "violet", "jasmine", "sunflower",
	"oak", "pine", "maple", "birch", "willow", "palm", "bamboo", "cactus",
	"fern", "moss", "ivy", "grass", "wheat", "rice", "corn", "tomato",
	"potato", "carrot", "lettuce", "spinach", "basil", "mint", "sage", "thyme",

	// Science
	"atom", "cell", "gene", "solar", "lunar", "planet", "orbit", "energy",
	"force", "gravity", "matter", "quantum", "carbon", "oxygen", "nitrogen", "hydrogen",
	"electron", "proton", "neutron", "molecule", "protein", "enzyme", "virus", "bacteria",
	"plasma", "crystal", "magma", "lava", "fossil", "mineral", "climate", "ocean",

	// Slang
	"slay", "vibe", "fire", "lit", "cap", "bet", "flex", "goat",
	"yeet", "mood", "fam", "bruh", "bussin", "drip", "sus", "valid",
	"cringe", "toxic", "savage", "extra", "basic", "salty", "vibes",
	"squad", "goals", "icon", "legend", "queen", "king", "epic", "dope",

	// General
	"house", "tree", "water", "earth", "wind", "stone", "metal",
	"wood", "glass", "paper", "book", "pen", "desk", "chair", "table",
	"door", "window", "wall", "floor", "roof", "garden", "park", "road",
	"bridge", "river", "lake", "mountain", "valley", "forest", "field",
	"cloud", "rain", "snow", "sun", "moon", "star", "night", "day",
	"morning", "evening", "spring", "summer", "autumn", "winter", "season", "year",
}

// Letters is the pool letter invaders are drawn from
const Letters = "abcdefghijklmnopqrstuvwxyz"

// PickWord returns a random word from the list, avoiding the given
// in-use words. Falls back to the full list when every word is in use,
// permitting on-screen duplicates rather than stalling the spawner.
func PickWord(used []string) string {
	inUse := make(map[string]bool, len(used))
	for _, w := range used {
		inUse[w] = true
	}

	available := make([]string, 0, len(WordList))
	for _, w := range WordList {
		if !inUse[w] {
			available = append(available, w)
		}
	}

	if len(available) == 0 {
		available = WordList
	}

	return available[rand.Intn(len(available))]
}

// PickLetter returns a random lowercase letter, avoiding the given
// in-use letters with the same full-pool fallback as PickWord
func PickLetter(used []string) string {
	inUse := make(map[string]bool, len(used))
	for _, l := range used {
		inUse[l] = true
	}

	available := make([]byte, 0, len(Letters))
	for i := 0; i < len(Letters); i++ {
		if !inUse[string(Letters[i])] {
			available = append(available, Letters[i])
		}
	}

	if len(available) == 0 {
		available = []byte(Letters)
	}

	return string(available[rand.Intn(len(available))])
}
