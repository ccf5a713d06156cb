package crusher

import (
	"math"

	"github.com/vovakirdan/tui-crusher/internal/config"
)

// Result is the outcome of a finished round.
type Result struct {
	Score        int
	Accuracy     int     // Percent, floored
	Time         float64 // Seconds on the round clock
	WPM          float64
	Errors       int
	MaxCombo     int
	LettersTyped int
	Won          bool
	Phrase       Phrase
	Difficulty   config.DifficultyPreset
	Stage        int
}

// tally is the raw round data a result is computed from.
type tally struct {
	phraseLen    int
	required     int
	typedIndex   int
	lettersTyped int
	errors       int
	maxCombo     int
	elapsed      float64
}

// accuracy returns floor(hits/(hits+errors)*100), or 100 when nothing was pressed.
func accuracy(hits, errors int) int {
	if hits+errors <= 0 {
		return 100
	}
	return hits * 100 / (hits + errors)
}

// wpm returns words per minute, a word being five characters.
func wpm(chars int, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(chars) / 5 / (seconds / 60)
}

// score computes the round result. A win scores the whole phrase with
// accuracy, combo and speed bonuses; a loss only pays for progress.
func score(t tally, won bool, sc config.ScoringConfig) Result {
	r := Result{
		Time:         t.elapsed,
		Errors:       t.errors,
		MaxCombo:     t.maxCombo,
		LettersTyped: t.lettersTyped,
		Won:          won,
	}
	if won {
		r.Accuracy = accuracy(t.required, t.errors)
		r.WPM = wpm(t.phraseLen, t.elapsed)
		total := float64(t.typedIndex)*sc.TypedWeight +
			float64(r.Accuracy)*sc.AccuracyWeight +
			float64(t.maxCombo)*sc.ComboWeight
		if t.elapsed < sc.FastSeconds {
			total += sc.FastBonus
		}
		r.Score = int(math.Floor(total))
		return r
	}
	r.Accuracy = accuracy(t.lettersTyped, t.errors)
	r.WPM = wpm(t.typedIndex, t.elapsed)
	r.Score = int(math.Floor(float64(t.typedIndex) * sc.LossTypedWeight))
	return r
}
