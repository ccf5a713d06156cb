package crusher

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/tui-crusher/internal/core"
)

// KeyOutcome classifies a keystroke.
type KeyOutcome int

const (
	OutcomeIgnored KeyOutcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeWrongPosition // Wrong, but the key appears later in the phrase
)

// String returns the outcome name.
func (o KeyOutcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeWrongPosition:
		return "wrong_position"
	default:
		return "ignored"
	}
}

// HandleKey resolves one key-down event. Keys other than a single letter or
// digit are ignored; letter case does not matter.
func (r *Round) HandleKey(key string) KeyOutcome {
	if r.gameOver || r.compressing || r.torn {
		return OutcomeIgnored
	}
	if utf8.RuneCountInString(key) != 1 {
		return OutcomeIgnored
	}
	ch, _ := utf8.DecodeRuneInString(key)
	ch = unicode.ToUpper(ch)
	if !isTypeable(ch) {
		return OutcomeIgnored
	}

	r.autoAdvance()
	if r.typedIndex >= len(r.text) {
		return OutcomeIgnored
	}
	expected := r.text[r.typedIndex]
	if ch == expected {
		r.correct(ch)
		return OutcomeCorrect
	}
	return r.wrong(ch, expected)
}

// HandleClick types the phrase letter drawn at screen cell (x, y).
// Clicks outside the arena or on empty cells are ignored.
func (r *Round) HandleClick(x, y int) KeyOutcome {
	if r.gameOver || r.compressing || r.torn || !r.layout.Inner.Contains(x, y) {
		return OutcomeIgnored
	}
	l := r.letters.At(core.Point{X: x, Y: y})
	if l == nil {
		return OutcomeIgnored
	}
	return r.HandleKey(string(l.Char))
}

// autoAdvance skips spaces and punctuation at the cursor.
func (r *Round) autoAdvance() {
	for r.typedIndex < len(r.text) && !isTypeable(r.text[r.typedIndex]) {
		r.typedIndex++
	}
}

func (r *Round) correct(ch rune) {
	r.typedIndex++
	r.lettersTyped++
	triggered := r.combo.Hit(r.now)
	r.machine.Lift(r.combo.Count(), r.now, r.cfg.Combo.BonusPercent)
	r.letters.Consume(ch)
	r.observer.OnEvent(Event{Kind: EventCorrectLetter, Key: ch, Expected: ch, Combo: r.combo.Count()})

	if triggered {
		r.machine.Pulse(r.cfg.Combo.OverdrivePulsePercent)
		r.log.Info("overdrive", "combo", r.combo.Count(), "t", r.now)
		r.observer.OnEvent(Event{Kind: EventOverdrive, Combo: r.combo.Count()})
	}

	r.autoAdvance()
	if r.typedIndex >= len(r.text) {
		r.win()
	}
}

func (r *Round) wrong(ch, expected rune) KeyOutcome {
	r.errors++
	r.mistakes++
	r.combo.Miss()

	prev := r.machine.State()
	r.machine.RegisterMistake(r.mistakes)
	if next := r.machine.State(); next != prev {
		r.log.Debug("crusher state", "from", prev, "to", next, "mistakes", r.mistakes)
	}

	r.letters.SpawnPenalty(ch, r.layout.Staging)
	r.penalties++
	r.persistence.RecordError()
	r.persistence.RecordFailedLetter(expected)

	laterInPhrase := slices.Contains(r.text[r.typedIndex+1:], ch)
	r.observer.OnEvent(Event{
		Kind:          EventWrongLetter,
		Key:           ch,
		Expected:      expected,
		WrongPosition: laterInPhrase,
		ScreenShake:   r.settings.ScreenShakeEnabled(),
	})
	if laterInPhrase {
		return OutcomeWrongPosition
	}
	return OutcomeWrong
}
