package crusher

import (
	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// Phrase is the text the player must type in one round.
type Phrase struct {
	Text       string
	Category   string
	Tag        string
	Difficulty config.DifficultyPreset
}

// PhraseProvider supplies the phrase for a new round.
type PhraseProvider interface {
	Phrase(d config.DifficultyPreset) Phrase
}

// PhraseFunc adapts a function to PhraseProvider.
type PhraseFunc func(d config.DifficultyPreset) Phrase

// Phrase calls f(d).
func (f PhraseFunc) Phrase(d config.DifficultyPreset) Phrase { return f(d) }

// PhysicsWorld is the rigid-body arena the letters live in.
type PhysicsWorld interface {
	CreateBody(def core.BodyDef) core.BodyID
	RemoveBody(id core.BodyID)
	SetPosition(id core.BodyID, pos core.Vec)
	Position(id core.BodyID) (core.Vec, bool)
	Angle(id core.BodyID) float64
	ApplyForce(id core.BodyID, f core.Vec)
	SetVelocity(id core.BodyID, v core.Vec)
	SetAngularVelocity(id core.BodyID, omega float64)
	AngularVelocity(id core.BodyID) float64
	Overlaps(pos core.Vec, w, h float64) bool
	OnCollisionStart(fn func(a, b core.BodyID))
	Step(dt float64)
}

// Persistence records per-player typing statistics. Calls are fire-and-forget.
type Persistence interface {
	RecordFailedLetter(ch rune)
	RecordError()
}

// Settings exposes the player preferences the round reads.
type Settings interface {
	ScreenShakeEnabled() bool
	MouseOnlyMode() bool
	ShowLetterOrder() bool
}

// Observer receives everything the presentation layer needs.
type Observer interface {
	OnFrame(f FramePayload)
	OnEvent(e Event)
	OnRoundEnd(r Result)
}

// FramePayload is emitted once per Update.
type FramePayload struct {
	Y            float64
	Percent      float64
	Panicking    bool
	Overdrive    bool
	State        CrusherState
	Combo        int
	PenaltyCount int
}

// EventKind names a discrete round event.
type EventKind string

const (
	EventCorrectLetter EventKind = "correct_letter"
	EventWrongLetter   EventKind = "wrong_letter"
	EventOverdrive     EventKind = "crusher_overdrive"
)

// Event is a discrete round event.
type Event struct {
	Kind          EventKind
	Key           rune
	Expected      rune
	WrongPosition bool
	ScreenShake   bool
	Combo         int
}

type nopPersistence struct{}

func (nopPersistence) RecordFailedLetter(rune) {}
func (nopPersistence) RecordError()            {}

type nopSettings struct{}

func (nopSettings) ScreenShakeEnabled() bool { return false }
func (nopSettings) MouseOnlyMode() bool      { return false }
func (nopSettings) ShowLetterOrder() bool    { return false }

type nopObserver struct{}

func (nopObserver) OnFrame(FramePayload) {}
func (nopObserver) OnEvent(Event)        {}
func (nopObserver) OnRoundEnd(Result)    {}
