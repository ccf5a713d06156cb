package crusher

import (
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// fallbackText is played when the provider returns nothing typeable.
const fallbackText = "TYPE CRUSHER"

// Options configures a round. World is required; every other port
// defaults to a no-op.
type Options struct {
	Config     config.CrusherConfig
	Difficulty config.DifficultyPreset
	Stage      int
	Width      int
	Height     int
	Seed       int64

	Phrases     PhraseProvider
	World       PhysicsWorld
	Persistence Persistence
	Settings    Settings
	Observer    Observer
	Logger      *log.Logger
}

// RoundState is a snapshot of the round's mutable state.
type RoundState struct {
	TypedIndex     int
	Errors         int
	Combo          int
	MaxCombo       int
	MistakeCount   int
	PenaltyCount   int
	LettersTyped   int
	CrusherY       float64
	State          CrusherState
	Sliding        bool
	SlideRemaining float64
	Paused         bool
	PauseUntil     float64
	Overdrive      bool
	OverdriveUntil float64
	GameOver       bool
	Won            bool
	Compressing    bool
	Now            float64
}

// Round is one attempt at one phrase. It is driven from a single goroutine:
// HandleKey and HandleClick between frames, Update once per frame.
type Round struct {
	cfg        config.CrusherConfig
	difficulty config.DifficultyPreset
	stage      int
	layout     Layout
	phrase     Phrase
	text       []rune
	required   int

	world       PhysicsWorld
	letters     *Registry
	machine     *Machine
	combo       *Combo
	persistence Persistence
	settings    Settings
	observer    Observer
	log         *log.Logger

	plate core.BodyID
	walls []core.BodyID

	typedIndex   int
	errors       int
	mistakes     int
	penalties    int
	lettersTyped int
	now          float64

	gameOver    bool
	won         bool
	compressing bool
	torn        bool
	delivered   bool
	result      Result
}

// NewRound lays out the arena, spawns the phrase letters and returns a round
// ready for its first Update.
func NewRound(opts Options) *Round {
	if opts.Phrases == nil {
		opts.Phrases = PhraseFunc(func(d config.DifficultyPreset) Phrase {
			return Phrase{Text: fallbackText, Category: "misc", Difficulty: d}
		})
	}
	if opts.Persistence == nil {
		opts.Persistence = nopPersistence{}
	}
	if opts.Settings == nil {
		opts.Settings = nopSettings{}
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DifficultyNormal
	}
	opts.Stage = max(opts.Stage, 1)

	phrase := opts.Phrases.Phrase(opts.Difficulty)
	phrase.Text = strings.ToUpper(phrase.Text)
	if !strings.ContainsFunc(phrase.Text, isTypeable) {
		phrase.Text = fallbackText
	}

	layout := ComputeLayout(opts.Width, opts.Height, opts.Config.Arena)
	runway := NewRunway(layout.InitialY, layout.FailLineY)

	r := &Round{
		cfg:         opts.Config,
		difficulty:  opts.Difficulty,
		stage:       opts.Stage,
		layout:      layout,
		phrase:      phrase,
		text:        []rune(phrase.Text),
		world:       opts.World,
		machine:     NewMachine(runway, opts.Config.Profile(opts.Difficulty), opts.Config.Motion, opts.Stage),
		combo:       NewCombo(opts.Config.Combo),
		persistence: opts.Persistence,
		settings:    opts.Settings,
		observer:    opts.Observer,
		log:         opts.Logger,
	}
	for _, ch := range r.text {
		if isTypeable(ch) {
			r.required++
		}
	}

	r.buildArena()
	rng := rand.New(rand.NewSource(opts.Seed))
	r.letters = NewRegistry(r.world, rng, opts.Config.Physics, opts.Config.Arena.SpawnAttempts)
	r.letters.SpawnLetters(phrase.Text, layout.Pit)
	r.autoAdvance()

	r.log.Info("round started",
		"phrase", phrase.Text,
		"difficulty", r.difficulty,
		"stage", r.stage,
		"runway", runway.Length())
	return r
}

// buildArena creates the walls, the ceiling, the floor and the crusher plate.
func (r *Round) buildArena() {
	a := r.layout.Arena
	static := []core.BodyDef{
		{Kind: core.BodyStatic, Pos: core.Vec{X: float64(a.X), Y: float64(a.Y)}, W: float64(a.W), H: 1, Tag: TagWall},
		{Kind: core.BodyStatic, Pos: core.Vec{X: float64(a.X), Y: float64(a.Y)}, W: 1, H: float64(a.H), Tag: TagWall},
		{Kind: core.BodyStatic, Pos: core.Vec{X: float64(a.Right() - 1), Y: float64(a.Y)}, W: 1, H: float64(a.H), Tag: TagWall},
		{Kind: core.BodyStatic, Pos: core.Vec{X: float64(a.X), Y: float64(a.Bottom() - 1)}, W: float64(a.W), H: 1, Tag: TagWall},
	}
	for _, def := range static {
		r.walls = append(r.walls, r.world.CreateBody(def))
	}
	r.plate = r.world.CreateBody(core.BodyDef{
		Kind: core.BodyKinematic,
		Pos:  core.Vec{X: float64(r.layout.Inner.X), Y: r.machine.Y()},
		W:    float64(r.layout.Inner.W),
		H:    1,
		Tag:  TagCrusher,
	})
}

// Update advances the round by dt seconds of real time.
func (r *Round) Update(dt float64) {
	if r.gameOver || r.torn {
		return
	}
	if r.compressing {
		r.letters.Animate(dt)
		return
	}
	dt = max(dt, 0)
	r.now += dt

	if r.combo.Expire(r.now) {
		r.log.Debug("overdrive ended", "t", r.now)
	}
	r.machine.Expire(r.now)

	r.letters.Flush()
	r.letters.ApplyPenaltyForces()
	r.world.Step(dt)

	r.machine.Advance(dt, r.penalties, r.combo.Direction())
	r.world.SetPosition(r.plate, core.Vec{X: float64(r.layout.Inner.X), Y: r.machine.Y()})
	r.observer.OnFrame(r.Frame())

	if r.machine.AtFailLine() {
		r.lose()
	}
}

// Frame returns the presentation payload for the current state.
func (r *Round) Frame() FramePayload {
	pct := r.machine.Runway().Percent(r.machine.Y())
	return FramePayload{
		Y:            r.machine.Y(),
		Percent:      pct,
		Panicking:    pct >= r.cfg.Arena.PanicPercent,
		Overdrive:    r.combo.Overdrive(),
		State:        r.machine.State(),
		Combo:        r.combo.Count(),
		PenaltyCount: r.penalties,
	}
}

// win ends the round successfully. Later calls are no-ops.
func (r *Round) win() {
	if r.gameOver || r.compressing {
		return
	}
	r.gameOver = true
	r.won = true
	r.deliver(r.tally(true))
}

// lose starts the compression animation; the result is delivered when it
// completes. Later calls are no-ops.
func (r *Round) lose() {
	if r.gameOver || r.compressing {
		return
	}
	r.compressing = true
	res := r.tally(false)
	r.log.Info("crusher reached the fail line", "typed", r.typedIndex, "errors", r.errors)

	cx, _ := r.layout.Inner.Center()
	target := core.Vec{X: float64(cx), Y: r.machine.Y()}
	r.letters.CompressAll(target, r.cfg.Motion.CompressSeconds, func() {
		r.compressing = false
		r.gameOver = true
		r.deliver(res)
	})
}

func (r *Round) tally(won bool) Result {
	res := score(tally{
		phraseLen:    len(r.text),
		required:     r.required,
		typedIndex:   r.typedIndex,
		lettersTyped: r.lettersTyped,
		errors:       r.errors,
		maxCombo:     r.combo.Max(),
		elapsed:      r.now,
	}, won, r.cfg.Scoring)
	res.Phrase = r.phrase
	res.Difficulty = r.difficulty
	res.Stage = r.stage
	return res
}

func (r *Round) deliver(res Result) {
	if r.delivered {
		return
	}
	r.delivered = true
	r.result = res
	r.log.Info("round over",
		"won", res.Won,
		"score", res.Score,
		"accuracy", res.Accuracy,
		"wpm", res.WPM,
		"errors", res.Errors)
	r.observer.OnRoundEnd(res)
}

// Teardown stops all animations and removes every body the round created.
// No result is delivered afterwards. It is safe to call more than once.
func (r *Round) Teardown() {
	if r.torn {
		return
	}
	r.torn = true
	r.letters.Teardown()
	r.world.RemoveBody(r.plate)
	for _, id := range r.walls {
		r.world.RemoveBody(id)
	}
	r.walls = nil
}

// Result returns the round result once it has been delivered.
func (r *Round) Result() (Result, bool) {
	return r.result, r.delivered
}

// State returns a snapshot of the round state.
func (r *Round) State() RoundState {
	m := r.machine
	return RoundState{
		TypedIndex:     r.typedIndex,
		Errors:         r.errors,
		Combo:          r.combo.Count(),
		MaxCombo:       r.combo.Max(),
		MistakeCount:   r.mistakes,
		PenaltyCount:   r.penalties,
		LettersTyped:   r.lettersTyped,
		CrusherY:       m.y,
		State:          m.state,
		Sliding:        m.sliding,
		SlideRemaining: m.slideRemaining,
		Paused:         m.paused,
		PauseUntil:     m.pauseUntil,
		Overdrive:      r.combo.overdrive,
		OverdriveUntil: r.combo.until,
		GameOver:       r.gameOver,
		Won:            r.won,
		Compressing:    r.compressing,
		Now:            r.now,
	}
}

// Phrase returns the phrase being typed.
func (r *Round) Phrase() Phrase { return r.phrase }

// Layout returns the arena geometry.
func (r *Round) Layout() Layout { return r.layout }

// Letters returns the letter registry.
func (r *Round) Letters() *Registry { return r.letters }

// Difficulty returns the round's difficulty.
func (r *Round) Difficulty() config.DifficultyPreset { return r.difficulty }

// Stage returns the campaign stage.
func (r *Round) Stage() int { return r.stage }
