// Package crusher implements Type Crusher: type the phrase before the
// descending press reaches the fail line. Mistakes wake the crusher up and
// drop heavy penalty letters onto it; correct keys push it back.
package crusher

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
	"github.com/vovakirdan/tui-crusher/internal/phrases"
	"github.com/vovakirdan/tui-crusher/internal/physics"
	"github.com/vovakirdan/tui-crusher/internal/registry"
)

// EventRoundEnd is raised once per round with the Result as data.
const EventRoundEnd = "round_end"

const (
	maxFrameSeconds = 0.25 // Longest real-time gap fed to one Update
	shakeTicks      = 8
)

var (
	// configPath stores the custom config path set via CLI
	configPath string
	// phrasesPath stores the custom phrase corpus path set via CLI
	phrasesPath string
	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset
	// startStage is the stage plain (non-campaign) rounds are played at
	startStage = 1

	persistence      Persistence
	settingsOverride func(*config.Settings)
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPhrasesPath sets a custom phrase corpus file.
func SetPhrasesPath(path string) {
	phrasesPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// SetStage sets the stage for non-campaign rounds.
func SetStage(stage int) {
	startStage = max(stage, 1)
}

// SetPersistence sets where failed letters and errors are recorded.
func SetPersistence(p Persistence) {
	persistence = p
}

// SetSettingsOverride registers a hook applied to the loaded settings.
func SetSettingsOverride(fn func(*config.Settings)) {
	settingsOverride = fn
}

// SetLogger sets the logger used by new rounds.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game adapts a sequence of rounds to the terminal platform.
type Game struct {
	id       string
	title    string
	campaign *Campaign

	difficulty config.DifficultyPreset

	cfg      config.CrusherConfig
	runtime  core.RuntimeConfig
	provider *phrases.Provider
	world    *physics.World
	round    *Round
	rounds   int64

	events   []core.Event
	paused   bool
	shake    int
	feedback string
}

// New creates a single-round game at the configured stage.
func New() *Game {
	return &Game{id: "crusher", title: "Type Crusher"}
}

// NewCampaignGame creates a game whose stage advances with every win.
func NewCampaignGame() *Game {
	return &Game{id: "crusher_campaign", title: "Type Crusher: Campaign", campaign: NewCampaign()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.id }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.title }

// Reset tears down the previous round and starts a new one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.teardown()
	g.runtime = rc

	cfg, err := config.LoadCrusher(configPath)
	if err != nil {
		logger.Warn("using default crusher config", "err", err)
		cfg = config.DefaultCrusherConfig()
	}
	if settingsOverride != nil {
		settingsOverride(&cfg.Settings)
	}
	g.cfg = cfg

	if g.provider == nil {
		p, err := phrases.Load(phrasesPath, rc.Seed)
		if err != nil {
			logger.Warn("using built-in phrases", "err", err)
			p = phrases.Default(rc.Seed)
		}
		g.provider = p
	}

	difficulty := g.difficulty
	if difficulty == "" {
		difficulty = difficultyPreset
	}
	stage := startStage
	if g.campaign != nil {
		stage = g.campaign.Stage()
	}

	g.events = nil
	g.paused = false
	g.shake = 0
	g.feedback = ""
	g.rounds++

	g.world = physics.NewWorld(rc.ScreenW, rc.ScreenH, cfg.Physics)
	g.round = NewRound(Options{
		Config:      cfg,
		Difficulty:  difficulty,
		Stage:       stage,
		Width:       rc.ScreenW,
		Height:      rc.ScreenH,
		Seed:        rc.Seed + g.rounds,
		Phrases:     PhraseFunc(g.pickPhrase),
		World:       g.world,
		Persistence: persistence,
		Settings:    cfg.Settings,
		Observer:    (*gameObserver)(g),
		Logger:      logger,
	})
}

func (g *Game) pickPhrase(d config.DifficultyPreset) Phrase {
	e := g.provider.Pick(d)
	return Phrase{Text: e.Text, Category: e.Category, Tag: e.Tag, Difficulty: d}
}

func (g *Game) teardown() {
	if g.round != nil {
		g.round.Teardown()
	}
}

// Step feeds this frame's keys or clicks to the round and advances it by the
// real elapsed time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round == nil {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.round.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	if g.shake > 0 {
		g.shake--
	}

	if g.cfg.Settings.MouseOnlyMode() {
		for _, c := range in.Clicks {
			g.round.HandleClick(c.X-g.shakeOffset(), c.Y)
		}
	} else {
		for _, k := range in.Keys {
			g.round.HandleKey(k)
		}
	}

	dt := in.Elapsed.Seconds()
	if dt <= 0 {
		dt = g.runtime.TickSeconds()
	}
	g.round.Update(math.Min(dt, maxFrameSeconds))

	events := g.events
	g.events = nil
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	score := int(math.Floor(float64(g.round.typedIndex) * g.cfg.Scoring.TypedWeight))
	if res, ok := g.round.Result(); ok {
		score = res.Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.round.gameOver,
		Won:      g.round.won,
		Paused:   g.paused,
	}
}

// SetDifficulty overrides the package difficulty for this game's next Reset.
func (g *Game) SetDifficulty(d config.DifficultyPreset) {
	g.difficulty = d
}

// Round returns the round in progress.
func (g *Game) Round() *Round { return g.round }

// Campaign returns the campaign tracker, or nil for single rounds.
func (g *Game) Campaign() *Campaign { return g.campaign }

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.campaign != nil {
		return "Win to advance a stage; every stage drives the crusher faster"
	}
	return "Type the phrase before the crusher reaches the fail line"
}

// gameObserver collects round callbacks as platform events.
type gameObserver Game

func (o *gameObserver) OnFrame(FramePayload) {}

func (o *gameObserver) OnEvent(e Event) {
	g := (*Game)(o)
	switch e.Kind {
	case EventWrongLetter:
		if e.ScreenShake {
			g.shake = shakeTicks
		}
		if e.WrongPosition {
			g.feedback = string(e.Key) + " comes later - next is " + string(e.Expected)
		} else {
			g.feedback = "expected " + string(e.Expected)
		}
	case EventCorrectLetter:
		g.feedback = ""
	case EventOverdrive:
		g.feedback = "OVERDRIVE!"
	}
	g.events = append(g.events, core.Event{Name: string(e.Kind), Data: e})
}

func (o *gameObserver) OnRoundEnd(res Result) {
	g := (*Game)(o)
	if g.campaign != nil {
		g.campaign.Record(res)
	}
	g.events = append(g.events, core.Event{Name: EventRoundEnd, Data: res})
}

// Register the game with the registry
func init() {
	registry.Register("crusher", func() registry.Game {
		return New()
	})
	registry.Register("crusher_campaign", func() registry.Game {
		return NewCampaignGame()
	})
}
