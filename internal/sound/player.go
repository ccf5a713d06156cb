// Package sound plays short synthesized feedback effects through beep.
// Without an audio device the player stays disabled and every call is a no-op.
package sound

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-crusher/internal/core"
	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effects onto the speaker. It is safe for concurrent use.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	level       float64
	log         *log.Logger
}

// Levels is the audio part of the settings.
type Levels interface {
	IsMuted() bool
	Level() float64
}

// NewPlayer creates a player using the mute flag and volume of levels.
func NewPlayer(levels Levels, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer: &beep.Mixer{},
		muted: levels.IsMuted(),
		level: levels.Level(),
		log:   logger,
	}
}

// Init opens the speaker. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug("audio ready", "rate", int(sampleRate))
	return nil
}

// Enabled reports whether effects reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized && !p.muted && p.level > 0
}

// SetMuted mutes or unmutes later effects.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// SetLevel sets the linear volume, clamped to [0, 1].
func (p *Player) SetLevel(level float64) {
	p.mu.Lock()
	p.level = min(max(level, 0), 1)
	p.mu.Unlock()
}

// Play queues an effect.
func (p *Player) Play(e Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted || p.level <= 0 {
		return
	}
	s := Build(e, sampleRate, p.level)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// HandleEvents plays the effects for a frame's game events.
func (p *Player) HandleEvents(events []core.Event) {
	for _, ev := range events {
		if e, ok := EffectFor(ev); ok {
			p.Play(e)
		}
	}
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// EffectFor maps a game event to its effect.
func EffectFor(ev core.Event) (Effect, bool) {
	switch ev.Name {
	case string(crusher.EventCorrectLetter):
		return EffectClick, true
	case string(crusher.EventWrongLetter):
		return EffectBuzz, true
	case string(crusher.EventOverdrive):
		return EffectWhoosh, true
	case crusher.EventRoundEnd:
		if res, ok := ev.Data.(crusher.Result); ok && res.Won {
			return EffectFanfare, true
		}
		return EffectCrunch, true
	}
	return 0, false
}
