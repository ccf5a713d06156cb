package crusher

import "github.com/vovakirdan/tui-crusher/internal/config"

// CrusherState is the crusher's escalation level. States only move forward within a round.
type CrusherState int

const (
	Dormant CrusherState = iota
	Stirring
	Loosening
	Awakened
)

// String returns the state name.
func (s CrusherState) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Stirring:
		return "stirring"
	case Loosening:
		return "loosening"
	case Awakened:
		return "awakened"
	default:
		return "unknown"
	}
}

// StateFor maps a mistake count to a state for the given awakening threshold.
// Thresholds of 2 or less skip straight to Awakened on the first mistake.
func StateFor(mistakes, threshold int) CrusherState {
	switch {
	case mistakes <= 0:
		return Dormant
	case mistakes >= threshold || threshold <= 2:
		return Awakened
	case mistakes == 1:
		return Stirring
	default:
		return Loosening
	}
}

// Machine drives the crusher plate position.
type Machine struct {
	runway      Runway
	profile     config.DifficultyProfile
	motion      config.MotionConfig
	stageFactor float64

	y              float64
	state          CrusherState
	sliding        bool
	slideRemaining float64
	paused         bool
	pauseUntil     float64
}

// NewMachine creates a dormant crusher at the top of the runway.
func NewMachine(runway Runway, profile config.DifficultyProfile, motion config.MotionConfig, stage int) *Machine {
	return &Machine{
		runway:      runway,
		profile:     profile,
		motion:      motion,
		stageFactor: motion.StageFactor(stage),
		y:           runway.InitialY,
	}
}

// Y returns the plate row.
func (m *Machine) Y() float64 { return m.y }

// State returns the escalation level.
func (m *Machine) State() CrusherState { return m.state }

// Runway returns the runway the machine moves on.
func (m *Machine) Runway() Runway { return m.runway }

// AtFailLine reports whether the plate has reached the fail line.
func (m *Machine) AtFailLine() bool { return m.y >= m.runway.FailLineY }

// RegisterMistake escalates the state for the new mistake count, shoves the
// plate down and queues a slide while the crusher is still waking up.
func (m *Machine) RegisterMistake(mistakes int) {
	m.paused = false
	if next := StateFor(mistakes, m.profile.AwakeningThreshold); next > m.state {
		m.state = next
	}
	m.move(m.runway.PercentToPixels(m.motion.ShovePercent))
	if m.state == Stirring || m.state == Loosening {
		m.sliding = true
		m.slideRemaining = m.runway.PercentToPixels(m.motion.SlidePercent)
	}
}

// Lift raises the plate after a correct key and pauses it briefly.
// A dormant crusher is not moved.
func (m *Machine) Lift(combo int, now float64, bonusPercent float64) {
	if m.state == Dormant {
		return
	}
	m.move(-m.runway.PercentToPixels(m.profile.LiftPercent + float64(combo)*bonusPercent))
	m.sliding = false
	m.slideRemaining = 0
	m.paused = true
	m.pauseUntil = now + m.motion.PauseSeconds
}

// Pulse lifts the plate by percent of the runway.
func (m *Machine) Pulse(percent float64) {
	m.move(-m.runway.PercentToPixels(percent))
}

// Expire ends the relief pause once its deadline passes.
func (m *Machine) Expire(now float64) {
	if m.paused && now >= m.pauseUntil {
		m.paused = false
	}
}

// DescentPercent returns the awakened descent rate in percent per second.
func (m *Machine) DescentPercent(penalties int, overdrive float64) float64 {
	return m.profile.BaseDescentPercent *
		(1 + float64(penalties)*m.profile.WeightAccelPercent/100) *
		m.stageFactor *
		overdrive
}

// Advance moves the plate for one frame. A pause holds the plate, an active
// slide beats continuous descent.
func (m *Machine) Advance(dt float64, penalties int, overdrive float64) {
	switch {
	case m.paused:
	case m.sliding:
		step := m.runway.PercentToPixels(m.motion.SlideRatePercent) * dt
		if step >= m.slideRemaining {
			step = m.slideRemaining
			m.sliding = false
		}
		m.slideRemaining -= step
		m.move(step)
	case m.state == Awakened:
		m.move(m.runway.PercentToPixels(m.DescentPercent(penalties, overdrive)) * dt)
	}
}

func (m *Machine) move(dy float64) {
	m.y = m.runway.Clamp(m.y + dy)
}
