package crusher

import "github.com/vovakirdan/tui-crusher/internal/config"

// Combo tracks the correct-key streak and the overdrive it unlocks.
type Combo struct {
	cfg       config.ComboConfig
	count     int
	max       int
	overdrive bool
	until     float64
}

// NewCombo creates an empty streak.
func NewCombo(cfg config.ComboConfig) *Combo {
	return &Combo{cfg: cfg}
}

// Count returns the current streak.
func (c *Combo) Count() int { return c.count }

// Max returns the best streak of the round.
func (c *Combo) Max() int { return c.max }

// Overdrive reports whether overdrive is active.
func (c *Combo) Overdrive() bool { return c.overdrive }

// Direction returns the descent factor: the overdrive direction while active, else 1.
func (c *Combo) Direction() float64 {
	if c.overdrive {
		return c.cfg.OverdriveDirection
	}
	return 1
}

// Hit records a correct key at round time now. It reports whether the
// streak just crossed the overdrive threshold.
func (c *Combo) Hit(now float64) bool {
	prev := c.count
	c.count = min(c.count+1, c.cfg.Cap)
	c.max = max(c.max, c.count)
	if c.overdrive || prev >= c.cfg.OverdriveThreshold || c.count < c.cfg.OverdriveThreshold {
		return false
	}
	c.overdrive = true
	c.until = now + c.cfg.OverdriveSeconds
	return true
}

// Miss resets the streak and cancels overdrive.
func (c *Combo) Miss() {
	c.count = 0
	c.overdrive = false
	c.until = 0
}

// Expire ends overdrive once its deadline passes. It reports whether overdrive just ended.
func (c *Combo) Expire(now float64) bool {
	if !c.overdrive || now < c.until {
		return false
	}
	c.overdrive = false
	return true
}
