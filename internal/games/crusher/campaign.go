package crusher

// Campaign carries the stage across rounds: a win moves on to the next,
// faster stage and a loss starts over from stage 1.
type Campaign struct {
	stage int
	best  int
}

// NewCampaign starts a campaign at stage 1.
func NewCampaign() *Campaign {
	return &Campaign{stage: 1, best: 1}
}

// Stage returns the stage the next round is played at.
func (c *Campaign) Stage() int { return c.stage }

// Best returns the highest stage reached.
func (c *Campaign) Best() int { return c.best }

// Record applies a round result.
func (c *Campaign) Record(res Result) {
	if res.Won {
		c.stage++
		c.best = max(c.best, c.stage)
		return
	}
	c.stage = 1
}
