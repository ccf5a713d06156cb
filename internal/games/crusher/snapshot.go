package crusher

import "math"

// Snapshot contains the round state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Phrase       string
	TypedIndex   int
	Errors       int
	MaxCombo     int
	Penalties    int
	State        string
	CrusherMilli int   // Plate row * 1000
	Letters      []int // Per visible letter: id, x*1000, y*1000
	GameOver     bool
}

// Snapshot returns the current round state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.round == nil {
		return Snapshot{}
	}
	r := g.round
	snap := Snapshot{
		Phrase:       string(r.text),
		TypedIndex:   r.typedIndex,
		Errors:       r.errors,
		MaxCombo:     r.combo.Max(),
		Penalties:    r.penalties,
		State:        r.machine.State().String(),
		CrusherMilli: milli(r.machine.Y()),
		GameOver:     r.gameOver,
	}
	for _, v := range r.letters.Visible() {
		snap.Letters = append(snap.Letters, int(v.ID), milli(v.Pos.X), milli(v.Pos.Y))
	}
	return snap
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(len(snap.Phrase))
	for _, r := range snap.Phrase {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.TypedIndex)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Errors)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MaxCombo)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Penalties)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CrusherMilli) //#nosec G115 -- hash computation
	for _, v := range snap.Letters {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	if snap.GameOver {
		h = h*31 + 1
	}
	return h
}
