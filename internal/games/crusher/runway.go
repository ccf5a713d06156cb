package crusher

import "github.com/vovakirdan/tui-crusher/internal/core"

// Runway converts percent-of-travel tuning into rows.
// It spans from the crusher's start row to the fail line.
type Runway struct {
	InitialY  float64
	FailLineY float64
}

// NewRunway creates a runway between initialY and failLineY.
func NewRunway(initialY, failLineY float64) Runway {
	return Runway{InitialY: initialY, FailLineY: failLineY}
}

// Length returns the travel distance, never negative.
func (r Runway) Length() float64 {
	return max(r.FailLineY-r.InitialY, 0)
}

// PercentToPixels converts a percentage of the runway to rows.
func (r Runway) PercentToPixels(percent float64) float64 {
	return percent / 100 * r.Length()
}

// Percent returns how far y has travelled along the runway.
func (r Runway) Percent(y float64) float64 {
	l := r.Length()
	if l == 0 {
		return 0
	}
	return (y - r.InitialY) / l * 100
}

// Clamp restricts y to [InitialY, FailLineY].
func (r Runway) Clamp(y float64) float64 {
	return core.ClampF(y, r.InitialY, r.InitialY+r.Length())
}
