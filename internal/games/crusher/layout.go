package crusher

import (
	"math"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// Minimum arena size; smaller terminals are padded up to it and clipped by the renderer.
const (
	minArenaW = 16
	minArenaH = 14
)

// Layout places the arena regions on screen. The plate travels from
// InitialY down to FailLineY; phrase letters wait in the pit below the fail
// line and penalty letters drop from the staging strip onto the plate.
type Layout struct {
	Arena     core.Rect // Bordered play area
	Inner     core.Rect // Arena minus its border
	Staging   core.Rect // Penalty spawn strip above the plate's start row
	Pit       core.Rect // Phrase letter spawn area
	InitialY  float64
	FailLineY float64
}

// ComputeLayout fits the arena into a screenW x screenH terminal.
func ComputeLayout(screenW, screenH int, a config.ArenaConfig) Layout {
	top := a.HUDRows
	w := screenW
	if a.MaxWidth > 0 {
		w = min(w, a.MaxWidth)
	}
	w = max(w, minArenaW)
	h := max(screenH-top-1, minArenaH) // last row is the status line
	x := max((screenW-w)/2, 0)

	arena := core.NewRect(x, top, w, h)
	inner := core.NewRect(x+1, top+1, w-2, h-2)
	staging := core.NewRect(inner.X, inner.Y, inner.W, max(a.StagingRows, 1))

	initial := staging.Bottom()
	fail := top + int(math.Round(a.FailLineRatio*float64(h)))
	fail = max(fail, initial+2)

	floor := inner.Bottom()
	pitTop := min(fail+2, floor-1)
	pit := core.NewRect(inner.X, pitTop, inner.W, floor-pitTop)

	return Layout{
		Arena:     arena,
		Inner:     inner,
		Staging:   staging,
		Pit:       pit,
		InitialY:  float64(initial),
		FailLineY: float64(fail),
	}
}
