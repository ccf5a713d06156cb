package crusher

import (
	"testing"

	"github.com/vovakirdan/tui-crusher/internal/config"
)

func TestComputeLayoutOrdering(t *testing.T) {
	arena := config.DefaultCrusherConfig().Arena
	sizes := []struct{ w, h int }{
		{80, 24},
		{120, 40},
		{40, 16},
		{10, 5},
	}
	for _, s := range sizes {
		l := ComputeLayout(s.w, s.h, arena)

		if l.Staging.Bottom() != int(l.InitialY) {
			t.Errorf("%dx%d: staging ends at %d, plate starts at %v", s.w, s.h, l.Staging.Bottom(), l.InitialY)
		}
		if l.FailLineY < l.InitialY+2 {
			t.Errorf("%dx%d: runway too short: %v..%v", s.w, s.h, l.InitialY, l.FailLineY)
		}
		if float64(l.Pit.Y) <= l.FailLineY {
			t.Errorf("%dx%d: pit top %d not below fail line %v", s.w, s.h, l.Pit.Y, l.FailLineY)
		}
		if l.Pit.W <= 0 || l.Pit.H <= 0 || l.Pit.Bottom() > l.Inner.Bottom() {
			t.Errorf("%dx%d: pit %+v outside inner %+v", s.w, s.h, l.Pit, l.Inner)
		}
		if l.Inner.W > arena.MaxWidth {
			t.Errorf("%dx%d: inner width %d exceeds max", s.w, s.h, l.Inner.W)
		}
	}
}

func TestComputeLayoutDefaultTerminal(t *testing.T) {
	l := ComputeLayout(80, 24, config.DefaultCrusherConfig().Arena)
	if l.InitialY != 7 || l.FailLineY != 14 {
		t.Errorf("runway = %v..%v, want 7..14", l.InitialY, l.FailLineY)
	}
	if l.Arena.X != 4 || l.Arena.W != 72 {
		t.Errorf("arena = %+v, want x=4 w=72", l.Arena)
	}
}

func TestRunway(t *testing.T) {
	r := NewRunway(10, 30)
	if got := r.PercentToPixels(50); got != 10 {
		t.Errorf("PercentToPixels(50) = %v, want 10", got)
	}
	if got := r.Percent(25); got != 75 {
		t.Errorf("Percent(25) = %v, want 75", got)
	}
	if r.Clamp(5) != 10 || r.Clamp(40) != 30 || r.Clamp(20) != 20 {
		t.Error("Clamp did not restrict to [10, 30]")
	}

	flat := NewRunway(10, 5)
	if flat.Length() != 0 || flat.PercentToPixels(50) != 0 || flat.Percent(7) != 0 {
		t.Error("negative runway should convert to zero")
	}
	if flat.Clamp(20) != 10 {
		t.Errorf("flat Clamp = %v, want 10", flat.Clamp(20))
	}
}
