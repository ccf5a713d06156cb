package crusher

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

func newTestRegistry() (*Registry, *fakeWorld) {
	w := newFakeWorld()
	cfg := config.DefaultCrusherConfig()
	return NewRegistry(w, rand.New(rand.NewSource(3)), cfg.Physics, cfg.Arena.SpawnAttempts), w
}

var testArea = core.NewRect(10, 10, 20, 5)

func TestSpawnLettersSkipsPunctuation(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnLetters("HI, YOU", testArea)

	var orders []int
	var chars []rune
	cells := make(map[core.Point]bool)
	for _, v := range reg.Visible() {
		orders = append(orders, v.Order)
		chars = append(chars, v.Char)
		cell := v.Pos.Cell()
		if !testArea.Contains(cell.X, cell.Y) {
			t.Errorf("letter %c at %v outside spawn area", v.Char, cell)
		}
		if cells[cell] {
			t.Errorf("two letters share cell %v", cell)
		}
		cells[cell] = true
	}
	if diff := cmp.Diff([]int{0, 1, 4, 5, 6}, orders); diff != "" {
		t.Errorf("orders (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune("HIYOU"), chars); diff != "" {
		t.Errorf("chars (-want +got):\n%s", diff)
	}
	if got := w.countTag(TagLetter); got != 5 {
		t.Errorf("letter bodies = %d, want 5", got)
	}
	if reg.Remaining() != 5 {
		t.Errorf("Remaining = %d, want 5", reg.Remaining())
	}
}

func TestConsumeFirstUnusedMatch(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnPenalty('A', testArea)
	reg.SpawnLetters("ABA", testArea)

	first := reg.Consume('A')
	if first == nil || first.Penalty || first.Order != 0 {
		t.Fatalf("first consume = %+v, want phrase letter at order 0", first)
	}
	second := reg.Consume('A')
	if second == nil || second.Order != 2 {
		t.Fatalf("second consume = %+v, want order 2", second)
	}
	if reg.Consume('A') != nil {
		t.Error("penalty letters must never be consumed")
	}
	if reg.Consume('Z') != nil {
		t.Error("expected nil for a missing letter")
	}

	// Bodies leave the world on the next flush.
	if len(w.removed) != 0 {
		t.Errorf("bodies removed before flush: %v", w.removed)
	}
	reg.Flush()
	if len(w.removed) != 2 {
		t.Errorf("removed %d bodies, want 2", len(w.removed))
	}
	if reg.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", reg.Remaining())
	}
}

func TestSpawnPenaltyIsHeavy(t *testing.T) {
	reg, w := newTestRegistry()
	l := reg.SpawnPenalty('Q', testArea)
	body, ok := reg.Body(l.ID)
	if !ok {
		t.Fatal("penalty letter has no body")
	}
	def := w.bodies[body].def
	cfg := config.DefaultCrusherConfig().Physics
	if def.Mass != cfg.PenaltyMass || def.Tag != TagPenalty || def.Kind != core.BodyDynamic {
		t.Errorf("penalty body def = %+v", def)
	}
	if l.Order != -1 || !l.Penalty {
		t.Errorf("penalty letter = %+v", l)
	}

	reg.ApplyPenaltyForces()
	if got := w.applied[body]; got.Y != cfg.PenaltyForce {
		t.Errorf("applied force = %v, want %v", got, cfg.PenaltyForce)
	}
}

func TestPlacementFallsBackWhenFull(t *testing.T) {
	reg, w := newTestRegistry()
	area := core.NewRect(5, 5, 1, 1)
	w.CreateBody(core.BodyDef{Kind: core.BodyStatic, Pos: core.Vec{X: 5, Y: 5}, W: 1, H: 1})

	l := reg.SpawnPenalty('X', area)
	if l == nil {
		t.Fatal("spawn failed instead of degrading")
	}
	body, _ := reg.Body(l.ID)
	if pos, _ := w.Position(body); pos != (core.Vec{X: 5, Y: 5}) {
		t.Errorf("fallback position = %v, want (5,5)", pos)
	}
}

func TestCollisionClampsSpin(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnLetters("AB", testArea)
	a, _ := reg.Body(1)
	b, _ := reg.Body(2)
	wall := w.CreateBody(core.BodyDef{Kind: core.BodyStatic, W: 1, H: 1})

	w.SetAngularVelocity(a, 10)
	w.SetAngularVelocity(b, -10)
	w.SetAngularVelocity(wall, 10)
	w.collide(a, wall)
	w.collide(b, a)

	maxSpin := config.DefaultCrusherConfig().Physics.MaxSpin
	if got := w.AngularVelocity(a); got != maxSpin {
		t.Errorf("spin a = %v, want %v", got, maxSpin)
	}
	if got := w.AngularVelocity(b); got != -maxSpin {
		t.Errorf("spin b = %v, want %v", got, -maxSpin)
	}
	if got := w.AngularVelocity(wall); got != 10 {
		t.Errorf("non-letter spin changed to %v", got)
	}
}

func TestCompressAllAnimatesAndCompletesOnce(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnLetters("ABC", testArea)
	reg.Consume('B')
	target := core.Vec{X: 0, Y: 0}

	calls := 0
	reg.CompressAll(target, 1, func() { calls++ })
	reg.CompressAll(target, 1, func() { calls += 100 })

	if w.countTag(TagLetter) != 0 {
		t.Errorf("%d letter bodies left in the world", w.countTag(TagLetter))
	}
	start := reg.Visible()
	if len(start) != 2 {
		t.Fatalf("visible during compression = %d, want 2", len(start))
	}

	reg.Animate(0.5)
	for i, v := range reg.Visible() {
		want := start[i].Pos.Scale(0.5)
		if !approx(v.Pos.X, want.X) || !approx(v.Pos.Y, want.Y) {
			t.Errorf("midway %c at %v, want %v", v.Char, v.Pos, want)
		}
	}
	if calls != 0 || !reg.Compressing() {
		t.Fatalf("completed early: calls=%d", calls)
	}

	reg.Animate(0.5)
	reg.Animate(0.5)
	if calls != 1 {
		t.Errorf("onDone called %d times, want 1", calls)
	}
	if reg.Compressing() {
		t.Error("still compressing after completion")
	}
	for _, v := range reg.Visible() {
		if v.Pos != target {
			t.Errorf("%c ended at %v, want %v", v.Char, v.Pos, target)
		}
	}
}

func TestTeardownCancelsCompression(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnLetters("AB", testArea)
	reg.SpawnPenalty('Z', testArea)

	called := false
	reg.CompressAll(core.Vec{}, 1, func() { called = true })
	reg.Teardown()
	reg.Teardown()
	reg.Animate(2)

	if called {
		t.Error("onDone ran after teardown")
	}
	if len(w.bodies) != 0 {
		t.Errorf("%d bodies left after teardown", len(w.bodies))
	}
	if reg.SpawnPenalty('Q', testArea) != nil {
		t.Error("spawn after teardown should be refused")
	}
}

func TestTeardownRemovesAttachedBodies(t *testing.T) {
	reg, w := newTestRegistry()
	reg.SpawnLetters("HELLO", testArea)
	reg.Consume('H')
	reg.Teardown()
	if len(w.bodies) != 0 {
		t.Errorf("%d bodies left after teardown", len(w.bodies))
	}
}

func TestAtFindsPhraseLetters(t *testing.T) {
	reg, _ := newTestRegistry()
	reg.SpawnLetters("K", testArea)
	p := reg.SpawnPenalty('P', testArea)
	views := reg.Visible()

	if l := reg.At(views[0].Pos.Cell()); l == nil || l.Char != 'K' {
		t.Errorf("At(letter cell) = %+v", l)
	}
	if l := reg.At(views[1].Pos.Cell()); l != nil {
		t.Errorf("At(penalty %d cell) = %+v, want nil", p.ID, l)
	}
	if l := reg.At(core.Point{X: -5, Y: -5}); l != nil {
		t.Errorf("At(empty) = %+v", l)
	}
}
