package crusher

import (
	"testing"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// fakeWorld is a physics world without dynamics: bodies stay where they are put.
type fakeWorld struct {
	bodies    map[core.BodyID]*fakeBody
	nextID    core.BodyID
	removed   []core.BodyID
	steps     int
	applied   map[core.BodyID]core.Vec
	listeners []func(a, b core.BodyID)
}

type fakeBody struct {
	def  core.BodyDef
	pos  core.Vec
	vel  core.Vec
	spin float64
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		bodies:  make(map[core.BodyID]*fakeBody),
		applied: make(map[core.BodyID]core.Vec),
	}
}

func (w *fakeWorld) CreateBody(def core.BodyDef) core.BodyID {
	w.nextID++
	w.bodies[w.nextID] = &fakeBody{def: def, pos: def.Pos}
	return w.nextID
}

func (w *fakeWorld) RemoveBody(id core.BodyID) {
	if _, ok := w.bodies[id]; ok {
		delete(w.bodies, id)
		w.removed = append(w.removed, id)
	}
}

func (w *fakeWorld) SetPosition(id core.BodyID, pos core.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.pos = pos
	}
}

func (w *fakeWorld) Position(id core.BodyID) (core.Vec, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return core.Vec{}, false
	}
	return b.pos, true
}

func (w *fakeWorld) Angle(core.BodyID) float64 { return 0 }

func (w *fakeWorld) ApplyForce(id core.BodyID, f core.Vec) {
	w.applied[id] = w.applied[id].Add(f)
}

func (w *fakeWorld) SetVelocity(id core.BodyID, v core.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.vel = v
	}
}

func (w *fakeWorld) SetAngularVelocity(id core.BodyID, omega float64) {
	if b, ok := w.bodies[id]; ok {
		b.spin = omega
	}
}

func (w *fakeWorld) AngularVelocity(id core.BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.spin
	}
	return 0
}

func (w *fakeWorld) Overlaps(pos core.Vec, width, height float64) bool {
	for _, b := range w.bodies {
		if pos.X < b.pos.X+b.def.W && b.pos.X < pos.X+width &&
			pos.Y < b.pos.Y+b.def.H && b.pos.Y < pos.Y+height {
			return true
		}
	}
	return false
}

func (w *fakeWorld) OnCollisionStart(fn func(a, b core.BodyID)) {
	w.listeners = append(w.listeners, fn)
}

func (w *fakeWorld) Step(float64) { w.steps++ }

// collide fires a collision-start event.
func (w *fakeWorld) collide(a, b core.BodyID) {
	for _, fn := range w.listeners {
		fn(a, b)
	}
}

func (w *fakeWorld) countTag(tag string) int {
	n := 0
	for _, b := range w.bodies {
		if b.def.Tag == tag {
			n++
		}
	}
	return n
}

// recorder is an Observer that keeps everything it is told.
type recorder struct {
	frames  []FramePayload
	events  []Event
	results []Result
}

func (r *recorder) OnFrame(f FramePayload) { r.frames = append(r.frames, f) }
func (r *recorder) OnEvent(e Event)        { r.events = append(r.events, e) }
func (r *recorder) OnRoundEnd(res Result)  { r.results = append(r.results, res) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// fakeStore is a Persistence that counts calls.
type fakeStore struct {
	errors int
	failed []rune
}

func (s *fakeStore) RecordFailedLetter(ch rune) { s.failed = append(s.failed, ch) }
func (s *fakeStore) RecordError()               { s.errors++ }

type fakeSettings struct {
	shake, mouse, order bool
}

func (s fakeSettings) ScreenShakeEnabled() bool { return s.shake }
func (s fakeSettings) MouseOnlyMode() bool      { return s.mouse }
func (s fakeSettings) ShowLetterOrder() bool    { return s.order }

func fixedPhrase(text string) PhraseProvider {
	return PhraseFunc(func(d config.DifficultyPreset) Phrase {
		return Phrase{Text: text, Category: "test", Difficulty: d}
	})
}

type harness struct {
	round *Round
	world *fakeWorld
	obs   *recorder
	store *fakeStore
}

// newHarness starts an 80x24 round on a fake world. Mutators adjust the
// options before the round is created.
func newHarness(t *testing.T, text string, d config.DifficultyPreset, mutate ...func(*Options)) *harness {
	t.Helper()
	h := &harness{world: newFakeWorld(), obs: &recorder{}, store: &fakeStore{}}
	opts := Options{
		Config:      config.DefaultCrusherConfig(),
		Difficulty:  d,
		Width:       80,
		Height:      24,
		Seed:        1,
		Phrases:     fixedPhrase(text),
		World:       h.world,
		Persistence: h.store,
		Settings:    fakeSettings{shake: true},
		Observer:    h.obs,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	h.round = NewRound(opts)
	return h
}

func (h *harness) typeKeys(keys ...string) []KeyOutcome {
	out := make([]KeyOutcome, 0, len(keys))
	for _, k := range keys {
		out = append(out, h.round.HandleKey(k))
	}
	return out
}

func (h *harness) run(seconds, dt float64) {
	for t := 0.0; t < seconds; t += dt {
		h.round.Update(dt)
	}
}
