package crusher

import (
	"math"
	"math/rand"
	"unicode"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// Body tags used in the physics world.
const (
	TagLetter  = "letter"
	TagPenalty = "penalty"
	TagCrusher = "crusher"
	TagWall    = "wall"
)

// LetterID identifies a letter within one registry.
type LetterID int

// Letter is one typeable glyph in the arena.
type Letter struct {
	ID      LetterID
	Char    rune
	Penalty bool
	Used    bool
	Order   int // Rune index in the phrase, -1 for penalty letters
}

// LetterView is a letter's drawable state.
type LetterView struct {
	Letter
	Pos   core.Vec
	Angle float64
}

type compression struct {
	start    map[LetterID]core.Vec
	target   core.Vec
	duration float64
	elapsed  float64
	done     bool
	onDone   func()
}

// Registry owns the letters of a round and their physics bodies.
type Registry struct {
	world    PhysicsWorld
	rng      *rand.Rand
	physics  config.PhysicsConfig
	attempts int

	letters []*Letter
	byID    map[LetterID]*Letter
	bodies  map[LetterID]core.BodyID
	owners  map[core.BodyID]LetterID
	pending []core.BodyID
	nextID  LetterID

	compress *compression
	parked   map[LetterID]core.Vec
	torn     bool
}

// NewRegistry creates an empty registry on world.
func NewRegistry(world PhysicsWorld, rng *rand.Rand, physics config.PhysicsConfig, attempts int) *Registry {
	r := &Registry{
		world:    world,
		rng:      rng,
		physics:  physics,
		attempts: max(attempts, 1),
		byID:     make(map[LetterID]*Letter),
		bodies:   make(map[LetterID]core.BodyID),
		owners:   make(map[core.BodyID]LetterID),
		parked:   make(map[LetterID]core.Vec),
	}
	world.OnCollisionStart(r.onCollision)
	return r
}

func isTypeable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SpawnLetters places one body per letter or digit of text inside area.
func (r *Registry) SpawnLetters(text string, area core.Rect) {
	for i, ch := range []rune(text) {
		if isTypeable(ch) {
			r.spawn(ch, false, i, area)
		}
	}
}

// SpawnPenalty adds a heavy penalty letter inside area.
func (r *Registry) SpawnPenalty(ch rune, area core.Rect) *Letter {
	return r.spawn(ch, true, -1, area)
}

func (r *Registry) spawn(ch rune, penalty bool, order int, area core.Rect) *Letter {
	if r.torn {
		return nil
	}
	r.nextID++
	l := &Letter{ID: r.nextID, Char: ch, Penalty: penalty, Order: order}
	def := core.BodyDef{
		Kind: core.BodyDynamic,
		Pos:  r.place(area),
		W:    1,
		H:    1,
		Mass: r.physics.LetterMass,
		Tag:  TagLetter,
	}
	if penalty {
		def.Mass = r.physics.PenaltyMass
		def.Tag = TagPenalty
	}
	body := r.world.CreateBody(def)
	r.letters = append(r.letters, l)
	r.byID[l.ID] = l
	r.bodies[l.ID] = body
	r.owners[body] = l.ID
	return l
}

// place returns a free cell in area, or any cell once the attempts run out.
func (r *Registry) place(area core.Rect) core.Vec {
	if area.W <= 0 || area.H <= 0 {
		return core.Vec{X: float64(area.X), Y: float64(area.Y)}
	}
	random := func() core.Vec {
		return core.Vec{
			X: float64(area.X + r.rng.Intn(area.W)),
			Y: float64(area.Y + r.rng.Intn(area.H)),
		}
	}
	for range r.attempts {
		if p := random(); !r.world.Overlaps(p, 1, 1) {
			return p
		}
	}
	return random()
}

// Consume marks the first unused phrase letter matching ch as used and
// queues its body for removal. It returns nil when nothing matches.
func (r *Registry) Consume(ch rune) *Letter {
	for _, l := range r.letters {
		if l.Used || l.Penalty || l.Char != ch {
			continue
		}
		l.Used = true
		if body, ok := r.bodies[l.ID]; ok {
			r.pending = append(r.pending, body)
			r.detach(l.ID)
		}
		return l
	}
	return nil
}

// Flush removes the bodies of consumed letters from the world.
func (r *Registry) Flush() {
	for _, body := range r.pending {
		r.world.RemoveBody(body)
	}
	r.pending = r.pending[:0]
}

// ApplyPenaltyForces pushes every attached penalty letter downwards.
func (r *Registry) ApplyPenaltyForces() {
	for _, l := range r.letters {
		if !l.Penalty || l.Used {
			continue
		}
		if body, ok := r.bodies[l.ID]; ok {
			r.world.ApplyForce(body, core.Vec{Y: r.physics.PenaltyForce})
		}
	}
}

// onCollision keeps freshly hit letters readable by capping their spin.
func (r *Registry) onCollision(a, b core.BodyID) {
	if r.torn {
		return
	}
	for _, body := range []core.BodyID{a, b} {
		if _, ok := r.owners[body]; !ok {
			continue
		}
		spin := r.world.AngularVelocity(body)
		if clamped := core.ClampF(spin, -r.physics.MaxSpin, r.physics.MaxSpin); clamped != spin {
			r.world.SetAngularVelocity(body, clamped)
		}
	}
}

// CompressAll detaches every unused letter from the world and animates them
// towards target. onDone runs once from Animate when the animation ends,
// unless the registry is torn down first.
func (r *Registry) CompressAll(target core.Vec, duration float64, onDone func()) {
	if r.torn || r.compress != nil {
		return
	}
	r.Flush()
	c := &compression{
		start:    make(map[LetterID]core.Vec),
		target:   target,
		duration: duration,
		onDone:   onDone,
	}
	for _, l := range r.letters {
		body, ok := r.bodies[l.ID]
		if !ok {
			continue
		}
		if pos, ok := r.world.Position(body); ok {
			c.start[l.ID] = pos
			r.parked[l.ID] = pos
		}
		r.world.RemoveBody(body)
		r.detach(l.ID)
	}
	r.compress = c
}

// Compressing reports whether a compression animation is running.
func (r *Registry) Compressing() bool {
	return r.compress != nil && !r.compress.done
}

// Animate advances the compression animation by dt seconds.
func (r *Registry) Animate(dt float64) {
	c := r.compress
	if c == nil || c.done || r.torn {
		return
	}
	c.elapsed += dt
	t := 1.0
	if c.duration > 0 {
		t = c.elapsed / c.duration
	}
	for id, from := range c.start {
		r.parked[id] = core.Vec{
			X: core.Lerp(from.X, c.target.X, t),
			Y: core.Lerp(from.Y, c.target.Y, t),
		}
	}
	if t < 1 {
		return
	}
	c.done = true
	if c.onDone != nil {
		fn := c.onDone
		c.onDone = nil
		fn()
	}
}

// Teardown cancels compression without running its callback and removes
// every body from the world. It is safe to call more than once.
func (r *Registry) Teardown() {
	if r.torn {
		return
	}
	r.Flush()
	if r.compress != nil {
		r.compress.onDone = nil
	}
	for id, body := range r.bodies {
		r.world.RemoveBody(body)
		delete(r.owners, body)
		delete(r.bodies, id)
	}
	r.torn = true
}

func (r *Registry) detach(id LetterID) {
	body, ok := r.bodies[id]
	if !ok {
		return
	}
	delete(r.bodies, id)
	delete(r.owners, body)
}

// Letters returns every letter, used ones included, in spawn order.
func (r *Registry) Letters() []Letter {
	out := make([]Letter, 0, len(r.letters))
	for _, l := range r.letters {
		out = append(out, *l)
	}
	return out
}

// Visible returns the letters still in the arena with their positions.
func (r *Registry) Visible() []LetterView {
	var out []LetterView
	for _, l := range r.letters {
		if l.Used {
			continue
		}
		if pos, ok := r.parked[l.ID]; ok {
			out = append(out, LetterView{Letter: *l, Pos: pos})
			continue
		}
		body, ok := r.bodies[l.ID]
		if !ok {
			continue
		}
		pos, ok := r.world.Position(body)
		if !ok {
			continue
		}
		out = append(out, LetterView{Letter: *l, Pos: pos, Angle: r.world.Angle(body)})
	}
	return out
}

// At returns the unused phrase letter drawn at cell, or nil.
func (r *Registry) At(cell core.Point) *Letter {
	for _, v := range r.Visible() {
		if v.Penalty || v.Pos.Cell() != cell {
			continue
		}
		return r.byID[v.ID]
	}
	return nil
}

// Body returns the physics body of a letter still in the world.
func (r *Registry) Body(id LetterID) (core.BodyID, bool) {
	body, ok := r.bodies[id]
	return body, ok
}

// Remaining counts unused phrase letters.
func (r *Registry) Remaining() int {
	n := 0
	for _, l := range r.letters {
		if !l.Used && !l.Penalty {
			n++
		}
	}
	return n
}

// tilted reports whether a letter is visibly rotated.
func tilted(angle float64) bool {
	a := math.Mod(math.Abs(angle), math.Pi)
	return a > math.Pi/8 && a < math.Pi*7/8
}
