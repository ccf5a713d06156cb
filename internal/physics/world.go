// Package physics implements the letter arena: a small AABB rigid-body world
// using resolv for broad-phase queries.
package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

const (
	maxSubstep   = 0.5 // Largest per-axis move before a step is split
	restSpeed    = 2.0 // Bounces slower than this come to rest
	spinTransfer = 0.3 // Spin gained per unit of impact speed
	// Broad-phase objects are inflated by pad on every side so the cell
	// query covers every cell a fractional body touches.
	pad = 1.0
)

type body struct {
	id    core.BodyID
	kind  core.BodyKind
	pos   core.Vec
	vel   core.Vec
	force core.Vec
	w, h  float64
	mass  float64
	angle float64
	spin  float64
	tag   string
	obj   *resolv.Object
}

type pair struct {
	a, b core.BodyID
}

func makePair(a, b core.BodyID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// World is a grid-aligned arena of axis-aligned bodies.
// It is not safe for concurrent use.
type World struct {
	space  *resolv.Space
	width  float64
	height float64
	cfg    config.PhysicsConfig

	bodies map[core.BodyID]*body
	order  []core.BodyID
	nextID core.BodyID

	touching  map[pair]struct{}
	frame     map[pair]struct{}
	listeners []func(a, b core.BodyID)
}

// NewWorld creates a world of width x height cells.
func NewWorld(width, height int, cfg config.PhysicsConfig) *World {
	width = max(width, 1)
	height = max(height, 1)
	return &World{
		space:    resolv.NewSpace(width, height, 1, 1),
		width:    float64(width),
		height:   float64(height),
		cfg:      cfg,
		bodies:   make(map[core.BodyID]*body),
		touching: make(map[pair]struct{}),
		frame:    make(map[pair]struct{}),
	}
}

// Len returns the number of bodies in the world.
func (w *World) Len() int { return len(w.bodies) }

// CreateBody adds a body and returns its handle.
func (w *World) CreateBody(def core.BodyDef) core.BodyID {
	w.nextID++
	b := &body{
		id:   w.nextID,
		kind: def.Kind,
		pos:  def.Pos,
		w:    math.Max(def.W, 0.1),
		h:    math.Max(def.H, 0.1),
		mass: def.Mass,
		tag:  def.Tag,
	}
	if b.mass <= 0 {
		b.mass = 1
	}
	var tags []string
	if def.Tag != "" {
		tags = append(tags, def.Tag)
	}
	b.obj = resolv.NewObject(b.pos.X-pad, b.pos.Y-pad, b.w+2*pad, b.h+2*pad, tags...)
	b.obj.SetShape(resolv.NewRectangle(0, 0, b.w+2*pad, b.h+2*pad))
	b.obj.Data = b
	w.space.Add(b.obj)

	w.bodies[b.id] = b
	w.order = append(w.order, b.id)
	return b.id
}

// RemoveBody removes a body. Unknown IDs are ignored.
func (w *World) RemoveBody(id core.BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	w.space.Remove(b.obj)
	delete(w.bodies, id)
	if i := slices.Index(w.order, id); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	for p := range w.touching {
		if p.a == id || p.b == id {
			delete(w.touching, p)
		}
	}
	for p := range w.frame {
		if p.a == id || p.b == id {
			delete(w.frame, p)
		}
	}
}

// SetPosition moves a body. Kinematic bodies push overlapping dynamic
// bodies out along their direction of travel.
func (w *World) SetPosition(id core.BodyID, pos core.Vec) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	delta := pos.Sub(b.pos)
	b.pos = pos
	w.sync(b)
	if b.kind == core.BodyKinematic {
		w.pushOut(b, delta)
	}
}

// Position returns a body's top-left corner.
func (w *World) Position(id core.BodyID) (core.Vec, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return core.Vec{}, false
	}
	return b.pos, true
}

// Velocity returns a body's velocity in cells per second.
func (w *World) Velocity(id core.BodyID) core.Vec {
	if b, ok := w.bodies[id]; ok {
		return b.vel
	}
	return core.Vec{}
}

// SetVelocity overrides a body's velocity.
func (w *World) SetVelocity(id core.BodyID, v core.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.vel = v
	}
}

// Tag returns the tag a body was created with.
func (w *World) Tag(id core.BodyID) string {
	if b, ok := w.bodies[id]; ok {
		return b.tag
	}
	return ""
}

// Angle returns a body's rotation in radians.
func (w *World) Angle(id core.BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.angle
	}
	return 0
}

// ApplyForce accumulates a force that is consumed by the next Step.
func (w *World) ApplyForce(id core.BodyID, f core.Vec) {
	if b, ok := w.bodies[id]; ok {
		b.force = b.force.Add(f)
	}
}

// SetAngularVelocity overrides a body's spin.
func (w *World) SetAngularVelocity(id core.BodyID, omega float64) {
	if b, ok := w.bodies[id]; ok {
		b.spin = omega
	}
}

// AngularVelocity returns a body's spin in radians per second.
func (w *World) AngularVelocity(id core.BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.spin
	}
	return 0
}

// Overlaps reports whether any body intersects the rectangle at pos.
// Only bodies registered in the cells the rectangle covers are tested.
func (w *World) Overlaps(pos core.Vec, width, height float64) bool {
	cx, cy := w.space.WorldToSpace(pos.X, pos.Y)
	ex, ey := w.space.WorldToSpace(pos.X+width, pos.Y+height)
	for y := cy; y <= ey; y++ {
		for x := cx; x <= ex; x++ {
			cell := w.space.Cell(x, y)
			if cell == nil {
				continue
			}
			for _, o := range cell.Objects {
				b, ok := o.Data.(*body)
				if ok && overlap(pos, width, height, b.pos, b.w, b.h) {
					return true
				}
			}
		}
	}
	return false
}

// OnCollisionStart registers fn to be called when two bodies begin touching.
func (w *World) OnCollisionStart(fn func(a, b core.BodyID)) {
	w.listeners = append(w.listeners, fn)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	decay := math.Max(0, 1-w.cfg.Damping*dt)
	for _, id := range slices.Clone(w.order) {
		b, ok := w.bodies[id]
		if !ok || b.kind != core.BodyDynamic {
			continue
		}
		acc := core.Vec{X: b.force.X / b.mass, Y: w.cfg.Gravity + b.force.Y/b.mass}
		b.force = core.Vec{}
		b.vel = b.vel.Add(acc.Scale(dt)).Scale(decay)
		if speed := b.vel.Len(); w.cfg.MaxSpeed > 0 && speed > w.cfg.MaxSpeed {
			b.vel = b.vel.Scale(w.cfg.MaxSpeed / speed)
		}
		b.angle += b.spin * dt
		b.spin *= decay
		w.move(b, b.vel.Scale(dt))
	}
	for _, id := range w.order {
		if b := w.bodies[id]; b.kind != core.BodyDynamic {
			b.force = core.Vec{}
		}
	}
	w.emitContacts()
}

func (w *World) move(b *body, d core.Vec) {
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y)) / maxSubstep))
	if steps < 1 {
		steps = 1
	}
	part := d.Scale(1 / float64(steps))
	for range steps {
		w.moveAxis(b, part.X, 0)
		w.moveAxis(b, 0, part.Y)
	}
}

// moveAxis moves b along one axis, stopping at the first solid body.
func (w *World) moveAxis(b *body, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	next := b.pos.Add(core.Vec{X: dx, Y: dy})
	if col := b.obj.Check(dx, dy); col != nil {
		for _, o := range col.Objects {
			other, ok := o.Data.(*body)
			if !ok || other == b || !overlap(next, b.w, b.h, other.pos, other.w, other.h) {
				continue
			}
			switch {
			case dx > 0:
				next.X = other.pos.X - b.w
			case dx < 0:
				next.X = other.pos.X + other.w
			case dy > 0:
				next.Y = other.pos.Y - b.h
			default:
				next.Y = other.pos.Y + other.h
			}
			w.bounce(b, dx != 0)
			w.frame[makePair(b.id, other.id)] = struct{}{}
		}
	}
	b.pos = w.clampBounds(b, next)
	w.sync(b)
}

func (w *World) bounce(b *body, horizontal bool) {
	var impact float64
	if horizontal {
		impact = math.Abs(b.vel.X)
		b.vel.X = rest(-b.vel.X * w.cfg.Restitution)
	} else {
		impact = math.Abs(b.vel.Y)
		b.vel.Y = rest(-b.vel.Y * w.cfg.Restitution)
	}
	if impact < restSpeed {
		return
	}
	dir := 1.0
	if b.vel.X < 0 {
		dir = -1
	}
	b.spin += dir * impact * spinTransfer
}

func rest(v float64) float64 {
	if math.Abs(v) < restSpeed {
		return 0
	}
	return v
}

func (w *World) clampBounds(b *body, p core.Vec) core.Vec {
	maxX := math.Max(0, w.width-b.w)
	maxY := math.Max(0, w.height-b.h)
	if p.X < 0 || p.X > maxX {
		p.X = core.ClampF(p.X, 0, maxX)
		b.vel.X = 0
	}
	if p.Y < 0 || p.Y > maxY {
		p.Y = core.ClampF(p.Y, 0, maxY)
		b.vel.Y = 0
	}
	return p
}

// pushOut moves dynamic bodies out of a kinematic body that just moved by delta.
func (w *World) pushOut(k *body, delta core.Vec) {
	col := k.obj.Check(0, 0)
	if col == nil {
		return
	}
	for _, o := range col.Objects {
		other, ok := o.Data.(*body)
		if !ok || other == k || other.kind != core.BodyDynamic {
			continue
		}
		if !overlap(k.pos, k.w, k.h, other.pos, other.w, other.h) {
			continue
		}
		if delta.Y < 0 {
			other.pos.Y = k.pos.Y - other.h
			other.vel.Y = math.Min(other.vel.Y, 0)
		} else {
			other.pos.Y = k.pos.Y + k.h
			other.vel.Y = math.Max(other.vel.Y, 0)
		}
		other.pos = w.clampBounds(other, other.pos)
		w.sync(other)
		w.frame[makePair(k.id, other.id)] = struct{}{}
	}
}

// emitContacts fires listeners for pairs that touched this frame but not the last.
func (w *World) emitContacts() {
	var started []pair
	for p := range w.frame {
		if _, ok := w.touching[p]; !ok {
			started = append(started, p)
		}
	}
	slices.SortFunc(started, func(x, y pair) int {
		if c := cmp.Compare(x.a, y.a); c != 0 {
			return c
		}
		return cmp.Compare(x.b, y.b)
	})
	w.touching, w.frame = w.frame, w.touching
	clear(w.frame)
	for _, p := range started {
		for _, fn := range w.listeners {
			fn(p.a, p.b)
		}
	}
}

// sync copies a body's position into its resolv object.
func (w *World) sync(b *body) {
	b.obj.X = b.pos.X - pad
	b.obj.Y = b.pos.Y - pad
	b.obj.Update()
}

func overlap(p core.Vec, w, h float64, q core.Vec, qw, qh float64) bool {
	return p.X < q.X+qw && q.X < p.X+w && p.Y < q.Y+qh && q.Y < p.Y+h
}
