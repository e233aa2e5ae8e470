// Package systems contains ECS systems for the scene.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sugarclouds/components"
	"github.com/pthm-cable/sugarclouds/config"
)

// Env is the per-step input shared by all systems.
type Env struct {
	DT      float64 // already clamped to max_dt
	Canvas  r2.Vec  // pixel dimensions
	Pointer r2.Vec  // normalized, origin bottom-left
	Held    bool
}

// BlobSystem advances every blob by one step: forces, integration, wrap and
// the waterline dissolve/regrow rules.
type BlobSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Blob]
	cfg    *config.PhysicsConfig
}

// NewBlobSystem creates a new blob system.
func NewBlobSystem(w *ecs.World, cfg *config.PhysicsConfig) *BlobSystem {
	return &BlobSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Blob](w),
		cfg:    cfg,
	}
}

// Update runs the blob system and returns the total size dissolved this step.
func (s *BlobSystem) Update(env Env) float64 {
	var dissolved float64
	query := s.filter.Query()
	for query.Next() {
		pos, vel, blob := query.Get()
		dissolved += StepBlob(pos, vel, blob, env, s.cfg)
	}
	return dissolved
}

// StepBlob applies the per-blob rules in order and returns the size lost to
// the water.
func StepBlob(pos *components.Position, vel *components.Velocity, blob *components.Blob, env Env, p *config.PhysicsConfig) float64 {
	ApplyWind(vel, blob.Mass(), env.DT, p.WindSpeed)

	deficit := Buoyancy(vel, pos.Y, env.DT, p)
	Regrow(blob, deficit, env.DT, p)

	if env.Held {
		Attract(vel, *pos, blob.Mass(), env, p)
	}

	Integrate(pos, vel, env.DT, p.Friction, p)
	Wrap(pos, Margin(blob.Size, env.Canvas.X, p))

	return Dissolve(*pos, blob, env.DT, env.Canvas.Y, p)
}

// ApplyWind pushes right with a force inversely proportional to mass, so
// small blobs race ahead of large ones.
func ApplyWind(vel *components.Velocity, mass, dt, wind float64) {
	if mass <= 0 {
		return
	}
	vel.X += dt * wind / mass
}

// Buoyancy lifts blobs below the cloud ceiling and returns how far below it
// the blob sits (0 when at or above).
func Buoyancy(vel *components.Velocity, y, dt float64, p *config.PhysicsConfig) float64 {
	deficit := math.Max(p.CloudMinHeight-y, 0)
	vel.Y += dt * p.FloatAmount * deficit
	return deficit
}

// Regrow restores size while the blob floats within the regrow band of the
// ceiling. Size never exceeds MaxSize.
func Regrow(blob *components.Blob, deficit, dt float64, p *config.PhysicsConfig) {
	if deficit >= p.RegrowBand || blob.Size >= blob.MaxSize {
		return
	}
	blob.Size = math.Min(blob.Size+dt*p.GrowFactor, blob.MaxSize)
}

// Attract pulls the blob toward the pointer with inverse-square gravity
// measured in pixels, capped at max_gravity. A blob exactly under the pointer
// has no direction and is left alone.
func Attract(vel *components.Velocity, pos components.Position, mass float64, env Env, p *config.PhysicsConfig) {
	diff := r2.Vec{
		X: (pos.X - env.Pointer.X) * env.Canvas.X,
		Y: (pos.Y - env.Pointer.Y) * env.Canvas.Y,
	}
	magnitude := r2.Norm(diff)
	if magnitude == 0 {
		return
	}

	gravity := math.Min(mass/(magnitude*magnitude)*p.AttractionStrength, p.MaxGravity)
	pull := r2.Scale(gravity*env.DT/magnitude, diff)
	vel.X -= pull.X
	vel.Y -= pull.Y
}

// Integrate moves pos by vel and then applies friction. Each axis step is
// capped at max_step in either direction; friction removes at most the whole
// velocity so it never reverses direction.
func Integrate(pos *components.Position, vel *components.Velocity, dt, friction float64, p *config.PhysicsConfig) {
	pos.X += clampStep(vel.X*dt*p.StepScale, p.MaxStep)
	pos.Y += clampStep(vel.Y*dt*p.StepScale, p.MaxStep)

	k := math.Min(friction*dt*p.FrictionScale, 1)
	vel.X -= vel.X * k
	vel.Y -= vel.Y * k
}

// Margin is how far past the canvas edge a blob of the given size may travel
// before wrapping to the opposite side.
func Margin(size, canvasWidth float64, p *config.PhysicsConfig) float64 {
	if canvasWidth <= 0 {
		return 0
	}
	return size * p.MarginFactor / canvasWidth
}

// Wrap folds both axes into [-margin, 1+margin).
func Wrap(pos *components.Position, margin float64) {
	period := 1 + 2*margin
	pos.X = floorMod(pos.X+margin, period) - margin
	pos.Y = floorMod(pos.Y+margin, period) - margin
}

// Dissolve shrinks a blob whose bottom edge is under the waterline, in
// proportion to how deep it is, down to min_size. It returns the size lost.
func Dissolve(pos components.Position, blob *components.Blob, dt, canvasHeight float64, p *config.PhysicsConfig) float64 {
	if canvasHeight <= 0 {
		return 0
	}
	bottom := pos.Y - blob.Size/canvasHeight
	if bottom >= p.Waterline {
		return 0
	}

	previous := blob.Size
	blob.Size = math.Max(blob.Size-(p.Waterline-bottom)*p.DissolveSpeed*dt, p.MinSize)
	return math.Max(previous-blob.Size, 0)
}

func clampStep(step, limit float64) float64 {
	return math.Max(math.Min(step, limit), -limit)
}

// floorMod is a modulo whose result takes the sign of m.
func floorMod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	// r+m can round up to m for tiny negative r
	if r >= m {
		r = 0
	}
	return r
}
