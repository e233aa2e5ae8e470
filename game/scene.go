package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/sugarclouds/components"
	"github.com/pthm-cable/sugarclouds/config"
	"github.com/pthm-cable/sugarclouds/shading"
	"github.com/pthm-cable/sugarclouds/systems"
)

// ErrPipelineUnavailable is returned by Step when there is nothing to upload
// the frame to. The scene does not advance.
var ErrPipelineUnavailable = errors.New("render pipeline unavailable")

// ErrUnknownColor is returned by SetColor for names outside the palette.
var ErrUnknownColor = errors.New("unknown color name")

// Pointer is the latest pointer state in normalized canvas space, origin
// bottom-left.
type Pointer struct {
	Pos  r2.Vec
	Held bool
}

// Target receives the per-frame uniform snapshot.
type Target interface {
	Ready() bool
	Upload(u *shading.Uniforms)
}

// StepResult reports what a single Step did.
type StepResult struct {
	DT        float64 // integration step after clamping
	Dissolved float64 // blob size lost to the water this step
	Sugar     float64 // running total, grams
	HeldTime  float64 // eased hold value before squaring
}

// Scene owns the blobs, the stars and the parameters the shading pipeline
// reads. All mutation happens through Step, Resize and SetColor.
type Scene struct {
	cfg *config.Config

	world   *ecs.World
	blobMap *ecs.Map3[components.Position, components.Velocity, components.Blob]
	starMap *ecs.Map3[components.Position, components.Velocity, components.Star]

	// Upload order; ark query order is not part of the uniform contract.
	blobs []ecs.Entity
	stars []ecs.Entity

	blobSystem *systems.BlobSystem
	starSystem *systems.StarSystem

	rng *rand.Rand

	canvas    r2.Vec
	pointer   Pointer
	heldTime  float64
	sugar     float64
	totalTime float64
	palette   shading.Palette
}

// NewScene creates a scene for a canvas of the given pixel size and spawns
// its blobs and stars from seed.
func NewScene(cfg *config.Config, width, height int, seed int64) *Scene {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	s := &Scene{
		cfg:        cfg,
		world:      world,
		blobMap:    ecs.NewMap3[components.Position, components.Velocity, components.Blob](world),
		starMap:    ecs.NewMap3[components.Position, components.Velocity, components.Star](world),
		blobSystem: systems.NewBlobSystem(world, &cfg.Physics),
		starSystem: systems.NewStarSystem(world, &cfg.Stars, &cfg.Physics, rng),
		rng:        rng,
		canvas:     r2.Vec{X: float64(max(width, 1)), Y: float64(max(height, 1))},
	}

	for slot := shading.SkyBottom; slot < shading.NumColors; slot++ {
		s.palette[slot] = cfg.Derived.Colors[slot.String()]
	}

	s.spawnBlobs()
	s.spawnStars()
	return s
}

// spawnBlobs scatters blobs across the upper sky, denser toward the right and
// the top. Sizes are tuned for the reference width and scale with the canvas.
func (s *Scene) spawnBlobs() {
	bc := &s.cfg.Blobs
	scale := s.canvas.X / bc.ReferenceWidth

	s.blobs = make([]ecs.Entity, 0, shading.BlobsAmount)
	for i := 0; i < shading.BlobsAmount; i++ {
		pos := components.Position{
			X: math.Sqrt(s.rng.Float64())*bc.SpawnXScale + bc.SpawnXOffset,
			Y: 1 - math.Sqrt(s.rng.Float64())*bc.SpawnYDepth,
		}
		size := math.Max(math.Max(s.rng.Float64()*bc.SizeRange, bc.SizeMin)*scale, s.cfg.Physics.MinSize)
		blob := components.Blob{Size: size, MaxSize: size}

		e := s.blobMap.NewEntity(&pos, &components.Velocity{}, &blob)
		s.blobs = append(s.blobs, e)
	}
}

func (s *Scene) spawnStars() {
	s.stars = make([]ecs.Entity, 0, shading.StarsAmount)
	for i := 0; i < shading.StarsAmount; i++ {
		x, y := s.rng.Float64(), s.rng.Float64()
		pos := components.Position{X: x, Y: y}
		star := components.Star{HomeX: x, HomeY: y}

		e := s.starMap.NewEntity(&pos, &components.Velocity{}, &star)
		s.stars = append(s.stars, e)
	}
}

// Step advances the scene by dt seconds of wall time and uploads the result
// to target. The integration step is capped at max_dt; the hold easing uses
// the raw dt. If target is missing or not ready the scene is left untouched
// and ErrPipelineUnavailable is returned.
func (s *Scene) Step(dt float64, pointer Pointer, target Target) (StepResult, error) {
	if target == nil || !target.Ready() {
		return StepResult{}, ErrPipelineUnavailable
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	s.totalTime += dt
	s.pointer = pointer
	s.heldTime = systems.UpdateHeldTime(s.heldTime, pointer.Held, dt, &s.cfg.Pointer)

	env := systems.Env{
		DT:      math.Min(dt, s.cfg.Physics.MaxDT),
		Canvas:  s.canvas,
		Pointer: pointer.Pos,
		Held:    pointer.Held,
	}

	dissolved := s.blobSystem.Update(env)
	s.starSystem.Update(env)
	s.sugar += dissolved * s.cfg.Physics.SugarFactor

	u := s.Snapshot()
	target.Upload(&u)

	return StepResult{
		DT:        env.DT,
		Dissolved: dissolved,
		Sugar:     s.sugar,
		HeldTime:  s.heldTime,
	}, nil
}

// Snapshot copies the current state into the uniform layout.
func (s *Scene) Snapshot() shading.Uniforms {
	u := shading.Uniforms{
		Canvas:         s.canvas,
		BlobPos:        make(shading.Vec2s, 0, len(s.blobs)),
		BlobSize:       make([]float64, 0, len(s.blobs)),
		StarPos:        make(shading.Vec2s, 0, len(s.stars)),
		Pointer:        s.pointer.Pos,
		HeldTime:       s.heldTime * s.heldTime,
		TimeWave:       shading.Phase(s.totalTime, s.cfg.Derived.WavePeriod),
		UnderwaterWave: shading.Phase(s.totalTime, s.cfg.Waves.UnderwaterPeriod),
		Palette:        s.palette,
	}

	for _, e := range s.blobs {
		pos, _, blob := s.blobMap.Get(e)
		u.BlobPos = append(u.BlobPos, r2.Vec{X: pos.X, Y: pos.Y})
		u.BlobSize = append(u.BlobSize, blob.Size)
	}
	for _, e := range s.stars {
		pos, _, _ := s.starMap.Get(e)
		u.StarPos = append(u.StarPos, r2.Vec{X: pos.X, Y: pos.Y})
	}
	return u
}

// Resize updates the canvas. Blob sizes are pixel radii tuned to the canvas
// width, so they are rescaled with it; positions are normalized and kept.
func (s *Scene) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: dimensions must be positive", width, height)
	}

	ratio := float64(width) / s.canvas.X
	s.canvas = r2.Vec{X: float64(width), Y: float64(height)}
	if ratio == 1 {
		return nil
	}

	minSize := s.cfg.Physics.MinSize
	for _, e := range s.blobs {
		_, _, blob := s.blobMap.Get(e)
		blob.MaxSize = math.Max(blob.MaxSize*ratio, minSize)
		blob.Size = math.Min(math.Max(blob.Size*ratio, minSize), blob.MaxSize)
	}
	return nil
}

// SetColor replaces one palette entry by its config name.
func (s *Scene) SetColor(name string, c colorful.Color) error {
	slot, ok := shading.SlotByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	s.palette[slot] = c
	return nil
}

// Palette returns the current colors.
func (s *Scene) Palette() shading.Palette {
	return s.palette
}

// Sugar returns the grams dissolved so far.
func (s *Scene) Sugar() float64 {
	return s.sugar
}

// HeldTime returns the eased hold value in [0, 1].
func (s *Scene) HeldTime() float64 {
	return s.heldTime
}

// Canvas returns the canvas pixel dimensions.
func (s *Scene) Canvas() r2.Vec {
	return s.canvas
}

// TotalTime returns the wall seconds accumulated by Step.
func (s *Scene) TotalTime() float64 {
	return s.totalTime
}

// BlobSizes returns the current blob sizes in upload order.
func (s *Scene) BlobSizes() []float64 {
	sizes := make([]float64, 0, len(s.blobs))
	for _, e := range s.blobs {
		_, _, blob := s.blobMap.Get(e)
		sizes = append(sizes, blob.Size)
	}
	return sizes
}

// StarDrift returns each star's distance from home in pixels.
func (s *Scene) StarDrift() []float64 {
	drift := make([]float64, 0, len(s.stars))
	for _, e := range s.stars {
		pos, _, star := s.starMap.Get(e)
		d := r2.Norm(r2.Vec{X: pos.X - star.HomeX, Y: pos.Y - star.HomeY})
		drift = append(drift, d*s.canvas.X)
	}
	return drift
}
