package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sugarclouds/components"
	"github.com/pthm-cable/sugarclouds/config"
)

// StarSystem jitters stars around their home positions.
type StarSystem struct {
	filter  *ecs.Filter3[components.Position, components.Velocity, components.Star]
	stars   *config.StarsConfig
	physics *config.PhysicsConfig
	rng     *rand.Rand
}

// NewStarSystem creates a new star system drawing impulses from rng.
func NewStarSystem(w *ecs.World, stars *config.StarsConfig, physics *config.PhysicsConfig, rng *rand.Rand) *StarSystem {
	return &StarSystem{
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Star](w),
		stars:   stars,
		physics: physics,
		rng:     rng,
	}
}

// Update runs the star system.
func (s *StarSystem) Update(env Env) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, star := query.Get()
		StepStar(pos, vel, *star, env.DT, env.Canvas.X, s.rng.Float64(), s.rng.Float64(), s.stars, s.physics)
	}
}

// StepStar adds a random impulse from the samples jx, jy in [0, 1) and
// integrates. The impulse weakens with distance from home, measured in
// pixels and floored at one pixel, so stars hover near their anchor.
// Stars never wrap.
func StepStar(pos *components.Position, vel *components.Velocity, star components.Star, dt, canvasWidth, jx, jy float64, cfg *config.StarsConfig, p *config.PhysicsConfig) {
	dx := star.HomeX - pos.X
	dy := star.HomeY - pos.Y
	d := math.Max(math.Sqrt(dx*dx+dy*dy)*canvasWidth, 1)

	vel.X += (jx - 0.5) * cfg.Speed / d
	vel.Y += (jy - 0.5) * cfg.Speed / d

	Integrate(pos, vel, dt, cfg.Friction, p)
}
