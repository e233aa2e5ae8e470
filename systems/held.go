package systems

import (
	"math"

	"github.com/pthm-cable/sugarclouds/config"
)

// UpdateHeldTime eases the hold value toward 1 while the pointer is held and
// back toward 0 after release, clamped to [0, 1]. dt is the raw frame delta.
func UpdateHeldTime(held float64, pressed bool, dt float64, p *config.PointerConfig) float64 {
	if pressed {
		return math.Min(held+dt*p.GainRate, 1)
	}
	return math.Max(held-dt*p.ReduceRate, 0)
}
