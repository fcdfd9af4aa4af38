package enemy

import (
	"math"

	"spaceship-core/internal/geom"
	"spaceship-core/internal/record"
)

// FindModuleTargets picks, for each module, the nearest non-zombie enemy
func FindModuleTargets(modules []record.Body, enemies []record.Enemy) []record.ModuleTarget {
	out := make([]record.ModuleTarget, len(modules))
	for i, m := range modules {
		out[i] = nearestTarget(m.X, m.Y, enemies)
	}
	return out
}

func nearestTarget(mx, my float64, enemies []record.Enemy) record.ModuleTarget {
	best := math.Inf(1)
	t := record.NoTarget
	for i := range enemies {
		if enemies[i].Zombie {
			continue
		}
		d2 := geom.DistanceSq(mx, my, enemies[i].X, enemies[i].Y)
		if d2 < best {
			best = d2
			t = record.ModuleTarget{Found: true, X: enemies[i].X, Y: enemies[i].Y, Index: i}
		}
	}
	return t
}

// ShootAngle returns the firing angle from a module to its target
func ShootAngle(mx, my, tx, ty float64) float64 {
	return math.Atan2(ty-my, tx-mx)
}

// ShouldShoot reports whether the target is far enough away to fire at
func ShouldShoot(mx, my, tx, ty, minDist float64) bool {
	return geom.Distance(mx, my, tx, ty) > minDist
}
