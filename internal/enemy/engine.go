// Package enemy advances enemy behavior one frame at a time.
package enemy

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"spaceship-core/internal/config"
	"spaceship-core/internal/geom"
	"spaceship-core/internal/logging"
	"spaceship-core/internal/record"
)

// Rand is the random source behind charge triggers and cooldown jitter.
// Returns values in [0, 1).
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded Rand
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// World is everything outside the enemies that behavior reads in one frame
type World struct {
	ShipX, ShipY float64
	ShipRadius   float64
	Modules      []record.Body
	Projectiles  []record.ProjectileMotion
	Width        float64
	Height       float64
	ShieldActive bool
}

// Engine updates enemies by archetype. It keeps no state between calls
// apart from its random source.
type Engine struct {
	cfg    *config.Config
	rng    Rand
	logger *zap.Logger
}

// NewEngine creates an engine. A nil cfg means config.Default(), a nil rng
// a source seeded with 1, a nil logger a no-op logger.
func NewEngine(cfg *config.Config, rng Rand, logger *zap.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if rng == nil {
		rng = NewRand(1)
	}
	return &Engine{cfg: cfg, rng: rng, logger: logging.OrNop(logger)}
}

// Update returns the next state of every enemy, in input order.
// The input slice is not modified.
func (e *Engine) Update(enemies []record.Enemy, w World) []record.Enemy {
	out := make([]record.Enemy, len(enemies))
	for i := range enemies {
		out[i] = e.updateOne(i, enemies[i], enemies, &w)
	}
	return out
}

func (e *Engine) updateOne(idx int, en record.Enemy, all []record.Enemy, w *World) record.Enemy {
	if en.Zombie {
		en.ZombieLifetime--
		if en.ZombieLifetime <= 0 {
			en.HP = 0
			e.logger.Debug("zombie expired", zap.Int("enemy", idx))
			return en
		}
	}

	switch en.Archetype {
	case record.Elite:
		e.updateElite(&en, all, w)
	case record.Rammer:
		e.updateRammer(idx, &en, all, w)
	case record.Exploder:
		e.updateExploder(&en, all, w)
	default:
		e.updateBasic(&en)
	}

	switch en.Archetype {
	case record.Rammer:
		// bounces inside its own update
	case record.Exploder:
		en.X = geom.Clamp(en.X, en.Radius, w.Width-en.Radius)
		en.Y = geom.Clamp(en.Y, en.Radius, w.Height-en.Radius)
	default:
		if en.X < en.Radius || en.X > w.Width-en.Radius {
			en.Angle = math.Pi - en.Angle
		}
		if en.Y < en.Radius || en.Y > w.Height-en.Radius {
			en.Angle = -en.Angle
		}
	}

	if en.ShootCooldown > 0 {
		en.ShootCooldown--
	}
	return en
}

// updateBasic wanders: turn a little, then move along the facing angle
func (e *Engine) updateBasic(en *record.Enemy) {
	c := e.cfg.Archetypes.Basic
	en.Angle += c.TurnRate
	speed := en.Radius * c.SpeedFactor
	en.X += math.Cos(en.Angle) * speed
	en.Y += math.Sin(en.Angle) * speed
}

// updateElite closes in on its target until within engage distance
func (e *Engine) updateElite(en *record.Enemy, all []record.Enemy, w *World) {
	c := e.cfg.Archetypes.Elite
	tx, ty := w.ShipX, w.ShipY
	if en.Zombie {
		if hx, hy, ok := nearestHostile(en.X, en.Y, all); ok {
			tx, ty = hx, hy
		}
	}

	dx := tx - en.X
	dy := ty - en.Y
	dist := geom.Hypot(dx, dy)
	if dist > c.EngageDistance {
		speed := en.Radius * c.SpeedFactor
		en.X += dx / dist * speed
		en.Y += dy / dist * speed
	}
}

// updateExploder homes in without stopping. A zombie exploder with nothing to
// chase stays put.
func (e *Engine) updateExploder(en *record.Enemy, all []record.Enemy, w *World) {
	c := e.cfg.Archetypes.Exploder
	en.PulsePhase += c.PulseRate

	tx, ty := w.ShipX, w.ShipY
	if en.Zombie {
		hx, hy, ok := nearestHostile(en.X, en.Y, all)
		if !ok {
			return
		}
		tx, ty = hx, hy
	}

	dx := tx - en.X
	dy := ty - en.Y
	dist := geom.Hypot(dx, dy)
	if dist > 0 {
		speed := en.Radius * c.SpeedFactor
		en.X += dx / dist * speed
		en.Y += dy / dist * speed
	}
}

// nearestHostile finds the closest non-zombie enemy. On exact ties the first one found wins.
func nearestHostile(x, y float64, all []record.Enemy) (float64, float64, bool) {
	best := math.Inf(1)
	var bx, by float64
	found := false
	for i := range all {
		if all[i].Zombie {
			continue
		}
		d2 := geom.DistanceSq(x, y, all[i].X, all[i].Y)
		if d2 < best {
			best = d2
			bx, by = all[i].X, all[i].Y
			found = true
		}
	}
	return bx, by, found
}
