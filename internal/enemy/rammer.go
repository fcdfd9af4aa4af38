package enemy

import (
	"math"

	"go.uber.org/zap"

	"spaceship-core/internal/geom"
	"spaceship-core/internal/record"
)

// updateRammer runs the rammer state machine. Step order matters: anti-orbit and
// the forward-speed floor must see the velocity left by dodge and charge.
func (e *Engine) updateRammer(idx int, en *record.Enemy, all []record.Enemy, w *World) {
	c := e.cfg.Rammer

	// Tick timers
	if en.HitCooldown > 0 {
		en.HitCooldown--
	}
	if en.ChargeCooldown > 0 {
		en.ChargeCooldown--
	}
	if en.ChargeFrames > 0 {
		en.ChargeFrames--
	}
	if en.BounceBoost > 0 {
		en.BounceBoost--
	}

	// Forward vector
	fvx, fvy := en.VX, en.VY
	if math.Abs(fvx)+math.Abs(fvy) < 0.001 {
		fvx, fvy = 1, 0
	}
	fx, fy := geom.NormalizeMin(fvx, fvy, 1)

	// Target: nearest hostile for zombies, otherwise an overshoot of the ship
	var tx, ty float64
	if en.Zombie {
		var ok bool
		if tx, ty, ok = nearestHostile(en.X, en.Y, all); !ok {
			tx, ty = en.X, en.Y
		}
	} else {
		tx, ty = w.ShipX*c.PredictFactor, w.ShipY*c.PredictFactor
	}
	dx, dy := geom.NormalizeMin(tx-en.X, ty-en.Y, 1)

	distToShip := geom.Distance(en.X, en.Y, w.ShipX, w.ShipY)

	// Dodge incoming player and module shots, but not while breaking an orbit
	if distToShip >= c.OrbitBreakRadius {
		for _, p := range w.Projectiles {
			if !p.Owner.Dodgeable() {
				continue
			}
			pdx := p.X - en.X
			pdy := p.Y - en.Y
			if geom.Hypot(pdx, pdy) >= c.DodgeDistance {
				continue
			}
			pvx, pvy := geom.NormalizeMin(p.VX, p.VY, 1)
			closing := pdx*pvx + pdy*pvy
			if closing < c.DodgeClosingLimit {
				en.VX -= pvx * c.DodgeForce
				en.VY -= pvy * c.DodgeForce
			}
		}
	}

	// Steering
	dirx, diry := geom.NormalizeMin(
		fx*(1-c.Steer)+dx*c.Steer,
		fy*(1-c.Steer)+dy*c.Steer,
		1,
	)

	// Charge
	if en.ChargeFrames > 0 {
		en.VX += dirx * (c.Thrust * c.ChargeThrust)
		en.VY += diry * (c.Thrust * c.ChargeThrust)
		en.BounceBoost = math.Max(en.BounceBoost, c.ChargeFrames)
	} else {
		en.VX += dirx * c.Thrust
		en.VY += diry * c.Thrust

		if en.ChargeCooldown <= 0 && distToShip < c.ChargeDistance && e.rng.Float64() < c.ChargeProbability {
			en.ChargeFrames = c.ChargeFrames
			en.ChargeCooldown = c.ChargeCooldownMin + e.rng.Float64()*c.ChargeCooldownSpread
			en.VX += dirx * c.ChargeSpeedBonus
			en.VY += diry * c.ChargeSpeedBonus
			e.logger.Debug("rammer charge",
				zap.Int("enemy", idx),
				zap.Float64("cooldown", en.ChargeCooldown),
				zap.Float64("dist", distToShip))
		}
	}

	// Anti-orbit: damp circling and steer straight in
	if distToShip < c.OrbitBreakRadius {
		d := math.Max(distToShip, 1)
		nx := (w.ShipX - en.X) / d
		ny := (w.ShipY - en.Y) / d
		vdotn := en.VX*nx + en.VY*ny
		vrx, vry := nx*vdotn, ny*vdotn
		vtx, vty := en.VX-vrx, en.VY-vry
		en.VX = vrx + vtx*c.OrbitTangentDamp + nx*c.OrbitInwardNudge
		en.VY = vry + vty*c.OrbitTangentDamp + ny*c.OrbitInwardNudge

		dirx, diry = geom.NormalizeMin(
			dirx*(1-c.CloseSteer)+nx*c.CloseSteer,
			diry*(1-c.CloseSteer)+ny*c.CloseSteer,
			1,
		)
	}

	// Damping and speed cap
	en.VX *= c.Damping
	en.VY *= c.Damping
	maxV := c.BaseMax
	if en.BounceBoost > 0 || en.ChargeFrames > 0 {
		maxV = c.BoostMax
	}
	en.VX, en.VY = geom.ClampLength(en.VX, en.VY, maxV)

	// Keep moving when engaging
	if distToShip < c.MinForwardDistance {
		if v := en.Speed(); v < c.MinForward {
			en.VX += dirx * (c.MinForward - v)
			en.VY += diry * (c.MinForward - v)
		}
	}

	en.X += en.VX
	en.Y += en.VY

	e.bounce(en, w.Width, w.Height)
}

// bounce reflects the rammer off arena edges with restitution above one,
// which deliberately gains energy, then grants a boost window.
func (e *Engine) bounce(en *record.Enemy, width, height float64) {
	c := e.cfg.Rammer
	bounced := false

	if en.X < en.Radius {
		en.X = en.Radius
		en.VX = -en.VX * c.Restitution
		bounced = true
	}
	if en.X > width-en.Radius {
		en.X = width - en.Radius
		en.VX = -en.VX * c.Restitution
		bounced = true
	}
	if en.Y < en.Radius {
		en.Y = en.Radius
		en.VY = -en.VY * c.Restitution
		bounced = true
	}
	if en.Y > height-en.Radius {
		en.Y = height - en.Radius
		en.VY = -en.VY * c.Restitution
		bounced = true
	}

	if bounced {
		en.BounceBoost = c.BoostFrames
		en.HitCooldown = c.HitCooldown
		en.VX, en.VY = geom.ClampLength(en.VX, en.VY, c.BoostMax)
	}
}
