package scenario

import (
	"math"

	"go.uber.org/zap"

	"spaceship-core/internal/geom"
	"spaceship-core/internal/record"
)

// contacts applies body contact after the core update: rammer bounce damage,
// shield repel, ramming and separation, and exploder blasts. Returns ship energy lost.
func (h *Host) contacts() float64 {
	lost := 0.0
	for i := range h.enemies {
		en := &h.enemies[i]
		if en.HP <= 0 {
			continue
		}
		switch en.Archetype {
		case record.Rammer:
			lost += h.rammerContacts(i, en)
		case record.Exploder:
			lost += h.exploderContacts(i, en)
		}
	}
	return lost
}

func (h *Host) rammerContacts(idx int, en *record.Enemy) float64 {
	rc := h.cfg.Rammer
	ct := h.sc.Contact
	ship := h.ship
	lost := 0.0

	// The core just bounced it off an edge; the boost timer was ticked before the bounce
	if en.BounceBoost == rc.BoostFrames {
		en.HP -= ct.SelfDamage
	}

	if h.sc.Ship.Shield {
		d := geom.Distance(en.X, en.Y, ship.X, ship.Y)
		repel := ship.Radius + ct.ShieldMargin + en.Radius
		if d < repel {
			nx, ny := unit(en.X-ship.X, en.Y-ship.Y, d)
			en.X = ship.X + nx*repel
			en.Y = ship.Y + ny*repel
			h.reflect(en, nx, ny)
			en.HP -= ct.SelfDamage
		}
	}

	d := geom.Distance(en.X, en.Y, ship.X, ship.Y)
	if !h.sc.Ship.Shield && en.HitCooldown == 0 && d < en.Radius+ship.Radius {
		fvx, fvy := en.VX, en.VY
		if math.Abs(fvx)+math.Abs(fvy) < 0.001 {
			fvx, fvy = 1, 0
		}
		fx, fy := unit(fvx, fvy, geom.Hypot(fvx, fvy))
		tx, ty := unit(ship.X-en.X, ship.Y-en.Y, d)
		tip := fx*tx+fy*ty > ct.TipAlign
		if tip {
			lost += ct.TipDamage
		}

		nx, ny := unit(en.X-ship.X, en.Y-ship.Y, d)
		h.reflect(en, nx, ny)
		en.X = ship.X + nx*(en.Radius+ship.Radius+1)
		en.Y = ship.Y + ny*(en.Radius+ship.Radius+1)
		if !tip {
			en.HP -= ct.SelfDamage
		}
		h.logger.Debug("rammer hit ship", zap.Int("enemy", idx), zap.Bool("tip", tip))
	}

	for j := range h.enemies {
		if j == idx || en.HitCooldown != 0 {
			continue
		}
		other := &h.enemies[j]
		d := geom.Distance(en.X, en.Y, other.X, other.Y)
		minD := en.Radius + other.Radius
		if d > 0 && d < minD {
			nx, ny := (en.X-other.X)/d, (en.Y-other.Y)/d
			push := (minD - d) * ct.SeparationPush
			en.X += nx * push
			en.Y += ny * push
			h.reflect(en, nx, ny)
			en.HP -= ct.SelfDamage
		}
	}
	return lost
}

// reflect mirrors the velocity about the contact normal with restitution and opens a boost window
func (h *Host) reflect(en *record.Enemy, nx, ny float64) {
	rc := h.cfg.Rammer
	dot := en.VX*nx + en.VY*ny
	en.VX = (en.VX - 2*dot*nx) * rc.Restitution
	en.VY = (en.VY - 2*dot*ny) * rc.Restitution
	en.BounceBoost = rc.BoostFrames
	en.HitCooldown = rc.HitCooldown
	en.VX, en.VY = geom.ClampLength(en.VX, en.VY, rc.BoostMax)
}

// exploderContacts detonates an exploder touching its target. A zombie blasts the
// last-indexed hostile it touches; otherwise the ship, then the first module touched,
// each cost energy unless the shield is up.
func (h *Host) exploderContacts(idx int, en *record.Enemy) float64 {
	ct := h.sc.Contact
	if en.Zombie {
		for j := len(h.enemies) - 1; j >= 0; j-- {
			other := &h.enemies[j]
			if j == idx || other.Zombie {
				continue
			}
			if geom.Overlaps(en.X, en.Y, en.Radius, other.X, other.Y, other.Radius) {
				other.HP -= ct.ZombieBlast
				en.HP = 0
				break
			}
		}
		return 0
	}

	lost := 0.0
	if geom.Overlaps(en.X, en.Y, en.Radius, h.ship.X, h.ship.Y, h.ship.Radius) {
		if !h.sc.Ship.Shield {
			lost += ct.ExplosionDamage
		}
		en.HP = 0
	}
	for _, m := range h.modules {
		if geom.Overlaps(en.X, en.Y, en.Radius, m.X, m.Y, m.Radius) {
			if !h.sc.Ship.Shield {
				lost += ct.ExplosionDamage
			}
			en.HP = 0
			break
		}
	}
	if en.HP == 0 {
		h.logger.Debug("exploder detonated", zap.Int("enemy", idx), zap.Float64("energy", lost))
	}
	return lost
}

// unit divides by d, treating a zero distance as one
func unit(dx, dy, d float64) (float64, float64) {
	if d == 0 {
		d = 1
	}
	return dx / d, dy / d
}
