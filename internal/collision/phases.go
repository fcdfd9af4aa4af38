package collision

import (
	"spaceship-core/internal/geom"
	"spaceship-core/internal/record"
)

// offensiveHits resolves player, module and zombie projectiles against enemies.
// Each projectile takes the first enemy in index order it overlaps, not the closest.
// Zombie projectiles pass through zombies.
func offensiveHits(projs []record.Projectile, enemies []record.Hitbox, resolved []bool, res *Result) {
	for i := range projs {
		if resolved[i] {
			continue
		}
		p := &projs[i]
		if !p.Owner.Offensive() {
			continue
		}
		for j := range enemies {
			en := &enemies[j]
			if p.Owner == record.OwnerZombie && en.Zombie {
				continue
			}
			if geom.Overlaps(p.X, p.Y, p.Radius, en.X, en.Y, en.Radius) {
				resolved[i] = true
				res.Removed = append(res.Removed, i)
				res.EnemyHits = append(res.EnemyHits, Hit{Enemy: j, Damage: p.Damage})
				break
			}
		}
	}
}

// enemyShots resolves enemy projectiles against the ship, then modules, then zombies.
// A shielded ship still consumes the projectile. Module hits only consume it;
// the host applies module damage. Returns how many hits the shield absorbed.
func enemyShots(projs []record.Projectile, ship record.Body, modules []record.Body, enemies []record.Hitbox,
	shieldActive bool, resolved []bool, res *Result) int {
	absorbed := 0
	for i := range projs {
		if resolved[i] {
			continue
		}
		p := &projs[i]
		if p.Owner != record.OwnerEnemy {
			continue
		}

		if geom.Overlaps(p.X, p.Y, p.Radius, ship.X, ship.Y, ship.Radius) {
			if shieldActive {
				absorbed++
			} else {
				res.ShipHit = true
				res.ShipDamage += p.Damage
			}
			resolved[i] = true
			res.Removed = append(res.Removed, i)
			continue
		}

		for m := range modules {
			if geom.Overlaps(p.X, p.Y, p.Radius, modules[m].X, modules[m].Y, modules[m].Radius) {
				resolved[i] = true
				res.Removed = append(res.Removed, i)
				break
			}
		}
		if resolved[i] {
			continue
		}

		for j := range enemies {
			en := &enemies[j]
			if !en.Zombie {
				continue
			}
			if geom.Overlaps(p.X, p.Y, p.Radius, en.X, en.Y, en.Radius) {
				resolved[i] = true
				res.Removed = append(res.Removed, i)
				res.EnemyHits = append(res.EnemyHits, Hit{Enemy: j, Damage: p.Damage})
				break
			}
		}
	}
	return absorbed
}

// collect appends the index of every pickup touching the ship
func collect(ship record.Body, pickups []record.Body, dst []int) []int {
	for i := range pickups {
		if geom.Overlaps(ship.X, ship.Y, ship.Radius, pickups[i].X, pickups[i].Y, pickups[i].Radius) {
			dst = append(dst, i)
		}
	}
	return dst
}
