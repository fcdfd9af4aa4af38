package record

import "strconv"

// ProjectileStride is the number of floats per projectile record, in both views
const ProjectileStride = 5

// Owner identifies who fired a projectile, which decides what it can damage
type Owner int

const (
	OwnerPlayer Owner = 0
	OwnerModule Owner = 1
	OwnerZombie Owner = 2
	OwnerEnemy  Owner = 3
)

// OwnerUnknown is what ParseOwner returns for a name it does not know
const OwnerUnknown Owner = -1

// OwnerFromTag maps a boundary tag to an owner. The tag is kept as is, so an
// unknown tag round-trips unchanged and matches no collision phase.
func OwnerFromTag(v float64) Owner {
	return Owner(int(v))
}

// ParseOwner maps a lowercase owner name to its value; unknown names are OwnerUnknown
func ParseOwner(name string) Owner {
	switch name {
	case "player":
		return OwnerPlayer
	case "module":
		return OwnerModule
	case "zombie":
		return OwnerZombie
	case "enemy":
		return OwnerEnemy
	default:
		return OwnerUnknown
	}
}

// Known reports whether o is one of the four owners
func (o Owner) Known() bool {
	return o >= OwnerPlayer && o <= OwnerEnemy
}

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerModule:
		return "module"
	case OwnerZombie:
		return "zombie"
	case OwnerEnemy:
		return "enemy"
	default:
		return "unknown(" + strconv.Itoa(int(o)) + ")"
	}
}

// Offensive reports whether the projectile damages non-zombie enemies
func (o Owner) Offensive() bool {
	return o == OwnerPlayer || o == OwnerModule || o == OwnerZombie
}

// Dodgeable reports whether rammers try to sidestep the projectile
func (o Owner) Dodgeable() bool {
	return o == OwnerPlayer || o == OwnerModule
}

// Projectile is the collision engine's view of a projectile
type Projectile struct {
	X, Y   float64
	Radius float64
	Damage float64
	Owner  Owner
}

// ProjectileMotion is the behavior engine's view of a projectile
type ProjectileMotion struct {
	X, Y   float64
	VX, VY float64
	Owner  Owner
}

// DecodeProjectiles decodes x, y, radius, damage, owner records
func DecodeProjectiles(data []float64) []Projectile {
	n := checkStride("projectile", data, ProjectileStride)
	out := make([]Projectile, n)
	for i := range out {
		o := i * ProjectileStride
		out[i] = Projectile{
			X:      data[o],
			Y:      data[o+1],
			Radius: data[o+2],
			Damage: data[o+3],
			Owner:  OwnerFromTag(data[o+4]),
		}
	}
	return out
}

// EncodeProjectiles flattens collision-view projectiles in order
func EncodeProjectiles(ps []Projectile) []float64 {
	out := make([]float64, 0, len(ps)*ProjectileStride)
	for _, p := range ps {
		out = append(out, p.X, p.Y, p.Radius, p.Damage, float64(p.Owner))
	}
	return out
}

// DecodeProjectileMotions decodes x, y, vx, vy, owner records
func DecodeProjectileMotions(data []float64) []ProjectileMotion {
	n := checkStride("projectile motion", data, ProjectileStride)
	out := make([]ProjectileMotion, n)
	for i := range out {
		o := i * ProjectileStride
		out[i] = ProjectileMotion{
			X:     data[o],
			Y:     data[o+1],
			VX:    data[o+2],
			VY:    data[o+3],
			Owner: OwnerFromTag(data[o+4]),
		}
	}
	return out
}

// EncodeProjectileMotions flattens behavior-view projectiles in order
func EncodeProjectileMotions(ps []ProjectileMotion) []float64 {
	out := make([]float64, 0, len(ps)*ProjectileStride)
	for _, p := range ps {
		out = append(out, p.X, p.Y, p.VX, p.VY, float64(p.Owner))
	}
	return out
}
