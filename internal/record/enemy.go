// Package record defines the named-field records the simulation core works on
// and their lossless flat encodings used at the host boundary.
package record

// EnemyStride is the number of floats per enemy record
const EnemyStride = 21

// Archetype identifies an enemy behavior class
type Archetype int

const (
	Basic    Archetype = 0
	Elite    Archetype = 1
	Rammer   Archetype = 2
	Exploder Archetype = 3
)

// ArchetypeFromTag maps a boundary tag to an archetype; unknown tags are Basic
func ArchetypeFromTag(v float64) Archetype {
	switch a := Archetype(int(v)); a {
	case Basic, Elite, Rammer, Exploder:
		return a
	default:
		return Basic
	}
}

// ParseArchetype maps a lowercase archetype name to its value; unknown names are Basic
func ParseArchetype(name string) Archetype {
	switch name {
	case "elite":
		return Elite
	case "rammer":
		return Rammer
	case "exploder":
		return Exploder
	default:
		return Basic
	}
}

func (a Archetype) String() string {
	switch a {
	case Elite:
		return "elite"
	case Rammer:
		return "rammer"
	case Exploder:
		return "exploder"
	default:
		return "basic"
	}
}

// Enemy is the full per-enemy state read and written by the behavior engine.
// Timers count frames.
type Enemy struct {
	X, Y             float64
	VX, VY           float64
	Archetype        Archetype
	Zombie           bool
	Stealth          bool
	Radius           float64
	HP               float64
	MaxHP            float64
	ShootCooldown    float64
	Angle            float64
	BounceBoost      float64
	HitCooldown      float64
	ChargeCooldown   float64
	ChargeFrames     float64
	Aggression       float64
	PulsePhase       float64
	ZombieLifetime   float64
	StealthWavePhase float64
	SplitLevel       float64
}

// Speed returns the magnitude of the enemy velocity
func (e *Enemy) Speed() float64 {
	return hypot(e.VX, e.VY)
}

// Hitbox projects the enemy onto the narrower collision view
func (e *Enemy) Hitbox() Hitbox {
	return Hitbox{X: e.X, Y: e.Y, Radius: e.Radius, Zombie: e.Zombie}
}

// DecodeEnemy reads one record from a slice of at least EnemyStride floats
func DecodeEnemy(d []float64) Enemy {
	_ = d[EnemyStride-1]
	return Enemy{
		X:                d[0],
		Y:                d[1],
		VX:               d[2],
		VY:               d[3],
		Archetype:        ArchetypeFromTag(d[4]),
		Zombie:           flag(d[5]),
		Stealth:          flag(d[6]),
		Radius:           d[7],
		HP:               d[8],
		MaxHP:            d[9],
		ShootCooldown:    d[10],
		Angle:            d[11],
		BounceBoost:      d[12],
		HitCooldown:      d[13],
		ChargeCooldown:   d[14],
		ChargeFrames:     d[15],
		Aggression:       d[16],
		PulsePhase:       d[17],
		ZombieLifetime:   d[18],
		StealthWavePhase: d[19],
		SplitLevel:       d[20],
	}
}

// AppendEnemy appends the flat encoding of e to dst
func AppendEnemy(dst []float64, e Enemy) []float64 {
	return append(dst,
		e.X, e.Y, e.VX, e.VY,
		float64(e.Archetype),
		unflag(e.Zombie),
		unflag(e.Stealth),
		e.Radius, e.HP, e.MaxHP,
		e.ShootCooldown, e.Angle,
		e.BounceBoost, e.HitCooldown, e.ChargeCooldown, e.ChargeFrames,
		e.Aggression, e.PulsePhase, e.ZombieLifetime, e.StealthWavePhase, e.SplitLevel,
	)
}

// DecodeEnemies decodes a flat enemy buffer. It panics with *StrideError on a ragged buffer.
func DecodeEnemies(data []float64) []Enemy {
	n := checkStride("enemy", data, EnemyStride)
	out := make([]Enemy, n)
	for i := range out {
		out[i] = DecodeEnemy(data[i*EnemyStride : (i+1)*EnemyStride])
	}
	return out
}

// EncodeEnemies flattens enemies in order
func EncodeEnemies(enemies []Enemy) []float64 {
	out := make([]float64, 0, len(enemies)*EnemyStride)
	for _, e := range enemies {
		out = AppendEnemy(out, e)
	}
	return out
}
