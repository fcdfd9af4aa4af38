package enemy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaceship-core/internal/config"
	"spaceship-core/internal/record"
)

// seqRand replays a fixed sequence of values, cycling when exhausted
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// never returns a value above every trigger probability
func never() Rand { return &seqRand{vals: []float64{0.99}} }

func arena() World {
	return World{ShipX: 400, ShipY: 300, ShipRadius: 20, Width: 800, Height: 600}
}

func TestZombieExpiryFreezesState(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	for _, a := range []record.Archetype{record.Basic, record.Elite, record.Rammer, record.Exploder} {
		in := record.Enemy{
			X: 200, Y: 200, VX: 3, VY: 4, Archetype: a, Radius: 20,
			HP: 50, MaxHP: 50, Zombie: true, ZombieLifetime: 1, ShootCooldown: 10, Angle: 0.3,
		}
		out := eng.Update([]record.Enemy{in}, arena())[0]

		assert.Equal(t, 0.0, out.HP, a.String())
		assert.Equal(t, 0.0, out.ZombieLifetime, a.String())
		assert.Equal(t, in.X, out.X, a.String())
		assert.Equal(t, in.Y, out.Y, a.String())
		assert.Equal(t, in.VX, out.VX, a.String())
		assert.Equal(t, in.Angle, out.Angle, a.String())
		assert.Equal(t, in.ShootCooldown, out.ShootCooldown, a.String())
	}
}

func TestZombieLifetimeCountsDown(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	in := record.Enemy{X: 300, Y: 300, Archetype: record.Basic, Radius: 15, HP: 5, Zombie: true, ZombieLifetime: 10}
	out := eng.Update([]record.Enemy{in}, arena())[0]
	assert.Equal(t, 9.0, out.ZombieLifetime)
	assert.Equal(t, 5.0, out.HP)
}

func TestBasicWanders(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	in := record.Enemy{X: 400, Y: 300, Archetype: record.Basic, Radius: 15, Angle: 1}
	out := eng.Update([]record.Enemy{in}, arena())[0]

	assert.InDelta(t, 1.02, out.Angle, 1e-12)
	speed := in.Radius * 0.133
	assert.InDelta(t, in.X+math.Cos(out.Angle)*speed, out.X, 1e-12)
	assert.InDelta(t, in.Y+math.Sin(out.Angle)*speed, out.Y, 1e-12)
}

func TestBasicReflectsAtBoundary(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	// Past the right edge: angle mirrors across the vertical axis
	in := record.Enemy{X: 799, Y: 300, Archetype: record.Basic, Radius: 15, Angle: 0}
	out := eng.Update([]record.Enemy{in}, arena())[0]
	assert.InDelta(t, math.Pi-0.02, out.Angle, 1e-12)

	// Past the top edge: angle negates
	in = record.Enemy{X: 400, Y: 2, Archetype: record.Basic, Radius: 15, Angle: -math.Pi / 2}
	out = eng.Update([]record.Enemy{in}, arena())[0]
	assert.InDelta(t, math.Pi/2-0.02, out.Angle, 1e-12)
}

func TestElitePursuesUntilEngaged(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	w := arena()

	far := record.Enemy{X: 100, Y: 300, Archetype: record.Elite, Radius: 25}
	out := eng.Update([]record.Enemy{far}, w)[0]
	before := math.Hypot(w.ShipX-far.X, w.ShipY-far.Y)
	after := math.Hypot(w.ShipX-out.X, w.ShipY-out.Y)
	assert.Less(t, after, before)
	assert.InDelta(t, 25*0.04, before-after, 1e-9)

	near := record.Enemy{X: 250, Y: 300, Archetype: record.Elite, Radius: 25}
	out = eng.Update([]record.Enemy{near}, w)[0]
	assert.Equal(t, near.X, out.X)
	assert.Equal(t, near.Y, out.Y)
}

func TestZombieEliteHuntsNearestHostile(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	enemies := []record.Enemy{
		{X: 100, Y: 100, Archetype: record.Elite, Radius: 25, Zombie: true, ZombieLifetime: 100},
		{X: 100, Y: 500, Archetype: record.Basic, Radius: 15},                                    // nearest hostile
		{X: 100, Y: 120, Archetype: record.Basic, Radius: 15, Zombie: true, ZombieLifetime: 100}, // zombie, ignored
		{X: 700, Y: 500, Archetype: record.Basic, Radius: 15},
	}
	out := eng.Update(enemies, arena())[0]
	assert.InDelta(t, 100.0, out.X, 1e-9)
	assert.InDelta(t, 101.0, out.Y, 1e-9)
}

func TestZombieEliteFallsBackToShip(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	in := record.Enemy{X: 100, Y: 300, Archetype: record.Elite, Radius: 25, Zombie: true, ZombieLifetime: 100}
	out := eng.Update([]record.Enemy{in}, arena())[0]
	assert.InDelta(t, 101.0, out.X, 1e-9)
}

func TestExploderHomesAndClamps(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	w := arena()
	in := record.Enemy{X: 300, Y: 300, Archetype: record.Exploder, Radius: 55}
	out := eng.Update([]record.Enemy{in}, w)[0]
	assert.InDelta(t, 300+55*0.0145, out.X, 1e-9)
	assert.InDelta(t, 0.1, out.PulsePhase, 1e-12)

	// Outside the arena: hard clamp, no bounce
	in = record.Enemy{X: -50, Y: 900, Archetype: record.Exploder, Radius: 55, Angle: 0.5}
	out = eng.Update([]record.Enemy{in}, w)[0]
	assert.Equal(t, 55.0, out.X)
	assert.Equal(t, 600-55.0, out.Y)
	assert.Equal(t, 0.5, out.Angle)
}

func TestZombieExploderWithoutHostilesHolds(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	in := record.Enemy{X: 300, Y: 300, Archetype: record.Exploder, Radius: 55, Zombie: true, ZombieLifetime: 50}
	out := eng.Update([]record.Enemy{in}, arena())[0]
	assert.Equal(t, in.X, out.X)
	assert.Equal(t, in.Y, out.Y)
	assert.InDelta(t, 0.1, out.PulsePhase, 1e-12)
}

func TestShootCooldownTicks(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	out := eng.Update([]record.Enemy{
		{X: 400, Y: 200, Archetype: record.Elite, Radius: 25, ShootCooldown: 3},
		{X: 400, Y: 200, Archetype: record.Elite, Radius: 25, ShootCooldown: 0},
	}, arena())
	assert.Equal(t, 2.0, out[0].ShootCooldown)
	assert.Equal(t, 0.0, out[1].ShootCooldown)
}

func TestUpdateKeepsOrderAndInput(t *testing.T) {
	eng := NewEngine(nil, never(), nil)
	in := []record.Enemy{
		{X: 100, Y: 100, Archetype: record.Basic, Radius: 15},
		{X: 200, Y: 200, Archetype: record.Rammer, Radius: 20},
		{X: 300, Y: 300, Archetype: record.Exploder, Radius: 55},
	}
	snapshot := append([]record.Enemy(nil), in...)
	out := eng.Update(in, arena())
	require.Len(t, out, 3)
	assert.Equal(t, snapshot, in, "input must not be mutated")
	for i := range out {
		assert.Equal(t, in[i].Archetype, out[i].Archetype)
	}
}

func TestUpdateIsDeterministic(t *testing.T) {
	in := []record.Enemy{
		{X: 100, Y: 100, VX: 2, VY: 1, Archetype: record.Rammer, Radius: 20, ChargeCooldown: 5},
		{X: 600, Y: 100, Archetype: record.Elite, Radius: 25, Zombie: true, ZombieLifetime: 40},
		{X: 300, Y: 500, Archetype: record.Exploder, Radius: 55},
		{X: 700, Y: 400, Archetype: record.Basic, Radius: 15, Angle: 2},
	}
	w := arena()
	w.Projectiles = []record.ProjectileMotion{{X: 120, Y: 150, VX: 0, VY: -8, Owner: record.OwnerPlayer}}

	a := NewEngine(nil, never(), nil).Update(in, w)
	b := NewEngine(nil, never(), nil).Update(in, w)
	assert.Equal(t, record.Digest(a), record.Digest(b))
	assert.Equal(t, record.EncodeEnemies(a), record.EncodeEnemies(b))
}

func TestFindModuleTargets(t *testing.T) {
	enemies := []record.Enemy{
		{X: 10, Y: 0, Zombie: true},
		{X: 50, Y: 0},
		{X: 0, Y: 30},
	}
	got := FindModuleTargets([]record.Body{{X: 0, Y: 0, Radius: 8}, {X: 60, Y: 0, Radius: 8}}, enemies)
	require.Len(t, got, 2)
	assert.Equal(t, record.ModuleTarget{Found: true, X: 0, Y: 30, Index: 2}, got[0])
	assert.Equal(t, record.ModuleTarget{Found: true, X: 50, Y: 0, Index: 1}, got[1])

	none := FindModuleTargets([]record.Body{{X: 0, Y: 0}}, enemies[:1])
	assert.Equal(t, record.NoTarget, none[0])
}

func TestShooting(t *testing.T) {
	assert.InDelta(t, math.Pi/2, ShootAngle(0, 0, 0, 10), 1e-12)
	assert.True(t, ShouldShoot(0, 0, 30, 40, 49))
	assert.False(t, ShouldShoot(0, 0, 30, 40, 50))
}

func TestEngineDefaults(t *testing.T) {
	eng := NewEngine(nil, nil, nil)
	assert.Equal(t, config.Default(), eng.cfg)
	assert.NotNil(t, eng.rng)
	assert.NotNil(t, eng.logger)
}
