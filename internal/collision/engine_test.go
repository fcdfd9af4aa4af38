package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaceship-core/internal/record"
)

func shot(x, y float64, owner record.Owner, dmg float64) record.Projectile {
	return record.Projectile{X: x, Y: y, Radius: 3, Damage: dmg, Owner: owner}
}

func farShip() record.Body {
	return record.Body{X: -5000, Y: -5000, Radius: 20}
}

func TestPlayerShotHitsEnemy(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(100, 100, record.OwnerPlayer, 10)},
		Enemies:     []record.Hitbox{{X: 105, Y: 100, Radius: 15}},
		Ship:        farShip(),
	})
	e.Check(c, false)

	assert.Equal(t, []int{0}, e.RemovedProjectiles())
	assert.Equal(t, []Hit{{Enemy: 0, Damage: 10}}, e.EnemyHits())
	assert.Equal(t, []float64{0, 10}, e.EnemyHitsFlat())
	assert.False(t, e.ShipHit())
}

func TestFirstEnemyByIndexWins(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(100, 100, record.OwnerModule, 4)},
		Enemies: []record.Hitbox{
			{X: 110, Y: 100, Radius: 10},
			{X: 100, Y: 100, Radius: 10},
		},
		Ship: farShip(),
	})
	e.Check(c, false)

	require.Len(t, e.EnemyHits(), 1)
	assert.Equal(t, 0, e.EnemyHits()[0].Enemy)
}

func TestTouchingIsNotOverlap(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerPlayer, 1)},
		Enemies:     []record.Hitbox{{X: 13, Y: 0, Radius: 10}},
		Powerups:    []record.Body{{X: 30, Y: 0, Radius: 10}},
		Ship:        record.Body{X: 0, Y: 0, Radius: 20},
	})
	e.Check(c, false)

	assert.Empty(t, e.EnemyHits())
	assert.Empty(t, e.RemovedProjectiles())
	assert.Empty(t, e.CollectedPowerups())
}

func TestZombieShotsPassThroughZombies(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerZombie, 5)},
		Enemies: []record.Hitbox{
			{X: 0, Y: 0, Radius: 10, Zombie: true},
			{X: 2, Y: 0, Radius: 10},
		},
		Ship: farShip(),
	})
	e.Check(c, false)

	assert.Equal(t, []Hit{{Enemy: 1, Damage: 5}}, e.EnemyHits())
}

func TestEnemyShotHitsShip(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{
			shot(0, 0, record.OwnerEnemy, 7),
			shot(5, 0, record.OwnerEnemy, 3),
		},
		Ship: record.Body{X: 0, Y: 0, Radius: 20},
	})
	e.Check(c, false)

	assert.True(t, e.ShipHit())
	assert.InDelta(t, 10.0, e.ShipDamage(), 1e-9)
	assert.Equal(t, []int{0, 1}, e.RemovedProjectiles())
}

func TestShieldAbsorbsButConsumes(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerEnemy, 7)},
		Ship:        record.Body{X: 0, Y: 0, Radius: 20},
	})
	e.Check(c, true)

	assert.False(t, e.ShipHit())
	assert.Zero(t, e.ShipDamage())
	assert.Equal(t, []int{0}, e.RemovedProjectiles())
}

func TestShipBeforeModuleBeforeZombie(t *testing.T) {
	e := NewEngine(nil)
	in := Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerEnemy, 7)},
		Modules:     []record.Body{{X: 0, Y: 0, Radius: 10}},
		Enemies:     []record.Hitbox{{X: 0, Y: 0, Radius: 10, Zombie: true}},
		Ship:        record.Body{X: 0, Y: 0, Radius: 20},
	}
	e.Check(e.Load(in), false)
	assert.True(t, e.ShipHit())
	assert.Empty(t, e.EnemyHits())

	// module absorbs without damaging anything
	in.Ship = farShip()
	e.Check(e.Load(in), false)
	assert.False(t, e.ShipHit())
	assert.Empty(t, e.EnemyHits())
	assert.Equal(t, []int{0}, e.RemovedProjectiles())

	in.Modules = nil
	e.Check(e.Load(in), false)
	assert.Equal(t, []Hit{{Enemy: 0, Damage: 7}}, e.EnemyHits())
}

func TestEnemyShotsIgnoreLivingEnemies(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerEnemy, 7)},
		Enemies:     []record.Hitbox{{X: 0, Y: 0, Radius: 10}},
		Ship:        farShip(),
	})
	e.Check(c, false)

	assert.Empty(t, e.EnemyHits())
	assert.Empty(t, e.RemovedProjectiles())
}

func TestPickups(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Powerups: []record.Body{{X: 10, Y: 0, Radius: 5}, {X: 100, Y: 0, Radius: 5}},
		Stars:    []record.Body{{X: 500, Y: 0, Radius: 5}, {X: 0, Y: 15, Radius: 5}},
		Ship:     record.Body{X: 0, Y: 0, Radius: 20},
	})
	e.Check(c, true)

	assert.Equal(t, []int{0}, e.CollectedPowerups())
	assert.Equal(t, []int{1}, e.CollectedStars())
}

func TestProjectileResolvedOnce(t *testing.T) {
	e := NewEngine(nil)
	projs := make([]record.Projectile, 0, 40)
	for i := 0; i < 40; i++ {
		owner := record.Owner(i % 4)
		projs = append(projs, shot(float64(i%5)*4, 0, owner, 1))
	}
	c := e.Load(Input{
		Projectiles: projs,
		Enemies: []record.Hitbox{
			{X: 0, Y: 0, Radius: 30},
			{X: 5, Y: 0, Radius: 30, Zombie: true},
		},
		Modules: []record.Body{{X: 0, Y: 0, Radius: 30}},
		Ship:    record.Body{X: 0, Y: 0, Radius: 30},
	})
	e.Check(c, false)

	seen := make(map[int]bool)
	for _, idx := range e.RemovedProjectiles() {
		assert.False(t, seen[idx], "projectile %d removed twice", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, 40)
	assert.Len(t, e.EnemyHits(), 30)
}

func TestCheckClearsPreviousResults(t *testing.T) {
	e := NewEngine(nil)
	c := e.Load(Input{
		Projectiles: []record.Projectile{shot(0, 0, record.OwnerEnemy, 7)},
		Stars:       []record.Body{{X: 0, Y: 0, Radius: 5}},
		Ship:        record.Body{X: 0, Y: 0, Radius: 20},
	})
	e.Check(c, false)
	require.True(t, e.ShipHit())

	e.Check(Counts{}, false)
	assert.False(t, e.ShipHit())
	assert.Zero(t, e.ShipDamage())
	assert.Empty(t, e.RemovedProjectiles())
	assert.Empty(t, e.CollectedStars())
	assert.Empty(t, e.EnemyHitsFlat())
}

func TestCountsLimitLiveEntries(t *testing.T) {
	e := NewEngine(nil)
	buf := e.EnsureProjectiles(3)
	buf[0] = shot(1000, 1000, record.OwnerPlayer, 1)
	buf[1] = shot(0, 0, record.OwnerPlayer, 1)
	buf[2] = shot(0, 0, record.OwnerPlayer, 1)
	e.EnsureEnemies(1)[0] = record.Hitbox{X: 0, Y: 0, Radius: 10}
	e.SetShip(farShip())

	e.Check(Counts{Projectiles: 2, Enemies: 1}, false)
	assert.Equal(t, []int{1}, e.RemovedProjectiles())
}

func TestCountOverCapacityPanics(t *testing.T) {
	e := NewEngine(nil)
	e.EnsureStars(2)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ce, ok := r.(*record.CapacityError)
		require.True(t, ok)
		assert.Equal(t, "star", ce.Kind)
		assert.Equal(t, 3, ce.Count)
		assert.Equal(t, 2, ce.Capacity)
	}()
	e.Check(Counts{Stars: 3}, false)
}

func TestEnsureKeepsContents(t *testing.T) {
	e := NewEngine(nil)
	e.EnsureModules(1)[0] = record.Body{X: 9, Y: 9, Radius: 9}
	grown := e.EnsureModules(1000)
	require.Len(t, grown, 1000)
	assert.Equal(t, record.Body{X: 9, Y: 9, Radius: 9}, grown[0])
	assert.Len(t, e.EnsureModules(2), 2)
}

func TestUnknownOwnerMatchesNoPhase(t *testing.T) {
	e := NewEngine(nil)
	projs := record.DecodeProjectiles([]float64{100, 100, 3, 25, 4})
	c := e.Load(Input{
		Projectiles: projs,
		Enemies: []record.Hitbox{
			{X: 100, Y: 100, Radius: 10},
			{X: 100, Y: 100, Radius: 10, Zombie: true},
		},
		Modules: []record.Body{{X: 100, Y: 100, Radius: 8}},
		Ship:    record.Body{X: 100, Y: 100, Radius: 20},
	})
	e.Check(c, false)

	assert.False(t, e.ShipHit())
	assert.Zero(t, e.ShipDamage())
	assert.Empty(t, e.RemovedProjectiles())
	assert.Empty(t, e.EnemyHits())
}
