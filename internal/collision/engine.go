// Package collision resolves one frame of projectile hits and pickup collection.
package collision

import (
	"go.uber.org/zap"

	"spaceship-core/internal/logging"
	"spaceship-core/internal/record"
)

// Counts says how many leading entries of each buffer are live this frame
type Counts struct {
	Projectiles int
	Enemies     int
	Modules     int
	Powerups    int
	Stars       int
}

// Hit is damage dealt to one enemy by one projectile
type Hit struct {
	Enemy  int
	Damage float64
}

// Result is the outcome of one Check. Its slices are reused by the next Check.
type Result struct {
	Removed    []int // projectile indices, in resolution order
	EnemyHits  []Hit
	ShipHit    bool
	ShipDamage float64
	Powerups   []int
	Stars      []int
}

// Engine owns the per-frame input buffers and result lists. Buffers are grown
// by the caller, filled, then resolved by Check. Not safe for concurrent use.
type Engine struct {
	projectiles []record.Projectile
	hitboxes    []record.Hitbox
	modules     []record.Body
	powerups    []record.Body
	stars       []record.Body
	ship        record.Body

	res    Result
	logger *zap.Logger
}

// NewEngine creates an engine with room for a typical frame
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		projectiles: make([]record.Projectile, 0, 400),
		hitboxes:    make([]record.Hitbox, 0, 250),
		modules:     make([]record.Body, 0, 100),
		powerups:    make([]record.Body, 0, 100),
		stars:       make([]record.Body, 0, 100),
		res: Result{
			Removed:   make([]int, 0, 100),
			EnemyHits: make([]Hit, 0, 100),
			Powerups:  make([]int, 0, 20),
			Stars:     make([]int, 0, 20),
		},
		logger: logging.OrNop(logger),
	}
}

func grow[T any](buf []T, n int) []T {
	if len(buf) < n {
		if cap(buf) >= n {
			buf = buf[:n]
		} else {
			buf = append(buf[:cap(buf)], make([]T, n-cap(buf))...)
		}
	}
	return buf
}

// EnsureProjectiles grows the projectile buffer to at least n and returns its first n entries to fill
func (e *Engine) EnsureProjectiles(n int) []record.Projectile {
	e.projectiles = grow(e.projectiles, n)
	return e.projectiles[:n]
}

// EnsureEnemies grows the enemy hitbox buffer to at least n and returns its first n entries to fill
func (e *Engine) EnsureEnemies(n int) []record.Hitbox {
	e.hitboxes = grow(e.hitboxes, n)
	return e.hitboxes[:n]
}

// EnsureModules grows the module buffer to at least n and returns its first n entries to fill
func (e *Engine) EnsureModules(n int) []record.Body {
	e.modules = grow(e.modules, n)
	return e.modules[:n]
}

// EnsurePowerups grows the powerup buffer to at least n and returns its first n entries to fill
func (e *Engine) EnsurePowerups(n int) []record.Body {
	e.powerups = grow(e.powerups, n)
	return e.powerups[:n]
}

// EnsureStars grows the star buffer to at least n and returns its first n entries to fill
func (e *Engine) EnsureStars(n int) []record.Body {
	e.stars = grow(e.stars, n)
	return e.stars[:n]
}

// SetShip sets the ship position and radius
func (e *Engine) SetShip(ship record.Body) {
	e.ship = ship
}

// Input is a whole frame of collision-view entities
type Input struct {
	Projectiles []record.Projectile
	Enemies     []record.Hitbox
	Modules     []record.Body
	Powerups    []record.Body
	Stars       []record.Body
	Ship        record.Body
}

// Load copies a frame into the engine buffers and returns the matching counts
func (e *Engine) Load(in Input) Counts {
	copy(e.EnsureProjectiles(len(in.Projectiles)), in.Projectiles)
	copy(e.EnsureEnemies(len(in.Enemies)), in.Enemies)
	copy(e.EnsureModules(len(in.Modules)), in.Modules)
	copy(e.EnsurePowerups(len(in.Powerups)), in.Powerups)
	copy(e.EnsureStars(len(in.Stars)), in.Stars)
	e.SetShip(in.Ship)
	return Counts{
		Projectiles: len(in.Projectiles),
		Enemies:     len(in.Enemies),
		Modules:     len(in.Modules),
		Powerups:    len(in.Powerups),
		Stars:       len(in.Stars),
	}
}

func checkCapacity(kind string, count, capacity int) {
	if count < 0 || count > capacity {
		panic(&record.CapacityError{Kind: kind, Count: count, Capacity: capacity})
	}
}

// Check resolves the first Counts entries of every buffer. It panics with
// *record.CapacityError when a count exceeds its buffer; grow buffers first.
// Previous results are discarded.
func (e *Engine) Check(c Counts, shieldActive bool) {
	checkCapacity("projectile", c.Projectiles, len(e.projectiles))
	checkCapacity("enemy", c.Enemies, len(e.hitboxes))
	checkCapacity("module", c.Modules, len(e.modules))
	checkCapacity("powerup", c.Powerups, len(e.powerups))
	checkCapacity("star", c.Stars, len(e.stars))

	e.res.Removed = e.res.Removed[:0]
	e.res.EnemyHits = e.res.EnemyHits[:0]
	e.res.ShipHit = false
	e.res.ShipDamage = 0
	e.res.Powerups = e.res.Powerups[:0]
	e.res.Stars = e.res.Stars[:0]

	projs := e.projectiles[:c.Projectiles]
	enemies := e.hitboxes[:c.Enemies]
	resolved := make([]bool, len(projs))

	offensiveHits(projs, enemies, resolved, &e.res)
	absorbed := enemyShots(projs, e.ship, e.modules[:c.Modules], enemies, shieldActive, resolved, &e.res)
	e.res.Powerups = collect(e.ship, e.powerups[:c.Powerups], e.res.Powerups)
	e.res.Stars = collect(e.ship, e.stars[:c.Stars], e.res.Stars)

	if absorbed > 0 {
		e.logger.Debug("shield absorbed hits", zap.Int("count", absorbed))
	}
}

// Result returns the last Check's outcome
func (e *Engine) Result() *Result {
	return &e.res
}

// RemovedProjectiles returns projectile indices consumed by the last Check
func (e *Engine) RemovedProjectiles() []int {
	return e.res.Removed
}

// EnemyHits returns the (enemy, damage) pairs of the last Check
func (e *Engine) EnemyHits() []Hit {
	return e.res.EnemyHits
}

// EnemyHitsFlat encodes the enemy hits as index, damage, index, damage, ...
func (e *Engine) EnemyHitsFlat() []float64 {
	out := make([]float64, 0, len(e.res.EnemyHits)*2)
	for _, h := range e.res.EnemyHits {
		out = append(out, float64(h.Enemy), h.Damage)
	}
	return out
}

// ShipHit reports whether an unshielded ship was hit in the last Check
func (e *Engine) ShipHit() bool {
	return e.res.ShipHit
}

// ShipDamage is the total damage dealt to the ship in the last Check
func (e *Engine) ShipDamage() float64 {
	return e.res.ShipDamage
}

// CollectedPowerups returns powerup indices collected in the last Check
func (e *Engine) CollectedPowerups() []int {
	return e.res.Powerups
}

// CollectedStars returns star indices collected in the last Check
func (e *Engine) CollectedStars() []int {
	return e.res.Stars
}
