// Package frame wires the grid, enemy behavior and collision engines into one
// per-frame pipeline, and exposes them over flat float buffers for hosts.
package frame

import (
	"go.uber.org/zap"

	"spaceship-core/internal/collision"
	"spaceship-core/internal/config"
	"spaceship-core/internal/enemy"
	"spaceship-core/internal/logging"
	"spaceship-core/internal/record"
	"spaceship-core/internal/spatial"
)

// Input is one frame of typed host state
type Input struct {
	Enemies      []record.Enemy
	Ship         record.Body
	ShieldActive bool
	Modules      []record.Body
	Motions      []record.ProjectileMotion // projectiles as enemy behavior sees them
	Projectiles  []record.Projectile       // projectiles as collision sees them
	Powerups     []record.Body
	Stars        []record.Body
	Width        float64 // zero means the configured arena
	Height       float64
}

// Output is what one Step produced. Result is owned by the pipeline and
// overwritten by the next Step.
type Output struct {
	Frame   uint64
	Enemies []record.Enemy
	Targets []record.ModuleTarget
	Result  *collision.Result
	Digest  uint64
}

// Pipeline runs frames in order: grid rebuild, enemy update, module targeting,
// collisions. Not safe for concurrent use; run one per goroutine.
type Pipeline struct {
	cfg        *config.Config
	grid       *spatial.Grid
	enemies    *enemy.Engine
	collisions *collision.Engine
	positions  []record.Point
	frame      uint64
	logger     *zap.Logger
}

// New creates a pipeline. A nil cfg means config.Default(), a nil rng a
// source seeded with 1.
func New(cfg *config.Config, rng enemy.Rand, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logging.OrNop(logger)
	return &Pipeline{
		cfg:        cfg,
		grid:       spatial.New(cfg.Grid.CellSize),
		enemies:    enemy.NewEngine(cfg, rng, logger.Named("enemy")),
		collisions: collision.NewEngine(logger.Named("collision")),
		positions:  make([]record.Point, 0, 256),
		logger:     logger,
	}
}

// Frame returns how many frames Step has run
func (p *Pipeline) Frame() uint64 {
	return p.frame
}

// Grid returns the enemy grid as of the last rebuild
func (p *Pipeline) Grid() *spatial.Grid {
	return p.grid
}

// Step runs one full frame
func (p *Pipeline) Step(in Input) Output {
	p.frame++

	p.positions = p.positions[:0]
	for i := range in.Enemies {
		p.positions = append(p.positions, record.Point{X: in.Enemies[i].X, Y: in.Enemies[i].Y})
	}
	p.grid.Rebuild(p.positions)

	w, h := in.Width, in.Height
	if w <= 0 || h <= 0 {
		w, h = p.cfg.Arena.Width, p.cfg.Arena.Height
	}
	updated := p.enemies.Update(in.Enemies, enemy.World{
		ShipX:        in.Ship.X,
		ShipY:        in.Ship.Y,
		ShipRadius:   in.Ship.Radius,
		Modules:      in.Modules,
		Projectiles:  in.Motions,
		Width:        w,
		Height:       h,
		ShieldActive: in.ShieldActive,
	})

	targets := enemy.FindModuleTargets(in.Modules, updated)

	c := p.collisions
	boxes := c.EnsureEnemies(len(updated))
	for i := range updated {
		boxes[i] = updated[i].Hitbox()
	}
	copy(c.EnsureProjectiles(len(in.Projectiles)), in.Projectiles)
	copy(c.EnsureModules(len(in.Modules)), in.Modules)
	copy(c.EnsurePowerups(len(in.Powerups)), in.Powerups)
	copy(c.EnsureStars(len(in.Stars)), in.Stars)
	c.SetShip(in.Ship)
	c.Check(collision.Counts{
		Projectiles: len(in.Projectiles),
		Enemies:     len(updated),
		Modules:     len(in.Modules),
		Powerups:    len(in.Powerups),
		Stars:       len(in.Stars),
	}, in.ShieldActive)

	out := Output{
		Frame:   p.frame,
		Enemies: updated,
		Targets: targets,
		Result:  c.Result(),
		Digest:  record.Digest(updated),
	}
	if ce := p.logger.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(
			zap.Uint64("frame", out.Frame),
			zap.Int("enemies", len(updated)),
			zap.Int("cells", p.grid.Cells()),
			zap.Int("removed", len(out.Result.Removed)),
			zap.Int("hits", len(out.Result.EnemyHits)),
			zap.Uint64("digest", out.Digest),
		)
	}
	return out
}
