package scenario

import (
	"context"
	"math"

	"go.uber.org/zap"

	"spaceship-core/internal/config"
	"spaceship-core/internal/enemy"
	"spaceship-core/internal/frame"
	"spaceship-core/internal/logging"
	"spaceship-core/internal/record"
	"spaceship-core/internal/telemetry"
)

// Fire cooldowns in frames, after a shot
const (
	basicFireCooldown = 60
	eliteFireCooldown = 40
)

// projectiles leaving the arena by more than this are dropped
const offscreenMargin = 50

type shot struct {
	record.ProjectileMotion
	Radius float64
	Damage float64
}

// Options wires a host's outputs. All fields are optional.
type Options struct {
	Telemetry *telemetry.Writer
	Trace     *TraceWriter
	Logger    *zap.Logger
}

// Host owns the world state of one run and feeds it through a pipeline each frame
type Host struct {
	sc       *Scenario
	cfg      *config.Config
	pipeline *frame.Pipeline

	enemies  []record.Enemy
	shots    []shot
	modules  []record.Body
	moduleCD []float64
	powerups []record.Body
	stars    []record.Body
	ship     record.Body

	telemetry *telemetry.Writer
	trace     *TraceWriter
	acc       telemetry.Accumulator
	logger    *zap.Logger
}

// NewHost builds the starting world of sc. The enemy random source is seeded with sc.Seed.
func NewHost(sc *Scenario, cfg *config.Config, opts Options) *Host {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.OrNop(opts.Logger)
	h := &Host{
		sc:        sc,
		cfg:       cfg,
		pipeline:  frame.New(cfg, enemy.NewRand(sc.Seed), logger),
		enemies:   sc.EnemyRecords(),
		ship:      record.Body{X: sc.Ship.X, Y: sc.Ship.Y, Radius: sc.Ship.Radius},
		telemetry: opts.Telemetry,
		trace:     opts.Trace,
		logger:    logger,
	}
	for _, p := range sc.Projectiles {
		h.shots = append(h.shots, shot{
			ProjectileMotion: record.ProjectileMotion{
				X: p.X, Y: p.Y, VX: p.VX, VY: p.VY, Owner: p.owner(),
			},
			Radius: p.Radius,
			Damage: p.Damage,
		})
	}
	for _, m := range sc.Modules {
		h.modules = append(h.modules, m.body())
	}
	h.moduleCD = make([]float64, len(h.modules))
	for _, p := range sc.Powerups {
		h.powerups = append(h.powerups, p.body())
	}
	for _, s := range sc.Stars {
		h.stars = append(h.stars, s.body())
	}
	return h
}

// Enemies returns the live enemies
func (h *Host) Enemies() []record.Enemy {
	return h.enemies
}

// Run plays frames frames, or until ctx is done, and returns the run summary.
// A cancelled run returns the summary so far together with ctx.Err().
func (h *Host) Run(ctx context.Context, frames int) (telemetry.Summary, error) {
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return h.acc.Summary(), err
		}
		if err := h.step(); err != nil {
			return h.acc.Summary(), err
		}
	}
	return h.acc.Summary(), nil
}

func (h *Host) step() error {
	h.advanceShots()

	in := frame.Input{
		Enemies:      h.enemies,
		Ship:         h.ship,
		ShieldActive: h.sc.Ship.Shield,
		Modules:      h.modules,
		Motions:      make([]record.ProjectileMotion, len(h.shots)),
		Projectiles:  make([]record.Projectile, len(h.shots)),
		Powerups:     h.powerups,
		Stars:        h.stars,
		Width:        h.sc.Arena.Width,
		Height:       h.sc.Arena.Height,
	}
	for i, s := range h.shots {
		in.Motions[i] = s.ProjectileMotion
		in.Projectiles[i] = record.Projectile{X: s.X, Y: s.Y, Radius: s.Radius, Damage: s.Damage, Owner: s.Owner}
	}
	out := h.pipeline.Step(in)

	stats := telemetry.FromFrame(out, h.pipeline.Grid().Cells())
	h.apply(out)
	stats.ShipDamage += h.contacts()
	h.fire(out.Targets)
	h.reap()

	h.acc.Add(stats)
	if err := h.telemetry.Write(stats); err != nil {
		return err
	}
	return h.trace.Write(h.snapshot(out))
}

func (h *Host) advanceShots() {
	w, ht := h.sc.Arena.Width, h.sc.Arena.Height
	kept := h.shots[:0]
	for _, s := range h.shots {
		s.X += s.VX
		s.Y += s.VY
		if s.X < -offscreenMargin || s.X > w+offscreenMargin || s.Y < -offscreenMargin || s.Y > ht+offscreenMargin {
			continue
		}
		kept = append(kept, s)
	}
	h.shots = kept
}

// apply takes the pipeline's enemies and resolves its collision result
func (h *Host) apply(out frame.Output) {
	h.enemies = out.Enemies
	res := out.Result

	for _, hit := range res.EnemyHits {
		h.enemies[hit.Enemy].HP -= hit.Damage
	}

	h.shots = dropIndices(h.shots, res.Removed)
	h.powerups = dropIndices(h.powerups, res.Powerups)
	h.stars = dropIndices(h.stars, res.Stars)
}

// fire spawns enemy and module shots for everything off cooldown
func (h *Host) fire(targets []record.ModuleTarget) {
	wp := h.sc.Weapons
	for i := range h.enemies {
		en := &h.enemies[i]
		if en.HP <= 0 || en.ShootCooldown > 0 {
			continue
		}
		if en.Archetype != record.Basic && en.Archetype != record.Elite {
			continue
		}

		tx, ty := h.ship.X, h.ship.Y
		owner := record.OwnerEnemy
		if en.Zombie {
			t := enemy.FindModuleTargets([]record.Body{{X: en.X, Y: en.Y}}, h.enemies)[0]
			if !t.Found {
				continue
			}
			tx, ty, owner = t.X, t.Y, record.OwnerZombie
		}
		angle := enemy.ShootAngle(en.X, en.Y, tx, ty)

		if en.Archetype == record.Basic {
			h.spawn(en.X, en.Y, angle, wp.EnemySpeed, wp.EnemyDamage, owner)
			en.ShootCooldown = basicFireCooldown
			continue
		}
		for k := -2; k <= 2; k++ {
			h.spawn(en.X, en.Y, angle+float64(k)*wp.EliteSpread, wp.EnemySpeed, wp.EnemyDamage, owner)
		}
		en.ShootCooldown = eliteFireCooldown
	}

	// A module fires when its cooldown is spent, and the cooldown ticks in the same frame
	for i, m := range h.modules {
		if t := targets[i]; h.moduleCD[i] <= 0 && t.Found && enemy.ShouldShoot(m.X, m.Y, t.X, t.Y, wp.ModuleMinDistance) {
			h.spawn(m.X, m.Y, enemy.ShootAngle(m.X, m.Y, t.X, t.Y), wp.ModuleSpeed, wp.ModuleDamage, record.OwnerModule)
			h.moduleCD[i] = wp.ModuleInterval
		}
		if h.moduleCD[i] > 0 {
			h.moduleCD[i]--
		}
	}
}

func (h *Host) spawn(x, y, angle, speed, damage float64, owner record.Owner) {
	h.shots = append(h.shots, shot{
		ProjectileMotion: record.ProjectileMotion{
			X: x, Y: y, VX: math.Cos(angle) * speed, VY: math.Sin(angle) * speed, Owner: owner,
		},
		Radius: h.sc.Weapons.ProjectileRadius,
		Damage: damage,
	})
}

// reap drops dead enemies, keeping order
func (h *Host) reap() {
	kept := h.enemies[:0]
	for _, en := range h.enemies {
		if en.HP <= 0 {
			h.logger.Debug("enemy destroyed",
				zap.Stringer("archetype", en.Archetype),
				zap.Bool("zombie", en.Zombie),
				zap.Uint64("frame", h.pipeline.Frame()),
			)
			continue
		}
		kept = append(kept, en)
	}
	h.enemies = kept
}

func (h *Host) snapshot(out frame.Output) *record.Snapshot {
	projs := make([]record.Projectile, len(h.shots))
	for i, s := range h.shots {
		projs[i] = record.Projectile{X: s.X, Y: s.Y, Radius: s.Radius, Damage: s.Damage, Owner: s.Owner}
	}
	return &record.Snapshot{
		Frame:       out.Frame,
		Enemies:     record.EncodeEnemies(h.enemies),
		Projectiles: record.EncodeProjectiles(projs),
		Modules:     record.EncodeBodies(h.modules),
		Powerups:    record.EncodeBodies(h.powerups),
		Stars:       record.EncodeBodies(h.stars),
		Ship:        []float64{h.ship.X, h.ship.Y, h.ship.Radius},
		Shield:      h.sc.Ship.Shield,
		Digest:      out.Digest,
	}
}

// dropIndices removes the entries at idx, which must be distinct, keeping order
func dropIndices[T any](items []T, idx []int) []T {
	if len(idx) == 0 {
		return items
	}
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	kept := items[:0]
	for i, it := range items {
		if !drop[i] {
			kept = append(kept, it)
		}
	}
	return kept
}
