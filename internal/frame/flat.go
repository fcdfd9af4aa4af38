package frame

import (
	"spaceship-core/internal/collision"
	"spaceship-core/internal/enemy"
	"spaceship-core/internal/record"
)

// Flat-buffer entry points. Malformed buffers panic with *record.StrideError.

// RebuildGrid indexes enemies from x, y pairs
func (p *Pipeline) RebuildGrid(positions []float64) {
	p.grid.RebuildFlat(positions)
}

// QueryNeighbors returns enemy indices in the 3x3 cells around (x, y)
func (p *Pipeline) QueryNeighbors(x, y float64) []int {
	return p.grid.Query(x, y)
}

// UpdateEnemies advances enemy records one frame and returns the encoded result.
// projectileData uses the behavior view: x, y, vx, vy, owner.
func (p *Pipeline) UpdateEnemies(enemyData []float64, shipX, shipY, shipRadius float64,
	moduleData, projectileData []float64, width, height float64, shieldActive bool) []float64 {
	enemies := record.DecodeEnemies(enemyData)
	modules := record.DecodeBodies("module", moduleData)
	projs := record.DecodeProjectileMotions(projectileData)
	updated := p.enemies.Update(enemies, enemy.World{
		ShipX:        shipX,
		ShipY:        shipY,
		ShipRadius:   shipRadius,
		Modules:      modules,
		Projectiles:  projs,
		Width:        width,
		Height:       height,
		ShieldActive: shieldActive,
	})
	return record.EncodeEnemies(updated)
}

// FindModuleTargets returns found, x, y, index per module, with 0, 0, 0, -1
// for a module that has no target
func (p *Pipeline) FindModuleTargets(moduleData, enemyData []float64) []float64 {
	targets := enemy.FindModuleTargets(record.DecodeBodies("module", moduleData), record.DecodeEnemies(enemyData))
	return record.EncodeModuleTargets(targets)
}

// Collisions returns the collision engine for hosts that fill its buffers directly
func (p *Pipeline) Collisions() *collision.Engine {
	return p.collisions
}

// RammerConfig returns the rammer tunables keyed by host-side name
func (p *Pipeline) RammerConfig() map[string]float64 {
	return p.cfg.Rammer.Export()
}
