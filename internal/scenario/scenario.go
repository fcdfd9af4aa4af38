// Package scenario loads a starting world from YAML and plays it forward
// through the frame pipeline, acting as a reference host.
package scenario

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"spaceship-core/internal/config"
	"spaceship-core/internal/record"
)

// Scenario is the starting world of a run
type Scenario struct {
	Seed        uint64             `yaml:"seed"`
	Frames      int                `yaml:"frames"`
	Arena       config.ArenaConfig `yaml:"arena"`
	Ship        Ship               `yaml:"ship"`
	Weapons     Weapons            `yaml:"weapons"`
	Contact     Contact            `yaml:"contact"`
	Enemies     []EnemySpec        `yaml:"enemies"`
	Projectiles []ProjectileSpec   `yaml:"projectiles"`
	Modules     []BodySpec         `yaml:"modules"`
	Powerups    []BodySpec         `yaml:"powerups"`
	Stars       []BodySpec         `yaml:"stars"`
}

// Ship is the player ship. It does not move.
type Ship struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Shield bool    `yaml:"shield"`
}

// Weapons tunes the shots the host spawns
type Weapons struct {
	ProjectileRadius  float64 `yaml:"projectile_radius"`
	EnemyDamage       float64 `yaml:"enemy_damage"`
	EnemySpeed        float64 `yaml:"enemy_speed"`
	EliteSpread       float64 `yaml:"elite_spread"`
	ModuleDamage      float64 `yaml:"module_damage"`
	ModuleSpeed       float64 `yaml:"module_speed"`
	ModuleInterval    float64 `yaml:"module_interval"`
	ModuleMinDistance float64 `yaml:"module_min_distance"`
}

// Contact tunes the body-contact rules the host applies after each core update
type Contact struct {
	SelfDamage      float64 `yaml:"self_damage"`      // rammer hp per bounce, repel or side hit
	TipDamage       float64 `yaml:"tip_damage"`       // ship energy per head-on ram
	TipAlign        float64 `yaml:"tip_align"`        // heading/ship cosine above which a ram is head-on
	ShieldMargin    float64 `yaml:"shield_margin"`    // shield radius beyond the ship radius
	SeparationPush  float64 `yaml:"separation_push"`  // share of overlap a rammer backs out of another enemy
	ExplosionDamage float64 `yaml:"explosion_damage"` // ship energy per exploder contact
	ZombieBlast     float64 `yaml:"zombie_blast"`     // enemy hp per zombie exploder contact
}

// EnemySpec is one enemy. Zero radius or hp take the archetype's default.
type EnemySpec struct {
	Archetype      string  `yaml:"archetype"`
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	VX             float64 `yaml:"vx"`
	VY             float64 `yaml:"vy"`
	Angle          float64 `yaml:"angle"`
	Radius         float64 `yaml:"radius"`
	HP             float64 `yaml:"hp"`
	Zombie         bool    `yaml:"zombie"`
	ZombieLifetime float64 `yaml:"zombie_lifetime"`
	Stealth        bool    `yaml:"stealth"`
	SplitLevel     float64 `yaml:"split_level"`
}

// ProjectileSpec is one projectile in flight at frame zero
type ProjectileSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Damage float64 `yaml:"damage"`
	Owner  string  `yaml:"owner"`
}

// owner defaults to an enemy shot
func (p ProjectileSpec) owner() record.Owner {
	if p.Owner == "" {
		return record.OwnerEnemy
	}
	return record.ParseOwner(p.Owner)
}

// BodySpec is a module, powerup or star
type BodySpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

func (b BodySpec) body() record.Body {
	return record.Body{X: b.X, Y: b.Y, Radius: b.Radius}
}

var archetypeDefaults = map[record.Archetype]struct{ radius, hp float64 }{
	record.Basic:    {15, 50},
	record.Elite:    {25, 100},
	record.Rammer:   {18, 80},
	record.Exploder: {55, 150},
}

func defaultContact() Contact {
	return Contact{
		SelfDamage:      5,
		TipDamage:       10,
		TipAlign:        0.7,
		ShieldMargin:    40,
		SeparationPush:  0.6,
		ExplosionDamage: 20,
		ZombieBlast:     50,
	}
}

func defaultWeapons() Weapons {
	return Weapons{
		ProjectileRadius:  3,
		EnemyDamage:       10,
		EnemySpeed:        4,
		EliteSpread:       0.4,
		ModuleDamage:      5,
		ModuleSpeed:       10,
		ModuleInterval:    20,
		ModuleMinDistance: 0,
	}
}

// Load reads a scenario file. Arena and zombie lifetime fall back to cfg.
func Load(path string, cfg *config.Config) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	sc, err := Parse(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", path)
	}
	return sc, nil
}

// Parse decodes and validates a scenario document
func Parse(data []byte, cfg *config.Config) (*Scenario, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	sc := &Scenario{
		Frames:  600,
		Arena:   cfg.Arena,
		Ship:    Ship{X: cfg.Arena.Width / 2, Y: cfg.Arena.Height / 2, Radius: 20},
		Weapons: defaultWeapons(),
		Contact: defaultContact(),
	}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, errors.Wrap(err, "parsing")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	for i := range sc.Enemies {
		e := &sc.Enemies[i]
		d := archetypeDefaults[record.ParseArchetype(e.Archetype)]
		if e.Radius == 0 {
			e.Radius = d.radius
		}
		if e.HP == 0 {
			e.HP = d.hp
		}
		if e.Zombie && e.ZombieLifetime == 0 {
			e.ZombieLifetime = cfg.Zombie.Lifetime
		}
	}
	for i := range sc.Projectiles {
		if sc.Projectiles[i].Radius == 0 {
			sc.Projectiles[i].Radius = sc.Weapons.ProjectileRadius
		}
	}
	return sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Frames < 0 {
		return errors.Errorf("frames must not be negative, got %d", sc.Frames)
	}
	if sc.Arena.Width <= 0 || sc.Arena.Height <= 0 {
		return errors.Errorf("arena must be positive, got %gx%g", sc.Arena.Width, sc.Arena.Height)
	}
	for i, e := range sc.Enemies {
		if e.Archetype != "" && record.ParseArchetype(e.Archetype).String() != e.Archetype {
			return errors.Errorf("enemy %d: unknown archetype %q", i, e.Archetype)
		}
	}
	for i, p := range sc.Projectiles {
		if !p.owner().Known() {
			return errors.Errorf("projectile %d: unknown owner %q", i, p.Owner)
		}
	}
	return nil
}

// EnemyRecords returns the starting enemy records
func (sc *Scenario) EnemyRecords() []record.Enemy {
	out := make([]record.Enemy, len(sc.Enemies))
	for i, e := range sc.Enemies {
		out[i] = record.Enemy{
			X:              e.X,
			Y:              e.Y,
			VX:             e.VX,
			VY:             e.VY,
			Archetype:      record.ParseArchetype(e.Archetype),
			Zombie:         e.Zombie,
			Stealth:        e.Stealth,
			Radius:         e.Radius,
			HP:             e.HP,
			MaxHP:          e.HP,
			Angle:          e.Angle,
			Aggression:     1,
			ZombieLifetime: e.ZombieLifetime,
			SplitLevel:     e.SplitLevel,
		}
	}
	return out
}
