// Package telemetry turns frame outputs into per-frame CSV rows and run summaries.
package telemetry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"spaceship-core/internal/frame"
	"spaceship-core/internal/record"
)

// FrameStats is one telemetry row
type FrameStats struct {
	Frame    uint64 `csv:"frame"`
	Enemies  int    `csv:"enemies"`
	Alive    int    `csv:"alive"`
	Zombies  int    `csv:"zombies"`
	Charging int    `csv:"rammers_charging"`
	Cells    int    `csv:"grid_cells"`

	MeanSpeed float64 `csv:"mean_speed"`
	MaxSpeed  float64 `csv:"max_speed"`

	Removed    int     `csv:"removed_projectiles"`
	EnemyHits  int     `csv:"enemy_hits"`
	ShipDamage float64 `csv:"ship_damage"`
	Powerups   int     `csv:"powerups"`
	Stars      int     `csv:"stars"`

	Digest string `csv:"digest"`
}

// FromFrame summarizes one pipeline step. cells is the grid's occupied cell count.
func FromFrame(out frame.Output, cells int) FrameStats {
	s := FrameStats{
		Frame:   out.Frame,
		Enemies: len(out.Enemies),
		Cells:   cells,
		Digest:  fmt.Sprintf("%016x", out.Digest),
	}

	speeds := make([]float64, 0, len(out.Enemies))
	for i := range out.Enemies {
		en := &out.Enemies[i]
		if en.HP > 0 {
			s.Alive++
		}
		if en.Zombie {
			s.Zombies++
		}
		if en.Archetype == record.Rammer && en.ChargeFrames > 0 {
			s.Charging++
		}
		speeds = append(speeds, en.Speed())
	}
	if len(speeds) > 0 {
		s.MeanSpeed = stat.Mean(speeds, nil)
		s.MaxSpeed = floats.Max(speeds)
	}

	if r := out.Result; r != nil {
		s.Removed = len(r.Removed)
		s.EnemyHits = len(r.EnemyHits)
		s.ShipDamage = r.ShipDamage
		s.Powerups = len(r.Powerups)
		s.Stars = len(r.Stars)
	}
	return s
}

// Summary aggregates a whole run
type Summary struct {
	Frames          int
	MeanSpeed       float64 // mean of per-frame mean speeds
	MeanSpeedStdDev float64
	PeakSpeed       float64
	EnemyHits       int
	ShipDamage      float64
	FinalDigest     string
}

// Accumulator collects FrameStats into a Summary
type Accumulator struct {
	means []float64
	peaks []float64
	hits  int
	dmg   float64
	last  string
}

// Add records one frame
func (a *Accumulator) Add(s FrameStats) {
	a.means = append(a.means, s.MeanSpeed)
	a.peaks = append(a.peaks, s.MaxSpeed)
	a.hits += s.EnemyHits
	a.dmg += s.ShipDamage
	a.last = s.Digest
}

// Summary returns the aggregate so far
func (a *Accumulator) Summary() Summary {
	sum := Summary{
		Frames:      len(a.means),
		EnemyHits:   a.hits,
		ShipDamage:  a.dmg,
		FinalDigest: a.last,
	}
	switch len(a.means) {
	case 0:
		return sum
	case 1:
		sum.MeanSpeed = a.means[0]
	default:
		sum.MeanSpeed, sum.MeanSpeedStdDev = stat.MeanStdDev(a.means, nil)
	}
	sum.PeakSpeed = floats.Max(a.peaks)
	if math.IsNaN(sum.MeanSpeedStdDev) {
		sum.MeanSpeedStdDev = 0
	}
	return sum
}
