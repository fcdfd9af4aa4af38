// Package spatial provides the uniform hash grid used for broad-phase neighbor queries.
package spatial

import (
	"math"

	"spaceship-core/internal/record"
)

// DefaultCellSize is one cell width in world units
const DefaultCellSize = 128.0

// Cell identifies a grid cell: (floor(x/cellSize), floor(y/cellSize))
type Cell struct {
	X, Y int
}

// Grid is a uniform-cell hash of entity indices, rebuilt wholesale every frame.
// It is not safe for concurrent use; one frame pipeline owns it.
type Grid struct {
	cellSize float64
	cells    map[Cell][]int
	count    int
}

// New creates a grid. Non-positive cell sizes fall back to DefaultCellSize.
func New(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[Cell][]int),
	}
}

// CellSize returns the cell width
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// CellOf returns the cell containing (x, y)
func (g *Grid) CellOf(x, y float64) Cell {
	return Cell{
		X: int(math.Floor(x / g.cellSize)),
		Y: int(math.Floor(y / g.cellSize)),
	}
}

// Clear empties every cell (keeps allocated capacity). Cells that stayed
// empty for a whole frame are dropped.
func (g *Grid) Clear() {
	for k, v := range g.cells {
		if len(v) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = v[:0]
	}
	g.count = 0
}

// Insert adds entity index idx at (x, y)
func (g *Grid) Insert(x, y float64, idx int) {
	c := g.CellOf(x, y)
	g.cells[c] = append(g.cells[c], idx)
	g.count++
}

// Rebuild clears the grid and inserts index i at positions[i]
func (g *Grid) Rebuild(positions []record.Point) {
	g.Clear()
	for i, p := range positions {
		g.Insert(p.X, p.Y, i)
	}
}

// RebuildFlat rebuilds from x, y pairs. It panics with *record.StrideError on an odd length.
func (g *Grid) RebuildFlat(flat []float64) {
	g.Rebuild(record.DecodePoints(flat))
}

// Query returns the indices in the 3x3 block of cells around (x, y).
// It is a broad phase: callers still apply exact distance checks.
func (g *Grid) Query(x, y float64) []int {
	return g.QueryBuf(x, y, nil)
}

// QueryBuf appends results to buf and returns the extended slice, avoiding per-call allocation
func (g *Grid) QueryBuf(x, y float64, buf []int) []int {
	c := g.CellOf(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			buf = append(buf, g.cells[Cell{X: c.X + dx, Y: c.Y + dy}]...)
		}
	}
	return buf
}

// Len returns the number of indexed entities
func (g *Grid) Len() int {
	return g.count
}

// Cells returns the number of occupied cells
func (g *Grid) Cells() int {
	n := 0
	for _, v := range g.cells {
		if len(v) > 0 {
			n++
		}
	}
	return n
}
