package sim

import (
	"math"

	"github.com/vovakirdan/chase-arcade/internal/core"
)

// SpatialHash is a uniform grid over the arena for broad-phase queries.
// Items are stored by index at the cell holding their center, so queries
// must widen their reach by the largest item radius.
type SpatialHash struct {
	bounds core.Bounds
	cell   float64
	cols   int
	rows   int
	cells  [][]int
}

// NewSpatialHash sizes a grid covering bounds with square cells.
func NewSpatialHash(bounds core.Bounds, cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(bounds.Width()/cellSize)) + 1
	rows := int(math.Ceil(bounds.Height()/cellSize)) + 1
	return &SpatialHash{
		bounds: bounds,
		cell:   cellSize,
		cols:   cols,
		rows:   rows,
		cells:  make([][]int, cols*rows),
	}
}

// Clear empties every cell, keeping allocated capacity.
func (h *SpatialHash) Clear() {
	for i := range h.cells {
		h.cells[i] = h.cells[i][:0]
	}
}

func (h *SpatialHash) coords(p core.Vec2) (int, int) {
	cx := int((p.X - h.bounds.MinX) / h.cell)
	cy := int((p.Y - h.bounds.MinY) / h.cell)
	return core.Clamp(cx, 0, h.cols-1), core.Clamp(cy, 0, h.rows-1)
}

// Insert adds item idx at position p.
func (h *SpatialHash) Insert(idx int, p core.Vec2) {
	cx, cy := h.coords(p)
	i := cy*h.cols + cx
	h.cells[i] = append(h.cells[i], idx)
}

// Query appends every item whose cell overlaps the square of half-width
// reach around p. Results are candidates, not confirmed overlaps.
func (h *SpatialHash) Query(p core.Vec2, reach float64, buf []int) []int {
	minX, minY := h.coords(core.V2(p.X-reach, p.Y-reach))
	maxX, maxY := h.coords(core.V2(p.X+reach, p.Y+reach))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			buf = append(buf, h.cells[cy*h.cols+cx]...)
		}
	}
	return buf
}
