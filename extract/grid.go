package extract

import (
	"go.uber.org/zap"

	"github.com/docforge/docforge/wml"
)

// cellState classifies one logical grid position.
type cellState int

const (
	stateEmpty cellState = iota
	stateOccupied
	stateError
)

// cellRef addresses a primary cell by its top-left grid position.
type cellRef struct {
	Row, Col int
}

type gridEntry struct {
	state cellState
	owner cellRef
}

// Grid is the resolved logical occupancy grid of one table: every position
// maps to the primary cell covering it, or to an error marker when no cell
// definition reached it. Grids are built fresh per pass and never cached.
type Grid struct {
	Rows, Cols int
	entries    [][]gridEntry
	primaries  []Primary
}

// Primary is a content-carrying cell: the top-left cell of a merged region,
// or an unmerged cell with spans of 1.
type Primary struct {
	Row, Col         int
	RowSpan, ColSpan int
	Cell             *wml.TableCell
}

// Primaries returns the table's primary cells in row-major order.
func (g *Grid) Primaries() []Primary {
	return g.primaries
}

// PrimaryAt resolves a grid position to the primary cell covering it.
func (g *Grid) PrimaryAt(row, col int) (Primary, bool) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Primary{}, false
	}
	entry := g.entries[row][col]
	if entry.state != stateOccupied {
		return Primary{}, false
	}
	for _, p := range g.primaries {
		if p.Row == entry.owner.Row && p.Col == entry.owner.Col {
			return p, true
		}
	}
	return Primary{}, false
}

// rowLayout maps a row's cells to their starting logical columns.
type rowLayout struct {
	starts map[int]*wml.TableCell
}

func layoutRow(row *wml.TableRow) rowLayout {
	rl := rowLayout{starts: make(map[int]*wml.TableCell, len(row.Cells))}
	col := 0
	for _, cell := range row.Cells {
		rl.starts[col] = cell
		col += cell.ColSpan()
	}
	return rl
}

// BuildGrid resolves a table's merge descriptors into its logical grid.
// Out-of-bounds spans are clipped and logged; a conflicting occupier is
// logged and the earlier occupier wins. The walk never fails: every
// anomaly degrades to a log line.
func BuildGrid(tableIdx int, t *wml.Table, logger *zap.Logger) *Grid {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows := len(t.Rows)
	cols := t.ColumnCount()
	if rows > 0 && cols == 0 {
		cols = 1
	}
	g := &Grid{Rows: rows, Cols: cols}
	if rows == 0 || cols == 0 {
		return g
	}

	g.entries = make([][]gridEntry, rows)
	for r := range g.entries {
		g.entries[r] = make([]gridEntry, cols)
	}

	layouts := make([]rowLayout, rows)
	for r, row := range t.Rows {
		layouts[r] = layoutRow(row)
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.entries[r][c].state != stateEmpty {
				continue
			}
			cell, ok := layouts[r].starts[c]
			if !ok {
				// No cell definition covers this position: short row or
				// malformed spans. Recovered locally, never fatal.
				g.entries[r][c] = gridEntry{state: stateError}
				logger.Warn("grid position has no cell definition",
					zap.Int("table", tableIdx), zap.Int("row", r), zap.Int("col", c))
				continue
			}

			if cell.VMergeState() == wml.MergeContinue {
				// Continuation of a vertical span: inherit the occupier of
				// the position directly above, falling back to the literal
				// coordinate when that position was never mapped.
				owner := cellRef{Row: r - 1, Col: c}
				if r > 0 && g.entries[r-1][c].state == stateOccupied {
					owner = g.entries[r-1][c].owner
				}
				g.mark(tableIdx, r, c, 1, cell.ColSpan(), owner, logger)
				continue
			}

			colSpan := cell.ColSpan()
			rowSpan := 1
			if cell.VMergeState() == wml.MergeRestart {
				for rr := r + 1; rr < rows; rr++ {
					below, ok := layouts[rr].starts[c]
					if !ok || below.VMergeState() != wml.MergeContinue {
						break
					}
					rowSpan++
				}
			}

			g.mark(tableIdx, r, c, rowSpan, colSpan, cellRef{Row: r, Col: c}, logger)
			g.primaries = append(g.primaries, Primary{
				Row: r, Col: c,
				RowSpan: rowSpan, ColSpan: colSpan,
				Cell: cell,
			})
		}
	}
	return g
}

// mark claims a span of grid positions for the given owner, clipping
// out-of-bounds writes and leaving earlier occupiers in place.
func (g *Grid) mark(tableIdx, row, col, rowSpan, colSpan int, owner cellRef, logger *zap.Logger) {
	for i := 0; i < rowSpan; i++ {
		for j := 0; j < colSpan; j++ {
			r, c := row+i, col+j
			if r >= g.Rows || c >= g.Cols {
				logger.Warn("merge span exceeds table bounds, clipping",
					zap.Int("table", tableIdx),
					zap.Int("row", r), zap.Int("col", c),
					zap.Int("rows", g.Rows), zap.Int("cols", g.Cols))
				continue
			}
			if g.entries[r][c].state == stateOccupied && g.entries[r][c].owner != owner {
				logger.Warn("conflicting merge occupier, keeping earlier",
					zap.Int("table", tableIdx),
					zap.Int("row", r), zap.Int("col", c),
					zap.Int("prevRow", g.entries[r][c].owner.Row),
					zap.Int("prevCol", g.entries[r][c].owner.Col))
				continue
			}
			g.entries[r][c] = gridEntry{state: stateOccupied, owner: owner}
		}
	}
}
