package edit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/docforge/docforge/docerr"
	"github.com/docforge/docforge/extract"
	"github.com/docforge/docforge/wml"
)

// AddTable appends a rows x cols table to the document body, styled with
// the default table style when the document defines one. Data fills the
// cells row-major; rows or cells beyond the table's shape are ignored.
func (ed *Editor) AddTable(pkg *wml.Package, rows, cols int, data [][]string, styleName string) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: table shape %dx%d", docerr.ErrInvalidArgument, rows, cols)
	}

	t := &wml.Table{Grid: &wml.TableGrid{}}
	if styleName != "" {
		if id, ok := pkg.Styles().IDForName(styleName); ok {
			t.Props = &wml.TableProps{Style: &wml.ValAttr{Val: id}}
		} else {
			ed.log.Warn("skipping unknown table style", zap.String("style", styleName))
		}
	}
	for c := 0; c < cols; c++ {
		t.Grid.Cols = append(t.Grid.Cols, wml.GridCol{})
	}
	for r := 0; r < rows; r++ {
		row := &wml.TableRow{}
		for c := 0; c < cols; c++ {
			cell := &wml.TableCell{Children: []wml.Node{&wml.Paragraph{}}}
			if r < len(data) && c < len(data[r]) && data[r][c] != "" {
				p := cell.Paragraphs()[0]
				run := &wml.Run{}
				run.SetText(data[r][c])
				p.AppendRun(run)
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	pkg.Document.Body.Nodes = append(pkg.Document.Body.Nodes, t)
	return nil
}

// MergeCells merges the rectangle (r1,c1)-(r2,c2) of the given table:
// the top-left cell becomes the primary carrying gridSpan and a vertical
// merge restart, cells below it continue the vertical span, and cells
// swallowed horizontally are removed. The rectangle must align with the
// table's existing cell boundaries.
func (ed *Editor) MergeCells(pkg *wml.Package, tableIdx, r1, c1, r2, c2 int) error {
	t, err := ed.tableAt(pkg, tableIdx)
	if err != nil {
		return err
	}
	cols := t.ColumnCount()
	if r1 < 0 || r1 >= len(t.Rows) || c1 < 0 || c1 >= cols {
		return fmt.Errorf("%w: merge start (%d,%d)", docerr.ErrIndexOutOfRange, r1, c1)
	}
	if r2 < r1 || r2 >= len(t.Rows) || c2 < c1 || c2 >= cols {
		return fmt.Errorf("%w: merge end (%d,%d)", docerr.ErrIndexOutOfRange, r2, c2)
	}

	span := c2 - c1 + 1
	type rowPlan struct {
		row  *wml.TableRow
		keep int // index of the cell starting at c1
		drop []int
	}
	var plans []rowPlan
	for r := r1; r <= r2; r++ {
		row := t.Rows[r]
		plan := rowPlan{row: row, keep: -1}
		col := 0
		for i, cell := range row.Cells {
			if col == c1 {
				plan.keep = i
			} else if col > c1 && col <= c2 {
				plan.drop = append(plan.drop, i)
			}
			col += cell.ColSpan()
			if col > c2 {
				break
			}
		}
		if plan.keep == -1 {
			return fmt.Errorf("%w: row %d has no cell boundary at column %d", docerr.ErrInvalidArgument, r, c1)
		}
		plans = append(plans, plan)
	}

	for i, plan := range plans {
		kept := plan.row.Cells[plan.keep]
		kept.SetColSpan(span)
		if len(plans) > 1 {
			if i == 0 {
				kept.SetVMerge(wml.MergeRestart)
			} else {
				kept.SetVMerge(wml.MergeContinue)
			}
		}
		// Remove swallowed cells from the highest index down.
		for j := len(plan.drop) - 1; j >= 0; j-- {
			idx := plan.drop[j]
			plan.row.Cells = append(plan.row.Cells[:idx], plan.row.Cells[idx+1:]...)
		}
	}
	return nil
}

// SplitTable splits a table after the given row, inserting a second table
// that inherits the original's properties and column grid.
func (ed *Editor) SplitTable(pkg *wml.Package, tableIdx, rowIdx int) error {
	t, err := ed.tableAt(pkg, tableIdx)
	if err != nil {
		return err
	}
	if rowIdx < 0 || rowIdx >= len(t.Rows)-1 {
		return fmt.Errorf("%w: split row %d of %d-row table", docerr.ErrIndexOutOfRange, rowIdx, len(t.Rows))
	}

	second := &wml.Table{
		Props: t.Props,
		Grid:  t.Grid,
		Rows:  append([]*wml.TableRow(nil), t.Rows[rowIdx+1:]...),
	}
	t.Rows = t.Rows[:rowIdx+1]

	body := pkg.Document.Body
	pos := body.IndexOf(t)
	// Word refuses adjacent tables without a separator paragraph.
	body.Insert(pos+1, &wml.Paragraph{})
	body.Insert(pos+2, second)
	return nil
}

// AddTableRow appends a row to the table, filled from data.
func (ed *Editor) AddTableRow(pkg *wml.Package, tableIdx int, data []string) error {
	t, err := ed.tableAt(pkg, tableIdx)
	if err != nil {
		return err
	}
	cols := t.ColumnCount()
	if cols == 0 {
		cols = 1
	}
	row := &wml.TableRow{}
	for c := 0; c < cols; c++ {
		cell := &wml.TableCell{Children: []wml.Node{&wml.Paragraph{}}}
		if c < len(data) && data[c] != "" {
			run := &wml.Run{}
			run.SetText(data[c])
			cell.Paragraphs()[0].AppendRun(run)
		}
		row.Cells = append(row.Cells, cell)
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// DeleteTableRow removes the given row from the table.
func (ed *Editor) DeleteTableRow(pkg *wml.Package, tableIdx, rowIdx int) error {
	t, err := ed.tableAt(pkg, tableIdx)
	if err != nil {
		return err
	}
	if rowIdx < 0 || rowIdx >= len(t.Rows) {
		return fmt.Errorf("%w: row %d of %d", docerr.ErrIndexOutOfRange, rowIdx, len(t.Rows))
	}
	t.Rows = append(t.Rows[:rowIdx], t.Rows[rowIdx+1:]...)
	return nil
}

// EditTableCell replaces a cell's content with plain unformatted text,
// collapsing it to a single paragraph. The locator resolves through the
// merge grid, so addressing any covered position edits the primary cell.
func (ed *Editor) EditTableCell(pkg *wml.Package, tableIdx, row, col int, text string) error {
	t, err := ed.tableAt(pkg, tableIdx)
	if err != nil {
		return err
	}
	grid := extract.BuildGrid(tableIdx, t, ed.log)
	if row < 0 || row >= grid.Rows || col < 0 || col >= grid.Cols {
		return fmt.Errorf("%w: cell (%d,%d) in %dx%d table %d",
			docerr.ErrIndexOutOfRange, row, col, grid.Rows, grid.Cols, tableIdx)
	}
	prim, ok := grid.PrimaryAt(row, col)
	if !ok {
		return fmt.Errorf("%w: cell (%d,%d) of table %d has no primary cell",
			docerr.ErrIndexOutOfRange, row, col, tableIdx)
	}

	run := &wml.Run{}
	run.SetText(text)
	p := &wml.Paragraph{}
	p.AppendRun(run)
	kept := prim.Cell.Children[:0]
	for _, n := range prim.Cell.Children {
		if _, isPara := n.(*wml.Paragraph); !isPara {
			kept = append(kept, n)
		}
	}
	prim.Cell.Children = append(kept, p)
	return nil
}

func (ed *Editor) tableAt(pkg *wml.Package, tableIdx int) (*wml.Table, error) {
	tables := pkg.Document.Body.Tables()
	if tableIdx < 0 || tableIdx >= len(tables) {
		return nil, fmt.Errorf("%w: table %d of %d", docerr.ErrIndexOutOfRange, tableIdx, len(tables))
	}
	return tables[tableIdx], nil
}
