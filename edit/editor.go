// Package edit mutates an open document tree: format-preserving block
// replacement, style-propagating section replacement, and the plain
// structural operations (tables, rows, text, page setup). Every operation
// validates its locator and indices before the first destructive step, so
// a failed call never leaves a block half-cleared.
package edit

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/docerr"
	"github.com/docforge/docforge/extract"
	"github.com/docforge/docforge/wml"
)

// Editor applies mutations to a document package.
type Editor struct {
	log *zap.Logger
}

// NewEditor creates an Editor. A nil logger disables logging.
func NewEditor(logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{log: logger}
}

// CellRef locates a table cell by table index and logical grid position.
type CellRef struct {
	Table, Row, Col int
}

// BlockEdit describes one format-preserving block replacement. Exactly one
// of Paragraph or Cell must be set. Runs is the formatting snapshot
// captured from a prior extraction; the override fields are applied after
// repopulation when non-nil.
type BlockEdit struct {
	Text string
	Runs []block.RunFormat

	Paragraph *int     // top-level paragraph index
	Cell      *CellRef // primary cell locator

	Style     *string
	Alignment *block.Alignment
	PageBreak *bool
}

// EditBlock replaces the text of one paragraph or table cell, reapplying
// the captured formatting. When the new text equals the concatenation of
// the original run texts, every original run is reapplied in order; any
// other text becomes a single run carrying the first original run's
// formatting.
func (ed *Editor) EditBlock(pkg *wml.Package, req BlockEdit) error {
	if (req.Paragraph == nil) == (req.Cell == nil) {
		return fmt.Errorf("%w: exactly one of paragraph or cell locator required", docerr.ErrInvalidArgument)
	}

	if req.Paragraph != nil {
		return ed.editParagraph(pkg, *req.Paragraph, req)
	}
	return ed.editCell(pkg, *req.Cell, req)
}

func (ed *Editor) editParagraph(pkg *wml.Package, index int, req BlockEdit) error {
	paras := pkg.Document.Body.Paragraphs()
	if index < 0 || index >= len(paras) {
		return fmt.Errorf("%w: paragraph %d of %d", docerr.ErrIndexOutOfRange, index, len(paras))
	}
	p := paras[index]
	ed.repopulate(p, req.Text, req.Runs)
	ed.applyOverrides(pkg, p, req)
	return nil
}

func (ed *Editor) editCell(pkg *wml.Package, ref CellRef, req BlockEdit) error {
	tables := pkg.Document.Body.Tables()
	if ref.Table < 0 || ref.Table >= len(tables) {
		return fmt.Errorf("%w: table %d of %d", docerr.ErrIndexOutOfRange, ref.Table, len(tables))
	}
	t := tables[ref.Table]

	grid := extract.BuildGrid(ref.Table, t, ed.log)
	if ref.Row < 0 || ref.Row >= grid.Rows || ref.Col < 0 || ref.Col >= grid.Cols {
		return fmt.Errorf("%w: cell (%d,%d) in %dx%d table %d",
			docerr.ErrIndexOutOfRange, ref.Row, ref.Col, grid.Rows, grid.Cols, ref.Table)
	}
	prim, ok := grid.PrimaryAt(ref.Row, ref.Col)
	if !ok {
		return fmt.Errorf("%w: cell (%d,%d) of table %d has no primary cell",
			docerr.ErrIndexOutOfRange, ref.Row, ref.Col, ref.Table)
	}

	// Multi-paragraph cell content always collapses to a single paragraph;
	// newlines in the new text stay inside it as break characters. Non-
	// paragraph children (nested tables, bookmarks) are left in place.
	kept := prim.Cell.Children[:0]
	for _, n := range prim.Cell.Children {
		if _, isPara := n.(*wml.Paragraph); !isPara {
			kept = append(kept, n)
		}
	}
	p := &wml.Paragraph{}
	prim.Cell.Children = append(kept, p)
	ed.repopulate(p, req.Text, req.Runs)
	ed.applyOverrides(pkg, p, req)
	return nil
}

// repopulate fills a cleared paragraph with the new text. Reapplying the
// original runs is reserved for the unchanged-text case, which makes a
// pure reformat idempotent under re-extraction.
func (ed *Editor) repopulate(p *wml.Paragraph, text string, orig []block.RunFormat) {
	if text == block.ConcatText(orig) && len(orig) > 0 {
		runs := make([]*wml.Run, 0, len(orig))
		for _, f := range orig {
			runs = append(runs, f.NewRun(f.Text, ed.log))
		}
		p.SetRuns(runs)
		return
	}

	var run *wml.Run
	if len(orig) > 0 {
		run = orig[0].NewRun(text, ed.log)
	} else {
		run = &wml.Run{}
		run.SetText(text)
	}
	p.SetRuns([]*wml.Run{run})
}

// applyOverrides applies the optional style, alignment, and page-break
// overrides after run population. An unknown style name is logged and
// skipped rather than failing the edit; an absent page-break override
// leaves the current flag untouched.
func (ed *Editor) applyOverrides(pkg *wml.Package, p *wml.Paragraph, req BlockEdit) {
	if req.Style != nil {
		if id, ok := pkg.Styles().IDForName(*req.Style); ok {
			p.SetStyleID(id)
		} else {
			ed.log.Warn("skipping unknown style override", zap.String("style", *req.Style))
		}
	}
	if req.Alignment != nil {
		p.SetAlignment(req.Alignment.Jc())
	}
	if req.PageBreak != nil {
		p.SetPageBreakBefore(*req.PageBreak)
	}
}
