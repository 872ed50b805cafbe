// Package extract walks an open document's body and produces its ordered
// structural representation: paragraph and heading blocks, and for each
// table a metadata block plus one combined block per primary cell of the
// resolved merge grid.
package extract

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/wml"
)

// Extractor converts a document tree into block sequences. The zero value
// is usable; New attaches a logger.
type Extractor struct {
	log *zap.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{log: logger}
}

// Blocks walks the package's body nodes in order and returns the block
// sequence. Sequence indices are assigned from a single counter shared by
// all emitted blocks; ids are fresh per call. Unrecognized body nodes are
// logged and skipped, never aborting the walk.
func (e *Extractor) Blocks(pkg *wml.Package) []block.Block {
	log := e.logger()
	var out []block.Block
	seq := 0
	paraIdx := 0
	tableIdx := 0

	body := pkg.Document.Body
	for _, node := range body.Nodes {
		switch n := node.(type) {
		case *wml.Paragraph:
			out = append(out, e.paragraphBlock(pkg, n, &seq, paraIdx))
			paraIdx++
		case *wml.Table:
			out = append(out, e.tableBlocks(pkg, n, &seq, tableIdx)...)
			tableIdx++
		case *wml.RawNode:
			log.Warn("skipping unrecognized body node", zap.String("element", n.Name.Local))
		default:
			log.Warn("skipping unrecognized body node")
		}
	}
	return out
}

func (e *Extractor) logger() *zap.Logger {
	if e.log == nil {
		return zap.NewNop()
	}
	return e.log
}

// paragraphBlock classifies a paragraph as heading or plain paragraph and
// captures its text, formatting runs, and properties.
func (e *Extractor) paragraphBlock(pkg *wml.Package, p *wml.Paragraph, seq *int, index int) block.Block {
	styleName := pkg.Styles().DisplayName(p.StyleID())
	runs := captureRuns(p)

	common := block.Common{BlockID: uuid.NewString(), Sequence: *seq}
	*seq++

	if isHeadingStyle(styleName) {
		return &block.Heading{
			Common:    common,
			Index:     index,
			Text:      p.Text(),
			Style:     styleName,
			Level:     headingLevel(styleName),
			Alignment: block.ParseAlignment(p.Alignment()),
			PageBreak: p.PageBreakBefore(),
			Runs:      runs,
		}
	}
	return &block.Paragraph{
		Common:    common,
		Index:     index,
		Text:      p.Text(),
		Style:     styleName,
		Alignment: block.ParseAlignment(p.Alignment()),
		PageBreak: p.PageBreakBefore(),
		Runs:      runs,
	}
}

// tableBlocks emits the table's metadata block followed by one block per
// primary cell of its merge grid, in row-major order.
func (e *Extractor) tableBlocks(pkg *wml.Package, t *wml.Table, seq *int, tableIdx int) []block.Block {
	grid := BuildGrid(tableIdx, t, e.logger())

	styleName := ""
	if id := t.StyleID(); id != "" {
		styleName = pkg.Styles().DisplayName(id)
	}
	meta := &block.TableMeta{
		Common: block.Common{BlockID: uuid.NewString(), Sequence: *seq},
		Index:  tableIdx,
		Rows:   grid.Rows,
		Cols:   grid.Cols,
		Style:  styleName,
	}
	*seq++
	out := []block.Block{meta}

	for _, prim := range grid.Primaries() {
		cb := &block.TableCell{
			Common:  block.Common{BlockID: uuid.NewString(), Sequence: *seq},
			Table:   tableIdx,
			Row:     prim.Row,
			Col:     prim.Col,
			RowSpan: prim.RowSpan,
			ColSpan: prim.ColSpan,
			Text:    prim.Cell.Text(),
		}
		*seq++

		// First paragraph supplies the cell-level style, alignment, and
		// page-break; runs concatenate across every paragraph in order.
		paras := prim.Cell.Paragraphs()
		if len(paras) > 0 {
			first := paras[0]
			cb.Style = pkg.Styles().DisplayName(first.StyleID())
			cb.Alignment = block.ParseAlignment(first.Alignment())
			cb.PageBreak = first.PageBreakBefore()
			for _, p := range paras {
				cb.Runs = append(cb.Runs, captureRuns(p)...)
			}
		} else {
			cb.Style = pkg.Styles().DisplayName("")
		}
		out = append(out, cb)
	}
	return out
}

func captureRuns(p *wml.Paragraph) []block.RunFormat {
	runs := p.Runs()
	if len(runs) == 0 {
		return nil
	}
	out := make([]block.RunFormat, 0, len(runs))
	for _, r := range runs {
		out = append(out, block.FromRun(r))
	}
	return out
}

// isHeadingStyle reports whether a style name classifies its paragraph as
// a heading: the name starts with "heading", case-insensitively.
func isHeadingStyle(styleName string) bool {
	return len(styleName) >= 7 && strings.EqualFold(styleName[:7], "heading")
}

// headingLevel parses the style name's trailing whitespace-delimited token
// as the heading level, defaulting to 0 when it is not numeric.
func headingLevel(styleName string) int {
	fields := strings.Fields(styleName)
	if len(fields) == 0 {
		return 0
	}
	level, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0
	}
	return level
}
