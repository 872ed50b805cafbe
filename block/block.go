// Package block defines the structural content model produced by
// extraction and consumed by the editors: an ordered sequence of typed
// blocks (paragraphs, headings, table metadata, combined table cells) and
// the flat run-formatting record used to preserve styling across edits.
package block

// Kind identifies a block variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindParagraph
	KindHeading
	KindTableMeta
	KindTableCell
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindTableMeta:
		return "table"
	case KindTableCell:
		return "table_cell"
	default:
		return "unknown"
	}
}

// Block is one emitted structural unit. The sequence index defines document
// order within a single extraction pass; ids are unique per pass.
type Block interface {
	Kind() Kind
	ID() string
	Seq() int
}

// Common carries the fields shared by every block variant.
type Common struct {
	BlockID  string
	Sequence int
}

func (c Common) ID() string { return c.BlockID }
func (c Common) Seq() int   { return c.Sequence }

// Paragraph is a top-level body paragraph.
type Paragraph struct {
	Common
	Index     int // position among top-level paragraphs
	Text      string
	Style     string // paragraph style display name
	Alignment Alignment
	PageBreak bool // page break before, from either representation
	Runs      []RunFormat
}

func (*Paragraph) Kind() Kind { return KindParagraph }

// Heading is a paragraph whose style classifies it as a heading.
type Heading struct {
	Common
	Index     int
	Text      string
	Style     string
	Level     int // parsed from the style name's trailing token, 0 if non-numeric
	Alignment Alignment
	PageBreak bool
	Runs      []RunFormat
}

func (*Heading) Kind() Kind { return KindHeading }

// TableMeta describes a table as a whole; it precedes the table's cell
// blocks in the sequence.
type TableMeta struct {
	Common
	Index int // position among top-level tables
	Rows  int
	Cols  int // logical column count
	Style string
}

func (*TableMeta) Kind() Kind { return KindTableMeta }

// TableCell is the combined content of one primary (top-left) cell of a
// merged region, or of an unmerged cell. Continuation positions emit no
// block.
type TableCell struct {
	Common
	Table     int // table index
	Row       int // primary row
	Col       int // primary logical column
	RowSpan   int
	ColSpan   int
	Text      string // newline-joined across the cell's paragraphs
	Style     string // first paragraph's style
	Alignment Alignment
	PageBreak bool
	Runs      []RunFormat // all runs from all paragraphs, order preserved
}

func (*TableCell) Kind() Kind { return KindTableCell }
