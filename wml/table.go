package wml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Table is a <w:tbl> element.
type Table struct {
	Props *TableProps
	Grid  *TableGrid
	Rows  []*TableRow
}

func (*Table) node() {}

// TableProps is <w:tblPr>; only the style reference is typed.
type TableProps struct {
	Style *ValAttr // tblStyle
	Raw   []*RawNode
}

// TableGrid is <w:tblGrid>, the logical column definitions.
type TableGrid struct {
	Cols []GridCol
}

// GridCol is <w:gridCol>.
type GridCol struct {
	W string // width in twips
}

// TableRow is <w:tr>.
type TableRow struct {
	PropsRaw *RawNode // trPr preserved verbatim
	Cells    []*TableCell
	Raw      []*RawNode
}

// MergeState classifies a cell's role in a vertical merge.
type MergeState int

const (
	MergeNone MergeState = iota
	MergeRestart
	MergeContinue
)

// TableCell is a <w:tc>. Cell content shares the body Node interface:
// paragraphs are typed, nested tables and anything else ride along raw.
type TableCell struct {
	Props    *CellProps
	Children []Node
}

// CellProps is <w:tcPr>.
type CellProps struct {
	GridSpan *ValAttr
	VMerge   *VMerge
	Raw      []*RawNode
}

// VMerge is <w:vMerge>; an absent val attribute means "continue".
type VMerge struct {
	Val string `xml:"val,attr"`
}

// Paragraphs returns the cell's paragraphs in document order.
func (c *TableCell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range c.Children {
		if p, ok := n.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the newline-joined text of the cell's paragraphs.
func (c *TableCell) Text() string {
	paras := c.Paragraphs()
	parts := make([]string, len(paras))
	for i, p := range paras {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// ColSpan returns the number of logical columns the cell covers (>= 1).
func (c *TableCell) ColSpan() int {
	if c.Props == nil || c.Props.GridSpan == nil {
		return 1
	}
	if n, err := strconv.Atoi(c.Props.GridSpan.Val); err == nil && n > 0 {
		return n
	}
	return 1
}

// SetColSpan sets the gridSpan property. A span of 1 removes it.
func (c *TableCell) SetColSpan(n int) {
	c.ensureProps()
	if n <= 1 {
		c.Props.GridSpan = nil
		return
	}
	c.Props.GridSpan = &ValAttr{Val: strconv.Itoa(n)}
}

// VMergeState classifies the cell's vertical-merge flag. A vMerge element
// with val "restart" starts a span; present with any other (or no) value
// continues one; absent means unmerged.
func (c *TableCell) VMergeState() MergeState {
	if c.Props == nil || c.Props.VMerge == nil {
		return MergeNone
	}
	if c.Props.VMerge.Val == "restart" {
		return MergeRestart
	}
	return MergeContinue
}

// SetVMerge sets the vertical-merge flag; MergeNone removes it.
func (c *TableCell) SetVMerge(s MergeState) {
	c.ensureProps()
	switch s {
	case MergeNone:
		c.Props.VMerge = nil
	case MergeRestart:
		c.Props.VMerge = &VMerge{Val: "restart"}
	case MergeContinue:
		c.Props.VMerge = &VMerge{}
	}
}

func (c *TableCell) ensureProps() {
	if c.Props == nil {
		c.Props = &CellProps{}
	}
}

// StyleID returns the table style reference, or "".
func (t *Table) StyleID() string {
	if t.Props == nil || t.Props.Style == nil {
		return ""
	}
	return t.Props.Style.Val
}

// ColumnCount returns the logical column count from the grid definitions,
// falling back to the first row's span sum, then to zero.
func (t *Table) ColumnCount() int {
	if t.Grid != nil && len(t.Grid.Cols) > 0 {
		return len(t.Grid.Cols)
	}
	if len(t.Rows) > 0 {
		n := 0
		for _, c := range t.Rows[0].Cells {
			n += c.ColSpan()
		}
		return n
	}
	return 0
}

func (t *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "tblPr":
				t.Props = &TableProps{}
				if err := t.Props.unmarshal(d, tt); err != nil {
					return err
				}
			case "tblGrid":
				t.Grid = &TableGrid{}
				if err := t.Grid.unmarshal(d, tt); err != nil {
					return err
				}
			case "tr":
				row := &TableRow{}
				if err := row.unmarshal(d, tt); err != nil {
					return err
				}
				t.Rows = append(t.Rows, row)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if tt.Name.Local == "tbl" {
				return nil
			}
		}
	}
}

func (tp *TableProps) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tblStyle" {
				tp.Style = &ValAttr{}
				if err := d.DecodeElement(tp.Style, &t); err != nil {
					return err
				}
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			tp.Raw = append(tp.Raw, raw)
		case xml.EndElement:
			if t.Name.Local == "tblPr" {
				return nil
			}
		}
	}
}

func (g *TableGrid) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "gridCol" {
				var col struct {
					W string `xml:"w,attr"`
				}
				if err := d.DecodeElement(&col, &t); err != nil {
					return err
				}
				g.Cols = append(g.Cols, GridCol{W: col.W})
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "tblGrid" {
				return nil
			}
		}
	}
}

func (r *TableRow) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr":
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.PropsRaw = raw
			case "tc":
				cell := &TableCell{}
				if err := cell.unmarshal(d, t); err != nil {
					return err
				}
				r.Cells = append(r.Cells, cell)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.Raw = append(r.Raw, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "tr" {
				return nil
			}
		}
	}
}

func (c *TableCell) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				c.Props = &CellProps{}
				if err := c.Props.unmarshal(d, t); err != nil {
					return err
				}
			case "p":
				p := &Paragraph{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				c.Children = append(c.Children, p)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				c.Children = append(c.Children, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "tc" {
				return nil
			}
		}
	}
}

func (cp *CellProps) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "gridSpan":
				cp.GridSpan = &ValAttr{}
				if err := d.DecodeElement(cp.GridSpan, &t); err != nil {
					return err
				}
			case "vMerge":
				cp.VMerge = &VMerge{}
				if err := d.DecodeElement(cp.VMerge, &t); err != nil {
					return err
				}
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				cp.Raw = append(cp.Raw, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "tcPr" {
				return nil
			}
		}
	}
}

func (t *Table) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tbl"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if t.Props != nil {
		ps := xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}
		if err := e.EncodeToken(ps); err != nil {
			return err
		}
		if t.Props.Style != nil {
			if err := t.Props.Style.marshalAs(e, "w:tblStyle"); err != nil {
				return err
			}
		}
		for _, raw := range t.Props.Raw {
			if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: ps.Name}); err != nil {
			return err
		}
	}
	if t.Grid != nil {
		gs := xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}
		if err := e.EncodeToken(gs); err != nil {
			return err
		}
		for _, col := range t.Grid.Cols {
			cs := xml.StartElement{Name: xml.Name{Local: "w:gridCol"}}
			if col.W != "" {
				cs.Attr = []xml.Attr{{Name: xml.Name{Local: "w:w"}, Value: col.W}}
			}
			if err := e.EncodeElement(struct{}{}, cs); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: gs.Name}); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		rs := xml.StartElement{Name: xml.Name{Local: "w:tr"}}
		if err := e.EncodeToken(rs); err != nil {
			return err
		}
		if row.PropsRaw != nil {
			if err := row.PropsRaw.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
		for _, raw := range row.Raw {
			if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
		for _, cell := range row.Cells {
			if err := cell.marshal(e); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: rs.Name}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (c *TableCell) marshal(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:tc"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if c.Props != nil {
		ps := xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}
		if err := e.EncodeToken(ps); err != nil {
			return err
		}
		if c.Props.GridSpan != nil {
			if err := c.Props.GridSpan.marshalAs(e, "w:gridSpan"); err != nil {
				return err
			}
		}
		if c.Props.VMerge != nil {
			vs := xml.StartElement{Name: xml.Name{Local: "w:vMerge"}}
			if c.Props.VMerge.Val != "" {
				vs.Attr = []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: c.Props.VMerge.Val}}
			}
			if err := e.EncodeElement(struct{}{}, vs); err != nil {
				return err
			}
		}
		for _, raw := range c.Props.Raw {
			if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
		if err := e.EncodeToken(xml.EndElement{Name: ps.Name}); err != nil {
			return err
		}
	}
	// A cell must contain at least one paragraph to be valid WML.
	if len(c.Paragraphs()) == 0 {
		empty := &Paragraph{}
		if err := empty.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	for _, n := range c.Children {
		switch t := n.(type) {
		case *Paragraph:
			if err := t.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		case *Table:
			if err := t.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		case *RawNode:
			if err := t.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
