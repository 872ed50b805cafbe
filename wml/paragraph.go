package wml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Paragraph is a <w:p> element: optional properties followed by ordered
// children (runs and preserved raw elements such as hyperlinks).
type Paragraph struct {
	Props    *ParaProps
	Children []Node // *Run or *RawNode, document order
}

func (*Paragraph) node() {}

// Runs returns the paragraph's runs in document order.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Children {
		if r, ok := c.(*Run); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// Text returns the concatenated text of all runs, with tabs and breaks
// rendered as "\t" and "\n".
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// SetRuns replaces every child of the paragraph with the given runs.
// Non-run children (hyperlinks, bookmarks) are discarded; re-rendering a
// paragraph's content always rebuilds it from plain runs.
func (p *Paragraph) SetRuns(runs []*Run) {
	p.Children = p.Children[:0]
	for _, r := range runs {
		p.Children = append(p.Children, r)
	}
}

// AppendRun adds a run at the end of the paragraph.
func (p *Paragraph) AppendRun(r *Run) {
	p.Children = append(p.Children, r)
}

// StyleID returns the w:pStyle value, or "" when unset.
func (p *Paragraph) StyleID() string {
	if p.Props == nil || p.Props.Style == nil {
		return ""
	}
	return p.Props.Style.Val
}

// SetStyleID sets the w:pStyle value.
func (p *Paragraph) SetStyleID(id string) {
	p.ensureProps()
	p.Props.Style = &ValAttr{Val: id}
}

// Alignment returns the w:jc value, or "" when unset.
func (p *Paragraph) Alignment() string {
	if p.Props == nil || p.Props.Jc == nil {
		return ""
	}
	return p.Props.Jc.Val
}

// SetAlignment sets the w:jc value.
func (p *Paragraph) SetAlignment(jc string) {
	p.ensureProps()
	p.Props.Jc = &ValAttr{Val: jc}
}

// PageBreakBefore reports whether the paragraph forces a page break. The
// flag has two independent representations: the explicit w:pageBreakBefore
// property and a w:br of type "page" inside any run. Either one counts.
func (p *Paragraph) PageBreakBefore() bool {
	if p.Props != nil && p.Props.PageBreak.Enabled() {
		return true
	}
	for _, r := range p.Runs() {
		if r.HasPageBreak() {
			return true
		}
	}
	return false
}

// SetPageBreakBefore sets or clears the explicit w:pageBreakBefore property.
func (p *Paragraph) SetPageBreakBefore(on bool) {
	p.ensureProps()
	if on {
		p.Props.PageBreak = &OnOff{}
	} else {
		p.Props.PageBreak = &OnOff{Val: "false"}
	}
}

func (p *Paragraph) ensureProps() {
	if p.Props == nil {
		p.Props = &ParaProps{}
	}
}

// ParaProps is <w:pPr>. Properties the editor touches are typed; the rest
// ride along as raw nodes.
type ParaProps struct {
	Style     *ValAttr // pStyle
	PageBreak *OnOff   // pageBreakBefore
	Jc        *ValAttr // jc
	Raw       []*RawNode
}

func (pp *ParaProps) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pStyle":
				pp.Style = &ValAttr{}
				if err := d.DecodeElement(pp.Style, &t); err != nil {
					return err
				}
			case "pageBreakBefore":
				pp.PageBreak = &OnOff{}
				if err := d.DecodeElement(pp.PageBreak, &t); err != nil {
					return err
				}
			case "jc":
				pp.Jc = &ValAttr{}
				if err := d.DecodeElement(pp.Jc, &t); err != nil {
					return err
				}
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				pp.Raw = append(pp.Raw, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "pPr" {
				return nil
			}
		}
	}
}

func (pp *ParaProps) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:pPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if pp.Style != nil {
		if err := pp.Style.marshalAs(e, "w:pStyle"); err != nil {
			return err
		}
	}
	if pp.PageBreak != nil {
		if err := pp.PageBreak.marshalAs(e, "w:pageBreakBefore"); err != nil {
			return err
		}
	}
	for _, raw := range pp.Raw {
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	if pp.Jc != nil {
		if err := pp.Jc.marshalAs(e, "w:jc"); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				p.Props = &ParaProps{}
				if err := d.DecodeElement(p.Props, &t); err != nil {
					return err
				}
			case "r":
				r := &Run{}
				if err := d.DecodeElement(r, &t); err != nil {
					return err
				}
				p.Children = append(p.Children, r)
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				p.Children = append(p.Children, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "p" {
				return nil
			}
		}
	}
}

func (p *Paragraph) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:p"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Props != nil {
		if err := p.Props.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	for _, c := range p.Children {
		switch n := c.(type) {
		case *Run:
			if err := n.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		case *RawNode:
			if err := n.MarshalXML(e, xml.StartElement{}); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
