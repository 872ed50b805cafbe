package wml

import (
	"encoding/xml"
	"io"
)

// Document is the root <w:document> of word/document.xml.
type Document struct {
	Attrs []xml.Attr // root namespace declarations, preserved
	Body  *Body
}

// Body holds the ordered top-level nodes plus the trailing section
// properties, which Word requires as the last body child.
type Body struct {
	Nodes  []Node
	SectPr *SectPr
}

// Paragraphs returns the top-level paragraphs in document order, excluding
// any inside tables.
func (b *Body) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, n := range b.Nodes {
		if p, ok := n.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the top-level tables in document order.
func (b *Body) Tables() []*Table {
	var out []*Table
	for _, n := range b.Nodes {
		if t, ok := n.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Insert splices a node into the body at the given position.
func (b *Body) Insert(pos int, n Node) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.Nodes) {
		pos = len(b.Nodes)
	}
	b.Nodes = append(b.Nodes, nil)
	copy(b.Nodes[pos+1:], b.Nodes[pos:])
	b.Nodes[pos] = n
}

// Remove deletes the node at the given position.
func (b *Body) Remove(pos int) {
	if pos < 0 || pos >= len(b.Nodes) {
		return
	}
	b.Nodes = append(b.Nodes[:pos], b.Nodes[pos+1:]...)
}

// IndexOf returns the body position of the given node, or -1.
func (b *Body) IndexOf(n Node) int {
	for i, cand := range b.Nodes {
		if cand == n {
			return i
		}
	}
	return -1
}

// SectPr is <w:sectPr>; page margins are typed for the margin setter,
// everything else is preserved.
type SectPr struct {
	PgMar *PgMar
	Raw   []*RawNode
}

// PgMar is <w:pgMar>, margin values in twips.
type PgMar struct {
	Top    string `xml:"top,attr"`
	Right  string `xml:"right,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Header string `xml:"header,attr"`
	Footer string `xml:"footer,attr"`
	Gutter string `xml:"gutter,attr"`
}

func (d *Document) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	d.Attrs = append([]xml.Attr(nil), start.Attr...)
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "body" {
				d.Body = &Body{}
				if err := d.Body.unmarshal(dec, t); err != nil {
					return err
				}
				continue
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "document" {
				return nil
			}
		}
	}
}

func (b *Body) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
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
			case "p":
				p := &Paragraph{}
				if err := d.DecodeElement(p, &t); err != nil {
					return err
				}
				b.Nodes = append(b.Nodes, p)
			case "tbl":
				tbl := &Table{}
				if err := d.DecodeElement(tbl, &t); err != nil {
					return err
				}
				b.Nodes = append(b.Nodes, tbl)
			case "sectPr":
				b.SectPr = &SectPr{}
				if err := b.SectPr.unmarshal(d, t); err != nil {
					return err
				}
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				b.Nodes = append(b.Nodes, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "body" {
				return nil
			}
		}
	}
}

func (sp *SectPr) unmarshal(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "pgMar" {
				sp.PgMar = &PgMar{}
				if err := d.DecodeElement(sp.PgMar, &t); err != nil {
					return err
				}
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			sp.Raw = append(sp.Raw, raw)
		case xml.EndElement:
			if t.Name.Local == "sectPr" {
				return nil
			}
		}
	}
}

func (d *Document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:document"}}
	if len(d.Attrs) > 0 {
		for _, a := range d.Attrs {
			name := a.Name
			if name.Space == "xmlns" {
				name = xml.Name{Local: "xmlns:" + name.Local}
			} else {
				name = prefixed(name)
			}
			start.Attr = append(start.Attr, xml.Attr{Name: name, Value: a.Value})
		}
	} else {
		start.Attr = []xml.Attr{{
			Name:  xml.Name{Local: "xmlns:w"},
			Value: "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
		}}
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	bs := xml.StartElement{Name: xml.Name{Local: "w:body"}}
	if err := e.EncodeToken(bs); err != nil {
		return err
	}
	if d.Body != nil {
		for _, n := range d.Body.Nodes {
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
		if d.Body.SectPr != nil {
			if err := d.Body.SectPr.marshal(e); err != nil {
				return err
			}
		}
	}
	if err := e.EncodeToken(xml.EndElement{Name: bs.Name}); err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (sp *SectPr) marshal(e *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:sectPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, raw := range sp.Raw {
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	if sp.PgMar != nil {
		ms := xml.StartElement{Name: xml.Name{Local: "w:pgMar"}}
		add := func(local, val string) {
			if val != "" {
				ms.Attr = append(ms.Attr, xml.Attr{Name: xml.Name{Local: "w:" + local}, Value: val})
			}
		}
		add("top", sp.PgMar.Top)
		add("right", sp.PgMar.Right)
		add("bottom", sp.PgMar.Bottom)
		add("left", sp.PgMar.Left)
		add("header", sp.PgMar.Header)
		add("footer", sp.PgMar.Footer)
		add("gutter", sp.PgMar.Gutter)
		if err := e.EncodeElement(struct{}{}, ms); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}
