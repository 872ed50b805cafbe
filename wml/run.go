package wml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Run is a <w:r> element: optional properties plus ordered content
// (text, tabs, breaks, and preserved raw children).
type Run struct {
	Props    *RunProps
	Children []RunChild
}

func (*Run) node() {}

// RunChild is one ordered item of run content.
type RunChild interface {
	runChild()
}

// Text is a <w:t> element.
type Text struct {
	Space string // xml:space attribute
	Value string
}

// Tab is a <w:tab/> inside a run.
type Tab struct{}

// Break is a <w:br/>; Type is "page", "column", or "" for a line break.
type Break struct {
	Type string
}

func (*Text) runChild()    {}
func (*Tab) runChild()     {}
func (*Break) runChild()   {}
func (*RawNode) runChild() {}

// Text renders the run's content: w:t verbatim, tabs as "\t", breaks as "\n".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, c := range r.Children {
		switch t := c.(type) {
		case *Text:
			sb.WriteString(t.Value)
		case *Tab:
			sb.WriteByte('\t')
		case *Break:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// HasPageBreak reports whether the run contains an explicit page-type break.
func (r *Run) HasPageBreak() bool {
	for _, c := range r.Children {
		if br, ok := c.(*Break); ok && br.Type == "page" {
			return true
		}
	}
	return false
}

// SetText replaces the run content with the given text. Newlines become
// line breaks and tabs become tab elements, so the text survives a
// round-trip through Text().
func (r *Run) SetText(text string) {
	r.Children = r.Children[:0]
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		v := cur.String()
		t := &Text{Value: v}
		if v != strings.TrimSpace(v) {
			t.Space = "preserve"
		}
		r.Children = append(r.Children, t)
		cur.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\n':
			flush()
			r.Children = append(r.Children, &Break{})
		case '\t':
			flush()
			r.Children = append(r.Children, &Tab{})
		default:
			cur.WriteRune(ch)
		}
	}
	flush()
}

// RunProps is <w:rPr>. Formatting the codec understands is typed; anything
// else is preserved raw.
type RunProps struct {
	Bold      *OnOff   // b
	Italic    *OnOff   // i
	Underline *ValAttr // u
	Color     *ValAttr // color
	Size      *ValAttr // sz, half-points
	SizeCs    *ValAttr // szCs
	Fonts     *Fonts   // rFonts
	Raw       []*RawNode
}

// Fonts is <w:rFonts>.
type Fonts struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	EastAsia string `xml:"eastAsia,attr"`
	CS       string `xml:"cs,attr"`
}

// UnderlineOn reports whether the underline property is an active style.
func (rp *RunProps) UnderlineOn() bool {
	if rp == nil || rp.Underline == nil {
		return false
	}
	return rp.Underline.Val != "none"
}

func (rp *RunProps) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "b":
				rp.Bold = &OnOff{}
				if err := d.DecodeElement(rp.Bold, &t); err != nil {
					return err
				}
			case "i":
				rp.Italic = &OnOff{}
				if err := d.DecodeElement(rp.Italic, &t); err != nil {
					return err
				}
			case "u":
				rp.Underline = &ValAttr{}
				if err := d.DecodeElement(rp.Underline, &t); err != nil {
					return err
				}
			case "color":
				rp.Color = &ValAttr{}
				if err := d.DecodeElement(rp.Color, &t); err != nil {
					return err
				}
			case "sz":
				rp.Size = &ValAttr{}
				if err := d.DecodeElement(rp.Size, &t); err != nil {
					return err
				}
			case "szCs":
				rp.SizeCs = &ValAttr{}
				if err := d.DecodeElement(rp.SizeCs, &t); err != nil {
					return err
				}
			case "rFonts":
				rp.Fonts = &Fonts{}
				if err := d.DecodeElement(rp.Fonts, &t); err != nil {
					return err
				}
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				rp.Raw = append(rp.Raw, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "rPr" {
				return nil
			}
		}
	}
}

func (rp *RunProps) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:rPr"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if rp.Fonts != nil {
		fs := xml.StartElement{Name: xml.Name{Local: "w:rFonts"}}
		if rp.Fonts.ASCII != "" {
			fs.Attr = append(fs.Attr, xml.Attr{Name: xml.Name{Local: "w:ascii"}, Value: rp.Fonts.ASCII})
		}
		if rp.Fonts.HAnsi != "" {
			fs.Attr = append(fs.Attr, xml.Attr{Name: xml.Name{Local: "w:hAnsi"}, Value: rp.Fonts.HAnsi})
		}
		if rp.Fonts.EastAsia != "" {
			fs.Attr = append(fs.Attr, xml.Attr{Name: xml.Name{Local: "w:eastAsia"}, Value: rp.Fonts.EastAsia})
		}
		if rp.Fonts.CS != "" {
			fs.Attr = append(fs.Attr, xml.Attr{Name: xml.Name{Local: "w:cs"}, Value: rp.Fonts.CS})
		}
		if err := e.EncodeElement(struct{}{}, fs); err != nil {
			return err
		}
	}
	if rp.Bold != nil {
		if err := rp.Bold.marshalAs(e, "w:b"); err != nil {
			return err
		}
	}
	if rp.Italic != nil {
		if err := rp.Italic.marshalAs(e, "w:i"); err != nil {
			return err
		}
	}
	if rp.Underline != nil {
		if err := rp.Underline.marshalAs(e, "w:u"); err != nil {
			return err
		}
	}
	if rp.Color != nil {
		if err := rp.Color.marshalAs(e, "w:color"); err != nil {
			return err
		}
	}
	if rp.Size != nil {
		if err := rp.Size.marshalAs(e, "w:sz"); err != nil {
			return err
		}
	}
	if rp.SizeCs != nil {
		if err := rp.SizeCs.marshalAs(e, "w:szCs"); err != nil {
			return err
		}
	}
	for _, raw := range rp.Raw {
		if err := raw.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
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
			case "rPr":
				r.Props = &RunProps{}
				if err := d.DecodeElement(r.Props, &t); err != nil {
					return err
				}
			case "t":
				var raw struct {
					Space string `xml:"space,attr"`
					Value string `xml:",chardata"`
				}
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				r.Children = append(r.Children, &Text{Space: raw.Space, Value: raw.Value})
			case "tab":
				if err := d.Skip(); err != nil {
					return err
				}
				r.Children = append(r.Children, &Tab{})
			case "br":
				var raw struct {
					Type string `xml:"type,attr"`
				}
				if err := d.DecodeElement(&raw, &t); err != nil {
					return err
				}
				r.Children = append(r.Children, &Break{Type: raw.Type})
			default:
				raw, err := captureRaw(d, t)
				if err != nil {
					return err
				}
				r.Children = append(r.Children, raw)
			}
		case xml.EndElement:
			if t.Name.Local == "r" {
				return nil
			}
		}
	}
}

func (r *Run) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: "w:r"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Props != nil {
		if err := r.Props.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}
	for _, c := range r.Children {
		switch t := c.(type) {
		case *Text:
			ts := xml.StartElement{Name: xml.Name{Local: "w:t"}}
			if t.Space != "" {
				ts.Attr = []xml.Attr{{Name: xml.Name{Local: "xml:space"}, Value: t.Space}}
			}
			if err := e.EncodeElement(t.Value, ts); err != nil {
				return err
			}
		case *Tab:
			if err := e.EncodeElement(struct{}{}, xml.StartElement{Name: xml.Name{Local: "w:tab"}}); err != nil {
				return err
			}
		case *Break:
			bs := xml.StartElement{Name: xml.Name{Local: "w:br"}}
			if t.Type != "" {
				bs.Attr = []xml.Attr{{Name: xml.Name{Local: "w:type"}, Value: t.Type}}
			}
			if err := e.EncodeElement(struct{}{}, bs); err != nil {
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
