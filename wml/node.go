// Package wml models the WordprocessingML document tree: reading a .docx
// package, mutating paragraphs, runs, and tables in memory, and writing the
// result back out. Only the elements the editing operations understand are
// parsed into typed nodes; everything else is preserved as raw token
// sequences so a load/save cycle does not drop content.
package wml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Node is a top-level body element or a table cell child: a paragraph, a
// table, or a preserved raw element.
type Node interface {
	node()
}

// Well-known namespace prefixes for re-serialization. Parsed tokens carry
// full namespace URIs; on output we restore the conventional prefix so the
// result matches what Word itself writes.
var nsPrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.microsoft.com/office/word/2010/wordml":                   "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":                   "w15",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
}

// prefixed rewrites a parsed xml.Name into its prefixed serialization form.
// Unknown namespaces are left alone and the encoder emits an xmlns
// declaration for them.
func prefixed(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	if p, ok := nsPrefixes[name.Space]; ok {
		return xml.Name{Local: p + ":" + name.Local}
	}
	return name
}

func prefixedAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		// Dropping xmlns declarations is safe: known namespaces get their
		// conventional prefix back and the root element declares them.
		if a.Name.Local == "xmlns" || a.Name.Space == "xmlns" {
			continue
		}
		out = append(out, xml.Attr{Name: prefixed(a.Name), Value: a.Value})
	}
	return out
}

// RawNode preserves an element subtree we do not model, token for token.
type RawNode struct {
	Name   xml.Name
	tokens []xml.Token
}

func (*RawNode) node() {}

// captureRaw consumes the element opened by start, including its end tag,
// and returns it as a RawNode.
func captureRaw(d *xml.Decoder, start xml.StartElement) (*RawNode, error) {
	rn := &RawNode{Name: start.Name}
	rn.tokens = append(rn.tokens, xml.CopyToken(start))
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unterminated element <%s>", start.Name.Local)
			}
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
		rn.tokens = append(rn.tokens, xml.CopyToken(tok))
	}
	return rn, nil
}

// MarshalXML replays the captured tokens, restoring namespace prefixes.
func (rn *RawNode) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, tok := range rn.tokens {
		switch t := tok.(type) {
		case xml.StartElement:
			st := xml.StartElement{Name: prefixed(t.Name), Attr: prefixedAttrs(t.Attr)}
			if err := e.EncodeToken(st); err != nil {
				return err
			}
		case xml.EndElement:
			if err := e.EncodeToken(xml.EndElement{Name: prefixed(t.Name)}); err != nil {
				return err
			}
		default:
			if err := e.EncodeToken(tok); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValAttr is the ubiquitous single-value WML element, e.g. <w:pStyle w:val="x"/>.
type ValAttr struct {
	Val string `xml:"val,attr"`
}

func (v *ValAttr) marshalAs(e *xml.Encoder, local string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: local},
		Attr: []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: v.Val}},
	}
	return e.EncodeElement(struct{}{}, start)
}

// OnOff is a WML toggle property such as <w:b/>. Presence means on unless
// the val attribute explicitly disables it.
type OnOff struct {
	Val string `xml:"val,attr"`
}

// Enabled reports whether the toggle is on. A nil receiver (absent element)
// is off.
func (o *OnOff) Enabled() bool {
	if o == nil {
		return false
	}
	switch o.Val {
	case "false", "0", "off":
		return false
	}
	return true
}

func (o *OnOff) marshalAs(e *xml.Encoder, local string) error {
	start := xml.StartElement{Name: xml.Name{Local: local}}
	if o.Val != "" {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: o.Val}}
	}
	return e.EncodeElement(struct{}{}, start)
}
