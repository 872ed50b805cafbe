package wml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
)

const documentPart = "word/document.xml"
const stylesPart = "word/styles.xml"

// Package is an open .docx package: the parsed document tree plus every
// other archive part, kept verbatim for write-back.
type Package struct {
	Document *Document

	styles *StyleCatalog
	parts  map[string][]byte
	order  []string
}

// OpenFile opens a .docx file and parses its document and styles parts.
func OpenFile(path string) (*Package, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()
	return openZip(&zr.Reader)
}

// OpenReader opens a .docx package from an in-memory or seekable source.
func OpenReader(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return openZip(zr)
}

func openZip(zr *zip.Reader) (*Package, error) {
	pkg := &Package{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		pkg.parts[f.Name] = data
		pkg.order = append(pkg.order, f.Name)
	}

	docData, ok := pkg.parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("missing required part: %s", documentPart)
	}
	doc, err := parseDocument(docData)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	pkg.Document = doc

	if stylesData, ok := pkg.parts[stylesPart]; ok {
		// Styles are optional; a parse failure just leaves the catalog empty.
		if cat, err := parseStyles(stylesData); err == nil {
			pkg.styles = cat
		}
	}
	if pkg.styles == nil {
		pkg.styles = newStyleCatalog()
	}
	return pkg, nil
}

func parseDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Most packages are UTF-8, but the XML declaration may name another
	// encoding; decode through a charset-aware reader instead of failing.
	dec.CharsetReader = charset.NewReaderLabel
	doc := &Document{}
	if err := dec.Decode(doc); err != nil {
		return nil, err
	}
	if doc.Body == nil {
		doc.Body = &Body{}
	}
	return doc, nil
}

// New creates an empty in-memory package with the minimal part set: content
// types, package relationships, an empty document, and a styles part
// carrying Normal, Heading 1-9, and Table Grid.
func New() *Package {
	pkg := &Package{parts: make(map[string][]byte)}
	pkg.parts["[Content_Types].xml"] = []byte(skeletonContentTypes)
	pkg.parts["_rels/.rels"] = []byte(skeletonRels)
	pkg.parts["word/_rels/document.xml.rels"] = []byte(skeletonDocRels)
	pkg.parts[stylesPart] = []byte(skeletonStyles())
	pkg.order = []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		documentPart,
		stylesPart,
	}
	pkg.parts[documentPart] = nil // regenerated at save
	pkg.Document = &Document{Body: &Body{
		SectPr: &SectPr{PgMar: &PgMar{
			Top: "1440", Right: "1800", Bottom: "1440", Left: "1800",
			Header: "851", Footer: "992", Gutter: "0",
		}},
	}}
	cat, err := parseStyles([]byte(skeletonStyles()))
	if err != nil {
		cat = newStyleCatalog()
	}
	pkg.styles = cat
	return pkg
}

// Styles returns the package's style catalog.
func (p *Package) Styles() *StyleCatalog {
	return p.styles
}

// MarshalDocument serializes the document tree to word/document.xml bytes.
func (p *Package) MarshalDocument() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(p.Document); err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes the package to path, regenerating word/document.xml from
// the tree and copying every other part byte-for-byte.
func (p *Package) SaveFile(path string) error {
	docData, err := p.MarshalDocument()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	zw := zip.NewWriter(f)

	names := p.partOrder()
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
		data := p.parts[name]
		if name == documentPart {
			data = docData
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return f.Close()
}

func (p *Package) partOrder() []string {
	if len(p.order) == len(p.parts) {
		return p.order
	}
	names := make([]string, 0, len(p.parts))
	for name := range p.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const skeletonContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const skeletonRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const skeletonDocRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

// skeletonStyles builds the styles part for new documents: Normal,
// Heading 1-9 (internal lowercase names, as Word writes them), Table Grid.
func skeletonStyles() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:type="paragraph" w:default="1" w:styleId="Normal">
    <w:name w:val="Normal"/>
  </w:style>
`)
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&sb, `  <w:style w:type="paragraph" w:styleId="Heading%d">
    <w:name w:val="heading %d"/>
    <w:basedOn w:val="Normal"/>
  </w:style>
`, i, i)
	}
	sb.WriteString(`  <w:style w:type="table" w:styleId="TableGrid">
    <w:name w:val="Table Grid"/>
  </w:style>
</w:styles>`)
	return sb.String()
}
