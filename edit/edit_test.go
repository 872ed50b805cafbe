package edit

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/extract"
	"github.com/docforge/docforge/wml"
)

const testStyles = `<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading10"><w:name w:val="heading 10"/></w:style>
<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"/></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>`

// openTestDoc builds a DOCX from a body fragment and opens it.
func openTestDoc(t *testing.T, body string) *wml.Package {
	t.Helper()

	docxPath := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	zw := zip.NewWriter(f)

	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`))

	w, _ = zw.Create("_rels/.rels")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`))

	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + body + `</w:body>
</w:document>`))

	w, _ = zw.Create("word/styles.xml")
	w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + testStyles + `</w:styles>`))

	zw.Close()
	f.Close()

	pkg, err := wml.OpenFile(docxPath)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	return pkg
}

// nodeKind labels a body node for layout assertions.
func nodeKind(n wml.Node) string {
	switch n.(type) {
	case *wml.Paragraph:
		return "p"
	case *wml.Table:
		return "tbl"
	}
	return "other"
}

// paragraphTexts returns the document's paragraph texts in order.
func paragraphTexts(pkg *wml.Package) []string {
	var out []string
	for _, p := range pkg.Document.Body.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

// captureBlockRuns extracts the run snapshot of the paragraph at index.
func captureBlockRuns(t *testing.T, pkg *wml.Package, index int) []block.RunFormat {
	t.Helper()
	for _, b := range extract.New(nil).Blocks(pkg) {
		switch v := b.(type) {
		case *block.Paragraph:
			if v.Index == index {
				return v.Runs
			}
		case *block.Heading:
			if v.Index == index {
				return v.Runs
			}
		}
	}
	t.Fatalf("paragraph %d not found", index)
	return nil
}
