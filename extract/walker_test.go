package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/wml"
)

const testStyles = `<w:style w:type="paragraph" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading10"><w:name w:val="heading 10"/></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/></w:style>`

// openTestDoc builds a DOCX from a body fragment and opens it.
func openTestDoc(t *testing.T, body string) *wml.Package {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")
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

func TestBlocks_ParagraphsAndHeadings(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Overview</w:t></w:r></w:p>
<w:p><w:r><w:t>Plain text.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Title"/></w:pPr><w:r><w:t>Not a heading</w:t></w:r></w:p>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	h, ok := blocks[0].(*block.Heading)
	if !ok {
		t.Fatalf("block 0 should be a heading, got %T", blocks[0])
	}
	if h.Level != 1 || h.Text != "Overview" || h.Style != "Heading 1" || h.Index != 0 {
		t.Errorf("heading = %+v", h)
	}

	p, ok := blocks[1].(*block.Paragraph)
	if !ok {
		t.Fatalf("block 1 should be a paragraph, got %T", blocks[1])
	}
	if p.Text != "Plain text." || p.Style != "Normal" || p.Index != 1 {
		t.Errorf("paragraph = %+v", p)
	}

	// The Title style does not start with "heading".
	if _, ok := blocks[2].(*block.Paragraph); !ok {
		t.Errorf("Title-styled block should be a paragraph, got %T", blocks[2])
	}
}

func TestBlocks_SequenceAndIDs(t *testing.T) {
	body := `<w:p><w:r><w:t>a</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>c</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p><w:r><w:t>b</w:t></w:r></w:p>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	seen := make(map[string]bool)
	for i, b := range blocks {
		if b.Seq() != i {
			t.Errorf("block %d has sequence %d", i, b.Seq())
		}
		if b.ID() == "" || seen[b.ID()] {
			t.Errorf("block %d has missing or duplicate id %q", i, b.ID())
		}
		seen[b.ID()] = true
	}

	// Blocks keep body order: paragraph, table meta, cell, paragraph.
	kinds := []block.Kind{block.KindParagraph, block.KindTableMeta, block.KindTableCell, block.KindParagraph}
	if len(blocks) != len(kinds) {
		t.Fatalf("expected %d blocks, got %d", len(kinds), len(blocks))
	}
	for i, k := range kinds {
		if blocks[i].Kind() != k {
			t.Errorf("block %d kind = %v, want %v", i, blocks[i].Kind(), k)
		}
	}
}

func TestBlocks_UnmergedTable(t *testing.T) {
	body := `<w:tbl><w:tblGrid><w:gridCol/><w:gridCol/><w:gridCol/></w:tblGrid>
<w:tr><w:tc><w:p><w:r><w:t>a</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>b</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>c</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>d</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>e</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>f</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	if len(blocks) != 7 {
		t.Fatalf("expected meta + 6 cells, got %d blocks", len(blocks))
	}
	meta := blocks[0].(*block.TableMeta)
	if meta.Rows != 2 || meta.Cols != 3 {
		t.Errorf("meta shape = %dx%d, want 2x3", meta.Rows, meta.Cols)
	}
	texts := ""
	for _, b := range blocks[1:] {
		cell := b.(*block.TableCell)
		if cell.RowSpan != 1 || cell.ColSpan != 1 {
			t.Errorf("cell (%d,%d) has spans %dx%d", cell.Row, cell.Col, cell.RowSpan, cell.ColSpan)
		}
		texts += cell.Text
	}
	if texts != "abcdef" {
		t.Errorf("cells should come in row-major order, got %q", texts)
	}
}

func TestBlocks_VerticalMerge(t *testing.T) {
	body := `<w:tbl><w:tblGrid><w:gridCol/><w:gridCol/></w:tblGrid>
<w:tr><w:tc><w:tcPr><w:vMerge w:val="restart"/></w:tcPr><w:p><w:r><w:t>tall</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>r0</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc><w:tc><w:p><w:r><w:t>r1</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:vMerge/></w:tcPr><w:p/></w:tc><w:tc><w:p><w:r><w:t>r2</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	// Meta plus one merged cell plus three unmerged.
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(blocks))
	}
	merged := blocks[1].(*block.TableCell)
	if merged.Row != 0 || merged.Col != 0 || merged.RowSpan != 3 || merged.ColSpan != 1 {
		t.Errorf("merged cell = %+v", merged)
	}
	if merged.Text != "tall" {
		t.Errorf("merged text = %q, want %q", merged.Text, "tall")
	}
}

func TestBlocks_RectangularMerge(t *testing.T) {
	// 3x3 with a 2x2 merge in the top left: 1 meta + 6 primary cells.
	body := `<w:tbl><w:tblGrid><w:gridCol/><w:gridCol/><w:gridCol/></w:tblGrid>
<w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/><w:vMerge w:val="restart"/></w:tcPr><w:p><w:r><w:t>big</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>c</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/><w:vMerge/></w:tcPr><w:p/></w:tc><w:tc><w:p><w:r><w:t>f</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>g</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>h</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>i</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	if len(blocks) != 7 {
		t.Fatalf("expected meta + 6 cells, got %d blocks", len(blocks))
	}
	big := blocks[1].(*block.TableCell)
	if big.RowSpan != 2 || big.ColSpan != 2 {
		t.Errorf("merged region spans %dx%d, want 2x2", big.RowSpan, big.ColSpan)
	}
}

func TestBlocks_ZeroRowTable(t *testing.T) {
	blocks := New(nil).Blocks(openTestDoc(t, `<w:tbl><w:tblGrid><w:gridCol/></w:tblGrid></w:tbl>`))
	if len(blocks) != 1 {
		t.Fatalf("expected only the meta block, got %d", len(blocks))
	}
	meta := blocks[0].(*block.TableMeta)
	if meta.Rows != 0 {
		t.Errorf("meta rows = %d, want 0", meta.Rows)
	}
}

func TestBlocks_EmptyCell(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	cell := blocks[1].(*block.TableCell)
	if cell.Text != "" {
		t.Errorf("empty cell text = %q", cell.Text)
	}
	if cell.Style != "Normal" {
		t.Errorf("empty cell style = %q, want Normal", cell.Style)
	}
	if len(cell.Runs) != 0 {
		t.Errorf("empty cell should have no runs, got %d", len(cell.Runs))
	}
}

func TestBlocks_TableStyle(t *testing.T) {
	body := `<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/></w:tblPr><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>
<w:tbl><w:tr><w:tc><w:p/></w:tc></w:tr></w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	styled := blocks[0].(*block.TableMeta)
	if styled.Style != "Table Grid" {
		t.Errorf("styled table style = %q, want %q", styled.Style, "Table Grid")
	}
	unstyled := blocks[2].(*block.TableMeta)
	if unstyled.Style != "" {
		t.Errorf("unstyled table should report no style, got %q", unstyled.Style)
	}
}

func TestBlocks_PageBreakFromRun(t *testing.T) {
	body := `<w:p><w:r><w:br w:type="page"/></w:r><w:r><w:t>after break</w:t></w:r></w:p>`
	blocks := New(nil).Blocks(openTestDoc(t, body))
	if !blocks[0].(*block.Paragraph).PageBreak {
		t.Error("a run-level page break should set the block's page break flag")
	}
}

func TestBlocks_CellRunsSpanParagraphs(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc>
<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r></w:p>
<w:p><w:r><w:t>plain</w:t></w:r></w:p>
</w:tc></w:tr></w:tbl>`
	blocks := New(nil).Blocks(openTestDoc(t, body))

	cell := blocks[1].(*block.TableCell)
	if cell.Text != "bold\nplain" {
		t.Errorf("cell text = %q", cell.Text)
	}
	if len(cell.Runs) != 2 {
		t.Fatalf("expected runs from both paragraphs, got %d", len(cell.Runs))
	}
	if !cell.Runs[0].Bold || cell.Runs[1].Bold {
		t.Errorf("run formatting lost: %+v", cell.Runs)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style    string
		expected int
	}{
		{"Heading 1", 1},
		{"Heading 10", 10},
		{"Heading", 0},
		{"Heading Custom", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.style); got != tt.expected {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.style, got, tt.expected)
		}
	}
}
