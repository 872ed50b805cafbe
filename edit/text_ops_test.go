package edit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/docerr"
)

func TestAddParagraph(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>existing</w:t></w:r></w:p>`)
	ed := NewEditor(nil)

	idx, err := ed.AddParagraph(pkg, "added", ParagraphOptions{
		Bold:      true,
		FontName:  "Georgia",
		SizePt:    14,
		Alignment: block.AlignCenter,
	})
	if err != nil {
		t.Fatalf("AddParagraph() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("index = %d, want 1", idx)
	}

	p := pkg.Document.Body.Paragraphs()[1]
	if p.Text() != "added" {
		t.Errorf("Text() = %q", p.Text())
	}
	if p.Alignment() != "center" {
		t.Errorf("Alignment() = %q, want center", p.Alignment())
	}
	f := block.FromRun(p.Runs()[0])
	if !f.Bold || f.FontName != "Georgia" || f.SizePt != 14 {
		t.Errorf("run format = %+v", f)
	}
}

func TestAddParagraph_WithStyle(t *testing.T) {
	pkg := openTestDoc(t, `<w:p/>`)
	_, err := NewEditor(nil).AddParagraph(pkg, "styled", ParagraphOptions{Style: "Quote"})
	if err != nil {
		t.Fatalf("AddParagraph() error = %v", err)
	}
	if got := pkg.Document.Body.Paragraphs()[1].StyleID(); got != "Quote" {
		t.Errorf("StyleID() = %q, want Quote", got)
	}
}

func TestAddHeading(t *testing.T) {
	pkg := openTestDoc(t, ``)
	ed := NewEditor(nil)

	if _, err := ed.AddHeading(pkg, "Chapter", 2); err != nil {
		t.Fatalf("AddHeading() error = %v", err)
	}
	p := pkg.Document.Body.Paragraphs()[0]
	if got := p.StyleID(); got != "Heading2" {
		t.Errorf("StyleID() = %q, want Heading2", got)
	}

	if _, err := ed.AddHeading(pkg, "Front", 0); err != nil {
		t.Fatalf("AddHeading() level 0 error = %v", err)
	}
	if got := pkg.Document.Body.Paragraphs()[1].StyleID(); got != "Title" {
		t.Errorf("level 0 StyleID() = %q, want Title", got)
	}

	if _, err := ed.AddHeading(pkg, "x", 12); !errors.Is(err, docerr.ErrInvalidArgument) {
		t.Errorf("AddHeading(12) error = %v, want ErrInvalidArgument", err)
	}
}

func TestAddPageBreak(t *testing.T) {
	pkg := openTestDoc(t, ``)
	if err := NewEditor(nil).AddPageBreak(pkg); err != nil {
		t.Fatalf("AddPageBreak() error = %v", err)
	}
	paras := pkg.Document.Body.Paragraphs()
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if !paras[0].Runs()[0].HasPageBreak() {
		t.Error("the appended run should hold a page break")
	}
}

func TestDeleteParagraph(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>zero</w:t></w:r></w:p><w:p><w:r><w:t>one</w:t></w:r></w:p>`)
	ed := NewEditor(nil)

	if err := ed.DeleteParagraph(pkg, 0); err != nil {
		t.Fatalf("DeleteParagraph() error = %v", err)
	}
	want := []string{"one"}
	if diff := cmp.Diff(want, paragraphTexts(pkg)); diff != "" {
		t.Errorf("paragraphs (-want +got):\n%s", diff)
	}

	if err := ed.DeleteParagraph(pkg, 7); !errors.Is(err, docerr.ErrIndexOutOfRange) {
		t.Errorf("DeleteParagraph() error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDeleteTextRange(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>hello cruel world</w:t></w:r></w:p>`)
	ed := NewEditor(nil)

	if err := ed.DeleteTextRange(pkg, 0, 5, 11); err != nil {
		t.Fatalf("DeleteTextRange() error = %v", err)
	}
	p := pkg.Document.Body.Paragraphs()[0]
	if got := p.Text(); got != "hello world" {
		t.Errorf("Text() = %q, want %q", got, "hello world")
	}
	// The remaining text keeps the first run's formatting.
	if !block.FromRun(p.Runs()[0]).Bold {
		t.Error("formatting should survive the deletion")
	}
}

func TestDeleteTextRange_RunePositions(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>héllo wörld</w:t></w:r></w:p>`)
	if err := NewEditor(nil).DeleteTextRange(pkg, 0, 0, 6); err != nil {
		t.Fatalf("DeleteTextRange() error = %v", err)
	}
	if got := pkg.Document.Body.Paragraphs()[0].Text(); got != "wörld" {
		t.Errorf("Text() = %q, want %q", got, "wörld")
	}
}

func TestDeleteTextRange_BadRange(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>short</w:t></w:r></w:p>`)
	ed := NewEditor(nil)

	tests := []struct{ start, end int }{
		{-1, 2},
		{3, 2},
		{0, 99},
	}
	for _, tt := range tests {
		if err := ed.DeleteTextRange(pkg, 0, tt.start, tt.end); !errors.Is(err, docerr.ErrInvalidArgument) {
			t.Errorf("DeleteTextRange(%d,%d) error = %v, want ErrInvalidArgument", tt.start, tt.end, err)
		}
	}
}

func TestSetPageMargins(t *testing.T) {
	pkg := openTestDoc(t, `<w:p/>`)
	top, left := 2.54, 1.27
	if err := NewEditor(nil).SetPageMargins(pkg, &top, nil, &left, nil); err != nil {
		t.Fatalf("SetPageMargins() error = %v", err)
	}

	m := pkg.Document.Body.SectPr.PgMar
	if m.Top != "1440" {
		t.Errorf("Top = %q, want 1440 twips for 2.54cm", m.Top)
	}
	if m.Left != "720" {
		t.Errorf("Left = %q, want 720 twips for 1.27cm", m.Left)
	}
	// Unset sides stay untouched.
	if m.Bottom != "" {
		t.Errorf("Bottom = %q, want unset", m.Bottom)
	}
}

func TestSearchText(t *testing.T) {
	body := `<w:p><w:r><w:t>alpha beta alpha</w:t></w:r></w:p>
<w:p><w:r><w:t>gamma</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>alpha in cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	pkg := openTestDoc(t, body)

	res, err := NewEditor(nil).SearchText(pkg, "alpha")
	if err != nil {
		t.Fatalf("SearchText() error = %v", err)
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(res.Hits))
	}
	if res.Hits[0].Paragraph == nil || *res.Hits[0].Paragraph != 0 || res.Hits[0].Count != 2 {
		t.Errorf("paragraph hit = %+v", res.Hits[0])
	}
	if res.Hits[1].Cell == nil || res.Hits[1].Cell.Table != 0 {
		t.Errorf("cell hit = %+v", res.Hits[1])
	}
}

func TestSearchText_EmptyQuery(t *testing.T) {
	pkg := openTestDoc(t, `<w:p/>`)
	if _, err := NewEditor(nil).SearchText(pkg, ""); !errors.Is(err, docerr.ErrInvalidArgument) {
		t.Errorf("SearchText(\"\") error = %v, want ErrInvalidArgument", err)
	}
}

func TestSearchText_UnicodeNormalization(t *testing.T) {
	// Document text is decomposed (e + combining acute); the query is the
	// precomposed form. NFC matching unifies them.
	pkg := openTestDoc(t, `<w:p><w:r><w:t>cafe&#x301; open</w:t></w:r></w:p>`)
	res, err := NewEditor(nil).SearchText(pkg, "café")
	if err != nil {
		t.Fatalf("SearchText() error = %v", err)
	}
	if res.Total != 1 {
		t.Errorf("Total = %d, want 1", res.Total)
	}
}

func TestSearchAndReplace_Preview(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>old text with old word</w:t></w:r></w:p>`)
	ed := NewEditor(nil)

	res, err := ed.SearchAndReplace(pkg, "old", "new", true)
	if err != nil {
		t.Fatalf("SearchAndReplace() error = %v", err)
	}
	if res.Applied {
		t.Error("preview must not apply")
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if got := pkg.Document.Body.Paragraphs()[0].Text(); got != "old text with old word" {
		t.Errorf("preview modified the document: %q", got)
	}
}

func TestSearchAndReplace_Applies(t *testing.T) {
	body := `<w:p><w:r><w:t>old here</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>old there</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`
	pkg := openTestDoc(t, body)

	res, err := NewEditor(nil).SearchAndReplace(pkg, "old", "new", false)
	if err != nil {
		t.Fatalf("SearchAndReplace() error = %v", err)
	}
	if !res.Applied || res.Total != 2 {
		t.Errorf("result = %+v", res)
	}
	if got := pkg.Document.Body.Paragraphs()[0].Text(); got != "new here" {
		t.Errorf("paragraph = %q", got)
	}
	if got := pkg.Document.Body.Tables()[0].Rows[0].Cells[0].Text(); got != "new there" {
		t.Errorf("cell = %q", got)
	}
}

func TestFindAndReplace_Count(t *testing.T) {
	pkg := openTestDoc(t, `<w:p><w:r><w:t>x y x y x</w:t></w:r></w:p>`)
	n, err := NewEditor(nil).FindAndReplace(pkg, "x", "z")
	if err != nil {
		t.Fatalf("FindAndReplace() error = %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if got := pkg.Document.Body.Paragraphs()[0].Text(); got != "z y z y z" {
		t.Errorf("Text() = %q", got)
	}
}
