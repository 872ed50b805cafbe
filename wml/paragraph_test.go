package wml

import (
	"encoding/xml"
	"strings"
	"testing"
)

// parseTestDoc parses a body fragment into a Document.
func parseTestDoc(t *testing.T, body string) *Document {
	t.Helper()
	src := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
	var doc Document
	if err := xml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	return &doc
}

// marshalTestDoc renders a Document back to XML.
func marshalTestDoc(t *testing.T, doc *Document) string {
	t.Helper()
	out, err := xml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	return string(out)
}

func TestParagraph_Text(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "simple run",
			body:     `<w:p><w:r><w:t>Hello</w:t></w:r></w:p>`,
			expected: "Hello",
		},
		{
			name:     "multiple runs",
			body:     `<w:p><w:r><w:t>Hello </w:t></w:r><w:r><w:t>World</w:t></w:r></w:p>`,
			expected: "Hello World",
		},
		{
			name:     "tab and break",
			body:     `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`,
			expected: "a\tb\nc",
		},
		{
			name:     "preserved space",
			body:     `<w:p><w:r><w:t xml:space="preserve">  padded  </w:t></w:r></w:p>`,
			expected: "  padded  ",
		},
		{
			name:     "empty paragraph",
			body:     `<w:p/>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseTestDoc(t, tt.body)
			paras := doc.Body.Paragraphs()
			if len(paras) != 1 {
				t.Fatalf("expected 1 paragraph, got %d", len(paras))
			}
			if got := paras[0].Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParagraph_Properties(t *testing.T) {
	body := `<w:p><w:pPr><w:pStyle w:val="Heading2"/><w:pageBreakBefore/><w:jc w:val="center"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`
	p := parseTestDoc(t, body).Body.Paragraphs()[0]

	if got := p.StyleID(); got != "Heading2" {
		t.Errorf("StyleID() = %q, want %q", got, "Heading2")
	}
	if got := p.Alignment(); got != "center" {
		t.Errorf("Alignment() = %q, want %q", got, "center")
	}
	if !p.PageBreakBefore() {
		t.Error("PageBreakBefore() should be true")
	}
}

func TestParagraph_PageBreakBefore_FalseVal(t *testing.T) {
	body := `<w:p><w:pPr><w:pageBreakBefore w:val="false"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`
	p := parseTestDoc(t, body).Body.Paragraphs()[0]
	if p.PageBreakBefore() {
		t.Error("an explicit false value should disable the flag")
	}
}

func TestParagraph_PageBreakBefore_RunBreak(t *testing.T) {
	// A page break inside a run also counts as a leading page break.
	body := `<w:p><w:r><w:br w:type="page"/></w:r><w:r><w:t>x</w:t></w:r></w:p>`
	p := parseTestDoc(t, body).Body.Paragraphs()[0]
	if !p.PageBreakBefore() {
		t.Error("a run-level page break should be reported")
	}
}

func TestParagraph_SetPageBreakBefore(t *testing.T) {
	doc := parseTestDoc(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
	p := doc.Body.Paragraphs()[0]

	p.SetPageBreakBefore(true)
	if !p.PageBreakBefore() {
		t.Error("flag should be set")
	}
	out := marshalTestDoc(t, doc)
	if !strings.Contains(out, "<w:pageBreakBefore>") && !strings.Contains(out, "<w:pageBreakBefore/") {
		t.Errorf("output should carry pageBreakBefore, got %s", out)
	}

	// Clearing writes an explicit false rather than removing the element.
	p.SetPageBreakBefore(false)
	if p.PageBreakBefore() {
		t.Error("flag should be cleared")
	}
	out = marshalTestDoc(t, doc)
	if !strings.Contains(out, `w:val="false"`) {
		t.Errorf("clearing should write an explicit false, got %s", out)
	}
}

func TestParagraph_SetStyleAndAlignment(t *testing.T) {
	doc := parseTestDoc(t, `<w:p><w:r><w:t>x</w:t></w:r></w:p>`)
	p := doc.Body.Paragraphs()[0]

	p.SetStyleID("Heading1")
	p.SetAlignment("both")

	out := marshalTestDoc(t, doc)
	if !strings.Contains(out, `<w:pStyle w:val="Heading1"`) {
		t.Errorf("output should carry the style, got %s", out)
	}
	if !strings.Contains(out, `<w:jc w:val="both"`) {
		t.Errorf("output should carry the alignment, got %s", out)
	}
}

func TestParagraph_SetRuns_ReplacesContent(t *testing.T) {
	doc := parseTestDoc(t, `<w:p><w:r><w:t>old one</w:t></w:r><w:r><w:t>old two</w:t></w:r></w:p>`)
	p := doc.Body.Paragraphs()[0]

	r := &Run{}
	r.SetText("new")
	p.SetRuns([]*Run{r})

	if got := p.Text(); got != "new" {
		t.Errorf("Text() = %q, want %q", got, "new")
	}
	if len(p.Runs()) != 1 {
		t.Errorf("expected 1 run, got %d", len(p.Runs()))
	}
}

func TestParagraph_PreservesUnknownChildren(t *testing.T) {
	body := `<w:p><w:bookmarkStart w:id="0" w:name="anchor"/><w:r><w:t>x</w:t></w:r><w:bookmarkEnd w:id="0"/></w:p>`
	doc := parseTestDoc(t, body)

	out := marshalTestDoc(t, doc)
	if !strings.Contains(out, "bookmarkStart") || !strings.Contains(out, "bookmarkEnd") {
		t.Errorf("unknown children should round trip, got %s", out)
	}
}
