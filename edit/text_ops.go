package edit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/docerr"
	"github.com/docforge/docforge/extract"
	"github.com/docforge/docforge/wml"
)

// ParagraphOptions carries the optional formatting for AddParagraph.
type ParagraphOptions struct {
	Bold      bool
	Italic    bool
	Underline bool
	FontName  string
	SizePt    float64
	Color     string
	Style     string
	Alignment block.Alignment
}

// AddParagraph appends a paragraph to the document body and returns its
// top-level paragraph index. An unknown style name is logged and skipped.
func (ed *Editor) AddParagraph(pkg *wml.Package, text string, opts ParagraphOptions) (int, error) {
	f := block.RunFormat{
		Bold:      opts.Bold,
		Italic:    opts.Italic,
		Underline: opts.Underline,
		FontName:  opts.FontName,
		SizePt:    opts.SizePt,
		Color:     opts.Color,
	}
	p := &wml.Paragraph{}
	p.AppendRun(f.NewRun(text, ed.log))
	if opts.Style != "" {
		if id, ok := pkg.Styles().IDForName(opts.Style); ok {
			p.SetStyleID(id)
		} else {
			ed.log.Warn("skipping unknown style", zap.String("style", opts.Style))
		}
	}
	if opts.Alignment != "" {
		p.SetAlignment(opts.Alignment.Jc())
	}
	body := pkg.Document.Body
	body.Nodes = append(body.Nodes, p)
	return len(body.Paragraphs()) - 1, nil
}

// AddHeading appends a heading paragraph. Level 0 maps to the Title
// style, levels 1 through 9 to the matching built-in heading style.
func (ed *Editor) AddHeading(pkg *wml.Package, text string, level int) (int, error) {
	if level < 0 || level > 9 {
		return 0, fmt.Errorf("%w: heading level %d", docerr.ErrInvalidArgument, level)
	}
	name := "Title"
	if level > 0 {
		name = "Heading " + strconv.Itoa(level)
	}
	p := &wml.Paragraph{}
	run := &wml.Run{}
	run.SetText(text)
	p.AppendRun(run)
	if id, ok := pkg.Styles().IDForName(name); ok {
		p.SetStyleID(id)
	} else {
		ed.log.Warn("document has no style for heading level",
			zap.Int("level", level), zap.String("style", name))
	}
	body := pkg.Document.Body
	body.Nodes = append(body.Nodes, p)
	return len(body.Paragraphs()) - 1, nil
}

// AddPageBreak appends an empty paragraph whose single run holds a page
// break.
func (ed *Editor) AddPageBreak(pkg *wml.Package) error {
	p := &wml.Paragraph{}
	p.AppendRun(&wml.Run{Children: []wml.RunChild{&wml.Break{Type: "page"}}})
	pkg.Document.Body.Nodes = append(pkg.Document.Body.Nodes, p)
	return nil
}

// DeleteParagraph removes the paragraph at the given top-level index.
func (ed *Editor) DeleteParagraph(pkg *wml.Package, index int) error {
	body := pkg.Document.Body
	paras := body.Paragraphs()
	if index < 0 || index >= len(paras) {
		return fmt.Errorf("%w: paragraph %d of %d", docerr.ErrIndexOutOfRange, index, len(paras))
	}
	pos := body.IndexOf(paras[index])
	if pos < 0 {
		return fmt.Errorf("%w: paragraph %d not in body", docerr.ErrNotFound, index)
	}
	body.Remove(pos)
	return nil
}

// DeleteTextRange removes the rune range [start, end) from a paragraph's
// text. The remaining text keeps the first run's formatting.
func (ed *Editor) DeleteTextRange(pkg *wml.Package, index, start, end int) error {
	paras := pkg.Document.Body.Paragraphs()
	if index < 0 || index >= len(paras) {
		return fmt.Errorf("%w: paragraph %d of %d", docerr.ErrIndexOutOfRange, index, len(paras))
	}
	p := paras[index]
	runes := []rune(p.Text())
	if start < 0 || end < start || end > len(runes) {
		return fmt.Errorf("%w: range [%d,%d) in %d-rune paragraph", docerr.ErrInvalidArgument, start, end, len(runes))
	}

	var orig []block.RunFormat
	for _, r := range p.Runs() {
		orig = append(orig, block.FromRun(r))
	}
	remaining := string(runes[:start]) + string(runes[end:])
	ed.repopulate(p, remaining, orig)
	return nil
}

// SetPageMargins sets the section page margins, in centimeters. Nil
// fields leave the current value untouched.
func (ed *Editor) SetPageMargins(pkg *wml.Package, top, bottom, left, right *float64) error {
	body := pkg.Document.Body
	if body.SectPr == nil {
		body.SectPr = &wml.SectPr{}
	}
	if body.SectPr.PgMar == nil {
		body.SectPr.PgMar = &wml.PgMar{}
	}
	m := body.SectPr.PgMar
	if top != nil {
		m.Top = cmToTwips(*top)
	}
	if bottom != nil {
		m.Bottom = cmToTwips(*bottom)
	}
	if left != nil {
		m.Left = cmToTwips(*left)
	}
	if right != nil {
		m.Right = cmToTwips(*right)
	}
	return nil
}

func cmToTwips(cm float64) string {
	return strconv.Itoa(int(math.Round(cm * 1440 / 2.54)))
}

// SearchHit records the occurrences of a query inside one paragraph or
// one table cell.
type SearchHit struct {
	Paragraph *int     `json:"paragraph,omitempty"`
	Cell      *CellRef `json:"cell,omitempty"`
	Count     int      `json:"count"`
	Excerpt   string   `json:"excerpt"`
}

// SearchResult is the outcome of a document-wide text search.
type SearchResult struct {
	Query string      `json:"query"`
	Total int         `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// SearchText finds every occurrence of query in the document's top-level
// paragraphs and table cells. Matching is case-sensitive over
// NFC-normalized text.
func (ed *Editor) SearchText(pkg *wml.Package, query string) (*SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", docerr.ErrInvalidArgument)
	}
	needle := norm.NFC.String(query)
	res := &SearchResult{Query: query}

	for i, p := range pkg.Document.Body.Paragraphs() {
		text := norm.NFC.String(p.Text())
		if n := strings.Count(text, needle); n > 0 {
			idx := i
			res.Total += n
			res.Hits = append(res.Hits, SearchHit{
				Paragraph: &idx,
				Count:     n,
				Excerpt:   excerpt(text, needle),
			})
		}
	}
	for ti, t := range pkg.Document.Body.Tables() {
		grid := extract.BuildGrid(ti, t, ed.log)
		for _, prim := range grid.Primaries() {
			text := norm.NFC.String(prim.Cell.Text())
			if n := strings.Count(text, needle); n > 0 {
				res.Total += n
				res.Hits = append(res.Hits, SearchHit{
					Cell:    &CellRef{Table: ti, Row: prim.Row, Col: prim.Col},
					Count:   n,
					Excerpt: excerpt(text, needle),
				})
			}
		}
	}
	return res, nil
}

// ReplaceResult is the outcome of SearchAndReplace. When Applied is
// false the document was left unchanged.
type ReplaceResult struct {
	Query       string      `json:"query"`
	Replacement string      `json:"replacement"`
	Total       int         `json:"total"`
	Hits        []SearchHit `json:"hits"`
	Applied     bool        `json:"applied"`
}

// SearchAndReplace replaces every occurrence of query with replacement.
// With previewOnly the document is not modified and the result reports
// what would change. Replacement rewrites the affected paragraphs as a
// single run, so character-level formatting inside them is not kept.
func (ed *Editor) SearchAndReplace(pkg *wml.Package, query, replacement string, previewOnly bool) (*ReplaceResult, error) {
	found, err := ed.SearchText(pkg, query)
	if err != nil {
		return nil, err
	}
	res := &ReplaceResult{
		Query:       query,
		Replacement: replacement,
		Total:       found.Total,
		Hits:        found.Hits,
	}
	if previewOnly || found.Total == 0 {
		return res, nil
	}

	needle := norm.NFC.String(query)
	for _, hit := range found.Hits {
		if hit.Paragraph != nil {
			p := pkg.Document.Body.Paragraphs()[*hit.Paragraph]
			ed.replaceInParagraph(p, needle, replacement)
			continue
		}
		t := pkg.Document.Body.Tables()[hit.Cell.Table]
		grid := extract.BuildGrid(hit.Cell.Table, t, ed.log)
		prim, ok := grid.PrimaryAt(hit.Cell.Row, hit.Cell.Col)
		if !ok {
			continue
		}
		for _, p := range prim.Cell.Paragraphs() {
			ed.replaceInParagraph(p, needle, replacement)
		}
	}
	res.Applied = true
	return res, nil
}

// FindAndReplace replaces every occurrence of query and returns the
// number of replacements made.
func (ed *Editor) FindAndReplace(pkg *wml.Package, query, replacement string) (int, error) {
	res, err := ed.SearchAndReplace(pkg, query, replacement, false)
	if err != nil {
		return 0, err
	}
	return res.Total, nil
}

func (ed *Editor) replaceInParagraph(p *wml.Paragraph, needle, replacement string) {
	text := norm.NFC.String(p.Text())
	if !strings.Contains(text, needle) {
		return
	}
	var orig []block.RunFormat
	for _, r := range p.Runs() {
		orig = append(orig, block.FromRun(r))
	}
	ed.repopulate(p, strings.ReplaceAll(text, needle, replacement), orig)
}

// excerpt returns the text around the first occurrence of needle,
// trimmed to a short context window.
func excerpt(text, needle string) string {
	const window = 30
	at := strings.Index(text, needle)
	if at < 0 {
		return ""
	}
	pre := []rune(text[:at])
	post := []rune(text[at+len(needle):])
	out := needle
	if len(pre) > window {
		out = "…" + string(pre[len(pre)-window:]) + out
	} else {
		out = string(pre) + out
	}
	if len(post) > window {
		out += string(post[:window]) + "…"
	} else {
		out += string(post)
	}
	return out
}
