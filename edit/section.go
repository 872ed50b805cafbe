package edit

import (
	"fmt"
	"strings"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/docerr"
	"github.com/docforge/docforge/wml"
)

// capturedStyle is one position's formatting snapshot inside a region
// being replaced.
type capturedStyle struct {
	styleID   string
	jc        string
	pageBreak bool
	runs      []block.RunFormat
}

// ReplaceSection finds the first paragraph containing title and replaces
// the region under it with newContent, propagating the region's original
// per-position styling onto the new paragraphs. The region ends at the
// next paragraph whose style name starts with "Heading" and compares
// lexically less than or equal to the anchor's style name. The comparison
// is a plain string compare, so "Heading 10" ends a "Heading 2" section;
// that matches the long-standing observable behavior and is covered by a
// regression test.
// With preserveTitle false the title paragraph itself is replaced too.
func (ed *Editor) ReplaceSection(pkg *wml.Package, title string, newContent []string, preserveTitle bool) error {
	paras := pkg.Document.Body.Paragraphs()

	anchor := -1
	for i, p := range paras {
		if strings.Contains(p.Text(), title) {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return fmt.Errorf("%w: title %q", docerr.ErrNotFound, title)
	}

	anchorStyle := pkg.Styles().DisplayName(paras[anchor].StyleID())
	end := len(paras)
	for i := anchor + 1; i < len(paras); i++ {
		name := pkg.Styles().DisplayName(paras[i].StyleID())
		if strings.HasPrefix(name, "Heading") && name <= anchorStyle {
			end = i
			break
		}
	}

	start := anchor + 1
	if !preserveTitle {
		start = anchor
	}
	ed.replaceRegion(pkg, start, end, newContent)
	return nil
}

// ReplaceByKeyword finds the first paragraph containing keyword and
// replaces it together with sectionRange paragraphs on each side, clamped
// to the document bounds.
func (ed *Editor) ReplaceByKeyword(pkg *wml.Package, keyword string, newContent []string, sectionRange int) error {
	paras := pkg.Document.Body.Paragraphs()

	anchor := -1
	for i, p := range paras {
		if strings.Contains(p.Text(), keyword) {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return fmt.Errorf("%w: keyword %q", docerr.ErrNotFound, keyword)
	}

	start := anchor - sectionRange
	if start < 0 {
		start = 0
	}
	end := anchor + sectionRange + 1
	if end > len(paras) {
		end = len(paras)
	}
	ed.replaceRegion(pkg, start, end, newContent)
	return nil
}

// replaceRegion deletes paragraphs [start, end) and splices in one
// paragraph per newContent item at the original location, each carrying
// its positionally-corresponding captured formatting. When the region is
// shorter than the new content the last captured record is stretched over
// the remainder; an empty region propagates the default record.
func (ed *Editor) replaceRegion(pkg *wml.Package, start, end int, newContent []string) {
	body := pkg.Document.Body
	paras := body.Paragraphs()
	if end > len(paras) {
		end = len(paras)
	}
	if start > end {
		start = end
	}

	// Capture per-position formatting before anything is deleted.
	var captured []capturedStyle
	limit := end
	if lim := start + len(newContent); lim < limit {
		limit = lim
	}
	for i := start; i < limit; i++ {
		p := paras[i]
		cs := capturedStyle{
			styleID:   p.StyleID(),
			jc:        p.Alignment(),
			pageBreak: p.PageBreakBefore(),
		}
		for _, r := range p.Runs() {
			cs.runs = append(cs.runs, block.FromRun(r))
		}
		captured = append(captured, cs)
	}
	for len(captured) < len(newContent) {
		if len(captured) > 0 {
			captured = append(captured, captured[len(captured)-1])
		} else {
			captured = append(captured, capturedStyle{})
		}
	}

	// Splice point: the body position of the region's first paragraph, or
	// just after the preceding paragraph when the region is empty or at
	// the document's end.
	insertPos := len(body.Nodes)
	if start < len(paras) {
		insertPos = body.IndexOf(paras[start])
	} else if len(paras) > 0 {
		insertPos = body.IndexOf(paras[len(paras)-1]) + 1
	}

	// Delete from the highest index down so earlier removals never shift
	// a not-yet-visited position.
	for i := end - 1; i >= start; i-- {
		pos := body.IndexOf(paras[i])
		if pos < 0 {
			continue
		}
		body.Remove(pos)
		if pos < insertPos {
			insertPos = pos
		}
	}

	// Insert the new paragraphs in order at the original location. The
	// splice position is explicit, so nothing ends up appended at the
	// document's end and relocated afterwards.
	for i, content := range newContent {
		cs := captured[i]
		p := ed.buildPropagated(content, cs)
		body.Insert(insertPos+i, p)
	}
}

// buildPropagated creates one replacement paragraph carrying a captured
// record: paragraph style, alignment, page break, and a single run with
// the first captured run's formatting.
func (ed *Editor) buildPropagated(content string, cs capturedStyle) *wml.Paragraph {
	p := &wml.Paragraph{}
	if cs.styleID != "" {
		p.SetStyleID(cs.styleID)
	}
	if cs.jc != "" {
		p.SetAlignment(cs.jc)
	}
	if cs.pageBreak {
		p.SetPageBreakBefore(true)
	}

	if len(cs.runs) > 0 {
		p.AppendRun(cs.runs[0].NewRun(content, ed.log))
	} else {
		r := &wml.Run{}
		r.SetText(content)
		p.AppendRun(r)
	}
	return p
}
