// Package session holds the one open document a caller works against and
// dispatches operations to the extraction and editing layers. A session
// optionally persists the open document's path to a state file so a
// restarted process can pick up where it left off.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/docerr"
	"github.com/docforge/docforge/edit"
	"github.com/docforge/docforge/extract"
	"github.com/docforge/docforge/wml"
)

// Session is a single-document editing session. It is not safe for
// concurrent use.
type Session struct {
	log       *zap.Logger
	ex        *extract.Extractor
	ed        *edit.Editor
	statePath string

	pkg  *wml.Package
	path string
}

// New creates a session with no document open. A nil logger disables
// logging; an empty statePath disables state persistence.
func New(logger *zap.Logger, statePath string) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		log:       logger,
		ex:        extract.New(logger),
		ed:        edit.NewEditor(logger),
		statePath: statePath,
	}
}

// DefaultStatePath is the state file location used when the caller does
// not choose one.
func DefaultStatePath() string {
	return filepath.Join(os.TempDir(), "docforge-state.txt")
}

// Open loads the document at path and makes it the session's current
// document, replacing any document already open.
func (s *Session) Open(path string) error {
	pkg, err := wml.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	s.pkg = pkg
	s.path = path
	s.log.Info("document opened", zap.String("path", path))
	s.saveState()
	return nil
}

// Create writes a new empty document at path and opens it. It refuses to
// overwrite an existing file.
func (s *Session) Create(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s already exists", docerr.ErrInvalidArgument, path)
	}
	pkg := wml.New()
	if err := pkg.SaveFile(path); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	s.pkg = pkg
	s.path = path
	s.log.Info("document created", zap.String("path", path))
	s.saveState()
	return nil
}

// Save writes the current document back to the path it was opened from.
func (s *Session) Save() error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.pkg.SaveFile(s.path)
}

// SaveAs writes the current document to a new path, which becomes the
// session's current path.
func (s *Session) SaveAs(path string) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	if err := s.pkg.SaveFile(path); err != nil {
		return err
	}
	s.path = path
	s.saveState()
	return nil
}

// CreateCopy saves the current document next to the original with the
// given filename suffix (default "-copy") and returns the new path. The
// session keeps editing the original.
func (s *Session) CreateCopy(suffix string) (string, error) {
	if s.pkg == nil {
		return "", docerr.ErrNoDocument
	}
	if suffix == "" {
		suffix = "-copy"
	}
	ext := filepath.Ext(s.path)
	target := strings.TrimSuffix(s.path, ext) + suffix + ext
	if err := s.pkg.SaveFile(target); err != nil {
		return "", err
	}
	s.log.Info("copy created", zap.String("path", target))
	return target, nil
}

// Close drops the current document without saving and clears the
// persisted state.
func (s *Session) Close() error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	s.pkg = nil
	s.path = ""
	s.clearState()
	return nil
}

// Path returns the current document's path, or "" when none is open.
func (s *Session) Path() string { return s.path }

// Info summarizes the open document.
type Info struct {
	Path       string `json:"path"`
	Paragraphs int    `json:"paragraphs"`
	Tables     int    `json:"tables"`
	Words      int    `json:"words"`
	Styles     int    `json:"styles"`
}

// Info reports basic counts for the open document.
func (s *Session) Info() (Info, error) {
	if s.pkg == nil {
		return Info{}, docerr.ErrNoDocument
	}
	info := Info{
		Path:   s.path,
		Styles: s.pkg.Styles().Len(),
	}
	body := s.pkg.Document.Body
	for _, p := range body.Paragraphs() {
		info.Paragraphs++
		info.Words += len(strings.Fields(p.Text()))
	}
	for _, t := range body.Tables() {
		info.Tables++
		for _, row := range t.Rows {
			for _, cell := range row.Cells {
				info.Words += len(strings.Fields(cell.Text()))
			}
		}
	}
	return info, nil
}

// Restore reopens the document recorded in the state file, if any. It
// returns false when no usable state exists; a state file pointing at a
// document that no longer exists is removed.
func (s *Session) Restore() (bool, error) {
	if s.statePath == "" {
		return false, nil
	}
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	path := strings.TrimSpace(string(data))
	if path == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		s.log.Warn("removing stale state file", zap.String("document", path))
		s.clearState()
		return false, nil
	}
	if err := s.Open(path); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) saveState() {
	if s.statePath == "" {
		return
	}
	if err := os.WriteFile(s.statePath, []byte(s.path+"\n"), 0o644); err != nil {
		s.log.Warn("could not persist session state", zap.Error(err))
	}
}

func (s *Session) clearState() {
	if s.statePath == "" {
		return
	}
	if err := os.Remove(s.statePath); err != nil && !os.IsNotExist(err) {
		s.log.Warn("could not remove state file", zap.Error(err))
	}
}

// Blocks extracts the structural blocks of the open document.
func (s *Session) Blocks() ([]block.Block, error) {
	if s.pkg == nil {
		return nil, docerr.ErrNoDocument
	}
	return s.ex.Blocks(s.pkg), nil
}

// EditBlock applies one format-preserving block replacement.
func (s *Session) EditBlock(req edit.BlockEdit) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.EditBlock(s.pkg, req)
}

// ReplaceSection replaces the heading-delimited section whose title
// contains the given text.
func (s *Session) ReplaceSection(title string, newContent []string, preserveTitle bool) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.ReplaceSection(s.pkg, title, newContent, preserveTitle)
}

// ReplaceByKeyword replaces the paragraph window around the first
// paragraph containing keyword.
func (s *Session) ReplaceByKeyword(keyword string, newContent []string, sectionRange int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.ReplaceByKeyword(s.pkg, keyword, newContent, sectionRange)
}

// SearchText finds every occurrence of query in the document.
func (s *Session) SearchText(query string) (*edit.SearchResult, error) {
	if s.pkg == nil {
		return nil, docerr.ErrNoDocument
	}
	return s.ed.SearchText(s.pkg, query)
}

// SearchAndReplace replaces query with replacement, or previews the
// replacement without modifying the document.
func (s *Session) SearchAndReplace(query, replacement string, previewOnly bool) (*edit.ReplaceResult, error) {
	if s.pkg == nil {
		return nil, docerr.ErrNoDocument
	}
	return s.ed.SearchAndReplace(s.pkg, query, replacement, previewOnly)
}

// FindAndReplace replaces query with replacement and returns the number
// of replacements.
func (s *Session) FindAndReplace(query, replacement string) (int, error) {
	if s.pkg == nil {
		return 0, docerr.ErrNoDocument
	}
	return s.ed.FindAndReplace(s.pkg, query, replacement)
}

// AddParagraph appends a paragraph and returns its index.
func (s *Session) AddParagraph(text string, opts edit.ParagraphOptions) (int, error) {
	if s.pkg == nil {
		return 0, docerr.ErrNoDocument
	}
	return s.ed.AddParagraph(s.pkg, text, opts)
}

// AddHeading appends a heading paragraph and returns its index.
func (s *Session) AddHeading(text string, level int) (int, error) {
	if s.pkg == nil {
		return 0, docerr.ErrNoDocument
	}
	return s.ed.AddHeading(s.pkg, text, level)
}

// AddPageBreak appends a page break paragraph.
func (s *Session) AddPageBreak() error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.AddPageBreak(s.pkg)
}

// DeleteParagraph removes the paragraph at the given index.
func (s *Session) DeleteParagraph(index int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.DeleteParagraph(s.pkg, index)
}

// DeleteTextRange removes a rune range from a paragraph.
func (s *Session) DeleteTextRange(index, start, end int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.DeleteTextRange(s.pkg, index, start, end)
}

// SetPageMargins sets the section page margins in centimeters.
func (s *Session) SetPageMargins(top, bottom, left, right *float64) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.SetPageMargins(s.pkg, top, bottom, left, right)
}

// AddTable appends a table filled from data.
func (s *Session) AddTable(rows, cols int, data [][]string, styleName string) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.AddTable(s.pkg, rows, cols, data, styleName)
}

// AddTableRow appends a row to a table.
func (s *Session) AddTableRow(table int, data []string) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.AddTableRow(s.pkg, table, data)
}

// DeleteTableRow removes a row from a table.
func (s *Session) DeleteTableRow(table, row int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.DeleteTableRow(s.pkg, table, row)
}

// EditTableCell replaces a cell's content with plain text.
func (s *Session) EditTableCell(table, row, col int, text string) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.EditTableCell(s.pkg, table, row, col, text)
}

// MergeCells merges a rectangular cell range.
func (s *Session) MergeCells(table, r1, c1, r2, c2 int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.MergeCells(s.pkg, table, r1, c1, r2, c2)
}

// SplitTable splits a table after the given row.
func (s *Session) SplitTable(table, row int) error {
	if s.pkg == nil {
		return docerr.ErrNoDocument
	}
	return s.ed.SplitTable(s.pkg, table, row)
}
