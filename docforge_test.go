package docforge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/edit"
)

func TestCreateOpenEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.docx")

	s, err := Create(path, WithStateFile(""))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.AddHeading("Report", 1); err != nil {
		t.Fatalf("AddHeading() error = %v", err)
	}
	if _, err := s.AddParagraph("First findings.", edit.ParagraphOptions{}); err != nil {
		t.Fatalf("AddParagraph() error = %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened, err := Open(path, WithStateFile(""))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	blocks, err := reopened.Blocks()
	if err != nil {
		t.Fatalf("Blocks() error = %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	h, ok := blocks[0].(*block.Heading)
	if !ok || h.Text != "Report" || h.Level != 1 {
		t.Errorf("heading block = %+v", blocks[0])
	}
	p, ok := blocks[1].(*block.Paragraph)
	if !ok || p.Text != "First findings." {
		t.Errorf("paragraph block = %+v", blocks[1])
	}
}

func TestOpen_NotFound(t *testing.T) {
	if _, err := Open("/nonexistent/file.docx", WithStateFile("")); err == nil {
		t.Error("Open() should fail for a missing file")
	}
}

func TestWithStateFile(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.txt")
	path := filepath.Join(t.TempDir(), "doc.docx")

	if _, err := Create(path, WithStateFile(statePath)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Errorf("state file should be written: %v", err)
	}

	s := NewSession(WithStateFile(statePath))
	ok, err := s.Restore()
	if err != nil || !ok {
		t.Fatalf("Restore() = (%v, %v), want (true, nil)", ok, err)
	}
	if s.Path() != path {
		t.Errorf("restored path = %q, want %q", s.Path(), path)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must() = %d, want 42", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(0, os.ErrNotExist)
}
