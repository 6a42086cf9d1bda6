package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return s
}

func TestNewStorageCreatesLibrary(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "library")

	if _, err := NewStorage(root); err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "templates")); err != nil {
		t.Errorf("Expected templates directory to exist: %v", err)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	body := "Join us on INSERTDATE at INSERTLINK forINSERTINFORMATION.\n"
	if err := s.SaveTemplate(&models.Template{ID: 1, Body: body}); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}

	loaded, err := s.LoadTemplate(1)
	if err != nil {
		t.Fatalf("Failed to load template: %v", err)
	}

	if loaded.Body != body {
		t.Errorf("Expected body %q, got %q", body, loaded.Body)
	}
	if loaded.ID != 1 {
		t.Errorf("Expected id 1, got %d", loaded.ID)
	}
}

func TestLoadTemplateNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.LoadTemplate(42)
	if err == nil {
		t.Fatal("Expected error for missing template")
	}

	if !errors.IsTemplateNotFound(err) {
		t.Errorf("Expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}

func TestDeleteTemplate(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveTemplate(&models.Template{ID: 3, Body: "body"}); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}

	if err := s.DeleteTemplate(3); err != nil {
		t.Fatalf("Failed to delete template: %v", err)
	}

	if _, err := s.LoadTemplate(3); !errors.IsTemplateNotFound(err) {
		t.Errorf("Expected TEMPLATE_NOT_FOUND after delete, got %v", err)
	}

	// Deleting again reports the missing id
	if err := s.DeleteTemplate(3); !errors.IsTemplateNotFound(err) {
		t.Errorf("Expected TEMPLATE_NOT_FOUND for double delete, got %v", err)
	}
}

func TestListTemplatesNumericOrder(t *testing.T) {
	s := newTestStorage(t)

	// Lexical order would put 10 before 2
	for _, id := range []int{10, 2, 1} {
		if err := s.SaveTemplate(&models.Template{ID: id, Body: "x"}); err != nil {
			t.Fatalf("Failed to save template %d: %v", id, err)
		}
	}

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}

	got := make([]int, len(templates))
	for i, tmpl := range templates {
		got[i] = tmpl.ID
	}

	expected := []int{1, 2, 10}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d templates, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected id %d at position %d, got %d", expected[i], i, got[i])
		}
	}
}

func TestListTemplatesSkipsNonNumericFiles(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SaveTemplate(&models.Template{ID: 1, Body: "x"}); err != nil {
		t.Fatalf("Failed to save template: %v", err)
	}

	stray := filepath.Join(s.GetBaseDir(), "templates", "notes.txt")
	if err := os.WriteFile(stray, []byte("not a template"), 0644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatalf("Failed to list templates: %v", err)
	}
	if len(templates) != 1 {
		t.Errorf("Expected 1 template, got %d", len(templates))
	}
}

func TestNextTemplateID(t *testing.T) {
	s := newTestStorage(t)

	next, err := s.NextTemplateID()
	if err != nil {
		t.Fatalf("Failed to get next id: %v", err)
	}
	if next != 1 {
		t.Errorf("Expected first id to be 1, got %d", next)
	}

	for _, id := range []int{1, 2, 7} {
		if err := s.SaveTemplate(&models.Template{ID: id, Body: "x"}); err != nil {
			t.Fatalf("Failed to save template %d: %v", id, err)
		}
	}

	next, err = s.NextTemplateID()
	if err != nil {
		t.Fatalf("Failed to get next id: %v", err)
	}
	if next != 8 {
		t.Errorf("Expected next id 8 after max 7, got %d", next)
	}

	// Ids are never reused after deletion
	if err := s.DeleteTemplate(7); err != nil {
		t.Fatalf("Failed to delete template: %v", err)
	}
	// max is now 2, so next is 3; the old 7 slot is simply gone
	next, err = s.NextTemplateID()
	if err != nil {
		t.Fatalf("Failed to get next id: %v", err)
	}
	if next != 3 {
		t.Errorf("Expected next id 3, got %d", next)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	s := newTestStorage(t)

	history, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("Missing history should not be an error, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %v", history)
	}
}

func TestAppendHistoryPreservesOrder(t *testing.T) {
	s := newTestStorage(t)

	for _, id := range []int{3, 1, 3, 2} {
		if err := s.AppendHistory(id); err != nil {
			t.Fatalf("Failed to append history: %v", err)
		}
	}

	history, err := s.LoadHistory()
	if err != nil {
		t.Fatalf("Failed to load history: %v", err)
	}

	expected := []int{3, 1, 3, 2}
	if len(history) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(history))
	}
	for i := range expected {
		if history[i] != expected[i] {
			t.Errorf("Expected %d at position %d, got %d", expected[i], i, history[i])
		}
	}
}

func TestAppendHistoryIsAppendOnly(t *testing.T) {
	s := newTestStorage(t)

	if err := s.AppendHistory(1); err != nil {
		t.Fatalf("Failed to append history: %v", err)
	}

	before, err := os.ReadFile(filepath.Join(s.GetBaseDir(), "history.csv"))
	if err != nil {
		t.Fatalf("Failed to read history file: %v", err)
	}

	if err := s.AppendHistory(2); err != nil {
		t.Fatalf("Failed to append history: %v", err)
	}

	after, err := os.ReadFile(filepath.Join(s.GetBaseDir(), "history.csv"))
	if err != nil {
		t.Fatalf("Failed to read history file: %v", err)
	}

	if len(after) <= len(before) {
		t.Error("Expected history file to grow")
	}
	if string(after[:len(before)]) != string(before) {
		t.Error("Existing history rows must not be rewritten")
	}
}
