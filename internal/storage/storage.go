// Package storage handles all file system operations for templates and
// the selection history.
//
// Library layout:
//
//	<root>/templates/<id>.txt   one announcement template per file
//	<root>/history.csv          one selected template id per row, append-only
//	<root>/config.yaml          optional settings file (read by internal/config)
//
// Template ids are positive integers assigned sequentially; a deleted
// id is never reused. History is never rewritten by normal operation:
// pruning is a read-side concern handled by the selector's recency
// window.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/models"
)

const (
	templatesDir    = "templates"
	historyFilename = "history.csv"
	templateExt     = ".txt"
)

// Storage handles file system access for the announcement library.
// A single mutex serializes writers; the API surface serves handlers
// concurrently and the history log must stay append-consistent.
type Storage struct {
	rootPath string
	mu       sync.RWMutex
}

// NewStorage creates a new storage instance. The template folder is
// created transparently so a fresh install never fails on first use.
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".announcer")
	}

	s := &Storage{rootPath: rootPath}
	if err := s.InitLibrary(); err != nil {
		return nil, fmt.Errorf("failed to initialize library: %w", err)
	}

	return s, nil
}

// InitLibrary creates the directory structure for an announcement library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, templatesDir),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// templatePath returns the absolute path of a template file by id.
func (s *Storage) templatePath(id int) string {
	return filepath.Join(s.rootPath, templatesDir, strconv.Itoa(id)+templateExt)
}

// ListTemplates returns all templates ordered by numeric id ascending.
// Files whose names are not "<number>.txt" are skipped with a warning.
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listTemplates()
}

func (s *Storage) listTemplates() ([]*models.Template, error) {
	dir := filepath.Join(s.rootPath, templatesDir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing folder is the "fresh library" case, not an error
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create templates directory: %w", mkErr)
			}
			return []*models.Template{}, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var templates []*models.Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExt) {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSuffix(entry.Name(), templateExt))
		if err != nil || id <= 0 {
			fmt.Fprintf(os.Stderr, "Warning: skipping non-numeric template file %s\n", entry.Name())
			continue
		}

		tmpl, err := s.loadTemplate(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load template %s: %v\n", entry.Name(), err)
			continue
		}
		templates = append(templates, tmpl)
	}

	// Enumeration order is numeric ascending by id, not lexical
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID < templates[j].ID
	})

	return templates, nil
}

// TemplateIDs returns the ids of all stored templates, ascending.
func (s *Storage) TemplateIDs() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates, err := s.listTemplates()
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// LoadTemplate loads a template body by id. A missing file yields a
// TEMPLATE_NOT_FOUND error carrying the id.
func (s *Storage) LoadTemplate(id int) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadTemplate(id)
}

func (s *Storage) loadTemplate(id int) (*models.Template, error) {
	fullPath := s.templatePath(id)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.TemplateNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	tmpl := &models.Template{
		ID:       id,
		Body:     string(content),
		FilePath: filepath.Join(templatesDir, strconv.Itoa(id)+templateExt),
	}

	if info, err := os.Stat(fullPath); err == nil {
		tmpl.UpdatedAt = info.ModTime()
	}

	return tmpl, nil
}

// SaveTemplate writes a template body to its numbered file, creating
// the templates directory if needed.
func (s *Storage) SaveTemplate(template *models.Template) error {
	if template.ID <= 0 {
		return errors.ValidationError("Template id must be a positive integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fullPath := s.templatePath(template.ID)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fullPath, []byte(template.Body), 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	return nil
}

// DeleteTemplate removes a template file by id.
func (s *Storage) DeleteTemplate(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fullPath := s.templatePath(id)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return errors.TemplateNotFoundError(id)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete template file: %w", err)
	}

	return nil
}

// NextTemplateID returns the id a newly created template should take:
// one past the highest existing id. Deleted ids are never reused.
func (s *Storage) NextTemplateID() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates, err := s.listTemplates()
	if err != nil {
		return 0, err
	}

	max := 0
	for _, t := range templates {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1, nil
}

// historyPath returns the absolute path of the history log.
func (s *Storage) historyPath() string {
	return filepath.Join(s.rootPath, historyFilename)
}

// LoadHistory returns the full selection log in original order, oldest
// first. A missing log means "no prior selections", never an error.
func (s *Storage) LoadHistory() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := os.Open(s.historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	var history []int
	for _, row := range records {
		if len(row) == 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed history row %q\n", row[0])
			continue
		}
		history = append(history, id)
	}

	return history, nil
}

// AppendHistory durably adds id as the new last history entry. The log
// only ever grows; no dedup, no cap.
func (s *Storage) AppendHistory(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.historyPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{strconv.Itoa(id)}); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush history entry: %w", err)
	}

	return nil
}
