// Package service provides business logic for the announcement console.
//
// The service wires the template store, selection history, random
// selector, placeholder renderer, livestream lookup and thumbnail
// processor behind one API consumed by all three surfaces (TUI, CLI,
// HTTP). Generation follows a strict three-outcome contract: the
// result is always a display string, whether rendering succeeded, the
// recency window exhausted the template set, or the chosen template
// file had gone missing.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/parishav/announcer/internal/config"
	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/models"
	"github.com/parishav/announcer/internal/renderer"
	"github.com/parishav/announcer/internal/selector"
	"github.com/parishav/announcer/internal/storage"
	"github.com/parishav/announcer/internal/thumbnail"
	"github.com/parishav/announcer/internal/youtube"
)

// StreamLookup finds upcoming scheduled broadcasts. Satisfied by
// *youtube.Client; tests substitute a stub.
type StreamLookup interface {
	UpcomingLivestreams(channelID string, maxResults int) ([]models.Livestream, error)
}

// Service provides business logic for announcement generation and
// template management
type Service struct {
	storage    *storage.Storage
	selector   *selector.Selector
	lookup     StreamLookup
	thumbnails *thumbnail.Processor
	cfg        *config.Config
}

// NewService creates a new service instance from loaded configuration.
func NewService(cfg *config.Config) (*Service, error) {
	store, err := storage.NewStorage(cfg.LibraryDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &Service{
		storage:    store,
		selector:   selector.New(),
		lookup:     youtube.NewClient(cfg.APIKey),
		thumbnails: thumbnail.NewProcessor(),
		cfg:        cfg,
	}, nil
}

// SetSelector replaces the random selector. Tests inject a seeded one.
func (s *Service) SetSelector(sel *selector.Selector) {
	s.selector = sel
}

// SetStreamLookup replaces the livestream lookup collaborator.
func (s *Service) SetStreamLookup(lookup StreamLookup) {
	s.lookup = lookup
}

// Storage exposes the underlying store for surfaces that need paths.
func (s *Service) Storage() *storage.Storage {
	return s.storage
}

// Config returns the loaded configuration.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Thumbnails exposes the thumbnail processor for surfaces that work
// with raw image URLs.
func (s *Service) Thumbnails() *thumbnail.Processor {
	return s.thumbnails
}

// InitLibrary initializes a new announcement library
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// ListTemplates returns all templates ordered by id.
func (s *Service) ListTemplates() ([]*models.Template, error) {
	return s.storage.ListTemplates()
}

// SearchTemplates filters templates by fuzzy-matching query against
// their id and body text.
func (s *Service) SearchTemplates(query string) ([]*models.Template, error) {
	templates, err := s.storage.ListTemplates()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return templates, nil
	}

	var searchStrings []string
	for _, t := range templates {
		searchStrings = append(searchStrings, fmt.Sprintf("%d %s", t.ID, t.Body))
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.Template
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}
	return results, nil
}

// GetTemplate returns a template by id.
func (s *Service) GetTemplate(id int) (*models.Template, error) {
	return s.storage.LoadTemplate(id)
}

// CreateTemplate stores a new template under the next sequential id
// and returns it.
func (s *Service) CreateTemplate(body string) (*models.Template, error) {
	id, err := s.storage.NextTemplateID()
	if err != nil {
		return nil, err
	}

	tmpl := &models.Template{ID: id, Body: body}
	if err := s.storage.SaveTemplate(tmpl); err != nil {
		return nil, err
	}
	return s.storage.LoadTemplate(id)
}

// UpdateTemplate overwrites the body of an existing template.
func (s *Service) UpdateTemplate(id int, body string) error {
	// Require the template to exist; updates never create ids
	if _, err := s.storage.LoadTemplate(id); err != nil {
		return err
	}
	return s.storage.SaveTemplate(&models.Template{ID: id, Body: body})
}

// DeleteTemplate removes a template by id.
func (s *Service) DeleteTemplate(id int) error {
	return s.storage.DeleteTemplate(id)
}

// History returns the full selection log, oldest first.
func (s *Service) History() ([]int, error) {
	return s.storage.LoadHistory()
}

// GenerateAnnouncement runs one generation call: load history, pick a
// template id outside the recency window, render it, then append the
// id to history. All three outcomes resolve to a display string; the
// history is appended only after a successful render, never on an
// Exhausted or TemplateNotFound outcome.
func (s *Service) GenerateAnnouncement(req models.RenderRequest) string {
	history, err := s.storage.LoadHistory()
	if err != nil {
		// Unreadable history degrades to "no prior selections"
		fmt.Fprintf(os.Stderr, "Warning: failed to load history: %v\n", err)
		history = []int{}
	}

	ids, err := s.storage.TemplateIDs()
	if err != nil {
		return errors.GetAppError(err).Message
	}

	id, err := s.selector.Pick(ids, history, s.cfg.HistoryWindow)
	if err != nil {
		return errors.GetAppError(err).Message
	}

	tmpl, err := s.storage.LoadTemplate(id)
	if err != nil {
		return errors.GetAppError(err).Message
	}

	text := renderer.NewRenderer(tmpl, req).Render()

	if err := s.storage.AppendHistory(id); err != nil {
		// The text is already produced; losing one history row only
		// weakens repeat avoidance for the next pick
		fmt.Fprintf(os.Stderr, "Warning: failed to append history: %v\n", err)
	}

	return text
}

// RenderTemplate renders one specific template by id without touching
// the selection history. A missing id resolves to the
// TemplateNotFound display string, mirroring the generation contract.
func (s *Service) RenderTemplate(id int, req models.RenderRequest) string {
	tmpl, err := s.storage.LoadTemplate(id)
	if err != nil {
		return errors.GetAppError(err).Message
	}
	return renderer.NewRenderer(tmpl, req).Render()
}

// UpcomingLivestreams returns the channel's upcoming scheduled
// broadcasts with start times filled in.
func (s *Service) UpcomingLivestreams() ([]models.Livestream, error) {
	return s.lookup.UpcomingLivestreams(s.cfg.ChannelID, s.cfg.MaxResults)
}

// SaveThumbnail writes a stream's cropped thumbnail next to the
// library and returns the path, or "" when no image was available.
func (s *Service) SaveThumbnail(stream models.Livestream, dir string) (string, error) {
	path := filepath.Join(dir, thumbnailFilename(stream))
	saved, err := s.thumbnails.SaveFile(stream.ThumbnailURL, path)
	if err != nil {
		return "", err
	}
	if !saved {
		return "", nil
	}
	return path, nil
}

// thumbnailFilename derives the download filename from a stream
// title. Path separators and other characters that are unsafe in file
// names are replaced so a title never escapes the target directory.
func thumbnailFilename(stream models.Livestream) string {
	title := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 32 {
			return '-'
		}
		return r
	}, stream.Title)

	title = strings.Trim(title, " .")
	if title == "" {
		title = "stream"
	}
	return title + "_thumbnail.jpg"
}
