package models

import (
	"fmt"
	"strings"
	"time"
)

// Template represents a numbered announcement template stored as a
// plain text file. The body may contain the placeholder tokens
// INSERTDATE, INSERTLINK and INSERTINFORMATION.
type Template struct {
	ID        int       // numeric id, assigned sequentially, never reused
	Body      string    // raw text including placeholder tokens
	FilePath  string    // path relative to the library root
	UpdatedAt time.Time // mtime of the backing file
}

// Filename returns the file name a template of this id is stored under.
func (t Template) Filename() string {
	return fmt.Sprintf("%d.txt", t.ID)
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return fmt.Sprintf("%d %s", t.ID, cleanString(t.Body))
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	return fmt.Sprintf("Template %d", t.ID)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	var parts []string

	preview := cleanString(t.Body)
	maxPreviewLength := 60
	if len(preview) > maxPreviewLength {
		preview = preview[:maxPreviewLength-3] + "..."
	}
	if preview != "" {
		parts = append(parts, preview)
	}

	if !t.UpdatedAt.IsZero() {
		parts = append(parts, "Last edited: "+t.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return strings.Join(parts, " • ")
}

// cleanString removes control characters that would break single-line
// list rendering and collapses runs of whitespace.
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	cleaned := ""
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned += " "
		} else if r >= 32 && r != 127 {
			cleaned += string(r)
		}
	}

	for cleaned != strings.ReplaceAll(cleaned, "  ", " ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
