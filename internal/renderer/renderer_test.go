package renderer

import (
	"testing"
	"time"

	"github.com/parishav/announcer/internal/models"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFormatLongDate(t *testing.T) {
	testCases := []struct {
		date     string
		expected string
	}{
		{"2024-11-17", "17th November 2024"},
		{"2024-11-01", "1st November 2024"},
		{"2024-11-02", "2nd November 2024"},
		{"2024-11-03", "3rd November 2024"},
		{"2024-11-04", "4th November 2024"},
		{"2024-11-10", "10th November 2024"},
		{"2024-11-11", "11th November 2024"},
		{"2024-11-12", "12th November 2024"},
		{"2024-11-13", "13th November 2024"},
		{"2024-11-21", "21st November 2024"},
		{"2024-11-22", "22nd November 2024"},
		{"2024-11-23", "23rd November 2024"},
		{"2024-11-30", "30th November 2024"},
		{"2025-01-31", "31st January 2025"},
	}

	for _, tc := range testCases {
		t.Run(tc.date, func(t *testing.T) {
			got := FormatLongDate(date(tc.date))
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRenderSubstitutesAllTokens(t *testing.T) {
	tmpl := &models.Template{
		ID:   1,
		Body: "Join us on INSERTDATE forINSERTINFORMATION. Watch here: INSERTLINK",
	}
	req := models.RenderRequest{
		ScheduledDate: date("2024-11-17"),
		Link:          "https://www.youtube.com/watch?v=abc123",
		Info:          "Evening Prayer",
	}

	got := NewRenderer(tmpl, req).Render()
	expected := "Join us on 17th November 2024 forEvening Prayer. Watch here: https://www.youtube.com/watch?v=abc123"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestRenderMorningPrefixRule(t *testing.T) {
	testCases := []struct {
		name     string
		info     string
		expected string
	}{
		{
			name:     "morning info gains our prefix",
			info:     "Morning Prayer",
			expected: "Join us for our Morning Prayer.",
		},
		{
			name:     "evening info inserted verbatim",
			info:     "Evening Prayer",
			expected: "Join us forEvening Prayer.",
		},
		{
			name:     "empty info inserted verbatim",
			info:     "",
			expected: "Join us for.",
		},
	}

	tmpl := &models.Template{ID: 2, Body: "Join us forINSERTINFORMATION."}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := models.RenderRequest{
				ScheduledDate: date("2024-11-17"),
				Info:          tc.info,
			}
			got := NewRenderer(tmpl, req).Render()
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRenderLinkInsertedVerbatim(t *testing.T) {
	tmpl := &models.Template{ID: 3, Body: "INSERTLINK"}
	req := models.RenderRequest{
		ScheduledDate: date("2024-11-17"),
		Link:          "https://example.com/watch?v=a&t=1",
	}

	// No escaping or encoding is applied
	got := NewRenderer(tmpl, req).Render()
	if got != "https://example.com/watch?v=a&t=1" {
		t.Errorf("Link was not inserted verbatim: %q", got)
	}
}

func TestRenderRepeatedTokens(t *testing.T) {
	tmpl := &models.Template{ID: 4, Body: "INSERTDATE and again INSERTDATE"}
	req := models.RenderRequest{ScheduledDate: date("2024-11-01")}

	got := NewRenderer(tmpl, req).Render()
	if got != "1st November 2024 and again 1st November 2024" {
		t.Errorf("Expected both tokens replaced, got %q", got)
	}
}

func TestRenderBodyWithoutTokens(t *testing.T) {
	body := "A plain announcement with {braces} and $signs."
	tmpl := &models.Template{ID: 5, Body: body}

	got := NewRenderer(tmpl, models.RenderRequest{ScheduledDate: date("2024-11-01")}).Render()
	if got != body {
		t.Errorf("Token-free body must pass through untouched, got %q", got)
	}
}
