// Package renderer handles announcement rendering.
//
// Template bodies carry three literal placeholder tokens that are
// replaced verbatim: INSERTDATE, INSERTLINK and INSERTINFORMATION.
// Tokens never overlap, so substitution order does not matter. Bodies
// are plain text, not Go template syntax: braces and other markup in a
// template pass through untouched.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/parishav/announcer/internal/models"
)

// Placeholder tokens recognized in template bodies.
const (
	TokenDate        = "INSERTDATE"
	TokenLink        = "INSERTLINK"
	TokenInformation = "INSERTINFORMATION"
)

// Renderer substitutes request values into a template body
type Renderer struct {
	template *models.Template
	request  models.RenderRequest
}

// NewRenderer creates a new renderer instance
func NewRenderer(template *models.Template, request models.RenderRequest) *Renderer {
	return &Renderer{
		template: template,
		request:  request,
	}
}

// Render returns the template body with every placeholder token
// replaced by its formatted request value.
func (r *Renderer) Render() string {
	content := r.template.Body

	content = strings.ReplaceAll(content, TokenDate, FormatLongDate(r.request.ScheduledDate))
	content = strings.ReplaceAll(content, TokenLink, r.request.Link)
	content = strings.ReplaceAll(content, TokenInformation, informationValue(r.request.Info))

	return content
}

// informationValue applies the content rule for the information token:
// text beginning with the word "Morning" gains a leading " our " so
// that "Morning Service" reads as "our Morning Service" mid-sentence.
// Anything else is inserted verbatim.
func informationValue(info string) string {
	if strings.HasPrefix(info, "Morning") {
		return " our " + info
	}
	return info
}

// FormatLongDate formats a date as "17th November 2024".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s %d", t.Day(), ordinalSuffix(t.Day()), t.Month().String(), t.Year())
}

// ordinalSuffix returns the English ordinal suffix for a day of month.
// 11 through 13 always take "th"; that case is checked before the
// last-digit rule, not instead of it.
func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
