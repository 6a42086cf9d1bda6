package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parishav/announcer/internal/models"
)

// AnnounceForm collects the render inputs before generation: service
// date, watch link and extra information
type AnnounceForm struct {
	inputs    []textinput.Model
	focused   int
	submitted bool
	cancelled bool
}

// Announce form field indices
const (
	dateField = iota
	linkField
	infoField
)

// NewAnnounceForm creates the form, prefilled from an upcoming
// livestream when one was selected
func NewAnnounceForm(date time.Time, link string) *AnnounceForm {
	inputs := make([]textinput.Model, 3)

	inputs[dateField] = textinput.New()
	inputs[dateField].SetValue(date.Format("2006-01-02"))
	inputs[dateField].CharLimit = 10
	inputs[dateField].Width = 20
	inputs[dateField].Focus()

	inputs[linkField] = textinput.New()
	inputs[linkField].SetValue(link)
	inputs[linkField].CharLimit = 200
	inputs[linkField].Width = 60

	inputs[infoField] = textinput.New()
	inputs[infoField].Placeholder = "e.g. Harvest Festival"
	inputs[infoField].CharLimit = 200
	inputs[infoField].Width = 60

	return &AnnounceForm{inputs: inputs}
}

// Update handles form input
func (f *AnnounceForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.focusField((f.focused + 1) % len(f.inputs))
			return nil
		case "shift+tab", "up":
			f.focusField((f.focused + len(f.inputs) - 1) % len(f.inputs))
			return nil
		case "enter":
			f.submitted = true
			return nil
		case "esc":
			f.cancelled = true
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

func (f *AnnounceForm) focusField(i int) {
	f.inputs[f.focused].Blur()
	f.focused = i
	f.inputs[f.focused].Focus()
}

// Submitted reports whether the user pressed enter
func (f *AnnounceForm) Submitted() bool { return f.submitted }

// Cancelled reports whether the user pressed esc
func (f *AnnounceForm) Cancelled() bool { return f.cancelled }

// ClearSubmitted resets the submit flag after a failed validation
func (f *AnnounceForm) ClearSubmitted() { f.submitted = false }

// Request validates the fields and builds the render request
func (f *AnnounceForm) Request() (models.RenderRequest, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(f.inputs[dateField].Value()))
	if err != nil {
		return models.RenderRequest{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", f.inputs[dateField].Value())
	}

	return models.RenderRequest{
		ScheduledDate: date,
		Link:          strings.TrimSpace(f.inputs[linkField].Value()),
		Info:          strings.TrimSpace(f.inputs[infoField].Value()),
	}, nil
}

// View renders the form
func (f *AnnounceForm) View() string {
	var b strings.Builder

	labels := []string{"Service date", "Watch link", "Information"}
	for i, input := range f.inputs {
		b.WriteString(StyleFormLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(StyleFormHelp.Render("tab next field • enter generate • esc cancel"))
	return AddFormPadding(b.String())
}

// TemplateForm edits a single template body
type TemplateForm struct {
	textarea  textarea.Model
	id        int
	submitted bool
	cancelled bool
}

// NewTemplateForm creates an editor. id 0 means a new template.
func NewTemplateForm(id int, body string) *TemplateForm {
	ta := textarea.New()
	ta.Placeholder = "Announcement text with INSERTDATE, INSERTLINK and INSERTINFORMATION placeholders..."
	ta.SetValue(body)
	ta.SetWidth(76)
	ta.SetHeight(14)
	ta.CharLimit = 0
	ta.Focus()

	return &TemplateForm{textarea: ta, id: id}
}

// Update handles editor input
func (f *TemplateForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+s":
			f.submitted = true
			return nil
		case "esc":
			f.cancelled = true
			return nil
		}
	}

	var cmd tea.Cmd
	f.textarea, cmd = f.textarea.Update(msg)
	return cmd
}

// Resize adjusts the editor to the window
func (f *TemplateForm) Resize(width, height int) {
	w := width - 8
	if w < 40 {
		w = 40
	}
	h := height - 6
	if h < 5 {
		h = 5
	}
	f.textarea.SetWidth(w)
	f.textarea.SetHeight(h)
}

// ID returns the template id being edited, 0 for a new template
func (f *TemplateForm) ID() int { return f.id }

// Body returns the edited text
func (f *TemplateForm) Body() string { return f.textarea.Value() }

// Submitted reports whether the user pressed ctrl+s
func (f *TemplateForm) Submitted() bool { return f.submitted }

// Cancelled reports whether the user pressed esc
func (f *TemplateForm) Cancelled() bool { return f.cancelled }

// View renders the editor
func (f *TemplateForm) View() string {
	var b strings.Builder

	b.WriteString(f.textarea.View())
	b.WriteString("\n\n")
	b.WriteString(StyleFormHelp.Render("ctrl+s save • esc cancel"))
	return AddFormPadding(b.String())
}
