package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/parishav/announcer/internal/clipboard"
	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/models"
	"github.com/parishav/announcer/internal/service"
)

// createGlamourRenderer creates a glamour renderer with contrast
// handling matched to the terminal
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// streamItem adapts a livestream for the bubbles list component
type streamItem struct {
	stream models.Livestream
}

func (s streamItem) Title() string {
	if s.stream.IsFirstSunday() {
		return s.stream.Title + " ★ first Sunday"
	}
	return s.stream.Title
}

func (s streamItem) Description() string {
	return fmt.Sprintf("%s • %s",
		s.stream.ScheduledStart.Format("Mon 2 Jan 2006 15:04"),
		s.stream.WatchURL())
}

func (s streamItem) FilterValue() string {
	return s.stream.Title
}

// Messages for async operations
type streamsLoadedMsg struct {
	streams []models.Livestream
	err     error
}

type templatesLoadedMsg struct {
	templates []*models.Template
	err       error
}

type thumbnailSavedMsg struct {
	path string
	err  error
}

// loadStreamsCmd fetches upcoming livestreams off the update loop
func loadStreamsCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		streams, err := svc.UpcomingLivestreams()
		return streamsLoadedMsg{streams: streams, err: err}
	}
}

// loadTemplatesCmd reads the template library
func loadTemplatesCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		templates, err := svc.ListTemplates()
		return templatesLoadedMsg{templates: templates, err: err}
	}
}

// saveThumbnailCmd downloads and crops a stream's thumbnail
func saveThumbnailCmd(svc *service.Service, stream models.Livestream) tea.Cmd {
	return func() tea.Msg {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		path, err := svc.SaveThumbnail(stream, dir)
		return thumbnailSavedMsg{path: path, err: err}
	}
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewStreams ViewMode = iota
	ViewAnnounceForm
	ViewAnnouncement
	ViewTemplateList
	ViewTemplateDetail
	ViewTemplateEdit
	ViewHelp
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	streamList   list.Model
	templateList list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	// Data
	streams          []models.Livestream
	templates        []*models.Template
	loadingStreams   bool
	selectedStream   *models.Livestream
	selectedTemplate *models.Template

	// Forms
	announceForm *AnnounceForm
	templateForm *TemplateForm

	// Generation state. The result lands in an editable textarea so
	// the operator can tweak the text before copying it out.
	announceEditor textarea.Model
	lastRequest    models.RenderRequest
	hasRequest     bool

	// Rendered help content
	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int

	// Error presentation
	errorHandler *errors.TUIErrorHandler

	// Pending delete confirmation
	deleteConfirm bool

	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Quit      key.Binding
	Help      key.Binding
	Generate  key.Binding
	Copy      key.Binding
	Thumbnail key.Binding
	Refresh   key.Binding
	Templates key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Generate, k.Copy, k.Thumbnail, k.Refresh},
		{k.Templates, k.New, k.Edit, k.Delete},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Thumbnail: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save thumbnail"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh streams"),
	),
	Templates: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "templates"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new template"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	streamList := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	streamList.Title = ""
	streamList.SetShowStatusBar(false)
	streamList.SetFilteringEnabled(false)
	streamList.SetShowHelp(false)

	templateList := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
	templateList.Title = ""
	templateList.SetShowStatusBar(false)
	templateList.SetFilteringEnabled(true)
	templateList.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	editor := textarea.New()
	editor.SetWidth(76)
	editor.SetHeight(12)
	editor.CharLimit = 0

	renderer, err := createGlamourRenderer(72)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewStreams,
		streamList:      streamList,
		templateList:    templateList,
		viewport:        vp,
		announceEditor:  editor,
		help:            help.New(),
		keys:            keys,
		loadingStreams:  true,
		glamourRenderer: renderer,
		errorHandler:    errors.NewTUIErrorHandler(false),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadStreamsCmd(m.service), loadTemplatesCmd(m.service))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case streamsLoadedMsg:
		m.loadingStreams = false
		if msg.err != nil {
			m.setError(msg.err, 5)
			return m, clearStatusCmd()
		}
		m.streams = msg.streams
		items := make([]list.Item, len(m.streams))
		for i, s := range m.streams {
			items[i] = streamItem{stream: s}
		}
		m.streamList.SetItems(items)
		return m, nil

	case templatesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err, 5)
			return m, clearStatusCmd()
		}
		m.templates = msg.templates
		items := make([]list.Item, len(m.templates))
		for i, t := range m.templates {
			items[i] = t
		}
		m.templateList.SetItems(items)
		return m, nil

	case thumbnailSavedMsg:
		if msg.err != nil {
			m.setError(msg.err, 5)
		} else if msg.path == "" {
			m.setStatus("No thumbnail available for this stream", 5)
		} else {
			m.setStatus("Saved "+msg.path, 5)
		}
		return m, clearStatusCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const minReservedHeight = 8
		availableHeight := msg.Height - minReservedHeight
		if availableHeight < 5 {
			availableHeight = 5
		}

		m.streamList.SetSize(msg.Width, availableHeight)
		m.templateList.SetSize(msg.Width, availableHeight)

		viewportWidth := msg.Width - 10
		if viewportWidth < 40 {
			viewportWidth = 40
		}
		m.viewport.Width = viewportWidth
		m.viewport.Height = availableHeight

		editorWidth := msg.Width - 8
		if editorWidth < 40 {
			editorWidth = 40
		}
		m.announceEditor.SetWidth(editorWidth)
		m.announceEditor.SetHeight(availableHeight - 2)

		if m.templateForm != nil {
			m.templateForm.Resize(msg.Width, availableHeight)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes key input per view
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewStreams:
		return m.updateStreamsView(msg)
	case ViewAnnounceForm:
		return m.updateAnnounceFormView(msg)
	case ViewAnnouncement:
		return m.updateAnnouncementView(msg)
	case ViewTemplateList:
		return m.updateTemplateListView(msg)
	case ViewTemplateDetail:
		return m.updateTemplateDetailView(msg)
	case ViewTemplateEdit:
		return m.updateTemplateEditView(msg)
	case ViewHelp:
		return m.updateHelpView(msg)
	}
	return m, nil
}

func (m Model) updateStreamsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
		m.renderHelpContent()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loadingStreams = true
		return m, loadStreamsCmd(m.service)

	case key.Matches(msg, m.keys.Templates):
		m.viewMode = ViewTemplateList
		return m, loadTemplatesCmd(m.service)

	case key.Matches(msg, m.keys.Thumbnail):
		if item, ok := m.streamList.SelectedItem().(streamItem); ok {
			m.setStatus("Saving thumbnail...", 10)
			return m, tea.Batch(saveThumbnailCmd(m.service, item.stream), clearStatusCmd())
		}
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		// Generate without a stream: next Sunday, blank link
		m.selectedStream = nil
		m.announceForm = NewAnnounceForm(models.NextSunday(time.Now()), "")
		m.viewMode = ViewAnnounceForm
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.streamList.SelectedItem().(streamItem); ok {
			stream := item.stream
			m.selectedStream = &stream
			m.announceForm = NewAnnounceForm(stream.ScheduledStart, stream.WatchURL())
			m.viewMode = ViewAnnounceForm
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.streamList, cmd = m.streamList.Update(msg)
	return m, cmd
}

func (m Model) updateAnnounceFormView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.announceForm.Update(msg)

	if m.announceForm.Cancelled() {
		m.announceForm = nil
		m.viewMode = ViewStreams
		return m, nil
	}

	if m.announceForm.Submitted() {
		req, err := m.announceForm.Request()
		if err != nil {
			m.announceForm.ClearSubmitted()
			m.setError(errors.ValidationError(err.Error()), 5)
			return m, clearStatusCmd()
		}

		m.lastRequest = req
		m.hasRequest = true
		m.announceEditor.SetValue(m.service.GenerateAnnouncement(req))
		m.announceEditor.Focus()
		m.announceForm = nil
		m.viewMode = ViewAnnouncement
		return m, nil
	}

	return m, cmd
}

// updateAnnouncementView keeps the textarea focused for free editing,
// so its actions live on control keys that never collide with typing
func (m Model) updateAnnouncementView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.announceEditor.Blur()
		m.viewMode = ViewStreams
		return m, nil

	case "ctrl+y":
		// Copy whatever the operator has edited, not the raw render
		if statusMsg, err := clipboard.CopyWithFallback(m.announceEditor.Value()); err != nil {
			m.setError(err, 5)
		} else {
			m.setStatus(statusMsg, 3)
		}
		return m, clearStatusCmd()

	case "ctrl+g":
		// Redraw with the same inputs; the selector may pick another
		// template. Manual edits to the previous draft are discarded.
		if m.hasRequest {
			m.announceEditor.SetValue(m.service.GenerateAnnouncement(m.lastRequest))
		}
		return m, nil

	case "ctrl+t":
		if m.selectedStream != nil {
			m.setStatus("Saving thumbnail...", 10)
			return m, tea.Batch(saveThumbnailCmd(m.service, *m.selectedStream), clearStatusCmd())
		}
		m.setStatus("No stream selected for a thumbnail", 3)
		return m, clearStatusCmd()
	}

	var cmd tea.Cmd
	m.announceEditor, cmd = m.announceEditor.Update(msg)
	return m, cmd
}

func (m Model) updateTemplateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirmation for a pending delete takes priority
	if m.deleteConfirm {
		m.deleteConfirm = false
		if msg.String() == "y" {
			if item, ok := m.templateList.SelectedItem().(*models.Template); ok {
				if err := m.service.DeleteTemplate(item.ID); err != nil {
					m.setError(err, 5)
					return m, clearStatusCmd()
				}
				m.setStatus(fmt.Sprintf("Deleted template %d", item.ID), 3)
				return m, tea.Batch(loadTemplatesCmd(m.service), clearStatusCmd())
			}
		}
		m.setStatus("Deletion cancelled", 3)
		return m, clearStatusCmd()
	}

	// Let the list swallow keys while filtering
	if m.templateList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewStreams
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
		m.renderHelpContent()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.templateForm = NewTemplateForm(0, "")
		m.viewMode = ViewTemplateEdit
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.templateList.SelectedItem().(*models.Template); ok {
			m.templateForm = NewTemplateForm(item.ID, item.Body)
			m.viewMode = ViewTemplateEdit
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.templateList.SelectedItem().(*models.Template); ok {
			m.deleteConfirm = true
			m.setStatus("Delete this template? (y/n)", 10)
			return m, clearStatusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.templateList.SelectedItem().(*models.Template); ok {
			m.selectedTemplate = item
			m.viewport.SetContent(item.Body)
			m.viewport.GotoTop()
			m.viewMode = ViewTemplateDetail
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) updateTemplateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewTemplateList
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.selectedTemplate != nil {
			m.templateForm = NewTemplateForm(m.selectedTemplate.ID, m.selectedTemplate.Body)
			m.viewMode = ViewTemplateEdit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateTemplateEditView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.templateForm.Update(msg)

	if m.templateForm.Cancelled() {
		m.templateForm = nil
		m.viewMode = ViewTemplateList
		return m, nil
	}

	if m.templateForm.Submitted() {
		var err error
		if m.templateForm.ID() == 0 {
			_, err = m.service.CreateTemplate(m.templateForm.Body())
		} else {
			err = m.service.UpdateTemplate(m.templateForm.ID(), m.templateForm.Body())
		}

		m.templateForm = nil
		m.viewMode = ViewTemplateList
		if err != nil {
			m.setError(err, 5)
			return m, clearStatusCmd()
		}
		m.setStatus("Template saved", 3)
		return m, tea.Batch(loadTemplatesCmd(m.service), clearStatusCmd())
	}

	return m, cmd
}

func (m Model) updateHelpView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.viewMode = ViewStreams
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// setStatus shows a transient status message; timeout is in ticks
func (m *Model) setStatus(text string, timeout int) {
	m.statusMsg = text
	m.statusType = "success"
	m.statusTimeout = timeout
}

// setError routes a failure through the TUI error handler: the error
// is logged to the error file, and the status bar shows the
// severity icon with the user-facing message.
func (m *Model) setError(err error, timeout int) {
	m.errorHandler.HandleError(err)

	icon, _ := m.errorHandler.GetErrorStyle(err)
	m.statusMsg = icon + " " + m.errorHandler.FormatError(err)
	m.statusType = "error"
	m.statusTimeout = timeout
}

// renderHelpContent renders the help markdown into the viewport
func (m *Model) renderHelpContent() {
	const helpMarkdown = `# Announcer

Generate livestream announcements from numbered templates.

## Streams view

- **Enter** — announce the selected stream (date and link prefilled)
- **g** — generate without a stream (date defaults to next Sunday)
- **s** — save the stream's cropped thumbnail to the current directory
- **r** — refresh the stream list
- **t** — manage templates

## Announcement view

The generated text sits in an editable box; type to adjust it.

- **ctrl+y** — copy the text as shown to the clipboard
- **ctrl+g** — generate again with the same inputs
- **ctrl+t** — save the stream thumbnail

## Templates view

- **Enter** — view a template
- **n** — new template
- **e** — edit the selected template
- **d** — delete the selected template (asks for confirmation)
- **/** — filter

Placeholders INSERTDATE, INSERTLINK and INSERTINFORMATION are replaced
at generation time. A template is not repeated until enough other
templates have been used in between.
`

	rendered, err := m.glamourRenderer.Render(helpMarkdown)
	if err != nil {
		rendered = helpMarkdown
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// View renders the current view
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press 'q' to quit.\n", m.err)
	}

	var mainView string
	switch m.viewMode {
	case ViewStreams:
		mainView = m.renderStreamsView()
	case ViewAnnounceForm:
		mainView = m.renderAnnounceFormView()
	case ViewAnnouncement:
		mainView = m.renderAnnouncementView()
	case ViewTemplateList:
		mainView = m.renderTemplateListView()
	case ViewTemplateDetail:
		mainView = m.renderTemplateDetailView()
	case ViewTemplateEdit:
		mainView = m.renderTemplateEditView()
	case ViewHelp:
		mainView = m.renderHelpView()
	default:
		mainView = "Unknown view mode"
	}

	if m.statusMsg != "" {
		statusBar := CreateStatus(m.statusMsg, m.statusType)
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, statusBar))
	}

	return AddMainPadding(mainView)
}

func (m Model) renderStreamsView() string {
	title := CreateMainHeader("Upcoming Livestreams")
	help := CreateHelp("enter announce • g generate • s thumbnail • r refresh • t templates • ? help • q quit")

	elements := []string{title}
	if m.loadingStreams {
		elements = append(elements, StyleLoading.Render("Loading streams..."))
	} else if len(m.streams) == 0 {
		elements = append(elements, StyleTextMuted.Render("No upcoming livestreams found."))
		elements = append(elements, CreateMetadata("Press g to generate an announcement without one."))
	} else {
		elements = append(elements, m.streamList.View())
	}
	elements = append(elements, help)

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderAnnounceFormView() string {
	title := CreateSubPageHeader("Announcement Details")

	var header string
	if m.selectedStream != nil {
		header = CreateMetadata("Stream: " + m.selectedStream.Title)
	} else {
		header = CreateMetadata("No stream selected")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header, "", m.announceForm.View())
}

func (m Model) renderAnnouncementView() string {
	title := CreateSubPageHeader("Announcement")
	help := CreateHelp("ctrl+y copy • ctrl+g generate again • ctrl+t thumbnail • esc back")

	elements := []string{title, CreateMetadata("Edit freely; copy takes the text as shown")}
	if m.selectedStream != nil && m.selectedStream.IsFirstSunday() {
		elements = append(elements, CreateMetadata("First Sunday of the month"))
	}
	elements = append(elements, StyleContentContainer.Render(m.announceEditor.View()), help)

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

func (m Model) renderTemplateListView() string {
	title := CreateMainHeader("Templates")
	help := CreateHelp("enter view • n new • e edit • d delete • / filter • esc back • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.templateList.View(), help)
}

func (m Model) renderTemplateDetailView() string {
	if m.selectedTemplate == nil {
		return "No template selected"
	}

	title := CreateSubPageHeader(fmt.Sprintf("Template %d", m.selectedTemplate.ID))
	meta := CreateMetadata("File: " + m.selectedTemplate.Filename())
	help := CreateHelp("e edit • esc back • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, meta,
		StyleContentContainer.Render(m.viewport.View()), help)
}

func (m Model) renderTemplateEditView() string {
	var title string
	if m.templateForm != nil && m.templateForm.ID() == 0 {
		title = CreateSubPageHeader("New Template")
	} else {
		title = CreateSubPageHeader("Edit Template")
	}

	if m.templateForm == nil {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.templateForm.View())
}

func (m Model) renderHelpView() string {
	title := CreateSubPageHeader("Help")
	help := CreateHelp("esc back • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), help)
}
