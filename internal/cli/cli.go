package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/parishav/announcer/internal/clipboard"
	"github.com/parishav/announcer/internal/models"
	"github.com/parishav/announcer/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	switch command {
	case "list", "ls":
		return c.listTemplates(args[1:])
	case "search":
		return c.searchTemplates(args[1:])
	case "show", "get":
		return c.showTemplate(args[1:])
	case "create", "new":
		return c.createTemplate(args[1:])
	case "edit":
		return c.editTemplate(args[1:])
	case "delete", "rm":
		return c.deleteTemplate(args[1:])
	case "generate":
		return c.generate(args[1:])
	case "render":
		return c.renderTemplate(args[1:])
	case "streams":
		return c.listStreams(args[1:])
	case "thumbnail":
		return c.saveThumbnail(args[1:])
	case "history":
		return c.showHistory(args[1:])
	case "help", "--help", "-h":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s (use 'announcer help' for usage)", command)
	}
}

// listTemplates lists all templates
func (c *CLI) listTemplates(args []string) error {
	var format string

	// Parse flags
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	templates, err := c.service.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	return c.formatOutput(templates, format)
}

// searchTemplates fuzzy-searches template bodies
func (c *CLI) searchTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("search requires a query")
	}

	query := args[0]
	var format string

	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	templates, err := c.service.SearchTemplates(query)
	if err != nil {
		return fmt.Errorf("failed to search templates: %w", err)
	}

	return c.formatOutput(templates, format)
}

// showTemplate prints a single template
func (c *CLI) showTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a template id")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var format string
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	tmpl, err := c.service.GetTemplate(id)
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	return c.formatSingleTemplate(tmpl, format)
}

// createTemplate creates a new template under the next free id
func (c *CLI) createTemplate(args []string) error {
	body, err := c.readBody(args)
	if err != nil {
		return err
	}
	if body == "" {
		return fmt.Errorf("create requires a body (--body, --file or --stdin)")
	}

	tmpl, err := c.service.CreateTemplate(body)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	fmt.Printf("Created template %d (%s)\n", tmpl.ID, tmpl.Filename())
	return nil
}

// editTemplate overwrites an existing template body
func (c *CLI) editTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("edit requires a template id")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	body, err := c.readBody(args[1:])
	if err != nil {
		return err
	}
	if body == "" {
		return fmt.Errorf("edit requires a body (--body, --file or --stdin)")
	}

	if err := c.service.UpdateTemplate(id, body); err != nil {
		return fmt.Errorf("failed to edit template: %w", err)
	}

	fmt.Printf("Updated template %d\n", id)
	return nil
}

// deleteTemplate removes a template
func (c *CLI) deleteTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a template id")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	force := false
	for _, arg := range args[1:] {
		if arg == "--force" || arg == "-f" {
			force = true
		}
	}

	if !force {
		fmt.Printf("Delete template %d? This cannot be undone. (y/N): ", id)
		reader := bufio.NewReader(os.Stdin)
		response, _ := reader.ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Deletion cancelled")
			return nil
		}
	}

	if err := c.service.DeleteTemplate(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	fmt.Printf("Deleted template %d\n", id)
	return nil
}

// generate produces announcement text for the next selected template
// and appends the pick to the history
func (c *CLI) generate(args []string) error {
	req, copyText, err := c.parseRenderRequest(args)
	if err != nil {
		return err
	}

	text := c.service.GenerateAnnouncement(req)
	fmt.Println(text)

	if copyText {
		c.copyToClipboard(text)
	}
	return nil
}

// renderTemplate renders one specific template without touching history
func (c *CLI) renderTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render requires a template id")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	req, copyText, err := c.parseRenderRequest(args[1:])
	if err != nil {
		return err
	}

	text := c.service.RenderTemplate(id, req)
	fmt.Println(text)

	if copyText {
		c.copyToClipboard(text)
	}
	return nil
}

// listStreams prints the channel's upcoming scheduled livestreams
func (c *CLI) listStreams(args []string) error {
	var format string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	streams, err := c.service.UpcomingLivestreams()
	if err != nil {
		return fmt.Errorf("failed to fetch livestreams: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(streams)
	}

	if len(streams) == 0 {
		fmt.Println("No upcoming livestreams found")
		return nil
	}

	for _, s := range streams {
		fmt.Printf("%s\n", s.Title)
		fmt.Printf("  Scheduled: %s\n", s.ScheduledStart.Format("Mon 2 Jan 2006 15:04 MST"))
		fmt.Printf("  Watch: %s\n", s.WatchURL())
		if s.IsFirstSunday() {
			fmt.Printf("  Note: first Sunday of the month\n")
		}
		fmt.Println()
	}
	return nil
}

// saveThumbnail downloads and crops a thumbnail image to disk
func (c *CLI) saveThumbnail(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("thumbnail requires an image URL")
	}

	url := args[0]
	out := "thumbnail.jpg"
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--out", "-o":
			if i+1 < len(args) {
				out = args[i+1]
				i++
			}
		}
	}

	saved, err := c.service.Thumbnails().SaveFile(url, out)
	if err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	if !saved {
		fmt.Println("No image available at that URL")
		return nil
	}

	fmt.Printf("Saved cropped thumbnail to %s\n", out)
	return nil
}

// showHistory prints the selection log, oldest first
func (c *CLI) showHistory(args []string) error {
	var format string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	history, err := c.service.History()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(history)
	}

	if len(history) == 0 {
		fmt.Println("No selections recorded yet")
		return nil
	}

	for i, id := range history {
		fmt.Printf("%d: template %d\n", i+1, id)
	}
	return nil
}

// parseRenderRequest reads the shared --date/--link/--info/--copy flags.
// The date defaults to the upcoming Sunday when omitted.
func (c *CLI) parseRenderRequest(args []string) (models.RenderRequest, bool, error) {
	req := models.RenderRequest{ScheduledDate: models.NextSunday(time.Now())}
	copyText := false

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--date", "-d":
			if i+1 < len(args) {
				parsed, err := time.Parse("2006-01-02", args[i+1])
				if err != nil {
					return req, false, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", args[i+1])
				}
				req.ScheduledDate = parsed
				i++
			}
		case "--link", "-l":
			if i+1 < len(args) {
				req.Link = args[i+1]
				i++
			}
		case "--info":
			if i+1 < len(args) {
				req.Info = args[i+1]
				i++
			}
		case "--copy", "-c":
			copyText = true
		}
	}

	return req, copyText, nil
}

// readBody reads template text from --body, --file or --stdin
func (c *CLI) readBody(args []string) (string, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--body", "-b":
			if i+1 < len(args) {
				return args[i+1], nil
			}
		case "--file":
			if i+1 < len(args) {
				data, err := os.ReadFile(args[i+1])
				if err != nil {
					return "", fmt.Errorf("failed to read body file: %w", err)
				}
				return string(data), nil
			}
		case "--stdin":
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("failed to read stdin: %w", err)
			}
			return string(data), nil
		}
	}
	return "", nil
}

// copyToClipboard copies text and reports the outcome without failing
// the command
func (c *CLI) copyToClipboard(text string) {
	if statusMsg, err := clipboard.CopyWithFallback(text); err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Printf("Text printed but not copied to clipboard.\n")
	} else {
		fmt.Printf("%s\n", statusMsg)
	}
}

// formatOutput formats templates for output
func (c *CLI) formatOutput(templates []*models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.ID)
		}
	case "table":
		fmt.Printf("%-6s %-60s %s\n", "ID", "Body", "Updated")
		fmt.Println(strings.Repeat("-", 80))
		for _, t := range templates {
			body := firstLine(t.Body)
			if len(body) > 60 {
				body = body[:57] + "..."
			}
			fmt.Printf("%-6d %-60s %s\n", t.ID, body, t.UpdatedAt.Format("2006-01-02"))
		}
	default:
		for _, t := range templates {
			fmt.Printf("%d - %s\n", t.ID, firstLine(t.Body))
		}
	}
	return nil
}

// formatSingleTemplate formats a single template for output
func (c *CLI) formatSingleTemplate(tmpl *models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(tmpl)
	case "raw":
		fmt.Print(tmpl.Body)
	default:
		fmt.Printf("ID: %d\n", tmpl.ID)
		fmt.Printf("File: %s\n", tmpl.Filename())
		fmt.Printf("Updated: %s\n", tmpl.UpdatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("\nBody:\n%s\n", tmpl.Body)
	}
	return nil
}

func (c *CLI) printUsage() error {
	fmt.Println(`announcer - Headless CLI mode

Usage: announcer <command> [options]

Commands:
  list, ls              List all templates
  search <query>        Fuzzy-search template bodies
  get, show <id>        Show a specific template
  create, new           Create a template (--body <text> | --file <path> | --stdin)
  edit <id>             Overwrite a template body
  delete, rm <id>       Delete a template (--force skips confirmation)
  generate              Generate announcement text and record the pick
  render <id>           Render one template without recording a pick
  streams               List upcoming scheduled livestreams
  thumbnail <url>       Download and crop a thumbnail (--out <path>)
  history               Show the selection history
  help                  Show help

Generation options (generate, render):
  --date YYYY-MM-DD     Service date (default: next Sunday)
  --link <url>          Livestream watch link
  --info <text>         Extra service information
  --copy                Copy the result to the clipboard

Output options:
  --format json|ids|table|raw`)
	return nil
}

// parseID converts a command-line id argument
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid template id %q", arg)
	}
	return id, nil
}

// firstLine trims a body down to its first line for listings
func firstLine(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		return body[:i]
	}
	return body
}
