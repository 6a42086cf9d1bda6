package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parishav/announcer/internal/api"
	"github.com/parishav/announcer/internal/cli"
	"github.com/parishav/announcer/internal/config"
	"github.com/parishav/announcer/internal/errors"
	"github.com/parishav/announcer/internal/service"
	"github.com/parishav/announcer/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`announcer - Livestream announcement console

USAGE:
    announcer [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new template library
    --api-server    Start the HTTP API server
    --port          Port for the API server (default: from config, 8080)

COMMANDS:
    (no command)       Start interactive TUI mode
    list, ls           List all templates
    search <query>     Fuzzy-search template bodies
    get, show <id>     Show a specific template
    create, new        Create a template
    edit <id>          Overwrite a template body
    delete, rm <id>    Delete a template
    generate           Generate announcement text and record the pick
    render <id>        Render one template without recording a pick
    streams            List upcoming scheduled livestreams
    thumbnail <url>    Download and crop a thumbnail
    history            Show the selection history
    help               Show CLI command help

EXAMPLES:
    announcer                                        # Start interactive mode
    announcer --init                                 # Initialize new library
    announcer --api-server --port 9000               # Start API on port 9000
    announcer list --format table                    # List templates
    announcer create --body "Join us on INSERTDATE"  # Create a template
    announcer generate --date 2024-11-17 --copy      # Generate and copy
    announcer streams --format json                  # Upcoming streams as JSON

STORAGE:
    Default directory: ~/.announcer
    Override with: ANNOUNCER_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool
	var apiServer bool
	var port int

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new template library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&apiServer, "api-server", false, "Start the HTTP API server")
	flag.IntVar(&port, "port", 0, "Port for the API server")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("announcer version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			return
		}
		fmt.Println("Initialized announcement library at", cfg.LibraryDir)
		return
	}

	if apiServer {
		if port == 0 {
			port = cfg.Port
		}
		srv := api.NewAPIServer(svc, port)
		if err := srv.Start(); err != nil {
			fmt.Printf("Error starting API server: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Command line arguments mean CLI mode
	args := flag.Args()
	if len(args) > 0 {
		handler := errors.NewCLIErrorHandler(false)
		cliHandler := cli.NewCLI(svc)
		if err := cliHandler.ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, handler.HandleError(err))
			os.Exit(1)
		}
		return
	}

	// No arguments provided - start TUI mode
	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Println(err)
		return
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
