// Command import-templates moves a folder of loose .txt announcement
// files into the template library, assigning sequential ids. Files
// already named as numbers keep their number when it is free.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/parishav/announcer/internal/config"
	"github.com/parishav/announcer/internal/models"
	"github.com/parishav/announcer/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: import-templates <folder>")
		fmt.Println("Imports every .txt file in the folder into the template library.")
		return
	}
	src := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		fmt.Printf("Error initializing service: %v\n", err)
		return
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", src, err)
		return
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		fmt.Printf("No .txt files found in %s - nothing to import\n", src)
		return
	}

	existing, err := svc.ListTemplates()
	if err != nil {
		fmt.Printf("Error listing templates: %v\n", err)
		return
	}
	taken := make(map[int]bool, len(existing))
	for _, t := range existing {
		taken[t.ID] = true
	}

	fmt.Printf("Found %d files to import into %s:\n", len(files), cfg.LibraryDir)
	for _, name := range files {
		fmt.Printf("  - %s\n", name)
	}

	fmt.Print("\nProceed with import? (y/N): ")
	var response string
	fmt.Scanln(&response)

	if strings.ToLower(response) != "y" {
		fmt.Println("Import cancelled")
		return
	}

	imported := 0
	for _, name := range files {
		body, err := os.ReadFile(filepath.Join(src, name))
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", name, err)
			continue
		}

		id := numericName(name)
		if id > 0 && !taken[id] {
			// The file already carries a free number, keep it
			err = svc.Storage().SaveTemplate(&models.Template{ID: id, Body: string(body)})
		} else {
			var tmpl *models.Template
			tmpl, err = svc.CreateTemplate(string(body))
			if tmpl != nil {
				id = tmpl.ID
			}
		}
		if err != nil {
			fmt.Printf("Error importing %s: %v\n", name, err)
			continue
		}

		taken[id] = true
		fmt.Printf("Imported %s as template %d\n", name, id)
		imported++
	}

	fmt.Printf("Import completed! Added %d templates\n", imported)
}

// numericName returns the number a file like "7.txt" is named after,
// or 0 when the name is not numeric
func numericName(name string) int {
	base := strings.TrimSuffix(name, ".txt")
	id, err := strconv.Atoi(base)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
