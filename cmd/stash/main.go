package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stashd/stash/internal/checker"
	"github.com/stashd/stash/internal/exporter"
	"github.com/stashd/stash/internal/importer"
	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/picker"
	"github.com/stashd/stash/internal/query"
	"github.com/stashd/stash/internal/repo"
	"github.com/stashd/stash/internal/search"
	"github.com/stashd/stash/internal/storage"
	"github.com/stashd/stash/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: stash import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: stash export <folder> [path]\n")
				os.Exit(1)
			}
			var outputPath string
			if len(os.Args) >= 4 {
				outputPath = os.Args[3]
			}
			runExport(os.Args[2], outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `stash - local-first bookmark manager

Usage:
  stash                     Open interactive TUI
  stash <query>             Quick search → select → open
  stash import <file>       Import bookmarks from HTML
  stash export <folder>     Export a folder to HTML
  stash check               Check bookmark URLs for link rot
  stash help                Show this help

TUI Keybindings:
  Navigation:
    j/k         Move down/up
    tab         Cycle folder filter
    t           Cycle tag filter

  Actions:
    o/Enter     Open bookmark in browser
    a           Add bookmark
    F           Add folder
    e           Edit selected bookmark
    d           Delete (u to undo)
    x           Archive/unarchive (u to undo)
    X           Archive first visible result
    u           Undo last delete or archive
    p           Paste URL from clipboard

  View:
    /           Search title, url, tags and folder
    ctrl+k      Quick-open palette
    s           Toggle newest/oldest sort
    v           Toggle archived view
    q           Quit

Data Storage:
  ~/.config/stash/
`
	fmt.Print(help)
}

// openRepository loads the repository from the preferred backend.
func openRepository() *repo.Repository {
	store, err := storage.OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	repository, err := repo.NewRepository(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; changes will be kept in memory only\n", err)
	}
	return repository
}

// loadConfig loads the app config, falling back to defaults.
func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		config := storage.DefaultConfig()
		return &config
	}
	config, err := storage.LoadConfig(path)
	if err != nil {
		defaults := storage.DefaultConfig()
		return &defaults
	}
	return config
}

// runTUI runs the full interactive TUI.
func runTUI() {
	repository := openRepository()
	config := loadConfig()

	view := query.View{Sort: query.Order(config.SortOrder)}
	app := tui.NewApp(tui.AppParams{
		Repo:    repository,
		View:    &view,
		OpenURL: openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(queryStr string) {
	repository := openRepository()

	results := search.FuzzySearchBookmarks(repository.Bookmarks(), queryStr)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", queryStr)
		os.Exit(0)
	}

	var selected *model.Bookmark

	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		// Multiple results - show picker
		p := picker.New(results, queryStr)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		os.Exit(0)
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	repository := openRepository()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	folders, bookmarks, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped, err := repository.ImportMerge(folders, bookmarks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	fmt.Printf("Imported %d bookmarks, %d folders", added, len(folders))
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(folder, outputPath string) {
	repository := openRepository()

	doc, err := exporter.ExportFolder(repository.Bookmarks(), folder)
	if err == exporter.ErrNothingToExport {
		fmt.Printf("Nothing to export in folder %q\n", folder)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath(folder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, []byte(doc), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported folder %q to %s\n", folder, outputPath)
}

// runCheck handles the check subcommand.
func runCheck() {
	repository := openRepository()
	bookmarks := repository.Bookmarks()
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	fmt.Printf("Checking %d bookmarks...\n", len(bookmarks))
	report := checker.Check(bookmarks, checker.Options{
		OnProgress: func(completed, total int) {
			fmt.Printf("\r%d/%d", completed, total)
		},
	})
	fmt.Println()

	for _, r := range report.Problems() {
		switch r.Status {
		case checker.Dead:
			fmt.Printf("DEAD        %s (%d)\n", r.Bookmark.URL, r.StatusCode)
		case checker.Unreachable:
			fmt.Printf("UNREACHABLE %s (%s)\n", r.Bookmark.URL, r.Detail)
		}
	}
	fmt.Printf("%d healthy, %d problems\n", report.Count(checker.Healthy), len(report.Problems()))
}
