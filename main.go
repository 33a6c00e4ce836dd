package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dnoice/workforce-tracker/internal/export"
	"github.com/dnoice/workforce-tracker/internal/repo"
	"github.com/dnoice/workforce-tracker/internal/report"
	"github.com/dnoice/workforce-tracker/internal/store"
	"github.com/dnoice/workforce-tracker/internal/tui"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "database path (default ~/.config/workforce/workforce.db)")
		importPath = flag.String("import", "", "import a JSON backup and replace all data")
		exportPath = flag.String("export", "", "export all data as JSON and exit")
	)
	flag.Parse()

	setupLogging()

	path := *dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if _, err := s.InitializeIfAbsent(); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing data: %v\n", err)
		os.Exit(1)
	}

	rp := repo.New(s)
	rep := report.New(rp)

	if *importPath != "" {
		if err := runImport(rp, *importPath); err != nil {
			fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("imported %s\n", *importPath)
		return
	}

	if *exportPath != "" {
		if err := runExport(rp, *exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("exported to %s\n", *exportPath)
		return
	}

	app := tui.NewApp(s, rp, rep)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends logrus to a file; the terminal belongs to the TUI.
func setupLogging() {
	logPath, err := store.DefaultLogPath()
	if err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logrus.SetOutput(io.Discard)
		return
	}
	logrus.SetOutput(f)
	logrus.SetLevel(logrus.InfoLevel)
}

func runImport(rp *repo.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := export.ReadDocumentJSON(f)
	if err != nil {
		return err
	}
	return rp.ReplaceDocument(doc)
}

func runExport(rp *repo.Repository, path string) error {
	doc, err := rp.Document()
	if err != nil {
		return err
	}
	return export.DocumentJSONToFile(doc, path)
}
