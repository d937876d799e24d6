package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"runlog/internal/config"
	"runlog/internal/service"
	"runlog/internal/store"
	"runlog/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nCreated a config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Edit it to set your activity type filter and week start day,")
		fmt.Println("then run runlog again.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	// Create services
	importSvc := service.NewImportService(db, cfg)
	querySvc := service.NewQueryService(db, cfg)

	// Batch mode: runlog import FILE...
	if len(os.Args) > 1 && os.Args[1] == "import" {
		return runImport(importSvc, os.Args[2:])
	}

	// Launch TUI
	app := tui.NewApp(importSvc, querySvc, cfg.Display)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runImport(importSvc *service.ImportService, paths []string) error {
	if len(paths) == 0 {
		return errors.New("usage: runlog import FILE...")
	}

	result, err := importSvc.ImportAll(context.Background(), paths, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d activities from %d file(s)\n", result.Imported, result.FilesProcessed)
	for _, e := range result.Errors {
		fmt.Printf("  warning: %v\n", e)
	}
	if len(result.Errors) > 0 && result.Imported == 0 {
		return errors.New("no activities imported")
	}
	return nil
}
