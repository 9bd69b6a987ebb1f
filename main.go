package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"dirgrip/internal/complete"
	"dirgrip/internal/config"
	"dirgrip/internal/eventbus"
	"dirgrip/internal/fsx"
	"dirgrip/internal/navigator"
	"dirgrip/internal/storage"
	"dirgrip/internal/ui"
)

func main() {
	// Parse command line arguments
	var targetDir string
	flag.StringVar(&targetDir, "dir", "", "Directory to start in")
	flag.StringVar(&targetDir, "d", "", "Directory to start in (shorthand)")
	flag.Parse()

	// If no directory specified, check for remaining args
	if targetDir == "" && flag.NArg() > 0 {
		targetDir = flag.Arg(0)
	}

	dataDir, err := storage.DataDir()
	if err != nil {
		fmt.Printf("Error resolving data directory: %v\n", err)
		os.Exit(1)
	}

	// Set up logging. The log lives in the data dir because this program
	// changes its own working directory all the time.
	if err := os.MkdirAll(dataDir, 0o755); err == nil {
		logFile, err := os.OpenFile(filepath.Join(dataDir, "dirgrip.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Printf("Could not open log file: %v", err)
		} else {
			defer logFile.Close()
			log.SetOutput(logFile)
		}
	}

	// Set up context with cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create event bus
	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// All config mutation and saving goes through the saver: the history
	// write-back runs on the bus dispatcher goroutine, startup settings
	// change from the UI goroutine
	saver := config.NewSaver(configSvc, cfg)

	// Open the visit log
	db, err := storage.OpenDB(dataDir)
	if err != nil {
		fmt.Printf("Error opening visit database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	visitLog := storage.NewVisitLog(db)

	// Build the navigator around the real filesystem
	fs := fsx.NewOS()
	nav := navigator.New(fs, bus, navigator.Options{
		MaxHistory: cfg.History.MaxEntries,
		Startup: navigator.StartupConfig{
			UseFixedDirectory: cfg.Startup.UseFixedDirectory,
			FixedDirectory:    cfg.Startup.FixedDirectory,
			OnFixedDirectoryLost: func() {
				// Restore the default startup options when the fixed
				// directory no longer exists
				err := saver.Update(func(c *config.Config) {
					c.Startup.UseHomeDirectory = true
					c.Startup.UseFixedDirectory = false
				})
				if err != nil {
					log.Printf("Failed to save config: %v", err)
				}
			},
		},
	})

	// Record local directory changes in the visit log
	bus.Subscribe(eventbus.EventDirectoryChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.DirectoryChangedEvent); ok && event.ServerID == "" {
			if err := visitLog.Add(event.Path); err != nil {
				log.Printf("Failed to record visit: %v", err)
			}
		}
	})

	// Write history back to the config whenever it changes
	bus.Subscribe(eventbus.EventHistoryChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.HistoryChangedEvent); ok {
			err := saver.Update(func(c *config.Config) {
				c.History.Entries = event.Entries
			})
			if err != nil {
				log.Printf("Failed to save config: %v", err)
			}
		}
	})

	// Pick up history edited in the config file while running; the watcher
	// publishes HistoryConfigChanged and the UI applies it to the navigator
	watcher := config.NewWatcher(bus, configSvc, configSvc.Path(), cfg.History.Entries)
	if err := watcher.Start(ctx); err != nil {
		log.Printf("Config watcher disabled: %v", err)
	}

	// Create UI model
	uiModel := ui.NewModel(bus, cfg, nav, complete.New(fs), visitLog)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventDirectoryChanged, forward)
	bus.Subscribe(eventbus.EventHistoryChanged, forward)
	bus.Subscribe(eventbus.EventGoToFile, forward)
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventHistoryConfigChanged, forward)

	// Start forwarding events to UI in background
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Seed history from config, then establish the initial directory
	if err := nav.SeedHistory(cfg.History.Entries, targetDir); err != nil {
		log.Printf("Error committing initial directory: %v", err)
	}
	if targetDir == "" {
		if err := nav.Commit(nav.StartupDirectory()); err != nil {
			log.Printf("Error entering startup directory: %v", err)
		}
	}

	// Run the UI
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// Cleanup
	close(eventChan)
}
