package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"examfinder/internal/config"
	"examfinder/internal/dataset"
	"examfinder/internal/eventbus"
	"examfinder/internal/location"
	"examfinder/internal/logging"
	"examfinder/internal/session"
	"examfinder/internal/ui"
)

func main() {
	// Parse command line arguments
	var (
		dataSource string
		configPath string
		link       string
		logLevel   string
		refresh    time.Duration
	)
	flag.StringVar(&dataSource, "data", "", "Exam dataset: JSON file, http(s) URL or SQLite database")
	flag.StringVar(&dataSource, "d", "", "Exam dataset (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to config.toml")
	flag.StringVar(&link, "link", "", "Deep link to open, e.g. \"?class=B240402\"")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.DurationVar(&refresh, "refresh", -1, "Reload the dataset at this interval (0 disables)")
	flag.Parse()

	// A bare argument is a deep link
	if link == "" && flag.NArg() > 0 {
		link = flag.Arg(0)
	}

	configSvc := config.NewConfigService()
	if configPath != "" {
		configSvc = config.NewConfigServiceWithPath(configPath)
	}
	cfg := loadOrCreateConfig(configSvc)

	// Flags override the config file
	if dataSource != "" {
		cfg.DataSource = dataSource
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if refresh >= 0 {
		cfg.RefreshInterval = refresh
	}

	// The UI owns the terminal, so logs go to a file
	logger, logCloser, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer logCloser.Close()
	}

	start, err := location.Parse(link, cfg.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	provider, err := dataset.NewProvider(cfg.DataSource)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(logger.With().Str("component", "eventbus").Logger())
	defer bus.Close()

	loader := dataset.NewLoader(provider, bus, logger.With().Str("component", "dataset").Logger())
	defer loader.Close()

	sess := session.New(location.NewMemory(start), cfg.Reminders,
		session.WithBus(bus),
		session.WithLogger(logger.With().Str("component", "session").Logger()))

	model := ui.NewModel(sess, bus, cfg,
		ui.WithConfigService(configSvc),
		ui.WithLogger(logger.With().Str("component", "ui").Logger()),
		ui.WithReadyMarker(os.Getenv("EXAMFINDER_E2E_TEST") == "1"))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Dataset events are serialized with key presses through the program
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventDatasetLoading, forward)
	bus.Subscribe(eventbus.EventDatasetLoaded, forward)
	bus.Subscribe(eventbus.EventDatasetFailed, forward)

	subscribeAuditLog(bus, logger.With().Str("component", "audit").Logger())

	go func() {
		if err := loader.Load(ctx); err != nil {
			logger.Warn().Err(err).Msg("initial load failed")
		}
		loader.Watch(ctx, cfg.RefreshInterval)
	}()

	logger.Info().Str("source", provider.Source()).Str("link", sess.Link()).Msg("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("error running program")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	cancel()
	logger.Info().Msg("UI exited normally")

	// The shareable link is the program's output
	fmt.Println(model.Link())
}

// loadOrCreateConfig loads the config file, writing the defaults when there is none
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	if _, err := os.Stat(configSvc.Path()); err == nil {
		cfg, err := configSvc.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not read %s, using defaults: %v\n", configSvc.Path(), err)
			return config.DefaultConfig()
		}
		return cfg
	}

	cfg, err := configSvc.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := configSvc.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Could not write default config: %v\n", err)
	}
	return cfg
}

// subscribeAuditLog records what the session did, one line per event
func subscribeAuditLog(bus eventbus.EventBus, logger zerolog.Logger) {
	bus.Subscribe(eventbus.EventClassSynced, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ClassSyncedEvent); ok {
			logger.Debug().Str("class", event.Class).Msg("class synced")
		}
	})
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			logger.Debug().
				Strs("added", event.Added).
				Strs("removed", event.Removed).
				Int("total", event.Total).
				Bool("reset", event.Reset).
				Msg("selection changed")
		}
	})
	bus.Subscribe(eventbus.EventLocationReplaced, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LocationReplacedEvent); ok {
			logger.Debug().Str("url", event.URL).Msg("location replaced")
		}
	})
	bus.Subscribe(eventbus.EventRemindersChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RemindersChangedEvent); ok {
			logger.Info().Ints("offsets", event.Offsets).Msg("reminders changed")
		}
	})
}
