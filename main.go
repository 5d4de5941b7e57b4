package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/lmarin/obra/internal/app"
	"github.com/lmarin/obra/internal/config"
	"github.com/lmarin/obra/internal/database"
	"github.com/lmarin/obra/internal/logging"
	"github.com/lmarin/obra/internal/settings"
	"github.com/lmarin/obra/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "obra:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(cfg.DataDir); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx := context.Background()
	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	store, err := settings.NewFileStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		slog.Warn("invalid locale in config, using Spanish", "locale", cfg.Locale)
		locale = language.Spanish
	}

	a, err := app.New(database.NewRepository(db), store, locale)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	p := tea.NewProgram(tui.NewModel(a, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
