package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"duit/internal/config"
	"duit/internal/ledger"
	"duit/internal/log"
	"duit/internal/store"
	"duit/internal/tui"
)

func main() {
	// Optional .env next to the binary; missing file is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	handler, closer, err := log.NewFileHandler(cfg.LogFile, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Handler:   handler,
	})
	log.SetDefault(logger)

	logger.Info("Starting duit",
		log.FieldOperation, log.OpStartup,
		"data_dir", cfg.DataDir,
		"history_dir", cfg.HistoryDir)

	st := store.New(cfg.DataDir, cfg.HistoryDir)
	l, err := ledger.New(st, ledger.Options{
		ArchiveCacheSize: cfg.ArchiveCacheSize,
		ArchiveCacheTTL:  cfg.ArchiveCacheTTL,
		Logger:           logger.WithComponent(log.ComponentLedger),
	})
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err)
		fmt.Fprintln(os.Stderr, "duit:", err)
		os.Exit(1)
	}

	app := tui.New(l, cfg.Currency, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("TUI error", log.FieldError, err)
		fmt.Fprintln(os.Stderr, "duit:", err)
		os.Exit(1)
	}

	logger.Info("Stopped", log.FieldOperation, log.OpShutdown)
}
