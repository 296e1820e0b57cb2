package main

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/comigor/lifeloop/internal/config"
	"github.com/comigor/lifeloop/internal/logger"
	"github.com/comigor/lifeloop/internal/resolver"
	"github.com/comigor/lifeloop/internal/tui"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.L.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		return 1
	}

	// the terminal UI owns stdout
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.L.Error("failed to open log file", "file", cfg.Log.File, "error", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger.SetOutput(logOut)
	logger.SetLevel(cfg.Log.Level)

	res := resolver.New(cfg.Catalog())
	model := tui.New(res, cfg.Console.Session(), tui.Options{
		SystemRate: cfg.Reveal.SystemRate,
		OutputRate: cfg.Reveal.OutputRate,
	})
	defer model.Close()

	logger.L.Info("starting console", "scenarios", res.Catalog().Len())
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		logger.L.Error("console exited with error", "error", err)
		return 1
	}
	if m, ok := final.(tui.Model); ok {
		logger.L.Info("console closed", "completed", m.Completed())
	}
	return 0
}
