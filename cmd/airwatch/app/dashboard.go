package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
	"github.com/jask/airwatch/internal/config"
	"github.com/jask/airwatch/internal/httpserver"
	"github.com/jask/airwatch/internal/telemetry"
	"github.com/jask/airwatch/internal/tui"
)

func runDashboard(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	// The terminal belongs to the dashboard, so logs go to a file.
	logger, closeLog, err := fileLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	places, err := atlas.Load(cfg.UI.AtlasPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.New(reg)

	client, err := newClient(cfg, telemetryOptions(metrics, logger)...)
	if err != nil {
		return err
	}

	serverDone := make(chan error, 1)
	if cfg.Metrics.Addr != "" {
		srv := httpserver.New(cfg.Metrics.Addr, telemetry.NewRouter(reg, logger))
		go func() { serverDone <- httpserver.Run(ctx, srv, logger) }()
	} else {
		close(serverDone)
	}

	logger.Info("dashboard starting",
		"api", client.BaseURL(),
		"interval", cfg.Poll.Interval,
		"initial_sector", cfg.UI.InitialSector,
		"version", Version)

	app := tui.New(ctx, cfg, tui.Deps{
		Client:   client,
		Atlas:    places,
		Recorder: metrics,
		Logger:   logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, runErr := p.Run()
	stop()

	if err := <-serverDone; err != nil {
		logger.Error("metrics server failed", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("dashboard: %w", runErr)
	}
	logger.Info("dashboard stopped")
	return nil
}

func fileLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func telemetryOptions(m *telemetry.Metrics, logger *slog.Logger) []airquality.Option {
	return []airquality.Option{airquality.WithObserver(m), airquality.WithLogger(logger)}
}
