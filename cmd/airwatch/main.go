// Package main is the entry point for the airwatch dashboard.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/airwatch/cmd/airwatch/app"
	"github.com/jask/airwatch/internal/config"
)

// getLogLevel reads AIRWATCH_LOG_LEVEL for the bootstrap logger. The
// --log-level flag and config file apply once a command loads its config.
func getLogLevel() slog.Level {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	level, err := config.ParseLevel(v.GetString("log.level"))
	if err != nil {
		slog.Warn("Invalid log level, using INFO", "error", err)
		return slog.LevelInfo
	}
	return level
}

func main() {
	// stderr keeps stdout clean for table and JSON output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: getLogLevel()}))
	slog.SetDefault(logger)

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
