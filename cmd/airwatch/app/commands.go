// Package app provides the cobra commands of the airwatch CLI.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/config"
)

// Set at build time with -ldflags "-X github.com/jask/airwatch/cmd/airwatch/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// NewRootCmd creates the airwatch command tree. Running it without a
// subcommand opens the dashboard.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:               "airwatch",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Terminal dashboard for urban air-quality policy",
		Long: `airwatch polls an air-quality service for per-sector readings, shows
trends and policy recommendations, and simulates the effect of a policy.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a TOML config file")
	flags.String("api-url", "", "Base URL of the air-quality service")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Duration("interval", 0, "Background refresh interval")
	rootCmd.Flags().String("metrics-addr", "", "Serve prometheus metrics on this address")

	bind(v, "config", flags.Lookup("config"))
	bind(v, "api.base_url", flags.Lookup("api-url"))
	bind(v, "log.level", flags.Lookup("log-level"))
	bind(v, "poll.interval", flags.Lookup("interval"))
	bind(v, "metrics.addr", rootCmd.Flags().Lookup("metrics-addr"))

	rootCmd.AddCommand(newSectorsCmd(v))
	rootCmd.AddCommand(newFakeAPICmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// bind ties a flag to a config key. Unset flags leave the config file and
// environment in charge.
func bind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		slog.Error("Error binding flag", "key", key, "error", err)
	}
}

// loadConfig reads configuration through v, which carries the bound flags.
func loadConfig(v *viper.Viper) (config.Config, error) {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newClient(cfg config.Config, opts ...airquality.Option) (*airquality.HTTPClient, error) {
	opts = append([]airquality.Option{airquality.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst)}, opts...)
	return airquality.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, opts...)
}

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versionInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == "json" {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("format version info: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			_, err = fmt.Fprintf(out, "airwatch %s (commit %s, built %s, %s %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String("format", "", "Output format (json)")
	return cmd
}
