package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/jask/airwatch/internal/airquality"
)

// maxDetailFetches bounds concurrent per-sector requests for --detail.
const maxDetailFetches = 4

type sectorDetail struct {
	Status airquality.SectorStatus
	Policy airquality.Policy
}

func newSectorsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sectors",
		Short: "Print the current sector list",
		Long: `Print one row per sector from the air-quality service. With --detail the
status and policy of every sector are fetched as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			detail, err := cmd.Flags().GetBool("detail")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			client, err := newClient(cfg, airquality.WithLogger(slog.Default()))
			if err != nil {
				return err
			}
			return listSectors(cmd.Context(), cmd.OutOrStdout(), client, detail)
		},
	}
	cmd.Flags().Bool("detail", false, "Also fetch status and policy for every sector")
	return cmd
}

func listSectors(ctx context.Context, w io.Writer, client airquality.Client, detail bool) error {
	sectors, err := client.Sectors(ctx)
	if err != nil {
		return err
	}
	if !detail {
		return renderSectorTable(w, sectors, nil)
	}
	details, err := fetchDetails(ctx, client, sectors)
	if err != nil {
		return err
	}
	return renderSectorTable(w, sectors, details)
}

// fetchDetails loads status and policy for every sector. The first failure
// cancels the rest.
func fetchDetails(ctx context.Context, client airquality.Client, sectors []airquality.Sector) ([]sectorDetail, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxDetailFetches)

	details := make([]sectorDetail, len(sectors))
	for i, s := range sectors {
		g.Go(func() error {
			status, err := client.Status(ctx, s.ID)
			if err != nil {
				return fmt.Errorf("sector %d: %w", s.ID, err)
			}
			policy, err := client.Policy(ctx, s.ID)
			if err != nil {
				return fmt.Errorf("sector %d: %w", s.ID, err)
			}
			details[i] = sectorDetail{Status: status, Policy: policy}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func renderSectorTable(w io.Writer, sectors []airquality.Sector, details []sectorDetail) error {
	headers := []any{"ID", "Sector", "PM2.5", "PM10", "Traffic", "Wind", "Level"}
	if details != nil {
		headers = append(headers, "Severity", "Cause", "Policy", "Priority")
	}

	rows := make([][]string, 0, len(sectors))
	for i, s := range sectors {
		row := []string{
			strconv.Itoa(s.ID),
			s.Name,
			fmt.Sprintf("%.1f", s.PM25),
			fmt.Sprintf("%.1f", s.PM10),
			airquality.TrafficBand(s.TrafficIndex),
			fmt.Sprintf("%.1f m/s", s.WindSpeed),
			airquality.LevelFor(s.PM25).String(),
		}
		if details != nil {
			d := details[i]
			policy, priority := "none", "-"
			if d.Policy.Actionable() {
				policy = d.Policy.Policy.Name
				priority = string(d.Policy.Policy.Priority)
			}
			row = append(row, d.Status.Severity.Label(), d.Status.PollutionCause, policy, priority)
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render sectors: %w", err)
	}
	return table.Render()
}
