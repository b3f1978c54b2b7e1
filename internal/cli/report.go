package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Habeebu-abbi/fleetwatch/internal/compliance"
	"github.com/Habeebu-abbi/fleetwatch/internal/config"
	"github.com/Habeebu-abbi/fleetwatch/internal/metabase"
	"github.com/Habeebu-abbi/fleetwatch/internal/metrics"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the compliance report to stdout",
	Long: `Fetch both datasets and print every compliance view as plain text.
Useful from cron or for a quick look without starting the server.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadReport()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "fleetwatch"})

	loader := metabase.NewClient(cfg.Metabase.URL, cfg.Metabase.Username, cfg.Metabase.Password)
	service := compliance.NewService(loader, metrics.Noop(), logger, compliance.Config{
		ScheduleQueryID: cfg.Queries.ScheduleQueryID,
		TripQueryID:     cfg.Queries.TripQueryID,
	})

	report := service.BuildReport(context.Background())
	printReport(report)
	return nil
}

func printReport(report *compliance.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	printGroups(w, "Customer-wise vehicles without the app (today)", report.CustomerVehicles, "Customer", "Total Vehicles")
	printGroups(w, "Trips per hub", report.HubTrips, "Hub", "Trip Count")
	printGroups(w, "Trips per driver", report.DriverTrips, "Driver", "Total Trips")
	printGroups(w, "Trips per SPOC", report.SpocTrips, "Spoc", "Total Trips")

	fmt.Fprintln(w, "\n== Drivers not deployed yesterday and today ==")
	if len(report.CommonDrivers) == 0 {
		fmt.Fprintln(w, "(none)")
	}
	for _, driver := range report.CommonDrivers {
		fmt.Fprintln(w, driver)
	}

	fmt.Fprintln(w, "\n== Last 7 days ==")
	header := []string{"Customer", "Driver", "Spoc"}
	for _, d := range report.Weekly.Dates {
		header = append(header, d.String())
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range report.Weekly.Rows {
		cells := []string{row.Customer, row.Driver, row.Spoc}
		for _, n := range row.Counts {
			cells = append(cells, strconv.Itoa(n))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	fmt.Fprintln(w, "\n== Today ==")
	fmt.Fprintln(w, "Customer\tDriver\tSpoc\tCount")
	for _, row := range report.TodaySummary {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", row.Customer, row.Driver, row.Spoc, row.Count)
	}

	_ = w.Flush()
}

func printGroups(w *tabwriter.Writer, title string, groups []compliance.GroupRow, keyHeader, valueHeader string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	fmt.Fprintf(w, "%s\t%s\n", keyHeader, valueHeader)
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(g.Key, " / "), strconv.FormatFloat(g.Value, 'f', -1, 64))
	}
}
