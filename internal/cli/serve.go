package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Habeebu-abbi/fleetwatch/internal/auth"
	"github.com/Habeebu-abbi/fleetwatch/internal/compliance"
	"github.com/Habeebu-abbi/fleetwatch/internal/config"
	"github.com/Habeebu-abbi/fleetwatch/internal/metabase"
	"github.com/Habeebu-abbi/fleetwatch/internal/metrics"
	"github.com/Habeebu-abbi/fleetwatch/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web dashboard",
	Long: `Start the compliance dashboard server.

Examples:
  fleetwatch serve              # Listen on the configured PORT (default 8080)
  fleetwatch serve --port 3000  # Override the port`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fleetwatch",
	})

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		cancel()
	}()

	rec := metrics.Noop()
	if cfg.OTLPEndpoint != "" {
		rec, err = metrics.New(ctx, metrics.Config{
			Endpoint: cfg.OTLPEndpoint,
			Insecure: cfg.OTLPInsecure,
		})
		if err != nil {
			logger.Warn("metrics exporter disabled", "err", err)
			rec = metrics.Noop()
		}
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := rec.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown failed", "err", err)
		}
	}()

	loader := metabase.NewClient(cfg.Metabase.URL, cfg.Metabase.Username, cfg.Metabase.Password)
	service := compliance.NewService(loader, rec, logger, compliance.Config{
		ScheduleQueryID: cfg.Queries.ScheduleQueryID,
		TripQueryID:     cfg.Queries.TripQueryID,
	})

	authenticator := auth.New(auth.Config{
		ClientID:      cfg.Google.ClientID,
		ClientSecret:  cfg.Google.ClientSecret,
		RedirectURL:   cfg.Google.RedirectURL,
		AllowedEmails: cfg.AllowedEmails,
		SessionTTL:    cfg.SessionTTL,
	}, logger)

	server := web.NewServer(cfg.Port, service, authenticator, logger)
	return server.Start(ctx)
}
