package compliance

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Habeebu-abbi/fleetwatch/internal/metrics"
	"github.com/Habeebu-abbi/fleetwatch/internal/table"
)

// Config selects the datasets and the clock for a Service.
type Config struct {
	ScheduleQueryID int
	TripQueryID     int

	// Now supplies the current time for the today/yesterday/last-7-days
	// windows. Defaults to time.Now.
	Now func() time.Time
}

// Service builds compliance reports from freshly fetched datasets. It holds
// no state between calls; every BuildReport fetches and recomputes from
// scratch.
type Service struct {
	loader  Loader
	metrics *metrics.Recorder
	log     *log.Logger
	cfg     Config
}

// NewService creates a report service over the given loader.
func NewService(loader Loader, rec *metrics.Recorder, logger *log.Logger, cfg Config) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		loader:  loader,
		metrics: rec,
		log:     logger,
		cfg:     cfg,
	}
}

// BuildReport fetches both datasets concurrently and computes every
// aggregate view. A fetch or normalization failure degrades that dataset to
// an empty table; BuildReport itself never fails.
func (s *Service) BuildReport(ctx context.Context) *Report {
	start := time.Now()

	var rawSchedule, rawTrips map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rawSchedule = s.fetch(gctx, s.cfg.ScheduleQueryID)
		return nil
	})
	g.Go(func() error {
		rawTrips = s.fetch(gctx, s.cfg.TripQueryID)
		return nil
	})
	_ = g.Wait()

	schedule := s.normalize(rawSchedule, ScheduleSchema, s.cfg.ScheduleQueryID)
	trips := s.normalize(rawTrips, TripSchema, s.cfg.TripQueryID)

	now := s.cfg.Now()
	today := Today(now)

	report := &Report{
		GeneratedAt:      now,
		Schedule:         schedule,
		Trips:            trips,
		CustomerVehicles: SumBy(schedule, ColTotalVehicles, ColCustomer),
		HubTrips:         CountBy(trips, ColHub),
		DriverTrips:      CountBy(trips, ColDriver),
		SpocTrips:        CountBy(trips, ColSpoc),
		Weekly:           Pivot(trips, LastSevenDays(today)),
		TodaySummary:     WindowSummary(trips, []table.Date{today}),
		CommonDrivers:    CommonDrivers(schedule, trips, Yesterday(today)),
	}

	s.metrics.ReportBuilt(ctx, time.Since(start).Seconds())
	s.log.Debug("report built",
		"schedule_rows", schedule.Len(),
		"trip_rows", trips.Len(),
		"took", time.Since(start))
	return report
}

func (s *Service) fetch(ctx context.Context, queryID int) map[string]any {
	raw, err := s.loader.FetchTable(ctx, queryID)
	if err != nil {
		s.log.Warn("dataset fetch failed", "query_id", queryID, "err", err)
		s.metrics.DatasetFetched(ctx, queryID, false)
		return nil
	}
	s.metrics.DatasetFetched(ctx, queryID, true)
	return raw
}

func (s *Service) normalize(raw map[string]any, schema table.Schema, queryID int) *table.Table {
	if raw == nil {
		return table.Empty()
	}
	t, err := table.Normalize(raw, schema)
	if err != nil {
		s.log.Warn("dataset rejected", "query_id", queryID, "err", err)
		return table.Empty()
	}
	return t
}
