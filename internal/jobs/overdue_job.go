package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portsrepo "github.com/vidly/vidly_backend/internal/core/ports/repositories"
	"github.com/vidly/vidly_backend/internal/middleware"
)

// OverdueScanner periodically walks the open rentals and logs the ones that
// have been out longer than the configured window. It never mutates the
// ledger: late fees are still settled at return time, the scan only surfaces
// rentals a human should chase.
type OverdueScanner struct {
	rentalRepo   portsrepo.RentalReader
	overdueAfter time.Duration
	logger       *slog.Logger
	cron         *cron.Cron
}

// NewOverdueScanner creates an OverdueScanner.
func NewOverdueScanner(rentalRepo portsrepo.RentalReader, overdueAfter time.Duration, logger *slog.Logger) *OverdueScanner {
	return &OverdueScanner{
		rentalRepo:   rentalRepo,
		overdueAfter: overdueAfter,
		logger:       logger.With(slog.String("job", "overdue_scan")),
	}
}

// Start registers the scan on the given cron schedule and starts the
// scheduler. It returns an error for an invalid schedule expression.
func (s *OverdueScanner) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		s.Scan(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the scheduler and waits for a running scan to finish.
func (s *OverdueScanner) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Scan runs one pass over the open rentals.
func (s *OverdueScanner) Scan(ctx context.Context) {
	ctx = middleware.WithLogger(ctx, s.logger)
	cutoff := time.Now().UTC().Add(-s.overdueAfter)

	rentals, err := s.rentalRepo.ListActiveRentalsOutSince(ctx, cutoff)
	if err != nil {
		s.logger.Error("Overdue scan failed", slog.String("error", err.Error()))
		return
	}

	for i := range rentals {
		r := &rentals[i]
		s.logger.Warn("Rental overdue",
			slog.String("rental_id", r.RentalID),
			slog.String("customer_id", r.Customer.CustomerID),
			slog.String("customer_phone", r.Customer.Phone),
			slog.String("movie_title", r.Movie.Title),
			slog.Time("date_out", r.DateOut),
			slog.Int("days_out", r.RentalDays(time.Now().UTC())))
	}

	s.logger.Info("Overdue scan completed", slog.Int("overdue_count", len(rentals)))
}
