package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/config"
	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/service/notifier"
	"github.com/mamadbah2/packhouse/internal/service/reporting"
)

const (
	dateLayout = "2006-01-02"
	jobTimeout = 2 * time.Minute
)

// Reporter is the part of the reporting service the nightly job needs.
type Reporter interface {
	ArchiveDaily(ctx context.Context, date string) (models.DailyReport, error)
	DailySummary(date string) string
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	loc      *time.Location
	reporter Reporter
	notifier notifier.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in
// which case the nightly job only archives the report.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier notifier.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: cfg.CronSchedule,
		loc:      loc,
		reporter: reporter,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the nightly report and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.loc.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	s.RunDaily(ctx)
}

// RunDaily archives today's report and sends the digest to the manager.
func (s *Scheduler) RunDaily(ctx context.Context) {
	date := s.now().In(s.loc).Format(dateLayout)
	s.logger.Info("generating daily report", zap.String("date", date))

	if _, err := s.reporter.ArchiveDaily(ctx, date); err != nil {
		if errors.Is(err, reporting.ErrArchiveDisabled) {
			s.logger.Debug("report archive disabled, skipping")
		} else {
			s.logger.Error("failed to archive daily report", zap.Error(err))
		}
	}

	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyManager(ctx, s.reporter.DailySummary(date)); err != nil {
		s.logger.Error("failed to send daily report", zap.Error(err))
		return
	}
	s.logger.Info("daily report sent successfully")
}
