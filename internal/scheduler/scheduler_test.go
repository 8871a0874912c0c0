package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/packhouse/internal/config"
	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/service/reporting"
)

type fakeReporter struct {
	archived   []string
	archiveErr error
}

func (f *fakeReporter) ArchiveDaily(_ context.Context, date string) (models.DailyReport, error) {
	if f.archiveErr != nil {
		return models.DailyReport{}, f.archiveErr
	}
	f.archived = append(f.archived, date)
	return models.DailyReport{Date: date}, nil
}

func (f *fakeReporter) DailySummary(date string) string {
	return "summary " + date
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendOutbound(context.Context, models.OutboundMessageRequest) error {
	return nil
}

func (f *fakeNotifier) NotifyManager(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return nil
}

func TestRunDailyUsesConfiguredTimezone(t *testing.T) {
	reporter := &fakeReporter{}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Asia/Tokyo"}, reporter, notifier, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	// 20:00 UTC is already the next day in Tokyo.
	s.now = func() time.Time { return time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC) }

	s.RunDaily(context.Background())

	if len(reporter.archived) != 1 || reporter.archived[0] != "2024-05-02" {
		t.Fatalf("unexpected archived dates: %v", reporter.archived)
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != "summary 2024-05-02" {
		t.Fatalf("unexpected digest: %v", notifier.messages)
	}
}

func TestRunDailyContinuesWithoutArchive(t *testing.T) {
	reporter := &fakeReporter{archiveErr: reporting.ErrArchiveDisabled}
	notifier := &fakeNotifier{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, reporter, notifier, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	s.RunDaily(context.Background())
	if len(notifier.messages) != 1 {
		t.Fatalf("expected digest despite disabled archive")
	}
}

func TestRunDailyWithoutNotifier(t *testing.T) {
	reporter := &fakeReporter{archiveErr: errors.New("mongo down")}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, reporter, nil, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.RunDaily(context.Background())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "not a schedule", Timezone: "UTC"}, &fakeReporter{}, nil, nil)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatalf("expected schedule error")
	}
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	if _, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}, &fakeReporter{}, nil, nil); err == nil {
		t.Fatalf("expected timezone error")
	}
}
