package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/mongodb"
	"github.com/mamadbah2/packhouse/internal/repository/sheets"
)

type staticSource struct {
	snapshot models.Snapshot
}

func (s staticSource) Snapshot() models.Snapshot { return s.snapshot }

type fakeArchive struct {
	saved []models.DailyReport
	err   error
}

func (f *fakeArchive) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, report)
	return nil
}

type fakeJournal struct {
	existing [][]interface{}
	appended [][]interface{}
	ranges   []string
}

func (f *fakeJournal) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.ranges = append(f.ranges, sheetRange)
	f.appended = append(f.appended, rows...)
	return nil
}

func (f *fakeJournal) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	return f.existing, nil
}

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Production: []models.ProductionRecord{
			{ID: "p3", Date: "2024-03-02", LotNumber: "LOT-3", ProductName: "Dattes", TotalWeightKg: 300, EmployeeCount: 3, WasteKg: 5},
			{ID: "p2", Date: "2024-03-02", LotNumber: "LOT-2", ProductName: "Figues", TotalWeightKg: 100, EmployeeCount: 1},
			{ID: "p1", Date: "2024-03-01", LotNumber: "LOT-1", ProductName: "Dattes", TotalWeightKg: 500, EmployeeCount: 5},
		},
		Purchases: []models.PurchaseRecord{
			{ID: "a1", Date: "2024-03-02", Category: "Emballage", TotalAmount: 40},
			{ID: "a2", Date: "2024-03-01", Category: "Emballage", TotalAmount: 99},
		},
		PrestationsProd:    []models.PrestationProdRecord{{ID: "s1", Date: "2024-03-02", Amount: 10}},
		PrestationsEtuvage: []models.PrestationEtuvageRecord{{ID: "e1", Date: "2024-03-02", Amount: 15}},
	}
}

func newTestService(archive mongodb.Repository, journal sheets.Repository) *Service {
	svc := NewService(staticSource{sampleSnapshot()}, archive, journal, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC) }
	return svc
}

func TestDailyReport(t *testing.T) {
	report := newTestService(nil, nil).DailyReport("2024-03-02")

	if report.Lots != 2 || report.TotalWeightKg != 400 || report.Employees != 4 || report.WasteKg != 5 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.Productivity != 100 {
		t.Fatalf("expected productivity 100, got %v", report.Productivity)
	}
	if report.Trend != models.TrendDown {
		t.Fatalf("expected DOWN against 500kg the day before, got %s", report.Trend)
	}
	if report.PurchasesAmount != 40 || report.PrestationsAmount != 25 {
		t.Fatalf("unexpected amounts: %+v", report)
	}
	if report.WeightByProductKg["Dattes"] != 300 || report.WeightByProductKg["Figues"] != 100 {
		t.Fatalf("unexpected product split: %v", report.WeightByProductKg)
	}
}

func TestDailySummary(t *testing.T) {
	svc := newTestService(nil, nil)

	text := svc.DailySummary("2024-03-02")
	for _, want := range []string{"Rapport du 2024-03-02", "Lots : 2", "400.0 kg (en baisse)", "- Dattes : 300.0 kg", "Prestations : 25.00"} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}

	if got := svc.DailySummary("2024-04-01"); !strings.Contains(got, "aucune production") {
		t.Fatalf("expected empty day message, got %q", got)
	}
}

func TestWeeklySummary(t *testing.T) {
	svc := newTestService(nil, nil)

	text := svc.WeeklySummary(time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC))
	for _, want := range []string{"2024-02-26 au 2024-03-03", "- 2024-03-01 : 500.0 kg", "Total : 900.0 kg sur 3 lots", "Productivité moyenne : 100.0"} {
		if !strings.Contains(text, want) {
			t.Fatalf("weekly summary missing %q:\n%s", want, text)
		}
	}

	empty := svc.WeeklySummary(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(empty, "Aucune production") {
		t.Fatalf("expected empty week message, got %q", empty)
	}
}

func TestArchiveDaily(t *testing.T) {
	ctx := context.Background()

	if _, err := newTestService(nil, nil).ArchiveDaily(ctx, "2024-03-02"); !errors.Is(err, ErrArchiveDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}

	archive := &fakeArchive{}
	report, err := newTestService(archive, nil).ArchiveDaily(ctx, "2024-03-02")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(archive.saved) != 1 || archive.saved[0].Date != "2024-03-02" || report.Lots != 2 {
		t.Fatalf("unexpected archive content: %+v", archive.saved)
	}

	failing := &fakeArchive{err: errors.New("mongo down")}
	if _, err := newTestService(failing, nil).ArchiveDaily(ctx, "2024-03-02"); err == nil {
		t.Fatalf("expected archive error")
	}
}

func TestExportJournal(t *testing.T) {
	ctx := context.Background()

	if _, err := newTestService(nil, nil).ExportJournal(ctx); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}

	journal := &fakeJournal{existing: [][]interface{}{{"ID"}, {"p1"}}}
	n, err := newTestService(nil, journal).ExportJournal(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 2 || len(journal.appended) != 2 {
		t.Fatalf("expected two new rows, got %d", n)
	}
	if journal.appended[0][0] != "p2" || journal.appended[1][0] != "p3" {
		t.Fatalf("expected oldest first, got %v", journal.appended)
	}
	if len(journal.appended[0]) != 10 || journal.ranges[0] != journalRange {
		t.Fatalf("unexpected row shape %v in %v", journal.appended[0], journal.ranges)
	}

	journal.existing = append(journal.existing, []interface{}{"p2"}, []interface{}{"p3"})
	if n, err := newTestService(nil, journal).ExportJournal(ctx); err != nil || n != 0 {
		t.Fatalf("expected nothing to export, got %d, %v", n, err)
	}
}
