package reporting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/repository/mongodb"
	"github.com/mamadbah2/packhouse/internal/repository/sheets"
	"github.com/mamadbah2/packhouse/internal/service/aggregation"
)

const (
	dateLayout   = "2006-01-02"
	journalRange = "Production!A:J"
	journalIDs   = "Production!A:A"
)

var (
	// ErrArchiveDisabled is returned when no report archive is configured.
	ErrArchiveDisabled = errors.New("report archive is not configured")
	// ErrJournalDisabled is returned when no spreadsheet is configured.
	ErrJournalDisabled = errors.New("journal export is not configured")
)

// RecordSource exposes the data reports are computed from.
type RecordSource interface {
	Snapshot() models.Snapshot
}

// Service builds text summaries and archives daily figures.
type Service struct {
	source  RecordSource
	archive mongodb.Repository
	journal sheets.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a new reporting service instance. archive and journal may
// be nil, which disables the matching operation.
func NewService(source RecordSource, archive mongodb.Repository, journal sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, archive: archive, journal: journal, logger: logger, now: time.Now}
}

// DailyReport computes the archived figures of date.
func (s *Service) DailyReport(date string) models.DailyReport {
	snapshot := s.source.Snapshot()
	return buildDailyReport(snapshot, date, s.now())
}

func buildDailyReport(snapshot models.Snapshot, date string, createdAt time.Time) models.DailyReport {
	metrics := aggregation.Dashboard(snapshot.Production, date)
	ledgers := aggregation.Ledgers(snapshot, aggregation.Period{From: date, To: date})

	return models.DailyReport{
		Date:              date,
		Lots:              metrics.Count,
		TotalWeightKg:     metrics.WeightKg,
		Employees:         metrics.Employees,
		WasteKg:           metrics.WasteKg,
		Productivity:      metrics.Productivity,
		Trend:             metrics.Trend,
		PurchasesAmount:   ledgers.PurchasesAmount,
		PrestationsAmount: ledgers.PrestationProdAmount + ledgers.PrestationEtuvageAmount,
		WeightByProductKg: aggregation.WeightByProduct(snapshot.Production, date),
		CreatedAt:         createdAt.UTC(),
	}
}

// DailySummary renders the digest sent to the manager for date.
func (s *Service) DailySummary(date string) string {
	report := s.DailyReport(date)
	if report.Lots == 0 {
		return fmt.Sprintf("Rapport du %s : aucune production enregistrée.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rapport du %s\n", date)
	fmt.Fprintf(&b, "Lots : %d\n", report.Lots)
	fmt.Fprintf(&b, "Production : %.1f kg (%s)\n", report.TotalWeightKg, trendLabel(report.Trend))
	fmt.Fprintf(&b, "Employés : %d\n", report.Employees)
	fmt.Fprintf(&b, "Productivité : %.1f kg/employé\n", report.Productivity)
	fmt.Fprintf(&b, "Pertes : %.1f kg\n", report.WasteKg)

	products := make([]string, 0, len(report.WeightByProductKg))
	for name := range report.WeightByProductKg {
		products = append(products, name)
	}
	sort.Strings(products)
	for _, name := range products {
		label := name
		if label == "" {
			label = "(sans produit)"
		}
		fmt.Fprintf(&b, "- %s : %.1f kg\n", label, report.WeightByProductKg[name])
	}

	fmt.Fprintf(&b, "Achats : %.2f\n", report.PurchasesAmount)
	fmt.Fprintf(&b, "Prestations : %.2f", report.PrestationsAmount)
	return b.String()
}

// WeeklySummary renders the seven days ending on the day of now.
func (s *Service) WeeklySummary(now time.Time) string {
	records := s.source.Snapshot().Production
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -6)

	var b strings.Builder
	fmt.Fprintf(&b, "Rapport hebdomadaire (%s au %s)\n", start.Format(dateLayout), end.Format(dateLayout))

	var total models.Totals
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		t := aggregation.DailyTotals(records, day.Format(dateLayout))
		if t.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s : %.1f kg, %d employés, %d lots\n", t.Date, t.WeightKg, t.Employees, t.Count)
		total.WeightKg += t.WeightKg
		total.Employees += t.Employees
		total.WasteKg += t.WasteKg
		total.Count += t.Count
	}

	if total.Count == 0 {
		b.WriteString("Aucune production sur la période.")
		return b.String()
	}

	productivity := 0.0
	if total.Employees > 0 {
		productivity = total.WeightKg / float64(total.Employees)
	}
	fmt.Fprintf(&b, "Total : %.1f kg sur %d lots, pertes %.1f kg\n", total.WeightKg, total.Count, total.WasteKg)
	fmt.Fprintf(&b, "Productivité moyenne : %.1f kg/employé", productivity)
	return b.String()
}

// ArchiveDaily stores the figures of date in the report archive.
func (s *Service) ArchiveDaily(ctx context.Context, date string) (models.DailyReport, error) {
	if s.archive == nil {
		return models.DailyReport{}, ErrArchiveDisabled
	}

	report := s.DailyReport(date)
	if err := s.archive.SaveDailyReport(ctx, report); err != nil {
		return models.DailyReport{}, fmt.Errorf("archive report %s: %w", date, err)
	}

	s.logger.Info("daily report archived", zap.String("date", date), zap.Int("lots", report.Lots))
	return report, nil
}

// ExportJournal appends production records missing from the spreadsheet,
// oldest first, and returns how many rows were written.
func (s *Service) ExportJournal(ctx context.Context) (int, error) {
	if s.journal == nil {
		return 0, ErrJournalDisabled
	}

	existing, err := s.journal.ReadRange(ctx, journalIDs)
	if err != nil {
		return 0, fmt.Errorf("load journal ids: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, row := range existing {
		if len(row) > 0 {
			seen[fmt.Sprint(row[0])] = struct{}{}
		}
	}

	records := s.source.Snapshot().Production
	rows := make([][]interface{}, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if _, ok := seen[r.ID]; ok {
			continue
		}
		rows = append(rows, journalRow(r))
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.journal.AppendRows(ctx, journalRange, rows); err != nil {
		return 0, fmt.Errorf("export journal: %w", err)
	}

	s.logger.Info("journal exported", zap.Int("rows", len(rows)))
	return len(rows), nil
}

func journalRow(r models.ProductionRecord) []interface{} {
	return []interface{}{
		r.ID,
		r.Date,
		r.LotNumber,
		r.ClientName,
		r.ProductName,
		r.Packaging,
		r.EmployeeCount,
		r.TotalWeightKg,
		r.WasteKg,
		r.InfestationRate,
	}
}

func trendLabel(t models.Trend) string {
	if t == models.TrendUp {
		return "en hausse"
	}
	return "en baisse"
}
