package aggregation

import (
	"math"
	"testing"

	"github.com/mamadbah2/packhouse/internal/domain/models"
)

func sampleRecords() []models.ProductionRecord {
	return []models.ProductionRecord{
		{ID: "a", Date: "2024-01-01", TotalWeightKg: 100, EmployeeCount: 10, WasteKg: 4, ProductName: "Tomate Roma"},
		{ID: "b", Date: "2024-01-02", TotalWeightKg: 80, EmployeeCount: 10, WasteKg: 2, ProductName: "Tomate Roma"},
	}
}

func TestDailyTotalsScenario(t *testing.T) {
	got := DailyTotals(sampleRecords(), "2024-01-01")
	if got.WeightKg != 100 || got.Employees != 10 || got.WasteKg != 4 || got.Count != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if p := Productivity(sampleRecords(), "2024-01-01"); p != 10 {
		t.Fatalf("expected productivity 10, got %v", p)
	}
	if trend := TrendFor(sampleRecords(), "2024-01-02"); trend != models.TrendDown {
		t.Fatalf("expected DOWN, got %s", trend)
	}
}

func TestDailyTotalsNoMatch(t *testing.T) {
	for _, records := range [][]models.ProductionRecord{nil, sampleRecords()} {
		got := DailyTotals(records, "1999-12-31")
		if got.WeightKg != 0 || got.Employees != 0 || got.WasteKg != 0 || got.Count != 0 {
			t.Fatalf("expected zero totals, got %+v", got)
		}
		if p := Productivity(records, "1999-12-31"); p != 0 {
			t.Fatalf("expected zero productivity, got %v", p)
		}
	}
}

func TestDailyTotalsExactStringMatch(t *testing.T) {
	records := []models.ProductionRecord{
		{Date: "2024-01-01", TotalWeightKg: 10},
		{Date: "2024-1-1", TotalWeightKg: 99},
	}
	if got := DailyTotals(records, "2024-01-01").WeightKg; got != 10 {
		t.Fatalf("expected literal date match only, got %v", got)
	}
}

func TestProductivityWithoutEmployees(t *testing.T) {
	records := []models.ProductionRecord{{Date: "2024-03-01", TotalWeightKg: 250}}
	if p := Productivity(records, "2024-03-01"); p != 0 {
		t.Fatalf("expected 0 when headcount is zero, got %v", p)
	}
}

func TestTrendFor(t *testing.T) {
	cases := []struct {
		name    string
		records []models.ProductionRecord
		date    string
		want    models.Trend
	}{
		{
			name: "tie is up",
			records: []models.ProductionRecord{
				{Date: "2024-02-01", TotalWeightKg: 50},
				{Date: "2024-02-02", TotalWeightKg: 50},
			},
			date: "2024-02-02",
			want: models.TrendUp,
		},
		{
			name: "increase",
			records: []models.ProductionRecord{
				{Date: "2024-02-01", TotalWeightKg: 10},
				{Date: "2024-02-02", TotalWeightKg: 50},
			},
			date: "2024-02-02",
			want: models.TrendUp,
		},
		{
			name: "month boundary",
			records: []models.ProductionRecord{
				{Date: "2024-02-29", TotalWeightKg: 70},
				{Date: "2024-03-01", TotalWeightKg: 20},
			},
			date: "2024-03-01",
			want: models.TrendDown,
		},
		{
			name:    "empty collection",
			records: nil,
			date:    "2024-02-02",
			want:    models.TrendUp,
		},
		{
			name:    "unparseable date compares against zero",
			records: []models.ProductionRecord{{Date: "yesterday", TotalWeightKg: 5}},
			date:    "yesterday",
			want:    models.TrendUp,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TrendFor(tc.records, tc.date); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestTimeSeriesEmpty(t *testing.T) {
	got := TimeSeries(nil, 10)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil series, got %#v", got)
	}
	if got := TimeSeries(sampleRecords(), 0); len(got) != 0 {
		t.Fatalf("expected empty series for n=0, got %d points", len(got))
	}
}

func TestTimeSeriesGroupsAndLimits(t *testing.T) {
	records := []models.ProductionRecord{
		{Date: "2024-01-10", TotalWeightKg: 5, EmployeeCount: 1},
		{Date: "2024-01-02", TotalWeightKg: 7, EmployeeCount: 2},
		{Date: "2024-01-10", TotalWeightKg: 3, EmployeeCount: 4},
		{Date: "2023-12-31", TotalWeightKg: 1, EmployeeCount: 1},
		{Date: "2024-01-05", TotalWeightKg: 2, EmployeeCount: 1},
	}

	got := TimeSeries(records, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %d", len(got))
	}
	wantDates := []string{"2024-01-02", "2024-01-05", "2024-01-10"}
	for i, d := range wantDates {
		if got[i].Date != d {
			t.Fatalf("point %d: expected %s, got %s", i, d, got[i].Date)
		}
	}
	last := got[2]
	if last.WeightKg != 8 || last.Employees != 5 || last.Count != 2 {
		t.Fatalf("unexpected grouped point: %+v", last)
	}

	all := TimeSeries(records, 100)
	if len(all) != 4 {
		t.Fatalf("expected 4 groups without gap filling, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if dateLess(all[i].Date, all[i-1].Date) {
			t.Fatalf("series not ascending at %d: %s before %s", i, all[i-1].Date, all[i].Date)
		}
	}
}

func TestTimeSeriesInvalidDatesFirst(t *testing.T) {
	records := []models.ProductionRecord{
		{Date: "2024-01-01", TotalWeightKg: 1},
		{Date: "n/a", TotalWeightKg: 1},
	}
	got := TimeSeries(records, 5)
	if got[0].Date != "n/a" || got[1].Date != "2024-01-01" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestDashboard(t *testing.T) {
	m := Dashboard(sampleRecords(), "2024-01-02")
	if m.WeightKg != 80 || m.PreviousKg != 100 || m.Trend != models.TrendDown {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if math.Abs(m.Productivity-8) > 1e-9 {
		t.Fatalf("expected productivity 8, got %v", m.Productivity)
	}

	empty := Dashboard(nil, "2024-01-02")
	if empty.WeightKg != 0 || empty.Productivity != 0 || empty.Trend != models.TrendUp {
		t.Fatalf("unexpected empty metrics: %+v", empty)
	}
}

func TestOrphanedMasterValuesStillSum(t *testing.T) {
	// "Concombre" may have been removed from master data; history stays summable.
	records := []models.ProductionRecord{
		{Date: "2024-05-01", ProductName: "Concombre", TotalWeightKg: 40},
		{Date: "2024-05-01", ProductName: "Tomate Roma", TotalWeightKg: 60},
	}
	if got := DailyTotals(records, "2024-05-01").WeightKg; got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	byProduct := WeightByProduct(records, "2024-05-01")
	if byProduct["Concombre"] != 40 {
		t.Fatalf("expected orphaned product weight 40, got %v", byProduct["Concombre"])
	}
}

func TestLedgers(t *testing.T) {
	snapshot := models.Snapshot{
		Purchases: []models.PurchaseRecord{
			{Date: "2024-01-01", Category: "Intrants", TotalAmount: 100},
			{Date: "2024-01-03", Category: "Emballages", Quantity: 10, UnitPrice: 2.5},
			{Date: "2024-02-01", Category: "Intrants", TotalAmount: 999},
		},
		StockOuts: []models.StockOutRecord{
			{Date: "2024-01-02", Quantity: 4},
		},
		PrestationsProd: []models.PrestationProdRecord{
			{Date: "2024-01-02", ServiceType: "Triage", Amount: 30},
			{Date: "2024-01-04", ServiceType: "Triage", Amount: 20},
		},
		PrestationsEtuvage: []models.PrestationEtuvageRecord{
			{Date: "2024-01-05", QuantityKg: 500, Amount: 75},
		},
	}

	got := Ledgers(snapshot, Period{From: "2024-01-01", To: "2024-01-31"})
	if got.PurchasesAmount != 125 {
		t.Fatalf("expected purchases 125, got %v", got.PurchasesAmount)
	}
	if got.PurchasesByCategory["Emballages"] != 25 {
		t.Fatalf("expected computed amount 25, got %v", got.PurchasesByCategory["Emballages"])
	}
	if got.StockOutQuantity != 4 || got.PrestationProdAmount != 50 || got.PrestationProdByType["Triage"] != 50 {
		t.Fatalf("unexpected ledger totals: %+v", got)
	}
	if got.PrestationEtuvageKg != 500 || got.PrestationEtuvageAmount != 75 {
		t.Fatalf("unexpected etuvage totals: %+v", got)
	}

	open := Ledgers(snapshot, Period{})
	if open.PurchasesAmount != 1124 {
		t.Fatalf("expected open period purchases 1124, got %v", open.PurchasesAmount)
	}
}
