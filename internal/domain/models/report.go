package models

import "time"

// DailyReport represents the aggregated daily data archived in MongoDB.
type DailyReport struct {
	Date              string             `bson:"date" json:"date"`
	Lots              int                `bson:"lots" json:"lots"`
	TotalWeightKg     float64            `bson:"total_weight_kg" json:"total_weight_kg"`
	Employees         int                `bson:"employees" json:"employees"`
	WasteKg           float64            `bson:"waste_kg" json:"waste_kg"`
	Productivity      float64            `bson:"productivity" json:"productivity"`
	Trend             Trend              `bson:"trend" json:"trend"`
	PurchasesAmount   float64            `bson:"purchases_amount" json:"purchases_amount"`
	PrestationsAmount float64            `bson:"prestations_amount" json:"prestations_amount"`
	WeightByProductKg map[string]float64 `bson:"weight_by_product_kg" json:"weight_by_product_kg"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// Trend is the day-over-day direction of produced weight.
type Trend string

const (
	TrendUp   Trend = "UP"
	TrendDown Trend = "DOWN"
)

// Totals sums the production records of a single day.
type Totals struct {
	Date      string  `json:"date"`
	WeightKg  float64 `json:"weightKg"`
	Employees int     `json:"employees"`
	WasteKg   float64 `json:"wasteKg"`
	Count     int     `json:"count"`
}

// SeriesPoint is one day of the production/headcount chart.
type SeriesPoint struct {
	Date      string  `json:"date"`
	WeightKg  float64 `json:"weightKg"`
	Employees int     `json:"employees"`
	Count     int     `json:"count"`
}

// Metrics backs the dashboard hero card.
type Metrics struct {
	Totals
	Productivity float64 `json:"productivity"`
	Trend        Trend   `json:"trend"`
	PreviousKg   float64 `json:"previousKg"`
}

// LedgerTotals summarises the non-production ledgers over a period.
type LedgerTotals struct {
	From                    string             `json:"from,omitempty"`
	To                      string             `json:"to,omitempty"`
	PurchasesAmount         float64            `json:"purchasesAmount"`
	PurchasesByCategory     map[string]float64 `json:"purchasesByCategory"`
	StockOutQuantity        float64            `json:"stockOutQuantity"`
	PrestationProdAmount    float64            `json:"prestationProdAmount"`
	PrestationProdByType    map[string]float64 `json:"prestationProdByType"`
	PrestationEtuvageKg     float64            `json:"prestationEtuvageKg"`
	PrestationEtuvageAmount float64            `json:"prestationEtuvageAmount"`
}
