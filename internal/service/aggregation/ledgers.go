package aggregation

import "github.com/mamadbah2/packhouse/internal/domain/models"

// Period bounds a ledger summary. Empty bounds are open.
type Period struct {
	From string
	To   string
}

func (p Period) contains(date string) bool {
	if p.From != "" && dateLess(date, p.From) {
		return false
	}
	if p.To != "" && dateLess(p.To, date) {
		return false
	}
	return true
}

// Ledgers summarises purchases, stock-outs and both prestation ledgers.
func Ledgers(snapshot models.Snapshot, period Period) models.LedgerTotals {
	out := models.LedgerTotals{
		From:                 period.From,
		To:                   period.To,
		PurchasesByCategory:  make(map[string]float64),
		PrestationProdByType: make(map[string]float64),
	}

	for _, p := range snapshot.Purchases {
		if !period.contains(p.Date) {
			continue
		}
		amount := purchaseAmount(p)
		out.PurchasesAmount += amount
		out.PurchasesByCategory[p.Category] += amount
	}

	for _, s := range snapshot.StockOuts {
		if period.contains(s.Date) {
			out.StockOutQuantity += s.Quantity
		}
	}

	for _, p := range snapshot.PrestationsProd {
		if !period.contains(p.Date) {
			continue
		}
		out.PrestationProdAmount += p.Amount
		out.PrestationProdByType[p.ServiceType] += p.Amount
	}

	for _, p := range snapshot.PrestationsEtuvage {
		if !period.contains(p.Date) {
			continue
		}
		out.PrestationEtuvageKg += p.QuantityKg
		out.PrestationEtuvageAmount += p.Amount
	}

	return out
}

// purchaseAmount falls back to quantity x unit price when no total was entered.
func purchaseAmount(p models.PurchaseRecord) float64 {
	if p.TotalAmount != 0 {
		return p.TotalAmount
	}
	return p.Quantity * p.UnitPrice
}
