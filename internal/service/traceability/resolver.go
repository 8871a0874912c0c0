// Package traceability rebuilds the upstream and downstream chain of a lot.
//
// The data model carries no relational key between purchases, stock movements
// and the lots that used them. Links are inferred from equal free-text fields
// and date ordering, so a result is a best-effort view: it may miss inputs that
// were entered with different spelling and may include unrelated ones that
// happen to share a client or product name.
package traceability

import (
	"sort"
	"strings"
	"time"

	"github.com/mamadbah2/packhouse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Options tunes the matching heuristic.
type Options struct {
	// LookbackDays limits purchases to this many days before the lot date.
	// Zero means no lower bound.
	LookbackDays int
}

// Resolve links purchases, stock-outs and sibling lots to target.
// Absence of matches yields empty slices.
func Resolve(target models.ProductionRecord, purchases []models.PurchaseRecord, productions []models.ProductionRecord, stockOuts []models.StockOutRecord, opts Options) models.TraceResult {
	return models.TraceResult{
		Lot:         target,
		Purchases:   relatedPurchases(target, purchases, opts),
		StockOuts:   downstreamStockOuts(target, stockOuts),
		SiblingLots: siblingLots(target, productions),
	}
}

// FindLots returns the production records whose lot number contains query,
// newest first. An empty query returns nothing.
func FindLots(productions []models.ProductionRecord, query string) []models.ProductionRecord {
	q := normalize(query)
	out := []models.ProductionRecord{}
	if q == "" {
		return out
	}
	for _, p := range productions {
		if strings.Contains(normalize(p.LotNumber), q) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func relatedPurchases(lot models.ProductionRecord, purchases []models.PurchaseRecord, opts Options) []models.LinkedPurchase {
	out := []models.LinkedPurchase{}
	lotDate, lotDateOK := parseDate(lot.Date)

	for _, p := range purchases {
		if !onOrBefore(p.Date, lot.Date) {
			continue
		}
		if opts.LookbackDays > 0 && lotDateOK {
			pd, ok := parseDate(p.Date)
			if !ok || pd.Before(lotDate.AddDate(0, 0, -opts.LookbackDays)) {
				continue
			}
		}

		var reasons []models.MatchReason
		if equalFold(p.LotNumber, lot.LotNumber) {
			reasons = append(reasons, models.MatchLotNumber)
		}
		if equalFold(p.ClientName, lot.ClientName) {
			reasons = append(reasons, models.MatchClient)
		}
		if equalFold(p.Designation, lot.ProductName) {
			reasons = append(reasons, models.MatchProduct)
		}
		if len(reasons) == 0 {
			continue
		}
		out = append(out, models.LinkedPurchase{PurchaseRecord: p, Reasons: reasons})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func downstreamStockOuts(lot models.ProductionRecord, stockOuts []models.StockOutRecord) []models.LinkedStockOut {
	out := []models.LinkedStockOut{}
	for _, s := range stockOuts {
		if !onOrBefore(lot.Date, s.Date) {
			continue
		}
		var reasons []models.MatchReason
		if equalFold(s.LotNumber, lot.LotNumber) {
			reasons = append(reasons, models.MatchLotNumber)
		}
		if equalFold(s.Designation, lot.ProductName) {
			reasons = append(reasons, models.MatchProduct)
		}
		if len(reasons) == 0 {
			continue
		}
		out = append(out, models.LinkedStockOut{StockOutRecord: s, Reasons: reasons})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

func siblingLots(lot models.ProductionRecord, productions []models.ProductionRecord) []models.LinkedLot {
	out := []models.LinkedLot{}
	prefix := lotPrefix(lot.LotNumber)
	for _, p := range productions {
		if p.ID == lot.ID {
			continue
		}
		var reasons []models.MatchReason
		if prefix != "" && lotPrefix(p.LotNumber) == prefix {
			reasons = append(reasons, models.MatchPrefix)
		}
		if equalFold(p.ClientName, lot.ClientName) {
			reasons = append(reasons, models.MatchClient)
		}
		if len(reasons) == 0 {
			continue
		}
		out = append(out, models.LinkedLot{ProductionRecord: p, Reasons: reasons})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// lotPrefix is the lot number up to its last dash ("LOT-115-2" -> "LOT-115").
// Lot numbers without a dash have no prefix.
func lotPrefix(lotNumber string) string {
	n := normalize(lotNumber)
	idx := strings.LastIndex(n, "-")
	if idx <= 0 {
		return ""
	}
	return n[:idx]
}

// onOrBefore reports a <= b by calendar date, falling back to string order.
func onOrBefore(a, b string) bool {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if okA && okB {
		return !ta.After(tb)
	}
	return a <= b
}

func parseDate(value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func equalFold(a, b string) bool {
	a, b = normalize(a), normalize(b)
	return a != "" && a == b
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
