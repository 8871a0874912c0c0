package models

// MatchReason explains why a record was linked to a lot.
type MatchReason string

const (
	MatchLotNumber MatchReason = "lot_number"
	MatchClient    MatchReason = "client"
	MatchProduct   MatchReason = "product"
	MatchPrefix    MatchReason = "lot_prefix"
)

// LinkedPurchase is a purchase heuristically tied to a lot.
type LinkedPurchase struct {
	PurchaseRecord
	Reasons []MatchReason `json:"reasons"`
}

// LinkedStockOut is a downstream movement heuristically tied to a lot.
type LinkedStockOut struct {
	StockOutRecord
	Reasons []MatchReason `json:"reasons"`
}

// LinkedLot is another production lot related to the traced one.
type LinkedLot struct {
	ProductionRecord
	Reasons []MatchReason `json:"reasons"`
}

// TraceResult is the best-effort traceability chain of one lot.
type TraceResult struct {
	Lot         ProductionRecord `json:"lot"`
	Purchases   []LinkedPurchase `json:"purchases"`
	StockOuts   []LinkedStockOut `json:"stockOuts"`
	SiblingLots []LinkedLot      `json:"siblingLots"`
}
