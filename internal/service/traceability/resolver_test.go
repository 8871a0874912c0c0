package traceability

import (
	"testing"

	"github.com/mamadbah2/packhouse/internal/domain/models"
)

var lot = models.ProductionRecord{
	ID:          "lot-1",
	Date:        "2024-03-10",
	LotNumber:   "LOT-310-1",
	ClientName:  "Export France",
	ProductName: "Tomate Roma",
}

func TestResolveEmptyPurchases(t *testing.T) {
	got := Resolve(lot, nil, nil, nil, Options{})
	if got.Lot.ID != lot.ID {
		t.Fatalf("expected target lot in result, got %+v", got.Lot)
	}
	if got.Purchases == nil || len(got.Purchases) != 0 {
		t.Fatalf("expected empty purchases, got %#v", got.Purchases)
	}
	if len(got.StockOuts) != 0 || len(got.SiblingLots) != 0 {
		t.Fatalf("expected empty links, got %+v", got)
	}
}

func TestResolvePurchases(t *testing.T) {
	purchases := []models.PurchaseRecord{
		{ID: "p-lot", Date: "2024-03-09", LotNumber: "lot-310-1"},
		{ID: "p-client", Date: "2024-03-01", ClientName: " export france "},
		{ID: "p-product", Date: "2024-03-10", Designation: "Tomate Roma"},
		{ID: "p-after", Date: "2024-03-11", LotNumber: "LOT-310-1"},
		{ID: "p-unrelated", Date: "2024-03-05", Designation: "Carton", Supplier: "AgriPlus"},
		{ID: "p-old", Date: "2023-01-01", Designation: "Tomate Roma"},
	}

	got := Resolve(lot, purchases, nil, nil, Options{})
	ids := map[string][]models.MatchReason{}
	for _, p := range got.Purchases {
		ids[p.ID] = p.Reasons
	}
	for _, want := range []string{"p-lot", "p-client", "p-product", "p-old"} {
		if _, ok := ids[want]; !ok {
			t.Fatalf("expected %s to be linked, got %v", want, ids)
		}
	}
	for _, unwanted := range []string{"p-after", "p-unrelated"} {
		if _, ok := ids[unwanted]; ok {
			t.Fatalf("did not expect %s to be linked", unwanted)
		}
	}
	if ids["p-lot"][0] != models.MatchLotNumber {
		t.Fatalf("expected lot number reason, got %v", ids["p-lot"])
	}
	if got.Purchases[0].ID != "p-product" {
		t.Fatalf("expected newest purchase first, got %s", got.Purchases[0].ID)
	}

	windowed := Resolve(lot, purchases, nil, nil, Options{LookbackDays: 30})
	for _, p := range windowed.Purchases {
		if p.ID == "p-old" {
			t.Fatalf("expected lookback window to drop p-old")
		}
	}
	if len(windowed.Purchases) != 3 {
		t.Fatalf("expected 3 purchases in window, got %d", len(windowed.Purchases))
	}
}

func TestResolveStockOutsAndSiblings(t *testing.T) {
	stockOuts := []models.StockOutRecord{
		{ID: "s1", Date: "2024-03-12", LotNumber: "LOT-310-1"},
		{ID: "s2", Date: "2024-03-09", LotNumber: "LOT-310-1"},
		{ID: "s3", Date: "2024-03-10", Designation: "tomate roma"},
	}
	productions := []models.ProductionRecord{
		lot,
		{ID: "lot-2", Date: "2024-03-10", LotNumber: "LOT-310-2", ClientName: "Marché de Gros"},
		{ID: "lot-3", Date: "2024-03-08", LotNumber: "LOT-308-1", ClientName: "Export France"},
		{ID: "lot-4", Date: "2024-03-08", LotNumber: "LOT-308-2", ClientName: "Superette Center"},
	}

	got := Resolve(lot, nil, productions, stockOuts, Options{})
	if len(got.StockOuts) != 2 || got.StockOuts[0].ID != "s3" || got.StockOuts[1].ID != "s1" {
		t.Fatalf("unexpected stock-outs: %+v", got.StockOuts)
	}
	if len(got.SiblingLots) != 2 {
		t.Fatalf("expected 2 sibling lots, got %+v", got.SiblingLots)
	}
	if got.SiblingLots[0].ID != "lot-2" || got.SiblingLots[0].Reasons[0] != models.MatchPrefix {
		t.Fatalf("expected prefix sibling first, got %+v", got.SiblingLots[0])
	}
	if got.SiblingLots[1].ID != "lot-3" || got.SiblingLots[1].Reasons[0] != models.MatchClient {
		t.Fatalf("expected client sibling, got %+v", got.SiblingLots[1])
	}
}

func TestLotPrefix(t *testing.T) {
	cases := map[string]string{
		"LOT-115-2": "lot-115",
		"LOT":       "",
		"-1":        "",
		"":          "",
	}
	for in, want := range cases {
		if got := lotPrefix(in); got != want {
			t.Fatalf("lotPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFindLots(t *testing.T) {
	productions := []models.ProductionRecord{
		{ID: "1", Date: "2024-01-01", LotNumber: "LOT-11-1"},
		{ID: "2", Date: "2024-01-02", LotNumber: "LOT-12-1"},
		{ID: "3", Date: "2024-01-02", LotNumber: "X-99"},
	}
	got := FindLots(productions, "lot-1")
	if len(got) != 2 || got[0].ID != "2" {
		t.Fatalf("unexpected lots: %+v", got)
	}
	if len(FindLots(productions, "  ")) != 0 {
		t.Fatalf("expected blank query to return nothing")
	}
}
